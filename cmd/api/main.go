package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/alumnihub/portal-api/config"
	"github.com/alumnihub/portal-api/internal/email"
	"github.com/alumnihub/portal-api/internal/handler"
	authHandler "github.com/alumnihub/portal-api/internal/handler/auth"
	communicationHandler "github.com/alumnihub/portal-api/internal/handler/communication"
	dashboardHandler "github.com/alumnihub/portal-api/internal/handler/dashboard"
	donationHandler "github.com/alumnihub/portal-api/internal/handler/donation"
	eventHandler "github.com/alumnihub/portal-api/internal/handler/event"
	feedbackHandler "github.com/alumnihub/portal-api/internal/handler/feedback"
	mentorHandler "github.com/alumnihub/portal-api/internal/handler/mentor"
	userHandler "github.com/alumnihub/portal-api/internal/handler/user"
	"github.com/alumnihub/portal-api/internal/kvstore"
	"github.com/alumnihub/portal-api/internal/middleware"
	"github.com/alumnihub/portal-api/internal/repository/sqldb"
	"github.com/alumnihub/portal-api/internal/router"
	authService "github.com/alumnihub/portal-api/internal/service/auth"
	communicationService "github.com/alumnihub/portal-api/internal/service/communication"
	dashboardService "github.com/alumnihub/portal-api/internal/service/dashboard"
	donationService "github.com/alumnihub/portal-api/internal/service/donation"
	eventService "github.com/alumnihub/portal-api/internal/service/event"
	feedbackService "github.com/alumnihub/portal-api/internal/service/feedback"
	mentorService "github.com/alumnihub/portal-api/internal/service/mentor"
	userService "github.com/alumnihub/portal-api/internal/service/user"
	"github.com/alumnihub/portal-api/internal/source"
	"github.com/alumnihub/portal-api/pkg/auth"
	"github.com/alumnihub/portal-api/pkg/logger"
	"github.com/alumnihub/portal-api/pkg/metrics"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.NewLogger(nil)

	db, err := sqldb.NewDB(cfg.Database.ToDBConfig())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	baseRepo := sqldb.NewBaseRepository(db)
	userRepo := sqldb.NewUserRepository(baseRepo)
	eventRepo := sqldb.NewEventRepository(baseRepo)
	mentorRepo := sqldb.NewMentorRepository(baseRepo)
	donationRepo := sqldb.NewDonationRepository(baseRepo)
	feedbackRepo := sqldb.NewFeedbackRepository(baseRepo)
	outboxRepo := sqldb.NewOutboxRepository(baseRepo)

	var kv kvstore.Store
	if cfg.Redis.URL != "" {
		redisKV, err := kvstore.NewRedisStore(cfg.Redis.URL, "portal:")
		if err != nil {
			log.Warn().Err(err).Msg("redis unavailable, falling back to database key-value store")
			kv = sqldb.NewKVStore(baseRepo)
		} else {
			defer redisKV.Close()
			kv = redisKV
		}
	} else {
		kv = sqldb.NewKVStore(baseRepo)
	}

	var emailSvc email.Service = email.NoopService{}
	if cfg.SMTP.Host != "" {
		emailSvc = email.NewGomailService(email.SMTPConfig{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			Username: cfg.SMTP.Username,
			Password: cfg.SMTP.Password,
			From:     cfg.SMTP.From,
		})
	}

	jwtSvc := auth.NewJWTService(auth.Config{
		Secret:        cfg.JWT.Secret,
		RefreshSecret: cfg.JWT.RefreshSecret,
		ExpiryHours:   cfg.JWT.ExpiryHours,
	})

	appMetrics := metrics.New("portal_api")
	recordSource := source.NewCSVSource(cfg.Source.Dir)

	authSvc := authService.NewService(userRepo, jwtSvc, emailSvc)
	userSvc := userService.NewService(userRepo)
	eventSvc := eventService.NewService(eventRepo)
	mentorSvc := mentorService.NewService(mentorRepo, kv)
	donationSvc := donationService.NewService(donationRepo)
	feedbackSvc := feedbackService.NewService(feedbackRepo)
	dashboardSvc := dashboardService.NewService(eventRepo, mentorRepo, donationRepo)
	commSvc := communicationService.NewService(kv, recordSource, communicationService.SystemClock(), appMetrics, appLogger)

	if err := handler.RegisterValidations(); err != nil {
		log.Fatal().Err(err).Msg("failed to register validations")
	}

	authMiddleware := middleware.NewAuthMiddleware(jwtSvc)

	h := handler.NewHandler()
	public := []router.Handler{
		authHandler.NewHandler(authSvc),
	}
	private := []router.Handler{
		userHandler.NewHandler(userSvc),
		eventHandler.NewHandler(eventSvc, outboxRepo),
		mentorHandler.NewHandler(mentorSvc, outboxRepo),
		donationHandler.NewHandler(donationSvc, commSvc, outboxRepo),
		feedbackHandler.NewHandler(feedbackSvc, outboxRepo),
		dashboardHandler.NewHandler(dashboardSvc),
		communicationHandler.NewHandler(commSvc, outboxRepo),
	}

	r := router.NewRouter(authMiddleware, h, public, private, router.Config{
		RateLimit:     rate.Limit(cfg.RateLimit.RequestsPerSecond),
		RateBurst:     cfg.RateLimit.Burst,
		Timeout:       cfg.Server.RequestTimeout,
		CORSConfig:    middleware.DefaultCORSConfig(),
		MetricsPrefix: "portal_api",
	})
	r.Setup()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}
