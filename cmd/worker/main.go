package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/alumnihub/portal-api/config"
	"github.com/alumnihub/portal-api/internal/kvstore"
	"github.com/alumnihub/portal-api/internal/repository/sqldb"
	communicationService "github.com/alumnihub/portal-api/internal/service/communication"
	"github.com/alumnihub/portal-api/internal/source"
	internalWorker "github.com/alumnihub/portal-api/internal/worker"
	"github.com/alumnihub/portal-api/pkg/logger"
	"github.com/alumnihub/portal-api/pkg/messaging/redis"
	"github.com/alumnihub/portal-api/pkg/metrics"
	"github.com/alumnihub/portal-api/pkg/worker"
)

// WorkerEnv holds the env-only knobs of the worker binary.
type WorkerEnv struct {
	MetricsPort   int           `envconfig:"METRICS_PORT" default:"9091"`
	SweepInterval time.Duration `envconfig:"SWEEP_INTERVAL" default:"1h"`
}

func main() {
	var env WorkerEnv
	if err := envconfig.Process("worker", &env); err != nil {
		log.Fatal().Err(err).Msg("failed to read worker environment")
	}

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

	appMetrics := metrics.New("portal_worker")
	recordSource := source.NewCSVSource(cfg.Source.Dir)
	commSvc := communicationService.NewService(kv, recordSource, communicationService.SystemClock(), appMetrics, appLogger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var wg sync.WaitGroup

	sweep := internalWorker.NewGenerationSweep(userRepo, commSvc, env.SweepInterval, appLogger)
	wg.Add(1)
	go func() {
		defer wg.Done()
		sweep.Start(ctx)
	}()

	if cfg.Redis.URL != "" {
		zl := appLogger.ZL
		broker, err := redis.NewRedisBroker(redis.Config{URL: cfg.Redis.URL}, &zl)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to Redis broker")
		}
		defer broker.Close()

		processor := worker.NewOutboxProcessor(outboxRepo, broker, cfg.Outbox.ToWorkerConfig(), appLogger, appMetrics)
		wg.Add(1)
		go func() {
			defer wg.Done()
			processor.Start(ctx)
		}()
	} else {
		log.Warn().Msg("no redis configured, outbox processor disabled")
	}

	metricsSrv := &http.Server{
		Addr:    fmt.Sprintf(":%d", env.MetricsPort),
		Handler: promhttp.Handler(),
	}
	go func() {
		log.Info().Int("port", env.MetricsPort).Msg("serving worker metrics")
		if err := metricsSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to serve metrics")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down worker...")

	cancel()
	wg.Wait()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("metrics server forced to shutdown")
	}

	log.Info().Msg("worker exited properly")
}
