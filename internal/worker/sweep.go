package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/alumnihub/portal-api/internal/repository"
	"github.com/alumnihub/portal-api/internal/service/communication"
	"github.com/alumnihub/portal-api/pkg/logger"
)

// GenerationSweep runs the communications generator for every known user
// on an interval. The per-user daily watermark makes repeated sweeps on
// the same day cheap no-ops.
type GenerationSweep struct {
	userRepo repository.UserRepository
	commSvc  *communication.Service
	interval time.Duration
	logger   *logger.Logger
}

func NewGenerationSweep(userRepo repository.UserRepository, commSvc *communication.Service, interval time.Duration, logger *logger.Logger) *GenerationSweep {
	if interval <= 0 {
		interval = time.Hour
	}
	return &GenerationSweep{
		userRepo: userRepo,
		commSvc:  commSvc,
		interval: interval,
		logger:   logger,
	}
}

func (w *GenerationSweep) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.logger.Info("starting communication generation sweep", "interval", w.interval.String())

	// Run once immediately so a fresh deployment does not wait a full
	// interval for the first pass.
	if err := w.sweep(ctx); err != nil {
		w.logger.Error(err, "generation sweep failed")
	}

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("shutting down generation sweep")
			return
		case <-ticker.C:
			if err := w.sweep(ctx); err != nil {
				w.logger.Error(err, "generation sweep failed")
			}
		}
	}
}

func (w *GenerationSweep) sweep(ctx context.Context) error {
	emails, err := w.userRepo.ListEmails(ctx)
	if err != nil {
		return fmt.Errorf("failed to list user emails: %w", err)
	}

	var failures int
	for _, email := range emails {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if _, err := w.commSvc.Generate(ctx, email); err != nil {
			failures++
			w.logger.Error(err, "failed to generate communications", "email", email)
		}
	}

	w.logger.Info("generation sweep complete", "users", len(emails), "failures", failures)
	return nil
}
