package event

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/alumnihub/portal-api/internal/model"
	"github.com/alumnihub/portal-api/internal/repository"
)

var ErrAlreadyRegistered = errors.New("already registered for event")

type Service struct {
	repo repository.EventRepository
}

func NewService(repo repository.EventRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]*model.Event, error) {
	events, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	return events, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Event, error) {
	event, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	return event, nil
}

func (s *Service) Register(ctx context.Context, userID, eventID uuid.UUID) error {
	if _, err := s.repo.Get(ctx, eventID); err != nil {
		return fmt.Errorf("failed to get event: %w", err)
	}

	if err := s.repo.Register(ctx, userID, eventID); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return ErrAlreadyRegistered
		}
		return fmt.Errorf("failed to register for event: %w", err)
	}
	return nil
}

func (s *Service) ListRegistrations(ctx context.Context, userID uuid.UUID) ([]*model.RegisteredEvent, error) {
	regs, err := s.repo.ListRegistrations(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list registrations: %w", err)
	}
	return regs, nil
}
