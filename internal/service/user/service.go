package user

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/alumnihub/portal-api/internal/model"
	"github.com/alumnihub/portal-api/internal/repository"
)

type Service struct {
	repo repository.UserRepository
}

func NewService(repo repository.UserRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

type UpdateInput struct {
	FullName    *string
	GradYear    *string
	CareerField *string
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*model.User, error) {
	user, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if input.FullName != nil {
		user.FullName = *input.FullName
	}
	if input.GradYear != nil {
		user.GradYear = *input.GradYear
	}
	if input.CareerField != nil {
		user.CareerField = *input.CareerField
	}
	user.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}
