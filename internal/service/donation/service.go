package donation

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/alumnihub/portal-api/internal/model"
	"github.com/alumnihub/portal-api/internal/repository"
)

type Service struct {
	repo repository.DonationRepository
}

func NewService(repo repository.DonationRepository) *Service {
	return &Service{repo: repo}
}

type CreateInput struct {
	Fund   string
	Amount float64
}

func (s *Service) Create(ctx context.Context, userID uuid.UUID, input CreateInput) (*model.Donation, error) {
	if input.Amount <= 0 {
		return nil, fmt.Errorf("donation amount must be positive")
	}

	donation := &model.Donation{
		ID:        uuid.New(),
		UserID:    userID,
		Fund:      input.Fund,
		Amount:    input.Amount,
		DonatedAt: time.Now(),
	}
	if err := s.repo.Create(ctx, donation); err != nil {
		return nil, fmt.Errorf("failed to record donation: %w", err)
	}
	return donation, nil
}

func (s *Service) ListByUser(ctx context.Context, userID uuid.UUID) ([]*model.Donation, error) {
	donations, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list donations: %w", err)
	}
	return donations, nil
}
