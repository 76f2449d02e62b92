package feedback

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/alumnihub/portal-api/internal/model"
	"github.com/alumnihub/portal-api/internal/repository"
)

type Service struct {
	repo repository.FeedbackRepository
}

func NewService(repo repository.FeedbackRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Submit(ctx context.Context, userID uuid.UUID, message string) (*model.Feedback, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, fmt.Errorf("feedback message cannot be empty")
	}

	fb := &model.Feedback{
		ID:          uuid.New(),
		UserID:      userID,
		Message:     message,
		SubmittedAt: time.Now(),
	}
	if err := s.repo.Create(ctx, fb); err != nil {
		return nil, fmt.Errorf("failed to save feedback: %w", err)
	}
	return fb, nil
}

func (s *Service) ListByUser(ctx context.Context, userID uuid.UUID) ([]*model.Feedback, error) {
	items, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list feedback: %w", err)
	}
	return items, nil
}
