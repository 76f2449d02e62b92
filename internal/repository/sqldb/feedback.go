package sqldb

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/alumnihub/portal-api/internal/model"
	"github.com/alumnihub/portal-api/internal/repository"
)

type feedbackRepository struct {
	BaseRepository
}

func NewFeedbackRepository(base BaseRepository) repository.FeedbackRepository {
	return &feedbackRepository{base}
}

func (r *feedbackRepository) Create(ctx context.Context, feedback *model.Feedback) error {
	query := r.rebind(`
		INSERT INTO feedback (id, user_id, message, submitted_at)
		VALUES (?, ?, ?, ?)
	`)
	feedback.SubmittedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		feedback.ID,
		feedback.UserID,
		feedback.Message,
		feedback.SubmittedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create feedback: %w", err)
	}
	return nil
}

func (r *feedbackRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*model.Feedback, error) {
	query := r.rebind(`
		SELECT id, user_id, message, submitted_at
		FROM feedback
		WHERE user_id = ?
		ORDER BY submitted_at DESC
	`)
	var feedback []*model.Feedback
	if err := r.db.SelectContext(ctx, &feedback, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list feedback: %w", err)
	}
	return feedback, nil
}
