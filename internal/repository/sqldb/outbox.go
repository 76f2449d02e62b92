package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/alumnihub/portal-api/internal/model"
	"github.com/alumnihub/portal-api/internal/repository"
)

type outboxRepository struct {
	BaseRepository
}

func NewOutboxRepository(base BaseRepository) repository.OutboxRepository {
	return &outboxRepository{base}
}

func (r *outboxRepository) Create(ctx context.Context, event *model.OutboxEvent) error {
	if event == nil {
		return fmt.Errorf("event cannot be nil")
	}
	if event.Payload == nil {
		return fmt.Errorf("event payload cannot be nil")
	}

	query := r.rebind(`
		INSERT INTO outbox_events (id, event_type, payload, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	event.ID = uuid.New()
	event.CreatedAt = time.Now()
	event.UpdatedAt = time.Now()
	event.Status = string(model.OutboxStatusPending)

	_, err := r.db.ExecContext(ctx, query,
		event.ID,
		event.EventType,
		[]byte(event.Payload),
		event.Status,
		event.CreatedAt,
		event.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create outbox event: %w", err)
	}
	return nil
}

func (r *outboxRepository) GetPendingEvents(ctx context.Context, limit int) ([]*model.OutboxEvent, error) {
	query := r.rebind(`
		SELECT id, event_type, payload, status, error_message, retry_count, retry_at,
			created_at, updated_at, processed_at
		FROM outbox_events
		WHERE status = ? OR (status = ? AND (retry_at IS NULL OR retry_at <= ?))
		ORDER BY created_at ASC
		LIMIT ?
	`)

	var events []*model.OutboxEvent
	err := r.db.SelectContext(ctx, &events, query,
		string(model.OutboxStatusPending),
		string(model.OutboxStatusRetry),
		time.Now(),
		limit,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get pending events: %w", err)
	}
	return events, nil
}

func (r *outboxRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.OutboxStatus, errorMessage *string, retryAt *time.Time) error {
	query := r.rebind(`
		UPDATE outbox_events
		SET status = ?, error_message = ?, retry_at = ?, updated_at = ?,
			retry_count = retry_count + CASE WHEN ? THEN 1 ELSE 0 END,
			processed_at = CASE WHEN ? THEN ? ELSE processed_at END
		WHERE id = ?
	`)
	now := time.Now()
	isRetry := status == model.OutboxStatusRetry
	isProcessed := status == model.OutboxStatusProcessed

	_, err := r.db.ExecContext(ctx, query,
		string(status),
		errorMessage,
		retryAt,
		now,
		isRetry,
		isProcessed,
		now,
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to update outbox event status: %w", err)
	}
	return nil
}

func (r *outboxRepository) DeleteProcessedBefore(ctx context.Context, before time.Time) (int64, error) {
	query := r.rebind(`DELETE FROM outbox_events WHERE status = ? AND processed_at < ?`)
	result, err := r.db.ExecContext(ctx, query, string(model.OutboxStatusProcessed), before)
	if err != nil {
		return 0, fmt.Errorf("failed to delete processed events: %w", err)
	}
	return result.RowsAffected()
}
