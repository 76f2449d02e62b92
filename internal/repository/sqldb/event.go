package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/alumnihub/portal-api/internal/model"
	"github.com/alumnihub/portal-api/internal/repository"
)

type eventRepository struct {
	BaseRepository
}

func NewEventRepository(base BaseRepository) repository.EventRepository {
	return &eventRepository{base}
}

func (r *eventRepository) List(ctx context.Context) ([]*model.Event, error) {
	query := `
		SELECT id, title, description, location, date, image, created_at, updated_at
		FROM events
		ORDER BY date ASC
	`
	var events []*model.Event
	if err := r.db.SelectContext(ctx, &events, query); err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	return events, nil
}

func (r *eventRepository) Get(ctx context.Context, id uuid.UUID) (*model.Event, error) {
	query := r.rebind(`
		SELECT id, title, description, location, date, image, created_at, updated_at
		FROM events
		WHERE id = ?
	`)
	var event model.Event
	err := r.db.GetContext(ctx, &event, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("event %s: %w", id, repository.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	return &event, nil
}

func (r *eventRepository) Create(ctx context.Context, event *model.Event) error {
	query := r.rebind(`
		INSERT INTO events (id, title, description, location, date, image, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	event.CreatedAt = time.Now()
	event.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		event.ID,
		event.Title,
		event.Description,
		event.Location,
		event.Date,
		event.Image,
		event.CreatedAt,
		event.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create event: %w", err)
	}
	return nil
}

func (r *eventRepository) Register(ctx context.Context, userID, eventID uuid.UUID) error {
	query := r.rebind(`
		INSERT INTO event_registrations (id, user_id, event_id, registered_at)
		VALUES (?, ?, ?, ?)
	`)
	_, err := r.db.ExecContext(ctx, query, uuid.New(), userID, eventID, time.Now())
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE") || strings.Contains(err.Error(), "duplicate key") {
			return fmt.Errorf("registration for event %s: %w", eventID, repository.ErrDuplicate)
		}
		return fmt.Errorf("failed to register for event: %w", err)
	}
	return nil
}

func (r *eventRepository) ListRegistrations(ctx context.Context, userID uuid.UUID) ([]*model.RegisteredEvent, error) {
	query := r.rebind(`
		SELECT e.id, e.title, e.description, e.location, e.date, e.image,
			e.created_at, e.updated_at, er.registered_at
		FROM events e
		INNER JOIN event_registrations er ON e.id = er.event_id
		WHERE er.user_id = ?
		ORDER BY er.registered_at DESC
	`)
	var events []*model.RegisteredEvent
	if err := r.db.SelectContext(ctx, &events, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list registrations: %w", err)
	}
	return events, nil
}

func (r *eventRepository) CountRegistrations(ctx context.Context, userID uuid.UUID) (int, error) {
	query := r.rebind(`SELECT COUNT(*) FROM event_registrations WHERE user_id = ?`)
	var count int
	if err := r.db.GetContext(ctx, &count, query, userID); err != nil {
		return 0, fmt.Errorf("failed to count registrations: %w", err)
	}
	return count, nil
}
