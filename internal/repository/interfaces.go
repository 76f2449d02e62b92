package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/alumnihub/portal-api/internal/model"
)

// Sentinel errors shared by all repository implementations.
var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("already exists")
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	Get(ctx context.Context, id uuid.UUID) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	Update(ctx context.Context, user *model.User) error
	ListEmails(ctx context.Context) ([]string, error)
}

type EventRepository interface {
	List(ctx context.Context) ([]*model.Event, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Event, error)
	Create(ctx context.Context, event *model.Event) error
	Register(ctx context.Context, userID, eventID uuid.UUID) error
	ListRegistrations(ctx context.Context, userID uuid.UUID) ([]*model.RegisteredEvent, error)
	CountRegistrations(ctx context.Context, userID uuid.UUID) (int, error)
}

type MentorRepository interface {
	List(ctx context.Context) ([]*model.Mentor, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Mentor, error)
	CreateRequest(ctx context.Context, req *model.MentorRequest) error
	ListRequests(ctx context.Context, userID uuid.UUID) ([]*model.MentorRequestDetail, error)
	CountRequests(ctx context.Context, userID uuid.UUID) (int, error)
}

type DonationRepository interface {
	Create(ctx context.Context, donation *model.Donation) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*model.Donation, error)
	SumByUser(ctx context.Context, userID uuid.UUID) (float64, error)
}

type FeedbackRepository interface {
	Create(ctx context.Context, feedback *model.Feedback) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*model.Feedback, error)
}

type OutboxRepository interface {
	Create(ctx context.Context, event *model.OutboxEvent) error
	GetPendingEvents(ctx context.Context, limit int) ([]*model.OutboxEvent, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.OutboxStatus, errorMessage *string, retryAt *time.Time) error
	DeleteProcessedBefore(ctx context.Context, before time.Time) (int64, error)
}
