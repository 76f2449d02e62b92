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

type mentorRepository struct {
	BaseRepository
}

func NewMentorRepository(base BaseRepository) repository.MentorRepository {
	return &mentorRepository{base}
}

func (r *mentorRepository) List(ctx context.Context) ([]*model.Mentor, error) {
	query := `
		SELECT id, name, title, company, image, created_at, updated_at
		FROM mentors
		ORDER BY name ASC
	`
	var mentors []*model.Mentor
	if err := r.db.SelectContext(ctx, &mentors, query); err != nil {
		return nil, fmt.Errorf("failed to list mentors: %w", err)
	}
	return mentors, nil
}

func (r *mentorRepository) Get(ctx context.Context, id uuid.UUID) (*model.Mentor, error) {
	query := r.rebind(`
		SELECT id, name, title, company, image, created_at, updated_at
		FROM mentors
		WHERE id = ?
	`)
	var mentor model.Mentor
	err := r.db.GetContext(ctx, &mentor, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("mentor %s: %w", id, repository.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get mentor: %w", err)
	}
	return &mentor, nil
}

func (r *mentorRepository) CreateRequest(ctx context.Context, req *model.MentorRequest) error {
	query := r.rebind(`
		INSERT INTO mentor_requests (id, user_id, mentor_id, career_field, grad_year, status, requested_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	req.RequestedAt = time.Now()
	if req.Status == "" {
		req.Status = model.MentorRequestStatusPending
	}

	_, err := r.db.ExecContext(ctx, query,
		req.ID,
		req.UserID,
		req.MentorID,
		req.CareerField,
		req.GradYear,
		req.Status,
		req.RequestedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create mentor request: %w", err)
	}
	return nil
}

func (r *mentorRepository) ListRequests(ctx context.Context, userID uuid.UUID) ([]*model.MentorRequestDetail, error) {
	query := r.rebind(`
		SELECT mr.id, mr.user_id, mr.mentor_id, mr.career_field, mr.grad_year,
			mr.status, mr.requested_at,
			m.name AS mentor_name, m.title AS mentor_title, m.company AS mentor_company
		FROM mentor_requests mr
		INNER JOIN mentors m ON mr.mentor_id = m.id
		WHERE mr.user_id = ?
		ORDER BY mr.requested_at DESC
	`)
	var requests []*model.MentorRequestDetail
	if err := r.db.SelectContext(ctx, &requests, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list mentor requests: %w", err)
	}
	return requests, nil
}

func (r *mentorRepository) CountRequests(ctx context.Context, userID uuid.UUID) (int, error) {
	query := r.rebind(`SELECT COUNT(*) FROM mentor_requests WHERE user_id = ?`)
	var count int
	if err := r.db.GetContext(ctx, &count, query, userID); err != nil {
		return 0, fmt.Errorf("failed to count mentor requests: %w", err)
	}
	return count, nil
}
