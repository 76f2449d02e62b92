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

type userRepository struct {
	BaseRepository
}

func NewUserRepository(base BaseRepository) repository.UserRepository {
	return &userRepository{base}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	query := r.rebind(`
		INSERT INTO users (
			id, full_name, email, password_hash, grad_year, career_field, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		user.ID,
		user.FullName,
		strings.ToLower(user.Email),
		user.PasswordHash,
		user.GradYear,
		user.CareerField,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE") || strings.Contains(err.Error(), "duplicate key") {
			return fmt.Errorf("user %s: %w", user.Email, repository.ErrDuplicate)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *userRepository) Get(ctx context.Context, id uuid.UUID) (*model.User, error) {
	query := r.rebind(`
		SELECT id, full_name, email, password_hash, grad_year, career_field, created_at, updated_at
		FROM users
		WHERE id = ?
	`)
	var user model.User
	err := r.db.GetContext(ctx, &user, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("user %s: %w", id, repository.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	query := r.rebind(`
		SELECT id, full_name, email, password_hash, grad_year, career_field, created_at, updated_at
		FROM users
		WHERE email = ?
	`)
	var user model.User
	err := r.db.GetContext(ctx, &user, query, strings.ToLower(email))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("user %s: %w", email, repository.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return &user, nil
}

func (r *userRepository) Update(ctx context.Context, user *model.User) error {
	query := r.rebind(`
		UPDATE users
		SET full_name = ?, grad_year = ?, career_field = ?, updated_at = ?
		WHERE id = ?
	`)
	user.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		user.FullName,
		user.GradYear,
		user.CareerField,
		user.UpdatedAt,
		user.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("user %s: %w", user.ID, repository.ErrNotFound)
	}
	return nil
}

func (r *userRepository) ListEmails(ctx context.Context) ([]string, error) {
	var emails []string
	err := r.db.SelectContext(ctx, &emails, `SELECT email FROM users ORDER BY email`)
	if err != nil {
		return nil, fmt.Errorf("failed to list user emails: %w", err)
	}
	return emails, nil
}
