package sqldb

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/alumnihub/portal-api/internal/model"
	"github.com/alumnihub/portal-api/internal/repository"
)

type donationRepository struct {
	BaseRepository
}

func NewDonationRepository(base BaseRepository) repository.DonationRepository {
	return &donationRepository{base}
}

func (r *donationRepository) Create(ctx context.Context, donation *model.Donation) error {
	query := r.rebind(`
		INSERT INTO donations (id, user_id, fund, amount, donated_at)
		VALUES (?, ?, ?, ?, ?)
	`)
	donation.DonatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		donation.ID,
		donation.UserID,
		donation.Fund,
		donation.Amount,
		donation.DonatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create donation: %w", err)
	}
	return nil
}

func (r *donationRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*model.Donation, error) {
	query := r.rebind(`
		SELECT id, user_id, fund, amount, donated_at
		FROM donations
		WHERE user_id = ?
		ORDER BY donated_at DESC
	`)
	var donations []*model.Donation
	if err := r.db.SelectContext(ctx, &donations, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list donations: %w", err)
	}
	return donations, nil
}

func (r *donationRepository) SumByUser(ctx context.Context, userID uuid.UUID) (float64, error) {
	query := r.rebind(`SELECT COALESCE(SUM(amount), 0) FROM donations WHERE user_id = ?`)
	var total float64
	if err := r.db.GetContext(ctx, &total, query, userID); err != nil {
		return 0, fmt.Errorf("failed to sum donations: %w", err)
	}
	return total, nil
}
