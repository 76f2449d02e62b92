package sqldb_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alumnihub/portal-api/internal/model"
	"github.com/alumnihub/portal-api/internal/repository/sqldb"
	"github.com/alumnihub/portal-api/internal/testutil"
)

func TestDonationRepository(t *testing.T) {
	db := testutil.NewTestDB(t)
	base := sqldb.NewBaseRepository(db)
	donations := sqldb.NewDonationRepository(base)
	users := sqldb.NewUserRepository(base)
	ctx := context.Background()

	user := newUser("jordan.avery@example.com")
	require.NoError(t, users.Create(ctx, user))

	for _, amount := range []float64{175, 125.50} {
		d := &model.Donation{
			ID:     uuid.New(),
			UserID: user.ID,
			Fund:   "Annual Fund",
			Amount: amount,
		}
		require.NoError(t, donations.Create(ctx, d))
	}

	list, err := donations.ListByUser(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Annual Fund", list[0].Fund)

	total, err := donations.SumByUser(ctx, user.ID)
	require.NoError(t, err)
	assert.InDelta(t, 300.50, total, 0.001)

	total, err = donations.SumByUser(ctx, uuid.New())
	require.NoError(t, err)
	assert.Zero(t, total, "no rows sums to zero")
}

func TestFeedbackRepository(t *testing.T) {
	db := testutil.NewTestDB(t)
	base := sqldb.NewBaseRepository(db)
	feedback := sqldb.NewFeedbackRepository(base)
	users := sqldb.NewUserRepository(base)
	ctx := context.Background()

	user := newUser("jordan.avery@example.com")
	require.NoError(t, users.Create(ctx, user))

	entry := &model.Feedback{
		ID:      uuid.New(),
		UserID:  user.ID,
		Message: "The mentor directory could use filters.",
	}
	require.NoError(t, feedback.Create(ctx, entry))
	assert.False(t, entry.SubmittedAt.IsZero())

	list, err := feedback.ListByUser(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, entry.Message, list[0].Message)

	other, err := feedback.ListByUser(ctx, uuid.New())
	require.NoError(t, err)
	assert.Empty(t, other)
}
