package dashboard_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alumnihub/portal-api/internal/model"
	"github.com/alumnihub/portal-api/internal/repository/sqldb"
	"github.com/alumnihub/portal-api/internal/service/dashboard"
	"github.com/alumnihub/portal-api/internal/testutil"
)

func TestStatsScore(t *testing.T) {
	db := testutil.NewTestDB(t)
	base := sqldb.NewBaseRepository(db)
	eventRepo := sqldb.NewEventRepository(base)
	mentorRepo := sqldb.NewMentorRepository(base)
	donationRepo := sqldb.NewDonationRepository(base)
	userRepo := sqldb.NewUserRepository(base)
	svc := dashboard.NewService(eventRepo, mentorRepo, donationRepo)
	ctx := context.Background()

	user := &model.User{
		Base:         model.Base{ID: uuid.New()},
		FullName:     "Jordan Avery",
		Email:        "jordan.avery@example.com",
		PasswordHash: "x",
	}
	require.NoError(t, userRepo.Create(ctx, user))

	event := &model.Event{Base: model.Base{ID: uuid.New()}, Title: "Homecoming", Date: "2026-09-12"}
	require.NoError(t, eventRepo.Create(ctx, event))
	require.NoError(t, eventRepo.Register(ctx, user.ID, event.ID))

	mentors, err := mentorRepo.List(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, mentors)
	require.NoError(t, mentorRepo.CreateRequest(ctx, &model.MentorRequest{
		ID:       uuid.New(),
		UserID:   user.ID,
		MentorID: mentors[0].ID,
	}))

	require.NoError(t, donationRepo.Create(ctx, &model.Donation{
		ID:     uuid.New(),
		UserID: user.ID,
		Fund:   "Annual Fund",
		Amount: 250,
	}))

	stats, err := svc.Stats(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.EventsAttended)
	assert.Equal(t, 1, stats.MentorRequests)
	assert.InDelta(t, 250, stats.TotalDonations, 0.001)
	// 1 event (15) + 1 request (10) + $250 (25)
	assert.Equal(t, 50, stats.EngagementScore)
}

func TestStatsScoreCapsAtHundred(t *testing.T) {
	db := testutil.NewTestDB(t)
	base := sqldb.NewBaseRepository(db)
	eventRepo := sqldb.NewEventRepository(base)
	donationRepo := sqldb.NewDonationRepository(base)
	userRepo := sqldb.NewUserRepository(base)
	svc := dashboard.NewService(eventRepo, sqldb.NewMentorRepository(base), donationRepo)
	ctx := context.Background()

	user := &model.User{Base: model.Base{ID: uuid.New()}, FullName: "J", Email: "j@example.com", PasswordHash: "x"}
	require.NoError(t, userRepo.Create(ctx, user))
	require.NoError(t, donationRepo.Create(ctx, &model.Donation{
		ID:     uuid.New(),
		UserID: user.ID,
		Fund:   "Annual Fund",
		Amount: 5000,
	}))

	stats, err := svc.Stats(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 100, stats.EngagementScore)
}

func TestStatsCacheInvalidation(t *testing.T) {
	db := testutil.NewTestDB(t)
	base := sqldb.NewBaseRepository(db)
	eventRepo := sqldb.NewEventRepository(base)
	donationRepo := sqldb.NewDonationRepository(base)
	userRepo := sqldb.NewUserRepository(base)
	svc := dashboard.NewService(eventRepo, sqldb.NewMentorRepository(base), donationRepo)
	ctx := context.Background()

	user := &model.User{Base: model.Base{ID: uuid.New()}, FullName: "J", Email: "j@example.com", PasswordHash: "x"}
	require.NoError(t, userRepo.Create(ctx, user))

	stats, err := svc.Stats(ctx, user.ID)
	require.NoError(t, err)
	assert.Zero(t, stats.EngagementScore)

	require.NoError(t, donationRepo.Create(ctx, &model.Donation{
		ID:     uuid.New(),
		UserID: user.ID,
		Fund:   "Annual Fund",
		Amount: 100,
	}))

	// Cached copy is served until a write invalidates it.
	stats, err = svc.Stats(ctx, user.ID)
	require.NoError(t, err)
	assert.Zero(t, stats.EngagementScore)

	svc.Invalidate(user.ID)

	stats, err = svc.Stats(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, stats.EngagementScore)
	assert.InDelta(t, 100, stats.TotalDonations, 0.001)
}
