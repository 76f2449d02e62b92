package sqldb_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alumnihub/portal-api/internal/model"
	"github.com/alumnihub/portal-api/internal/repository"
	"github.com/alumnihub/portal-api/internal/repository/sqldb"
	"github.com/alumnihub/portal-api/internal/testutil"
)

func TestMentorRepositoryListAndGet(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := sqldb.NewMentorRepository(sqldb.NewBaseRepository(db))
	ctx := context.Background()

	mentors, err := repo.List(ctx)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(mentors), 6, "migrations seed the mentor directory")

	got, err := repo.Get(ctx, mentors[0].ID)
	require.NoError(t, err)
	assert.Equal(t, mentors[0].Name, got.Name)

	_, err = repo.Get(ctx, uuid.New())
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestMentorRepositoryRequests(t *testing.T) {
	db := testutil.NewTestDB(t)
	base := sqldb.NewBaseRepository(db)
	mentors := sqldb.NewMentorRepository(base)
	users := sqldb.NewUserRepository(base)
	ctx := context.Background()

	user := newUser("jordan.avery@example.com")
	require.NoError(t, users.Create(ctx, user))

	directory, err := mentors.List(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, directory)
	mentor := directory[0]

	req := &model.MentorRequest{
		ID:          uuid.New(),
		UserID:      user.ID,
		MentorID:    mentor.ID,
		CareerField: "Engineering",
		GradYear:    "2015",
	}
	require.NoError(t, mentors.CreateRequest(ctx, req))
	assert.Equal(t, model.MentorRequestStatusPending, req.Status, "status defaults to pending")

	requests, err := mentors.ListRequests(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, requests, 1)
	assert.Equal(t, mentor.ID, requests[0].MentorID)
	assert.Equal(t, mentor.Name, requests[0].MentorName)
	assert.Equal(t, model.MentorRequestStatusPending, requests[0].Status)

	count, err := mentors.CountRequests(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	count, err = mentors.CountRequests(ctx, uuid.New())
	require.NoError(t, err)
	assert.Zero(t, count)
}
