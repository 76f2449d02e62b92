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

func TestEventRepositoryListIncludesSeeds(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := sqldb.NewEventRepository(sqldb.NewBaseRepository(db))

	events, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(events), 3, "migrations seed a starter set of events")
}

func TestEventRepositoryCreateAndGet(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := sqldb.NewEventRepository(sqldb.NewBaseRepository(db))
	ctx := context.Background()

	event := &model.Event{
		Base:     model.Base{ID: uuid.New()},
		Title:    "Regional Meetup",
		Location: "Portland",
		Date:     "2026-10-03",
	}
	require.NoError(t, repo.Create(ctx, event))

	got, err := repo.Get(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, "Regional Meetup", got.Title)
	assert.Equal(t, "2026-10-03", got.Date)

	_, err = repo.Get(ctx, uuid.New())
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestEventRepositoryRegister(t *testing.T) {
	db := testutil.NewTestDB(t)
	base := sqldb.NewBaseRepository(db)
	events := sqldb.NewEventRepository(base)
	users := sqldb.NewUserRepository(base)
	ctx := context.Background()

	user := newUser("jordan.avery@example.com")
	require.NoError(t, users.Create(ctx, user))

	event := &model.Event{Base: model.Base{ID: uuid.New()}, Title: "Homecoming", Date: "2026-09-12"}
	require.NoError(t, events.Create(ctx, event))

	require.NoError(t, events.Register(ctx, user.ID, event.ID))
	assert.ErrorIs(t, events.Register(ctx, user.ID, event.ID), repository.ErrDuplicate)

	count, err := events.CountRegistrations(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestEventRepositoryListRegistrations(t *testing.T) {
	db := testutil.NewTestDB(t)
	base := sqldb.NewBaseRepository(db)
	events := sqldb.NewEventRepository(base)
	users := sqldb.NewUserRepository(base)
	ctx := context.Background()

	user := newUser("jordan.avery@example.com")
	require.NoError(t, users.Create(ctx, user))

	first := &model.Event{Base: model.Base{ID: uuid.New()}, Title: "First", Date: "2026-09-12"}
	second := &model.Event{Base: model.Base{ID: uuid.New()}, Title: "Second", Date: "2026-09-19"}
	require.NoError(t, events.Create(ctx, first))
	require.NoError(t, events.Create(ctx, second))

	require.NoError(t, events.Register(ctx, user.ID, first.ID))
	require.NoError(t, events.Register(ctx, user.ID, second.ID))

	registered, err := events.ListRegistrations(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, registered, 2)
	for _, r := range registered {
		assert.False(t, r.RegisteredAt.IsZero())
	}

	other, err := events.ListRegistrations(ctx, uuid.New())
	require.NoError(t, err)
	assert.Empty(t, other)
}
