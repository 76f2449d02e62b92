package sqldb_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alumnihub/portal-api/internal/model"
	"github.com/alumnihub/portal-api/internal/repository/sqldb"
	"github.com/alumnihub/portal-api/internal/testutil"
)

func TestOutboxRepositoryCreate(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := sqldb.NewOutboxRepository(sqldb.NewBaseRepository(db))
	ctx := context.Background()

	event := &model.OutboxEvent{
		EventType: model.EventTypeEventRegistration,
		Payload:   json.RawMessage(`{"event_id":"e-1"}`),
	}
	require.NoError(t, repo.Create(ctx, event))
	assert.NotEqual(t, event.ID.String(), "00000000-0000-0000-0000-000000000000")
	assert.Equal(t, string(model.OutboxStatusPending), event.Status)

	assert.Error(t, repo.Create(ctx, nil))
	assert.Error(t, repo.Create(ctx, &model.OutboxEvent{EventType: "X"}), "payload is required")
}

func TestOutboxRepositoryPendingAndRetry(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := sqldb.NewOutboxRepository(sqldb.NewBaseRepository(db))
	ctx := context.Background()

	first := &model.OutboxEvent{EventType: "A", Payload: json.RawMessage(`{}`)}
	second := &model.OutboxEvent{EventType: "B", Payload: json.RawMessage(`{}`)}
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))

	pending, err := repo.GetPendingEvents(ctx, 10)
	require.NoError(t, err)
	require.Len(t, pending, 2)

	// A retry scheduled in the future is held back until its retry_at passes.
	msg := "broker unavailable"
	future := time.Now().Add(time.Hour)
	require.NoError(t, repo.UpdateStatus(ctx, first.ID, model.OutboxStatusRetry, &msg, &future))

	pending, err = repo.GetPendingEvents(ctx, 10)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, second.ID, pending[0].ID)

	past := time.Now().Add(-time.Minute)
	require.NoError(t, repo.UpdateStatus(ctx, first.ID, model.OutboxStatusRetry, &msg, &past))

	pending, err = repo.GetPendingEvents(ctx, 10)
	require.NoError(t, err)
	require.Len(t, pending, 2)

	var retried *model.OutboxEvent
	for _, e := range pending {
		if e.ID == first.ID {
			retried = e
		}
	}
	require.NotNil(t, retried)
	assert.Equal(t, 2, retried.RetryCount, "each retry transition increments the count")
	require.NotNil(t, retried.ErrorMessage)
	assert.Equal(t, msg, *retried.ErrorMessage)
}

func TestOutboxRepositoryProcessedLifecycle(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := sqldb.NewOutboxRepository(sqldb.NewBaseRepository(db))
	ctx := context.Background()

	event := &model.OutboxEvent{EventType: "A", Payload: json.RawMessage(`{}`)}
	require.NoError(t, repo.Create(ctx, event))

	require.NoError(t, repo.UpdateStatus(ctx, event.ID, model.OutboxStatusProcessed, nil, nil))

	pending, err := repo.GetPendingEvents(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, pending)

	deleted, err := repo.DeleteProcessedBefore(ctx, time.Now().Add(time.Minute))
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	deleted, err = repo.DeleteProcessedBefore(ctx, time.Now())
	require.NoError(t, err)
	assert.Zero(t, deleted)
}
