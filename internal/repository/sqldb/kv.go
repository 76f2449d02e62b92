package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alumnihub/portal-api/internal/kvstore"
)

// kvStore persists key/value entries in the kv_entries table. It backs
// deployments that run without Redis.
type kvStore struct {
	BaseRepository
}

func NewKVStore(base BaseRepository) kvstore.Store {
	return &kvStore{base}
}

func (s *kvStore) Get(ctx context.Context, key string) (string, bool, error) {
	query := s.rebind(`SELECT value FROM kv_entries WHERE key = ?`)

	var value string
	err := s.db.GetContext(ctx, &value, query, key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get kv entry: %w", err)
	}
	return value, true, nil
}

func (s *kvStore) Set(ctx context.Context, key, value string) error {
	query := s.rebind(`
		INSERT INTO kv_entries (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`)
	if _, err := s.db.ExecContext(ctx, query, key, value, time.Now()); err != nil {
		return fmt.Errorf("failed to set kv entry: %w", err)
	}
	return nil
}

func (s *kvStore) Delete(ctx context.Context, key string) error {
	query := s.rebind(`DELETE FROM kv_entries WHERE key = ?`)
	if _, err := s.db.ExecContext(ctx, query, key); err != nil {
		return fmt.Errorf("failed to delete kv entry: %w", err)
	}
	return nil
}
