package testutil

import (
	"testing"

	"github.com/jmoiron/sqlx"

	"github.com/alumnihub/portal-api/internal/repository/sqldb"
)

// NewTestDB opens an in-memory sqlite database with all migrations applied.
// It is closed automatically when the test completes.
func NewTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	db, err := sqldb.NewDB(sqldb.Config{Driver: "sqlite", Path: ":memory:"})
	if err != nil {
		t.Fatalf("creating test database: %v", err)
	}

	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("closing test database: %v", err)
		}
	})

	return db
}
