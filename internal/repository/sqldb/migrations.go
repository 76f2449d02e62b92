package sqldb

import (
	"fmt"

	"github.com/jmoiron/sqlx"
)

// migration holds a single schema migration with its target version and SQL.
// Statements stay portable across sqlite and postgres: TEXT/REAL/INTEGER
// types, TIMESTAMP columns, ON CONFLICT DO NOTHING for seeds.
type migration struct {
	version int
	sql     string
}

var migrations = []migration{
	{
		version: 1,
		sql: `
CREATE TABLE IF NOT EXISTS schema_version (
	version INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS users (
	id            TEXT PRIMARY KEY,
	full_name     TEXT NOT NULL,
	email         TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	grad_year     TEXT NOT NULL DEFAULT '',
	career_field  TEXT NOT NULL DEFAULT '',
	created_at    TIMESTAMP NOT NULL,
	updated_at    TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS events (
	id          TEXT PRIMARY KEY,
	title       TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	location    TEXT NOT NULL DEFAULT '',
	date        TEXT NOT NULL DEFAULT '',
	image       TEXT NOT NULL DEFAULT '',
	created_at  TIMESTAMP NOT NULL,
	updated_at  TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS event_registrations (
	id            TEXT PRIMARY KEY,
	user_id       TEXT NOT NULL REFERENCES users(id),
	event_id      TEXT NOT NULL REFERENCES events(id),
	registered_at TIMESTAMP NOT NULL,
	UNIQUE (user_id, event_id)
);

CREATE TABLE IF NOT EXISTS mentors (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	title      TEXT NOT NULL DEFAULT '',
	company    TEXT NOT NULL DEFAULT '',
	image      TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMP NOT NULL,
	updated_at TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS mentor_requests (
	id           TEXT PRIMARY KEY,
	user_id      TEXT NOT NULL REFERENCES users(id),
	mentor_id    TEXT NOT NULL REFERENCES mentors(id),
	career_field TEXT NOT NULL DEFAULT '',
	grad_year    TEXT NOT NULL DEFAULT '',
	status       TEXT NOT NULL DEFAULT 'pending',
	requested_at TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS donations (
	id         TEXT PRIMARY KEY,
	user_id    TEXT NOT NULL REFERENCES users(id),
	fund       TEXT NOT NULL,
	amount     REAL NOT NULL,
	donated_at TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS feedback (
	id           TEXT PRIMARY KEY,
	user_id      TEXT NOT NULL REFERENCES users(id),
	message      TEXT NOT NULL,
	submitted_at TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS outbox_events (
	id            TEXT PRIMARY KEY,
	event_type    TEXT NOT NULL,
	payload       TEXT NOT NULL,
	status        TEXT NOT NULL DEFAULT 'pending',
	error_message TEXT,
	retry_count   INTEGER NOT NULL DEFAULT 0,
	retry_at      TIMESTAMP,
	created_at    TIMESTAMP NOT NULL,
	updated_at    TIMESTAMP NOT NULL,
	processed_at  TIMESTAMP
);

CREATE TABLE IF NOT EXISTS kv_entries (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_event_registrations_user ON event_registrations(user_id);
CREATE INDEX IF NOT EXISTS idx_mentor_requests_user ON mentor_requests(user_id);
CREATE INDEX IF NOT EXISTS idx_donations_user ON donations(user_id);
CREATE INDEX IF NOT EXISTS idx_feedback_user ON feedback(user_id);
CREATE INDEX IF NOT EXISTS idx_outbox_status ON outbox_events(status);

INSERT INTO schema_version (version) VALUES (1);
`,
	},
	{
		version: 2,
		sql: `
INSERT INTO events (id, title, description, location, date, image, created_at, updated_at) VALUES
	('6f1f9a1e-6a5e-4c29-9d3a-5f2f1c6b0a01', 'Alumni Networking Night', 'Connect with fellow alumni across different fields', 'Campus Center', '2026-09-25', 'images/Networking.jpeg', CURRENT_TIMESTAMP, CURRENT_TIMESTAMP),
	('6f1f9a1e-6a5e-4c29-9d3a-5f2f1c6b0a02', 'Career Growth Workshop', 'Resume polishing, LinkedIn optimization, and interview preparation', 'Online (Zoom)', '2026-10-10', 'images/Career.jpeg', CURRENT_TIMESTAMP, CURRENT_TIMESTAMP),
	('6f1f9a1e-6a5e-4c29-9d3a-5f2f1c6b0a03', 'Annual Alumni Gala', 'Formal celebration honoring achievements of alumni', 'City Event Hall', '2026-11-20', 'images/Gala.jpeg', CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
ON CONFLICT DO NOTHING;

INSERT INTO mentors (id, name, title, company, image, created_at, updated_at) VALUES
	('7a2b8c3d-1e4f-4a5b-8c6d-9e0f1a2b3c01', 'Sarah Thompson', 'Software Engineer', 'Microsoft', 'images/mentor1.jpeg', CURRENT_TIMESTAMP, CURRENT_TIMESTAMP),
	('7a2b8c3d-1e4f-4a5b-8c6d-9e0f1a2b3c02', 'James Anderson', 'Data Analyst', 'Deloitte', 'images/mentor2.jpeg', CURRENT_TIMESTAMP, CURRENT_TIMESTAMP),
	('7a2b8c3d-1e4f-4a5b-8c6d-9e0f1a2b3c03', 'Olivia Martinez', 'Marketing Lead', 'Nike', 'images/mentor3.jpeg', CURRENT_TIMESTAMP, CURRENT_TIMESTAMP),
	('7a2b8c3d-1e4f-4a5b-8c6d-9e0f1a2b3c04', 'Michael Lee', 'Business Consultant', 'IBM', 'images/mentor4.jpeg', CURRENT_TIMESTAMP, CURRENT_TIMESTAMP),
	('7a2b8c3d-1e4f-4a5b-8c6d-9e0f1a2b3c05', 'Rachel Kim', 'Healthcare Management', 'Mayo Clinic', 'images/mentor5.jpeg', CURRENT_TIMESTAMP, CURRENT_TIMESTAMP),
	('7a2b8c3d-1e4f-4a5b-8c6d-9e0f1a2b3c06', 'Anthony Brown', 'Financial Advisor', 'Wells Fargo', 'images/mentor6.jpeg', CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
ON CONFLICT DO NOTHING;

INSERT INTO schema_version (version) VALUES (2);
`,
	},
}

// runMigrations checks the current schema version and applies any
// outstanding migrations in order.
func runMigrations(db *sqlx.DB) error {
	currentVersion := 0

	var tableCount int
	err := db.Get(
		&tableCount,
		`SELECT COUNT(*) FROM information_schema.tables WHERE table_name = 'schema_version'`,
	)
	if err != nil {
		// sqlite has no information_schema; fall back to sqlite_master.
		err = db.Get(
			&tableCount,
			`SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'`,
		)
		if err != nil {
			return fmt.Errorf("checking schema_version table: %w", err)
		}
	}

	if tableCount > 0 {
		if err := db.Get(&currentVersion, "SELECT COALESCE(MAX(version), 0) FROM schema_version"); err != nil {
			return fmt.Errorf("reading schema version: %w", err)
		}
	}

	for _, m := range migrations {
		if m.version <= currentVersion {
			continue
		}
		if _, err := db.Exec(m.sql); err != nil {
			return fmt.Errorf("applying migration v%d: %w", m.version, err)
		}
	}

	return nil
}
