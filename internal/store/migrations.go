package store

import (
	"fmt"
)

type migration struct {
	Version     int
	Description string
	SQL         string
}

var migrations = []migration{
	{
		Version:     1,
		Description: "review_items: spaced-repetition state per trackable",
		SQL: `
CREATE TABLE review_items (
    id               INTEGER PRIMARY KEY,
    trackable_type   TEXT NOT NULL CHECK (trackable_type IN ('entry', 'pattern')),
    trackable_id     INTEGER NOT NULL,
    title            TEXT NOT NULL DEFAULT '',

    -- SM-2 state
    ease_factor      REAL NOT NULL DEFAULT 2.5,
    interval_days    INTEGER NOT NULL DEFAULT 0,
    repetitions      INTEGER NOT NULL DEFAULT 0,
    lapse_count      INTEGER NOT NULL DEFAULT 0,
    review_count     INTEGER NOT NULL DEFAULT 0,

    -- Scheduling
    last_reviewed_at INTEGER,
    next_review_at   INTEGER NOT NULL,

    -- Flags
    is_suspended     INTEGER NOT NULL DEFAULT 0,
    is_leech         INTEGER NOT NULL DEFAULT 0,

    -- Cached decay (refreshed by the maintenance job)
    decay_score      REAL NOT NULL DEFAULT 0,

    created_at       INTEGER NOT NULL,

    UNIQUE (trackable_type, trackable_id)
);

CREATE INDEX idx_items_due       ON review_items(next_review_at);
CREATE INDEX idx_items_suspended ON review_items(is_suspended);
`,
	},
	{
		Version:     2,
		Description: "practice_events: per-day practice counts for the heatmap",
		SQL: `
CREATE TABLE practice_events (
    day   TEXT PRIMARY KEY,
    count INTEGER NOT NULL DEFAULT 0
);
`,
	},
}

func (db *DB) migrate() error {
	// Create schema_versions table if it doesn't exist
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_versions (
			version     INTEGER PRIMARY KEY,
			description TEXT NOT NULL,
			applied_at  INTEGER NOT NULL DEFAULT (strftime('%s', 'now') * 1000)
		)
	`)
	if err != nil {
		return fmt.Errorf("create schema_versions: %w", err)
	}

	for _, m := range migrations {
		var count int
		err := db.QueryRow("SELECT COUNT(*) FROM schema_versions WHERE version = ?", m.Version).Scan(&count)
		if err != nil {
			return fmt.Errorf("check migration %d: %w", m.Version, err)
		}
		if count > 0 {
			continue
		}

		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("begin migration %d: %w", m.Version, err)
		}

		if _, err := tx.Exec(m.SQL); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %d (%s): %w", m.Version, m.Description, err)
		}

		if _, err := tx.Exec(
			"INSERT INTO schema_versions (version, description) VALUES (?, ?)",
			m.Version, m.Description,
		); err != nil {
			tx.Rollback()
			return fmt.Errorf("record migration %d: %w", m.Version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit migration %d: %w", m.Version, err)
		}
	}

	return nil
}

// SchemaVersion returns the current schema version.
func (db *DB) SchemaVersion() (int, error) {
	var version int
	err := db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_versions").Scan(&version)
	return version, err
}
