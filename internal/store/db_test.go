package store

import (
	"testing"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	db, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestOpenMemory(t *testing.T) {
	db := testDB(t)

	if db.Path != ":memory:" {
		t.Errorf("Path = %q, want :memory:", db.Path)
	}
}

func TestSchemaVersion(t *testing.T) {
	db := testDB(t)

	v, err := db.SchemaVersion()
	if err != nil {
		t.Fatalf("SchemaVersion: %v", err)
	}
	if v != 2 {
		t.Errorf("SchemaVersion = %d, want 2", v)
	}
}

func TestTablesExist(t *testing.T) {
	db := testDB(t)

	tables := []string{"schema_versions", "review_items", "practice_events"}
	for _, table := range tables {
		var name string
		err := db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		if err != nil {
			t.Errorf("table %q not found: %v", table, err)
		}
	}
}

func TestReviewItemConstraints(t *testing.T) {
	db := testDB(t)

	// Valid insert
	_, err := db.Exec(`
		INSERT INTO review_items (trackable_type, trackable_id, next_review_at, created_at)
		VALUES ('entry', 1, 1000, 1000)
	`)
	if err != nil {
		t.Fatalf("valid insert failed: %v", err)
	}

	// Invalid trackable_type
	_, err = db.Exec(`
		INSERT INTO review_items (trackable_type, trackable_id, next_review_at, created_at)
		VALUES ('habit', 2, 1000, 1000)
	`)
	if err == nil {
		t.Error("expected error for invalid trackable_type, got nil")
	}

	// Duplicate (trackable_type, trackable_id)
	_, err = db.Exec(`
		INSERT INTO review_items (trackable_type, trackable_id, next_review_at, created_at)
		VALUES ('entry', 1, 1000, 1000)
	`)
	if err == nil {
		t.Error("expected unique violation for duplicate trackable, got nil")
	}
}
