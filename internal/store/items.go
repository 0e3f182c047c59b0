package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/mnemo-app/mnemo/internal/srs"
)

const itemColumns = `id, trackable_type, trackable_id, title,
	ease_factor, interval_days, repetitions, lapse_count, review_count,
	last_reviewed_at, next_review_at, is_suspended, is_leech, decay_score, created_at`

// CreateItem inserts a new review item and fills in its assigned ID.
func (db *DB) CreateItem(item *srs.Item) error {
	var lastReviewed any
	if item.LastReviewedAt != nil {
		lastReviewed = item.LastReviewedAt.UnixMilli()
	}

	result, err := db.Exec(`
		INSERT INTO review_items (trackable_type, trackable_id, title,
			ease_factor, interval_days, repetitions, lapse_count, review_count,
			last_reviewed_at, next_review_at, is_suspended, is_leech, decay_score, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, item.TrackableType, item.TrackableID, item.Title,
		item.EaseFactor, item.IntervalDays, item.Repetitions, item.LapseCount, item.ReviewCount,
		lastReviewed, item.NextReviewAt.UnixMilli(),
		boolInt(item.IsSuspended), boolInt(item.IsLeech), item.DecayScore,
		item.CreatedAt.UnixMilli())
	if err != nil {
		return fmt.Errorf("create item: %w", err)
	}

	id, _ := result.LastInsertId()
	item.ID = id
	return nil
}

// GetItem returns an item by ID, or nil if not found.
func (db *DB) GetItem(id int64) (*srs.Item, error) {
	row := db.QueryRow(`SELECT `+itemColumns+` FROM review_items WHERE id = ?`, id)
	item, err := scanItem(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get item %d: %w", id, err)
	}
	return &item, nil
}

// GetItemByTrackable returns the item tracking (type, trackableID), or nil.
func (db *DB) GetItemByTrackable(tt srs.TrackableType, trackableID int64) (*srs.Item, error) {
	row := db.QueryRow(`SELECT `+itemColumns+` FROM review_items
		WHERE trackable_type = ? AND trackable_id = ?`, tt, trackableID)
	item, err := scanItem(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get item by trackable %s/%d: %w", tt, trackableID, err)
	}
	return &item, nil
}

// ListItems returns all review items ordered by ID.
func (db *DB) ListItems() ([]srs.Item, error) {
	rows, err := db.Query(`SELECT ` + itemColumns + ` FROM review_items ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()
	return scanItems(rows)
}

// UpdateItem writes the full scheduling state of an existing item.
func (db *DB) UpdateItem(item *srs.Item) error {
	return db.updateItem(db.DB, item)
}

type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

func (db *DB) updateItem(ex execer, item *srs.Item) error {
	var lastReviewed any
	if item.LastReviewedAt != nil {
		lastReviewed = item.LastReviewedAt.UnixMilli()
	}

	result, err := ex.Exec(`
		UPDATE review_items SET title = ?,
			ease_factor = ?, interval_days = ?, repetitions = ?,
			lapse_count = ?, review_count = ?,
			last_reviewed_at = ?, next_review_at = ?,
			is_suspended = ?, is_leech = ?, decay_score = ?
		WHERE id = ?
	`, item.Title,
		item.EaseFactor, item.IntervalDays, item.Repetitions,
		item.LapseCount, item.ReviewCount,
		lastReviewed, item.NextReviewAt.UnixMilli(),
		boolInt(item.IsSuspended), boolInt(item.IsLeech), item.DecayScore,
		item.ID)
	if err != nil {
		return fmt.Errorf("update item %d: %w", item.ID, err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("update item %d: %w", item.ID, srs.ErrNotFound)
	}
	return nil
}

// UpdateItemTx reads an item, applies fn to it, and writes the result back
// inside a single transaction. An update either fully applies or not at
// all; fn returning an error rolls everything back.
func (db *DB) UpdateItemTx(id int64, fn func(srs.Item) (srs.Item, error)) (srs.Item, error) {
	tx, err := db.Begin()
	if err != nil {
		return srs.Item{}, fmt.Errorf("begin item update: %w", err)
	}
	defer tx.Rollback()

	row := tx.QueryRow(`SELECT `+itemColumns+` FROM review_items WHERE id = ?`, id)
	item, err := scanItem(row)
	if err == sql.ErrNoRows {
		return srs.Item{}, fmt.Errorf("item %d: %w", id, srs.ErrNotFound)
	}
	if err != nil {
		return srs.Item{}, fmt.Errorf("read item %d: %w", id, err)
	}

	updated, err := fn(item)
	if err != nil {
		return srs.Item{}, err
	}

	if err := db.updateItem(tx, &updated); err != nil {
		return srs.Item{}, err
	}
	if err := tx.Commit(); err != nil {
		return srs.Item{}, fmt.Errorf("commit item update: %w", err)
	}
	return updated, nil
}

// DeleteItem removes an item. Called only when the owning trackable goes away.
func (db *DB) DeleteItem(id int64) error {
	_, err := db.Exec("DELETE FROM review_items WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete item %d: %w", id, err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (srs.Item, error) {
	var item srs.Item
	var suspended, leech int
	var lastReviewed sql.NullInt64
	var nextReview, createdAt int64

	err := row.Scan(&item.ID, &item.TrackableType, &item.TrackableID, &item.Title,
		&item.EaseFactor, &item.IntervalDays, &item.Repetitions,
		&item.LapseCount, &item.ReviewCount,
		&lastReviewed, &nextReview, &suspended, &leech, &item.DecayScore, &createdAt)
	if err != nil {
		return srs.Item{}, err
	}

	if lastReviewed.Valid {
		t := time.UnixMilli(lastReviewed.Int64).UTC()
		item.LastReviewedAt = &t
	}
	item.NextReviewAt = time.UnixMilli(nextReview).UTC()
	item.CreatedAt = time.UnixMilli(createdAt).UTC()
	item.IsSuspended = suspended != 0
	item.IsLeech = leech != 0
	return item, nil
}

func scanItems(rows *sql.Rows) ([]srs.Item, error) {
	var items []srs.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
