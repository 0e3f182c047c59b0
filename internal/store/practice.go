package store

import (
	"fmt"
	"time"
)

// DayFormat is the calendar-day key used by practice_events.
const DayFormat = "2006-01-02"

// RecordPractice increments the practice count for the given calendar day.
func (db *DB) RecordPractice(day time.Time) error {
	key := day.UTC().Format(DayFormat)
	_, err := db.Exec(`
		INSERT INTO practice_events (day, count) VALUES (?, 1)
		ON CONFLICT(day) DO UPDATE SET count = count + 1
	`, key)
	if err != nil {
		return fmt.Errorf("record practice %s: %w", key, err)
	}
	return nil
}

// PracticeCounts returns day → count for all days on or after from.
func (db *DB) PracticeCounts(from time.Time) (map[string]int, error) {
	rows, err := db.Query(`SELECT day, count FROM practice_events WHERE day >= ?`,
		from.UTC().Format(DayFormat))
	if err != nil {
		return nil, fmt.Errorf("practice counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var day string
		var count int
		if err := rows.Scan(&day, &count); err != nil {
			return nil, fmt.Errorf("scan practice count: %w", err)
		}
		counts[day] = count
	}
	return counts, rows.Err()
}

// PracticeDays returns every day with at least one practice, ascending,
// across the full recorded history. Used for the longest-streak walk.
func (db *DB) PracticeDays() ([]string, error) {
	rows, err := db.Query(`SELECT day FROM practice_events WHERE count > 0 ORDER BY day`)
	if err != nil {
		return nil, fmt.Errorf("practice days: %w", err)
	}
	defer rows.Close()

	var days []string
	for rows.Next() {
		var day string
		if err := rows.Scan(&day); err != nil {
			return nil, fmt.Errorf("scan practice day: %w", err)
		}
		days = append(days, day)
	}
	return days, rows.Err()
}
