package engine

import (
	"time"

	"github.com/mnemo-app/mnemo/internal/store"
)

// HeatmapDay is one calendar day of practice activity.
type HeatmapDay struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
	Level int    `json:"level"`
}

// Heatmap is the practice-activity rollup for the trailing window.
type Heatmap struct {
	Days               []HeatmapDay `json:"days"`
	TotalDaysPracticed int          `json:"total_days_practiced"`
	CurrentStreak      int          `json:"current_streak"`
	LongestStreak      int          `json:"longest_streak"`
}

// practiceLevel buckets a raw count into the 5 display bands. Fixed
// thresholds keep rendered intensity stable as history grows.
func practiceLevel(count int) int {
	switch {
	case count <= 0:
		return 0
	case count <= 2:
		return 1
	case count <= 5:
		return 2
	case count <= 9:
		return 3
	default:
		return 4
	}
}

// Heatmap returns the zero-filled day counts for the trailing window plus
// streaks. The current streak walks back from today; a today with no
// practice yet does not break it. The longest streak spans the full
// recorded history, not only the window.
func (e *Engine) Heatmap(now time.Time, windowDays int) (Heatmap, error) {
	if windowDays <= 0 {
		windowDays = 30
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	from := today.AddDate(0, 0, -(windowDays - 1))

	counts, err := e.DB.PracticeCounts(from)
	if err != nil {
		return Heatmap{}, err
	}

	hm := Heatmap{Days: make([]HeatmapDay, 0, windowDays)}
	for d := from; !d.After(today); d = d.AddDate(0, 0, 1) {
		count := counts[d.Format(store.DayFormat)]
		if count > 0 {
			hm.TotalDaysPracticed++
		}
		hm.Days = append(hm.Days, HeatmapDay{
			Date:  d.Format(store.DayFormat),
			Count: count,
			Level: practiceLevel(count),
		})
	}

	history, err := e.DB.PracticeDays()
	if err != nil {
		return Heatmap{}, err
	}
	hm.CurrentStreak, hm.LongestStreak = streaks(history, today)
	return hm, nil
}

// streaks computes the current and longest runs of consecutive practice
// days. history is ascending day keys across all time.
func streaks(history []string, today time.Time) (current, longest int) {
	practiced := make(map[string]bool, len(history))
	for _, day := range history {
		practiced[day] = true
	}

	// Today without practice has simply not extended the streak yet, so
	// the walk may start at yesterday.
	cursor := today
	if !practiced[cursor.Format(store.DayFormat)] {
		cursor = cursor.AddDate(0, 0, -1)
	}
	for practiced[cursor.Format(store.DayFormat)] {
		current++
		cursor = cursor.AddDate(0, 0, -1)
	}

	run := 0
	var prev time.Time
	for i, day := range history {
		d, err := time.Parse(store.DayFormat, day)
		if err != nil {
			continue
		}
		if i > 0 && d.Sub(prev) == 24*time.Hour {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
		prev = d
	}
	return current, longest
}
