package srs

import (
	"fmt"
	"math"
	"time"
)

// Scheduler applies SuperMemo-2 review results to item state.
//
// Key formula: EF' = EF + (0.1 - (5-q)*(0.08 + (5-q)*0.02)), floored at
// Config.MinEase. Intervals grow 1 → 6 → round(previous * EF'), with an
// extra multiplier for perfect recall.
type Scheduler struct {
	cfg Config
}

// NewScheduler creates a Scheduler. Zero-value config fields get defaults.
func NewScheduler(cfg Config) Scheduler {
	return Scheduler{cfg: cfg.withDefaults()}
}

// Config returns the resolved configuration.
func (s Scheduler) Config() Config {
	return s.cfg
}

// Apply rates a review of item with the given quality at time now and
// returns the resulting state. The input item is not modified.
//
// Quality >= 3 is a success; below 3 is a lapse that resets the
// consecutive-success counter and schedules the item for tomorrow.
func (s Scheduler) Apply(item Item, quality int, now time.Time) (Item, error) {
	if quality < 0 || quality > 5 {
		return Item{}, fmt.Errorf("%w: got %d", ErrInvalidQuality, quality)
	}
	if item.IsSuspended {
		return Item{}, fmt.Errorf("%w: item %d", ErrItemSuspended, item.ID)
	}

	out := item

	// Ease factor moves on every review, success or lapse.
	ef := item.EaseFactor + (0.1 - float64(5-quality)*(0.08+float64(5-quality)*0.02))
	if ef < s.cfg.MinEase {
		ef = s.cfg.MinEase
	}
	out.EaseFactor = ef

	if quality >= 3 {
		out.IntervalDays = s.nextInterval(item, ef, quality)
		out.Repetitions++
	} else {
		out.Repetitions = 0
		out.IntervalDays = 1
		out.LapseCount++
	}

	out.ReviewCount++
	reviewed := now
	out.LastReviewedAt = &reviewed
	out.NextReviewAt = now.AddDate(0, 0, out.IntervalDays)

	// Leech status latches: a subsequent success never clears it.
	if s.IsLeech(out) {
		out.IsLeech = true
	}

	return out, nil
}

// nextInterval computes the post-success interval. The easy bonus for
// quality 5 multiplies the standard SM-2 result before rounding; it is an
// extra reward on top of the algorithm, not a replacement for it.
func (s Scheduler) nextInterval(item Item, ef float64, quality int) int {
	var days float64
	switch item.Repetitions {
	case 0:
		days = 1
	case 1:
		days = 6
	default:
		days = float64(item.IntervalDays) * ef
	}

	if quality == 5 {
		days *= s.cfg.EasyBonus
	}

	n := int(math.Round(days))
	if n < 1 {
		n = 1
	}
	if n > s.cfg.MaxIntervalDays {
		n = s.cfg.MaxIntervalDays
	}
	return n
}

// FeedbackMessage returns the user-facing result line for a submitted review.
func FeedbackMessage(quality, intervalDays int) string {
	switch {
	case quality >= 5:
		return fmt.Sprintf("Perfect! See you in %d days.", intervalDays)
	case quality >= 4:
		return fmt.Sprintf("Good recall! Next review in %d days.", intervalDays)
	case quality >= 3:
		return fmt.Sprintf("Correct, but needs practice. See you in %d days.", intervalDays)
	case quality >= 2:
		return "Keep practicing - you'll get it!"
	default:
		return "No worries, we'll review this again soon."
	}
}
