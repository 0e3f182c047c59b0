package srs

import (
	"errors"
	"math"
	"testing"
	"time"
)

var testNow = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

func newTestItem() Item {
	return NewItem(TrackableEntry, 1, "binary search invariants", testNow)
}

func TestApplyFirstReviews(t *testing.T) {
	sched := NewScheduler(Config{})
	item := newTestItem()

	// First success: interval 1, one repetition.
	item, err := sched.Apply(item, 4, testNow)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if item.IntervalDays != 1 {
		t.Errorf("interval after first review = %d, want 1", item.IntervalDays)
	}
	if item.Repetitions != 1 {
		t.Errorf("repetitions = %d, want 1", item.Repetitions)
	}

	// Second success: interval 6.
	item, err = sched.Apply(item, 4, testNow.AddDate(0, 0, 1))
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if item.IntervalDays != 6 {
		t.Errorf("interval after second review = %d, want 6", item.IntervalDays)
	}
	if item.Repetitions != 2 {
		t.Errorf("repetitions = %d, want 2", item.Repetitions)
	}

	// Lapse: everything resets except the lifetime counters.
	item, err = sched.Apply(item, 2, testNow.AddDate(0, 0, 7))
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if item.Repetitions != 0 {
		t.Errorf("repetitions after lapse = %d, want 0", item.Repetitions)
	}
	if item.IntervalDays != 1 {
		t.Errorf("interval after lapse = %d, want 1", item.IntervalDays)
	}
	if item.LapseCount != 1 {
		t.Errorf("lapse count = %d, want 1", item.LapseCount)
	}
	if item.ReviewCount != 3 {
		t.Errorf("review count = %d, want 3", item.ReviewCount)
	}
}

func TestApplyEaseFloor(t *testing.T) {
	sched := NewScheduler(Config{})
	item := newTestItem()

	// Repeated blackouts drive the ease factor down; it must never pass 1.3.
	for i := 0; i < 10; i++ {
		var err error
		item, err = sched.Apply(item, 0, testNow.AddDate(0, 0, i))
		if err != nil {
			t.Fatalf("Apply #%d: %v", i, err)
		}
		if item.EaseFactor < 1.3 {
			t.Fatalf("ease factor = %v after %d lapses, want >= 1.3", item.EaseFactor, i+1)
		}
	}
}

func TestApplyEaseAdjustment(t *testing.T) {
	sched := NewScheduler(Config{})
	item := newTestItem()

	// Quality 5: EF + 0.1. Quality 4: unchanged. Quality 3: EF - 0.14.
	got, err := sched.Apply(item, 5, testNow)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if math.Abs(got.EaseFactor-2.6) > 1e-9 {
		t.Errorf("ease after quality 5 = %v, want 2.6", got.EaseFactor)
	}

	got, err = sched.Apply(item, 4, testNow)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if math.Abs(got.EaseFactor-2.5) > 1e-9 {
		t.Errorf("ease after quality 4 = %v, want 2.5", got.EaseFactor)
	}

	got, err = sched.Apply(item, 3, testNow)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if math.Abs(got.EaseFactor-2.36) > 1e-9 {
		t.Errorf("ease after quality 3 = %v, want 2.36", got.EaseFactor)
	}
}

func TestApplyNotIdempotent(t *testing.T) {
	sched := NewScheduler(Config{})
	item := newTestItem()

	first, err := sched.Apply(item, 4, testNow)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	second, err := sched.Apply(first, 4, testNow)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}

	// Replaying the same rating must not replay the same schedule: the
	// repetition count moved, so the interval must differ.
	if second.IntervalDays == first.IntervalDays {
		t.Errorf("second interval = %d, want different from first (%d)",
			second.IntervalDays, first.IntervalDays)
	}
}

func TestApplyGrowthInterval(t *testing.T) {
	sched := NewScheduler(Config{})
	item := newTestItem()
	item.Repetitions = 2
	item.IntervalDays = 6

	got, err := sched.Apply(item, 4, testNow)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	// round(6 * 2.5) = 15
	if got.IntervalDays != 15 {
		t.Errorf("interval = %d, want 15", got.IntervalDays)
	}
}

func TestApplyEasyBonus(t *testing.T) {
	sched := NewScheduler(Config{})
	item := newTestItem()
	item.Repetitions = 2
	item.IntervalDays = 10

	got, err := sched.Apply(item, 5, testNow)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	// EF becomes 2.6; round(10 * 2.6 * 1.3) = 34. Without the bonus it
	// would be 26, so the multiplier is on top of SM-2, not instead of it.
	if got.IntervalDays != 34 {
		t.Errorf("interval with easy bonus = %d, want 34", got.IntervalDays)
	}
}

func TestApplyMaxInterval(t *testing.T) {
	sched := NewScheduler(Config{})
	item := newTestItem()
	item.Repetitions = 10
	item.IntervalDays = 300

	got, err := sched.Apply(item, 4, testNow)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if got.IntervalDays != 365 {
		t.Errorf("interval = %d, want clamped to 365", got.IntervalDays)
	}
}

func TestApplyInvalidQuality(t *testing.T) {
	sched := NewScheduler(Config{})
	item := newTestItem()

	for _, q := range []int{-1, 6, 42} {
		_, err := sched.Apply(item, q, testNow)
		if !errors.Is(err, ErrInvalidQuality) {
			t.Errorf("Apply(quality=%d) error = %v, want ErrInvalidQuality", q, err)
		}
	}
}

func TestApplySuspended(t *testing.T) {
	sched := NewScheduler(Config{})
	item := newTestItem()
	item.IsSuspended = true

	_, err := sched.Apply(item, 4, testNow)
	if !errors.Is(err, ErrItemSuspended) {
		t.Errorf("Apply on suspended item error = %v, want ErrItemSuspended", err)
	}
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	sched := NewScheduler(Config{})
	item := newTestItem()
	before := item

	if _, err := sched.Apply(item, 4, testNow); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if item != before {
		t.Error("Apply mutated its input item")
	}
}

func TestApplyNextReviewAfterLastReview(t *testing.T) {
	sched := NewScheduler(Config{})
	item := newTestItem()

	for _, q := range []int{4, 4, 2, 3, 5} {
		var err error
		item, err = sched.Apply(item, q, testNow)
		if err != nil {
			t.Fatalf("Apply(%d): %v", q, err)
		}
		if item.NextReviewAt.Before(*item.LastReviewedAt) {
			t.Fatalf("next review %v before last review %v", item.NextReviewAt, item.LastReviewedAt)
		}
	}
}

func TestFeedbackMessage(t *testing.T) {
	msg := FeedbackMessage(5, 12)
	if msg != "Perfect! See you in 12 days." {
		t.Errorf("quality 5 message = %q", msg)
	}
	if FeedbackMessage(1, 1) == "" {
		t.Error("lapse message should not be empty")
	}
}
