package srs

import "time"

// TrackableType identifies what kind of journal object an Item tracks.
type TrackableType string

const (
	TrackableEntry   TrackableType = "entry"
	TrackablePattern TrackableType = "pattern"
)

// Valid reports whether t is a known trackable type.
func (t TrackableType) Valid() bool {
	return t == TrackableEntry || t == TrackablePattern
}

// Item is the spaced-repetition state for one trackable (entry or pattern).
// It is a plain value: Scheduler.Apply takes an Item and returns a new one,
// leaving the input untouched. The store owns the read-modify-write boundary.
type Item struct {
	ID            int64
	TrackableType TrackableType
	TrackableID   int64
	Title         string

	EaseFactor   float64
	IntervalDays int
	Repetitions  int // consecutive successes since last lapse
	LapseCount   int // lifetime quality<3 reviews
	ReviewCount  int // lifetime reviews of any quality

	LastReviewedAt *time.Time // nil until first review
	NextReviewAt   time.Time

	IsSuspended bool
	IsLeech     bool

	// DecayScore is a cached copy of the last estimated decay (100-retention),
	// refreshed by the engine's maintenance job. Dashboards read it without
	// recomputing; the estimator itself never writes it.
	DecayScore float64

	CreatedAt time.Time
}

// NewItem creates the initial scheduling state for a trackable: ease 2.5,
// no interval, immediately due.
func NewItem(tt TrackableType, trackableID int64, title string, now time.Time) Item {
	return Item{
		TrackableType: tt,
		TrackableID:   trackableID,
		Title:         title,
		EaseFactor:    defaultInitialEase,
		NextReviewAt:  now,
		CreatedAt:     now,
	}
}

// Due reports whether the item is due for review at the given time.
func (it Item) Due(now time.Time) bool {
	return !it.NextReviewAt.After(now)
}

// New reports whether the item has never been reviewed.
func (it Item) New() bool {
	return it.ReviewCount == 0
}
