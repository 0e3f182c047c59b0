package engine

import (
	"fmt"
	"time"

	"github.com/go-co-op/gocron"
	"go.uber.org/zap"

	"github.com/mnemo-app/mnemo/internal/srs"
	"github.com/mnemo-app/mnemo/internal/store"
)

// Options are the engine tunables that sit above the pure SM-2 config.
type Options struct {
	NewPerDay      int // tier-3 batch size, zero → 5
	DailyMinutes   int // default plan budget, zero → 30
	EntryMinutes   int // estimated minutes per entry review, zero → 5
	PatternMinutes int // estimated minutes per pattern drill, zero → 15

	// RescheduleOnResume makes unsuspend recompute the due date from now
	// instead of resuming with the frozen one.
	RescheduleOnResume bool
}

func (o Options) withDefaults() Options {
	if o.NewPerDay == 0 {
		o.NewPerDay = 5
	}
	if o.DailyMinutes == 0 {
		o.DailyMinutes = 30
	}
	if o.EntryMinutes == 0 {
		o.EntryMinutes = 5
	}
	if o.PatternMinutes == 0 {
		o.PatternMinutes = 15
	}
	return o
}

// Engine orchestrates scheduling, decay estimation, and queue assembly on
// top of the store. It holds no item state of its own; every mutation goes
// through the store's transactional read-modify-write.
type Engine struct {
	DB    *store.DB
	Sched srs.Scheduler

	log  *zap.SugaredLogger
	opts Options
	cron *gocron.Scheduler
}

// New creates an Engine. Zero-value option fields get defaults.
func New(db *store.DB, sched srs.Scheduler, log *zap.SugaredLogger, opts Options) *Engine {
	return &Engine{
		DB:    db,
		Sched: sched,
		log:   log,
		opts:  opts.withDefaults(),
	}
}

// Options returns the resolved engine options.
func (e *Engine) Options() Options {
	return e.opts
}

// RegisterItem puts a trackable under spaced repetition, immediately due.
// Registering the same (type, id) pair again returns the existing record
// unchanged, so callers can fire it on every entry completion.
func (e *Engine) RegisterItem(tt srs.TrackableType, trackableID int64, title string, now time.Time) (srs.Item, bool, error) {
	if !tt.Valid() {
		return srs.Item{}, false, fmt.Errorf("register item: unknown trackable type %q", tt)
	}

	existing, err := e.DB.GetItemByTrackable(tt, trackableID)
	if err != nil {
		return srs.Item{}, false, err
	}
	if existing != nil {
		return *existing, false, nil
	}

	item := srs.NewItem(tt, trackableID, title, now)
	if err := e.DB.CreateItem(&item); err != nil {
		return srs.Item{}, false, err
	}
	e.log.Infow("item registered", "id", item.ID, "type", tt, "trackable", trackableID)
	return item, true, nil
}

// ReviewResult is what a client sees right after submitting a rating.
type ReviewResult struct {
	Item         srs.Item
	Message      string
	IntervalDays int
	NextReviewAt time.Time
	IsLeech      bool
}

// SubmitReview applies a quality rating to the item and records today's
// practice event. The scheduling update runs inside one store transaction,
// so a concurrent submission for the same item never reads stale state.
func (e *Engine) SubmitReview(id int64, quality, timeSpentSeconds int, now time.Time) (ReviewResult, error) {
	updated, err := e.DB.UpdateItemTx(id, func(item srs.Item) (srs.Item, error) {
		next, err := e.Sched.Apply(item, quality, now)
		if err != nil {
			return srs.Item{}, err
		}
		next.DecayScore = e.Sched.EstimateDecay(next, now).DecayScore
		return next, nil
	})
	if err != nil {
		return ReviewResult{}, err
	}

	if err := e.DB.RecordPractice(now); err != nil {
		e.log.Warnw("record practice failed", "item", id, "err", err)
	}

	e.log.Infow("review submitted",
		"item", id, "quality", quality, "spent_s", timeSpentSeconds,
		"interval_days", updated.IntervalDays, "ease", updated.EaseFactor,
		"leech", updated.IsLeech)

	return ReviewResult{
		Item:         updated,
		Message:      srs.FeedbackMessage(quality, updated.IntervalDays),
		IntervalDays: updated.IntervalDays,
		NextReviewAt: updated.NextReviewAt,
		IsLeech:      updated.IsLeech,
	}, nil
}

// Suspend takes an item out of the queue. Its due date is frozen as-is so
// an unsuspend can resume exactly where it left off.
func (e *Engine) Suspend(id int64) (srs.Item, error) {
	return e.DB.UpdateItemTx(id, func(item srs.Item) (srs.Item, error) {
		item.IsSuspended = true
		return item, nil
	})
}

// Unsuspend returns an item to the queue. With RescheduleOnResume the due
// date is recomputed from now; otherwise the frozen one stands.
func (e *Engine) Unsuspend(id int64, now time.Time) (srs.Item, error) {
	return e.DB.UpdateItemTx(id, func(item srs.Item) (srs.Item, error) {
		item.IsSuspended = false
		if e.opts.RescheduleOnResume {
			item.NextReviewAt = now.AddDate(0, 0, item.IntervalDays)
		}
		return item, nil
	})
}

// ResetLeech clears a latched leech flag. Nothing else clears it; a run of
// successful reviews leaves the flag in place on purpose.
func (e *Engine) ResetLeech(id int64) (srs.Item, error) {
	return e.DB.UpdateItemTx(id, func(item srs.Item) (srs.Item, error) {
		item.IsLeech = false
		return item, nil
	})
}

// RefreshDecay recomputes and persists the cached decay score for every
// item. Dashboards read the cached value; the estimator itself stays pure.
func (e *Engine) RefreshDecay(now time.Time) (int, error) {
	items, err := e.DB.ListItems()
	if err != nil {
		return 0, err
	}

	updated := 0
	for _, item := range items {
		score := e.Sched.EstimateDecay(item, now).DecayScore
		if score == item.DecayScore {
			continue
		}
		item.DecayScore = score
		if err := e.DB.UpdateItem(&item); err != nil {
			return updated, fmt.Errorf("refresh decay: %w", err)
		}
		updated++
	}
	return updated, nil
}

// StartMaintenance runs the decay refresh once now and then daily.
func (e *Engine) StartMaintenance() error {
	if n, err := e.RefreshDecay(time.Now().UTC()); err != nil {
		e.log.Warnw("decay refresh failed", "err", err)
	} else if n > 0 {
		e.log.Infow("decay refreshed", "items", n)
	}

	e.cron = gocron.NewScheduler(time.UTC)
	_, err := e.cron.Every(1).Day().At("03:30").Do(func() {
		if n, err := e.RefreshDecay(time.Now().UTC()); err != nil {
			e.log.Warnw("decay refresh failed", "err", err)
		} else {
			e.log.Infow("decay refreshed", "items", n)
		}
	})
	if err != nil {
		return fmt.Errorf("schedule maintenance: %w", err)
	}
	e.cron.StartAsync()
	return nil
}

// Stop shuts down the engine's background jobs.
func (e *Engine) Stop() {
	if e.cron != nil {
		e.cron.Stop()
	}
}
