package engine

import (
	"sort"
	"time"

	"github.com/mnemo-app/mnemo/internal/srs"
)

// Queue tiers, highest priority first.
const (
	TierDue      = 1 // past due, most overdue first
	TierCritical = 2 // not yet due but retention already critical
	TierNew      = 3 // never reviewed, oldest first
)

// QueueEntry is one ranked item with the context that ranked it.
type QueueEntry struct {
	Item        srs.Item
	Tier        int
	OverdueDays float64 // > 0 only for tier 1
	Decay       srs.DecayResult
}

// QueueOptions bound the assembled queue. Zero Limit means unbounded;
// zero NewLimit means no new items.
type QueueOptions struct {
	Limit    int
	NewLimit int
}

// BuildQueue ranks the candidate pool into due, critical-decay, and new
// tiers and truncates to the limit. Suspended items never appear. Items
// with no review history land in the new tier even though they are
// created due, so fresh material cannot shoulder past overdue reviews.
func BuildQueue(sched srs.Scheduler, items []srs.Item, now time.Time, opts QueueOptions) []QueueEntry {
	var due, critical, fresh []QueueEntry

	for _, item := range items {
		if item.IsSuspended {
			continue
		}
		decay := sched.EstimateDecay(item, now)

		switch {
		case item.New():
			fresh = append(fresh, QueueEntry{Item: item, Tier: TierNew, Decay: decay})
		case item.Due(now):
			due = append(due, QueueEntry{
				Item:        item,
				Tier:        TierDue,
				OverdueDays: now.Sub(item.NextReviewAt).Hours() / 24,
				Decay:       decay,
			})
		case decay.Band == srs.BandCritical:
			critical = append(critical, QueueEntry{Item: item, Tier: TierCritical, Decay: decay})
		}
	}

	sort.SliceStable(due, func(i, j int) bool {
		if due[i].OverdueDays != due[j].OverdueDays {
			return due[i].OverdueDays > due[j].OverdueDays
		}
		return due[i].Item.ID < due[j].Item.ID
	})
	sort.SliceStable(critical, func(i, j int) bool {
		a, b := critical[i], critical[j]
		if a.Decay.HoursUntilCritical != b.Decay.HoursUntilCritical {
			return a.Decay.HoursUntilCritical < b.Decay.HoursUntilCritical
		}
		if a.Decay.DecayScore != b.Decay.DecayScore {
			return a.Decay.DecayScore > b.Decay.DecayScore
		}
		return a.Item.ID < b.Item.ID
	})
	sort.SliceStable(fresh, func(i, j int) bool {
		a, b := fresh[i].Item, fresh[j].Item
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	})
	if opts.NewLimit >= 0 && len(fresh) > opts.NewLimit {
		fresh = fresh[:opts.NewLimit]
	}

	queue := append(append(due, critical...), fresh...)
	if opts.Limit > 0 && len(queue) > opts.Limit {
		queue = queue[:opts.Limit]
	}
	return queue
}

// QueueStats summarizes the review workload around a queue response.
type QueueStats struct {
	DueNow           int `json:"due_now"`
	DueToday         int `json:"due_today"`
	Overdue          int `json:"overdue"`
	Learning         int `json:"learning_count"`
	Review           int `json:"review_count"`
	New              int `json:"new_count"`
	EstimatedMinutes int `json:"estimated_minutes"`
}

// queueStats aggregates workload counters over the full item set.
// Learning items are those still in the short-interval ramp (fewer than
// three consecutive successes); the rest of the reviewed pool is in the
// long-interval review phase.
func (e *Engine) queueStats(items []srs.Item, now time.Time) QueueStats {
	var stats QueueStats
	endOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, 1)
	startOfDay := endOfDay.AddDate(0, 0, -1)

	for _, item := range items {
		if item.IsSuspended {
			continue
		}
		switch {
		case item.New():
			stats.New++
		case item.Repetitions < 3:
			stats.Learning++
		default:
			stats.Review++
		}

		if item.Due(now) {
			stats.DueNow++
			stats.EstimatedMinutes += e.minutesFor(item.TrackableType)
		}
		if item.NextReviewAt.Before(endOfDay) {
			stats.DueToday++
		}
		if item.NextReviewAt.Before(startOfDay) {
			stats.Overdue++
		}
	}
	return stats
}

func (e *Engine) minutesFor(tt srs.TrackableType) int {
	if tt == srs.TrackablePattern {
		return e.opts.PatternMinutes
	}
	return e.opts.EntryMinutes
}

// Queue assembles the ranked review queue plus workload stats.
func (e *Engine) Queue(now time.Time, limit int) ([]QueueEntry, QueueStats, error) {
	items, err := e.DB.ListItems()
	if err != nil {
		return nil, QueueStats{}, err
	}
	queue := BuildQueue(e.Sched, items, now, QueueOptions{Limit: limit, NewLimit: e.opts.NewPerDay})
	return queue, e.queueStats(items, now), nil
}
