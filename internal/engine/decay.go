package engine

import (
	"sort"
	"time"

	"github.com/mnemo-app/mnemo/internal/srs"
)

// DecayOverview aggregates retention health across the tracked pool.
type DecayOverview struct {
	TotalTracked     int     `json:"total_tracked"`
	HealthyCount     int     `json:"healthy_count"`
	WarningCount     int     `json:"warning_count"`
	CriticalCount    int     `json:"critical_count"`
	AverageRetention float64 `json:"average_retention"`
	DueToday         int     `json:"items_due_today"`
}

// CriticalAlert is one decaying item on the dashboard, worst first.
type CriticalAlert struct {
	ItemID             int64             `json:"item_id"`
	TrackableType      srs.TrackableType `json:"trackable_type"`
	Title              string            `json:"title"`
	RetentionPercent   float64           `json:"retention_percent"`
	DecayScore         float64           `json:"decay_score"`
	DaysSincePractice  int               `json:"days_since_practice"`
	HoursUntilCritical float64           `json:"hours_until_critical"`
	Urgency            string            `json:"urgency"`
}

// DecayOverview computes live band counts and average retention over all
// non-suspended items. Suspended items are parked and excluded, same as
// in the queue.
func (e *Engine) DecayOverview(now time.Time) (DecayOverview, error) {
	items, err := e.DB.ListItems()
	if err != nil {
		return DecayOverview{}, err
	}

	var ov DecayOverview
	var totalRetention float64
	endOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, 1)

	for _, item := range items {
		if item.IsSuspended {
			continue
		}
		decay := e.Sched.EstimateDecay(item, now)
		ov.TotalTracked++
		totalRetention += decay.RetentionPercent
		switch decay.Band {
		case srs.BandHealthy:
			ov.HealthyCount++
		case srs.BandWarning:
			ov.WarningCount++
		default:
			ov.CriticalCount++
		}
		if item.NextReviewAt.Before(endOfDay) {
			ov.DueToday++
		}
	}

	if ov.TotalTracked > 0 {
		ov.AverageRetention = totalRetention / float64(ov.TotalTracked)
	}
	return ov, nil
}

// CriticalItems lists items whose retention has dropped out of the
// healthy band, worst retention first.
func (e *Engine) CriticalItems(now time.Time, limit int) ([]CriticalAlert, error) {
	items, err := e.DB.ListItems()
	if err != nil {
		return nil, err
	}

	var alerts []CriticalAlert
	for _, item := range items {
		if item.IsSuspended {
			continue
		}
		decay := e.Sched.EstimateDecay(item, now)
		if decay.Band == srs.BandHealthy {
			continue
		}

		ref := item.CreatedAt
		if item.LastReviewedAt != nil {
			ref = *item.LastReviewedAt
		}

		alerts = append(alerts, CriticalAlert{
			ItemID:             item.ID,
			TrackableType:      item.TrackableType,
			Title:              item.Title,
			RetentionPercent:   decay.RetentionPercent,
			DecayScore:         decay.DecayScore,
			DaysSincePractice:  int(now.Sub(ref).Hours() / 24),
			HoursUntilCritical: decay.HoursUntilCritical,
			Urgency:            urgencyFor(decay.RetentionPercent),
		})
	}

	sort.SliceStable(alerts, func(i, j int) bool {
		if alerts[i].RetentionPercent != alerts[j].RetentionPercent {
			return alerts[i].RetentionPercent < alerts[j].RetentionPercent
		}
		return alerts[i].ItemID < alerts[j].ItemID
	})
	if limit > 0 && len(alerts) > limit {
		alerts = alerts[:limit]
	}
	return alerts, nil
}

func urgencyFor(retention float64) string {
	switch {
	case retention < 30:
		return "critical"
	case retention < 40:
		return "urgent"
	default:
		return "warning"
	}
}
