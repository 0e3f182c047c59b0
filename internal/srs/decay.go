package srs

import (
	"math"
	"time"
)

// HealthBand classifies an item's current retention.
type HealthBand string

const (
	BandHealthy  HealthBand = "healthy"  // retention >= 70%
	BandWarning  HealthBand = "warning"  // 40% <= retention < 70%
	BandCritical HealthBand = "critical" // retention < 40%
)

// DecayResult is the outcome of a retention estimate for a single item.
type DecayResult struct {
	RetentionPercent   float64
	DecayScore         float64 // 100 - retention; higher is worse
	Band               HealthBand
	HoursUntilCritical float64 // 0 once already critical
}

// EstimateDecay computes the Ebbinghaus retention estimate for item as of
// the given time. It is read-only and valid for any item at any time,
// whether or not a review is due.
//
// Memory strength S (in days) is interval * ease, floored at 1 day, so
// strength grows super-linearly with consecutive successes. Retention is
// exp(-t/S) with t measured from the last review, or from creation for
// items never reviewed.
func (s Scheduler) EstimateDecay(item Item, asOf time.Time) DecayResult {
	stability := float64(item.IntervalDays) * item.EaseFactor
	if stability < 1 {
		stability = 1
	}

	ref := item.CreatedAt
	if item.LastReviewedAt != nil {
		ref = *item.LastReviewedAt
	}

	elapsed := asOf.Sub(ref).Hours() / 24
	if elapsed < 0 {
		elapsed = 0
	}

	retention := math.Exp(-elapsed/stability) * 100
	if retention > 100 {
		retention = 100
	}
	if retention < 0 {
		retention = 0
	}

	res := DecayResult{
		RetentionPercent: retention,
		DecayScore:       100 - retention,
		Band:             s.band(retention),
	}

	// Forward-looking only: solve exp(-t/S) = critical threshold for the
	// remaining time. An item already below it reports 0, never a negative.
	if retention >= s.cfg.CriticalRetention {
		tCritical := -stability * math.Log(s.cfg.CriticalRetention/100)
		remaining := (tCritical - elapsed) * 24
		if remaining > 0 {
			res.HoursUntilCritical = remaining
		}
	}

	return res
}

func (s Scheduler) band(retention float64) HealthBand {
	switch {
	case retention >= s.cfg.HealthyRetention:
		return BandHealthy
	case retention >= s.cfg.CriticalRetention:
		return BandWarning
	default:
		return BandCritical
	}
}
