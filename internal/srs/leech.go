package srs

// IsLeech reports whether item qualifies as a leech: chronically failing,
// with lapses both numerous in absolute terms and disproportionate to the
// total review count. The ratio guard keeps long-lived items that lapsed
// only early on from being flagged.
//
// The cached Item.IsLeech flag latches on the item and is only cleared by
// an explicit reset; this predicate alone never un-flags anything.
func (s Scheduler) IsLeech(item Item) bool {
	if item.LapseCount <= s.cfg.LeechLapseThreshold {
		return false
	}
	reviews := item.ReviewCount
	if reviews < 1 {
		reviews = 1
	}
	return float64(item.LapseCount)/float64(reviews) > s.cfg.LeechLapseRatio
}
