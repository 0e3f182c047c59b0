package srs

import "errors"

// Sentinel errors for the srs package.
// Use errors.Is to check: errors.Is(err, srs.ErrInvalidQuality)
var (
	ErrInvalidQuality = errors.New("srs: quality out of range [0,5]")
	ErrNotFound       = errors.New("srs: review item not found")
	ErrItemSuspended  = errors.New("srs: review item is suspended")
)
