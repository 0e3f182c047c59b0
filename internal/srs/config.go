package srs

const (
	defaultMinEase     = 1.3
	defaultInitialEase = 2.5
)

// Config holds the tunable constants of the retention algorithms.
// Zero values produce the defaults below; see field comments.
//
// The SM-2 coefficients and the easy bonus are a parameterization choice,
// not a law of nature, so they live here rather than as literals.
type Config struct {
	MinEase         float64 // zero → 1.3
	MaxIntervalDays int     // zero → 365
	EasyBonus       float64 // zero → 1.3; interval multiplier for quality 5

	LeechLapseThreshold int     // zero → 8; lapses must exceed this
	LeechLapseRatio     float64 // zero → 0.3; lapse/review ratio must exceed this

	HealthyRetention  float64 // zero → 70; retention %, band floor for "healthy"
	CriticalRetention float64 // zero → 40; retention %, band floor for "warning"
}

func (c Config) withDefaults() Config {
	if c.MinEase == 0 {
		c.MinEase = defaultMinEase
	}
	if c.MaxIntervalDays == 0 {
		c.MaxIntervalDays = 365
	}
	if c.EasyBonus == 0 {
		c.EasyBonus = 1.3
	}
	if c.LeechLapseThreshold == 0 {
		c.LeechLapseThreshold = 8
	}
	if c.LeechLapseRatio == 0 {
		c.LeechLapseRatio = 0.3
	}
	if c.HealthyRetention == 0 {
		c.HealthyRetention = 70
	}
	if c.CriticalRetention == 0 {
		c.CriticalRetention = 40
	}
	return c
}
