package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/mnemo-app/mnemo/internal/engine"
	"github.com/mnemo-app/mnemo/internal/srs"
)

// Config holds all mnemo configuration.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Log      LogConfig

	SRS  srs.Config
	Plan engine.Options
}

type ServerConfig struct {
	Bind string
	Port int
}

type DatabaseConfig struct {
	Path string
}

type LogConfig struct {
	// Mode is "dev" (console, debug level) or "prod" (JSON).
	Mode string
}

// Default returns a Config with sensible defaults. The SRS and plan
// sections stay zero-valued; their packages resolve their own defaults.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Bind: "127.0.0.1",
			Port: 37941,
		},
		Database: DatabaseConfig{
			Path: "", // resolved at runtime via store.DefaultDBPath()
		},
		Log: LogConfig{
			Mode: "dev",
		},
	}
}

// Load builds the configuration from defaults, a .env file if one exists
// in the working directory, and MNEMO_* environment variables, in that
// order of precedence.
func Load() Config {
	godotenv.Load()

	cfg := Default()
	if v := os.Getenv("MNEMO_BIND"); v != "" {
		cfg.Server.Bind = v
	}
	if v := envInt("MNEMO_PORT"); v > 0 {
		cfg.Server.Port = v
	}
	if v := os.Getenv("MNEMO_DB"); v != "" {
		cfg.Database.Path = v
	}
	if os.Getenv("MNEMO_LOG") == "prod" {
		cfg.Log.Mode = "prod"
	}

	if v := envFloat("MNEMO_EASY_BONUS"); v > 0 {
		cfg.SRS.EasyBonus = v
	}
	if v := envInt("MNEMO_MAX_INTERVAL_DAYS"); v > 0 {
		cfg.SRS.MaxIntervalDays = v
	}
	if v := envInt("MNEMO_LEECH_LAPSES"); v > 0 {
		cfg.SRS.LeechLapseThreshold = v
	}

	if v := envInt("MNEMO_NEW_PER_DAY"); v > 0 {
		cfg.Plan.NewPerDay = v
	}
	if v := envInt("MNEMO_DAILY_MINUTES"); v > 0 {
		cfg.Plan.DailyMinutes = v
	}
	if v := envInt("MNEMO_ENTRY_MINUTES"); v > 0 {
		cfg.Plan.EntryMinutes = v
	}
	if v := envInt("MNEMO_PATTERN_MINUTES"); v > 0 {
		cfg.Plan.PatternMinutes = v
	}
	if os.Getenv("MNEMO_RESCHEDULE_ON_RESUME") == "true" {
		cfg.Plan.RescheduleOnResume = true
	}
	return cfg
}

// ListenAddr returns the bind:port address string.
func (c *Config) ListenAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Bind, c.Server.Port)
}

func envInt(key string) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return 0
	}
	return v
}

func envFloat(key string) float64 {
	v, err := strconv.ParseFloat(os.Getenv(key), 64)
	if err != nil {
		return 0
	}
	return v
}
