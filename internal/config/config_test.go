package config

import "testing"

func TestDefaults(t *testing.T) {
	cfg := Default()
	if cfg.Server.Bind != "127.0.0.1" || cfg.Server.Port == 0 {
		t.Errorf("unexpected server defaults: %+v", cfg.Server)
	}
	if cfg.Log.Mode != "dev" {
		t.Errorf("Log.Mode = %q, want dev", cfg.Log.Mode)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("MNEMO_PORT", "4242")
	t.Setenv("MNEMO_DB", "/tmp/mnemo-test.db")
	t.Setenv("MNEMO_DAILY_MINUTES", "45")
	t.Setenv("MNEMO_EASY_BONUS", "1.5")

	cfg := Load()
	if cfg.Server.Port != 4242 {
		t.Errorf("Port = %d, want 4242", cfg.Server.Port)
	}
	if cfg.Database.Path != "/tmp/mnemo-test.db" {
		t.Errorf("Database.Path = %q", cfg.Database.Path)
	}
	if cfg.Plan.DailyMinutes != 45 {
		t.Errorf("DailyMinutes = %d, want 45", cfg.Plan.DailyMinutes)
	}
	if cfg.SRS.EasyBonus != 1.5 {
		t.Errorf("EasyBonus = %v, want 1.5", cfg.SRS.EasyBonus)
	}
}

func TestLoadIgnoresBadValues(t *testing.T) {
	t.Setenv("MNEMO_PORT", "not-a-port")
	cfg := Load()
	if cfg.Server.Port != Default().Server.Port {
		t.Errorf("bad MNEMO_PORT should keep the default, got %d", cfg.Server.Port)
	}
}

func TestListenAddr(t *testing.T) {
	cfg := Default()
	cfg.Server.Port = 8080
	if got := cfg.ListenAddr(); got != "127.0.0.1:8080" {
		t.Errorf("ListenAddr = %q", got)
	}
}
