package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("MAX_ATTEMPTS", "")
	t.Setenv("SESSIONS_PER_DAY", "")
	t.Setenv("WORD_SELECTION", "")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("DB_MAX_OPEN_CONNS", "")
	t.Setenv("DB_MAX_IDLE_CONNS", "")

	cfg := Load()

	if cfg.MaxAttempts != 6 {
		t.Errorf("MaxAttempts = %d, want 6", cfg.MaxAttempts)
	}
	if cfg.SessionsPerDay != 1 {
		t.Errorf("SessionsPerDay = %d, want 1", cfg.SessionsPerDay)
	}
	if cfg.WordSelection != WordSelectionDaily {
		t.Errorf("WordSelection = %q, want %q", cfg.WordSelection, WordSelectionDaily)
	}
	if cfg.JWTSecret == "" {
		t.Error("expected development JWT secret to be filled in")
	}
	if cfg.DBMaxOpenConns != 25 || cfg.DBMaxIdleConns != 5 {
		t.Errorf("pool = %d/%d, want 25/5", cfg.DBMaxOpenConns, cfg.DBMaxIdleConns)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() on defaults: %v", err)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("MAX_ATTEMPTS", "8")
	t.Setenv("SESSIONS_PER_DAY", "3")
	t.Setenv("WORD_SELECTION", "RANDOM")
	t.Setenv("LOCK_TIMEOUT", "250ms")
	t.Setenv("SEED_BAD_WORDS", "false")

	cfg := Load()

	if cfg.MaxAttempts != 8 {
		t.Errorf("MaxAttempts = %d, want 8", cfg.MaxAttempts)
	}
	if cfg.SessionsPerDay != 3 {
		t.Errorf("SessionsPerDay = %d, want 3", cfg.SessionsPerDay)
	}
	if cfg.WordSelection != WordSelectionRandom {
		t.Errorf("WordSelection = %q, want %q", cfg.WordSelection, WordSelectionRandom)
	}
	if cfg.LockTimeout != 250*time.Millisecond {
		t.Errorf("LockTimeout = %s, want 250ms", cfg.LockTimeout)
	}
	if cfg.SeedBadWords {
		t.Error("SeedBadWords should be false")
	}
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			MaxAttempts:    6,
			SessionsPerDay: 1,
			WordSelection:  WordSelectionDaily,
			JWTSecret:      devJWTSecret,
			LockTimeout:    time.Second,
			DBMaxOpenConns: 25,
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(c *Config) {}, wantErr: false},
		{name: "zero attempts", mutate: func(c *Config) { c.MaxAttempts = 0 }, wantErr: true},
		{name: "zero sessions", mutate: func(c *Config) { c.SessionsPerDay = 0 }, wantErr: true},
		{name: "unknown mode", mutate: func(c *Config) { c.WordSelection = "weekly" }, wantErr: true},
		{name: "short secret", mutate: func(c *Config) { c.JWTSecret = "short" }, wantErr: true},
		{name: "no lock timeout", mutate: func(c *Config) { c.LockTimeout = 0 }, wantErr: true},
		{name: "empty pool", mutate: func(c *Config) { c.DBMaxOpenConns = 0 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
