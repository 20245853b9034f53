package common

import (
	"errors"
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg := LoadConfig()

	if cfg.Store.DBPath != "./recibos.db" {
		t.Errorf("DBPath = %q, want %q", cfg.Store.DBPath, "./recibos.db")
	}
	if cfg.Scan.Currency != "VES" {
		t.Errorf("Currency = %q, want %q", cfg.Scan.Currency, "VES")
	}
	if cfg.Watch.Debounce != 500*time.Millisecond {
		t.Errorf("Debounce = %v, want 500ms", cfg.Watch.Debounce)
	}
	if !cfg.Watch.InitialScan {
		t.Error("InitialScan should default to true")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate, got %v", err)
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("RECIBOS_DB_PATH", "/var/lib/recibos/recibos.db")
	t.Setenv("RECIBOS_WATCH_DIRS", "/srv/drop1, /srv/drop2,")
	t.Setenv("RECIBOS_WATCH_DEBOUNCE", "2s")
	t.Setenv("RECIBOS_WATCH_INITIAL_SCAN", "false")
	t.Setenv("RECIBOS_CURRENCY", "USD")

	cfg := LoadConfig()

	if cfg.Store.DBPath != "/var/lib/recibos/recibos.db" {
		t.Errorf("DBPath = %q", cfg.Store.DBPath)
	}
	if len(cfg.Watch.Roots) != 2 || cfg.Watch.Roots[0] != "/srv/drop1" || cfg.Watch.Roots[1] != "/srv/drop2" {
		t.Errorf("Roots = %v, want two trimmed entries", cfg.Watch.Roots)
	}
	if cfg.Watch.Debounce != 2*time.Second {
		t.Errorf("Debounce = %v, want 2s", cfg.Watch.Debounce)
	}
	if cfg.Watch.InitialScan {
		t.Error("InitialScan should be false")
	}
	if cfg.Scan.Currency != "USD" {
		t.Errorf("Currency = %q, want USD", cfg.Scan.Currency)
	}
}

func TestConfigValidate(t *testing.T) {
	cfg := LoadConfig()
	cfg.Scan.Currency = "BOLIVARES"
	if err := cfg.Validate(); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected invalid-input error for bad currency, got %v", err)
	}

	cfg = LoadConfig()
	cfg.Store.DBPath = ""
	if err := cfg.Validate(); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected invalid-input error for empty db path, got %v", err)
	}
}
