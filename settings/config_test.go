package settings

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.MinHistory != 252 || cfg.TradingDays != 252 {
		t.Errorf("unexpected history defaults: %d / %d", cfg.MinHistory, cfg.TradingDays)
	}
	if cfg.Workers != 4 {
		t.Errorf("expected 4 workers, got %d", cfg.Workers)
	}
	if len(cfg.Symbols) != len(DefaultUniverse) {
		t.Errorf("expected the default universe, got %d symbols", len(cfg.Symbols))
	}
	if cfg.Database.Enabled || cfg.Influx.Enabled {
		t.Error("external stores must default to disabled")
	}
	if cfg.Database.Interval != "1d" {
		t.Errorf("expected 1d interval, got %s", cfg.Database.Interval)
	}
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `symbols:
  - AAPL
  - MSFT
workers: 8
min_history: 100
log_level: debug
influx:
  enabled: true
  url: http://localhost:8086
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(cfg.Symbols) != 2 || cfg.Symbols[0] != "AAPL" {
		t.Errorf("unexpected symbols: %v", cfg.Symbols)
	}
	if cfg.Workers != 8 || cfg.MinHistory != 100 {
		t.Errorf("file overrides not applied: %+v", cfg)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("expected debug log level, got %s", cfg.LogLevel)
	}
	if !cfg.Influx.Enabled || cfg.Influx.URL != "http://localhost:8086" {
		t.Errorf("nested influx overrides not applied: %+v", cfg.Influx)
	}
	// Unset keys keep their defaults.
	if cfg.TradingDays != 252 {
		t.Errorf("expected default trading days, got %d", cfg.TradingDays)
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("an explicitly named missing file must fail")
	}
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("VELA_WORKERS", "9")
	t.Setenv("VELA_LOG_LEVEL", "error")

	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Workers != 9 {
		t.Errorf("expected env override 9, got %d", cfg.Workers)
	}
	if cfg.LogLevel != "error" {
		t.Errorf("expected env override error, got %s", cfg.LogLevel)
	}
}
