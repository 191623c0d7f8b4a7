package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/control?sslmode=disable")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.HTTPPort != 8080 {
		t.Errorf("HTTPPort = %d, want 8080", cfg.HTTPPort)
	}
	if cfg.MetricsPort != 9091 {
		t.Errorf("MetricsPort = %d, want 9091", cfg.MetricsPort)
	}
	if !cfg.CleanupEnabled {
		t.Error("CleanupEnabled must default to true")
	}
	if cfg.CleanupSchedule != "0 * * * *" {
		t.Errorf("CleanupSchedule = %q", cfg.CleanupSchedule)
	}
	if cfg.CleanupCutoff != 24*time.Hour {
		t.Errorf("CleanupCutoff = %s, want 24h", cfg.CleanupCutoff)
	}
	if cfg.ServiceName != "control-api" {
		t.Errorf("ServiceName = %q", cfg.ServiceName)
	}
	if cfg.EnvReloadedAt.IsZero() {
		t.Error("EnvReloadedAt not stamped")
	}
}

func TestLoad_MissingDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for missing DATABASE_URL")
	}
}

func TestLoad_RejectsNonPositiveCutoff(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/control?sslmode=disable")
	t.Setenv("CONVERSATION_CLEANUP_CUTOFF", "-1h")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for negative cutoff")
	}
}

func TestLoad_NormalizesLogSettings(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/control?sslmode=disable")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("LOG_FORMAT", "JSON")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.LogLevel != "debug" || cfg.LogFormat != "json" {
		t.Errorf("log settings not lowercased: %q %q", cfg.LogLevel, cfg.LogFormat)
	}
}
