package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds all environment backed configuration for control-api.
type Config struct {
	// HTTP Server
	HTTPPort    int    `env:"HTTP_PORT" envDefault:"8080"`
	MetricsPort int    `env:"METRICS_PORT" envDefault:"9091"`
	DatabaseURL string `env:"DATABASE_URL,notEmpty"`

	// Cleanup job
	CleanupEnabled  bool          `env:"CONVERSATION_CLEANUP_ENABLED" envDefault:"true"`
	CleanupSchedule string        `env:"CONVERSATION_CLEANUP_SCHEDULE" envDefault:"0 * * * *"`
	CleanupCutoff   time.Duration `env:"CONVERSATION_CLEANUP_CUTOFF" envDefault:"24h"`

	// Observability / Logging
	OTLPEndpoint     string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	OTLPHeaders      string `env:"OTEL_EXPORTER_OTLP_HEADERS"`
	ServiceName      string `env:"SERVICE_NAME" envDefault:"control-api"`
	ServiceNamespace string `env:"SERVICE_NAMESPACE" envDefault:"relay"`
	Environment      string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel         string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat        string `env:"LOG_FORMAT" envDefault:"console"`

	// Features
	AutoMigrate bool `env:"AUTO_MIGRATE" envDefault:"true"`

	// Internal
	EnvReloadedAt time.Time
}

// Load parses environment variables into Config and performs minimal validation.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if cfg.CleanupCutoff <= 0 {
		return nil, fmt.Errorf("CONVERSATION_CLEANUP_CUTOFF must be positive, got %s", cfg.CleanupCutoff)
	}

	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	cfg.LogFormat = strings.ToLower(cfg.LogFormat)
	cfg.EnvReloadedAt = time.Now()

	return cfg, nil
}

var Version = "dev"

func IsDev() bool {
	return strings.HasPrefix(Version, "dev")
}
