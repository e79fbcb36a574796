// Package config provides application configuration management.
// Configuration is loaded once from environment variables and treated as read-only afterwards.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds all application configuration.
// All fields are populated from environment variables.
type Config struct {
	// Application settings. The variable names match the deployment
	// manifests of the service this API replaces.
	AppEnv    string `env:"FLASK_ENV" envDefault:"development"`
	AppPort   int    `env:"PORT" envDefault:"5000"`
	SecretKey string `env:"SECRET_KEY" envDefault:"dev-secret-key"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	// Server timeouts
	ReadTimeout     time.Duration `env:"READ_TIMEOUT" envDefault:"5s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"10s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`

	// CORS configuration
	// Comma-separated list of allowed origins. "*" allows every origin.
	CORSAllowedOrigins string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*"`

	// Request body size limit in bytes (default 1MB)
	MaxRequestBodySize int64 `env:"MAX_REQUEST_BODY_SIZE" envDefault:"1048576"`

	// Expose Prometheus metrics on /metrics
	MetricsEnabled bool `env:"METRICS_ENABLED" envDefault:"true"`
}

// DefaultSecretKey is the SECRET_KEY used when none is configured.
const DefaultSecretKey = "dev-secret-key"

// UsesDefaultSecret reports whether SECRET_KEY was left at its development default.
func (c *Config) UsesDefaultSecret() bool {
	return c.SecretKey == DefaultSecretKey
}

// IsDevelopment returns true if running in development mode.
// Development mode turns on debug logging.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// EffectiveLogLevel returns the configured log level, forced to debug in development.
func (c *Config) EffectiveLogLevel() string {
	if c.IsDevelopment() {
		return "debug"
	}
	return c.LogLevel
}

// GetCORSAllowedOrigins parses the comma-separated origins string into a slice.
func (c *Config) GetCORSAllowedOrigins() []string {
	if c.CORSAllowedOrigins == "" {
		return nil
	}

	origins := strings.Split(c.CORSAllowedOrigins, ",")
	result := make([]string, 0, len(origins))

	for _, origin := range origins {
		trimmed := strings.TrimSpace(origin)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}

// Load parses environment variables and returns a Config.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.AppPort <= 0 || cfg.AppPort > 65535 {
		return nil, fmt.Errorf("invalid PORT %d: must be between 1 and 65535", cfg.AppPort)
	}
	return cfg, nil
}
