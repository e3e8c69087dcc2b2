package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/bcssewl/optivise-installer/internal/shared/paths"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Logging   LogConfig
	RateLimit RateLimitConfig
	Manifest  ManifestConfig
	Hosts     HostsConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port string `envconfig:"PORT" default:"8790"`
	Host string `envconfig:"HOST" default:"127.0.0.1"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// RateLimitConfig holds rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerSecond int  `envconfig:"RATE_LIMIT_RPS" default:"20"`
	Burst             int  `envconfig:"RATE_LIMIT_BURST" default:"40"`
	Enabled           bool `envconfig:"RATE_LIMIT_ENABLED" default:"true"`
}

// ManifestConfig holds manifest download configuration.
type ManifestConfig struct {
	URL              string        `envconfig:"MANIFEST_URL" default:"https://ex.optivise.app/manifest.xml"`
	Timeout          time.Duration `envconfig:"MANIFEST_TIMEOUT" default:"30s"`
	MaxBytes         int64         `envconfig:"MANIFEST_MAX_BYTES" default:"1048576"`
	BreakerEnabled   bool          `envconfig:"MANIFEST_BREAKER_ENABLED" default:"true"`
	BreakerThreshold uint32        `envconfig:"MANIFEST_BREAKER_THRESHOLD" default:"5"`
	BreakerCooldown  time.Duration `envconfig:"MANIFEST_BREAKER_COOLDOWN" default:"30s"`
}

// HostsConfig holds host application settings.
type HostsConfig struct {
	// SupportedApps lists hosts the install pipeline is enabled for
	SupportedApps    []string `envconfig:"SUPPORTED_APPS" default:"excel"`
	ApplicationsRoot string   `envconfig:"APPLICATIONS_ROOT" default:"/Applications"`
	// HomeOverride replaces the user's home directory when set
	HomeOverride string `envconfig:"HOME_DIR_OVERRIDE"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port: "8790",
			Host: "127.0.0.1",
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 20,
			Burst:             40,
			Enabled:           true,
		},
		Manifest: ManifestConfig{
			URL:              "https://ex.optivise.app/manifest.xml",
			Timeout:          30 * time.Second,
			MaxBytes:         1 << 20,
			BreakerEnabled:   true,
			BreakerThreshold: 5,
			BreakerCooldown:  30 * time.Second,
		},
		Hosts: HostsConfig{
			SupportedApps:    []string{"excel"},
			ApplicationsRoot: paths.DefaultApplicationsRoot,
		},
	}
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return s.Host + ":" + s.Port
}
