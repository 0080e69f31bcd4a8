// Package config loads the dashboard configuration from environment
// variables using go-envconfig.
package config

import (
	"context"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// SessionTTL bounds how long a browser session lives in the store.
	SessionTTL time.Duration `env:"SESSION_TTL, default=168h"`

	Upstream UpstreamConfig
	Redis    RedisConfig
}

type UpstreamConfig struct {
	// BaseURL is the society backend origin.
	BaseURL string        `env:"UPSTREAM_BASE_URL, default=http://localhost:8000"`
	Timeout time.Duration `env:"UPSTREAM_TIMEOUT,  default=15s"`
}

type RedisConfig struct {
	// Addr empty means sessions are held in process memory instead.
	Addr string `env:"REDIS_ADDR"`
	DB   int    `env:"REDIS_DB, default=0"`
}

// Load reads configuration from the environment.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
