package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Config is the console's entire configuration, loaded once at startup and
// injected from there. Nothing reads the environment afterwards.
type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Session  SessionConfig
	Upstream UpstreamConfig
}

// SessionConfig covers the operator login and the session token.
type SessionConfig struct {
	Secret       string        `env:"SESSION_SECRET, required"`
	TTL          time.Duration `env:"SESSION_TTL, default=24h"`
	Username     string        `env:"ADMIN_USERNAME, default=admin"`
	PasswordHash string        `env:"ADMIN_PASSWORD_HASH, required"`
}

// UpstreamConfig locates the platform REST API.
type UpstreamConfig struct {
	BaseURL string        `env:"UPSTREAM_BASE_URL, required"`
	Timeout time.Duration `env:"UPSTREAM_TIMEOUT, default=15s"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}
	return &cfg, nil
}
