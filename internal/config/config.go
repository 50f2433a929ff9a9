// Package config holds shared configuration for all pmpctl commands.
package config

import (
	"context"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type contextKey string

const configKey contextKey = "pmpctl-config"

// Config holds shared configuration for all pmpctl commands.
// It is injected into the cobra command context by the root command's
// PersistentPreRun hook and consumed by all subcommands.
type Config struct {
	ServerURL      string
	Timeout        time.Duration
	DataDir        string
	NonInteractive bool
}

// Load builds a Config from the environment. A .env file in the working
// directory is read first when present; explicit environment variables win.
func Load() *Config {
	_ = godotenv.Load()

	timeout := 5 * time.Second
	if raw := os.Getenv("PMP_TIMEOUT"); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil {
			timeout = d
		}
	}

	return &Config{
		ServerURL:      getEnv("PMP_SERVER", "http://localhost:5000"),
		Timeout:        timeout,
		DataDir:        os.Getenv("PMP_DATA_DIR"),
		NonInteractive: os.Getenv("PMP_NON_INTERACTIVE") == "1",
	}
}

// getEnv returns the environment variable value or the default if empty.
func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// Inject adds config to the cobra command context.
// This should be called in the root command's PersistentPreRun.
func Inject(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, configKey, cfg)
}

// FromContext retrieves config from the cobra command context.
// Returns (nil, false) if config is not present.
func FromContext(ctx context.Context) (*Config, bool) {
	cfg, ok := ctx.Value(configKey).(*Config)
	return cfg, ok
}

// MustFromContext retrieves config from context or panics.
// This should only be used in command RunE functions where we know
// the config has been injected by the root command.
func MustFromContext(ctx context.Context) *Config {
	cfg, ok := FromContext(ctx)
	if !ok {
		panic("pmpctl: config not found in context - this is a bug in pmpctl")
	}
	return cfg
}
