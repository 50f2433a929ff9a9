package config

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PMP_SERVER", "")
	t.Setenv("PMP_TIMEOUT", "")
	t.Setenv("PMP_DATA_DIR", "")
	t.Setenv("PMP_NON_INTERACTIVE", "")

	cfg := Load()
	assert.Equal(t, "http://localhost:5000", cfg.ServerURL)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.Empty(t, cfg.DataDir)
	assert.False(t, cfg.NonInteractive)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PMP_SERVER", "https://platform.example.com")
	t.Setenv("PMP_TIMEOUT", "30s")
	t.Setenv("PMP_DATA_DIR", "/tmp/pmpctl-test")
	t.Setenv("PMP_NON_INTERACTIVE", "1")

	cfg := Load()
	assert.Equal(t, "https://platform.example.com", cfg.ServerURL)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Equal(t, "/tmp/pmpctl-test", cfg.DataDir)
	assert.True(t, cfg.NonInteractive)
}

func TestLoadInvalidTimeoutFallsBack(t *testing.T) {
	t.Setenv("PMP_TIMEOUT", "not-a-duration")

	cfg := Load()
	assert.Equal(t, 5*time.Second, cfg.Timeout)
}

func TestContextRoundTrip(t *testing.T) {
	cfg := &Config{ServerURL: "https://platform.example.com"}
	ctx := Inject(context.Background(), cfg)

	got, ok := FromContext(ctx)
	require.True(t, ok)
	assert.Same(t, cfg, got)

	assert.Same(t, cfg, MustFromContext(ctx))
}

func TestFromContextMissing(t *testing.T) {
	_, ok := FromContext(context.Background())
	assert.False(t, ok)

	assert.Panics(t, func() {
		MustFromContext(context.Background())
	})
}
