package testsupport

import (
	"path/filepath"
	"testing"

	"albumlink/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Companion.Username = "test-user"
	cfg.Companion.Password = "test-pass"

	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}

// WithCompanionDisabled turns the aggregator resolver off for tests that
// only exercise the direct platforms.
func WithCompanionDisabled() ConfigOption {
	return func(cfg *config.Config) {
		cfg.Companion.Enabled = false
	}
}

// WithRequestDelay overrides the inter-request delay, usually to zero it.
func WithRequestDelay(ms int) ConfigOption {
	return func(cfg *config.Config) {
		cfg.HTTP.RequestDelayMilli = ms
	}
}
