package testsupport

import (
	"path/filepath"
	"testing"

	"qrpayload/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with a unique temp state directory per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.StateDir = filepath.Join(base, "state")
	cfgVal.Output.LockTimeoutSeconds = 1

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithMaxDepth overrides the base64 nesting bound.
func WithMaxDepth(depth int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Decode.MaxDepth = depth
	}
}

// WithHistory toggles run history recording.
func WithHistory(enabled bool) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.History.Enabled = enabled
	}
}

// WithLogFile points file logging at a path inside the test's base directory.
func WithLogFile(name string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Logging.File = filepath.Join(b.baseDir, "logs", name)
	}
}

// WithFileMode sets the permission string applied to persisted outputs.
func WithFileMode(mode string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Output.FileMode = mode
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.StateDir)
}
