package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"fileninja/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.WatchedFolders = []string{filepath.Join(base, "inbox")}
	cfgVal.OrganizedFolder = filepath.Join(base, "organized")
	cfgVal.DataDir = filepath.Join(base, "data")
	cfgVal.LogDir = filepath.Join(base, "logs")
	cfgVal.APIBind = "127.0.0.1:0"
	cfgVal.DelaySeconds = 0.05

	if err := os.MkdirAll(cfgVal.WatchedFolders[0], 0o755); err != nil {
		t.Fatalf("mkdir watch root: %v", err)
	}

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

// WithAutoOrganize toggles the watcher on the test config.
func WithAutoOrganize(enabled bool) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.AutoOrganize = enabled
	}
}

// WithDelay sets the quiet period in seconds on the test config.
func WithDelay(seconds float64) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.DelaySeconds = seconds
	}
}

// WithIgnorePatterns replaces the ignore patterns on the test config.
func WithIgnorePatterns(patterns ...string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.IgnorePatterns = patterns
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.OrganizedFolder)
}
