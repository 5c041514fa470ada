package testsupport

import (
	"path/filepath"
	"testing"

	"winlaunch/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config whose paths all live in a per-test temp
// directory. Options run after the defaults are applied.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths = config.Paths{
		DataDir:        base,
		SettingsDB:     filepath.Join(base, "settings.db"),
		PresetsDir:     filepath.Join(base, "Presets"),
		CustomIconsDir: filepath.Join(base, "icons"),
		ContainersDir:  filepath.Join(base, "home"),
		LogDir:         filepath.Join(base, "logs"),
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

// WithBox64Prefix sets the Box64-family preset prefix.
func WithBox64Prefix(prefix string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Presets.Box64Prefix = prefix
	}
}

// WithCoverArtDir points cover art lookups at a shared directory under the
// test base.
func WithCoverArtDir() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Paths.CoverArtDir = filepath.Join(b.baseDir, "cover_arts")
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return cfg.Paths.DataDir
}
