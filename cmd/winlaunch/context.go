package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"winlaunch/internal/config"
	"winlaunch/internal/container"
	"winlaunch/internal/logging"
	"winlaunch/internal/preset"
	"winlaunch/internal/settings"
	"winlaunch/internal/shortcut"
	"winlaunch/internal/textutil"
)

const (
	lockRetryDelay = 50 * time.Millisecond
	lockTimeout    = 10 * time.Second
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger

	settings *settings.SQLite
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() *slog.Logger {
	c.loggerOnce.Do(func() {
		logger, err := logging.NewFromConfig(c.config)
		if err != nil {
			logger = logging.NewNop()
		}
		c.logger = logger
	})
	return c.logger
}

func (c *commandContext) openSettings() (*settings.SQLite, error) {
	if c.settings != nil {
		return c.settings, nil
	}
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	store, err := settings.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("open settings: %w", err)
	}
	c.settings = store
	return store, nil
}

// presetStore opens the store for domain. An empty domain selects the
// configured Box64-family prefix.
func (c *commandContext) presetStore(domain string) (*preset.Store, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(domain) == "" {
		domain = cfg.Presets.Box64Prefix
	}
	d, err := preset.ParseDomain(domain)
	if err != nil {
		return nil, err
	}
	store, err := c.openSettings()
	if err != nil {
		return nil, err
	}
	logger := logging.NewComponentLogger(c.ensureLogger(), "preset")
	return preset.NewStore(store, d, preset.WithLogger(logger)), nil
}

func (c *commandContext) containerManager() (*container.Manager, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return container.NewManager(cfg.Paths.ContainersDir, c.ensureLogger()), nil
}

func (c *commandContext) shortcutLayout() shortcut.Layout {
	cfg := c.config
	if cfg == nil {
		return shortcut.Layout{}
	}
	return shortcut.Layout{
		CustomIconsDir: cfg.Paths.CustomIconsDir,
		CoverArtDir:    cfg.Paths.CoverArtDir,
	}
}

// withLock runs fn while holding an exclusive lock on path.
func (c *commandContext) withLock(cmd *cobra.Command, path string, fn func() error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	lockCtx, cancel := context.WithTimeout(ctx, lockTimeout)
	defer cancel()

	lock := flock.New(path)
	ok, err := lock.TryLockContext(lockCtx, lockRetryDelay)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("another winlaunch process holds %s", path)
		}
		return fmt.Errorf("acquire lock %s: %w", path, err)
	}
	if !ok {
		return fmt.Errorf("another winlaunch process holds %s", path)
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			logging.WarnWithContext(c.ensureLogger(), "failed to release lock", "lock_release_failed",
				logging.String(logging.FieldPath, path),
				logging.Error(err),
			)
		}
	}()
	return fn()
}

// namedLockPath returns a lock file under the data directory for one
// shortcut or container, creating the locks directory on demand.
func (c *commandContext) namedLockPath(kind string, parts ...string) (string, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(cfg.Paths.DataDir, "locks")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create lock dir: %w", err)
	}
	return filepath.Join(dir, textutil.LockName(kind, parts...)), nil
}

// withSettingsLock serializes preset collection writes across processes.
func (c *commandContext) withSettingsLock(cmd *cobra.Command, fn func() error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	return c.withLock(cmd, cfg.LockPath(), fn)
}

func (c *commandContext) close() error {
	if c.settings == nil {
		return nil
	}
	err := c.settings.Close()
	c.settings = nil
	return err
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
