package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizePresets()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	dataDir := strings.TrimSpace(c.Paths.DataDir)
	if dataDir == "" || dataDir == defaultDataDir {
		if value, ok := os.LookupEnv(dataDirEnv); ok && strings.TrimSpace(value) != "" {
			dataDir = strings.TrimSpace(value)
		}
	}
	if dataDir == "" {
		dataDir = defaultDataDir
	}

	var err error
	if c.Paths.DataDir, err = expandPath(dataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}

	derived := []struct {
		key      string
		value    *string
		fallback string
	}{
		{"paths.settings_db", &c.Paths.SettingsDB, filepath.Join(c.Paths.DataDir, "settings.db")},
		{"paths.presets_dir", &c.Paths.PresetsDir, filepath.Join(c.Paths.DataDir, "Presets")},
		{"paths.custom_icons_dir", &c.Paths.CustomIconsDir, filepath.Join(c.Paths.DataDir, "icons")},
		{"paths.containers_dir", &c.Paths.ContainersDir, filepath.Join(c.Paths.DataDir, "home")},
		{"paths.log_dir", &c.Paths.LogDir, filepath.Join(c.Paths.DataDir, "logs")},
	}
	for _, entry := range derived {
		if strings.TrimSpace(*entry.value) == "" {
			*entry.value = entry.fallback
		}
		if *entry.value, err = expandPath(strings.TrimSpace(*entry.value)); err != nil {
			return fmt.Errorf("%s: %w", entry.key, err)
		}
	}

	// An empty cover art directory keeps art inside each container root.
	if strings.TrimSpace(c.Paths.CoverArtDir) != "" {
		if c.Paths.CoverArtDir, err = expandPath(strings.TrimSpace(c.Paths.CoverArtDir)); err != nil {
			return fmt.Errorf("paths.cover_art_dir: %w", err)
		}
	} else {
		c.Paths.CoverArtDir = ""
	}
	return nil
}

func (c *Config) normalizePresets() {
	c.Presets.Box64Prefix = strings.ToLower(strings.TrimSpace(c.Presets.Box64Prefix))
	if c.Presets.Box64Prefix == "" {
		c.Presets.Box64Prefix = defaultBox64Prefix
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
