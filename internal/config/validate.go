package config

import (
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validatePresets(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	required := []struct {
		key   string
		value string
	}{
		{"paths.data_dir", c.Paths.DataDir},
		{"paths.settings_db", c.Paths.SettingsDB},
		{"paths.presets_dir", c.Paths.PresetsDir},
		{"paths.custom_icons_dir", c.Paths.CustomIconsDir},
		{"paths.containers_dir", c.Paths.ContainersDir},
		{"paths.log_dir", c.Paths.LogDir},
	}
	for _, entry := range required {
		if strings.TrimSpace(entry.value) == "" {
			return fmt.Errorf("%s must be set", entry.key)
		}
	}
	return nil
}

func (c *Config) validatePresets() error {
	switch c.Presets.Box64Prefix {
	case "box64", "wowbox64":
		return nil
	default:
		return fmt.Errorf("presets.box64_prefix: unsupported value %q (expected box64 or wowbox64)", c.Presets.Box64Prefix)
	}
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
