package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"winlaunch/internal/config"
	"winlaunch/internal/testsupport"
)

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
	baseDir    string
}

func setupCLITestEnv(t *testing.T, opts ...testsupport.ConfigOption) *cliTestEnv {
	t.Helper()

	cfg := testsupport.NewConfig(t, opts...)
	base := testsupport.BaseDir(cfg)
	t.Setenv("HOME", filepath.Join(base, "user"))

	configPath := filepath.Join(base, "config.toml")
	writeTestConfig(t, configPath, cfg)
	return &cliTestEnv{cfg: cfg, configPath: configPath, baseDir: base}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	var b strings.Builder
	b.WriteString("[paths]\n")
	fmt.Fprintf(&b, "data_dir = %q\n", cfg.Paths.DataDir)
	fmt.Fprintf(&b, "settings_db = %q\n", cfg.Paths.SettingsDB)
	fmt.Fprintf(&b, "presets_dir = %q\n", cfg.Paths.PresetsDir)
	fmt.Fprintf(&b, "custom_icons_dir = %q\n", cfg.Paths.CustomIconsDir)
	fmt.Fprintf(&b, "containers_dir = %q\n", cfg.Paths.ContainersDir)
	fmt.Fprintf(&b, "log_dir = %q\n", cfg.Paths.LogDir)
	if cfg.Paths.CoverArtDir != "" {
		fmt.Fprintf(&b, "cover_art_dir = %q\n", cfg.Paths.CoverArtDir)
	}
	fmt.Fprintf(&b, "\n[presets]\nbox64_prefix = %q\n", cfg.Presets.Box64Prefix)
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
