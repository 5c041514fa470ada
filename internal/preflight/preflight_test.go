package preflight

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"winlaunch/internal/config"
)

func TestCheckDirectoryAccess_OK(t *testing.T) {
	dir := t.TempDir()
	result := CheckDirectoryAccess("test", dir)
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotExist(t *testing.T) {
	result := CheckDirectoryAccess("test", filepath.Join(t.TempDir(), "nope"))
	if result.Passed {
		t.Fatal("expected failure for missing dir")
	}
	if result.Detail == "" {
		t.Fatal("expected non-empty detail")
	}
}

func TestCheckDirectoryAccess_NotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckDirectoryAccess("test", f)
	if result.Passed {
		t.Fatal("expected failure for file path")
	}
	if result := CheckDirectoryReadable("test", f); result.Passed {
		t.Fatal("expected readable check to fail for file path")
	}
}

func TestCheckSettingsDatabase(t *testing.T) {
	result := CheckSettingsDatabase(context.Background(), filepath.Join(t.TempDir(), "settings.db"))
	if !result.Passed {
		t.Fatalf("expected pass, got: %s", result.Detail)
	}
}

func TestRunAll(t *testing.T) {
	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths = config.Paths{
		DataDir:        base,
		SettingsDB:     filepath.Join(base, "settings.db"),
		PresetsDir:     filepath.Join(base, "Presets"),
		CustomIconsDir: filepath.Join(base, "icons"),
		ContainersDir:  filepath.Join(base, "home"),
		LogDir:         filepath.Join(base, "logs"),
	}
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories: %v", err)
	}

	results := RunAll(context.Background(), &cfg)
	if len(results) != 6 {
		t.Fatalf("expected 6 results, got %d", len(results))
	}
	// Containers directory is never created by winlaunch.
	if Failed(results) != 1 {
		t.Fatalf("expected only the containers check to fail, got %+v", results)
	}

	if err := os.MkdirAll(cfg.Paths.ContainersDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if failed := Failed(RunAll(context.Background(), &cfg)); failed != 0 {
		t.Fatalf("expected all checks to pass, %d failed", failed)
	}

	if RunAll(context.Background(), nil) != nil {
		t.Fatal("expected nil results for nil config")
	}
}
