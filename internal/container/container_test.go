package container_test

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"winlaunch/internal/container"
	"winlaunch/internal/preset"
	"winlaunch/internal/shortcut"
	"winlaunch/internal/testsupport"
)

func TestLoadReadsContainerConfig(t *testing.T) {
	root := filepath.Join(t.TempDir(), "xuser-4")
	testsupport.WriteFile(t, filepath.Join(root, ".container"), `{
		"id": 4,
		"name": "Games",
		"envVars": "WINEESYNC=1 DXVK_HUD=fps",
		"emulator": "FEXCore",
		"box64Preset": "COMPATIBILITY",
		"fexcorePreset": "INTERMEDIATE",
		"showFPS": true
	}`)

	c, err := container.Load(root)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.ID() != 4 || c.Name() != "Games" {
		t.Fatalf("got id=%d name=%q", c.ID(), c.Name())
	}
	if !c.UsesFEXCore() {
		t.Fatal("expected FEXCore emulator")
	}
	if got := c.Preset(preset.Box64("box64")); got != preset.Compatibility {
		t.Fatalf("box64 preset %q", got)
	}
	if got := c.Preset(preset.FEXCore()); got != preset.Intermediate {
		t.Fatalf("fexcore preset %q", got)
	}
	if got := c.EnvVars().String(); got != "WINEESYNC=1 DXVK_HUD=fps" {
		t.Fatalf("env vars %q", got)
	}

	wantDesktop := filepath.Join(root, ".wine", "drive_c", "users", "xuser", "Desktop")
	if c.DesktopDir() != wantDesktop {
		t.Fatalf("desktop dir %q", c.DesktopDir())
	}
	wantIcons := filepath.Join(root, ".local", "share", "icons", "hicolor", "48x48", "apps")
	if c.IconsDir(48) != wantIcons {
		t.Fatalf("icons dir %q", c.IconsDir(48))
	}
}

func TestSavePreservesUnknownKeys(t *testing.T) {
	root := filepath.Join(t.TempDir(), "xuser-1")
	testsupport.WriteFile(t, filepath.Join(root, ".container"),
		`{"id":1,"name":"Main","box64Preset":"STABILITY","showFPS":true,"drives":"D:/sdcard"}`)

	c, err := container.Load(root)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	c.SetPreset(preset.Box64("box64"), "custom-2")
	if err := c.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(root, ".container"))
	if err != nil {
		t.Fatal(err)
	}
	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		t.Fatalf("decode saved config: %v", err)
	}
	if fields["box64Preset"] != "custom-2" {
		t.Fatalf("box64Preset = %v", fields["box64Preset"])
	}
	if fields["showFPS"] != true || fields["drives"] != "D:/sdcard" {
		t.Fatalf("unknown keys lost: %v", fields)
	}

	reloaded, err := container.Load(root)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got := reloaded.Preset(preset.Box64("box64")); got != "custom-2" {
		t.Fatalf("reloaded preset %q", got)
	}
}

func TestLoadRejectsBadJSON(t *testing.T) {
	root := filepath.Join(t.TempDir(), "xuser-1")
	testsupport.WriteFile(t, filepath.Join(root, ".container"), "{not json")
	if _, err := container.Load(root); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestManagerListAndCreate(t *testing.T) {
	home := filepath.Join(t.TempDir(), "home")
	manager := container.NewManager(home, nil)

	containers, err := manager.List()
	if err != nil {
		t.Fatalf("List on missing home: %v", err)
	}
	if len(containers) != 0 {
		t.Fatalf("expected no containers, got %d", len(containers))
	}

	testsupport.NewContainer(t, home, 3, "Three")
	testsupport.WriteFile(t, filepath.Join(home, "xuser-9", ".container"), "{broken")
	if err := os.MkdirAll(filepath.Join(home, "xuser-5"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Join(home, "other"), 0o755); err != nil {
		t.Fatal(err)
	}

	created, err := manager.Create(container.Config{})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID() != 4 || created.Name() != "Container-4" {
		t.Fatalf("created id=%d name=%q", created.ID(), created.Name())
	}
	if _, err := os.Stat(created.IconsDir(16)); err != nil {
		t.Fatalf("icon dir missing: %v", err)
	}

	containers, err = manager.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(containers) != 2 || containers[0].ID() != 3 || containers[1].ID() != 4 {
		t.Fatalf("unexpected containers %v", containers)
	}

	if _, err := manager.Get(42); !errors.Is(err, container.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := manager.Create(container.Config{ID: 3}); err == nil {
		t.Fatal("expected duplicate id to fail")
	}
}

func TestShortcutsAcrossContainers(t *testing.T) {
	home := filepath.Join(t.TempDir(), "home")
	first := testsupport.NewContainer(t, home, 1, "One")
	second := testsupport.NewContainer(t, home, 2, "Two")
	testsupport.WriteShortcut(t, first, "Zeta.desktop", "[Desktop Entry]", "Exec=wine zeta.exe")
	testsupport.WriteShortcut(t, second, "Alpha.desktop", "[Desktop Entry]", "Exec=wine alpha.exe")
	testsupport.WriteFile(t, filepath.Join(second.DesktopDir(), "readme.txt"), "ignored")

	manager := container.NewManager(home, nil)
	records, err := manager.AllShortcuts(shortcut.Layout{})
	if err != nil {
		t.Fatalf("AllShortcuts: %v", err)
	}
	if len(records) != 2 || records[0].Name() != "Alpha" || records[1].Name() != "Zeta" {
		t.Fatalf("unexpected shortcuts %v", records)
	}
	if records[0].ContainerID() != 2 {
		t.Fatalf("Alpha container %d", records[0].ContainerID())
	}

	found, err := manager.FindShortcut(shortcut.Layout{}, "Zeta.desktop")
	if err != nil {
		t.Fatalf("FindShortcut: %v", err)
	}
	if found.Path() != "zeta.exe" {
		t.Fatalf("found path %q", found.Path())
	}
	if _, err := manager.FindShortcut(shortcut.Layout{}, "Missing"); err == nil {
		t.Fatal("expected missing shortcut error")
	}
}
