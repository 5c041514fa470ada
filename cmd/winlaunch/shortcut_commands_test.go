package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"winlaunch/internal/testsupport"
)

func TestShortcutListAndShow(t *testing.T) {
	env := setupCLITestEnv(t)
	c := testsupport.NewContainer(t, env.cfg.Paths.ContainersDir, 1, "Main")
	testsupport.WritePNG(t, filepath.Join(c.IconsDir(48), "game.png"))
	testsupport.WriteShortcut(t, c, "Game.desktop",
		"[Desktop Entry]",
		`Exec=env WINEPREFIX="/home/xuser/.wine" wine "C:\\\\Games\\\\game.exe"`,
		"Icon=game",
		"[Extra Data]",
		"execArgs=-dx11",
	)

	out, _, err := runCLI(t, []string{"shortcut", "list"}, env.configPath)
	if err != nil {
		t.Fatalf("shortcut list: %v", err)
	}
	requireContains(t, out, "Game")
	requireContains(t, out, "game.exe")

	out, _, err = runCLI(t, []string{"shortcut", "show", "Game", "--json"}, env.configPath)
	if err != nil {
		t.Fatalf("shortcut show: %v", err)
	}
	var view shortcutView
	if err := json.Unmarshal([]byte(out), &view); err != nil {
		t.Fatalf("decode show: %v", err)
	}
	if view.ContainerID != 1 || view.Executable != "game.exe" {
		t.Fatalf("unexpected view %+v", view)
	}
	if view.Icon != filepath.Join(c.IconsDir(48), "game.png") {
		t.Fatalf("icon %q", view.Icon)
	}
	if view.Extra["execArgs"] != "-dx11" {
		t.Fatalf("extra %v", view.Extra)
	}
}

func TestShortcutUUIDAndExtra(t *testing.T) {
	env := setupCLITestEnv(t)
	c := testsupport.NewContainer(t, env.cfg.Paths.ContainersDir, 1, "Main")
	path := testsupport.WriteShortcut(t, c, "Game.desktop", "[Desktop Entry]", "Exec=wine game.exe")

	first, _, err := runCLI(t, []string{"shortcut", "uuid", path}, env.configPath)
	if err != nil {
		t.Fatalf("uuid: %v", err)
	}
	second, _, err := runCLI(t, []string{"shortcut", "uuid", "Game"}, env.configPath)
	if err != nil {
		t.Fatalf("uuid by name: %v", err)
	}
	if strings.TrimSpace(first) == "" || first != second {
		t.Fatalf("uuid not stable: %q vs %q", first, second)
	}

	if _, _, err := runCLI(t, []string{"shortcut", "extra", "set", "Game", "execArgs", "fullscreen"}, env.configPath); err != nil {
		t.Fatalf("extra set: %v", err)
	}
	out, _, err := runCLI(t, []string{"shortcut", "extra", "get", "Game", "execArgs"}, env.configPath)
	if err != nil {
		t.Fatalf("extra get: %v", err)
	}
	if out != "fullscreen\n" {
		t.Fatalf("extra value %q", out)
	}
	if _, _, err := runCLI(t, []string{"shortcut", "extra", "delete", "Game", "execArgs"}, env.configPath); err != nil {
		t.Fatalf("extra delete: %v", err)
	}
	if _, _, err := runCLI(t, []string{"shortcut", "extra", "get", "Game", "execArgs"}, env.configPath); err == nil {
		t.Fatal("expected deleted key to be missing")
	}
	if _, _, err := runCLI(t, []string{"shortcut", "extra", "set", "Game", "bad=key", "v"}, env.configPath); err == nil {
		t.Fatal("expected key containing '=' to be rejected")
	}
}

func TestShortcutCoverAndClone(t *testing.T) {
	env := setupCLITestEnv(t)
	source := testsupport.NewContainer(t, env.cfg.Paths.ContainersDir, 1, "Main")
	target := testsupport.NewContainer(t, env.cfg.Paths.ContainersDir, 2, "Other")
	testsupport.WriteShortcut(t, source, "Game.desktop", "[Desktop Entry]", "Exec=wine game.exe", "container_id:1")

	art := filepath.Join(t.TempDir(), "art.png")
	testsupport.WritePNG(t, art)
	out, _, err := runCLI(t, []string{"shortcut", "cover", "set", "Game", art}, env.configPath)
	if err != nil {
		t.Fatalf("cover set: %v", err)
	}
	requireContains(t, out, filepath.Join(source.RootDir(), "app_data", "cover_arts", "Game.png"))

	if _, _, err := runCLI(t, []string{"shortcut", "cover", "remove", "Game"}, env.configPath); err != nil {
		t.Fatalf("cover remove: %v", err)
	}

	out, _, err = runCLI(t, []string{"shortcut", "clone", "Game", "--to", "2"}, env.configPath)
	if err != nil {
		t.Fatalf("clone: %v", err)
	}
	requireContains(t, out, "into container 2")
	data, err := os.ReadFile(filepath.Join(target.DesktopDir(), "Game.desktop"))
	if err != nil {
		t.Fatalf("read clone: %v", err)
	}
	requireContains(t, string(data), "container_id:2\n")

	if _, _, err := runCLI(t, []string{"shortcut", "clone", "Game", "--to", "9"}, env.configPath); err == nil {
		t.Fatal("expected clone into missing container to fail")
	}
}

func TestShortcutUnknown(t *testing.T) {
	env := setupCLITestEnv(t)
	testsupport.NewContainer(t, env.cfg.Paths.ContainersDir, 1, "Main")
	if _, _, err := runCLI(t, []string{"shortcut", "show", "Nope"}, env.configPath); err == nil {
		t.Fatal("expected unknown shortcut to fail")
	}
	if _, _, err := runCLI(t, []string{"shortcut", "show", filepath.Join(t.TempDir(), "x.desktop")}, env.configPath); err == nil {
		t.Fatal("expected path outside containers to fail")
	}
}

func TestShortcutExtraSetCoverArtPath(t *testing.T) {
	env := setupCLITestEnv(t)
	c := testsupport.NewContainer(t, env.cfg.Paths.ContainersDir, 1, "Main")
	testsupport.WriteShortcut(t, c, "Game.desktop", "[Desktop Entry]", "Exec=wine game.exe")
	art := filepath.Join(t.TempDir(), "art.png")
	testsupport.WritePNG(t, art)

	if _, _, err := runCLI(t, []string{"shortcut", "extra", "set", "Game", "customCoverArtPath", art}, env.configPath); err != nil {
		t.Fatalf("extra set: %v", err)
	}
	out, _, err := runCLI(t, []string{"shortcut", "show", "Game", "--json"}, env.configPath)
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	var view shortcutView
	if err := json.Unmarshal([]byte(out), &view); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if view.CoverArt != art {
		t.Fatalf("cover art %q, want %q", view.CoverArt, art)
	}
}
