package testsupport

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"winlaunch/internal/container"
)

// WriteFile writes content to path, creating parent directories.
func WriteFile(t testing.TB, path, content string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// WritePNG writes a small valid PNG image to path.
func WritePNG(t testing.TB, path string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()

	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 0xff, A: 0xff})
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode %s: %v", path, err)
	}
}

// NewContainer creates container id under home with its desktop and icon
// directories.
func NewContainer(t testing.TB, home string, id int, name string) *container.Container {
	t.Helper()

	c, err := container.NewManager(home, nil).Create(container.Config{ID: id, Name: name})
	if err != nil {
		t.Fatalf("create container %d: %v", id, err)
	}
	return c
}

// WriteShortcut writes a .desktop file named name into the container's
// desktop directory and returns its path. Lines are joined with newlines.
func WriteShortcut(t testing.TB, c *container.Container, name string, lines ...string) string {
	t.Helper()

	path := filepath.Join(c.DesktopDir(), name)
	WriteFile(t, path, strings.Join(lines, "\n")+"\n")
	return path
}
