package shortcut

import (
	"bufio"
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"winlaunch/internal/logging"
)

const (
	desktopEntrySection = "Desktop Entry"
	extraDataSection    = "Extra Data"

	// Extension is the file extension SaveData requires.
	Extension = ".desktop"

	// Well-known extra data keys.
	KeyUUID               = "uuid"
	KeyCustomCoverArtPath = "customCoverArtPath"

	wineMarker = "wine "
)

// Container is the environment a shortcut launches in.
type Container interface {
	ID() int
	Name() string
	IconsDir(size int) string
	DesktopDir() string
	RootDir() string
}

// Layout names the host directories used when resolving icons and cover art.
type Layout struct {
	// CustomIconsDir holds user icon overrides named <shortcut name>.png.
	CustomIconsDir string
	// CoverArtDir holds default cover art named <shortcut name>.png. Empty
	// means <container root>/app_data/cover_arts.
	CoverArtDir string
}

// Option configures Open.
type Option func(*Record)

// WithLogger sets the logger used by best-effort operations such as
// CloneToContainer.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Record) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// Record is a parsed shortcut file.
type Record struct {
	container Container
	file      string
	layout    Layout
	logger    *slog.Logger

	name     string
	path     string
	wmClass  string
	iconName string
	iconFile string

	// entryLines are the raw lines replayed into [Desktop Entry] on save.
	entryLines []string
	extra      *extraData

	customCoverArtPath string
	coverArt           string
}

// Open parses the shortcut file at path. Unreadable files are an error; icon
// and cover art problems only leave those fields empty.
func Open(c Container, path string, layout Layout, opts ...Option) (*Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read shortcut: %w", err)
	}

	r := &Record{
		container: c,
		file:      path,
		layout:    layout,
		logger:    logging.NewNop(),
		name:      baseName(path),
		extra:     newExtraData(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = r.logger.With(logging.String(logging.FieldShortcut, path))

	if err := r.parse(data); err != nil {
		return nil, err
	}
	r.resolveIcon()
	r.customCoverArtPath, _ = r.extra.get(KeyCustomCoverArtPath)
	r.loadCoverArt()
	return r, nil
}

func (r *Record) parse(data []byte) error {
	var (
		section  string
		execArgs string
		replay   = true
	)
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		raw := strings.TrimRight(scanner.Text(), "\r")
		if strings.Contains(raw, "["+extraDataSection+"]") {
			replay = false
		}
		if replay && !strings.Contains(raw, "["+desktopEntrySection+"]") && raw != "" {
			r.entryLines = append(r.entryLines, raw)
		}

		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, "[") {
			if name, _, ok := strings.Cut(line[1:], "]"); ok {
				section = name
			}
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		switch section {
		case desktopEntrySection:
			switch key {
			case "Exec":
				execArgs = value
			case "Icon":
				r.iconName = value
			case "StartupWMClass":
				r.wmClass = value
			}
		case extraDataSection:
			r.extra.put(key, value)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scan shortcut: %w", err)
	}
	r.path = targetPath(execArgs)
	return nil
}

// targetPath extracts the launched program from an Exec value. When the
// command runs through wine, the part after the last "wine " is unescaped and
// stripped of surrounding quotes.
func targetPath(execArgs string) string {
	idx := strings.LastIndex(execArgs, wineMarker)
	if idx < 0 {
		return execArgs
	}
	path := strings.TrimSpace(unescape(execArgs[idx+len(wineMarker):]))
	if len(path) >= 2 && path[0] == '"' && path[len(path)-1] == '"' {
		path = path[1 : len(path)-1]
	}
	return path
}

// unescape drops a backslash before any character; "\\" becomes "\".
func unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	escaped := false
	for _, r := range s {
		if r == '\\' && !escaped {
			escaped = true
			continue
		}
		escaped = false
		b.WriteRune(r)
	}
	return b.String()
}

func baseName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Container returns the owning container.
func (r *Record) Container() Container { return r.container }

// ContainerID returns the owning container's id.
func (r *Record) ContainerID() int { return r.container.ID() }

// File returns the shortcut file path.
func (r *Record) File() string { return r.file }

// Name is the file name without its extension.
func (r *Record) Name() string { return r.name }

// Path is the launched program as derived from Exec.
func (r *Record) Path() string { return r.path }

// WMClass is the StartupWMClass value.
func (r *Record) WMClass() string { return r.wmClass }

// IconName is the raw Icon value.
func (r *Record) IconName() string { return r.iconName }

// IconFile is the resolved icon path, or empty when none was found.
func (r *Record) IconFile() string { return r.iconFile }

// CoverArt is the resolved cover art path, or empty when none was found.
func (r *Record) CoverArt() string { return r.coverArt }

// CustomCoverArtPath is the user-chosen cover art path, if any.
func (r *Record) CustomCoverArtPath() string { return r.customCoverArtPath }

// Extra returns the extra data value for key and whether it is present.
func (r *Record) Extra(key string) (string, bool) {
	return r.extra.get(key)
}

// ExtraOr returns the extra data value for key, or fallback when absent.
func (r *Record) ExtraOr(key, fallback string) string {
	if value, ok := r.extra.get(key); ok {
		return value
	}
	return fallback
}

// ExtraKeys returns extra data keys in file order.
func (r *Record) ExtraKeys() []string {
	out := make([]string, len(r.extra.keys))
	copy(out, r.extra.keys)
	return out
}

// PutExtra sets an extra data value. Changes persist on SaveData. Setting
// customCoverArtPath also re-resolves the cover art.
func (r *Record) PutExtra(key, value string) {
	r.extra.put(key, value)
	if key == KeyCustomCoverArtPath {
		r.customCoverArtPath = value
		r.loadCoverArt()
	}
}

// DeleteExtra removes an extra data key. Changes persist on SaveData.
func (r *Record) DeleteExtra(key string) {
	r.extra.remove(key)
	if key == KeyCustomCoverArtPath {
		r.customCoverArtPath = ""
		r.loadCoverArt()
	}
}
