package container

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"winlaunch/internal/envvars"
	"winlaunch/internal/fileutil"
	"winlaunch/internal/logging"
	"winlaunch/internal/preset"
	"winlaunch/internal/shortcut"
)

const (
	dirPrefix      = "xuser-"
	configFileName = ".container"
	wineUser       = "xuser"

	// EmulatorFEXCore selects the FEXCore backend; anything else runs Box64.
	EmulatorFEXCore = "FEXCore"
)

// Config mirrors the fields of a .container file this module reads or writes.
type Config struct {
	ID             int    `json:"id"`
	Name           string `json:"name"`
	ScreenSize     string `json:"screenSize,omitempty"`
	EnvVars        string `json:"envVars,omitempty"`
	GraphicsDriver string `json:"graphicsDriver,omitempty"`
	DXWrapper      string `json:"dxwrapper,omitempty"`
	AudioDriver    string `json:"audioDriver,omitempty"`
	WineVersion    string `json:"wineVersion,omitempty"`
	Emulator       string `json:"emulator,omitempty"`
	Box64Version   string `json:"box64Version,omitempty"`
	Box64Preset    string `json:"box64Preset,omitempty"`
	FEXCoreVersion string `json:"fexcoreVersion,omitempty"`
	FEXCorePreset  string `json:"fexcorePreset,omitempty"`
}

// Container is one container directory.
type Container struct {
	root   string
	config Config
	raw    map[string]json.RawMessage
}

var _ shortcut.Container = (*Container)(nil)

// New returns an unsaved container rooted at root.
func New(root string, cfg Config) *Container {
	if cfg.Name == "" {
		cfg.Name = "Container-" + strconv.Itoa(cfg.ID)
	}
	return &Container{root: root, config: cfg}
}

// Load reads root/.container.
func Load(root string) (*Container, error) {
	data, err := os.ReadFile(filepath.Join(root, configFileName))
	if err != nil {
		return nil, fmt.Errorf("read container config: %w", err)
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse container config: %w", err)
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse container config: %w", err)
	}
	if cfg.ID == 0 {
		if id, ok := idFromDir(filepath.Base(root)); ok {
			cfg.ID = id
		}
	}
	c := New(root, cfg)
	c.raw = raw
	return c, nil
}

// Save writes the config back to .container, keeping keys Config does not model.
func (c *Container) Save() error {
	known, err := json.Marshal(c.config)
	if err != nil {
		return fmt.Errorf("encode container config: %w", err)
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(known, &fields); err != nil {
		return fmt.Errorf("encode container config: %w", err)
	}
	merged := make(map[string]json.RawMessage, len(c.raw)+len(fields))
	for k, v := range c.raw {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	data, err := json.Marshal(merged)
	if err != nil {
		return fmt.Errorf("encode container config: %w", err)
	}
	if err := os.MkdirAll(c.root, 0o755); err != nil {
		return fmt.Errorf("create container dir: %w", err)
	}
	if err := fileutil.WriteFileAtomic(c.ConfigFile(), data, 0o644); err != nil {
		return fmt.Errorf("write container config: %w", err)
	}
	c.raw = merged
	return nil
}

func (c *Container) ID() int         { return c.config.ID }
func (c *Container) Name() string    { return c.config.Name }
func (c *Container) RootDir() string { return c.root }

// Config returns a copy of the container settings.
func (c *Container) Config() Config { return c.config }

// ConfigFile is the path of the .container file.
func (c *Container) ConfigFile() string {
	return filepath.Join(c.root, configFileName)
}

// DesktopDir holds the container's .desktop shortcuts.
func (c *Container) DesktopDir() string {
	return filepath.Join(c.root, ".wine", "drive_c", "users", wineUser, "Desktop")
}

// StartMenuDir is the Wine start menu of the container.
func (c *Container) StartMenuDir() string {
	return filepath.Join(c.root, ".wine", "drive_c", "ProgramData", "Microsoft", "Windows", "Start Menu")
}

// IconsDir is the hicolor icon directory for size x size icons.
func (c *Container) IconsDir(size int) string {
	dim := strconv.Itoa(size)
	return filepath.Join(c.root, ".local", "share", "icons", "hicolor", dim+"x"+dim, "apps")
}

// EnvVars parses the container's own environment variables.
func (c *Container) EnvVars() *envvars.EnvVars {
	return envvars.Parse(c.config.EnvVars)
}

// UsesFEXCore reports whether the container runs the FEXCore backend.
func (c *Container) UsesFEXCore() bool {
	return strings.EqualFold(c.config.Emulator, EmulatorFEXCore)
}

// Preset returns the preset id the container selects for domain, or empty.
// Built-in ids stored in upper case are normalized.
func (c *Container) Preset(domain preset.Domain) string {
	var id string
	if domain.Prefix() == preset.FEXCore().Prefix() {
		id = c.config.FEXCorePreset
	} else {
		id = c.config.Box64Preset
	}
	if lower := strings.ToLower(id); preset.IsBuiltin(lower) {
		return lower
	}
	return id
}

// SetPreset selects id for domain. Call Save to persist.
func (c *Container) SetPreset(domain preset.Domain, id string) {
	if domain.Prefix() == preset.FEXCore().Prefix() {
		c.config.FEXCorePreset = id
		return
	}
	c.config.Box64Preset = id
}

// Shortcuts opens every .desktop file in the desktop directory, sorted by
// name. Files that cannot be read are logged and skipped.
func (c *Container) Shortcuts(layout shortcut.Layout, logger *slog.Logger) ([]*shortcut.Record, error) {
	if logger == nil {
		logger = logging.NewNop()
	}
	entries, err := os.ReadDir(c.DesktopDir())
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("list shortcuts: %w", err)
	}

	var records []*shortcut.Record
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), shortcut.Extension) {
			continue
		}
		path := filepath.Join(c.DesktopDir(), entry.Name())
		rec, err := shortcut.Open(c, path, layout, shortcut.WithLogger(logger))
		if err != nil {
			logging.WarnWithContext(logger, "skipping unreadable shortcut", "shortcut_unreadable",
				logging.String(logging.FieldShortcut, path),
				logging.Error(err),
			)
			continue
		}
		records = append(records, rec)
	}
	sort.Slice(records, func(i, j int) bool { return records[i].Name() < records[j].Name() })
	return records, nil
}

func idFromDir(name string) (int, bool) {
	if !strings.HasPrefix(name, dirPrefix) {
		return 0, false
	}
	id, err := strconv.Atoi(strings.TrimPrefix(name, dirPrefix))
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
