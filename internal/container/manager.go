package container

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"winlaunch/internal/logging"
	"winlaunch/internal/shortcut"
)

// ErrNotFound indicates no container with the requested id exists.
var ErrNotFound = errors.New("container not found")

// Manager enumerates containers under one home directory.
type Manager struct {
	home   string
	logger *slog.Logger
}

// NewManager returns a manager for containers under home.
func NewManager(home string, logger *slog.Logger) *Manager {
	return &Manager{home: home, logger: logging.NewComponentLogger(logger, "container")}
}

// Home returns the directory containers live in.
func (m *Manager) Home() string {
	return m.home
}

// List loads every xuser-<id> directory that has a .container file, ordered
// by id. Broken configs are logged and skipped.
func (m *Manager) List() ([]*Container, error) {
	entries, err := os.ReadDir(m.home)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("list containers: %w", err)
	}

	var out []*Container
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if _, ok := idFromDir(entry.Name()); !ok {
			continue
		}
		root := filepath.Join(m.home, entry.Name())
		if _, err := os.Stat(filepath.Join(root, configFileName)); err != nil {
			continue
		}
		c, err := Load(root)
		if err != nil {
			logging.WarnWithContext(m.logger, "skipping container", "container_load_failed",
				logging.String(logging.FieldPath, root),
				logging.Error(err),
			)
			continue
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out, nil
}

// Get returns the container with the given id.
func (m *Manager) Get(id int) (*Container, error) {
	containers, err := m.List()
	if err != nil {
		return nil, err
	}
	for _, c := range containers {
		if c.ID() == id {
			return c, nil
		}
	}
	return nil, fmt.Errorf("%w: %d", ErrNotFound, id)
}

// NextID is one past the highest existing container id.
func (m *Manager) NextID() (int, error) {
	containers, err := m.List()
	if err != nil {
		return 0, err
	}
	maxID := 0
	for _, c := range containers {
		maxID = max(maxID, c.ID())
	}
	return maxID + 1, nil
}

// Create makes a new container directory with its desktop and icon folders.
func (m *Manager) Create(cfg Config) (*Container, error) {
	if cfg.ID == 0 {
		next, err := m.NextID()
		if err != nil {
			return nil, err
		}
		cfg.ID = next
	}
	root := filepath.Join(m.home, dirPrefix+strconv.Itoa(cfg.ID))
	if _, err := os.Stat(root); err == nil {
		return nil, fmt.Errorf("container %d already exists at %s", cfg.ID, root)
	}

	c := New(root, cfg)
	dirs := []string{c.DesktopDir()}
	for _, size := range shortcut.IconSizes {
		dirs = append(dirs, c.IconsDir(size))
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create container dir %s: %w", dir, err)
		}
	}
	if err := c.Save(); err != nil {
		return nil, err
	}
	m.logger.Info("container created",
		logging.Int(logging.FieldContainerID, c.ID()),
		logging.String(logging.FieldPath, root),
	)
	return c, nil
}

// AllShortcuts returns the shortcuts of every container, sorted by name.
func (m *Manager) AllShortcuts(layout shortcut.Layout) ([]*shortcut.Record, error) {
	containers, err := m.List()
	if err != nil {
		return nil, err
	}
	var out []*shortcut.Record
	for _, c := range containers {
		records, err := c.Shortcuts(layout, m.logger)
		if err != nil {
			return nil, err
		}
		out = append(out, records...)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out, nil
}

// FindShortcut locates a shortcut by file name (with or without extension)
// across all containers.
func (m *Manager) FindShortcut(layout shortcut.Layout, name string) (*shortcut.Record, error) {
	records, err := m.AllShortcuts(layout)
	if err != nil {
		return nil, err
	}
	for _, rec := range records {
		if rec.Name() == name || filepath.Base(rec.File()) == name {
			return rec, nil
		}
	}
	return nil, fmt.Errorf("shortcut %q not found", name)
}
