package shortcut

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"winlaunch/internal/fileutil"
	"winlaunch/internal/logging"
)

const containerIDPrefix = "container_id:"

// render builds the file content SaveData writes.
func (r *Record) render() string {
	var b strings.Builder
	b.WriteString("[" + desktopEntrySection + "]\n")
	for _, line := range r.entryLines {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	if r.extra.len() > 0 {
		b.WriteString("\n[" + extraDataSection + "]\n")
		for _, key := range r.extra.keys {
			b.WriteString(key)
			b.WriteByte('=')
			b.WriteString(r.extra.values[key])
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// SaveData rewrites the file: the original [Desktop Entry] lines followed by
// the current extra data. Files without the .desktop extension are left alone.
func (r *Record) SaveData() error {
	if !strings.HasSuffix(r.file, Extension) {
		return nil
	}
	mode := os.FileMode(0o644)
	if info, err := os.Stat(r.file); err == nil {
		mode = info.Mode().Perm()
	}
	if err := fileutil.WriteFileAtomic(r.file, []byte(r.render()), mode); err != nil {
		return fmt.Errorf("save shortcut: %w", err)
	}
	return nil
}

// GenUUID assigns and saves a random uuid unless one is already set, and
// returns the value in effect.
func (r *Record) GenUUID() (string, error) {
	if existing := r.ExtraOr(KeyUUID, ""); existing != "" {
		return existing, nil
	}
	id := uuid.NewString()
	r.PutExtra(KeyUUID, id)
	if err := r.SaveData(); err != nil {
		return "", err
	}
	return id, nil
}

// SetCustomCoverArtPath records path as the cover art override and saves.
func (r *Record) SetCustomCoverArtPath(path string) error {
	r.PutExtra(KeyCustomCoverArtPath, path)
	return r.SaveData()
}

// RemoveCustomCoverArt deletes the override file, clears the reference and
// saves.
func (r *Record) RemoveCustomCoverArt() error {
	if r.customCoverArtPath != "" {
		if err := os.Remove(r.customCoverArtPath); err != nil && !errors.Is(err, os.ErrNotExist) {
			logging.WarnWithContext(r.logger, "remove cover art failed", "cover_art_remove_failed",
				logging.String(logging.FieldPath, r.customCoverArtPath),
				logging.Error(err),
			)
		}
	}
	r.DeleteExtra(KeyCustomCoverArtPath)
	return r.SaveData()
}

// SaveCustomCoverArt copies the image at src into the container's cover art
// directory as <name>.png and makes it the override.
func (r *Record) SaveCustomCoverArt(src string) error {
	if !decodable(src) {
		return fmt.Errorf("cover art %s is not a readable image", src)
	}
	if r.container == nil || r.container.RootDir() == "" {
		return errors.New("cover art: container has no root directory")
	}
	dir := filepath.Join(r.container.RootDir(), coverArtSubdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create cover art dir: %w", err)
	}
	dst := filepath.Join(dir, r.name+".png")
	if !fileutil.SameFile(src, dst) {
		if err := fileutil.CopyFileVerified(src, dst); err != nil {
			return fmt.Errorf("copy cover art: %w", err)
		}
	}
	return r.SetCustomCoverArtPath(dst)
}

// CloneToContainer writes a copy of the shortcut into target's desktop
// directory with its container_id line pointing at target, and copies the
// resolved icon into target's 64px icon directory. Failures are logged.
func (r *Record) CloneToContainer(target Container) bool {
	if err := r.cloneTo(target); err != nil {
		logging.WarnWithContext(r.logger, "clone shortcut failed", "shortcut_clone_failed",
			logging.Int(logging.FieldContainerID, target.ID()),
			logging.Error(err),
		)
		return false
	}
	r.logger.Info("shortcut cloned", logging.Int(logging.FieldContainerID, target.ID()))
	return true
}

func (r *Record) cloneTo(target Container) error {
	data, err := os.ReadFile(r.file)
	if err != nil {
		return fmt.Errorf("read source: %w", err)
	}

	idLine := containerIDPrefix + strconv.Itoa(target.ID())
	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	if len(data) == 0 {
		lines = nil
	}
	found := false
	var b strings.Builder
	for _, line := range lines {
		if strings.HasPrefix(line, containerIDPrefix) {
			line = idLine
			found = true
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
	if !found {
		b.WriteString(idLine)
		b.WriteByte('\n')
	}

	desktopDir := target.DesktopDir()
	if err := os.MkdirAll(desktopDir, 0o755); err != nil {
		return fmt.Errorf("create desktop dir: %w", err)
	}
	dst := filepath.Join(desktopDir, filepath.Base(r.file))
	if err := fileutil.WriteFileAtomic(dst, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write clone: %w", err)
	}

	if fileutil.IsRegularFile(r.iconFile) {
		iconsDir := target.IconsDir(IconSizes[0])
		if err := os.MkdirAll(iconsDir, 0o755); err != nil {
			return fmt.Errorf("create icons dir: %w", err)
		}
		iconDst := filepath.Join(iconsDir, filepath.Base(r.iconFile))
		if !fileutil.SameFile(r.iconFile, iconDst) {
			if err := fileutil.CopyFile(r.iconFile, iconDst); err != nil {
				return fmt.Errorf("copy icon: %w", err)
			}
		}
	}
	return nil
}

// Executable returns the last path component of the launched program.
func (r *Record) Executable() string {
	exe := r.path
	if idx := strings.LastIndexAny(exe, `\/`); idx >= 0 {
		exe = exe[idx+1:]
	}
	return strings.TrimRight(exe, " \t\r\n")
}
