package preset

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"winlaunch/internal/envvars"
	"winlaunch/internal/fileutil"
	"winlaunch/internal/logging"
	"winlaunch/internal/textutil"
)

// ExportExtension is the file extension of exported presets.
const ExportExtension = ".wbp"

const (
	exportIDField   = "ID"
	exportNameField = "Name"
	exportEnvField  = "EnvVars"
)

// ExportFileName returns the file name Export uses for a preset name.
func (s *Store) ExportFileName(name string) string {
	return textutil.ExportFileName(s.domain.Prefix(), name, ExportExtension)
}

// Export writes a custom preset to dir as a three-line .wbp file and returns
// its path. Built-in or unknown ids and I/O failures report false.
func (s *Store) Export(id, dir string) (string, bool) {
	if !IsCustom(id) {
		return "", false
	}
	var target *record
	for _, rec := range s.records() {
		if rec.ok && rec.id == id {
			target = &rec
			break
		}
	}
	if target == nil {
		return "", false
	}

	path := filepath.Join(dir, s.ExportFileName(target.name))
	content := fmt.Sprintf("%s:%s\n%s:%s\n%s:%s\n",
		exportIDField, target.id,
		exportNameField, target.name,
		exportEnvField, target.env,
	)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		s.logTransferFailure("preset export failed", id, dir, err)
		return "", false
	}
	if err := fileutil.WriteFileAtomic(path, []byte(content), 0o644); err != nil {
		s.logTransferFailure("preset export failed", id, path, err)
		return "", false
	}
	s.logger.Info("preset exported",
		logging.String(logging.FieldPresetID, id),
		logging.String(logging.FieldPath, path),
	)
	return path, true
}

// Import reads an exported preset and appends it under a freshly allocated
// id; any id in the data is ignored. Unreadable or unusable input reports
// false and leaves the collection unchanged.
func (s *Store) Import(r io.Reader) (string, bool) {
	var (
		name    string
		env     string
		hasName bool
	)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		field, value, ok := strings.Cut(scanner.Text(), ":")
		if !ok {
			continue
		}
		switch field {
		case exportNameField:
			name, hasName = value, true
		case exportEnvField:
			env = value
		}
	}
	if err := scanner.Err(); err != nil {
		s.logTransferFailure("preset import failed", "", "", err)
		return "", false
	}
	if !hasName {
		s.logTransferFailure("preset import failed", "", "", fmt.Errorf("missing %s line", exportNameField))
		return "", false
	}

	id, err := s.CreateOrEdit("", name, envvars.Parse(env))
	if err != nil {
		s.logTransferFailure("preset import failed", "", "", err)
		return "", false
	}
	return id, true
}

func (s *Store) logTransferFailure(msg, id, path string, err error) {
	attrs := []logging.Attr{logging.Error(err)}
	if id != "" {
		attrs = append(attrs, logging.String(logging.FieldPresetID, id))
	}
	if path != "" {
		attrs = append(attrs, logging.String(logging.FieldPath, path))
	}
	logging.WarnWithContext(s.logger, msg, "preset_transfer_failed", attrs...)
}
