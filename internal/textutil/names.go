package textutil

import (
	"strings"
	"unicode"
)

// exportNameFallback stands in for a preset name with nothing usable left.
const exportNameFallback = "preset"

// ExportFileName returns "<prefix>_<name><ext>". The preset name keeps its
// spelling, spaces and case included; only characters a file name on the
// shared storage cannot hold are replaced with '-'.
func ExportFileName(prefix, name, ext string) string {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case unicode.IsControl(r):
			return '-'
		case strings.ContainsRune(`/\:*?"<>|`, r):
			return '-'
		}
		return r
	}, strings.TrimSpace(name))
	cleaned = strings.TrimLeft(cleaned, ".")
	if strings.Trim(cleaned, "- ") == "" {
		cleaned = exportNameFallback
	}
	return prefix + "_" + cleaned + ext
}

// LockName returns "<kind>-<part>-<part>.lock". Each part is lowercased and
// reduced to ASCII letters and digits; other runs collapse to a single '_'.
// Distinct items may share a lock name, which only over-serializes them.
func LockName(kind string, parts ...string) string {
	tokens := make([]string, 0, len(parts)+1)
	tokens = append(tokens, lockToken(kind))
	for _, part := range parts {
		if token := lockToken(part); token != "" {
			tokens = append(tokens, token)
		}
	}
	return strings.Join(tokens, "-") + ".lock"
}

func lockToken(value string) string {
	var b strings.Builder
	pendingSep := false
	for _, r := range strings.ToLower(value) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingSep && b.Len() > 0 {
				b.WriteByte('_')
			}
			pendingSep = false
			b.WriteRune(r)
			continue
		}
		pendingSep = true
	}
	return b.String()
}
