package preset

import (
	"fmt"
	"strings"
)

// Domain identifies the translation backend a store serves and owns its
// built-in environment tables.
type Domain struct {
	prefix string
	table  func(id string) []entry
}

// Box64 returns the Box64-family domain for prefix ("box64" or "wowbox64").
// Variable names use the uppercased prefix; the AVX, Unity player and MMAP32
// knobs only apply to plain BOX64.
func Box64(prefix string) Domain {
	prefix = strings.ToLower(strings.TrimSpace(prefix))
	upper := strings.ToUpper(prefix)
	return Domain{
		prefix: prefix,
		table: func(id string) []entry {
			return box64Entries(upper, id)
		},
	}
}

// FEXCore returns the FEXCore domain.
func FEXCore() Domain {
	return Domain{prefix: "fexcore", table: fexcoreEntries}
}

// ParseDomain resolves a backend name to its domain.
func ParseDomain(name string) (Domain, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "box64":
		return Box64("box64"), nil
	case "wowbox64":
		return Box64("wowbox64"), nil
	case "fexcore", "fex":
		return FEXCore(), nil
	default:
		return Domain{}, fmt.Errorf("unknown preset domain %q (want box64, wowbox64 or fexcore)", name)
	}
}

// Prefix returns the lowercase settings prefix.
func (d Domain) Prefix() string {
	return d.prefix
}

// CollectionKey is the settings key that stores custom presets.
func (d Domain) CollectionKey() string {
	return d.prefix + "_custom_presets"
}

// SelectionKey is the settings key that stores the selected preset id.
func (d Domain) SelectionKey() string {
	return d.prefix + "_selected_preset"
}

func (d Domain) String() string {
	return d.prefix
}
