package preset

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Built-in tier ids, in listing order.
const (
	Stability     = "stability"
	Compatibility = "compatibility"
	Intermediate  = "intermediate"
	Performance   = "performance"
)

var builtinIDs = []string{Stability, Compatibility, Intermediate, Performance}

type entry struct {
	key   string
	value string
}

// tier holds one column of a built-in table: stability, compatibility,
// intermediate, performance.
type tier [4]string

func (t tier) at(id string) (string, bool) {
	for i, builtin := range builtinIDs {
		if builtin == id {
			return t[i], true
		}
	}
	return "", false
}

// knob names a variable (a suffix after the prefix for the dynarec knobs).
type knob struct {
	name   string
	values tier
}

var box64Dynarec = []knob{
	{"_DYNAREC_SAFEFLAGS", tier{"2", "2", "2", "1"}},
	{"_DYNAREC_FASTNAN", tier{"0", "0", "1", "1"}},
	{"_DYNAREC_FASTROUND", tier{"0", "0", "0", "1"}},
	{"_DYNAREC_X87DOUBLE", tier{"1", "1", "1", "0"}},
	{"_DYNAREC_BIGBLOCK", tier{"0", "0", "1", "3"}},
	{"_DYNAREC_STRONGMEM", tier{"2", "1", "0", "0"}},
	{"_DYNAREC_FORWARD", tier{"128", "128", "128", "512"}},
	{"_DYNAREC_CALLRET", tier{"0", "0", "1", "1"}},
	{"_DYNAREC_WAIT", tier{"0", "1", "1", "1"}},
}

// Only applied when the uppercased prefix is exactly BOX64.
var box64Extras = []knob{
	{"BOX64_AVX", tier{"0", "0", "0", "0"}},
	{"BOX64_UNITYPLAYER", tier{"1", "1", "0", "0"}},
	{"BOX64_MMAP32", tier{"0", "0", "1", "1"}},
}

var fexcoreKnobs = []knob{
	{"FEX_TSOENABLED", tier{"1", "1", "1", "0"}},
	{"FEX_VECTORTSOENABLED", tier{"1", "1", "0", "0"}},
	{"FEX_MEMCPYSETTSOENABLED", tier{"1", "1", "0", "0"}},
	{"FEX_HALFBARRIERTSOENABLED", tier{"1", "1", "1", "0"}},
	{"FEX_X87REDUCEDPRECISION", tier{"0", "0", "1", "1"}},
	{"FEX_MULTIBLOCK", tier{"0", "1", "1", "1"}},
}

func box64Entries(upperPrefix, id string) []entry {
	var out []entry
	for _, k := range box64Dynarec {
		value, ok := k.values.at(id)
		if !ok {
			return nil
		}
		out = append(out, entry{key: upperPrefix + k.name, value: value})
	}
	if upperPrefix == "BOX64" {
		for _, k := range box64Extras {
			value, _ := k.values.at(id)
			out = append(out, entry{key: k.name, value: value})
		}
	}
	return out
}

func fexcoreEntries(id string) []entry {
	var out []entry
	for _, k := range fexcoreKnobs {
		value, ok := k.values.at(id)
		if !ok {
			return nil
		}
		out = append(out, entry{key: k.name, value: value})
	}
	return out
}

// IsBuiltin reports whether id names one of the four fixed tiers.
func IsBuiltin(id string) bool {
	for _, builtin := range builtinIDs {
		if builtin == id {
			return true
		}
	}
	return false
}

func builtinLabel(id string) string {
	return cases.Title(language.English).String(id)
}
