package envvars

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// ErrInvalidEntry indicates an assignment the flat encoding cannot represent.
var ErrInvalidEntry = errors.New("invalid environment variable entry")

// EnvVars is an insertion-ordered mapping of variable names to values.
// The zero value is ready to use.
type EnvVars struct {
	keys   []string
	values map[string]string
}

// New returns an empty mapping.
func New() *EnvVars {
	return &EnvVars{}
}

// Parse decodes a space-joined KEY=VALUE list. Tokens without '=' are ignored.
func Parse(encoded string) *EnvVars {
	env := New()
	env.PutAll(encoded)
	return env
}

// FromPairs builds a mapping from alternating key/value arguments.
func FromPairs(pairs ...string) *EnvVars {
	env := New()
	for i := 0; i+1 < len(pairs); i += 2 {
		env.Put(pairs[i], pairs[i+1])
	}
	return env
}

// Put assigns value to name. Re-assigning an existing name keeps its position.
func (e *EnvVars) Put(name, value string) {
	if e.values == nil {
		e.values = make(map[string]string)
	}
	if _, ok := e.values[name]; !ok {
		e.keys = append(e.keys, name)
	}
	e.values[name] = value
}

// PutAll decodes encoded and merges every entry into e.
func (e *EnvVars) PutAll(encoded string) {
	for _, token := range strings.Fields(encoded) {
		idx := strings.IndexByte(token, '=')
		if idx <= 0 {
			continue
		}
		e.Put(token[:idx], token[idx+1:])
	}
}

// Merge copies every entry of other into e, in other's order.
func (e *EnvVars) Merge(other *EnvVars) {
	if other == nil {
		return
	}
	for _, key := range other.keys {
		e.Put(key, other.values[key])
	}
}

// Get returns the value for name and whether it is set.
func (e *EnvVars) Get(name string) (string, bool) {
	if e == nil || e.values == nil {
		return "", false
	}
	value, ok := e.values[name]
	return value, ok
}

// Has reports whether name is set.
func (e *EnvVars) Has(name string) bool {
	_, ok := e.Get(name)
	return ok
}

// Delete removes name if present.
func (e *EnvVars) Delete(name string) {
	if e == nil || e.values == nil {
		return
	}
	if _, ok := e.values[name]; !ok {
		return
	}
	delete(e.values, name)
	for i, key := range e.keys {
		if key == name {
			e.keys = append(e.keys[:i], e.keys[i+1:]...)
			break
		}
	}
}

// Len returns the number of entries.
func (e *EnvVars) Len() int {
	if e == nil {
		return 0
	}
	return len(e.keys)
}

// Keys returns the variable names in insertion order.
func (e *EnvVars) Keys() []string {
	if e == nil {
		return nil
	}
	out := make([]string, len(e.keys))
	copy(out, e.keys)
	return out
}

// Clone returns an independent copy.
func (e *EnvVars) Clone() *EnvVars {
	out := New()
	out.Merge(e)
	return out
}

// Strings renders each entry as KEY=VALUE, in order.
func (e *EnvVars) Strings() []string {
	if e == nil {
		return nil
	}
	out := make([]string, 0, len(e.keys))
	for _, key := range e.keys {
		out = append(out, key+"="+e.values[key])
	}
	return out
}

// String returns the flat encoding.
func (e *EnvVars) String() string {
	return strings.Join(e.Strings(), " ")
}

// Equal reports whether both mappings hold the same entries in the same order.
func (e *EnvVars) Equal(other *EnvVars) bool {
	if e.Len() != other.Len() {
		return false
	}
	for i, key := range e.Keys() {
		if other.keys[i] != key || other.values[key] != e.values[key] {
			return false
		}
	}
	return true
}

// Validate reports the first entry that would not survive an encode/decode
// round trip.
func (e *EnvVars) Validate() error {
	if e == nil {
		return nil
	}
	for _, key := range e.keys {
		if key == "" || strings.ContainsFunc(key, func(r rune) bool { return r == '=' || unicode.IsSpace(r) }) {
			return fmt.Errorf("%w: name %q", ErrInvalidEntry, key)
		}
		if strings.ContainsFunc(e.values[key], unicode.IsSpace) {
			return fmt.Errorf("%w: value of %s contains whitespace", ErrInvalidEntry, key)
		}
	}
	return nil
}
