package preset

import (
	"fmt"
	"strings"

	"winlaunch/internal/envvars"
)

const (
	recordSeparator = ","
	fieldSeparator  = "|"
)

// record is one entry of the persisted custom collection. raw is kept so
// rewrites reproduce records the store did not touch byte for byte.
type record struct {
	raw  string
	id   string
	name string
	env  string
	ok   bool
}

func decodeRecord(raw string) record {
	fields := strings.Split(raw, fieldSeparator)
	if len(fields) < 3 {
		return record{raw: raw}
	}
	return record{raw: raw, id: fields[0], name: fields[1], env: fields[2], ok: true}
}

func newRecord(id, name string, env *envvars.EnvVars) record {
	encoded := env.String()
	return record{
		raw:  strings.Join([]string{id, name, encoded}, fieldSeparator),
		id:   id,
		name: name,
		env:  encoded,
		ok:   true,
	}
}

// decodeCollection splits the stored value into records. An empty value is
// an empty collection.
func decodeCollection(encoded string) []record {
	if encoded == "" {
		return nil
	}
	parts := strings.Split(encoded, recordSeparator)
	out := make([]record, 0, len(parts))
	for _, part := range parts {
		out = append(out, decodeRecord(part))
	}
	return out
}

func encodeCollection(records []record) string {
	raws := make([]string, len(records))
	for i, rec := range records {
		raws[i] = rec.raw
	}
	return strings.Join(raws, recordSeparator)
}

// checkEncodable rejects values the collection format cannot hold.
func checkEncodable(name string, env *envvars.EnvVars) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: empty name", ErrUnencodable)
	}
	if strings.ContainsAny(name, recordSeparator+fieldSeparator+"\r\n") {
		return fmt.Errorf("%w: name %q contains a reserved character", ErrUnencodable, name)
	}
	if err := env.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrUnencodable, err)
	}
	for _, pair := range env.Strings() {
		if strings.ContainsAny(pair, recordSeparator+fieldSeparator) {
			return fmt.Errorf("%w: variable %q contains a reserved character", ErrUnencodable, pair)
		}
	}
	return nil
}
