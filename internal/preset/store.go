package preset

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"winlaunch/internal/envvars"
	"winlaunch/internal/logging"
	"winlaunch/internal/settings"
)

const customPrefix = "custom-"

// Preset is one selectable entry of a store.
type Preset struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Custom reports whether the preset is user-defined.
func (p Preset) Custom() bool {
	return IsCustom(p.ID)
}

// IsCustom reports whether id names a user-defined preset.
func IsCustom(id string) bool {
	return strings.HasPrefix(id, customPrefix)
}

// CheckRemovable returns ErrBuiltin unless id names a custom preset. Remove
// does not enforce this itself; callers check first.
func CheckRemovable(id string) error {
	if !IsCustom(id) {
		return fmt.Errorf("%w: %s", ErrBuiltin, id)
	}
	return nil
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for best-effort operations.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Store is the source of truth for one domain's presets.
type Store struct {
	settings settings.Store
	domain   Domain
	logger   *slog.Logger
}

// NewStore returns a store reading and writing domain's collection through st.
func NewStore(st settings.Store, domain Domain, opts ...Option) *Store {
	s := &Store{settings: st, domain: domain, logger: logging.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With(logging.String(logging.FieldDomain, domain.Prefix()))
	return s
}

// Domain returns the backend domain this store serves.
func (s *Store) Domain() Domain {
	return s.domain
}

func (s *Store) records() []record {
	return decodeCollection(s.settings.GetString(s.domain.CollectionKey(), ""))
}

func (s *Store) write(records []record) error {
	if err := s.settings.SetString(s.domain.CollectionKey(), encodeCollection(records)); err != nil {
		return fmt.Errorf("persist %s presets: %w", s.domain.Prefix(), err)
	}
	return nil
}

// List returns the built-in tiers followed by custom presets in stored order.
// Malformed records are skipped.
func (s *Store) List() []Preset {
	presets := make([]Preset, 0, len(builtinIDs))
	for _, id := range builtinIDs {
		presets = append(presets, Preset{ID: id, Name: builtinLabel(id)})
	}
	for _, rec := range s.records() {
		if !rec.ok {
			continue
		}
		presets = append(presets, Preset{ID: rec.id, Name: rec.name})
	}
	return presets
}

// Get returns the preset with the given id.
func (s *Store) Get(id string) (Preset, bool) {
	for _, p := range s.List() {
		if p.ID == id {
			return p, true
		}
	}
	return Preset{}, false
}

// EnvVars resolves the variables a preset applies. Unknown ids yield an empty
// mapping.
func (s *Store) EnvVars(id string) *envvars.EnvVars {
	env := envvars.New()
	if IsBuiltin(id) {
		for _, e := range s.domain.table(id) {
			env.Put(e.key, e.value)
		}
		return env
	}
	if !IsCustom(id) {
		return env
	}
	for _, rec := range s.records() {
		if rec.ok && rec.id == id {
			env.PutAll(rec.env)
			break
		}
	}
	return env
}

// nextID is one past the largest custom-<digits> id. Ids with any other
// suffix, or one that does not fit in 32 bits, are ignored.
func (s *Store) nextID(records []record) string {
	var maxID uint64
	for _, rec := range records {
		if !rec.ok || !IsCustom(rec.id) {
			continue
		}
		suffix := strings.TrimPrefix(rec.id, customPrefix)
		if suffix == "" || strings.TrimLeft(suffix, "0123456789") != "" {
			continue
		}
		n, err := strconv.ParseUint(suffix, 10, 32)
		if err != nil {
			continue
		}
		maxID = max(maxID, n)
	}
	return customPrefix + strconv.FormatUint(maxID+1, 10)
}

// CreateOrEdit writes a custom preset. An empty id appends a new preset with
// the next custom id; otherwise the matching record is replaced in place. The
// id written is returned.
func (s *Store) CreateOrEdit(id, name string, env *envvars.EnvVars) (string, error) {
	if err := checkEncodable(name, env); err != nil {
		return "", err
	}
	if id != "" && !IsCustom(id) {
		return "", fmt.Errorf("%w: %s", ErrBuiltin, id)
	}

	records := s.records()
	if id == "" {
		id = s.nextID(records)
		records = append(records, newRecord(id, name, env))
		if err := s.write(records); err != nil {
			return "", err
		}
		s.logger.Info("preset created",
			logging.String(logging.FieldPresetID, id),
			logging.String("name", name),
		)
		return id, nil
	}

	found := false
	for i, rec := range records {
		if rec.ok && rec.id == id {
			records[i] = newRecord(id, name, env)
			found = true
			break
		}
	}
	if err := s.write(records); err != nil {
		return "", err
	}
	if !found {
		return "", fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	s.logger.Info("preset updated",
		logging.String(logging.FieldPresetID, id),
		logging.String("name", name),
	)
	return id, nil
}

// Duplicate copies a preset's resolved variables into a new custom preset
// named "<source> (k)" with the smallest unused k.
func (s *Store) Duplicate(id string) (string, error) {
	presets := s.List()
	var source *Preset
	taken := make(map[string]struct{}, len(presets))
	for i := range presets {
		taken[presets[i].Name] = struct{}{}
		if source == nil && presets[i].ID == id {
			source = &presets[i]
		}
	}
	if source == nil {
		return "", fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	var name string
	for k := 1; ; k++ {
		name = fmt.Sprintf("%s (%d)", source.Name, k)
		if _, ok := taken[name]; !ok {
			break
		}
	}
	return s.CreateOrEdit("", name, s.EnvVars(source.ID))
}

// Remove drops every record with the given id and rewrites the collection.
// Ids that match nothing, built-ins included, leave it unchanged.
func (s *Store) Remove(id string) error {
	records := s.records()
	kept := records[:0]
	for _, rec := range records {
		if rec.ok && rec.id == id {
			continue
		}
		kept = append(kept, rec)
	}
	if err := s.write(kept); err != nil {
		return err
	}
	if len(kept) != len(records) {
		s.logger.Info("preset removed", logging.String(logging.FieldPresetID, id))
	}
	return nil
}

// Selected returns the persisted selection, falling back to compatibility
// when nothing valid is stored.
func (s *Store) Selected() string {
	id := s.settings.GetString(s.domain.SelectionKey(), "")
	if _, ok := s.Get(id); ok {
		return id
	}
	return Compatibility
}

// Select persists id as the selected preset.
func (s *Store) Select(id string) error {
	if _, ok := s.Get(id); !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err := s.settings.SetString(s.domain.SelectionKey(), id); err != nil {
		return fmt.Errorf("persist %s selection: %w", s.domain.Prefix(), err)
	}
	return nil
}
