package settings

import (
	"sort"
	"strings"
)

// Store is the persisted settings port.
type Store interface {
	// GetString returns the value stored under key, or fallback when absent.
	GetString(key, fallback string) string
	// SetString stores value under key, replacing any previous value.
	SetString(key, value string) error
}

// Memory is an in-process Store. The zero value is ready to use.
type Memory struct {
	values map[string]string
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{values: make(map[string]string)}
}

func (m *Memory) GetString(key, fallback string) string {
	if value, ok := m.values[key]; ok {
		return value
	}
	return fallback
}

func (m *Memory) SetString(key, value string) error {
	if m.values == nil {
		m.values = make(map[string]string)
	}
	m.values[key] = value
	return nil
}

// Keys returns stored keys with the given prefix, sorted.
func (m *Memory) Keys(prefix string) []string {
	keys := make([]string, 0, len(m.values))
	for key := range m.values {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys
}
