package testsupport

import (
	"testing"

	"winlaunch/internal/config"
	"winlaunch/internal/settings"
)

// MustOpenSettings opens the settings database for tests and registers cleanup.
func MustOpenSettings(t testing.TB, cfg *config.Config) *settings.SQLite {
	t.Helper()

	store, err := settings.Open(cfg)
	if err != nil {
		t.Fatalf("settings.Open: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}
