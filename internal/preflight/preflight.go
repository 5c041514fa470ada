package preflight

import (
	"context"

	"winlaunch/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
	Detail string `json:"detail"`
}

// RunAll executes every applicable check for the given config.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{
		CheckDirectoryAccess("Data directory", cfg.Paths.DataDir),
		CheckDirectoryAccess("Presets directory", cfg.Paths.PresetsDir),
		CheckDirectoryAccess("Custom icons directory", cfg.Paths.CustomIconsDir),
		CheckDirectoryAccess("Log directory", cfg.Paths.LogDir),
	}

	// Containers are created by the runtime, so only read access is required.
	results = append(results, CheckDirectoryReadable("Containers directory", cfg.Paths.ContainersDir))

	if cfg.Paths.CoverArtDir != "" {
		results = append(results, CheckDirectoryAccess("Cover art directory", cfg.Paths.CoverArtDir))
	}

	results = append(results, CheckSettingsDatabase(ctx, cfg.Paths.SettingsDB))
	return results
}

// Failed counts results that did not pass.
func Failed(results []Result) int {
	n := 0
	for _, r := range results {
		if !r.Passed {
			n++
		}
	}
	return n
}
