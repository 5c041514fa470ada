// Package config loads, normalizes, and validates winlaunch configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours the WINLAUNCH_DATA_DIR environment
// fallback. The Config type centralizes the directory layout shared by the
// preset store, the settings database, and the shortcut tooling, so every
// derived path is resolved in one pass.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths and clear validation errors.
package config
