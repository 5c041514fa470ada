// Package logging assembles structured slog loggers and formatting helpers used
// across winlaunch.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and exposes component-scoped constructors so the preset store,
// shortcut records, and CLI tag their lines consistently. The package also
// provides a no-op logger for tests and wiring code that cannot fail.
//
// Prefer these constructors over hand-rolled slog setup so new components emit
// data with the same shape as the rest of the system.
package logging
