// Package preflight provides readiness checks for the directories and
// settings database winlaunch depends on.
//
// The CLI "winlaunch doctor" command runs RunAll and renders each Result.
// Optional paths that are not configured are skipped.
package preflight
