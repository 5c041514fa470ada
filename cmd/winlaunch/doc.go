// Command winlaunch manages execution presets and application shortcuts for
// Windows containers.
//
// Subcommands:
//   - preset: list, inspect, create, edit, duplicate, remove, export, import
//     and select Box64/FEXCore presets
//   - shortcut: inspect .desktop shortcuts, edit extra data, manage cover art,
//     assign uuids and clone shortcuts between containers
//   - container: list and create containers, show launch environments, pick presets
//   - config: create, validate and print the configuration file
//   - doctor: check directories, the settings database and runtime binaries
//
// Mutating commands hold a file lock so concurrent invocations do not
// interleave writes to the same preset collection or shortcut file.
package main
