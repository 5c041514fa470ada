// Package shortcut reads and writes application shortcut records: .desktop
// files that launch a Windows executable inside a container, plus an
// [Extra Data] section carrying runtime metadata.
//
// Open parses a file in one pass. The [Desktop Entry] section is kept as the
// raw lines read from disk and replayed verbatim by SaveData; only Exec, Icon
// and StartupWMClass are interpreted. [Extra Data] is modeled as an ordered
// key/value map and regenerated on every save. Exec and Icon cannot be edited
// through a Record; rewrite the file directly for that.
package shortcut
