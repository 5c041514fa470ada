package textutil_test

import (
	"testing"

	"winlaunch/internal/textutil"
)

func TestExportFileName(t *testing.T) {
	tests := []struct {
		prefix string
		name   string
		want   string
	}{
		{"box64", "My Preset", "box64_My Preset.wbp"},
		{"wowbox64", "  Fast/Loose  ", "wowbox64_Fast-Loose.wbp"},
		{"fexcore", `a\b:c*d`, "fexcore_a-b-c-d.wbp"},
		{"box64", `What? "x" <y>`, "box64_What- -x- -y-.wbp"},
		{"box64", "..hidden", "box64_hidden.wbp"},
		{"box64", "tab\there", "box64_tab-here.wbp"},
		{"box64", "///", "box64_preset.wbp"},
		{"box64", "   ", "box64_preset.wbp"},
	}
	for _, tt := range tests {
		if got := textutil.ExportFileName(tt.prefix, tt.name, ".wbp"); got != tt.want {
			t.Errorf("ExportFileName(%q, %q) = %q, want %q", tt.prefix, tt.name, got, tt.want)
		}
	}
}

func TestLockName(t *testing.T) {
	tests := []struct {
		kind  string
		parts []string
		want  string
	}{
		{"shortcut", []string{"1", "My Game"}, "shortcut-1-my_game.lock"},
		{"shortcut", []string{"3", "Half-Life 2: Episode"}, "shortcut-3-half_life_2_episode.lock"},
		{"container", []string{"12"}, "container-12.lock"},
		{"container", []string{"", "!!"}, "container.lock"},
		{"Shortcut", []string{"Ünï"}, "shortcut-n.lock"},
	}
	for _, tt := range tests {
		if got := textutil.LockName(tt.kind, tt.parts...); got != tt.want {
			t.Errorf("LockName(%q, %q) = %q, want %q", tt.kind, tt.parts, got, tt.want)
		}
	}
}
