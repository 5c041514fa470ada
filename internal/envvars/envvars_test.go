package envvars_test

import (
	"errors"
	"reflect"
	"testing"

	"winlaunch/internal/envvars"
)

func TestParsePreservesOrder(t *testing.T) {
	env := envvars.Parse("B=2 A=1 C=3")
	if got, want := env.Keys(), []string{"B", "A", "C"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected key order: got %v want %v", got, want)
	}
	if got := env.String(); got != "B=2 A=1 C=3" {
		t.Fatalf("unexpected encoding: %q", got)
	}
}

func TestParseSkipsMalformedTokens(t *testing.T) {
	env := envvars.Parse("  A=1   junk =x B=  C=a=b ")
	want := []string{"A=1", "B=", "C=a=b"}
	if got := env.Strings(); !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected entries: got %v want %v", got, want)
	}
}

func TestPutKeepsPositionOnOverwrite(t *testing.T) {
	env := envvars.New()
	env.Put("A", "1")
	env.Put("B", "2")
	env.Put("A", "3")
	if got := env.String(); got != "A=3 B=2" {
		t.Fatalf("unexpected encoding: %q", got)
	}
}

func TestDelete(t *testing.T) {
	env := envvars.FromPairs("A", "1", "B", "2", "C", "3")
	env.Delete("B")
	env.Delete("missing")
	if got := env.String(); got != "A=1 C=3" {
		t.Fatalf("unexpected encoding: %q", got)
	}
	if env.Has("B") {
		t.Fatal("expected B to be removed")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	env := envvars.FromPairs("A", "1")
	clone := env.Clone()
	clone.Put("B", "2")
	if env.Len() != 1 {
		t.Fatalf("clone mutated source: %q", env.String())
	}
	if !env.Equal(envvars.Parse("A=1")) {
		t.Fatal("expected equal mappings")
	}
	if env.Equal(clone) {
		t.Fatal("expected mappings to differ")
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		env     *envvars.EnvVars
		wantErr bool
	}{
		{name: "ok", env: envvars.FromPairs("FEX_MULTIBLOCK", "1")},
		{name: "empty value", env: envvars.FromPairs("A", "")},
		{name: "space in value", env: envvars.FromPairs("A", "x y"), wantErr: true},
		{name: "empty key", env: envvars.FromPairs("", "1"), wantErr: true},
		{name: "equals in key", env: envvars.FromPairs("A=B", "1"), wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.env.Validate()
			if tc.wantErr != (err != nil) {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
			if err != nil && !errors.Is(err, envvars.ErrInvalidEntry) {
				t.Fatalf("expected ErrInvalidEntry, got %v", err)
			}
		})
	}
}
