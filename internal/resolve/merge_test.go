// SPDX-License-Identifier: MPL-2.0

package resolve

import (
	"reflect"
	"testing"

	"github.com/gmt/chopper/internal/reconcile"
)

func TestMergeArgs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		alias   []string
		runtime []string
		patch   *reconcile.Patch
		want    []string
	}{
		{
			name: "all empty", want: []string{},
		},
		{
			name:  "alias only",
			alias: []string{"status", "--short"},
			want:  []string{"status", "--short"},
		},
		{
			name:    "alias then runtime",
			alias:   []string{"a"},
			runtime: []string{"b"},
			want:    []string{"a", "b"},
		},
		{
			name:    "replace discards then append",
			alias:   []string{"a"},
			runtime: []string{"b"},
			patch:   &reconcile.Patch{ReplaceArgs: []string{"c"}, AppendArgs: []string{"d"}},
			want:    []string{"c", "d"},
		},
		{
			name:    "nil replace keeps accumulated",
			alias:   []string{"a"},
			runtime: []string{"b"},
			patch:   &reconcile.Patch{AppendArgs: []string{"d"}},
			want:    []string{"a", "b", "d"},
		},
		{
			name:    "empty replace clears",
			alias:   []string{"a"},
			runtime: []string{"b"},
			patch:   &reconcile.Patch{ReplaceArgs: []string{}},
			want:    []string{},
		},
		{
			name:    "duplicates survive in order",
			alias:   []string{"-v", "-v"},
			runtime: []string{"-v"},
			want:    []string{"-v", "-v", "-v"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := MergeArgs(tt.alias, tt.runtime, tt.patch)
			if len(got) != len(tt.want) || (len(got) > 0 && !reflect.DeepEqual(got, tt.want)) {
				t.Errorf("MergeArgs() = %v, want %v", got, tt.want)
			}
			// Merging is pure: same inputs, same output.
			if again := MergeArgs(tt.alias, tt.runtime, tt.patch); !reflect.DeepEqual(again, got) {
				t.Errorf("MergeArgs() is not deterministic: %v vs %v", again, got)
			}
		})
	}
}

func TestMergeArgs_DoesNotAliasInputs(t *testing.T) {
	t.Parallel()

	alias := []string{"a"}
	merged := MergeArgs(alias, []string{"b"}, nil)
	merged[0] = "mutated"
	if alias[0] != "a" {
		t.Error("MergeArgs shares backing storage with its inputs")
	}
}

func TestMergeEnv(t *testing.T) {
	t.Parallel()

	inherited := map[string]string{"HOME": "/home/u", "PATH": "/usr/bin", "TERM": "xterm"}

	t.Run("alias overlay wins over inherited", func(t *testing.T) {
		t.Parallel()
		got := MergeEnv(inherited, map[string]string{"PATH": "/opt/bin"}, nil, nil)
		if got["PATH"] != "/opt/bin" || got["HOME"] != "/home/u" {
			t.Errorf("MergeEnv() = %v", got)
		}
	})

	t.Run("env_remove deletes after overlay", func(t *testing.T) {
		t.Parallel()
		got := MergeEnv(inherited, map[string]string{"EXTRA": "1"}, []string{"TERM", "ABSENT"}, nil)
		if _, ok := got["TERM"]; ok {
			t.Error("TERM survived env_remove")
		}
		if got["EXTRA"] != "1" {
			t.Errorf("MergeEnv() = %v", got)
		}
	})

	t.Run("set_env reintroduces a removed key", func(t *testing.T) {
		t.Parallel()
		patch := &reconcile.Patch{SetEnv: map[string]string{"TERM": "dumb"}}
		got := MergeEnv(inherited, nil, []string{"TERM"}, patch)
		if got["TERM"] != "dumb" {
			t.Errorf("TERM = %q, want patch value", got["TERM"])
		}
	})

	t.Run("remove_env has final precedence", func(t *testing.T) {
		t.Parallel()
		patch := &reconcile.Patch{
			SetEnv:    map[string]string{"TERM": "dumb"},
			RemoveEnv: []string{"TERM"},
		}
		got := MergeEnv(inherited, nil, nil, patch)
		if _, ok := got["TERM"]; ok {
			t.Error("remove_env did not win over set_env")
		}
	})

	t.Run("inherited snapshot is never mutated", func(t *testing.T) {
		t.Parallel()
		patch := &reconcile.Patch{SetEnv: map[string]string{"HOME": "/elsewhere"}, RemoveEnv: []string{"PATH"}}
		_ = MergeEnv(inherited, map[string]string{"TERM": "vt100"}, []string{"HOME"}, patch)
		if inherited["HOME"] != "/home/u" || inherited["PATH"] != "/usr/bin" || inherited["TERM"] != "xterm" {
			t.Errorf("inherited snapshot mutated: %v", inherited)
		}
	})
}

func TestEnvironToMap(t *testing.T) {
	t.Parallel()

	got := EnvironToMap([]string{
		"HOME=/home/u",
		"EMPTY=",
		"EQ=a=b=c",
		"no-separator",
		"=anonymous",
		"DUP=first",
		"DUP=last",
	})
	want := map[string]string{
		"HOME":  "/home/u",
		"EMPTY": "",
		"EQ":    "a=b=c",
		"DUP":   "last",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("EnvironToMap() = %v, want %v", got, want)
	}
}

func TestSortedEnviron(t *testing.T) {
	t.Parallel()

	env := map[string]string{"B": "2", "A": "1", "C": "3"}
	want := []string{"A=1", "B=2", "C=3"}
	for i := 0; i < 5; i++ {
		if got := SortedEnviron(env); !reflect.DeepEqual(got, want) {
			t.Fatalf("SortedEnviron() = %v, want %v", got, want)
		}
	}
}
