// SPDX-License-Identifier: MPL-2.0

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gmt/chopper/pkg/aliasfile"
)

func TestScanExtensionWarnings(t *testing.T) {
	t.Parallel()

	configDir := t.TempDir()
	aliasesDir := filepath.Join(configDir, AliasesSubdir)
	if err := os.MkdirAll(aliasesDir, 0o755); err != nil {
		t.Fatal(err)
	}

	files := map[string]string{
		filepath.Join(aliasesDir, "gs.toml"):    "fine",
		filepath.Join(aliasesDir, "deploy.tml"): "near miss",
		filepath.Join(aliasesDir, "patch.sh"):   "fine",
		filepath.Join(configDir, "gs.toml"):     "fine",
		filepath.Join(configDir, "backup.bak"):  "flagged",
		filepath.Join(configDir, "README"):      "extension-less, skipped",
	}
	for path := range files {
		if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	warnings := ScanExtensionWarnings(configDir)
	if len(warnings) != 2 {
		t.Fatalf("ScanExtensionWarnings() = %d warnings, want 2: %v", len(warnings), warnings)
	}
	if !strings.Contains(warnings[0], "deploy.tml") || !strings.Contains(warnings[1], "backup.bak") {
		t.Errorf("warnings = %v, want aliases/deploy.tml then backup.bak", warnings)
	}
	for _, w := range warnings {
		if !strings.Contains(w, "suspicious config file extension") {
			t.Errorf("warning %q missing the extension hint", w)
		}
	}
}

func TestScanExtensionWarnings_MissingDirsSilent(t *testing.T) {
	t.Parallel()

	configDir := filepath.Join(t.TempDir(), "never-created")
	if warnings := ScanExtensionWarnings(configDir); len(warnings) != 0 {
		t.Errorf("ScanExtensionWarnings(missing dir) = %v, want none", warnings)
	}
}

func TestMissingTargetWarnings(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	existing := filepath.Join(dir, "tool")
	if err := os.WriteFile(existing, []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		m    *aliasfile.Manifest
		want int
	}{
		{
			name: "explicit targets present",
			m: &aliasfile.Manifest{
				Exec:      existing,
				Reconcile: &aliasfile.ReconcileConfig{Script: existing},
			},
			want: 0,
		},
		{
			// Bare exec names are PATH-resolved at launch; resolving them
			// here would double-report the launcher's own error.
			name: "bare exec name skipped",
			m:    &aliasfile.Manifest{Exec: "definitely-not-a-real-binary"},
			want: 0,
		},
		{
			name: "explicit exec missing",
			m:    &aliasfile.Manifest{Exec: filepath.Join(dir, "gone")},
			want: 1,
		},
		{
			name: "all script targets missing",
			m: &aliasfile.Manifest{
				Exec:      existing,
				Reconcile: &aliasfile.ReconcileConfig{Script: filepath.Join(dir, "no-patch")},
				Bashcomp: &aliasfile.BashcompConfig{
					Script:     filepath.Join(dir, "no-comp"),
					HookScript: filepath.Join(dir, "no-hook"),
				},
			},
			want: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := MissingTargetWarnings(tt.m)
			if len(got) != tt.want {
				t.Errorf("MissingTargetWarnings() = %v, want %d warnings", got, tt.want)
			}
		})
	}
}
