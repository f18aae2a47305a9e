// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestValidate_WarnsOnMissingTargets(t *testing.T) {
	setupDirs(t)
	dir := t.TempDir()

	docPath := filepath.Join(dir, "gs.toml")
	doc := "exec = \"" + filepath.Join(dir, "gone-binary") + "\"\n"
	if err := os.WriteFile(docPath, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	stdout, stderr, err := execCommand(t, newValidateCommand(), docPath)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	// A valid document with an absent explicit target still validates; the
	// miss surfaces as a warning only.
	if !strings.Contains(stdout, "valid") {
		t.Errorf("stdout = %q, want validation success", stdout)
	}
	if !strings.Contains(stderr, "exec target does not exist") {
		t.Errorf("stderr = %q, want a missing-target warning", stderr)
	}
}
