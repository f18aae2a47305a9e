// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gmt/chopper/internal/config"
)

func TestResolve_FallsBackToPath(t *testing.T) {
	setupDirs(t)
	binDir := t.TempDir()
	t.Setenv("PATH", binDir)
	tool := fakeExecutable(t, binDir, "deployctl")

	// No alias document exists; the name still resolves as a plain PATH
	// command with the runtime arguments passed through.
	stdout, _, err := execCommand(t, newResolveCommand(), "deployctl", "--", "up", "--wait")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if !strings.Contains(stdout, tool) {
		t.Errorf("resolve output %q missing PATH-resolved executable %s", stdout, tool)
	}
	if !strings.Contains(stdout, "up") || !strings.Contains(stdout, "--wait") {
		t.Errorf("resolve output %q missing runtime args", stdout)
	}
}

func TestResolve_FallbackKeepsBareNameOnPathMiss(t *testing.T) {
	setupDirs(t)
	t.Setenv("PATH", t.TempDir())

	stdout, _, err := execCommand(t, newResolveCommand(), "ghost-command")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if !strings.Contains(stdout, "ghost-command") {
		t.Errorf("resolve output %q missing the bare name", stdout)
	}
}

func TestResolve_DocumentStillWins(t *testing.T) {
	configDir := setupDirs(t)
	binDir := t.TempDir()
	t.Setenv("PATH", binDir)
	shadow := fakeExecutable(t, binDir, "gs")
	tool := fakeExecutable(t, t.TempDir(), "git")

	docPath := filepath.Join(configDir, "gs.toml")
	doc := "exec = \"" + tool + "\"\nargs = [\"status\"]\n"
	if err := os.WriteFile(docPath, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	stdout, _, err := execCommand(t, newResolveCommand(), "gs")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if !strings.Contains(stdout, tool) || strings.Contains(stdout, shadow) {
		t.Errorf("resolve output %q, want document exec %s over PATH hit %s", stdout, tool, shadow)
	}
}

func TestWhich_FallsBackToPath(t *testing.T) {
	setupDirs(t)
	binDir := t.TempDir()
	t.Setenv("PATH", binDir)
	tool := fakeExecutable(t, binDir, "deployctl")

	stdout, _, err := execCommand(t, newWhichCommand(), "deployctl")
	if err != nil {
		t.Fatalf("which: %v", err)
	}
	if strings.TrimSpace(stdout) != tool {
		t.Errorf("which = %q, want %q", stdout, tool)
	}
}

func TestWhich_NotFoundAnywhere(t *testing.T) {
	setupDirs(t)
	t.Setenv("PATH", t.TempDir())

	_, stderr, err := execCommand(t, newWhichCommand(), "ghost-command")
	if err == nil {
		t.Fatal("which succeeded for a name with no document and no PATH hit")
	}
	var exitErr *ExitError
	if !errors.As(err, &exitErr) || exitErr.Code != exitFailure {
		t.Errorf("error = %v, want ExitError with code %d", err, exitFailure)
	}
	var notFound *config.NotFoundError
	if !errors.As(err, &notFound) {
		t.Errorf("error = %v, want wrapped *config.NotFoundError", err)
	}
	if !strings.Contains(stderr, "ghost-command") {
		t.Errorf("stderr %q does not name the alias", stderr)
	}
}
