// SPDX-License-Identifier: MPL-2.0

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gmt/chopper/pkg/aliasfile"
)

// scanExts are the extensions expected inside the config directory: alias
// documents and the subprocess scripts they reference.
var scanExts = map[string]struct{}{
	".toml": {},
	".sh":   {},
}

// ScanExtensionWarnings flags files in the config directory whose
// extension suggests a near-miss alias document (e.g. `deploy.tml`), which
// would otherwise be silently invisible to discovery. The scan is
// best-effort: unreadable directories produce a warning, never an error.
func ScanExtensionWarnings(configDir string) []string {
	var warnings []string
	for _, dir := range []string{filepath.Join(configDir, AliasesSubdir), configDir} {
		collectExtensionWarnings(dir, &warnings)
	}
	sort.Strings(warnings)
	return dedupeSorted(warnings)
}

func collectExtensionWarnings(dir string, warnings *[]string) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if !os.IsNotExist(err) {
			*warnings = append(*warnings, fmt.Sprintf("could not scan %s: %v", dir, err))
		}
		return
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext == "" {
			continue
		}
		if _, ok := scanExts[ext]; ok {
			continue
		}
		*warnings = append(*warnings,
			fmt.Sprintf("suspicious config file extension (expected .toml/.sh): %s",
				filepath.Join(dir, entry.Name())))
	}
}

func dedupeSorted(values []string) []string {
	out := values[:0]
	for i, v := range values {
		if i > 0 && v == values[i-1] {
			continue
		}
		out = append(out, v)
	}
	return out
}

// MissingTargetWarnings flags manifest targets that point at files which
// do not exist. Bare exec names are skipped: they are PATH-resolved at
// launch and a miss there is the launcher's error to report.
func MissingTargetWarnings(m *aliasfile.Manifest) []string {
	var warnings []string

	if pathIsExplicit(m.Exec) {
		if _, err := os.Stat(m.Exec); err != nil {
			warnings = append(warnings, "exec target does not exist: "+m.Exec)
		}
	}
	if m.Reconcile != nil {
		if _, err := os.Stat(m.Reconcile.Script); err != nil {
			warnings = append(warnings, "reconcile script does not exist: "+m.Reconcile.Script)
		}
	}
	if m.Bashcomp != nil {
		if m.Bashcomp.Script != "" {
			if _, err := os.Stat(m.Bashcomp.Script); err != nil {
				warnings = append(warnings, "completion script does not exist: "+m.Bashcomp.Script)
			}
		}
		if m.Bashcomp.HookScript != "" {
			if _, err := os.Stat(m.Bashcomp.HookScript); err != nil {
				warnings = append(warnings, "completion hook script does not exist: "+m.Bashcomp.HookScript)
			}
		}
	}

	return warnings
}

func pathIsExplicit(path string) bool {
	return filepath.IsAbs(path) || strings.ContainsAny(path, `/\`)
}
