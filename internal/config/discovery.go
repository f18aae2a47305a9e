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

// AliasesSubdir is the preferred subdirectory for alias documents inside
// the config directory.
const AliasesSubdir = "aliases"

// NotFoundError reports that no alias document exists for a name. Front
// ends map it to dedicated guidance; the resolve path instead falls
// through to plain PATH resolution and never sees it.
type NotFoundError struct {
	Alias     string
	ConfigDir string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no alias document found for `%s` in %s", e.Alias, e.ConfigDir)
}

// FindAliasSource returns the path of the alias document for name, or ""
// if none exists. Candidates are tried in order:
//
//	<config>/aliases/<name>.toml
//	<config>/<name>.toml
//
// Symlinked candidates count as long as they resolve to a regular file.
func FindAliasSource(configDir, name string) string {
	candidates := []string{
		filepath.Join(configDir, AliasesSubdir, name+aliasfile.DocumentExt),
		filepath.Join(configDir, name+aliasfile.DocumentExt),
	}
	for _, candidate := range candidates {
		if info, err := os.Stat(candidate); err == nil && info.Mode().IsRegular() {
			return candidate
		}
	}
	return ""
}

// ListAliases enumerates alias names that have a document in the config
// directory, sorted and deduplicated (a name in aliases/ shadows the same
// name at the top level).
func ListAliases(configDir string) ([]string, error) {
	seen := make(map[string]struct{})
	for _, dir := range []string{filepath.Join(configDir, AliasesSubdir), configDir} {
		entries, err := os.ReadDir(dir)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, err
		}
		for _, entry := range entries {
			name := entry.Name()
			if !strings.EqualFold(filepath.Ext(name), aliasfile.DocumentExt) {
				continue
			}
			info, err := os.Stat(filepath.Join(dir, name))
			if err != nil || !info.Mode().IsRegular() {
				continue
			}
			alias := strings.TrimSuffix(name, filepath.Ext(name))
			if alias == "" {
				continue
			}
			seen[alias] = struct{}{}
		}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}
