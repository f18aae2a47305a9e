// SPDX-License-Identifier: MPL-2.0

// Package cache stores fingerprinted alias manifests on disk so unchanged
// documents are not re-parsed on every invocation.
//
// Entries are JSON files under <cache-dir>/manifests, published only via
// atomic rename of a fully written temp file. Readers therefore see either
// the previous complete entry or the new one, never a partial write, and
// no cross-process lock is needed. Every entry is re-validated with the
// same checks the parser runs, so a corrupt or hand-edited entry degrades
// to a cache miss instead of an unsafe hit.
package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/gmt/chopper/pkg/aliasfile"
)

// entryVersion is the on-disk entry format version. Entries with any
// other version are pruned and reparsed.
const entryVersion = 1

// manifestsSubdir holds the entry files inside the cache directory.
const manifestsSubdir = "manifests"

// Outcome classifies a cache load.
type Outcome int

const (
	// Miss means no entry file exists for the alias.
	Miss Outcome = iota
	// Hit means a stored entry matched the fingerprint and re-passed
	// every validator check.
	Hit
	// Invalid means an entry existed but was corrupt, stale, or failed
	// re-validation; it has been pruned.
	Invalid
)

// Error wraps a cache I/O failure. Callers treat it as a degradation of
// persistence, never of correctness: the current invocation proceeds from
// the freshly parsed manifest.
type Error struct {
	Op   string
	Path string
	Err  error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("cache %s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying I/O error.
func (e *Error) Unwrap() error { return e.Err }

type entry struct {
	Version     int                 `json:"version"`
	Fingerprint Fingerprint         `json:"fingerprint"`
	Manifest    *aliasfile.Manifest `json:"manifest"`
}

// Manager maps alias names to stored, fingerprinted manifests inside one
// cache directory. The zero value is not usable; construct with NewManager.
type Manager struct {
	dir string
}

// NewManager returns a Manager rooted at dir.
func NewManager(dir string) *Manager {
	return &Manager{dir: dir}
}

// Dir returns the cache root directory.
func (m *Manager) Dir() string { return m.dir }

func (m *Manager) entryPath(alias aliasfile.Alias) string {
	return filepath.Join(m.dir, manifestsSubdir, entryFilename(alias))
}

func (m *Manager) legacyPath(alias aliasfile.Alias) string {
	return filepath.Join(m.dir, manifestsSubdir, legacyFilename(alias))
}

// Load returns the cached manifest for alias if a stored entry exists,
// deserializes, matches fp exactly, and re-passes every parse-time
// validator check. Anything else is a Miss or Invalid; invalid entries are
// pruned so the next store starts clean.
//
// A valid entry under a legacy direct filename is migrated to the hashed
// filename as a side effect of the hit, and the legacy file removed.
func (m *Manager) Load(alias aliasfile.Alias, fp Fingerprint) (*aliasfile.Manifest, Outcome) {
	primary := m.entryPath(alias)
	if manifest, outcome := loadFromPath(primary, fp); outcome != Miss {
		return manifest, outcome
	}

	legacy := m.legacyPath(alias)
	if legacy != primary {
		manifest, outcome := loadFromPath(legacy, fp)
		if outcome == Hit {
			if err := m.Store(alias, fp, manifest); err == nil {
				removeBestEffort(legacy)
			}
			return manifest, Hit
		}
		if outcome == Invalid {
			return nil, Invalid
		}
	}

	return nil, Miss
}

func loadFromPath(path string, fp Fingerprint) (*aliasfile.Manifest, Outcome) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, Miss
	}

	var e entry
	if err := json.Unmarshal(data, &e); err != nil {
		log.Debug("pruning corrupt cache entry", "path", path, "err", err)
		removeBestEffort(path)
		return nil, Invalid
	}
	if e.Version != entryVersion || e.Manifest == nil {
		removeBestEffort(path)
		return nil, Invalid
	}
	if e.Fingerprint != fp {
		removeBestEffort(path)
		return nil, Invalid
	}
	if err := e.Manifest.Validate(); err != nil {
		log.Debug("pruning invalid cache entry", "path", path, "err", err)
		removeBestEffort(path)
		return nil, Invalid
	}
	return e.Manifest, Hit
}

// Store validates manifest, serializes it with fp under the alias's entry
// filename, and publishes it atomically. A manifest that fails validation
// is never written.
func (m *Manager) Store(alias aliasfile.Alias, fp Fingerprint, manifest *aliasfile.Manifest) error {
	if err := manifest.Validate(); err != nil {
		return fmt.Errorf("refusing to store invalid cache entry for %s: %w", alias, err)
	}

	path := m.entryPath(alias)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return &Error{Op: "mkdir", Path: filepath.Dir(path), Err: err}
	}

	data, err := json.Marshal(entry{Version: entryVersion, Fingerprint: fp, Manifest: manifest})
	if err != nil {
		return &Error{Op: "encode", Path: path, Err: err}
	}

	return writeAtomically(path, data)
}

// Heal re-parses the source document and, on success, stores the fresh
// manifest in the same operation so the next invocation sees a clean
// entry. Parse failures propagate; a store failure is logged and swallowed
// because the freshly parsed manifest is still correct for this
// invocation.
func (m *Manager) Heal(alias aliasfile.Alias, loc aliasfile.SourceLocator, fp Fingerprint) (*aliasfile.Manifest, error) {
	manifest, err := aliasfile.Parse(loc.Path)
	if err != nil {
		return nil, err
	}
	if err := m.Store(alias, fp, manifest); err != nil {
		log.Warn("cache persistence degraded", "alias", alias, "err", err)
	}
	return manifest, nil
}

// Invalidate removes any stored entries for alias, both the hashed and the
// legacy direct filename. Used by debug front ends to force a re-parse.
func (m *Manager) Invalidate(alias aliasfile.Alias) error {
	var errs []error
	for _, path := range []string{m.entryPath(alias), m.legacyPath(alias)} {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			errs = append(errs, &Error{Op: "remove", Path: path, Err: err})
		}
	}
	return errors.Join(errs...)
}

// Clear removes the whole manifests directory.
func (m *Manager) Clear() error {
	path := filepath.Join(m.dir, manifestsSubdir)
	if err := os.RemoveAll(path); err != nil {
		return &Error{Op: "clear", Path: path, Err: err}
	}
	return nil
}

func removeBestEffort(path string) {
	_ = os.Remove(path)
}

// maxTempAttempts bounds the search for an unused temp filename when many
// writers race on the same entry.
const maxTempAttempts = 32

// writeAtomically publishes data at path via a private temp file in the
// same directory and an atomic rename. An existing published file is never
// mutated in place.
func writeAtomically(path string, data []byte) error {
	for attempt := 0; attempt < maxTempAttempts; attempt++ {
		tmp := fmt.Sprintf("%s.tmp-%d-%d", path, os.Getpid(), attempt)
		f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err != nil {
			if os.IsExist(err) {
				continue
			}
			return &Error{Op: "create", Path: tmp, Err: err}
		}

		if _, err := f.Write(data); err != nil {
			_ = f.Close()
			removeBestEffort(tmp)
			return &Error{Op: "write", Path: tmp, Err: err}
		}
		if err := f.Close(); err != nil {
			removeBestEffort(tmp)
			return &Error{Op: "close", Path: tmp, Err: err}
		}
		if err := os.Rename(tmp, path); err != nil {
			removeBestEffort(tmp)
			return &Error{Op: "rename", Path: path, Err: err}
		}
		return nil
	}

	return &Error{Op: "create", Path: path, Err: fmt.Errorf("too many temp filename collisions")}
}
