// SPDX-License-Identifier: MPL-2.0

package aliasfile

import (
	"fmt"
	"path/filepath"
)

// SourceLocator identifies one alias document on disk: the absolute path to
// the file plus its symlink-resolved containing directory, which is the
// base for resolving relative executable and script references inside the
// document. Locators are created once per resolution attempt and never
// persisted.
type SourceLocator struct {
	// Path is the absolute path to the alias document.
	Path string
	// Dir is the real (symlink-resolved) directory containing the document.
	Dir string
}

// NewSourceLocator builds a SourceLocator for the document at path. The
// containing directory is resolved through symlinks so that a symlinked
// alias file resolves its relative references against the directory the
// real file lives in, not the directory of the link. If symlink resolution
// fails (e.g. the file is about to be created), the lexical parent is used.
func NewSourceLocator(path string) (SourceLocator, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return SourceLocator{}, fmt.Errorf("failed to resolve alias document path %s: %w", path, err)
	}

	dir := filepath.Dir(abs)
	if real, err := filepath.EvalSymlinks(abs); err == nil {
		dir = filepath.Dir(real)
	}

	return SourceLocator{Path: abs, Dir: dir}, nil
}
