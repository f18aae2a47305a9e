// SPDX-License-Identifier: MPL-2.0

package aliasfile

import (
	"path/filepath"
	"strings"
)

// Path-shape validation for executable references and script artifacts.
// The rules are platform-agnostic on purpose: both `/` and `\` count as
// separators regardless of GOOS, so a document authored on one platform is
// rejected identically on another.

// ValidatePathLike trims value and fails if the result is blank, contains a
// NUL byte, is exactly `.` or `..`, ends with a path separator, ends with a
// `.` or `..` path segment, or is a relative form with no real path segment
// (e.g. `./` or `../..`).
func ValidatePathLike(field, value string) (string, error) {
	trimmed, err := RequireNonBlankNulFree(field, value)
	if err != nil {
		return "", err
	}
	if trimmed == "." || trimmed == ".." {
		return "", &ValidationError{Field: field, Violation: ViolationPathShape, Detail: trimmed}
	}
	if isPathSeparator(rune(trimmed[len(trimmed)-1])) {
		return "", &ValidationError{Field: field, Violation: ViolationPathShape, Detail: trimmed}
	}
	if endsWithDotComponent(trimmed) {
		return "", &ValidationError{Field: field, Violation: ViolationPathShape, Detail: trimmed}
	}
	if !filepath.IsAbs(trimmed) && looksLikeRelativePath(trimmed) && !hasMeaningfulSegment(trimmed) {
		return "", &ValidationError{Field: field, Violation: ViolationPathShape, Detail: trimmed}
	}
	return trimmed, nil
}

func isPathSeparator(r rune) bool {
	return r == '/' || r == '\\' || r == filepath.Separator
}

// looksLikeRelativePath reports whether value uses path notation rather
// than being a bare command name left for PATH lookup.
func looksLikeRelativePath(value string) bool {
	return strings.ContainsAny(value, `/\`) ||
		strings.ContainsRune(value, filepath.Separator) ||
		value == "." || value == ".."
}

// hasMeaningfulSegment reports whether value contains at least one path
// segment that is not empty, `.`, or `..`.
func hasMeaningfulSegment(value string) bool {
	for _, segment := range strings.FieldsFunc(value, isPathSeparator) {
		if segment != "." && segment != ".." {
			return true
		}
	}
	return false
}

// endsWithDotComponent reports whether the last path segment of value is
// `.` or `..`, ignoring trailing separators.
func endsWithDotComponent(value string) bool {
	trimmed := strings.TrimRightFunc(value, isPathSeparator)
	if trimmed == "" {
		return false
	}
	last := trimmed
	if idx := strings.LastIndexFunc(trimmed, isPathSeparator); idx >= 0 {
		last = trimmed[idx+1:]
	}
	return last == "." || last == ".."
}
