// SPDX-License-Identifier: MPL-2.0

package aliasfile

import (
	"fmt"
	"strings"
	"unicode"
)

// Alias is a validated logical alias name. Construct via ParseAlias; the
// zero value is not valid.
type Alias string

// ParseAlias validates name as an alias identifier. Alias names may be any
// unicode token that could not be confused with a flag, a path, or an argv
// separator: non-blank, NUL-free, no whitespace, no path separators, no
// leading dash, and not `.`, `..`, or `--`.
func ParseAlias(name string) (Alias, error) {
	if name == "" {
		return "", fmt.Errorf("alias name cannot be empty")
	}
	if strings.ContainsRune(name, 0) {
		return "", fmt.Errorf("alias name cannot contain NUL bytes")
	}
	if name == "--" {
		return "", fmt.Errorf("alias name cannot be `--`; expected `chopper <alias> -- [args...]`")
	}
	if strings.HasPrefix(name, "-") {
		return "", fmt.Errorf("alias name cannot start with `-`; choose a non-flag alias name")
	}
	if strings.IndexFunc(name, unicode.IsSpace) >= 0 {
		return "", fmt.Errorf("alias name cannot contain whitespace")
	}
	if name == "." || name == ".." {
		return "", fmt.Errorf("alias name cannot be `.` or `..`")
	}
	if strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("alias name cannot contain path separators")
	}
	return Alias(name), nil
}

// String returns the alias name.
func (a Alias) String() string { return string(a) }
