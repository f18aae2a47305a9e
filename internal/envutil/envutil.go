// SPDX-License-Identifier: MPL-2.0

// Package envutil interprets chopper's environment toggles. Flags and path
// overrides are read leniently: surrounding whitespace is ignored and flag
// values are case-insensitive.
package envutil

import (
	"os"
	"strings"
)

// FlagEnabled reports whether the environment variable name holds a truthy
// value. Recognized truthy values after trimming and lowercasing are "1",
// "true", "yes", and "on"; everything else, including an unset variable,
// is false.
func FlagEnabled(name string) bool {
	value, ok := os.LookupEnv(name)
	if !ok {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}

// PathOverride returns the trimmed value of the environment variable name,
// or "" if it is unset or blank.
func PathOverride(name string) string {
	value, ok := os.LookupEnv(name)
	if !ok {
		return ""
	}
	return strings.TrimSpace(value)
}
