// SPDX-License-Identifier: MPL-2.0

package aliasfile

import (
	"strings"
)

// The functions in this file are the single source of truth for every
// structural check in the pipeline. The document parser, the cache loader,
// and the runtime patch decoder all call the same functions, so a manifest
// that is valid from a fresh parse is, by construction, valid when read
// back from cache. All functions are pure: no I/O, no global state.

// RequireNonBlankNulFree trims value and fails if the result is empty or if
// the original value contains an embedded NUL byte. The NUL check runs on
// the untrimmed input so a NUL hidden in surrounding whitespace is still
// rejected.
func RequireNonBlankNulFree(field, value string) (string, error) {
	if strings.ContainsRune(value, 0) {
		return "", &ValidationError{Field: field, Violation: ViolationNulByte}
	}
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", &ValidationError{Field: field, Violation: ViolationBlank}
	}
	return trimmed, nil
}

// ValidateMapKey trims key and fails on blank, embedded NUL, or `=`.
// Environment maps and removal lists share this rule: a key containing `=`
// would be ambiguous in envp form, and a NUL would truncate it.
func ValidateMapKey(field, key string) (string, error) {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return "", &ValidationError{Field: field, Violation: ViolationBlank}
	}
	if strings.Contains(trimmed, "=") {
		return "", &ValidationError{Field: field, Violation: ViolationContainsEquals, Detail: trimmed}
	}
	if strings.ContainsRune(trimmed, 0) {
		return "", &ValidationError{Field: field, Violation: ViolationNulByte}
	}
	return trimmed, nil
}

// ValidateValue fails if value contains an embedded NUL byte. Everything
// else is allowed: empty strings, unicode, leading/trailing whitespace,
// shell metacharacters.
func ValidateValue(field, value string) error {
	if strings.ContainsRune(value, 0) {
		return &ValidationError{Field: field, Violation: ViolationNulByte}
	}
	return nil
}

// ValidateValues applies ValidateValue to every entry of an ordered
// argument sequence. Order, duplicates, and shapes are otherwise untouched.
func ValidateValues(field string, values []string) error {
	for _, v := range values {
		if err := ValidateValue(field, v); err != nil {
			return err
		}
	}
	return nil
}

// DedupeFirstSeen trims entries, drops blanks, and keeps the first
// occurrence of each value in order. It performs no other validation.
func DedupeFirstSeen(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			continue
		}
		if _, dup := seen[trimmed]; dup {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}
	return out
}

// NormalizeRemoveKeys validates and normalizes an env-removal list: entries
// are trimmed, blanks dropped, duplicates collapsed to first occurrence,
// and each surviving key must pass ValidateMapKey. Used identically for
// `env_remove` in alias documents and `remove_env` in runtime patches.
func NormalizeRemoveKeys(field string, values []string) ([]string, error) {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			continue
		}
		key, err := ValidateMapKey(field, trimmed)
		if err != nil {
			return nil, err
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, key)
	}
	return out, nil
}

// NormalizeEnvMap validates and normalizes an environment mapping: keys are
// trimmed and must pass ValidateMapKey, values must be NUL-free, and two
// keys that collide after trimming are rejected rather than silently
// merged. Used identically for `env` in alias documents and `set_env` in
// runtime patches.
func NormalizeEnvMap(field string, env map[string]string) (map[string]string, error) {
	normalized := make(map[string]string, len(env))
	for key, value := range env {
		nk, err := ValidateMapKey(field, key)
		if err != nil {
			return nil, err
		}
		if err := ValidateValue(field, value); err != nil {
			return nil, err
		}
		if _, dup := normalized[nk]; dup {
			return nil, &ValidationError{Field: field, Violation: ViolationDuplicateKey, Detail: nk}
		}
		normalized[nk] = value
	}
	return normalized, nil
}
