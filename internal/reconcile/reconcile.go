// SPDX-License-Identifier: MPL-2.0

// Package reconcile defines the runtime patch contract between the
// resolution pipeline and the external script engine.
//
// The engine itself is an opaque collaborator: given a Context it returns
// a loosely-typed object. This package closes that object into a tagged
// Patch with exactly four optional fields, rejecting unknown keys and
// validating every value with the same rules alias documents get. A patch
// is transient: it is never persisted and a structurally invalid one
// aborts the invocation before any merging happens.
package reconcile

import (
	"fmt"

	"github.com/gmt/chopper/pkg/aliasfile"
)

// Context is the input handed to the script engine's entry-point function.
type Context struct {
	// RuntimeArgs are the invocation-time arguments.
	RuntimeArgs []string `json:"runtime_args"`
	// RuntimeEnv is a snapshot of the inherited process environment.
	RuntimeEnv map[string]string `json:"runtime_env"`
	// AliasArgs are the alias-declared arguments.
	AliasArgs []string `json:"alias_args"`
	// AliasEnv is the alias-declared environment mapping.
	AliasEnv map[string]string `json:"alias_env"`
}

// Provider invokes the external script contract and returns its raw patch
// object, or nil if the script produced no patch. The pipeline validates
// the result with ParsePatch; providers do not validate.
type Provider func(cfg aliasfile.ReconcileConfig, ctx Context) (map[string]any, error)

// Patch is the validated runtime patch. All fields are optional; for
// ReplaceArgs, nil means "no replacement" while a non-nil empty slice
// replaces the accumulated arguments with nothing.
type Patch struct {
	ReplaceArgs []string
	AppendArgs  []string
	SetEnv      map[string]string
	RemoveEnv   []string
}

// Error reports a malformed or disallowed runtime patch. It always aborts
// the invocation before any argument or environment merge occurs.
type Error struct {
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("invalid runtime patch: %v", e.Err)
}

// Unwrap returns the underlying validation error.
func (e *Error) Unwrap() error { return e.Err }

// patchKeys is the closed set of recognized patch fields.
var patchKeys = map[string]struct{}{
	"append_args":  {},
	"replace_args": {},
	"set_env":      {},
	"remove_env":   {},
}

// ParsePatch closes a raw patch object into a Patch. Unknown keys are
// rejected (typo safety for user-authored scripts), values must be strings
// or string collections, and every value passes the shared validators:
// NUL-free args, trimmed `=`-free env keys with no post-trim duplicates,
// NUL-free env values, deduplicated removal keys.
func ParsePatch(raw map[string]any) (*Patch, error) {
	for key := range raw {
		if _, ok := patchKeys[key]; !ok {
			return nil, &Error{Err: &aliasfile.ValidationError{
				Field:     key,
				Violation: aliasfile.ViolationUnknownPatchKey,
			}}
		}
	}

	patch := &Patch{}

	if values, present, err := stringSlice(raw, "replace_args"); err != nil {
		return nil, &Error{Err: err}
	} else if present {
		if err := aliasfile.ValidateValues("replace_args", values); err != nil {
			return nil, &Error{Err: err}
		}
		patch.ReplaceArgs = values
	}

	if values, _, err := stringSlice(raw, "append_args"); err != nil {
		return nil, &Error{Err: err}
	} else if err := aliasfile.ValidateValues("append_args", values); err != nil {
		return nil, &Error{Err: err}
	} else {
		patch.AppendArgs = values
	}

	if values, _, err := stringMap(raw, "set_env"); err != nil {
		return nil, &Error{Err: err}
	} else if setEnv, err := aliasfile.NormalizeEnvMap("set_env", values); err != nil {
		return nil, &Error{Err: err}
	} else {
		patch.SetEnv = setEnv
	}

	if values, _, err := stringSlice(raw, "remove_env"); err != nil {
		return nil, &Error{Err: err}
	} else if removeEnv, err := aliasfile.NormalizeRemoveKeys("remove_env", values); err != nil {
		return nil, &Error{Err: err}
	} else {
		patch.RemoveEnv = removeEnv
	}

	return patch, nil
}

func stringSlice(raw map[string]any, key string) ([]string, bool, error) {
	value, ok := raw[key]
	if !ok {
		return nil, false, nil
	}
	items, ok := value.([]any)
	if !ok {
		// Providers decoding typed output may hand us []string directly.
		if typed, ok := value.([]string); ok {
			return append([]string(nil), typed...), true, nil
		}
		return nil, false, fmt.Errorf("`%s` must be an array of strings", key)
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, false, fmt.Errorf("all values in `%s` must be strings", key)
		}
		out = append(out, s)
	}
	return out, true, nil
}

func stringMap(raw map[string]any, key string) (map[string]string, bool, error) {
	value, ok := raw[key]
	if !ok {
		return nil, false, nil
	}
	entries, ok := value.(map[string]any)
	if !ok {
		if typed, ok := value.(map[string]string); ok {
			out := make(map[string]string, len(typed))
			for k, v := range typed {
				out[k] = v
			}
			return out, true, nil
		}
		return nil, false, fmt.Errorf("`%s` must be an object of string values", key)
	}
	out := make(map[string]string, len(entries))
	for k, v := range entries {
		s, ok := v.(string)
		if !ok {
			return nil, false, fmt.Errorf("all values in `%s` must be strings", key)
		}
		out[k] = s
	}
	return out, true, nil
}
