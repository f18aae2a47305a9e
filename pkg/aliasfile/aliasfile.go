// SPDX-License-Identifier: MPL-2.0

package aliasfile

import "os/exec"

// DocumentExt is the required extension for alias documents.
const DocumentExt = ".toml"

// Manifest is the normalized, validated in-memory form of one alias's
// declarative source. A Manifest that fails any validator check never
// exists as a constructed value: Parse builds it all-or-nothing, and the
// cache loader re-runs Validate before trusting a deserialized entry.
//
// JSON tags define the cache entry serialization; the TOML document shape
// is a separate type internal to the parser.
type Manifest struct {
	// Exec is the target executable: an absolute path, a source-dir-resolved
	// relative path, or a bare name left for PATH lookup by the launcher.
	Exec string `json:"exec"`
	// Args is the alias-declared argument sequence, order-preserving.
	Args []string `json:"args,omitempty"`
	// Env maps trimmed, NUL-free, `=`-free keys to NUL-free values.
	Env map[string]string `json:"env,omitempty"`
	// EnvRemove lists keys removed from the inherited environment,
	// deduplicated in first-seen order.
	EnvRemove []string `json:"env_remove,omitempty"`
	// Journal configures stderr routing; consumed only by the launcher.
	Journal *JournalConfig `json:"journal,omitempty"`
	// Reconcile names the runtime patch script and entry-point function.
	Reconcile *ReconcileConfig `json:"reconcile,omitempty"`
	// Bashcomp configures the external shell-completion subsystem.
	Bashcomp *BashcompConfig `json:"bashcomp,omitempty"`
}

// JournalConfig routes the launched command's stderr into a journal
// namespace. This core validates it; only the external process launcher
// consumes it.
type JournalConfig struct {
	// Namespace is the journal namespace, trimmed and non-empty.
	Namespace string `json:"namespace"`
	// Stderr enables stderr forwarding into the namespace.
	Stderr bool `json:"stderr,omitempty"`
	// Identifier is an optional syslog identifier; empty means unset.
	Identifier string `json:"identifier,omitempty"`
	// Ensure asks the launcher to provision the namespace before use.
	Ensure bool `json:"ensure,omitempty"`
	// UserScoped derives a per-user namespace from Namespace.
	UserScoped bool `json:"user_scoped,omitempty"`
}

// ReconcileConfig names the runtime patch script artifact and its
// entry-point function. The script path is absolute after parsing.
type ReconcileConfig struct {
	Script   string `json:"script"`
	Function string `json:"function"`
}

// DefaultReconcileFunction is used when a reconcile sub-record does not
// name an entry-point function.
const DefaultReconcileFunction = "reconcile"

// BashcompConfig controls the external shell-completion subsystem.
// Script paths are absolute after parsing; empty strings mean unset.
type BashcompConfig struct {
	// Disabled turns completion off for this alias entirely.
	Disabled bool `json:"disabled,omitempty"`
	// Passthrough delegates completion to the target executable.
	Passthrough bool `json:"passthrough,omitempty"`
	// Script is a completion script sourced by the shell integration.
	Script string `json:"script,omitempty"`
	// HookScript is a script artifact producing completion candidates.
	HookScript string `json:"hook_script,omitempty"`
	// HookFunction is the entry point inside HookScript; requires HookScript.
	HookFunction string `json:"hook_function,omitempty"`
}

// Simple returns a minimal manifest for a bare executable with no declared
// arguments or environment deltas. Used when an alias has no document and
// falls through to plain PATH resolution.
func Simple(exec string) *Manifest {
	return &Manifest{Exec: exec}
}

// Fallback returns the simple manifest for an alias with no document: the
// name resolved through PATH, kept bare when lookup fails so the launcher
// reports the failure instead of this package.
func Fallback(name string) *Manifest {
	if found, err := exec.LookPath(name); err == nil {
		return Simple(found)
	}
	return Simple(name)
}

// Validate re-runs every parse-time check against the manifest as stored.
// Stored values must already be in normalized form, so beyond the shared
// validator rules this also rejects untrimmed keys and values that a fresh
// parse would have normalized away. The cache loader calls this before
// serving an entry; the cache writer calls it before persisting one.
func (m *Manifest) Validate() error {
	if err := validateStoredPath("exec", m.Exec); err != nil {
		return err
	}
	if err := ValidateValues("args", m.Args); err != nil {
		return err
	}
	for key, value := range m.Env {
		if err := validateStoredKey("env", key); err != nil {
			return err
		}
		if err := ValidateValue("env", value); err != nil {
			return err
		}
	}
	seen := make(map[string]struct{}, len(m.EnvRemove))
	for _, key := range m.EnvRemove {
		if err := validateStoredKey("env_remove", key); err != nil {
			return err
		}
		if _, dup := seen[key]; dup {
			return &ValidationError{Field: "env_remove", Violation: ViolationDuplicateKey, Detail: key}
		}
		seen[key] = struct{}{}
	}
	if m.Journal != nil {
		if err := validateStoredString("journal.namespace", m.Journal.Namespace); err != nil {
			return err
		}
		if m.Journal.Identifier != "" {
			if err := validateStoredString("journal.identifier", m.Journal.Identifier); err != nil {
				return err
			}
		}
	}
	if m.Reconcile != nil {
		if err := validateStoredPath("reconcile.script", m.Reconcile.Script); err != nil {
			return err
		}
		if err := validateStoredString("reconcile.function", m.Reconcile.Function); err != nil {
			return err
		}
	}
	if m.Bashcomp != nil {
		if m.Bashcomp.Script != "" {
			if err := validateStoredPath("bashcomp.script", m.Bashcomp.Script); err != nil {
				return err
			}
		}
		if m.Bashcomp.HookScript != "" {
			if err := validateStoredPath("bashcomp.hook_script", m.Bashcomp.HookScript); err != nil {
				return err
			}
		}
		if m.Bashcomp.HookFunction != "" {
			if err := validateStoredString("bashcomp.hook_function", m.Bashcomp.HookFunction); err != nil {
				return err
			}
			if m.Bashcomp.HookScript == "" {
				return &ValidationError{Field: "bashcomp.hook_function", Violation: ViolationBlank,
					Detail: "requires bashcomp.hook_script"}
			}
		}
	}
	return nil
}

func validateStoredString(field, value string) error {
	trimmed, err := RequireNonBlankNulFree(field, value)
	if err != nil {
		return err
	}
	if trimmed != value {
		return &ValidationError{Field: field, Violation: ViolationNotTrimmed}
	}
	return nil
}

func validateStoredKey(field, key string) error {
	normalized, err := ValidateMapKey(field, key)
	if err != nil {
		return err
	}
	if normalized != key {
		return &ValidationError{Field: field, Violation: ViolationNotTrimmed, Detail: normalized}
	}
	return nil
}

func validateStoredPath(field, value string) error {
	trimmed, err := ValidatePathLike(field, value)
	if err != nil {
		return err
	}
	if trimmed != value {
		return &ValidationError{Field: field, Violation: ViolationNotTrimmed}
	}
	return nil
}
