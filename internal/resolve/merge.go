// SPDX-License-Identifier: MPL-2.0

package resolve

import (
	"sort"
	"strings"

	"github.com/gmt/chopper/internal/reconcile"
)

// The merge engine is total: every value reaching it has already been
// NUL-validated upstream, so these functions cannot fail and perform no
// validation of their own.

// MergeArgs combines alias-declared and invocation-time arguments with an
// optional patch. Precedence, left to right: alias args, then runtime
// args appended; a patch ReplaceArgs (non-nil) discards the accumulated
// sequence; patch AppendArgs always append last.
func MergeArgs(aliasArgs, runtimeArgs []string, patch *reconcile.Patch) []string {
	merged := make([]string, 0, len(aliasArgs)+len(runtimeArgs))
	merged = append(merged, aliasArgs...)
	merged = append(merged, runtimeArgs...)

	if patch != nil {
		if patch.ReplaceArgs != nil {
			merged = append([]string(nil), patch.ReplaceArgs...)
		}
		merged = append(merged, patch.AppendArgs...)
	}

	return merged
}

// MergeEnv computes the final environment mapping. Later steps win on key
// collision: inherited environment, alias env overlay, env_remove
// deletions, patch SetEnv overlay (which can reintroduce a removed key),
// and patch RemoveEnv deletions with final precedence. The inherited
// snapshot is never mutated.
func MergeEnv(inherited, aliasEnv map[string]string, envRemove []string, patch *reconcile.Patch) map[string]string {
	merged := make(map[string]string, len(inherited)+len(aliasEnv))
	for k, v := range inherited {
		merged[k] = v
	}
	for k, v := range aliasEnv {
		merged[k] = v
	}
	for _, k := range envRemove {
		delete(merged, k)
	}

	if patch != nil {
		for k, v := range patch.SetEnv {
			merged[k] = v
		}
		for _, k := range patch.RemoveEnv {
			delete(merged, k)
		}
	}

	return merged
}

// EnvironToMap snapshots a "KEY=VALUE" environment list into a mapping.
// Entries without `=` are skipped; on duplicate keys the last entry wins,
// matching what child processes would observe.
func EnvironToMap(environ []string) map[string]string {
	out := make(map[string]string, len(environ))
	for _, kv := range environ {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || key == "" {
			continue
		}
		out[key] = value
	}
	return out
}

// SortedEnviron renders an environment mapping as a sorted "KEY=VALUE"
// list so identical mappings always serialize identically.
func SortedEnviron(env map[string]string) []string {
	out := make([]string, 0, len(env))
	for k, v := range env {
		out = append(out, k+"="+v)
	}
	sort.Strings(out)
	return out
}
