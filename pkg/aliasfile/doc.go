// SPDX-License-Identifier: MPL-2.0

// Package aliasfile provides types, parsing, and validation for chopper
// alias definition files.
//
// An alias file is a TOML document that declares a target executable, an
// argument list, environment deltas, and optional journal/reconcile/bashcomp
// sub-records. Parsing is all-or-nothing: a Manifest value only exists if
// every field passed validation, and the same validator functions are reused
// by the cache loader and the runtime patch decoder so both accept exactly
// the same values a fresh parse would.
//
// External consumers should use the exported Parse() and ParseBytes()
// functions; the raw TOML document shape is not part of the public API.
package aliasfile
