// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for chopper.
//
// This package implements the Cobra command hierarchy: alias resolution
// and introspection (resolve, which, validate, list), alias document
// administration (alias get|add|set|remove), and cache and config
// maintenance. It is a front end over the resolution pipeline in
// internal/resolve; it never launches the resolved command itself, that
// is the process launcher's job.
package cmd
