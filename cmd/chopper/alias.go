// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gmt/chopper/internal/config"
	"github.com/gmt/chopper/pkg/aliasfile"
)

// aliasMutation collects the document edits requested on the command
// line. Flag presence matters (setting --journal-stderr false is not the
// same as omitting it), so callers record it via cobra's Changed.
type aliasMutation struct {
	exec              string
	execSet           bool
	args              []string
	envSet            []string
	envRemove         []string
	journalNamespace  string
	journalNSSet      bool
	journalStderr     string
	journalStderrSet  bool
	journalIdentifier string
	journalIDSet      bool
	journalClear      bool
}

func (m *aliasMutation) empty() bool {
	return !m.execSet && len(m.args) == 0 && len(m.envSet) == 0 &&
		len(m.envRemove) == 0 && !m.journalNSSet && !m.journalStderrSet &&
		!m.journalIDSet && !m.journalClear
}

// newAliasCommand creates the `chopper alias` command group: create,
// inspect, update, and remove alias documents.
func newAliasCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "alias",
		Short: "Create, inspect, update, and remove alias documents",
	}

	root.AddCommand(newAliasGetCommand())
	root.AddCommand(newAliasAddCommand())
	root.AddCommand(newAliasSetCommand())
	root.AddCommand(newAliasRemoveCommand())
	return root
}

func newAliasGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get <alias>",
		Short: "Print an alias document as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			app, err := NewApp(Dependencies{Stdout: c.OutOrStdout(), Stderr: c.ErrOrStderr()})
			if err != nil {
				return reportError(c.ErrOrStderr(), err)
			}
			app.reportConfigWarnings()

			alias, loc, err := app.locateAlias(args[0])
			if err != nil {
				return reportError(c.ErrOrStderr(), err)
			}
			manifest, err := aliasfile.Parse(loc.Path)
			if err != nil {
				return reportError(c.ErrOrStderr(), err)
			}

			out, err := json.MarshalIndent(struct {
				Alias      string `json:"alias"`
				ConfigPath string `json:"config_path"`
				*aliasfile.Manifest
			}{alias.String(), loc.Path, manifest}, "", "  ")
			if err != nil {
				return reportError(c.ErrOrStderr(), err)
			}
			fmt.Fprintln(app.stdout, string(out))
			return nil
		},
	}
}

func newAliasAddCommand() *cobra.Command {
	var mutation aliasMutation

	c := &cobra.Command{
		Use:   "add <alias> --exec <command>",
		Short: "Create a new alias document",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			recordFlagPresence(c, &mutation)

			app, err := NewApp(Dependencies{Stdout: c.OutOrStdout(), Stderr: c.ErrOrStderr()})
			if err != nil {
				return reportError(c.ErrOrStderr(), err)
			}
			app.reportConfigWarnings()

			alias, _, found, err := app.findAlias(args[0])
			if err != nil {
				return reportError(c.ErrOrStderr(), err)
			}
			if found {
				return reportError(c.ErrOrStderr(),
					fmt.Errorf("alias `%s` already exists; use `set` to modify", alias))
			}
			if !mutation.execSet {
				return reportError(c.ErrOrStderr(), fmt.Errorf("`add` requires --exec <command>"))
			}

			doc := &aliasfile.Document{Exec: mutation.exec, Args: mutation.args}
			if len(mutation.envSet) > 0 {
				doc.Env = make(map[string]string, len(mutation.envSet))
				for _, assignment := range mutation.envSet {
					key, value, err := parseEnvAssignment(assignment)
					if err != nil {
						return reportError(c.ErrOrStderr(), err)
					}
					doc.Env[key] = value
				}
			}
			doc.EnvRemove = mutation.envRemove

			journal, err := mutation.buildJournal()
			if err != nil {
				return reportError(c.ErrOrStderr(), err)
			}
			doc.Journal = journal

			path := filepath.Join(app.ConfigDir, config.AliasesSubdir, alias.String()+aliasfile.DocumentExt)
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				return reportError(c.ErrOrStderr(), fmt.Errorf("failed to create %s: %w", filepath.Dir(path), err))
			}
			if err := aliasfile.SaveDocument(path, doc); err != nil {
				return reportError(c.ErrOrStderr(), err)
			}
			fmt.Fprintf(app.stdout, "added alias `%s` at %s\n", alias, path)
			return nil
		},
	}

	registerMutationFlags(c, &mutation)
	return c
}

func newAliasSetCommand() *cobra.Command {
	var mutation aliasMutation

	c := &cobra.Command{
		Use:   "set <alias> [options]",
		Short: "Update fields of an existing alias document",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			recordFlagPresence(c, &mutation)

			app, err := NewApp(Dependencies{Stdout: c.OutOrStdout(), Stderr: c.ErrOrStderr()})
			if err != nil {
				return reportError(c.ErrOrStderr(), err)
			}
			app.reportConfigWarnings()

			alias, loc, err := app.locateAlias(args[0])
			if err != nil {
				return reportError(c.ErrOrStderr(), err)
			}
			if mutation.empty() {
				return reportError(c.ErrOrStderr(),
					fmt.Errorf("no changes requested for alias `%s`", alias))
			}

			doc, err := aliasfile.LoadDocument(loc.Path)
			if err != nil {
				return reportError(c.ErrOrStderr(), err)
			}
			if err := mutation.apply(doc); err != nil {
				return reportError(c.ErrOrStderr(), err)
			}

			if err := aliasfile.SaveDocument(loc.Path, doc); err != nil {
				return reportError(c.ErrOrStderr(), err)
			}
			// The document changed on disk; the next resolution re-parses via
			// the fingerprint check, but dropping the entry keeps the cache
			// from holding a superseded manifest.
			_ = app.Resolver.Invalidate(alias)

			fmt.Fprintf(app.stdout, "updated alias `%s` at %s\n", alias, loc.Path)
			return nil
		},
	}

	registerMutationFlags(c, &mutation)
	return c
}

func newAliasRemoveCommand() *cobra.Command {
	var mode string
	var symlinkPath string

	c := &cobra.Command{
		Use:   "remove <alias> [--mode clean|dirty] [--symlink-path <path>]",
		Short: "Remove an alias document and its launcher symlink",
		Long: `Remove an alias. Clean mode removes the alias document, prunes its
cache entries, and removes the launcher symlink when one is found. Dirty
mode removes only the symlink and requires one to be discoverable, either
on PATH or via --symlink-path.`,
		Args: cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			if mode != "clean" && mode != "dirty" {
				return reportError(c.ErrOrStderr(),
					fmt.Errorf("unknown remove mode `%s`; expected clean or dirty", mode))
			}

			app, err := NewApp(Dependencies{Stdout: c.OutOrStdout(), Stderr: c.ErrOrStderr()})
			if err != nil {
				return reportError(c.ErrOrStderr(), err)
			}
			app.reportConfigWarnings()

			alias, err := aliasfile.ParseAlias(args[0])
			if err != nil {
				return reportError(c.ErrOrStderr(), err)
			}

			symlink := discoverSymlink(alias.String(), symlinkPath)
			removedAny := false

			if mode == "clean" {
				if path := config.FindAliasSource(app.ConfigDir, alias.String()); path != "" {
					if err := os.Remove(path); err != nil {
						return reportError(c.ErrOrStderr(),
							fmt.Errorf("failed to remove alias document %s: %w", path, err))
					}
					removedAny = true
				}
				_ = app.Resolver.Invalidate(alias)
				if symlink != "" && isSymlink(symlink) {
					if err := os.Remove(symlink); err != nil {
						return reportError(c.ErrOrStderr(),
							fmt.Errorf("failed to remove symlink %s: %w", symlink, err))
					}
					removedAny = true
				}
			} else {
				if symlink == "" {
					return reportError(c.ErrOrStderr(),
						fmt.Errorf("dirty remove requires a discoverable symlink; pass --symlink-path <path>"))
				}
				if !isSymlink(symlink) {
					return reportError(c.ErrOrStderr(),
						fmt.Errorf("dirty remove only removes symlinks; `%s` is not a symlink", symlink))
				}
				if err := os.Remove(symlink); err != nil {
					return reportError(c.ErrOrStderr(),
						fmt.Errorf("failed to remove symlink %s: %w", symlink, err))
				}
				removedAny = true
			}

			if !removedAny {
				return reportError(c.ErrOrStderr(),
					fmt.Errorf("nothing was removed for alias `%s`", alias))
			}
			fmt.Fprintf(app.stdout, "removed alias `%s` (%s)\n", alias, mode)
			return nil
		},
	}

	c.Flags().StringVar(&mode, "mode", "clean", "removal mode: clean or dirty")
	c.Flags().StringVar(&symlinkPath, "symlink-path", "", "launcher symlink to remove (default: discovered on PATH)")
	return c
}

func registerMutationFlags(c *cobra.Command, m *aliasMutation) {
	c.Flags().StringVar(&m.exec, "exec", "", "executable the alias launches")
	c.Flags().StringArrayVar(&m.args, "arg", nil, "declared argument; repeatable, replaces the existing list")
	c.Flags().StringArrayVar(&m.envSet, "env", nil, "environment entry in KEY=VALUE form; repeatable")
	c.Flags().StringArrayVar(&m.envRemove, "env-remove", nil, "environment key to strip at launch; repeatable")
	c.Flags().StringVar(&m.journalNamespace, "journal-namespace", "", "journal namespace")
	c.Flags().StringVar(&m.journalStderr, "journal-stderr", "true", "mirror journal output to stderr (true/false)")
	c.Flags().StringVar(&m.journalIdentifier, "journal-identifier", "", "journal identifier; blank clears it")
	c.Flags().BoolVar(&m.journalClear, "journal-clear", false, "drop the journal table entirely")
}

func recordFlagPresence(c *cobra.Command, m *aliasMutation) {
	m.execSet = c.Flags().Changed("exec")
	m.journalNSSet = c.Flags().Changed("journal-namespace")
	m.journalStderrSet = c.Flags().Changed("journal-stderr")
	m.journalIDSet = c.Flags().Changed("journal-identifier")
}

// buildJournal constructs the journal table of a fresh document from the
// mutation flags. No journal flags means no journal table.
func (m *aliasMutation) buildJournal() (*aliasfile.DocumentJournal, error) {
	if m.journalClear || (!m.journalNSSet && !m.journalStderrSet && !m.journalIDSet) {
		return nil, nil
	}
	if !m.journalNSSet {
		return nil, fmt.Errorf("journal namespace is required when setting journal fields")
	}
	journal := &aliasfile.DocumentJournal{
		Namespace: m.journalNamespace,
		Stderr:    true,
	}
	if m.journalStderrSet {
		stderr, err := parseBoolFlag(m.journalStderr, "--journal-stderr")
		if err != nil {
			return nil, err
		}
		journal.Stderr = stderr
	}
	if m.journalIDSet && strings.TrimSpace(m.journalIdentifier) != "" {
		journal.Identifier = m.journalIdentifier
	}
	return journal, nil
}

// apply merges the mutation into an existing document. Exec and args
// replace; env entries merge in; env_remove keys append when absent; the
// journal table merges field-wise, or clears with --journal-clear.
func (m *aliasMutation) apply(doc *aliasfile.Document) error {
	if m.execSet {
		doc.Exec = m.exec
	}
	if len(m.args) > 0 {
		doc.Args = m.args
	}
	for _, assignment := range m.envSet {
		key, value, err := parseEnvAssignment(assignment)
		if err != nil {
			return err
		}
		if doc.Env == nil {
			doc.Env = make(map[string]string)
		}
		doc.Env[key] = value
	}
	for _, key := range m.envRemove {
		present := false
		for _, existing := range doc.EnvRemove {
			if existing == key {
				present = true
				break
			}
		}
		if !present {
			doc.EnvRemove = append(doc.EnvRemove, key)
		}
	}

	switch {
	case m.journalClear:
		doc.Journal = nil
	case m.journalNSSet || m.journalStderrSet || m.journalIDSet:
		journal := doc.Journal
		if journal == nil {
			journal = &aliasfile.DocumentJournal{Namespace: "default", Stderr: true}
		}
		if m.journalNSSet {
			journal.Namespace = m.journalNamespace
		}
		if m.journalStderrSet {
			stderr, err := parseBoolFlag(m.journalStderr, "--journal-stderr")
			if err != nil {
				return err
			}
			journal.Stderr = stderr
		}
		if m.journalIDSet {
			if strings.TrimSpace(m.journalIdentifier) == "" {
				journal.Identifier = ""
			} else {
				journal.Identifier = m.journalIdentifier
			}
		}
		doc.Journal = journal
	}
	return nil
}

// parseBoolFlag accepts the usual spellings of a boolean flag value.
func parseBoolFlag(value, flag string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true, nil
	case "0", "false", "no", "off":
		return false, nil
	default:
		return false, fmt.Errorf("%s must be one of true/false/1/0/yes/no/on/off", flag)
	}
}

// parseEnvAssignment splits a KEY=VALUE flag value. The key is trimmed
// and must survive map-key validation; the value is kept verbatim.
func parseEnvAssignment(assignment string) (string, string, error) {
	key, value, ok := strings.Cut(assignment, "=")
	if !ok {
		return "", "", fmt.Errorf("env assignment must be in KEY=VALUE form; got `%s`", assignment)
	}
	trimmed, err := aliasfile.ValidateMapKey("env", strings.TrimSpace(key))
	if err != nil {
		return "", "", err
	}
	if err := aliasfile.ValidateValue("env", value); err != nil {
		return "", "", err
	}
	return trimmed, value, nil
}

// discoverSymlink returns the explicit path when given, or the PATH hit
// for name. Either way the result must exist on disk.
func discoverSymlink(name, explicit string) string {
	candidate := explicit
	if candidate == "" {
		found, err := exec.LookPath(name)
		if err != nil {
			return ""
		}
		candidate = found
	}
	if _, err := os.Lstat(candidate); err != nil {
		return ""
	}
	return candidate
}

func isSymlink(path string) bool {
	info, err := os.Lstat(path)
	return err == nil && info.Mode()&os.ModeSymlink != 0
}
