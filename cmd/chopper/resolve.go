// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"mvdan.cc/sh/v3/syntax"

	"github.com/gmt/chopper/internal/resolve"
	"github.com/gmt/chopper/pkg/aliasfile"
)

// newResolveCommand creates the `chopper resolve` command: the full
// pipeline, ending at a printed command instead of an exec.
func newResolveCommand() *cobra.Command {
	var noCache, noReconcile bool

	c := &cobra.Command{
		Use:   "resolve <alias> [-- args...]",
		Short: "Resolve an alias to its exact command line and environment",
		Long: `Resolve an alias through the full pipeline: cached manifest lookup
(with self-healing), optional runtime patch, and argument/environment
merge. The resolved command is printed shell-quoted together with the
environment changes relative to the current environment.

Arguments after -- are passed through as invocation-time arguments and
participate in the merge exactly as they would for a real launch.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			app, err := NewApp(Dependencies{Stdout: c.OutOrStdout(), Stderr: c.ErrOrStderr()})
			if err != nil {
				return reportError(c.ErrOrStderr(), err)
			}
			if noCache {
				app.Resolver.Cache = nil
			}
			if noReconcile {
				app.Resolver.Patcher = nil
			}

			alias, loc, found, err := app.findAlias(args[0])
			if err != nil {
				return reportError(c.ErrOrStderr(), err)
			}

			req := resolve.Request{
				Alias:       alias,
				Source:      loc,
				RuntimeArgs: args[1:],
				Environ:     os.Environ(),
			}

			var resolved *resolve.ResolvedCommand
			if found {
				resolved, err = app.Resolver.Resolve(req)
			} else {
				// Aliases without a document resolve through PATH as plain
				// commands, so the launcher covers everything on PATH.
				resolved, err = app.Resolver.Merge(aliasfile.Fallback(alias.String()), req)
			}
			if err != nil {
				return reportError(c.ErrOrStderr(), err)
			}

			printResolved(app, resolved)
			return nil
		},
	}

	c.Flags().BoolVar(&noCache, "no-cache", false, "bypass the manifest cache for this resolution")
	c.Flags().BoolVar(&noReconcile, "no-reconcile", false, "skip the runtime patch script")
	return c
}

func printResolved(app *App, resolved *resolve.ResolvedCommand) {
	stdout := app.stdout

	parts := make([]string, 0, 1+len(resolved.Args))
	parts = append(parts, shellQuote(resolved.Exec))
	for _, arg := range resolved.Args {
		parts = append(parts, shellQuote(arg))
	}
	fmt.Fprintln(stdout, CmdStyle.Render(strings.Join(parts, " ")))

	added, removed := environDelta(resolved.Env)
	if len(added) == 0 && len(removed) == 0 {
		return
	}

	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, SubtitleStyle.Render("Environment changes:"))
	for _, kv := range added {
		fmt.Fprintf(stdout, "  %s\n", kv)
	}
	for _, key := range removed {
		fmt.Fprintf(stdout, "  %s\n", WarningStyle.Render("unset "+key))
	}
}

// environDelta compares the resolved environment with the current process
// environment and returns set/changed entries plus removed keys.
func environDelta(final map[string]string) (added []string, removed []string) {
	current := resolve.EnvironToMap(os.Environ())

	for key, value := range final {
		if existing, ok := current[key]; !ok || existing != value {
			added = append(added, key+"="+shellQuote(value))
		}
	}
	for key := range current {
		if _, ok := final[key]; !ok {
			removed = append(removed, key)
		}
	}
	sort.Strings(added)
	sort.Strings(removed)
	return added, removed
}

// shellQuote renders s safe for copy-paste into a POSIX shell. Values
// reaching this point are NUL-free, so quoting cannot fail; the fallback
// keeps output best-effort if it somehow does.
func shellQuote(s string) string {
	quoted, err := syntax.Quote(s, syntax.LangBash)
	if err != nil {
		return s
	}
	return quoted
}
