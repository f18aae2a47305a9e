// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gmt/chopper/internal/config"
	"github.com/gmt/chopper/pkg/aliasfile"
)

// newValidateCommand creates the `chopper validate` command: parse and
// validate an alias document without running the merge engine.
func newValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <alias|path>",
		Short: "Parse and validate an alias document without resolving it",
		Long: `Validate an alias document. The argument is either a configured alias
name or a direct path to a .toml document (anything containing a path
separator or ending in .toml is treated as a path).

Validation is exactly what a real resolution performs, minus the merge:
a document that validates here will resolve, and vice versa.`,
		Args: cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			target := args[0]

			path := ""
			if strings.ContainsAny(target, `/\`) || strings.HasSuffix(strings.ToLower(target), aliasfile.DocumentExt) {
				path = target
			} else {
				app, err := NewApp(Dependencies{Stdout: c.OutOrStdout(), Stderr: c.ErrOrStderr()})
				if err != nil {
					return reportError(c.ErrOrStderr(), err)
				}
				_, loc, err := app.locateAlias(target)
				if err != nil {
					return reportError(c.ErrOrStderr(), err)
				}
				path = loc.Path
			}

			manifest, err := aliasfile.Parse(path)
			if err != nil {
				return reportError(c.ErrOrStderr(), err)
			}

			stdout := c.OutOrStdout()
			fmt.Fprintln(stdout, SuccessStyle.Render("✓ valid")+" "+path)
			fmt.Fprintf(stdout, "  exec: %s\n", CmdStyle.Render(manifest.Exec))
			if len(manifest.Args) > 0 {
				fmt.Fprintf(stdout, "  args: %d declared\n", len(manifest.Args))
			}
			if manifest.Reconcile != nil {
				fmt.Fprintf(stdout, "  reconcile: %s (%s)\n",
					manifest.Reconcile.Script, manifest.Reconcile.Function)
			}
			for _, warning := range config.MissingTargetWarnings(manifest) {
				fmt.Fprintln(c.ErrOrStderr(), WarningStyle.Render("warning: ")+warning)
			}
			return nil
		},
	}
}
