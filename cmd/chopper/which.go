// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os/exec"

	"github.com/spf13/cobra"

	"github.com/gmt/chopper/internal/config"
	"github.com/gmt/chopper/internal/issue"
)

// newWhichCommand creates the `chopper which` command: print only the
// resolved executable path, suitable for scripting.
func newWhichCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "which <alias>",
		Short: "Print the executable path an alias resolves to",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			app, err := NewApp(Dependencies{Stdout: c.OutOrStdout(), Stderr: c.ErrOrStderr()})
			if err != nil {
				return reportError(c.ErrOrStderr(), err)
			}

			alias, loc, found, err := app.findAlias(args[0])
			if err != nil {
				return reportError(c.ErrOrStderr(), err)
			}

			if !found {
				// No document: the alias is still launchable if PATH has it.
				path, lookErr := exec.LookPath(alias.String())
				if lookErr != nil {
					notFound := issue.NewErrorContext().
						WithOperation("resolve executable").
						WithResource(alias.String()).
						WithSuggestion("Run 'chopper list' to see configured aliases").
						WithSuggestion(fmt.Sprintf("Create one with 'chopper alias add %s --exec <path>'", alias)).
						Wrap(&config.NotFoundError{Alias: alias.String(), ConfigDir: app.ConfigDir}).
						Build()
					return reportError(c.ErrOrStderr(), notFound)
				}
				fmt.Fprintln(app.stdout, path)
				return nil
			}

			manifest, err := app.Resolver.LoadManifest(alias, loc)
			if err != nil {
				return reportError(c.ErrOrStderr(), err)
			}

			fmt.Fprintln(app.stdout, manifest.Exec)
			return nil
		},
	}
}
