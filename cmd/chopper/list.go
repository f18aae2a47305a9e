// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gmt/chopper/internal/config"
)

// newListCommand creates the `chopper list` command.
func newListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List configured aliases",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			app, err := NewApp(Dependencies{Stdout: c.OutOrStdout(), Stderr: c.ErrOrStderr()})
			if err != nil {
				return reportError(c.ErrOrStderr(), err)
			}

			app.reportConfigWarnings()

			names, err := config.ListAliases(app.ConfigDir)
			if err != nil {
				return reportError(c.ErrOrStderr(), err)
			}
			if len(names) == 0 {
				fmt.Fprintln(app.stdout, SubtitleStyle.Render("no aliases configured in ")+app.ConfigDir)
				return nil
			}

			for _, name := range names {
				fmt.Fprintln(app.stdout, name)
			}
			return nil
		},
	}
}
