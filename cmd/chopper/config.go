// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gmt/chopper/internal/config"
)

// newConfigCommand creates the `chopper config` command group for
// configuration introspection.
func newConfigCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "config",
		Short: "Inspect the launcher configuration",
	}

	root.AddCommand(&cobra.Command{
		Use:   "dir",
		Short: "Print the configuration directory path",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			dir, err := config.ConfigDir()
			if err != nil {
				return reportError(c.ErrOrStderr(), err)
			}
			fmt.Fprintln(c.OutOrStdout(), dir)
			return nil
		},
	})

	return root
}
