// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gmt/chopper/internal/cache"
	"github.com/gmt/chopper/internal/config"
	"github.com/gmt/chopper/pkg/aliasfile"
)

// newCacheCommand creates the `chopper cache` command group for explicit
// cache maintenance. The pipeline self-heals, so these exist for
// debugging and for front ends that toggle behavior.
func newCacheCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "cache",
		Short: "Inspect and maintain the manifest cache",
	}

	root.AddCommand(&cobra.Command{
		Use:   "invalidate <alias>",
		Short: "Drop the cached manifest for an alias",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			alias, err := aliasfile.ParseAlias(args[0])
			if err != nil {
				return reportError(c.ErrOrStderr(), err)
			}
			manager, err := cacheManager()
			if err != nil {
				return reportError(c.ErrOrStderr(), err)
			}
			if err := manager.Invalidate(alias); err != nil {
				return reportError(c.ErrOrStderr(), err)
			}
			fmt.Fprintln(c.OutOrStdout(), SuccessStyle.Render("✓")+" cache invalidated for "+alias.String())
			return nil
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Drop every cached manifest",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			manager, err := cacheManager()
			if err != nil {
				return reportError(c.ErrOrStderr(), err)
			}
			if err := manager.Clear(); err != nil {
				return reportError(c.ErrOrStderr(), err)
			}
			fmt.Fprintln(c.OutOrStdout(), SuccessStyle.Render("✓")+" cache cleared")
			return nil
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "dir",
		Short: "Print the cache directory path",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			dir, err := config.CacheDir()
			if err != nil {
				return reportError(c.ErrOrStderr(), err)
			}
			fmt.Fprintln(c.OutOrStdout(), dir)
			return nil
		},
	})

	return root
}

func cacheManager() (*cache.Manager, error) {
	dir, err := config.CacheDir()
	if err != nil {
		return nil, err
	}
	return cache.NewManager(dir), nil
}
