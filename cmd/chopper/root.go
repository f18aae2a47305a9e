// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	// verbose enables debug-level pipeline logging.
	verbose bool

	// rootCmd represents the base command when called without subcommands.
	rootCmd = &cobra.Command{
		Use:   "chopper",
		Short: "A command-alias launcher",
		Long: TitleStyle.Render("chopper") + SubtitleStyle.Render(" - A command-alias launcher") + `

chopper resolves short alias names into exact, validated command lines
and environments. Aliases are declared in TOML documents and resolution
is cached per source file, with optional runtime patching through a
reconcile script.

` + SubtitleStyle.Render("Examples:") + `
  chopper list                 List configured aliases
  chopper resolve deploy       Show the exact command 'deploy' resolves to
  chopper validate deploy      Parse and validate without resolving
  chopper which deploy         Print the resolved executable path
  chopper alias add deploy --exec /usr/bin/kubectl   Create an alias
  chopper cache invalidate deploy   Drop the cached manifest`,
	}
)

func init() {
	cobra.OnInitialize(initLogging)

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	rootCmd.AddCommand(newResolveCommand())
	rootCmd.AddCommand(newValidateCommand())
	rootCmd.AddCommand(newListCommand())
	rootCmd.AddCommand(newWhichCommand())
	rootCmd.AddCommand(newAliasCommand())
	rootCmd.AddCommand(newCacheCommand())
	rootCmd.AddCommand(newConfigCommand())
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute runs the root command. Called by main.main().
func Execute() {
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}

func initLogging() {
	if verbose {
		log.SetLevel(log.DebugLevel)
	}
}
