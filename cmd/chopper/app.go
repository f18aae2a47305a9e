// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/gmt/chopper/internal/cache"
	"github.com/gmt/chopper/internal/config"
	"github.com/gmt/chopper/internal/issue"
	"github.com/gmt/chopper/internal/resolve"
	"github.com/gmt/chopper/pkg/aliasfile"
)

// App wires CLI services and shared dependencies. All Cobra handlers
// receive an App reference and delegate through it, so tests can build an
// App around a temp config/cache directory.
type App struct {
	Settings  *config.Settings
	ConfigDir string
	Resolver  *resolve.Resolver
	stdout    io.Writer
	stderr    io.Writer
}

// Dependencies defines the injection points for building an App. Zero
// fields get production defaults from NewApp.
type Dependencies struct {
	Settings  *config.Settings
	ConfigDir string
	CacheDir  string
	Stdout    io.Writer
	Stderr    io.Writer
}

// NewApp builds an App, filling unset dependencies with production
// defaults: platform directories, settings from config.toml, a cache
// manager (unless disabled), and the script-engine patch provider.
func NewApp(deps Dependencies) (*App, error) {
	settings := deps.Settings
	if settings == nil {
		loaded, err := config.Load()
		if err != nil {
			return nil, issue.NewErrorContext().
				WithOperation("load settings").
				WithSuggestion("Check the TOML syntax of config.toml").
				WithSuggestion("Move the file aside to fall back to defaults").
				Wrap(err).
				Build()
		}
		settings = loaded
	}

	configDir := deps.ConfigDir
	if configDir == "" {
		dir, err := config.ConfigDir()
		if err != nil {
			return nil, err
		}
		configDir = dir
	}

	cacheDir := deps.CacheDir
	if cacheDir == "" {
		dir, err := config.CacheDir()
		if err != nil {
			return nil, err
		}
		cacheDir = dir
	}

	resolver := &resolve.Resolver{}
	if settings.CacheEnabled() {
		resolver.Cache = cache.NewManager(cacheDir)
	}
	if settings.ReconcileEnabled() {
		resolver.Patcher = execPatchProvider
	}

	stdout := deps.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	stderr := deps.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}

	return &App{
		Settings:  settings,
		ConfigDir: configDir,
		Resolver:  resolver,
		stdout:    stdout,
		stderr:    stderr,
	}, nil
}

// findAlias validates name and looks for its source document. found is
// false when the alias has no document, which callers treat either as a
// PATH fallback or as an error of their own.
func (a *App) findAlias(name string) (aliasfile.Alias, aliasfile.SourceLocator, bool, error) {
	alias, err := aliasfile.ParseAlias(name)
	if err != nil {
		return "", aliasfile.SourceLocator{}, false, err
	}

	path := config.FindAliasSource(a.ConfigDir, alias.String())
	if path == "" {
		return alias, aliasfile.SourceLocator{}, false, nil
	}

	loc, err := aliasfile.NewSourceLocator(path)
	if err != nil {
		return "", aliasfile.SourceLocator{}, false, err
	}
	return alias, loc, true, nil
}

// locateAlias is findAlias for commands that require a document to exist.
func (a *App) locateAlias(name string) (aliasfile.Alias, aliasfile.SourceLocator, error) {
	alias, loc, found, err := a.findAlias(name)
	if err != nil {
		return "", aliasfile.SourceLocator{}, err
	}
	if !found {
		return "", aliasfile.SourceLocator{}, issue.NewErrorContext().
			WithOperation("locate alias document").
			WithResource(alias.String()).
			WithSuggestion("Run 'chopper list' to see configured aliases").
			WithSuggestion(fmt.Sprintf("Create one with 'chopper alias add %s --exec <path>'", alias)).
			Wrap(&config.NotFoundError{Alias: alias.String(), ConfigDir: a.ConfigDir}).
			Build()
	}
	return alias, loc, nil
}

// reportConfigWarnings prints extension diagnostics for the config tree
// to stderr. Warnings never affect the exit code.
func (a *App) reportConfigWarnings() {
	for _, warning := range config.ScanExtensionWarnings(a.ConfigDir) {
		fmt.Fprintln(a.stderr, WarningStyle.Render("warning: ")+warning)
	}
}
