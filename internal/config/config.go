// SPDX-License-Identifier: MPL-2.0

// Package config locates chopper's configuration and cache directories and
// loads optional launcher settings.
//
// Directory resolution follows platform conventions (XDG on Linux,
// ~/Library on macOS, %APPDATA%/%LOCALAPPDATA% on Windows) and can be
// overridden with the CHOPPER_CONFIG_DIR and CHOPPER_CACHE_DIR environment
// variables. Settings come from an optional config.toml inside the config
// directory; a missing file yields defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/viper"

	"github.com/gmt/chopper/internal/envutil"
)

const (
	// AppName is the application name used in directory paths.
	AppName = "chopper"
	// SettingsFileName is the optional settings file inside the config dir.
	SettingsFileName = "config.toml"

	// EnvConfigDir overrides the configuration directory.
	EnvConfigDir = "CHOPPER_CONFIG_DIR"
	// EnvCacheDir overrides the cache directory.
	EnvCacheDir = "CHOPPER_CACHE_DIR"
	// EnvDisableCache disables the manifest cache when truthy.
	EnvDisableCache = "CHOPPER_DISABLE_CACHE"
	// EnvDisableReconcile disables runtime patch invocation when truthy.
	EnvDisableReconcile = "CHOPPER_DISABLE_RECONCILE"
)

// Settings are the optional launcher settings from config.toml.
type Settings struct {
	Cache struct {
		// Disabled turns the manifest cache off (parse on every invocation).
		Disabled bool `mapstructure:"disabled"`
	} `mapstructure:"cache"`
	Reconcile struct {
		// Disabled skips runtime patch scripts for every alias.
		Disabled bool `mapstructure:"disabled"`
	} `mapstructure:"reconcile"`
	UI struct {
		// Verbose enables debug-level pipeline logging by default.
		Verbose bool `mapstructure:"verbose"`
	} `mapstructure:"ui"`
}

// ConfigDir returns the chopper configuration directory. The
// CHOPPER_CONFIG_DIR override wins; otherwise platform conventions apply:
// %APPDATA% on Windows, ~/Library/Application Support on macOS, and
// $XDG_CONFIG_HOME (defaulting to ~/.config) elsewhere.
func ConfigDir() (string, error) {
	if override := envutil.PathOverride(EnvConfigDir); override != "" {
		return override, nil
	}

	var base string
	switch runtime.GOOS {
	case "windows":
		base = os.Getenv("APPDATA")
		if base == "" {
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		base = filepath.Join(home, "Library", "Application Support")
	default:
		base = os.Getenv("XDG_CONFIG_HOME")
		if base == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to get home directory: %w", err)
			}
			base = filepath.Join(home, ".config")
		}
	}

	return filepath.Join(base, AppName), nil
}

// CacheDir returns the chopper cache directory. The CHOPPER_CACHE_DIR
// override wins; otherwise %LOCALAPPDATA% on Windows, ~/Library/Caches on
// macOS, and $XDG_CACHE_HOME (defaulting to ~/.cache) elsewhere.
func CacheDir() (string, error) {
	if override := envutil.PathOverride(EnvCacheDir); override != "" {
		return override, nil
	}

	var base string
	switch runtime.GOOS {
	case "windows":
		base = os.Getenv("LOCALAPPDATA")
		if base == "" {
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Local")
		}
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		base = filepath.Join(home, "Library", "Caches")
	default:
		base = os.Getenv("XDG_CACHE_HOME")
		if base == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to get home directory: %w", err)
			}
			base = filepath.Join(home, ".cache")
		}
	}

	return filepath.Join(base, AppName), nil
}

// LoadError reports that config.toml exists but could not be decoded.
// Missing files never produce one; only a malformed settings file does.
type LoadError struct {
	Path string
	Err  error
}

// Error implements the error interface.
func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load settings %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying decode error.
func (e *LoadError) Unwrap() error { return e.Err }

// Load reads settings from config.toml in the configuration directory.
// A missing file is not an error: defaults are returned. A malformed file
// yields a LoadError so typos do not silently flip behavior.
func Load() (*Settings, error) {
	dir, err := ConfigDir()
	if err != nil {
		return nil, err
	}

	settings := &Settings{}
	path := filepath.Join(dir, SettingsFileName)

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	v.SetDefault("cache.disabled", false)
	v.SetDefault("reconcile.disabled", false)
	v.SetDefault("ui.verbose", false)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if os.IsNotExist(err) || errors.As(err, &notFound) {
			return settings, nil
		}
		return nil, &LoadError{Path: path, Err: err}
	}

	if err := v.Unmarshal(settings); err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	return settings, nil
}

// CacheEnabled combines the settings file with the env kill switch.
func (s *Settings) CacheEnabled() bool {
	return !s.Cache.Disabled && !envutil.FlagEnabled(EnvDisableCache)
}

// ReconcileEnabled combines the settings file with the env kill switch.
func (s *Settings) ReconcileEnabled() bool {
	return !s.Reconcile.Disabled && !envutil.FlagEnabled(EnvDisableReconcile)
}
