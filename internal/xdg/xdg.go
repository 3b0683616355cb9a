// Copyright (c) 2025 Tablecheck
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package xdg resolves the XDG Base Directory config path for tablecheck.
// Connection profiles and settings live under $XDG_CONFIG_HOME/tablecheck,
// falling back to ~/.config/tablecheck when the variable is unset.
package xdg

import (
	"os"
	"path/filepath"
)

// AppDirName is the per-application directory under the XDG base.
const AppDirName = "tablecheck"

// ConfigDir returns the XDG config directory for tablecheck.
// The directory is created with private permissions (0700) if missing,
// since it holds connection profiles.
func ConfigDir() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".config")
	}
	dir := filepath.Join(base, AppDirName)
	if err := os.MkdirAll(dir, 0o700); err != nil { // private dir
		return "", err
	}
	return dir, nil
}

// ConfigFile joins name onto ConfigDir.
func ConfigFile(name string) (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}
