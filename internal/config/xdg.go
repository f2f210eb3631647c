// Package config provides XDG path helpers.
package config

import (
	"path/filepath"

	"github.com/adrg/xdg"
)

const appName = "monkeytui"

// XDGConfigHome returns the XDG config home.
func XDGConfigHome() string {
	return xdg.ConfigHome
}

// XDGDataHome returns the XDG data home.
func XDGDataHome() string {
	return xdg.DataHome
}

// XDGStateHome returns the XDG state home.
func XDGStateHome() string {
	return xdg.StateHome
}

// Reload re-reads the XDG environment variables.
func Reload() {
	xdg.Reload()
}

// DefaultWordlistPath returns the default word list used in words mode.
func DefaultWordlistPath() string {
	return filepath.Join(XDGConfigHome(), appName, "words.txt")
}

// DefaultDBPath returns the default path for the SQLite database.
func DefaultDBPath() string {
	return filepath.Join(XDGDataHome(), appName, appName+".db")
}

// DefaultConfigPath returns the default TOML config path.
func DefaultConfigPath() string {
	return filepath.Join(XDGConfigHome(), appName, "config.toml")
}

// DefaultLogPath returns the log file written while the TUI owns the terminal.
func DefaultLogPath() string {
	return filepath.Join(XDGStateHome(), appName, appName+".log")
}
