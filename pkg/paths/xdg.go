// Package paths resolves bpschema's per-user directories.
//
// Resolution order:
// 1. BPSCHEMA_HOME (portable root) → $BPSCHEMA_HOME/{config,state}
// 2. XDG env vars → $XDG_*_HOME/bpschema
// 3. Platform defaults → ~/.config/bpschema, ~/.local/state/bpschema
package paths

import (
	"os"
	"path/filepath"
)

const appName = "bpschema"

func resolve(portable, xdgVar string, fallback ...string) string {
	if home := os.Getenv("BPSCHEMA_HOME"); home != "" {
		return filepath.Join(home, portable)
	}
	if xdg := os.Getenv(xdgVar); xdg != "" {
		return filepath.Join(xdg, appName)
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		return filepath.Join(append(append([]string{homeDir}, fallback...), appName)...)
	}
	return ""
}

// ConfigDir returns the directory holding the global bpschema.yml.
func ConfigDir() string {
	return resolve("config", "XDG_CONFIG_HOME", ".config")
}

// StateDir returns the directory for logs and other runtime state.
func StateDir() string {
	return resolve("state", "XDG_STATE_HOME", ".local", "state")
}

// GlobalConfigFile returns the path of the global configuration file, or ""
// when no home directory can be determined.
func GlobalConfigFile() string {
	dir := ConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "bpschema.yml")
}

// DefaultLogFile is the file sink used when logging.file.path is unset.
func DefaultLogFile() string {
	dir := StateDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "bpschema.log")
}
