// Package config holds buildextra's persisted settings: a section/key text
// store (Config.cfg), a typed accessor with default fallback over it, and
// the table of keys the tool understands.
package config

import (
	"os"
	"path/filepath"
)

const (
	// FileName is the configuration file looked up next to the executable.
	FileName = "Config.cfg"
	// EnvPath overrides the configuration file location.
	EnvPath = "BUILDEXTRA_CONFIG"
)

// Flags is the configuration a backup run depends on.
type Flags struct {
	// BackupDebugDisabled is stored as BackupDebug; true skips Debug builds.
	BackupDebugDisabled bool
	// BackupReleaseDisabled is stored as BackupRelease; true skips Release builds.
	BackupReleaseDisabled bool
	// SavePath is the root for backups. Empty means the executable's directory.
	SavePath string
	// History enables the backup ledger.
	History bool
}

// LoadFlags reads every run flag through a. Missing or unreadable keys take
// their defaults.
func LoadFlags(a *Accessor) Flags {
	return Flags{
		BackupDebugDisabled:   a.Bool(BackupDebug),
		BackupReleaseDisabled: a.Bool(BackupRelease),
		SavePath:              a.Text(SavePath),
		History:               a.Bool(History),
	}
}

// DefaultPath returns the configuration file to use: $BUILDEXTRA_CONFIG when
// set, otherwise Config.cfg in the executable's directory.
func DefaultPath() string {
	if p := os.Getenv(EnvPath); p != "" {
		return p
	}
	return filepath.Join(ExecutableDir(), FileName)
}

// ExecutableDir returns the directory holding the running binary, or the
// working directory if that cannot be determined.
func ExecutableDir() string {
	exe, err := os.Executable()
	if err == nil {
		if resolved, err := filepath.EvalSymlinks(exe); err == nil {
			exe = resolved
		}
		return filepath.Dir(exe)
	}
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	return "."
}
