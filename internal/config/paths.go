package config

import (
	"path/filepath"

	"github.com/adrg/xdg"
)

// Paths contains commonly used file paths.
type Paths struct {
	Database string // Main SQLite database
	Env      string // Optional .env file
	Log      string // Debug log file
}

// GetPaths returns all commonly used paths based on config.
func GetPaths(cfg *Config) Paths {
	return Paths{
		Database: filepath.Join(cfg.BaseDir, "tutorsync.db"),
		Env:      filepath.Join(cfg.BaseDir, ".env"),
		Log:      filepath.Join(cfg.BaseDir, "tutorsync.log"),
	}
}

// DefaultBaseDir returns the default data directory
// (XDG data home, e.g. ~/.local/share/tutorsync).
func DefaultBaseDir() string {
	return filepath.Join(xdg.DataHome, "tutorsync")
}
