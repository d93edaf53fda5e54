package config

import (
	"path/filepath"
)

var (
	// AppName is used in generating file system paths.
	AppName = "tapadyen"
)

// ConfigDir returns the directory path for configuration files.
// Returns ~/.config/tapadyen by default.
func ConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config", AppName)
}

// CacheDir returns the directory path for cache files.
// Returns ~/.cache/tapadyen by default.
func CacheDir(homeDir string) string {
	return filepath.Join(homeDir, ".cache", AppName)
}

// LogDir returns the directory path for log files.
// Returns ~/.local/share/tapadyen/logs by default.
func LogDir(homeDir string) string {
	return filepath.Join(homeDir, ".local", "share", AppName, "logs")
}

// ConfigFilePath returns the full path to the config.yaml file.
// Returns ~/.config/tapadyen/config.yaml by default.
func ConfigFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "config.yaml")
}

// CheckpointsPath returns the SQLite file keeping state snapshots.
// Returns ~/.cache/tapadyen/checkpoints.db by default.
func CheckpointsPath(homeDir string) string {
	return filepath.Join(CacheDir(homeDir), "checkpoints.db")
}
