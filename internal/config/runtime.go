package config

import (
	"os"
	"path/filepath"
)

const defaultRuntimeDir = ".gadgetbot"

// GetRuntimePath is where .env, SYSTEM.md and the catalog database live.
// Relative paths are resolved against the user's home directory.
func GetRuntimePath() string {
	return resolveRuntimePath(os.Getenv("GADGET_RUNTIME_PATH"))
}

func resolveRuntimePath(path string) string {
	if path == "" {
		path = defaultRuntimeDir
	}
	if filepath.IsAbs(path) {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path)
}
