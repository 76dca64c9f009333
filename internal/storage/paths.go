// Package storage provides persistent storage for user preferences and game statistics.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

const appName = "chessgrid"

// dataRoot resolves the per-user application data root for goos:
//
//	darwin   $HOME/Library/Application Support
//	windows  %APPDATA%, else $HOME/AppData/Roaming
//	other    $XDG_DATA_HOME, else $HOME/.local/share
func dataRoot(goos string, getenv func(string) string, home func() (string, error)) (string, error) {
	var env string
	var fallback []string
	switch goos {
	case "darwin":
		fallback = []string{"Library", "Application Support"}
	case "windows":
		env, fallback = "APPDATA", []string{"AppData", "Roaming"}
	default:
		env, fallback = "XDG_DATA_HOME", []string{".local", "share"}
	}

	if env != "" {
		if dir := getenv(env); dir != "" {
			return dir, nil
		}
	}
	h, err := home()
	if err != nil {
		return "", fmt.Errorf("locate home directory: %w", err)
	}
	return filepath.Join(append([]string{h}, fallback...)...), nil
}

// ensureDir creates dir if needed and returns it.
func ensureDir(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create %s: %w", dir, err)
	}
	return dir, nil
}

// GetDataDir returns (and creates) the application data directory.
func GetDataDir() (string, error) {
	root, err := dataRoot(runtime.GOOS, os.Getenv, os.UserHomeDir)
	if err != nil {
		return "", err
	}
	return ensureDir(filepath.Join(root, appName))
}

// GetDatabaseDir returns the directory for storing the BadgerDB database.
func GetDatabaseDir() (string, error) {
	dataDir, err := GetDataDir()
	if err != nil {
		return "", err
	}
	return DatabaseDirIn(dataDir)
}

// DatabaseDirIn returns (and creates) the database directory under dataDir.
func DatabaseDirIn(dataDir string) (string, error) {
	return ensureDir(filepath.Join(dataDir, "db"))
}
