// Package storage persists search results and console game statistics.
package storage

import (
	"os"
	"path/filepath"
	"runtime"
)

const appName = "chessbrute"

// GetDataDir returns the platform-specific data directory for the application.
// - macOS: ~/Library/Application Support/chessbrute/
// - Linux: ~/.local/share/chessbrute/
// - Windows: %APPDATA%/chessbrute/
func GetDataDir() (string, error) {
	var baseDir string

	switch runtime.GOOS {
	case "darwin":
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		baseDir = filepath.Join(homeDir, "Library", "Application Support")

	case "windows":
		baseDir = os.Getenv("APPDATA")
		if baseDir == "" {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			baseDir = filepath.Join(homeDir, "AppData", "Roaming")
		}

	default:
		// Check XDG_DATA_HOME first
		baseDir = os.Getenv("XDG_DATA_HOME")
		if baseDir == "" {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			baseDir = filepath.Join(homeDir, ".local", "share")
		}
	}

	dataDir := filepath.Join(baseDir, appName)

	// Create directory if it doesn't exist
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return "", err
	}

	return dataDir, nil
}

// GetDatabaseDir returns the directory for storing the BadgerDB database.
func GetDatabaseDir() (string, error) {
	dataDir, err := GetDataDir()
	if err != nil {
		return "", err
	}

	dbDir := filepath.Join(dataDir, "db")
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return "", err
	}

	return dbDir, nil
}

// ResolveDatabaseDir maps a -db flag value to a database directory:
// "default" is the platform data directory, "" or "memory" keeps the
// database in memory, anything else is used as a path.
func ResolveDatabaseDir(flagValue string) (string, error) {
	switch flagValue {
	case "", "memory":
		return "", nil
	case "default":
		return GetDatabaseDir()
	}
	return flagValue, nil
}
