package fileutil

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
)

var (
	dataDirOnce sync.Once
	dataDirPath string
)

// getBinaryName returns the base name of the running binary without extension.
func getBinaryName() string {
	name := filepath.Base(os.Args[0])
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// isDev returns true if the binary is running in development mode.
func isDev() bool {
	if os.Getenv("HLWORDS_ENV") == "development" {
		return true
	}
	return getBinaryName() == "hlwd"
}

// GetDataDirectory returns the directory holding the config file and logs:
//  1. $HLWORDS_DIR (if set)
//  2. Dev mode (binary named "hlwd"): <executable-dir>/../../data/
//  3. Production: ~/.hlwords/
func GetDataDirectory() string {
	dataDirOnce.Do(func() {
		if env := os.Getenv("HLWORDS_DIR"); env != "" {
			dataDirPath = env
			return
		}
		if isDev() {
			exe, err := os.Executable()
			if err == nil {
				dataDirPath = filepath.Join(filepath.Dir(exe), "..", "..", "data")
				return
			}
		}
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		dataDirPath = filepath.Join(home, ".hlwords")
	})
	return dataDirPath
}

// ResetDataDirectory resets the cached data directory (for testing).
func ResetDataDirectory() {
	dataDirOnce = sync.Once{}
	dataDirPath = ""
}

// EnsureDataDirectoryExists creates the data directory if it doesn't exist.
func EnsureDataDirectoryExists() string {
	dir := GetDataDirectory()
	_ = os.MkdirAll(dir, 0700)
	return dir
}

// GetConfigFilePath returns the path to config.yaml.
func GetConfigFilePath() string {
	return filepath.Join(GetDataDirectory(), "config.yaml")
}

// GetLogFilePath returns the path to the rotated log file.
func GetLogFilePath() string {
	return filepath.Join(GetDataDirectory(), "hlwords.log")
}
