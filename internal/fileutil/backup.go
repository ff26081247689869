package fileutil

import (
	"os"
	"path/filepath"
	"sort"
	"time"
)

const maxBackups = 10

// CreateBackup copies filePath into <data dir>/.backups/<label>-<timestamp>/.
// Returns the backup directory path or empty string when there was nothing
// to back up or the copy failed.
func CreateBackup(filePath, label string) string {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return ""
	}

	backupDir := filepath.Join(GetDataDirectory(), ".backups")
	if err := os.MkdirAll(backupDir, 0700); err != nil {
		return ""
	}

	ts := time.Now().UTC().Format("2006-01-02T15-04-05.000")
	backupSubDir := filepath.Join(backupDir, label+"-"+ts)
	if err := os.Mkdir(backupSubDir, 0700); err != nil {
		return ""
	}

	dest := filepath.Join(backupSubDir, filepath.Base(filePath))
	if err := os.WriteFile(dest, data, 0600); err != nil {
		_ = os.RemoveAll(backupSubDir)
		return ""
	}

	// Rotate: keep only the 10 most recent backups
	rotateBackups(backupDir)

	return backupSubDir
}

func rotateBackups(backupDir string) {
	entries, err := os.ReadDir(backupDir)
	if err != nil {
		return
	}

	var dirs []string
	for _, e := range entries {
		if e.IsDir() {
			dirs = append(dirs, e.Name())
		}
	}
	sort.Strings(dirs)

	if len(dirs) > maxBackups {
		toRemove := dirs[:len(dirs)-maxBackups]
		for _, old := range toRemove {
			_ = os.RemoveAll(filepath.Join(backupDir, old))
		}
	}
}

// SaveFile writes content to filePath with file locking and an atomic rename.
func SaveFile(filePath, content string) error {
	return WithFileLock(filePath, func() error {
		return AtomicWriteFile(filePath, content)
	})
}
