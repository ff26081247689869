package fileutil

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestGetDataDirectoryFromEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HLWORDS_DIR", dir)
	ResetDataDirectory()
	defer ResetDataDirectory()

	if got := GetDataDirectory(); got != dir {
		t.Errorf("GetDataDirectory() = %q, want %q", got, dir)
	}
	if got, want := GetConfigFilePath(), filepath.Join(dir, "config.yaml"); got != want {
		t.Errorf("GetConfigFilePath() = %q, want %q", got, want)
	}
	if got, want := GetLogFilePath(), filepath.Join(dir, "hlwords.log"); got != want {
		t.Errorf("GetLogFilePath() = %q, want %q", got, want)
	}
}

func TestAtomicWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("old"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := AtomicWriteFile(path, "words: [example]\n"); err != nil {
		t.Fatalf("AtomicWriteFile() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "words: [example]\n" {
		t.Errorf("content = %q", data)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("mode = %v, want 0600", info.Mode().Perm())
	}

	entries, _ := os.ReadDir(filepath.Dir(path))
	if len(entries) != 1 {
		t.Errorf("expected no temp files left, found %d entries", len(entries))
	}
}

func TestAcquireLockHeld(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	if err := AcquireLock(path, 0); err != nil {
		t.Fatalf("first AcquireLock() error = %v", err)
	}
	err := AcquireLock(path, 1)
	if !errors.Is(err, ErrLocked) {
		t.Errorf("second AcquireLock() error = %v, want ErrLocked", err)
	}

	ReleaseLock(path)
	if err := AcquireLock(path, 0); err != nil {
		t.Errorf("AcquireLock() after release error = %v", err)
	}
	ReleaseLock(path)
}

func TestSaveFileAndBackup(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HLWORDS_DIR", dir)
	ResetDataDirectory()
	defer ResetDataDirectory()

	path := GetConfigFilePath()
	if got := CreateBackup(path, "config"); got != "" {
		t.Errorf("CreateBackup() of missing file = %q, want empty", got)
	}

	if err := SaveFile(path, "color: red\n"); err != nil {
		t.Fatalf("SaveFile() error = %v", err)
	}
	if _, err := os.Stat(path + ".lock"); !os.IsNotExist(err) {
		t.Error("lock file should be released after SaveFile")
	}

	backup := CreateBackup(path, "config")
	if backup == "" {
		t.Fatal("CreateBackup() returned empty path")
	}
	data, err := os.ReadFile(filepath.Join(backup, "config.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "color: red\n" {
		t.Errorf("backup content = %q", data)
	}
}
