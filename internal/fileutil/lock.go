package fileutil

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"
)

// lockStale is the age after which a leftover lock file is broken.
const lockStale = 10 * time.Second

// ErrLocked is returned when a lock cannot be acquired in time.
var ErrLocked = errors.New("file is locked")

// AcquireLock acquires a file-based lock using O_CREATE|O_EXCL for atomicity.
// It retries up to maxRetries times with exponential backoff and breaks stale
// locks.
func AcquireLock(filePath string, maxRetries int) error {
	lockPath := filePath + ".lock"

	for attempt := 0; attempt <= maxRetries; attempt++ {
		f, err := os.OpenFile(lockPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0600)
		if err == nil {
			_, _ = f.WriteString(strconv.Itoa(os.Getpid()))
			return f.Close()
		}
		if !errors.Is(err, fs.ErrExist) {
			return err
		}

		info, statErr := os.Stat(lockPath)
		if statErr != nil {
			// Lock file disappeared, retry
			continue
		}
		if time.Since(info.ModTime()) > lockStale {
			_ = os.Remove(lockPath)
			continue
		}

		if attempt < maxRetries {
			time.Sleep(time.Duration(1<<uint(attempt)) * time.Millisecond)
		}
	}
	return fmt.Errorf("%w: %s after %d retries", ErrLocked, filePath, maxRetries)
}

// ReleaseLock removes the lock file. Errors are silently ignored.
func ReleaseLock(filePath string) {
	_ = os.Remove(filePath + ".lock")
}

// WithFileLock acquires a lock, runs fn, and releases the lock.
// If lock acquisition fails, fn is still executed (graceful degradation).
func WithFileLock(filePath string, fn func() error) error {
	if err := AcquireLock(filePath, 5); err == nil {
		defer ReleaseLock(filePath)
	}
	return fn()
}
