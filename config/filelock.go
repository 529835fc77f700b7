package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const lockFileName = "state.lock"

// FileLock serializes access to the files in the config directory across
// processes, for example two door-import windows saving state at once. It
// locks a separate lock file next to the guarded file.
type FileLock struct {
	path string
	file *os.File
}

// NewFileLock creates a FileLock guarding path.
func NewFileLock(path string) *FileLock {
	return &FileLock{
		path: filepath.Join(filepath.Dir(path), lockFileName),
	}
}

// Lock acquires an exclusive lock, blocking until it is available.
func (l *FileLock) Lock() error {
	return l.acquire(true)
}

// RLock acquires a shared lock, blocking until it is available.
func (l *FileLock) RLock() error {
	return l.acquire(false)
}

func (l *FileLock) acquire(exclusive bool) error {
	if l.file != nil {
		return fmt.Errorf("lock already held")
	}

	flag := os.O_CREATE | os.O_RDONLY
	if exclusive {
		flag = os.O_CREATE | os.O_RDWR
	}
	f, err := os.OpenFile(l.path, flag, 0644)
	if err != nil {
		return fmt.Errorf("failed to open lock file: %w", err)
	}

	if err := lockFile(f, exclusive); err != nil {
		f.Close()
		return fmt.Errorf("failed to acquire lock on %s: %w", l.path, err)
	}

	l.file = f
	return nil
}

// Unlock releases the lock. It is a no-op when no lock is held.
func (l *FileLock) Unlock() error {
	if l.file == nil {
		return nil
	}

	if err := unlockFile(l.file); err != nil {
		return fmt.Errorf("failed to release lock: %w", err)
	}
	if err := l.file.Close(); err != nil {
		return fmt.Errorf("failed to close lock file: %w", err)
	}

	l.file = nil
	return nil
}
