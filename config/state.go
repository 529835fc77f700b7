package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"door-import/log"
)

const StateFileName = "state.json"

// AppState is the UI state remembered between runs.
type AppState interface {
	// GetHelpScreensSeen returns the bitmask of help screens already shown.
	GetHelpScreensSeen() uint32
	SetHelpScreensSeen(seen uint32) error
	// GetLastDirectory returns the directory the file browser last imported from.
	GetLastDirectory() string
	SetLastDirectory(dir string) error
}

// State is the on-disk form of AppState. Loaded panels and the order are
// never persisted.
type State struct {
	HelpScreensSeen uint32 `json:"help_screens_seen"`
	LastDirectory   string `json:"last_directory,omitempty"`
}

func DefaultState() *State {
	return &State{}
}

func statePath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get config directory: %w", err)
	}
	return filepath.Join(configDir, StateFileName), nil
}

// LoadState reads the state file under a shared lock. A missing file is
// created with the defaults; any other problem is logged and the defaults
// are returned.
func LoadState() *State {
	path, err := statePath()
	if err != nil {
		log.ErrorLog.Printf("%v", err)
		return DefaultState()
	}

	data, err := readLocked(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		state := DefaultState()
		if err := SaveState(state); err != nil {
			log.WarningLog.Printf("failed to save default state: %v", err)
		}
		return state
	case err != nil:
		log.WarningLog.Printf("failed to read state file: %v", err)
		return DefaultState()
	}

	state := DefaultState()
	if err := json.Unmarshal(data, state); err != nil {
		log.ErrorLog.Printf("ignoring corrupt state file %s: %v", path, err)
		return DefaultState()
	}
	return state
}

// SaveState writes the state file under an exclusive lock.
func SaveState(state *State) error {
	path, err := statePath()
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}
	return writeLocked(path, data)
}

// ResetState overwrites the state file with the defaults.
func ResetState() error {
	return SaveState(DefaultState())
}

func readLocked(path string) ([]byte, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}
	lock := NewFileLock(path)
	if err := lock.RLock(); err != nil {
		log.WarningLog.Printf("reading %s without a lock: %v", path, err)
		return os.ReadFile(path)
	}
	defer lock.Unlock()
	return os.ReadFile(path)
}

func writeLocked(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	lock := NewFileLock(path)
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("failed to acquire write lock: %w", err)
	}
	defer lock.Unlock()
	return os.WriteFile(path, data, 0644)
}

func (s *State) GetHelpScreensSeen() uint32 {
	return s.HelpScreensSeen
}

func (s *State) SetHelpScreensSeen(seen uint32) error {
	s.HelpScreensSeen = seen
	return SaveState(s)
}

func (s *State) GetLastDirectory() string {
	return s.LastDirectory
}

// SetLastDirectory is a no-op when dir is already recorded.
func (s *State) SetLastDirectory(dir string) error {
	if s.LastDirectory == dir {
		return nil
	}
	s.LastDirectory = dir
	return SaveState(s)
}
