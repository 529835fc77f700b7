// Package inspect dumps the state of the running TUI as JSON so scripts can
// check what is on screen. Set DOOR_IMPORT_INSPECT=1 to enable it; every
// frame then rewrites $TMPDIR/doorimport-inspect.json.
package inspect

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/x/ansi"
)

const EnvVar = "DOOR_IMPORT_INSPECT"

var (
	enabled     bool
	enabledOnce sync.Once
	inspectFile = filepath.Join(os.TempDir(), "doorimport-inspect.json")
)

// Enabled reports whether inspection was switched on by the environment.
func Enabled() bool {
	enabledOnce.Do(func() {
		enabled = os.Getenv(EnvVar) == "1"
	})
	return enabled
}

// File returns the path snapshots are written to.
func File() string {
	return inspectFile
}

// Snapshot is the state of one rendered frame.
type Snapshot struct {
	Timestamp time.Time `json:"timestamp"`
	Terminal  Size      `json:"terminal"`
	// State names the screen, such as "default", "detail" or "summary".
	State string `json:"state"`
	// Overlay names the modal on top of the screen, if any.
	Overlay string  `json:"overlay,omitempty"`
	Layout  Layout  `json:"layout"`
	Order   Order   `json:"order"`
	Zoom    float64 `json:"zoom"`
	Status  string  `json:"status,omitempty"`
	Toast   bool    `json:"toast"`
	// Screen is the rendered frame without escape sequences, one row per line.
	Screen []string `json:"screen"`
}

type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

type Layout struct {
	Mode    string `json:"mode"`
	List    Size   `json:"list"`
	Preview Size   `json:"preview"`
	Stack   bool   `json:"stack"`
}

type Order struct {
	Total    int     `json:"total"`
	Selected int     `json:"selected"`
	Entries  []Entry `json:"entries"`
}

type Entry struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Holes    int    `json:"holes"`
}

// ScreenLines splits a rendered frame into plain rows.
func ScreenLines(frame string) []string {
	lines := strings.Split(ansi.Strip(frame), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " ")
	}
	return lines
}

// Write stores the snapshot in File when inspection is enabled.
func Write(s *Snapshot) error {
	if !Enabled() {
		return nil
	}
	return WriteTo(s, inspectFile)
}

// WriteTo stores the snapshot at path.
func WriteTo(s *Snapshot, path string) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	return nil
}
