// Package snapshot compares rendered screens with golden files stored under
// testdata/golden. Set UPDATE_GOLDEN=1 to rewrite them.
package snapshot

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const GoldenDir = "testdata/golden"

const updateEnv = "UPDATE_GOLDEN"

// Golden checks screens of one test against files in a directory.
type Golden struct {
	t      testing.TB
	dir    string
	update bool
}

func New(t testing.TB) *Golden {
	return &Golden{t: t, dir: GoldenDir, update: os.Getenv(updateEnv) == "1"}
}

// InDir uses dir instead of GoldenDir.
func (g *Golden) InDir(dir string) *Golden {
	g.dir = dir
	return g
}

// Match compares the normalized screen with <dir>/<name>.golden.
func (g *Golden) Match(name, screen string) {
	g.t.Helper()
	path := filepath.Join(g.dir, name+".golden")
	got := Normalize(screen)

	if g.update {
		require.NoError(g.t, os.MkdirAll(g.dir, 0755))
		require.NoError(g.t, os.WriteFile(path, []byte(got), 0644))
		g.t.Logf("wrote %s", path)
		return
	}

	want, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		g.t.Fatalf("missing golden file %s, run with %s=1 to create it\n%s", path, updateEnv, got)
	}
	require.NoError(g.t, err)
	assert.Equal(g.t, string(want), got, "screen %s differs from %s", name, path)
}

// Contains asserts that the plain text of screen includes substr.
func (g *Golden) Contains(screen, substr string) {
	g.t.Helper()
	assert.Contains(g.t, Normalize(screen), substr)
}

// NotContains asserts that the plain text of screen lacks substr.
func (g *Golden) NotContains(screen, substr string) {
	g.t.Helper()
	assert.NotContains(g.t, Normalize(screen), substr)
}

// Normalize strips escape sequences, CRLF line endings and trailing blanks.
func Normalize(s string) string {
	lines := strings.Split(strings.ReplaceAll(StripANSI(s), "\r\n", "\n"), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}

// StripANSI removes CSI and OSC escape sequences.
func StripANSI(s string) string {
	return ansi.Strip(s)
}

// Lines counts the rows of a rendered screen.
func Lines(s string) int {
	return strings.Count(s, "\n") + 1
}

// Width returns the widest row in terminal cells.
func Width(s string) int {
	w := 0
	for _, line := range strings.Split(StripANSI(s), "\n") {
		w = max(w, runewidth.StringWidth(line))
	}
	return w
}
