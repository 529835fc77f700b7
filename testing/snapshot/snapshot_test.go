package snapshot

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripANSI(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "door panel", "door panel"},
		{"color", "\x1b[31m●\x1b[0m", "●"},
		{"combined attributes", "\x1b[1;38;5;62m Panels \x1b[0m total", " Panels  total"},
		{"cursor", "\x1b[?25lhidden\x1b[?25h", "hidden"},
		{"hyperlink", "\x1b]8;;file:///tmp/a.svg\x1b\\a.svg\x1b]8;;\x1b\\", "a.svg"},
		{"bell terminated", "\x1b]0;title\x07body", "body"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripANSI(tt.input))
		})
	}
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "a\n b\n", Normalize("a  \r\n b\x1b[0m\t\r\n"))
}

func TestLinesAndWidth(t *testing.T) {
	screen := "┌──┐\n│\x1b[31m●\x1b[0m │\n└──┘"
	assert.Equal(t, 3, Lines(screen))
	assert.Equal(t, 4, Width(screen))
	assert.Equal(t, 1, Lines(""))
	assert.Equal(t, 0, Width(""))
}

func TestGoldenMatch(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "list.golden"), []byte(" 1. door\n ×2"), 0644))

	g := New(t).InDir(dir)
	g.Match("list", "\x1b[1m 1. door\x1b[0m   \n ×2")
	g.Contains("\x1b[1m×2\x1b[0m", "×2")
	g.NotContains("×2", "×3")
}

func TestGoldenUpdate(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "golden")
	t.Setenv(updateEnv, "1")

	New(t).InDir(dir).Match("summary", "total 4  ")

	data, err := os.ReadFile(filepath.Join(dir, "summary.golden"))
	require.NoError(t, err)
	assert.Equal(t, "total 4", string(data))
}
