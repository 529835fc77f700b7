package overlay

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"door-import/testing/snapshot"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestPlaceOverlayCentered(t *testing.T) {
	bg := strings.Repeat(strings.Repeat(".", 10)+"\n", 4) + strings.Repeat(".", 10)
	got := PlaceOverlay(0, 0, "ab\ncd", bg, false, true)

	lines := strings.Split(got, "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "..........", lines[0])
	assert.Equal(t, "....ab....", lines[1])
	assert.Equal(t, "....cd....", lines[2])
	assert.Equal(t, "..........", lines[3])
}

func TestPlaceOverlayAtPosition(t *testing.T) {
	got := PlaceOverlay(1, 0, "X", "abc\ndef", false, false)
	assert.Equal(t, "aXc\ndef", got)
}

func TestPlaceOverlayKeepsStyledBackground(t *testing.T) {
	bg := "\x1b[31mredred\x1b[0m\nplain!"
	got := PlaceOverlay(2, 0, "--", bg, false, false)
	assert.Equal(t, "re--ed\nplain!", snapshot.StripANSI(got))
}

func TestPlaceOverlayLargerThanBackground(t *testing.T) {
	assert.Equal(t, "big\nbox", PlaceOverlay(0, 0, "big\nbox", "x", false, true))
}

func TestConfirmationOverlay(t *testing.T) {
	var confirmed, cancelled bool
	c := NewConfirmationOverlay("Remove all panels?")
	c.OnConfirm = func() { confirmed = true }
	c.OnCancel = func() { cancelled = true }

	assert.False(t, c.HandleKeyPress(key("x")))
	assert.True(t, c.HandleKeyPress(key("y")))
	assert.True(t, confirmed)
	assert.False(t, cancelled)

	c = NewConfirmationOverlay("Remove all panels?")
	c.OnCancel = func() { cancelled = true }
	assert.True(t, c.HandleKeyPress(key("esc")))
	assert.True(t, cancelled)

	assert.Contains(t, snapshot.StripANSI(c.Render()), "Press y to confirm, n to cancel")
}

func TestTextOverlay(t *testing.T) {
	dismissed := false
	o := NewTextOverlay("hello")
	o.OnDismiss = func() { dismissed = true }
	assert.Contains(t, o.Render(), "hello")
	assert.True(t, o.HandleKeyPress(key("a")))
	assert.True(t, dismissed)
}

func TestExportSelector(t *testing.T) {
	e := NewExportSelectorOverlay("door")
	assert.Contains(t, snapshot.StripANSI(e.Render()), "Export door")

	assert.False(t, e.HandleKeyPress(key("k")), "wraps to the last option")
	assert.True(t, e.HandleKeyPress(key("enter")))
	assert.Equal(t, ExportSTL, e.Selected)

	e = NewExportSelectorOverlay("door")
	assert.True(t, e.HandleKeyPress(key("esc")))
	assert.Empty(t, e.Selected)
}

func TestLoadingOverlay(t *testing.T) {
	l := NewLoadingOverlay("Importing", nil)
	l.SetWidth(40)
	l.SetStatus("parsing")
	l.SetProgress(2, 5)
	out := snapshot.StripANSI(l.Render())
	assert.Contains(t, out, "Importing")
	assert.Contains(t, out, "parsing (2/5)")
}

func browserDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0755))
	for _, name := range []string{"b.mpr", "a.bpp", "C.MPR", "notes.txt", ".hidden.cix", "sub/c.cix"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0644))
	}
	return dir
}

func TestFileBrowserListsPanelFiles(t *testing.T) {
	dir := browserDir(t)
	fb, err := NewFileBrowserOverlay(dir)
	require.NoError(t, err)
	fb.SetSize(80, 30)

	var names []string
	for _, e := range fb.entries[1:] {
		names = append(names, e.Name)
	}
	assert.Equal(t, []string{"sub", "a.bpp", "b.mpr"}, names)
	assert.Equal(t, dir, fb.Dir())

	out := snapshot.StripANSI(fb.Render())
	assert.Contains(t, out, "Import Panel Files")
	assert.NotContains(t, out, "notes.txt")
	assert.NotContains(t, out, "C.MPR")
}

func TestFileBrowserMultiSelect(t *testing.T) {
	dir := browserDir(t)
	fb, err := NewFileBrowserOverlay(dir)
	require.NoError(t, err)
	fb.SetSize(80, 30)

	fb.HandleKeyPress(key("down")) // a.bpp
	fb.HandleKeyPress(key("space"))
	assert.Equal(t, 1, fb.MarkedCount())
	fb.HandleKeyPress(key("space")) // b.mpr, cursor moved after marking
	assert.Equal(t, 2, fb.MarkedCount())

	assert.True(t, fb.HandleKeyPress(key("enter")))
	assert.True(t, fb.IsSubmitted())
	assert.Equal(t, []string{filepath.Join(dir, "a.bpp"), filepath.Join(dir, "b.mpr")}, fb.SelectedPaths)
}

func TestFileBrowserEnterOnFolderExpands(t *testing.T) {
	dir := browserDir(t)
	fb, err := NewFileBrowserOverlay(dir)
	require.NoError(t, err)
	fb.SetSize(80, 30)

	assert.False(t, fb.HandleKeyPress(key("enter")), "enter on a folder opens it")
	fb.HandleKeyPress(key("down"))
	assert.Equal(t, "c.cix", fb.current().Name)

	assert.True(t, fb.HandleKeyPress(key("enter")))
	assert.Equal(t, []string{filepath.Join(dir, "sub", "c.cix")}, fb.SelectedPaths)
}

func TestFileBrowserGoUpAndCancel(t *testing.T) {
	dir := browserDir(t)
	fb, err := NewFileBrowserOverlay(filepath.Join(dir, "sub"))
	require.NoError(t, err)

	fb.HandleKeyPress(key("u"))
	assert.Equal(t, dir, fb.Dir())

	assert.True(t, fb.HandleKeyPress(key("esc")))
	assert.True(t, fb.IsCanceled())
	assert.False(t, fb.IsSubmitted())
}

func TestFileBrowserRejectsFile(t *testing.T) {
	dir := browserDir(t)
	_, err := NewFileBrowserOverlay(filepath.Join(dir, "b.mpr"))
	assert.Error(t, err)
}
