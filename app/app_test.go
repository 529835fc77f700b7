package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"door-import/config"
	"door-import/order"
	"door-import/panel"
	"door-import/testing/harness"
	"door-import/testing/snapshot"
	"door-import/watch"
)

const doorMPR = `[H
BSX=800
BSY=400
<102 \BohrVert\
XA="100"
YA="50"
DU="8"
TI="12"
`

// memState keeps AppState in memory.
type memState struct {
	seen uint32
	dir  string
}

func (s *memState) GetHelpScreensSeen() uint32 { return s.seen }

func (s *memState) SetHelpScreensSeen(seen uint32) error {
	s.seen = seen
	return nil
}

func (s *memState) GetLastDirectory() string { return s.dir }

func (s *memState) SetLastDirectory(dir string) error {
	s.dir = dir
	return nil
}

func testPanel(name string, holes ...panel.Hole) *panel.Panel {
	return &panel.Panel{Name: name, Format: panel.FormatMPR, Width: 400, Height: 800, Holes: holes}
}

type fixture struct {
	h     *harness.Harness
	home  *home
	cfg   *config.Config
	state *memState
	store *order.Store
}

func newFixture(t *testing.T, state *memState, panels ...*panel.Panel) *fixture {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	cfg := &config.Config{
		OutputDir:     t.TempDir(),
		CardHeight:    200,
		DefaultDepth:  10,
		UndoTimeoutMs: 20,
		StartDir:      t.TempDir(),
	}
	store := order.NewStore(t.TempDir())
	m := newHome(ctx, cfg, state, store, Options{Panels: panels})
	return &fixture{
		h:     harness.New(t, m, 120, 40),
		home:  m,
		cfg:   cfg,
		state: state,
		store: store,
	}
}

func seenAll() *memState {
	return &memState{seen: ^uint32(0)}
}

func quantities(o *order.Order) []int {
	var q []int
	for _, e := range o.Entries() {
		q = append(q, e.Quantity)
	}
	return q
}

func TestQuantityAndUndo(t *testing.T) {
	f := newFixture(t, seenAll(), testPanel("a.mpr"), testPanel("b.mpr"))

	f.h.Press("+")
	assert.Equal(t, []int{2, 1}, quantities(f.home.order))
	assert.Contains(t, snapshot.StripANSI(f.h.View()), "total 3")

	f.h.Press("-", "-")
	assert.Equal(t, []int{1}, quantities(f.home.order))
	assert.True(t, f.home.toast.Visible())
	assert.Contains(t, snapshot.StripANSI(f.h.View()), "Removed a. Press u to undo.")

	f.h.Press("u")
	assert.Equal(t, []int{1, 1}, quantities(f.home.order))
	assert.False(t, f.home.toast.Visible())
	e, ok := f.home.list.Selected()
	require.True(t, ok)
	assert.Equal(t, "a.mpr", e.Panel.Name)
}

func TestUndoExpires(t *testing.T) {
	f := newFixture(t, seenAll(), testPanel("a.mpr"))

	f.h.Run(f.h.Press("-"), time.Second)
	assert.Zero(t, f.home.order.Len())
	assert.False(t, f.home.toast.Visible())

	f.h.Press("u")
	assert.Zero(t, f.home.order.Len(), "nothing to undo after the timeout")
}

func TestStaleUndoExpiryIgnored(t *testing.T) {
	f := newFixture(t, seenAll(), testPanel("a.mpr"), testPanel("b.mpr"))

	f.h.Press("-")
	stale := f.home.undoGen
	f.h.Press("-")
	f.h.Send(undoExpiredMsg{gen: stale})
	assert.True(t, f.home.toast.Visible())

	f.h.Press("u")
	require.Equal(t, 1, f.home.order.Len())
	e, _ := f.home.order.Entry(0)
	assert.Equal(t, "b.mpr", e.Panel.Name)
}

func TestRemoveAllNeedsConfirmation(t *testing.T) {
	f := newFixture(t, seenAll(), testPanel("a.mpr"), testPanel("b.mpr"))

	f.h.Press("X")
	assert.Equal(t, stateConfirm, f.home.state)
	assert.Contains(t, snapshot.StripANSI(f.h.View()), "Remove all 2 panels")
	f.h.Press("n")
	assert.Equal(t, stateDefault, f.home.state)
	assert.Equal(t, 2, f.home.order.Len())

	f.h.Press("X", "y")
	assert.Equal(t, stateDefault, f.home.state)
	assert.Zero(t, f.home.order.Len())
	assert.Contains(t, snapshot.StripANSI(f.h.View()), "No panels yet")
}

func TestSummaryQuantityControls(t *testing.T) {
	f := newFixture(t, seenAll(), testPanel("a.mpr"), testPanel("b.mpr"))

	f.h.Press("s", "down", "+")
	assert.Equal(t, []int{1, 2}, quantities(f.home.order))
	assert.Contains(t, snapshot.StripANSI(f.h.View()), "2 panels, 3 pieces")

	f.h.Press("-", "-")
	assert.Equal(t, []int{1}, quantities(f.home.order))
	assert.Equal(t, stateSummary, f.home.state)
	assert.Equal(t, 0, f.home.summary.Selected())
	assert.True(t, f.home.toast.Visible())
	view := snapshot.StripANSI(f.h.View())
	assert.Contains(t, view, "1 panels, 1 pieces")
	assert.Contains(t, view, "Removed b. Press u to undo.")

	f.h.Press("u")
	assert.Equal(t, []int{1, 1}, quantities(f.home.order))
	assert.Equal(t, 1, f.home.summary.Selected())
	assert.False(t, f.home.toast.Visible())
	assert.Contains(t, snapshot.StripANSI(f.h.View()), "2 panels, 2 pieces")
}

func TestSummaryAndComplete(t *testing.T) {
	f := newFixture(t, seenAll(), testPanel("a.mpr"), testPanel("b.mpr"))
	f.h.Press("+")

	f.h.Press("s")
	assert.Equal(t, stateSummary, f.home.state)
	view := snapshot.StripANSI(f.h.View())
	assert.Contains(t, view, "Order summary")
	assert.Contains(t, view, "2 panels, 3 pieces")

	f.h.Press("esc")
	assert.Equal(t, stateDefault, f.home.state)

	f.h.Press("s")
	f.h.Run(f.h.Press("c"), time.Second)
	assert.Equal(t, stateDefault, f.home.state)
	assert.Zero(t, f.home.order.Len())
	assert.Contains(t, f.home.errBox.Message(), "receipt saved")

	receipts, err := f.store.List()
	require.NoError(t, err)
	require.Len(t, receipts, 1)
	assert.Equal(t, 3, receipts[0].Total)

	f.h.Press("s")
	assert.Contains(t, snapshot.StripANSI(f.h.View()), "Last completed order: just now, 3 pieces")
}

func TestCompleteEmptyOrder(t *testing.T) {
	f := newFixture(t, seenAll())
	f.h.Press("s", "c")
	assert.Equal(t, "the order is empty", f.home.errBox.Message())
	assert.Equal(t, stateSummary, f.home.state)
}

func TestDetailZoom(t *testing.T) {
	f := newFixture(t, seenAll(), testPanel("a.mpr", panel.Hole{X: 100, Y: 50, Diameter: 8, Depth: 12}))

	f.h.Press("enter")
	assert.Equal(t, stateDetail, f.home.state)
	assert.Contains(t, snapshot.StripANSI(f.h.View()), "zoom 100%")

	f.h.Press("+", "+")
	assert.InDelta(t, 1.2, f.home.preview.Zoom(), 1e-9)
	assert.Equal(t, []int{1}, quantities(f.home.order), "+ zooms in detail view")

	f.h.Press("0")
	assert.Equal(t, panel.DefaultZoom, f.home.preview.Zoom())

	f.h.Press("esc")
	assert.Equal(t, stateDefault, f.home.state)
	assert.False(t, f.home.preview.Detail())
}

func TestExportSTL(t *testing.T) {
	f := newFixture(t, seenAll(), testPanel("a.mpr", panel.Hole{X: 100, Y: 50, Diameter: 8, Depth: 12}))

	f.h.Run(f.h.Press("3"), time.Second)

	data, err := os.ReadFile(filepath.Join(f.cfg.OutputDir, "a.stl"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "solid")
	assert.Contains(t, f.home.errBox.Message(), "Exported")
}

func TestExportSelector(t *testing.T) {
	f := newFixture(t, seenAll(), testPanel("a.mpr", panel.Hole{X: 100, Y: 50, Diameter: 8, Depth: 12}))

	f.h.Press("e")
	assert.Equal(t, stateExport, f.home.state)
	assert.Contains(t, snapshot.StripANSI(f.h.View()), "Export a")

	f.h.Run(f.h.Press("down", "enter"), time.Second)
	assert.Equal(t, stateDefault, f.home.state)
	data, err := os.ReadFile(filepath.Join(f.cfg.OutputDir, "a-detail.svg"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "<svg")

	f.h.Press("e", "esc")
	assert.Equal(t, stateDefault, f.home.state)
}

func TestCopyHoles(t *testing.T) {
	f := newFixture(t, seenAll(), testPanel("a.mpr", panel.Hole{X: 100, Y: 50, Diameter: 8, Depth: 12}), testPanel("b.mpr"))
	var copied string
	f.home.copyToClipboard = func(s string) error {
		copied = s
		return nil
	}

	f.h.Run(f.h.Press("y"), time.Second)
	assert.Equal(t, "1\tX: 100, Y: 50, Ø8, Depth: 12\n", copied)
	assert.Equal(t, "Copied 1 holes of a", f.home.errBox.Message())

	f.h.Press("down", "y")
	assert.Equal(t, "b has no holes to copy", f.home.errBox.Message())

	f.home.copyToClipboard = func(string) error { return errors.New("no clipboard") }
	f.h.Run(f.h.Press("up", "y"), time.Second)
	assert.Contains(t, f.home.errBox.Message(), "no clipboard")
}

func TestImportFromFileBrowser(t *testing.T) {
	state := seenAll()
	f := newFixture(t, state)
	require.NoError(t, os.WriteFile(filepath.Join(f.cfg.StartDir, "door.mpr"), []byte(doorMPR), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(f.cfg.StartDir, "notes.txt"), []byte("x"), 0644))

	f.h.Press("o")
	require.Equal(t, stateBrowse, f.home.state)
	view := snapshot.StripANSI(f.h.View())
	assert.Contains(t, view, "door.mpr")
	assert.NotContains(t, view, "notes.txt")

	f.h.Run(f.h.Press("enter"), time.Second)
	assert.Equal(t, stateDefault, f.home.state)
	require.Equal(t, 1, f.home.order.Len())
	e, _ := f.home.order.Entry(0)
	assert.Equal(t, 400.0, e.Panel.Width)
	assert.Len(t, e.Panel.ValidHoles(), 1)
	assert.Equal(t, "Imported 1 panels", f.home.errBox.Message())
	assert.Equal(t, f.cfg.StartDir, state.dir)
}

func TestImportReportsFailures(t *testing.T) {
	f := newFixture(t, seenAll())
	gone := filepath.Join(t.TempDir(), "gone.mpr")
	good := filepath.Join(t.TempDir(), "door.mpr")
	require.NoError(t, os.WriteFile(good, []byte(doorMPR), 0644))

	f.h.Run(f.home.startImport([]string{good, gone}), time.Second)
	assert.Equal(t, stateDefault, f.home.state)
	assert.Equal(t, 1, f.home.order.Len())
	assert.Contains(t, f.home.errBox.Message(), "imported 1 of 2 files")
}

func TestWatchEventAddsPanel(t *testing.T) {
	f := newFixture(t, seenAll(), testPanel("a.mpr"))

	f.h.Send(watchEventMsg(watch.Event{Path: "/drop/b.mpr", Panel: testPanel("b.mpr")}))
	assert.Equal(t, 2, f.home.order.Len())
	assert.Equal(t, "Added b from the watch folder", f.home.errBox.Message())

	f.h.Send(watchEventMsg(watch.Event{Path: "/drop/c.mpr", Err: errors.New("permission denied")}))
	assert.Equal(t, 2, f.home.order.Len())
	assert.Contains(t, f.home.errBox.Message(), "permission denied")
}

func TestHelpScreens(t *testing.T) {
	state := &memState{}
	f := newFixture(t, state, testPanel("a.mpr"))

	assert.Equal(t, stateHelp, f.home.state)
	assert.Contains(t, snapshot.StripANSI(f.h.View()), "Press any key to close")
	f.h.Press("x")
	assert.Equal(t, stateDefault, f.home.state)

	f.h.Press("enter")
	assert.Equal(t, stateHelp, f.home.state, "detail help is shown the first time")
	f.h.Press("x")
	assert.Equal(t, stateDetail, f.home.state)
	f.h.Press("esc", "enter")
	assert.Equal(t, stateDetail, f.home.state, "and only the first time")

	f.h.Press("?")
	assert.Equal(t, stateHelp, f.home.state)
	f.h.Press("x")
	assert.Equal(t, stateDetail, f.home.state)
	assert.NotZero(t, state.seen&helpTypeGeneral{}.mask())
	assert.NotZero(t, state.seen&helpTypeDetail{}.mask())
}

func TestViewAtSizes(t *testing.T) {
	harness.ForEachSize(t, func(t *testing.T, size harness.TerminalSize) {
		f := newFixture(t, seenAll(), testPanel("a.mpr", panel.Hole{X: 100, Y: 50, Diameter: 8, Depth: 12}))
		f.h.Resize(size.Width, size.Height)
		view := snapshot.StripANSI(f.h.View())
		assert.Contains(t, view, "Panels")
		assert.Contains(t, view, "total 1")
		assert.Contains(t, view, "●")
	})
}

func TestViewTooSmall(t *testing.T) {
	f := newFixture(t, seenAll())
	f.h.Resize(40, 10)
	assert.Contains(t, snapshot.StripANSI(f.h.View()), "Terminal too small")
}

func TestQuit(t *testing.T) {
	f := newFixture(t, seenAll())
	cmd := f.h.Press("q")
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestInspectSnapshot(t *testing.T) {
	f := newFixture(t, seenAll(), testPanel("a.mpr", panel.Hole{X: 100, Y: 50, Diameter: 8, Depth: 12}), testPanel("b.mpr"))
	f.h.Press("down", "+", "enter", "e")

	s := f.home.inspectSnapshot(f.h.View())
	assert.Equal(t, "detail", s.State)
	assert.Equal(t, "export", s.Overlay)
	assert.Equal(t, "standard", s.Layout.Mode)
	assert.Equal(t, 3, s.Order.Total)
	assert.Equal(t, 1, s.Order.Selected)
	require.Len(t, s.Order.Entries, 2)
	assert.Equal(t, "b", s.Order.Entries[1].Name)
	assert.Equal(t, 2, s.Order.Entries[1].Quantity)
	assert.Equal(t, 1, s.Order.Entries[0].Holes)
	assert.Contains(t, strings.Join(s.Screen, "\n"), "Export b")
}
