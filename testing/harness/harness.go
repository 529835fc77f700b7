// Package harness drives a Bubble Tea model without a terminal, so screens
// can be checked after a sequence of key presses.
package harness

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Harness owns a model and feeds it messages the way tea.Program would.
type Harness struct {
	t             testing.TB
	model         tea.Model
	width, height int
}

// New wraps model and sends it the initial window size.
func New(t testing.TB, model tea.Model, width, height int) *Harness {
	h := &Harness{t: t, model: model}
	h.Resize(width, height)
	return h
}

// Send updates the model with msg and returns the command it produced.
func (h *Harness) Send(msg tea.Msg) tea.Cmd {
	h.t.Helper()
	var cmd tea.Cmd
	h.model, cmd = h.model.Update(msg)
	return cmd
}

// Press sends one key message per name. Names such as "enter", "esc", "up"
// and "space" map to special keys; anything else is sent as runes.
func (h *Harness) Press(names ...string) tea.Cmd {
	h.t.Helper()
	var cmd tea.Cmd
	for _, name := range names {
		cmd = h.Send(KeyMsg(name))
	}
	return cmd
}

// Run executes cmd and feeds the resulting messages back into the model,
// following batches and any commands those messages produce. Commands that
// do not return within wait, such as ticks, are dropped.
func (h *Harness) Run(cmd tea.Cmd, wait time.Duration) {
	h.t.Helper()
	pending := []tea.Cmd{cmd}
	for len(pending) > 0 {
		next := pending[0]
		pending = pending[1:]
		if next == nil {
			continue
		}
		msg, ok := result(next, wait)
		if !ok || msg == nil {
			continue
		}
		if batch, isBatch := msg.(tea.BatchMsg); isBatch {
			pending = append(pending, batch...)
			continue
		}
		pending = append(pending, h.Send(msg))
	}
}

func result(cmd tea.Cmd, wait time.Duration) (tea.Msg, bool) {
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()
	select {
	case msg := <-ch:
		return msg, true
	case <-time.After(wait):
		return nil, false
	}
}

// Resize sends a window size message.
func (h *Harness) Resize(width, height int) tea.Cmd {
	h.width, h.height = width, height
	return h.Send(tea.WindowSizeMsg{Width: width, Height: height})
}

func (h *Harness) View() string {
	return h.model.View()
}

// Model returns the current model for type assertions.
func (h *Harness) Model() tea.Model {
	return h.model
}

func (h *Harness) Size() (int, int) {
	return h.width, h.height
}

var specialKeys = map[string]tea.KeyType{
	"enter":     tea.KeyEnter,
	"esc":       tea.KeyEsc,
	"up":        tea.KeyUp,
	"down":      tea.KeyDown,
	"left":      tea.KeyLeft,
	"right":     tea.KeyRight,
	"tab":       tea.KeyTab,
	"space":     tea.KeySpace,
	"backspace": tea.KeyBackspace,
	"ctrl+c":    tea.KeyCtrlC,
}

// KeyMsg builds the message bubbletea would deliver for a key name.
func KeyMsg(name string) tea.KeyMsg {
	if t, ok := specialKeys[name]; ok {
		if t == tea.KeySpace {
			return tea.KeyMsg{Type: t, Runes: []rune{' '}}
		}
		return tea.KeyMsg{Type: t}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(name)}
}

// TerminalSize is a named terminal geometry.
type TerminalSize struct {
	Name          string
	Width, Height int
}

// Sizes covers the small and large terminals screens are checked at.
var Sizes = []TerminalSize{
	{Name: "small", Width: 80, Height: 24},
	{Name: "standard", Width: 120, Height: 40},
	{Name: "wide", Width: 200, Height: 30},
	{Name: "tall", Width: 90, Height: 60},
}

// ForEachSize runs fn as a subtest per size.
func ForEachSize(t *testing.T, fn func(t *testing.T, size TerminalSize)) {
	for _, size := range Sizes {
		t.Run(size.Name, func(t *testing.T) {
			fn(t, size)
		})
	}
}
