package harness

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

type countMsg struct{}

// counter counts presses of "+" and remembers the last size it saw.
type counter struct {
	n, width int
	keys     []string
}

func (c counter) Init() tea.Cmd { return nil }

func (c counter) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		c.width = msg.Width
	case tea.KeyMsg:
		c.keys = append(c.keys, msg.String())
		if msg.String() == "+" {
			return c, func() tea.Msg { return countMsg{} }
		}
		if msg.String() == "b" {
			return c, tea.Batch(
				func() tea.Msg { return countMsg{} },
				func() tea.Msg { return countMsg{} },
				tea.Tick(time.Hour, func(time.Time) tea.Msg { return countMsg{} }),
			)
		}
	case countMsg:
		c.n++
	}
	return c, nil
}

func (c counter) View() string { return "" }

func TestPressAndRun(t *testing.T) {
	h := New(t, counter{}, 80, 24)
	assert.Equal(t, 80, h.Model().(counter).width)

	h.Run(h.Press("+"), time.Second)
	assert.Equal(t, 1, h.Model().(counter).n)

	h.Run(h.Press("b"), 50*time.Millisecond)
	assert.Equal(t, 3, h.Model().(counter).n, "the tick is dropped")

	h.Press("enter", "esc", "space", "x")
	assert.Equal(t, []string{"+", "b", "enter", "esc", " ", "x"}, h.Model().(counter).keys)
}

func TestResize(t *testing.T) {
	h := New(t, counter{}, 80, 24)
	h.Resize(120, 40)
	w, ht := h.Size()
	assert.Equal(t, 120, w)
	assert.Equal(t, 40, ht)
	assert.Equal(t, 120, h.Model().(counter).width)
}

func TestForEachSize(t *testing.T) {
	seen := 0
	ForEachSize(t, func(t *testing.T, size TerminalSize) {
		seen++
		assert.Positive(t, size.Width)
	})
	assert.Len(t, Sizes, seen)
}
