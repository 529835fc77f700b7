package overlay

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// TextOverlay shows a block of text until any key is pressed.
type TextOverlay struct {
	// Dismissed is set once a key was pressed.
	Dismissed bool
	// OnDismiss runs when the overlay is dismissed.
	OnDismiss func()

	content string
	width   int
}

// NewTextOverlay creates a text overlay with the given content.
func NewTextOverlay(content string) *TextOverlay {
	return &TextOverlay{
		content: content,
	}
}

// HandleKeyPress dismisses the overlay. It always returns true.
func (t *TextOverlay) HandleKeyPress(msg tea.KeyMsg) bool {
	t.Dismissed = true
	if t.OnDismiss != nil {
		t.OnDismiss()
	}
	return true
}

// Render renders the text overlay
func (t *TextOverlay) Render(opts ...WhitespaceOption) string {
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("62")).
		Padding(1, 2)
	if t.width > 0 {
		style = style.Width(t.width)
	}
	return style.Render(t.content)
}

func (t *TextOverlay) SetWidth(width int) {
	t.width = width
}
