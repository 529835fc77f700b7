package overlay

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ConfirmationOverlay asks a yes/no question.
type ConfirmationOverlay struct {
	// Dismissed is set once the question was answered.
	Dismissed bool
	// OnConfirm runs when the user answers yes.
	OnConfirm func()
	// OnCancel runs when the user answers no or presses esc.
	OnCancel func()

	// ConfirmKey and CancelKey default to "y" and "n".
	ConfirmKey string
	CancelKey  string

	message     string
	width       int
	borderColor lipgloss.Color
}

// NewConfirmationOverlay creates a confirmation overlay with the given message
func NewConfirmationOverlay(message string) *ConfirmationOverlay {
	return &ConfirmationOverlay{
		message:     message,
		width:       50,
		ConfirmKey:  "y",
		CancelKey:   "n",
		borderColor: lipgloss.Color("#de613e"),
	}
}

// HandleKeyPress processes a key press and reports whether the overlay
// should close.
func (c *ConfirmationOverlay) HandleKeyPress(msg tea.KeyMsg) bool {
	switch msg.String() {
	case c.ConfirmKey:
		c.Dismissed = true
		if c.OnConfirm != nil {
			c.OnConfirm()
		}
		return true
	case c.CancelKey, "esc":
		c.Dismissed = true
		if c.OnCancel != nil {
			c.OnCancel()
		}
		return true
	}
	return false
}

// Render renders the confirmation overlay
func (c *ConfirmationOverlay) Render(opts ...WhitespaceOption) string {
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(c.borderColor).
		Padding(1, 2).
		Width(c.width)

	hint := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#888888")).
		Render(fmt.Sprintf("Press %s to confirm, %s to cancel", c.ConfirmKey, c.CancelKey))

	return style.Render(c.message + "\n\n" + hint)
}

// SetWidth sets the width of the confirmation overlay
func (c *ConfirmationOverlay) SetWidth(width int) {
	c.width = width
}

// SetBorderColor sets the border color of the confirmation overlay
func (c *ConfirmationOverlay) SetBorderColor(color lipgloss.Color) {
	c.borderColor = color
}
