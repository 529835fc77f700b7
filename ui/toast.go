package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

var toastStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(WarningColor).
	Padding(0, 1)

var toastKeyStyle = lipgloss.NewStyle().
	Foreground(Primary).
	Bold(true)

// Toast announces a removed panel that can still be restored.
type Toast struct {
	name    string
	visible bool
}

func NewToast() *Toast {
	return &Toast{}
}

// Show displays the toast for the named panel.
func (t *Toast) Show(name string) {
	t.name = name
	t.visible = true
}

func (t *Toast) Hide() {
	t.visible = false
	t.name = ""
}

func (t *Toast) Visible() bool {
	return t.visible
}

func (t *Toast) String() string {
	if !t.visible {
		return ""
	}
	return toastStyle.Render(fmt.Sprintf("Removed %s. Press %s to undo.", t.name, toastKeyStyle.Render("u")))
}
