package overlay

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"
)

// LoadingOverlay shows a spinner while files are being parsed.
type LoadingOverlay struct {
	title   string
	status  string
	spinner *spinner.Model

	done, total int
	width       int
}

// NewLoadingOverlay creates a new loading screen overlay
func NewLoadingOverlay(title string, spinner *spinner.Model) *LoadingOverlay {
	return &LoadingOverlay{
		title:   title,
		spinner: spinner,
	}
}

// SetStatus updates the current status message
func (l *LoadingOverlay) SetStatus(status string) {
	l.status = status
}

// SetProgress records how many of total files are finished. A zero total
// hides the counter.
func (l *LoadingOverlay) SetProgress(done, total int) {
	l.done, l.total = done, total
}

// SetWidth sets the overlay width
func (l *LoadingOverlay) SetWidth(width int) {
	l.width = width
}

// Render renders the loading overlay
func (l *LoadingOverlay) Render(opts ...WhitespaceOption) string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("62"))

	statusStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("62")).
		Padding(1, 2).
		Width(l.width)

	content := titleStyle.Render(l.title) + "\n\n"
	if l.spinner != nil {
		content += l.spinner.View() + " "
	}
	content += statusStyle.Render(l.status)
	if l.total > 0 {
		content += statusStyle.Render(fmt.Sprintf(" (%d/%d)", l.done, l.total))
	}

	return boxStyle.Render(content)
}
