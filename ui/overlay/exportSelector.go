package overlay

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ExportFormat identifies an export target.
type ExportFormat string

const (
	ExportCardSVG   ExportFormat = "card-svg"
	ExportDetailSVG ExportFormat = "detail-svg"
	ExportSTL       ExportFormat = "stl"
)

// ExportOption is one selectable export target.
type ExportOption struct {
	Format      ExportFormat
	Name        string
	Description string
}

var exportOptions = []ExportOption{
	{
		Format:      ExportCardSVG,
		Name:        "Card SVG",
		Description: "Panel scaled to the card height with dimension labels.",
	},
	{
		Format:      ExportDetailSVG,
		Name:        "Detail SVG",
		Description: "Panel at 1 unit per millimetre.",
	},
	{
		Format:      ExportSTL,
		Name:        "3D model (STL)",
		Description: "Board with a cylinder per hole, for any STL viewer.",
	},
}

// ExportSelectorOverlay lets the user pick what to export for a panel.
type ExportSelectorOverlay struct {
	Dismissed bool
	Selected  ExportFormat

	panelName string
	cursor    int
	width     int
}

// NewExportSelectorOverlay creates an export selector for the named panel.
func NewExportSelectorOverlay(panelName string) *ExportSelectorOverlay {
	return &ExportSelectorOverlay{
		panelName: panelName,
		width:     60,
	}
}

// HandleKeyPress processes a key press and reports whether the overlay
// should close. Selected is empty when the overlay was cancelled.
func (e *ExportSelectorOverlay) HandleKeyPress(msg tea.KeyMsg) bool {
	switch msg.String() {
	case "up", "k":
		e.moveCursor(-1)
	case "down", "j":
		e.moveCursor(1)
	case "enter":
		e.Selected = exportOptions[e.cursor].Format
		e.Dismissed = true
		return true
	case "esc", "q":
		e.Dismissed = true
		return true
	}
	return false
}

// moveCursor moves the cursor, wrapping around at either end.
func (e *ExportSelectorOverlay) moveCursor(delta int) {
	e.cursor = (e.cursor + delta + len(exportOptions)) % len(exportOptions)
}

// Render renders the export selector overlay
func (e *ExportSelectorOverlay) Render(opts ...WhitespaceOption) string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FFFFFF"))

	selectedStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#7aa2f7")).
		Bold(true)

	normalStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#AAAAAA"))

	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#888888")).
		PaddingLeft(4)

	var content strings.Builder
	content.WriteString(titleStyle.Render("Export " + e.panelName))
	content.WriteString("\n\n")

	for i, opt := range exportOptions {
		prefix, nameStyle := "  ", normalStyle
		if i == e.cursor {
			prefix, nameStyle = "> ", selectedStyle
		}
		content.WriteString(prefix)
		content.WriteString(nameStyle.Render(opt.Name))
		content.WriteString("\n")
		content.WriteString(descStyle.Render(opt.Description))
		content.WriteString("\n\n")
	}

	content.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("#666666")).Render(
		"[Enter] Export  [Esc] Cancel  [↑/↓] Navigate"))

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#7aa2f7")).
		Padding(1, 2).
		Width(e.width).
		Render(content.String())
}

// SetWidth sets the width of the overlay
func (e *ExportSelectorOverlay) SetWidth(width int) {
	e.width = width
}
