package app

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"door-import/log"
	"door-import/ui/layout"
	"door-import/ui/overlay"
)

type helpText interface {
	// toContent returns the help UI content.
	toContent() string
	// mask returns the bit mask for this particular help text.
	mask() uint32
}

type helpTypeGeneral struct{}

type helpTypeDetail struct{}

type helpTypeImport struct{}

var (
	helpTitleStyle  = lipgloss.NewStyle().Bold(true).Underline(true).Foreground(lipgloss.Color("#7D56F4"))
	helpHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#36CFC9"))
	helpKeyStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFCC00"))
	helpDescStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#AAAAAA"))
	dismissStyle    = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("#888888"))
)

func helpLines(rows [][2]string) string {
	var b strings.Builder
	for i, row := range rows {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(helpKeyStyle.Width(9).Render(row[0]))
		b.WriteString(helpDescStyle.Render(" - " + row[1]))
	}
	return b.String()
}

func (h helpTypeGeneral) toContent() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		helpTitleStyle.Render("door-import"),
		"",
		"Collects CNC panel files (.mpr, .bpp, .cix) into an order with quantities.",
		"",
		helpHeaderStyle.Render("Order:"),
		helpLines([][2]string{
			{"o", "Open the file browser and import panel files"},
			{"↑/k ↓/j", "Select a panel"},
			{"+ / -", "Add or remove one piece of the selected panel"},
			{"u", "Undo the last removal"},
			{"X", "Remove every panel"},
			{"s", "Order summary: + / - change quantities, c completes the order"},
		}),
		"",
		helpHeaderStyle.Render("Panel:"),
		helpLines([][2]string{
			{"↵", "Detail view with zoom"},
			{"e", "Export as SVG or STL"},
			{"3", "Export the 3D model as STL"},
			{"y", "Copy the hole list to the clipboard"},
		}),
		"",
		helpHeaderStyle.Render("Other:"),
		helpLines([][2]string{
			{"?", "Show this help"},
			{"q", "Quit"},
		}),
	)
}

func (h helpTypeDetail) toContent() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		helpTitleStyle.Render("Detail view"),
		"",
		"The panel fills the screen and the drawable holes are listed below it.",
		"",
		helpLines([][2]string{
			{"+ / -", "Zoom in and out around the panel centre"},
			{"0", "Reset the zoom"},
			{"esc", "Back to the order"},
		}),
	)
}

func (h helpTypeImport) toContent() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		helpTitleStyle.Render("Importing panels"),
		"",
		"Only folders and supported panel files are listed.",
		"",
		helpLines([][2]string{
			{"space", "Mark a file"},
			{"a", "Mark every listed file"},
			{"↵", "Import the marked files, or the file under the cursor"},
			{"u", "Go to the parent folder"},
			{"esc", "Close the browser"},
		}),
	)
}

func (h helpTypeGeneral) mask() uint32 {
	return 1
}

func (h helpTypeDetail) mask() uint32 {
	return 1 << 1
}

func (h helpTypeImport) mask() uint32 {
	return 1 << 2
}

// showHelpScreen displays the help screen overlay if it hasn't been shown
// before. The general help is always shown. onDismiss runs when the overlay
// closes, or right away when nothing is shown.
func (m *home) showHelpScreen(helpType helpText, onDismiss func()) {
	flag := helpType.mask()
	_, general := helpType.(helpTypeGeneral)
	seen := m.appState.GetHelpScreensSeen()

	if seen&flag != 0 && !general {
		if onDismiss != nil {
			onDismiss()
		}
		return
	}

	if seen&flag == 0 {
		if err := m.appState.SetHelpScreensSeen(seen | flag); err != nil {
			log.WarningLog.Printf("failed to save help screen state: %v", err)
		}
	}

	content := helpType.toContent() + "\n\n" + dismissStyle.Render("Press any key to close")
	m.textOverlay = overlay.NewTextOverlay(content)
	m.textOverlay.OnDismiss = onDismiss
	m.textOverlay.SetWidth(layout.OverlayWidth(m.layout.Width, 70))
	m.helpReturnState = m.state
	m.state = stateHelp
}

// handleHelpState closes the help overlay on any key and restores the state
// it was opened from.
func (m *home) handleHelpState(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.state = m.helpReturnState
	if m.textOverlay != nil {
		m.textOverlay.HandleKeyPress(msg)
	}
	m.textOverlay = nil
	return m, nil
}
