package ui

import "github.com/charmbracelet/lipgloss"

// Semantic color palette shared by the list, preview and summary panes.
var (
	// Primary is the accent/focus color
	Primary = lipgloss.AdaptiveColor{Light: "#7D56F4", Dark: "#7D56F4"}

	// Border is the default border color
	Border = lipgloss.AdaptiveColor{Light: "#D1D5DB", Dark: "#3C3C3C"}

	// TextPrimary is the main text color
	TextPrimary = lipgloss.AdaptiveColor{Light: "#1a1a1a", Dark: "#dddddd"}

	// TextSecondary is for dimensions and other secondary text
	TextSecondary = lipgloss.AdaptiveColor{Light: "#4B5563", Dark: "#9CA3AF"}

	// TextMuted is for hints and subtle text
	TextMuted = lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: "#6B7280"}

	// BackgroundSelected is for the selected list entry
	BackgroundSelected = lipgloss.AdaptiveColor{Light: "#dde4f0", Dark: "#dde4f0"}

	// HoleColor matches the red used for holes in the SVG exports.
	HoleColor = lipgloss.AdaptiveColor{Light: "#DC2626", Dark: "#EF4444"}

	// WarningColor flags holes that could not be parsed.
	WarningColor = lipgloss.AdaptiveColor{Light: "#F59E0B", Dark: "#F59E0B"}

	// SuccessColor is used for confirmations such as a saved export.
	SuccessColor = lipgloss.AdaptiveColor{Light: "#22C55E", Dark: "#22C55E"}
)

// Icons used next to counts, so the meaning survives without color.
const (
	IconHole    = "●"
	IconWarning = "!"
	IconDone    = "+"
)

// TextStyles contains pre-built styles for text elements
var TextStyles = struct {
	Primary   lipgloss.Style
	Secondary lipgloss.Style
	Muted     lipgloss.Style
	Warning   lipgloss.Style
	Success   lipgloss.Style
}{
	Primary:   lipgloss.NewStyle().Foreground(TextPrimary),
	Secondary: lipgloss.NewStyle().Foreground(TextSecondary),
	Muted:     lipgloss.NewStyle().Foreground(TextMuted),
	Warning:   lipgloss.NewStyle().Foreground(WarningColor),
	Success:   lipgloss.NewStyle().Foreground(SuccessColor),
}

// BadgeStyle creates a styled badge with the given color
func BadgeStyle(color lipgloss.TerminalColor) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(color).
		Padding(0, 1)
}

// PaneStyle frames the preview and summary panes.
func PaneStyle(focused bool) lipgloss.Style {
	color := Border
	if focused {
		color = Primary
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(color).
		Padding(0, 1)
}
