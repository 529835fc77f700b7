package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"door-import/keys"
)

var keyStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{
	Light: "#655F5F",
	Dark:  "#7F7A7A",
})

var descStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{
	Light: "#7A7474",
	Dark:  "#9C9494",
})

var sepStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{
	Light: "#DDDADA",
	Dark:  "#3C3C3C",
})

var actionGroupStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("99"))

var separator = " • "
var verticalSeparator = " │ "

var menuStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("205"))

// MenuState represents different states the menu can be in
type MenuState int

const (
	StateDefault MenuState = iota
	StateEmpty
	StateDetail
	StateSummary
)

// menuGroups holds the options of each state split into groups. The
// group at actionGroup is highlighted.
var menuGroups = map[MenuState][][]keys.KeyName{
	StateEmpty: {
		{keys.KeyOpen},
		{keys.KeyUndo, keys.KeyHelp, keys.KeyQuit},
	},
	StateDefault: {
		{keys.KeyUp, keys.KeyDown, keys.KeyIncrease, keys.KeyDecrease, keys.KeyUndo, keys.KeyRemoveAll},
		{keys.KeyEnter, keys.KeyExportSVG, keys.KeyExportSTL, keys.KeyCopy, keys.KeySummary},
		{keys.KeyOpen, keys.KeyHelp, keys.KeyQuit},
	},
	StateDetail: {
		{keys.KeyZoomIn, keys.KeyZoomOut, keys.KeyZoomReset},
		{keys.KeyExportSVG, keys.KeyExportSTL, keys.KeyCopy},
		{keys.KeyBack, keys.KeyQuit},
	},
	StateSummary: {
		{keys.KeyUp, keys.KeyDown, keys.KeyIncrease, keys.KeyDecrease, keys.KeyUndo},
		{keys.KeyComplete},
		{keys.KeyBack, keys.KeyQuit},
	},
}

const actionGroup = 1

type Menu struct {
	groups        [][]keys.KeyName
	height, width int
	state         MenuState

	// keyDown is the key which is pressed. The default is -1.
	keyDown keys.KeyName
}

func NewMenu() *Menu {
	return &Menu{
		groups:  menuGroups[StateEmpty],
		state:   StateEmpty,
		keyDown: -1,
	}
}

func (m *Menu) Keydown(name keys.KeyName) {
	m.keyDown = name
}

func (m *Menu) ClearKeydown() {
	m.keyDown = -1
}

// SetState updates the menu state and options accordingly
func (m *Menu) SetState(state MenuState) {
	m.state = state
	m.groups = menuGroups[state]
}

// State returns the current menu state.
func (m *Menu) State() MenuState {
	return m.state
}

// SetHasPanels switches between the empty and default menus. The detail and
// summary menus are left alone.
func (m *Menu) SetHasPanels(hasPanels bool) {
	if m.state != StateDefault && m.state != StateEmpty {
		return
	}
	if hasPanels {
		m.SetState(StateDefault)
	} else {
		m.SetState(StateEmpty)
	}
}

// SetSize sets the width of the window. The menu will be centered horizontally within this width.
func (m *Menu) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Menu) String() string {
	var s strings.Builder

	for g, group := range m.groups {
		for i, k := range group {
			binding := keys.GlobalkeyBindings[k]

			var (
				localActionStyle = actionGroupStyle
				localKeyStyle    = keyStyle
				localDescStyle   = descStyle
			)
			if m.keyDown == k {
				localActionStyle = localActionStyle.Underline(true)
				localKeyStyle = localKeyStyle.Underline(true)
				localDescStyle = localDescStyle.Underline(true)
			}

			if g == actionGroup {
				s.WriteString(localActionStyle.Render(binding.Help().Key))
				s.WriteString(" ")
				s.WriteString(localActionStyle.Render(binding.Help().Desc))
			} else {
				s.WriteString(localKeyStyle.Render(binding.Help().Key))
				s.WriteString(" ")
				s.WriteString(localDescStyle.Render(binding.Help().Desc))
			}

			switch {
			case i < len(group)-1:
				s.WriteString(sepStyle.Render(separator))
			case g < len(m.groups)-1:
				s.WriteString(sepStyle.Render(verticalSeparator))
			}
		}
	}

	centeredMenuText := menuStyle.Render(s.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, centeredMenuText)
}
