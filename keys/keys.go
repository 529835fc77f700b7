package keys

import (
	"github.com/charmbracelet/bubbles/key"
)

type KeyName int

const (
	KeyUp KeyName = iota
	KeyDown
	KeyIncrease
	KeyDecrease
	KeyUndo
	KeyRemoveAll
	KeySummary
	KeyComplete
	KeyEnter
	KeyBack
	KeyOpen
	KeyExportSVG
	KeyExportSTL
	KeyCopy
	KeyZoomReset
	KeyHelp
	KeyQuit

	// Detail view aliases. They share keys with KeyIncrease and KeyDecrease
	// and only exist so the menu can describe them differently.
	KeyZoomIn
	KeyZoomOut
)

// GlobalKeyStringsMap is a global, immutable map string to keybinding.
var GlobalKeyStringsMap = map[string]KeyName{
	"up":    KeyUp,
	"k":     KeyUp,
	"down":  KeyDown,
	"j":     KeyDown,
	"+":     KeyIncrease,
	"=":     KeyIncrease,
	"-":     KeyDecrease,
	"_":     KeyDecrease,
	"u":     KeyUndo,
	"X":     KeyRemoveAll,
	"s":     KeySummary,
	"c":     KeyComplete,
	"enter": KeyEnter,
	"esc":   KeyBack,
	"o":     KeyOpen,
	"e":     KeyExportSVG,
	"3":     KeyExportSTL,
	"y":     KeyCopy,
	"0":     KeyZoomReset,
	"?":     KeyHelp,
	"q":     KeyQuit,
}

// GlobalkeyBindings is a global, immutable map of KeyName to keybinding.
var GlobalkeyBindings = map[KeyName]key.Binding{
	KeyUp: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	KeyDown: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	KeyIncrease: key.NewBinding(
		key.WithKeys("+", "="),
		key.WithHelp("+", "add one"),
	),
	KeyDecrease: key.NewBinding(
		key.WithKeys("-", "_"),
		key.WithHelp("-", "remove one"),
	),
	KeyUndo: key.NewBinding(
		key.WithKeys("u"),
		key.WithHelp("u", "undo"),
	),
	KeyRemoveAll: key.NewBinding(
		key.WithKeys("X"),
		key.WithHelp("X", "remove all"),
	),
	KeySummary: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "summary"),
	),
	KeyComplete: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "complete order"),
	),
	KeyEnter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("↵", "detail"),
	),
	KeyBack: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back"),
	),
	KeyOpen: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "open files"),
	),
	KeyExportSVG: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "export svg"),
	),
	KeyExportSTL: key.NewBinding(
		key.WithKeys("3"),
		key.WithHelp("3", "export stl"),
	),
	KeyCopy: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy holes"),
	),
	KeyZoomReset: key.NewBinding(
		key.WithKeys("0"),
		key.WithHelp("0", "reset zoom"),
	),
	KeyHelp: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	KeyQuit: key.NewBinding(
		key.WithKeys("q"),
		key.WithHelp("q", "quit"),
	),

	KeyZoomIn: key.NewBinding(
		key.WithKeys("+", "="),
		key.WithHelp("+", "zoom in"),
	),
	KeyZoomOut: key.NewBinding(
		key.WithKeys("-", "_"),
		key.WithHelp("-", "zoom out"),
	),
}
