package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit    key.Binding
	Enter   key.Binding
	Up      key.Binding
	Down    key.Binding
	Tab     key.Binding
	Attach  key.Binding
	Remove  key.Binding
	Copy    key.Binding
	NewItem key.Binding
}

var keys = keyMap{
	Quit: key.NewBinding(
		key.WithKeys("esc", "ctrl+c"),
		key.WithHelp("esc", "quit"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "submit"),
	),
	Up: key.NewBinding(
		key.WithKeys("up"),
		key.WithHelp("up", "persona"),
	),
	Down: key.NewBinding(
		key.WithKeys("down"),
		key.WithHelp("down", "persona"),
	),
	Tab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "fire level"),
	),
	Attach: key.NewBinding(
		key.WithKeys("ctrl+o"),
		key.WithHelp("ctrl+o", "attach screenshot"),
	),
	Remove: key.NewBinding(
		key.WithKeys("ctrl+x"),
		key.WithHelp("ctrl+x", "remove attachment"),
	),
	Copy: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "copy reply"),
	),
	NewItem: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "new"),
	),
}
