package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap is the browsing key set. Editing mode reads raw keys instead.
type keyMap struct {
	Up      key.Binding
	Down    key.Binding
	Enter   key.Binding
	Parent  key.Binding
	Command key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "down"),
		),
		Enter: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("→", "open"),
		),
		Parent: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←", "parent"),
		),
		Command: key.NewBinding(
			key.WithKeys(":"),
			key.WithHelp(":", "command"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Enter, k.Parent, k.Command, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Enter, k.Parent},
		{k.Command, k.Help, k.Quit},
	}
}

// commandHelp lists the command grammar for the full help view.
const commandHelp = `:c copy   :m cut   :p paste   :d delete
:r <name> rename   :n d|f <name> create   :e <ddd> chmod`
