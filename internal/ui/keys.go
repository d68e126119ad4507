package ui

import "charm.land/bubbles/v2/key"

// KeyMap defines all global keybindings.
type KeyMap struct {
	Quit    key.Binding
	Next    key.Binding
	Prev    key.Binding
	Scene   key.Binding
	GoTo    key.Binding
	Details key.Binding
	Help    key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Next: key.NewBinding(
			key.WithKeys("n", "tab", "pgdown"),
			key.WithHelp("n/tab", "next scene"),
		),
		Prev: key.NewBinding(
			key.WithKeys("p", "shift+tab", "pgup"),
			key.WithHelp("p/shift+tab", "previous scene"),
		),
		Scene: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("1-9", "jump to scene"),
		),
		GoTo: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "go to date"),
		),
		Details: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "day details"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
	}
}

// ShortHelp returns keybindings to show in the navbar.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Help}
}

// FullHelp returns keybindings for the help dialog.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev, k.Scene},
		{k.GoTo, k.Details, k.Help, k.Quit},
	}
}
