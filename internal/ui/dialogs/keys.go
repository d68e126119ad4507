package dialogs

import (
	"strings"

	"charm.land/bubbles/v2/key"
)

// KeyMap defines keyboard bindings shared by dialogs.
type KeyMap struct {
	Close key.Binding
	Copy  key.Binding
}

// DefaultKeyMap returns the default dialog key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Close: key.NewBinding(
			key.WithKeys("esc", "alt+esc"),
			key.WithHelp("esc", "close"),
		),
		Copy: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy"),
		),
	}
}

// KeyBindings returns dialog key bindings.
func (k KeyMap) KeyBindings() []key.Binding {
	return []key.Binding{
		k.Close,
		k.Copy,
	}
}

// Footer renders the bindings as a one-line hint, e.g. "y copy · esc close".
func Footer(bindings ...key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		if !b.Enabled() {
			continue
		}
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, " · ")
}
