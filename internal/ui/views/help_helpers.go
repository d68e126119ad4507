package views

import "charm.land/bubbles/v2/key"

// helpBinding creates a binding for help rendering.
func helpBinding(keys []string, label, desc string) key.Binding {
	return key.NewBinding(
		key.WithKeys(keys...),
		key.WithHelp(label, desc),
	)
}
