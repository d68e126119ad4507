package views

import (
	tea "charm.land/bubbletea/v2"
	"github.com/atotto/clipboard"
)

// CopiedMsg reports the outcome of a clipboard write.
type CopiedMsg struct {
	What string
	Err  error
}

var writeClipboard = clipboard.WriteAll

func copyTextCmd(what, text string) tea.Cmd {
	if text == "" {
		return nil
	}
	return func() tea.Msg {
		return CopiedMsg{What: what, Err: writeClipboard(text)}
	}
}
