// Package dialogs provides a dialog stack and message types.
package dialogs

import (
	"slices"

	tea "charm.land/bubbletea/v2"

	"github.com/kpumuk/incidentscope/internal/ui/charts"
)

// DialogID identifies a dialog instance.
type DialogID string

// DialogModel represents a dialog component that can be displayed.
type DialogModel interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (DialogModel, tea.Cmd)
	View() string
	Position() (int, int)
	ID() DialogID
}

// CloseCallback allows dialogs to perform cleanup when closed.
type CloseCallback interface {
	Close() tea.Cmd
}

// OpenDialogMsg is sent to open a new dialog.
type OpenDialogMsg struct {
	Model DialogModel
}

// CloseDialogMsg is sent to close the topmost dialog.
type CloseDialogMsg struct{}

// DialogCmp manages a stack of dialogs.
type DialogCmp interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (DialogCmp, tea.Cmd)
	View() string

	Dialogs() []DialogModel
	HasDialogs() bool
	Render(base string) string
	ActiveModel() DialogModel
	ActiveDialogID() DialogID
}

type dialogCmp struct {
	width, height int
	dialogs       []DialogModel
	idMap         map[DialogID]int
}

// NewDialogCmp creates a new dialog manager.
func NewDialogCmp() DialogCmp {
	return dialogCmp{
		dialogs: []DialogModel{},
		idMap:   make(map[DialogID]int),
	}
}

func (d dialogCmp) Init() tea.Cmd {
	return nil
}

// Update handles dialog lifecycle and forwards messages to the active dialog.
func (d dialogCmp) Update(msg tea.Msg) (DialogCmp, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		cmds := make([]tea.Cmd, 0, len(d.dialogs))
		d.width = msg.Width
		d.height = msg.Height
		for i := range d.dialogs {
			u, cmd := d.dialogs[i].Update(msg)
			d.dialogs[i] = u
			cmds = append(cmds, cmd)
		}
		return d, tea.Batch(cmds...)
	case OpenDialogMsg:
		return d.handleOpen(msg)
	case CloseDialogMsg:
		if len(d.dialogs) == 0 {
			return d, nil
		}
		dialog := d.dialogs[len(d.dialogs)-1]
		d.dialogs = d.dialogs[:len(d.dialogs)-1]
		d.reindex()
		if closeable, ok := dialog.(CloseCallback); ok {
			return d, closeable.Close()
		}
		return d, nil
	}

	if d.HasDialogs() {
		lastIndex := len(d.dialogs) - 1
		u, cmd := d.dialogs[lastIndex].Update(msg)
		d.dialogs[lastIndex] = u
		return d, cmd
	}

	return d, nil
}

func (d dialogCmp) View() string {
	return ""
}

func (d dialogCmp) Dialogs() []DialogModel {
	return d.dialogs
}

func (d dialogCmp) ActiveModel() DialogModel {
	if len(d.dialogs) == 0 {
		return nil
	}
	return d.dialogs[len(d.dialogs)-1]
}

func (d dialogCmp) ActiveDialogID() DialogID {
	if len(d.dialogs) == 0 {
		return ""
	}
	return d.dialogs[len(d.dialogs)-1].ID()
}

// Render draws the dialogs over base, bottom of the stack first.
func (d dialogCmp) Render(base string) string {
	for _, dialog := range d.dialogs {
		row, col := dialog.Position()
		base = charts.Overlay(base, dialog.View(), row, col)
	}
	return base
}

func (d dialogCmp) HasDialogs() bool {
	return len(d.dialogs) > 0
}

func (d dialogCmp) handleOpen(msg OpenDialogMsg) (DialogCmp, tea.Cmd) {
	if d.HasDialogs() {
		dialog := d.dialogs[len(d.dialogs)-1]
		if dialog.ID() == msg.Model.ID() {
			return d, nil // already open on top
		}
	}

	// A dialog already in the stack moves to the top and keeps its state.
	if idx, ok := d.idMap[msg.Model.ID()]; ok {
		msg.Model = d.dialogs[idx]
		d.dialogs = slices.Delete(slices.Clone(d.dialogs), idx, idx+1)
	}

	cmds := make([]tea.Cmd, 0, 2)
	cmds = append(cmds, msg.Model.Init())
	_, cmd := msg.Model.Update(tea.WindowSizeMsg{
		Width:  d.width,
		Height: d.height,
	})
	cmds = append(cmds, cmd)

	d.dialogs = append(d.dialogs, msg.Model)
	d.reindex()

	return d, tea.Batch(cmds...)
}

func (d *dialogCmp) reindex() {
	d.idMap = make(map[DialogID]int, len(d.dialogs))
	for i, dialog := range d.dialogs {
		d.idMap[dialog.ID()] = i
	}
}
