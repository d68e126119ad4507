// Package daydetail provides a dialog listing the records of a single day.
package daydetail

import (
	"fmt"
	"time"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/kpumuk/incidentscope/internal/incidents"
	"github.com/kpumuk/incidentscope/internal/ui/components/frame"
	"github.com/kpumuk/incidentscope/internal/ui/components/jsonview"
	"github.com/kpumuk/incidentscope/internal/ui/dialogs"
	"github.com/kpumuk/incidentscope/internal/ui/format"
)

// DialogID identifies the day detail dialog.
const DialogID dialogs.DialogID = "daydetail"

// CopyMsg asks the parent to copy the day's records as JSON.
type CopyMsg struct {
	Day     time.Time
	Records []incidents.Record
}

// Styles holds the styles used by the dialog.
type Styles struct {
	Title  lipgloss.Style
	Border lipgloss.Style
	Muted  lipgloss.Style
	JSON   jsonview.Styles
}

// DefaultStyles returns default styles.
func DefaultStyles() Styles {
	return Styles{
		Title:  lipgloss.NewStyle().Bold(true),
		Muted:  lipgloss.NewStyle().Faint(true),
		Border: lipgloss.NewStyle(),
		JSON:   jsonview.DefaultStyles(),
	}
}

// Model defines state for the dialog.
type Model struct {
	styles       Styles
	keys         dialogs.KeyMap
	day          time.Time
	records      []incidents.Record
	view         jsonview.Model
	width        int
	height       int
	windowWidth  int
	windowHeight int
	row          int
	col          int
	padding      int
}

// Option configures the dialog.
type Option func(*Model)

// New creates a day detail dialog for the records of day.
func New(day time.Time, records []incidents.Record, opts ...Option) *Model {
	m := &Model{
		styles:  DefaultStyles(),
		keys:    dialogs.DefaultKeyMap(),
		day:     incidents.Day(day),
		records: records,
		padding: 1,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.view = jsonview.New(jsonview.WithStyles(m.styles.JSON))
	if len(records) > 0 {
		m.view.SetValue(records)
	}
	m.applySize()
	return m
}

// WithStyles sets the styles.
func WithStyles(s Styles) Option {
	return func(m *Model) { m.styles = s }
}

// Day returns the day shown by the dialog.
func (m *Model) Day() time.Time {
	return m.day
}

// Records returns the records shown by the dialog.
func (m *Model) Records() []incidents.Record {
	return m.records
}

// Init implements dialogs.DialogModel.
func (m *Model) Init() tea.Cmd { return nil }

// Update handles scrolling and closing.
func (m *Model) Update(msg tea.Msg) (dialogs.DialogModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.windowWidth = msg.Width
		m.windowHeight = msg.Height
		m.applySize()
		return m, nil
	case tea.MouseWheelMsg:
		switch msg.Button {
		case tea.MouseWheelUp:
			m.view.ScrollUp(1)
		case tea.MouseWheelDown:
			m.view.ScrollDown(1)
		}
		return m, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Close):
			return m, func() tea.Msg { return dialogs.CloseDialogMsg{} }
		case key.Matches(msg, m.keys.Copy):
			if len(m.records) == 0 {
				return m, nil
			}
			day, records := m.day, m.records
			return m, func() tea.Msg { return CopyMsg{Day: day, Records: records} }
		}
		switch msg.String() {
		case "q", "enter":
			return m, func() tea.Msg { return dialogs.CloseDialogMsg{} }
		case "up", "k":
			m.view.ScrollUp(1)
		case "down", "j":
			m.view.ScrollDown(1)
		case "left", "h":
			m.view.ScrollLeft(4)
		case "right", "l":
			m.view.ScrollRight(4)
		case "pgup":
			m.view.ScrollUp(max(m.view.Height()-1, 1))
		case "pgdown", "space":
			m.view.ScrollDown(max(m.view.Height()-1, 1))
		case "home", "g":
			m.view.GotoTop()
		case "end", "G":
			m.view.GotoBottom()
		}
	}
	return m, nil
}

// View renders the dialog.
func (m *Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}

	content := ""
	if len(m.records) == 0 {
		content = m.styles.Muted.Render("No incidents recorded on this day")
	} else {
		content = m.view.View()
	}

	styles := frame.Styles{
		Title:  m.styles.Title,
		Muted:  m.styles.Muted,
		Border: m.styles.Border,
	}
	box := frame.New(
		frame.WithStyles(styles),
		frame.WithTitle(m.day.Format(format.LongDateLayout)),
		frame.WithMeta(m.styles.Muted.Render(recordCount(len(m.records)))),
		frame.WithMetaPadding(1),
		frame.WithFooter(dialogs.Footer(m.keys.Copy, m.keys.Close)),
		frame.WithContent(content),
		frame.WithPadding(m.padding),
		frame.WithSize(m.width, m.height),
		frame.WithMinHeight(5),
	)
	return box.View()
}

// Position returns the dialog position.
func (m *Model) Position() (int, int) {
	return m.row, m.col
}

// ID returns the dialog ID.
func (m *Model) ID() dialogs.DialogID {
	return DialogID
}

func (m *Model) applySize() {
	if m.windowWidth == 0 || m.windowHeight == 0 {
		return
	}

	dialogWidth := min(max((m.windowWidth*3)/4, 40), m.windowWidth-4)
	dialogHeight := min(max((m.windowHeight*2)/3, 8), m.windowHeight-2)
	dialogWidth = max(dialogWidth, 10)
	dialogHeight = max(dialogHeight, 5)

	m.width = dialogWidth
	m.height = dialogHeight
	m.row = max((m.windowHeight-dialogHeight)/2, 0)
	m.col = max((m.windowWidth-dialogWidth)/2, 0)
	m.view.SetSize(max(dialogWidth-2-(m.padding*2), 1), max(dialogHeight-2, 1))
}

func recordCount(n int) string {
	if n == 1 {
		return "1 record"
	}
	return fmt.Sprintf("%s records", format.Count(n))
}
