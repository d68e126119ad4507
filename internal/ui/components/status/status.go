// Package status renders the one-row line reporting the dataset load and
// the active window.
package status

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/kpumuk/incidentscope/internal/incidents"
	"github.com/kpumuk/incidentscope/internal/ui/charts"
	"github.com/kpumuk/incidentscope/internal/ui/format"
)

// State is the dataset load state.
type State int

const (
	StateLoading State = iota
	StateLoaded
	StateFailed
)

// Styles holds the styles used by the status line.
type Styles struct {
	Bar   lipgloss.Style
	Text  lipgloss.Style
	Muted lipgloss.Style
	OK    lipgloss.Style
	Warn  lipgloss.Style
	Error lipgloss.Style
}

// DefaultStyles returns default styles for the status line.
func DefaultStyles() Styles {
	return Styles{
		Bar:   lipgloss.NewStyle().Padding(0, 1),
		Text:  lipgloss.NewStyle(),
		Muted: lipgloss.NewStyle().Faint(true),
		OK:    lipgloss.NewStyle(),
		Warn:  lipgloss.NewStyle(),
		Error: lipgloss.NewStyle().Bold(true),
	}
}

// Model holds the status line state.
type Model struct {
	styles  Styles
	state   State
	source  string
	records int
	defects int
	window  incidents.Window
	spinner string
	note    string
	noteErr bool
	width   int
}

// Option is used to set options in New.
type Option func(*Model)

// New creates a status line in the loading state.
func New(opts ...Option) Model {
	m := Model{styles: DefaultStyles()}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// WithStyles sets the styles.
func WithStyles(s Styles) Option {
	return func(m *Model) { m.styles = s }
}

// WithSource sets the source shown while loading.
func WithSource(source string) Option {
	return func(m *Model) { m.source = source }
}

// WithWidth sets the width.
func WithWidth(w int) Option {
	return func(m *Model) { m.width = w }
}

// SetStyles sets the styles.
func (m *Model) SetStyles(s Styles) { m.styles = s }

// SetWidth sets the width.
func (m *Model) SetWidth(w int) { m.width = w }

// Height returns the rendered height.
func (m Model) Height() int { return 1 }

// State returns the load state.
func (m Model) State() State { return m.state }

// SetSpinner sets the frame drawn while loading.
func (m *Model) SetSpinner(frame string) { m.spinner = frame }

// SetLoaded switches to the loaded state.
func (m *Model) SetLoaded(records, defects int) {
	m.state = StateLoaded
	m.records = records
	m.defects = defects
}

// SetFailed switches to the failed state.
func (m *Model) SetFailed() {
	m.state = StateFailed
}

// SetWindow sets the active window.
func (m *Model) SetWindow(w incidents.Window) { m.window = w }

// SetNote shows a transient message after the load outcome.
func (m *Model) SetNote(note string, isErr bool) {
	m.note = note
	m.noteErr = isErr
}

// Note returns the transient message.
func (m Model) Note() string { return m.note }

// View renders the status line.
func (m Model) View() string {
	if m.width <= 0 {
		return ""
	}

	left := m.outcome()
	if m.note != "" {
		noteStyle := m.styles.Muted
		if m.noteErr {
			noteStyle = m.styles.Error
		}
		left += m.styles.Muted.Render(" · ") + noteStyle.Render(m.note)
	}

	right := ""
	if !m.window.IsZero() {
		right = m.styles.Muted.Render(format.Window(m.window))
	}

	inner := max(m.width-m.styles.Bar.GetHorizontalFrameSize(), 0)
	gap := inner - lipgloss.Width(left) - lipgloss.Width(right)
	var content string
	if gap >= 1 && right != "" {
		content = left + strings.Repeat(" ", gap) + right
	} else {
		content = ansi.Truncate(left, inner, "…")
	}
	return m.styles.Bar.Width(m.width).Render(charts.PadRight(content, inner))
}

func (m Model) outcome() string {
	switch m.state {
	case StateLoaded:
		text := m.styles.OK.Render("Data loaded successfully.") +
			m.styles.Text.Render(fmt.Sprintf(" Loaded %s records.", format.Count(m.records)))
		if m.defects > 0 {
			text += m.styles.Warn.Render(fmt.Sprintf(" Skipped %s %s.", format.Count(m.defects), plural(m.defects, "row", "rows")))
		}
		return text
	case StateFailed:
		return m.styles.Error.Render("Failed to load data.")
	default:
		text := "Loading incidents"
		if m.source != "" {
			text += " from " + m.source
		}
		text += "…"
		if m.spinner != "" {
			text = m.spinner + " " + text
		}
		return m.styles.Muted.Render(text)
	}
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
