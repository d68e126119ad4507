// Package metrics renders the top bar with totals for the visible window.
package metrics

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/kpumuk/incidentscope/internal/incidents"
	"github.com/kpumuk/incidentscope/internal/ui/charts"
	"github.com/kpumuk/incidentscope/internal/ui/format"
)

// Data holds the values shown in the metrics bar.
type Data struct {
	Window incidents.Window
	Totals incidents.Totals
	Days   int
}

// UpdateMsg is sent when metrics should be updated.
type UpdateMsg struct {
	Data Data
}

// Styles holds the styles needed by the metrics bar.
type Styles struct {
	Bar       lipgloss.Style
	Fill      lipgloss.Style
	Label     lipgloss.Style
	Value     lipgloss.Style
	Separator lipgloss.Style
}

// DefaultStyles returns default styles for the metrics bar.
func DefaultStyles() Styles {
	return Styles{
		Bar:       lipgloss.NewStyle().Padding(0, 1),
		Fill:      lipgloss.NewStyle(),
		Label:     lipgloss.NewStyle().Faint(true),
		Value:     lipgloss.NewStyle().Bold(true),
		Separator: lipgloss.NewStyle().Faint(true),
	}
}

// Model defines state for the metrics bar component.
type Model struct {
	styles Styles
	data   Data
	width  int
}

// Option is used to set options in New.
type Option func(*Model)

// New creates a new metrics bar model.
func New(opts ...Option) Model {
	m := Model{
		styles: DefaultStyles(),
	}

	for _, opt := range opts {
		opt(&m)
	}

	return m
}

// WithStyles sets the styles.
func WithStyles(s Styles) Option {
	return func(m *Model) {
		m.styles = s
	}
}

// WithWidth sets the width.
func WithWidth(w int) Option {
	return func(m *Model) {
		m.width = w
	}
}

// WithData sets the initial data.
func WithData(d Data) Option {
	return func(m *Model) {
		m.data = d
	}
}

// SetStyles sets the styles.
func (m *Model) SetStyles(s Styles) {
	m.styles = s
}

// SetWidth sets the width.
func (m *Model) SetWidth(w int) {
	m.width = w
}

// SetData sets the metrics data.
func (m *Model) SetData(d Data) {
	m.data = d
}

// Width returns the current width.
func (m Model) Width() int {
	return m.width
}

// Height returns the height of the metrics bar (always 1).
func (m Model) Height() int {
	return 1
}

// Data returns the current metrics data.
func (m Model) Data() Data {
	return m.data
}

// Update handles messages.
func (m Model) Update(msg any) Model {
	if msg, ok := msg.(UpdateMsg); ok {
		m.data = msg.Data
	}
	return m
}

// View renders the metrics bar. Items that do not fit are dropped from the
// right.
func (m Model) View() string {
	if m.width <= 0 {
		return ""
	}

	sep := m.styles.Separator.Render(" │ ")
	items := []string{
		m.item("Window: ", format.Window(m.data.Window)),
		m.item("Incidents: ", format.Count(m.data.Totals.Incidents)),
		m.item("Killed: ", format.Count(m.data.Totals.Killed)),
		m.item("Injured: ", format.Count(m.data.Totals.Injured)),
		m.item("Active days: ", format.Count(m.data.Days)),
	}

	inner := max(m.width-m.styles.Bar.GetHorizontalFrameSize(), 0)
	var content strings.Builder
	for i, item := range items {
		next := item
		if i > 0 {
			next = sep + item
		}
		if lipgloss.Width(content.String())+lipgloss.Width(next) > inner {
			break
		}
		content.WriteString(next)
	}

	line := charts.PadRight(content.String(), inner)
	return m.styles.Bar.Width(m.width).Render(m.styles.Fill.Render(line))
}

func (m Model) item(label, value string) string {
	return m.styles.Label.Render(label) + m.styles.Value.Render(value)
}
