// Package slider renders the two-handle date range slider with an overview
// of the full dataset above the track.
package slider

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	plot "github.com/chriskim06/drawille-go"

	"github.com/kpumuk/incidentscope/internal/incidents"
	"github.com/kpumuk/incidentscope/internal/scenes"
	"github.com/kpumuk/incidentscope/internal/ui/charts"
	"github.com/kpumuk/incidentscope/internal/ui/format"
)

const (
	// DefaultOverviewHeight is the number of rows of the overview strip.
	DefaultOverviewHeight = 3

	trackRune  = "─"
	rangeRune  = "━"
	handleRune = "◆"
)

// Styles holds the styles needed by the slider.
type Styles struct {
	Track  lipgloss.Style
	Range  lipgloss.Style
	Handle lipgloss.Style
	Focus  lipgloss.Style
	Label  lipgloss.Style
	Muted  lipgloss.Style
}

// DefaultStyles returns default styles for the slider.
func DefaultStyles() Styles {
	return Styles{
		Track:  lipgloss.NewStyle().Faint(true),
		Range:  lipgloss.NewStyle(),
		Handle: lipgloss.NewStyle(),
		Focus:  lipgloss.NewStyle().Bold(true),
		Label:  lipgloss.NewStyle(),
		Muted:  lipgloss.NewStyle().Faint(true),
	}
}

// Model renders a scenes.Slider. The slider state is shared with the scene
// controller, so handle moves made here change the interactive window.
type Model struct {
	styles         Styles
	slider         *scenes.Slider
	overview       []int
	overviewHeight int
	width          int
	dragging       bool
}

// Option is used to set options in New.
type Option func(*Model)

// New creates a new slider model.
func New(opts ...Option) Model {
	m := Model{
		styles:         DefaultStyles(),
		overviewHeight: DefaultOverviewHeight,
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

// WithSlider binds the slider state.
func WithSlider(s *scenes.Slider) Option {
	return func(m *Model) {
		m.slider = s
	}
}

// WithOverviewHeight sets the height of the overview strip. Zero hides it.
func WithOverviewHeight(h int) Option {
	return func(m *Model) {
		m.overviewHeight = max(h, 0)
	}
}

// SetStyles sets the styles.
func (m *Model) SetStyles(s Styles) {
	m.styles = s
}

// SetSlider binds the slider state.
func (m *Model) SetSlider(s *scenes.Slider) {
	m.slider = s
	if s != nil && m.width > 0 {
		s.SetWidth(m.width)
	}
}

// Slider returns the bound slider state.
func (m Model) Slider() *scenes.Slider {
	return m.slider
}

// SetOverview sets the full-dataset aggregate drawn above the track.
// Missing days count as zero.
func (m *Model) SetOverview(aggs []incidents.DailyAggregate) {
	m.overview = dailyCounts(aggs)
}

// SetWidth sets the width, which is also the track width.
func (m *Model) SetWidth(w int) {
	m.width = max(w, 0)
	if m.slider != nil && m.width > 0 {
		m.slider.SetWidth(m.width)
	}
}

// Width returns the current width.
func (m Model) Width() int {
	return m.width
}

// Height returns the number of rows the slider renders.
func (m Model) Height() int {
	return m.overviewHeight + 2
}

// TrackRow returns the row of the track, relative to the top of the slider.
func (m Model) TrackRow() int {
	return m.overviewHeight
}

// Dragging reports whether a handle is being dragged.
func (m Model) Dragging() bool {
	return m.dragging
}

// Press grabs the handle nearest to column x and moves it there. It
// reports whether the window changed.
func (m *Model) Press(x int) bool {
	if m.slider == nil {
		return false
	}
	h := m.slider.Nearest(x)
	m.slider.SetFocus(h)
	m.dragging = true
	return m.slider.Set(h, x)
}

// Drag moves the grabbed handle to column x.
func (m *Model) Drag(x int) bool {
	if m.slider == nil || !m.dragging {
		return false
	}
	return m.slider.Set(m.slider.Focus(), x)
}

// Release drops the grabbed handle.
func (m *Model) Release() {
	m.dragging = false
}

// View renders the overview strip, the track and the date labels.
func (m Model) View() string {
	if m.width <= 0 || m.slider == nil {
		return ""
	}

	rows := make([]string, 0, m.Height())
	rows = append(rows, m.renderOverview()...)
	rows = append(rows, m.renderTrack(), m.renderLabels())
	return strings.Join(rows, "\n")
}

func (m Model) renderOverview() []string {
	if m.overviewHeight == 0 {
		return nil
	}
	blank := strings.Repeat(" ", m.width)
	rows := make([]string, m.overviewHeight)
	for i := range rows {
		rows[i] = blank
	}

	samples := charts.RemapSeries(m.overview, m.width*2)
	if len(samples) < 2 {
		return rows
	}
	data := make([]float64, len(samples))
	for i, v := range samples {
		data[i] = float64(v)
	}

	canvas := plot.NewCanvas(m.width, m.overviewHeight)
	canvas.NumDataPoints = len(data)
	canvas.ShowAxis = false
	canvas.LineColors = []plot.Color{plot.DimGray}
	canvas.Fill([][]float64{data})

	lines := strings.Split(strings.TrimRight(canvas.String(), "\n"), "\n")
	for i := range rows {
		if i < len(lines) {
			rows[i] = charts.PadRight(lines[i], m.width)
		}
	}
	return rows
}

func (m Model) renderTrack() string {
	start, end := m.slider.Positions()
	focus := m.slider.Focus()

	var b strings.Builder
	for col := range m.slider.Width() {
		switch {
		case col == start && focus == scenes.HandleStart, col == end && focus == scenes.HandleEnd:
			b.WriteString(m.styles.Focus.Render(handleRune))
		case col == start || col == end:
			b.WriteString(m.styles.Handle.Render(handleRune))
		case col > start && col < end:
			b.WriteString(m.styles.Range.Render(rangeRune))
		default:
			b.WriteString(m.styles.Track.Render(trackRune))
		}
	}
	return charts.PadRight(b.String(), m.width)
}

func (m Model) renderLabels() string {
	w := m.slider.Window()
	startLabel := format.Date(w.Start)
	endLabel := format.Date(w.End)
	if m.slider.Focus() == scenes.HandleStart {
		startLabel = m.styles.Focus.Render(startLabel)
		endLabel = m.styles.Label.Render(endLabel)
	} else {
		startLabel = m.styles.Label.Render(startLabel)
		endLabel = m.styles.Focus.Render(endLabel)
	}
	span := m.styles.Muted.Render(fmt.Sprintf("%s days", format.Count(w.Days())))

	used := lipgloss.Width(startLabel) + lipgloss.Width(endLabel) + lipgloss.Width(span)
	if used+2 > m.width {
		return charts.PadRight(startLabel+" "+endLabel, m.width)
	}
	gap := m.width - used
	left := gap / 2
	return startLabel + strings.Repeat(" ", left) + span + strings.Repeat(" ", gap-left) + endLabel
}

// dailyCounts expands a sparse aggregate into one incident count per day.
func dailyCounts(aggs []incidents.DailyAggregate) []int {
	if len(aggs) == 0 {
		return nil
	}
	w := incidents.NewWindow(aggs[0].Day, aggs[len(aggs)-1].Day)
	out := make([]int, w.Days())
	for _, a := range aggs {
		idx := int(a.Day.Sub(w.Start).Hours() / 24)
		if idx >= 0 && idx < len(out) {
			out[idx] += a.Incidents
		}
	}
	return out
}
