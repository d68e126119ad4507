// Package incidentchart renders daily incident series with a legend,
// annotation markers and a day tooltip.
package incidentchart

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/samber/lo"

	"github.com/kpumuk/incidentscope/internal/incidents"
	"github.com/kpumuk/incidentscope/internal/mathutil"
	"github.com/kpumuk/incidentscope/internal/scale"
	"github.com/kpumuk/incidentscope/internal/scenes"
	"github.com/kpumuk/incidentscope/internal/ui/charts"
	"github.com/kpumuk/incidentscope/internal/ui/components/timeseries"
	"github.com/kpumuk/incidentscope/internal/ui/format"
)

// EmptyMessage is shown over the axes when a window holds no incidents.
const EmptyMessage = "No incidents in this window"

const (
	labelWidth     = 5
	legendWidth    = 24
	minLegendWidth = 64
	footerRows     = 3 // marker row, annotation list, tooltip
	minChartHeight = 4
	tickSpacing    = 14
	cursorGlyph    = "▲"
	swatch         = "━━"
)

// Styles holds the styles used by the chart.
type Styles struct {
	Axis       lipgloss.Style
	Label      lipgloss.Style
	Title      lipgloss.Style
	Text       lipgloss.Style
	Muted      lipgloss.Style
	Value      lipgloss.Style
	Incidents  lipgloss.Style
	Killed     lipgloss.Style
	Injured    lipgloss.Style
	Annotation lipgloss.Style
	Cursor     lipgloss.Style
}

// DefaultStyles returns default styles for the chart.
func DefaultStyles() Styles {
	return Styles{
		Axis:       lipgloss.NewStyle(),
		Label:      lipgloss.NewStyle(),
		Title:      lipgloss.NewStyle().Bold(true),
		Text:       lipgloss.NewStyle(),
		Muted:      lipgloss.NewStyle().Faint(true),
		Value:      lipgloss.NewStyle().Bold(true),
		Incidents:  lipgloss.NewStyle(),
		Killed:     lipgloss.NewStyle(),
		Injured:    lipgloss.NewStyle(),
		Annotation: lipgloss.NewStyle().Bold(true),
		Cursor:     lipgloss.NewStyle().Bold(true),
	}
}

// Model holds the chart state. Rendering is a pure function of it.
type Model struct {
	styles      Styles
	width       int
	height      int
	window      incidents.Window
	aggs        []incidents.DailyAggregate
	totals      incidents.Totals
	annotations []scenes.Annotation
	regions     []incidents.RegionCount
	cursor      int
}

// Option is used to set options in New.
type Option func(*Model)

// New creates a new chart model.
func New(opts ...Option) Model {
	m := Model{
		styles: DefaultStyles(),
		cursor: -1,
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

// WithSize sets the width and height.
func WithSize(w, h int) Option {
	return func(m *Model) {
		m.width = w
		m.height = h
	}
}

// SetStyles sets the styles.
func (m *Model) SetStyles(s Styles) {
	m.styles = s
}

// SetSize sets the width and height.
func (m *Model) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// Width returns the current width.
func (m Model) Width() int {
	return m.width
}

// Height returns the current height.
func (m Model) Height() int {
	return m.height
}

// SetData replaces the aggregate shown for window. The tooltip cursor
// stays on its day when that day is still present, otherwise it moves to
// the nearest bucket.
func (m *Model) SetData(window incidents.Window, aggs []incidents.DailyAggregate) {
	var cursorDay time.Time
	hadCursor := m.cursor >= 0 && m.cursor < len(m.aggs)
	if hadCursor {
		cursorDay = m.aggs[m.cursor].Day
	}

	m.window = window
	m.aggs = aggs
	m.totals = incidents.Sum(aggs)
	m.cursor = -1
	if hadCursor {
		m.SetCursorDate(cursorDay)
	}
}

// SetAnnotations sets the annotations of the scene. Only those inside the
// window are drawn.
func (m *Model) SetAnnotations(annotations []scenes.Annotation) {
	m.annotations = annotations
}

// SetRegions sets the regions listed under the legend.
func (m *Model) SetRegions(regions []incidents.RegionCount) {
	m.regions = regions
}

// Aggregates returns the plotted buckets.
func (m Model) Aggregates() []incidents.DailyAggregate {
	return m.aggs
}

// Totals returns the window totals shown in the legend.
func (m Model) Totals() incidents.Totals {
	return m.totals
}

// VisibleAnnotations returns the annotations drawn for the current window.
func (m Model) VisibleAnnotations() []scenes.Annotation {
	return lo.Filter(m.annotations, func(a scenes.Annotation, _ int) bool {
		return m.window.Contains(a.Date)
	})
}

// Cursor returns the bucket under the tooltip cursor.
func (m Model) Cursor() (incidents.DailyAggregate, bool) {
	if m.cursor < 0 || m.cursor >= len(m.aggs) {
		return incidents.DailyAggregate{}, false
	}
	return m.aggs[m.cursor], true
}

// ClearCursor hides the tooltip.
func (m *Model) ClearCursor() {
	m.cursor = -1
}

// MoveCursor moves the tooltip by delta buckets. A hidden cursor appears
// on the first bucket when moving right and on the last when moving left.
func (m *Model) MoveCursor(delta int) bool {
	if len(m.aggs) == 0 {
		return false
	}
	var next int
	switch {
	case m.cursor < 0 && delta < 0:
		next = len(m.aggs) - 1
	case m.cursor < 0:
		next = 0
	default:
		next = mathutil.Clamp(m.cursor+delta, 0, len(m.aggs)-1)
	}
	changed := next != m.cursor
	m.cursor = next
	return changed
}

// SetCursorDate moves the tooltip to the bucket nearest t.
func (m *Model) SetCursorDate(t time.Time) bool {
	_, idx, err := incidents.Nearest(m.aggs, t)
	if err != nil {
		return false
	}
	changed := idx != m.cursor
	m.cursor = idx
	return changed
}

// SetCursorAt moves the tooltip to the bucket nearest to column x, relative
// to the left edge of the chart. It reports false when x lies outside the
// plot area or there is no data.
func (m *Model) SetCursorAt(x int) bool {
	plotWidth, _ := m.plotSize()
	col := x - m.plotOffset()
	if len(m.aggs) == 0 || col < 0 || col >= plotWidth {
		return false
	}
	xs, _ := m.scales()
	return m.SetCursorDate(xs.Invert(float64(col)))
}

// InPlot reports whether the cell (x, y), relative to the top-left corner
// of the chart, lies over the plot area or its marker row.
func (m Model) InPlot(x, y int) bool {
	plotWidth, _ := m.plotSize()
	col := x - m.plotOffset()
	return col >= 0 && col < plotWidth && y >= 0 && y <= m.chartHeight()
}

// Summary returns a plain-text description of the tooltip bucket.
func (m Model) Summary() string {
	agg, ok := m.Cursor()
	if !ok {
		return ""
	}
	return fmt.Sprintf("%s: %d incidents, %d killed, %d injured",
		format.Date(agg.Day), agg.Incidents, agg.Killed, agg.Injured)
}

// View renders the chart.
func (m Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}

	chartWidth := m.chartWidth()
	left := m.renderPlot(chartWidth)

	var body []string
	if m.legendVisible() {
		legend := m.renderLegend(len(left))
		body = make([]string, len(left))
		for i := range left {
			body[i] = charts.PadRight(left[i], chartWidth) + " " + legend[i]
		}
	} else {
		body = append(body, left...)
		body = append(body, m.renderInlineLegend())
	}

	body = append(body, m.renderAnnotationList(), m.renderTooltip())
	for i := range body {
		body[i] = charts.PadRight(body[i], m.width)
	}
	if len(body) > m.height {
		body = body[:m.height]
	}
	return strings.Join(body, "\n")
}

func (m Model) legendVisible() bool {
	return m.width >= minLegendWidth
}

func (m Model) chartWidth() int {
	if m.legendVisible() {
		return m.width - legendWidth - 1
	}
	return m.width
}

// chartHeight is the height of the timeseries block, axes included.
func (m Model) chartHeight() int {
	rows := m.height - footerRows
	if !m.legendVisible() {
		rows--
	}
	return max(rows, minChartHeight)
}

func (m Model) plotOffset() int {
	return labelWidth + 1
}

func (m Model) plotSize() (int, int) {
	ts := timeseries.New(
		timeseries.WithSize(m.chartWidth(), m.chartHeight()),
		timeseries.WithLabelWidth(labelWidth),
	)
	return ts.PlotSize()
}

func (m Model) scales() (scale.Time, scale.Linear) {
	plotWidth, plotHeight := m.plotSize()
	return scale.Build(m.aggs, m.window, plotWidth, plotHeight)
}

func (m Model) seriesStyle(measure incidents.Measure) lipgloss.Style {
	switch measure {
	case incidents.MeasureKilled:
		return m.styles.Killed
	case incidents.MeasureInjured:
		return m.styles.Injured
	default:
		return m.styles.Incidents
	}
}

func (m Model) renderPlot(chartWidth int) []string {
	chartHeight := m.chartHeight()
	plotWidth, _ := m.plotSize()
	xs, ys := m.scales()
	d0, d1 := xs.Domain()
	v0, v1 := ys.Domain()

	days := lo.Map(m.aggs, func(a incidents.DailyAggregate, _ int) time.Time { return a.Day })
	series := lo.Map(incidents.Measures, func(measure incidents.Measure, _ int) timeseries.Series {
		return timeseries.Series{
			Name:  measure.String(),
			Times: days,
			Values: lo.Map(m.aggs, func(a incidents.DailyAggregate, _ int) float64 {
				return float64(measure.Value(a))
			}),
			Style: m.seriesStyle(measure),
		}
	})
	if len(m.aggs) == 0 {
		series = nil
	}

	ts := timeseries.New(
		timeseries.WithSize(chartWidth, chartHeight),
		timeseries.WithStyles(timeseries.Styles{
			Axis:  m.styles.Axis,
			Label: m.styles.Label,
			Empty: m.styles.Muted,
		}),
		timeseries.WithLabelWidth(labelWidth),
		timeseries.WithXYSteps(1, max(chartHeight/6, 1)),
		timeseries.WithYFormatter(func(_ int, v float64) string {
			return format.ShortNumber(int64(math.Round(v)))
		}),
		timeseries.WithTimeRange(d0, d1),
		timeseries.WithValueRange(v0, v1),
		timeseries.WithSeries(series...),
		timeseries.WithEmptyMessage(EmptyMessage),
	)

	lines := strings.Split(ts.View(), "\n")
	pad := strings.Repeat(" ", m.plotOffset())
	if n := len(lines); n > 0 {
		lines[n-1] = pad + m.styles.Label.Render(charts.TickLine(plotWidth, m.ticks(xs, plotWidth)))
	}
	return append(lines, pad+charts.MarkerLine(plotWidth, m.marks(xs)))
}

func (m Model) ticks(xs scale.Time, plotWidth int) []charts.Tick {
	d0, d1 := xs.Domain()
	span := int(d1.Sub(d0).Hours()/24) + 1
	count := max(plotWidth/tickSpacing, 2)
	cols := charts.AxisMap(count, plotWidth)
	return lo.Map(cols, func(col int, _ int) charts.Tick {
		return charts.Tick{Col: col, Label: format.AxisDate(incidents.Day(xs.Invert(float64(col))), span)}
	})
}

func (m Model) marks(xs scale.Time) []charts.Mark {
	visible := m.VisibleAnnotations()
	marks := make([]charts.Mark, 0, len(visible)+1)
	for i, a := range visible {
		marks = append(marks, charts.Mark{
			Col:   xs.Column(a.Date),
			Glyph: annotationGlyph(i),
			Style: m.styles.Annotation,
		})
	}
	if agg, ok := m.Cursor(); ok {
		marks = append(marks, charts.Mark{Col: xs.Column(agg.Day), Glyph: cursorGlyph, Style: m.styles.Cursor})
	}
	return marks
}

func annotationGlyph(i int) string {
	if i < 9 {
		return strconv.Itoa(i + 1)
	}
	return "*"
}

func (m Model) renderLegend(rows int) []string {
	lines := []string{m.styles.Title.Render("Legend")}
	nameWidth := 10
	valueWidth := legendWidth - lipgloss.Width(swatch) - 1 - nameWidth
	for _, measure := range incidents.Measures {
		value := fmt.Sprintf("%*s", valueWidth, format.Count(measure.Total(m.totals)))
		lines = append(lines,
			m.seriesStyle(measure).Render(swatch)+" "+
				m.styles.Text.Render(charts.PadRight(measure.String(), nameWidth))+
				m.styles.Value.Render(value))
	}

	if len(m.regions) > 0 {
		lines = append(lines, "", m.styles.Title.Render("Top regions"))
		for _, region := range m.regions {
			count := format.Count(region.Count)
			name := ansi.Truncate(region.Region, legendWidth-len(count)-1, "…")
			gap := max(legendWidth-lipgloss.Width(name)-len(count), 1)
			lines = append(lines, m.styles.Text.Render(name)+strings.Repeat(" ", gap)+m.styles.Muted.Render(count))
		}
	}

	out := make([]string, rows)
	for i := range out {
		if i < len(lines) {
			out[i] = charts.PadRight(lines[i], legendWidth)
		} else {
			out[i] = strings.Repeat(" ", legendWidth)
		}
	}
	return out
}

func (m Model) renderInlineLegend() string {
	parts := lo.Map(incidents.Measures, func(measure incidents.Measure, _ int) string {
		return m.seriesStyle(measure).Render(swatch) + " " +
			m.styles.Text.Render(measure.String()) + " " +
			m.styles.Value.Render(format.Count(measure.Total(m.totals)))
	})
	return ansi.Truncate(strings.Join(parts, "  "), m.width, "…")
}

func (m Model) renderAnnotationList() string {
	visible := m.VisibleAnnotations()
	if len(visible) == 0 {
		return ""
	}
	parts := make([]string, 0, len(visible))
	for i, a := range visible {
		parts = append(parts,
			m.styles.Annotation.Render(annotationGlyph(i))+" "+
				m.styles.Text.Render(a.Label)+" "+
				m.styles.Muted.Render(format.Date(a.Date)))
	}
	return ansi.Truncate(strings.Join(parts, "  "), m.width, "…")
}

func (m Model) renderTooltip() string {
	if len(m.aggs) == 0 {
		return ""
	}
	agg, ok := m.Cursor()
	if !ok {
		return m.styles.Muted.Render("Hover the chart or press ←/→ to inspect a day")
	}
	parts := []string{
		m.styles.Cursor.Render(cursorGlyph) + " " + m.styles.Value.Render(agg.Day.Format(format.LongDateLayout)),
	}
	for _, measure := range incidents.Measures {
		parts = append(parts,
			m.seriesStyle(measure).Render(measure.String())+" "+
				m.styles.Value.Render(format.Count(measure.Value(agg))))
	}
	return ansi.Truncate(strings.Join(parts, "  "), m.width, "…")
}
