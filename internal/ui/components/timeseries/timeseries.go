// Package timeseries draws braille line series over a fixed time and value
// range with a labelled Y axis.
package timeseries

import (
	"fmt"
	"slices"
	"time"

	"charm.land/lipgloss/v2"
	tslc "github.com/NimbleMarkets/ntcharts/v2/linechart/timeserieslinechart"
	"github.com/charmbracelet/x/ansi"

	"github.com/kpumuk/incidentscope/internal/ui/charts"
)

// axisRows is the number of rows below the plot: the x axis and its labels.
const axisRows = 2

// Styles holds the visual styles for the timeseries chart.
type Styles struct {
	Axis  lipgloss.Style // Style for chart axes
	Label lipgloss.Style // Style for axis labels
	Empty lipgloss.Style // Style for the empty state message
}

// DefaultStyles returns sensible default styles.
func DefaultStyles() Styles {
	return Styles{
		Axis:  lipgloss.NewStyle(),
		Label: lipgloss.NewStyle(),
		Empty: lipgloss.NewStyle().Faint(true),
	}
}

// Series represents a single data series to plot.
type Series struct {
	Name   string         // Unique name for this series
	Times  []time.Time    // Time points
	Values []float64      // Values at each time point
	Style  lipgloss.Style // Line style for this series
}

// Model holds the timeseries chart state.
type Model struct {
	styles       Styles
	width        int
	height       int
	series       []Series
	yFormatter   func(int, float64) string
	labelWidth   int
	xSteps       int
	ySteps       int
	minTime      *time.Time
	maxTime      *time.Time
	minValue     *float64
	maxValue     *float64
	emptyMessage string
}

// Option is a functional option for configuring the timeseries chart.
type Option func(*Model)

// New creates a new timeseries chart model with functional options.
func New(opts ...Option) Model {
	m := Model{
		styles:     DefaultStyles(),
		xSteps:     2,
		ySteps:     2,
		labelWidth: 4,
		yFormatter: func(int, float64) string { return "" },
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// WithStyles sets custom styles for the chart.
func WithStyles(s Styles) Option {
	return func(m *Model) { m.styles = s }
}

// WithSize sets the dimensions of the chart.
func WithSize(w, h int) Option {
	return func(m *Model) { m.width, m.height = w, h }
}

// WithSeries sets the data series to display.
func WithSeries(series ...Series) Option {
	return func(m *Model) { m.series = series }
}

// WithYFormatter sets the Y-axis label formatter.
func WithYFormatter(formatter func(int, float64) string) Option {
	return func(m *Model) { m.yFormatter = formatter }
}

// WithLabelWidth fixes the width of the Y-axis labels, which pins the
// left edge of the plot area.
func WithLabelWidth(w int) Option {
	return func(m *Model) { m.labelWidth = max(w, 1) }
}

// WithXYSteps sets the number of label steps for X and Y axes.
func WithXYSteps(xSteps, ySteps int) Option {
	return func(m *Model) { m.xSteps, m.ySteps = xSteps, ySteps }
}

// WithTimeRange sets explicit time range (overrides auto-detection).
func WithTimeRange(minTime, maxTime time.Time) Option {
	return func(m *Model) { m.minTime, m.maxTime = &minTime, &maxTime }
}

// WithValueRange sets explicit value range (overrides auto-detection).
func WithValueRange(minValue, maxValue float64) Option {
	return func(m *Model) { m.minValue, m.maxValue = &minValue, &maxValue }
}

// WithEmptyMessage sets the message to display when there's no data.
func WithEmptyMessage(msg string) Option {
	return func(m *Model) { m.emptyMessage = msg }
}

// Width returns the current width.
func (m Model) Width() int {
	return m.width
}

// Height returns the current height.
func (m Model) Height() int {
	return m.height
}

// PlotOffset returns the column where the plot area starts, right of the
// Y-axis labels and the axis line.
func (m Model) PlotOffset() int {
	return m.labelWidth + 1
}

// PlotSize returns the width and height of the plot area in cells.
func (m Model) PlotSize() (int, int) {
	return max(m.width-m.PlotOffset(), 0), max(m.height-axisRows, 0)
}

// View renders the timeseries chart to a string.
func (m Model) View() string {
	if m.width < 1 || m.height < 1 {
		return ""
	}

	n := m.commonLength()
	ranged := m.minTime != nil && m.maxTime != nil
	if n == 0 && !ranged {
		return charts.RenderCentered(m.width, m.height, m.styles.Empty.Render(m.emptyMessage))
	}

	minTime, maxTime := m.detectTimeRange(n)
	if !maxTime.After(minTime) {
		maxTime = minTime.Add(24 * time.Hour)
	}
	minValue, maxValue := m.detectValueRange(n)

	chart := tslc.New(m.width, m.height,
		tslc.WithXYSteps(m.xSteps, m.ySteps),
		// Day ticks are drawn by the caller under the plot.
		tslc.WithXLabelFormatter(func(int, float64) string { return "" }),
		tslc.WithYLabelFormatter(m.paddedYFormatter),
		tslc.WithAxesStyles(m.styles.Axis, m.styles.Label),
		tslc.WithTimeRange(minTime, maxTime),
		tslc.WithYRange(minValue, maxValue),
	)
	chart.AutoMinX = false
	chart.AutoMaxX = false
	chart.AutoMinY = false
	chart.AutoMaxY = false

	if n == 0 {
		chart.DrawXYAxisAndLabel()
		view := chart.View()
		if m.emptyMessage == "" {
			return view
		}
		plotWidth, plotHeight := m.PlotSize()
		msg := m.styles.Empty.Render(ansi.Truncate(m.emptyMessage, plotWidth, "…"))
		row := max(plotHeight/2, 0)
		col := m.PlotOffset() + max((plotWidth-lipgloss.Width(msg))/2, 0)
		return charts.Overlay(view, msg, row, col)
	}

	for i, series := range m.series {
		times := series.Times
		values := series.Values

		// Trim to common length
		if len(times) > n {
			times = times[len(times)-n:]
		}
		if len(values) > n {
			values = values[len(values)-n:]
		}

		// The first series draws on the default dataset.
		if i == 0 {
			chart.SetStyle(series.Style)
		} else {
			chart.SetDataSetStyle(series.Name, series.Style)
		}

		count := min(len(times), len(values))
		for j := range count {
			point := tslc.TimePoint{Time: times[j], Value: values[j]}
			if i == 0 {
				chart.Push(point)
			} else {
				chart.PushDataSet(series.Name, point)
			}
		}
	}

	chart.DrawBrailleAll()
	return chart.View()
}

func (m Model) paddedYFormatter(i int, v float64) string {
	label := ansi.Truncate(m.yFormatter(i, v), m.labelWidth, "")
	return fmt.Sprintf("%*s", m.labelWidth, label)
}

// commonLength finds the minimum length across all series.
func (m Model) commonLength() int {
	if len(m.series) == 0 {
		return 0
	}
	n := len(m.series[0].Times)
	for _, series := range m.series {
		n = min(n, len(series.Times))
		n = min(n, len(series.Values))
	}
	return n
}

// detectTimeRange determines the time range from the data or uses provided range.
func (m Model) detectTimeRange(n int) (time.Time, time.Time) {
	if m.minTime != nil && m.maxTime != nil {
		return *m.minTime, *m.maxTime
	}

	times := m.series[0].Times
	if len(times) > n {
		times = times[len(times)-n:]
	}

	minTime := times[0]
	maxTime := times[len(times)-1]

	if m.minTime != nil {
		minTime = *m.minTime
	}
	if m.maxTime != nil {
		maxTime = *m.maxTime
	}

	return minTime, maxTime
}

// detectValueRange determines the value range from the data or uses provided range.
func (m Model) detectValueRange(n int) (float64, float64) {
	if m.minValue != nil && m.maxValue != nil {
		return *m.minValue, *m.maxValue
	}

	minValue := 0.0
	maxValue := 1.0

	// Find max value across all series
	for _, series := range m.series {
		values := series.Values
		if len(values) > n {
			values = values[len(values)-n:]
		}
		if len(values) > 0 {
			maxValue = max(maxValue, slices.Max(values))
		}
	}

	if m.minValue != nil {
		minValue = *m.minValue
	}
	if m.maxValue != nil {
		maxValue = *m.maxValue
	}

	return minValue, maxValue
}
