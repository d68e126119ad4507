package export

import (
	"io"
	"strconv"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/samber/lo"

	"github.com/kpumuk/incidentscope/internal/incidents"
)

// WriteHTML renders c as an interactive page with a tooltip, a legend,
// annotation mark points and a date-range zoom slider.
func WriteHTML(w io.Writer, c Chart) error {
	width, height := c.size()

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: c.Title,
			Width:     px(width),
			Height:    px(height),
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    c.Title,
			Subtitle: c.subtitle(),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: true, Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: true, Right: "10%"}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "slider", Start: 0, End: 100}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Date"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Count", Min: 0}),
	)

	days := lo.Map(c.Aggregates, func(a incidents.DailyAggregate, _ int) string {
		return a.Day.Format(time.DateOnly)
	})
	if len(days) == 0 && !c.Window.IsZero() {
		days = []string{c.Window.Start.Format(time.DateOnly), c.Window.End.Format(time.DateOnly)}
	}
	line.SetXAxis(days)

	marks := annotationMarks(c)
	for _, m := range incidents.Measures {
		data := lo.Map(c.Aggregates, func(a incidents.DailyAggregate, _ int) opts.LineData {
			return opts.LineData{Value: m.Value(a)}
		})
		seriesOpts := []charts.SeriesOpts{
			charts.WithLineStyleOpts(opts.LineStyle{Color: SeriesColor(m)}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: SeriesColor(m)}),
		}
		if m == incidents.MeasureIncidents && len(marks) > 0 {
			seriesOpts = append(seriesOpts, charts.WithMarkPointNameCoordItemOpts(marks...))
		}
		line.AddSeries(m.String(), data, seriesOpts...)
	}

	return line.Render(w)
}

// annotationMarks pins each annotation above the incident count of its
// day, or of the nearest bucket when that day has no incidents.
func annotationMarks(c Chart) []opts.MarkPointNameCoordItem {
	marks := make([]opts.MarkPointNameCoordItem, 0, len(c.Annotations))
	for _, a := range c.Annotations {
		bucket, _, err := incidents.Nearest(c.Aggregates, a.Date)
		if err != nil {
			continue
		}
		marks = append(marks, opts.MarkPointNameCoordItem{
			Name:       a.Label,
			Coordinate: []any{bucket.Day.Format(time.DateOnly), bucket.Incidents},
			Value:      a.Label,
			Symbol:     "pin",
		})
	}
	return marks
}

func px(n int) string {
	if n <= 0 {
		return ""
	}
	return strconv.Itoa(n) + "px"
}
