package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/kpumuk/incidentscope/internal/incidents"
	"github.com/kpumuk/incidentscope/internal/scale"
)

// WriteSVG renders c as an SVG line chart with a legend and annotations.
func WriteSVG(w io.Writer, c Chart) error {
	width, height := c.size()
	xs, ys := scale.Build(c.Aggregates, c.Window, width, height)
	d0, d1 := xs.Domain()
	_, top := ys.Domain()

	graph := chart.Chart{
		Title:      c.Title,
		Width:      width,
		Height:     height,
		Background: chart.Style{Padding: chart.Box{Top: 48, Left: 16, Right: 16, Bottom: 16}},
		XAxis: chart.XAxis{
			Name:           c.subtitle(),
			ValueFormatter: chart.TimeDateValueFormatter,
			Range:          &chart.ContinuousRange{Min: chart.TimeToFloat64(d0), Max: chart.TimeToFloat64(d1)},
		},
		YAxis: chart.YAxis{
			Name:  "Count",
			Range: &chart.ContinuousRange{Min: 0, Max: top},
			ValueFormatter: func(v any) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("%.0f", f)
				}
				return ""
			},
		},
	}

	if len(c.Aggregates) == 0 {
		// go-chart draws axes only around a visible series, so a transparent
		// one spans the fallback domain.
		graph.Series = append(graph.Series, chart.TimeSeries{
			XValues: []time.Time{d0, d1},
			YValues: []float64{0, 0},
			Style: chart.Style{
				// A zero Color means "use the default", so keep RGB set.
				StrokeColor: drawing.Color{R: 255, G: 255, B: 255, A: 0},
				StrokeWidth: 0,
			},
		})
	}
	// Series live in go-chart's data space: Unix nanoseconds against counts.
	var path scale.PathBuilder = scale.Polyline{
		X: scale.NewTime(d0, d1, chart.TimeToFloat64(d0), chart.TimeToFloat64(d1)),
		Y: scale.NewLinear(0, top, 0, top),
	}
	for _, m := range incidents.Measures {
		if len(c.Aggregates) == 0 {
			break
		}
		graph.Series = append(graph.Series, svgSeries(m, path.Path(c.Aggregates, m)))
	}

	if len(c.Annotations) > 0 {
		values := make([]chart.Value2, 0, len(c.Annotations))
		for i, a := range c.Annotations {
			values = append(values, chart.Value2{
				XValue: chart.TimeToFloat64(a.Date),
				YValue: top,
				Label:  fmt.Sprintf("%d. %s", i+1, a.Label),
			})
		}
		graph.Series = append(graph.Series, chart.AnnotationSeries{Annotations: values})
	}

	graph.Elements = []chart.Renderable{chart.Legend(&graph)}
	return graph.Render(chart.SVG, w)
}

func svgSeries(m incidents.Measure, points []scale.Point) chart.ContinuousSeries {
	xs := make([]float64, 0, len(points)+1)
	ys := make([]float64, 0, len(points)+1)
	for _, p := range points {
		xs = append(xs, p.X)
		ys = append(ys, p.Y)
	}
	if len(xs) == 1 {
		// A line needs two vertices; repeat the only one.
		xs = append(xs, xs[0])
		ys = append(ys, ys[0])
	}

	color := drawing.ColorFromHex(strings.TrimPrefix(SeriesColor(m), "#"))
	return chart.ContinuousSeries{
		Name:    m.String(),
		XValues: xs,
		YValues: ys,
		Style: chart.Style{
			StrokeColor: color,
			StrokeWidth: 1.5,
			DotColor:    color,
			DotWidth:    1,
		},
	}
}
