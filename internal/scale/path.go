package scale

import (
	"github.com/kpumuk/incidentscope/internal/incidents"
)

// Point is a mapped series vertex in cell coordinates.
type Point struct {
	X, Y float64
}

// PathBuilder turns one measure of an aggregate into mapped vertices.
type PathBuilder interface {
	Path(aggs []incidents.DailyAggregate, measure incidents.Measure) []Point
}

// Polyline connects buckets in day order using a pair of scales.
type Polyline struct {
	X TemporalScale
	Y LinearScale
}

// Path maps each bucket of aggs to a vertex. The result has one point per
// bucket and is empty for an empty aggregate.
func (p Polyline) Path(aggs []incidents.DailyAggregate, measure incidents.Measure) []Point {
	points := make([]Point, 0, len(aggs))
	for _, a := range aggs {
		points = append(points, Point{
			X: p.X.Map(a.Day),
			Y: p.Y.Map(float64(measure.Value(a))),
		})
	}
	return points
}
