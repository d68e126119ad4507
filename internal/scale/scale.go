// Package scale maps aggregate domains onto terminal cell ranges.
package scale

import (
	"math"
	"time"

	"github.com/kpumuk/incidentscope/internal/incidents"
	"github.com/kpumuk/incidentscope/internal/mathutil"
)

// TemporalScale maps dates onto a continuous cell range.
type TemporalScale interface {
	Map(t time.Time) float64
	Invert(x float64) time.Time
	Domain() (time.Time, time.Time)
	Range() (float64, float64)
}

// LinearScale maps values onto a continuous cell range.
type LinearScale interface {
	Map(v float64) float64
	Invert(y float64) float64
	Domain() (float64, float64)
	Range() (float64, float64)
}

// Time is a linear TemporalScale.
type Time struct {
	d0, d1 time.Time
	r0, r1 float64
}

// NewTime builds a temporal scale from [d0, d1] onto [r0, r1]. An empty or
// inverted domain is widened by one day.
func NewTime(d0, d1 time.Time, r0, r1 float64) Time {
	if !d1.After(d0) {
		d1 = d0.AddDate(0, 0, 1)
	}
	return Time{d0: d0, d1: d1, r0: r0, r1: r1}
}

// Map returns the position of t. Dates outside the domain extrapolate.
func (s Time) Map(t time.Time) float64 {
	f := mathutil.InverseLerp(0, float64(s.d1.Sub(s.d0)), float64(t.Sub(s.d0)))
	return mathutil.Lerp(s.r0, s.r1, f)
}

// Invert returns the date at position x.
func (s Time) Invert(x float64) time.Time {
	f := mathutil.InverseLerp(s.r0, s.r1, x)
	return s.d0.Add(time.Duration(math.Round(f * float64(s.d1.Sub(s.d0)))))
}

// Domain returns the date bounds.
func (s Time) Domain() (time.Time, time.Time) {
	return s.d0, s.d1
}

// Range returns the cell bounds.
func (s Time) Range() (float64, float64) {
	return s.r0, s.r1
}

// Column maps t to the nearest whole cell, clamped to the range.
func (s Time) Column(t time.Time) int {
	lo, hi := math.Min(s.r0, s.r1), math.Max(s.r0, s.r1)
	return int(math.Round(mathutil.Clamp(s.Map(t), lo, hi)))
}

// Linear is a linear LinearScale.
type Linear struct {
	d0, d1 float64
	r0, r1 float64
}

// NewLinear builds a value scale from [d0, d1] onto [r0, r1]. A zero-width
// domain is widened by one.
func NewLinear(d0, d1, r0, r1 float64) Linear {
	if d1 == d0 {
		d1 = d0 + 1
	}
	return Linear{d0: d0, d1: d1, r0: r0, r1: r1}
}

// Map returns the position of v.
func (s Linear) Map(v float64) float64 {
	return mathutil.Lerp(s.r0, s.r1, mathutil.InverseLerp(s.d0, s.d1, v))
}

// Invert returns the value at position y.
func (s Linear) Invert(y float64) float64 {
	return mathutil.Lerp(s.d0, s.d1, mathutil.InverseLerp(s.r0, s.r1, y))
}

// Domain returns the value bounds.
func (s Linear) Domain() (float64, float64) {
	return s.d0, s.d1
}

// Range returns the cell bounds.
func (s Linear) Range() (float64, float64) {
	return s.r0, s.r1
}

// Build derives the scales for an aggregate drawn in a width x height cell
// area. The time domain spans the first to the last bucket; the value domain
// runs from zero to the largest measure, shared by all series. Rows grow
// downwards, so the value range is [height-1, 0]. An empty aggregate falls
// back to the fallback window and a [0, 1] value domain.
func Build(aggs []incidents.DailyAggregate, fallback incidents.Window, width, height int) (Time, Linear) {
	xr := float64(max(width-1, 0))
	yr := float64(max(height-1, 0))

	if len(aggs) == 0 {
		start, end := fallback.Start, fallback.End
		if fallback.IsZero() {
			start = incidents.Day(time.Unix(0, 0))
			end = start
		}
		return NewTime(start, end, 0, xr), NewLinear(0, 1, yr, 0)
	}

	top := float64(incidents.MaxValue(aggs))
	return NewTime(aggs[0].Day, aggs[len(aggs)-1].Day, 0, xr), NewLinear(0, top, yr, 0)
}

var (
	_ TemporalScale = Time{}
	_ LinearScale   = Linear{}
)
