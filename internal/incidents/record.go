// Package incidents loads incident records and aggregates them by calendar day.
package incidents

import (
	"fmt"
	"time"
)

// Record is a single recorded incident.
type Record struct {
	ID       int       `json:"incident_id"`
	Date     time.Time `json:"date"`
	Region   string    `json:"state"`
	Locality string    `json:"city_or_county"`
	Address  string    `json:"address"`
	Killed   int       `json:"n_killed"`
	Injured  int       `json:"n_injured"`
}

// Day returns the record date truncated to day granularity.
func (r Record) Day() time.Time {
	return Day(r.Date)
}

// Day truncates t to midnight UTC of its calendar date.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Window is an inclusive date range at day granularity.
type Window struct {
	Start time.Time
	End   time.Time
}

// NewWindow builds a window from two dates, truncating both to days.
// The bounds are swapped when start is after end.
func NewWindow(start, end time.Time) Window {
	start, end = Day(start), Day(end)
	if start.After(end) {
		start, end = end, start
	}
	return Window{Start: start, End: end}
}

// ParseWindow parses two YYYY-MM-DD dates into a window.
func ParseWindow(start, end string) (Window, error) {
	s, err := time.Parse(time.DateOnly, start)
	if err != nil {
		return Window{}, fmt.Errorf("parse window start: %w", err)
	}
	e, err := time.Parse(time.DateOnly, end)
	if err != nil {
		return Window{}, fmt.Errorf("parse window end: %w", err)
	}
	return NewWindow(s, e), nil
}

// Contains reports whether t falls on a day inside the window.
func (w Window) Contains(t time.Time) bool {
	day := Day(t)
	return !day.Before(w.Start) && !day.After(w.End)
}

// IsZero reports whether the window is unset.
func (w Window) IsZero() bool {
	return w.Start.IsZero() && w.End.IsZero()
}

// Within reports whether w lies entirely inside outer.
func (w Window) Within(outer Window) bool {
	return !w.Start.Before(outer.Start) && !w.End.After(outer.End)
}

// Clip narrows w to the overlap with bounds. If they do not overlap the
// result collapses onto the nearest bound.
func (w Window) Clip(bounds Window) Window {
	start, end := w.Start, w.End
	if start.Before(bounds.Start) {
		start = bounds.Start
	}
	if end.After(bounds.End) {
		end = bounds.End
	}
	if start.After(end) {
		if w.End.Before(bounds.Start) {
			return Window{Start: bounds.Start, End: bounds.Start}
		}
		return Window{Start: bounds.End, End: bounds.End}
	}
	return Window{Start: start, End: end}
}

// Days returns the number of calendar days covered by the window.
func (w Window) Days() int {
	if w.IsZero() {
		return 0
	}
	return int(w.End.Sub(w.Start).Hours()/24) + 1
}

// String formats the window as "YYYY-MM-DD..YYYY-MM-DD".
func (w Window) String() string {
	if w.IsZero() {
		return "-"
	}
	return w.Start.Format(time.DateOnly) + ".." + w.End.Format(time.DateOnly)
}
