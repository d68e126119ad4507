package scenes

import (
	"time"

	"github.com/kpumuk/incidentscope/internal/incidents"
	"github.com/kpumuk/incidentscope/internal/mathutil"
	"github.com/kpumuk/incidentscope/internal/scale"
)

// Handle identifies a slider endpoint.
type Handle int

const (
	HandleStart Handle = iota
	HandleEnd
)

func (h Handle) String() string {
	if h == HandleEnd {
		return "end"
	}
	return "start"
}

// Slider is a two-handle date range selector over a track of cells mapped
// linearly onto the dataset bounds. Handles are clamped to the track and
// never cross: start <= end always holds.
type Slider struct {
	bounds incidents.Window
	width  int
	start  int
	end    int
	focus  Handle
	scale  scale.Time
}

// NewSlider returns a slider spanning bounds with both handles at the ends
// of a width-cell track.
func NewSlider(bounds incidents.Window, width int) *Slider {
	s := &Slider{bounds: bounds}
	s.resize(width)
	s.start, s.end = 0, s.width-1
	return s
}

func (s *Slider) resize(width int) {
	s.width = max(width, 1)
	s.scale = scale.NewTime(s.bounds.Start, s.bounds.End, 0, float64(s.width-1))
}

// SetWidth resizes the track, keeping the selected window as close as the
// new resolution allows.
func (s *Slider) SetWidth(width int) {
	if max(width, 1) == s.width {
		return
	}
	w := s.Window()
	s.resize(width)
	s.start = s.column(w.Start)
	s.end = max(s.column(w.End), s.start)
}

// Width returns the track width in cells.
func (s *Slider) Width() int {
	return s.width
}

// Bounds returns the dataset range the track covers.
func (s *Slider) Bounds() incidents.Window {
	return s.bounds
}

// Positions returns the cell of each handle.
func (s *Slider) Positions() (int, int) {
	return s.start, s.end
}

// Focus returns the handle moved by keyboard input.
func (s *Slider) Focus() Handle {
	return s.focus
}

// SetFocus selects the handle moved by keyboard input.
func (s *Slider) SetFocus(h Handle) {
	s.focus = h
}

// ToggleFocus switches keyboard input to the other handle.
func (s *Slider) ToggleFocus() {
	if s.focus == HandleStart {
		s.focus = HandleEnd
	} else {
		s.focus = HandleStart
	}
}

// Move shifts handle h by delta cells. It reports whether the handle moved.
func (s *Slider) Move(h Handle, delta int) bool {
	pos := s.start
	if h == HandleEnd {
		pos = s.end
	}
	return s.Set(h, pos+delta)
}

// Set places handle h at cell pos, clamped to the track. A handle pushed
// past the other one is pinned to it.
func (s *Slider) Set(h Handle, pos int) bool {
	pos = mathutil.Clamp(pos, 0, s.width-1)
	switch h {
	case HandleEnd:
		pos = max(pos, s.start)
		if pos == s.end {
			return false
		}
		s.end = pos
	default:
		pos = min(pos, s.end)
		if pos == s.start {
			return false
		}
		s.start = pos
	}
	return true
}

// SetDate places handle h at the cell closest to t.
func (s *Slider) SetDate(h Handle, t time.Time) bool {
	return s.Set(h, s.column(t))
}

// Nearest returns the handle closest to pos. Ties go to the focused handle
// so that two pinned handles can be pulled apart in either direction.
func (s *Slider) Nearest(pos int) Handle {
	ds, de := abs(pos-s.start), abs(pos-s.end)
	switch {
	case ds < de:
		return HandleStart
	case de < ds:
		return HandleEnd
	case pos < s.start:
		return HandleStart
	case pos > s.end:
		return HandleEnd
	default:
		return s.focus
	}
}

// DateAt returns the day under cell pos.
func (s *Slider) DateAt(pos int) time.Time {
	pos = mathutil.Clamp(pos, 0, s.width-1)
	return incidents.Day(s.scale.Invert(float64(pos)))
}

// Window returns the selected date range.
func (s *Slider) Window() incidents.Window {
	if s.start == 0 && s.end == s.width-1 {
		return s.bounds
	}
	start, end := s.DateAt(s.start), s.DateAt(s.end)
	if s.start == 0 {
		start = s.bounds.Start
	}
	if s.end == s.width-1 {
		end = s.bounds.End
	}
	return incidents.NewWindow(start, end).Clip(s.bounds)
}

func (s *Slider) column(t time.Time) int {
	return s.scale.Column(incidents.Day(t))
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
