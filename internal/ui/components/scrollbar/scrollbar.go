// Package scrollbar renders a one-column scroll position indicator.
package scrollbar

import (
	"math"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/kpumuk/incidentscope/internal/mathutil"
)

// DefaultWidth is the number of columns a scrollbar occupies.
const DefaultWidth = 1

const (
	thumbGlyph = "█"
	trackGlyph = "░"
)

// Styles holds the styles needed for the scrollbar.
type Styles struct {
	Track lipgloss.Style
	Thumb lipgloss.Style
}

// Model describes a scrollable region of total lines, of which visible
// lines starting at offset are on screen.
type Model struct {
	styles  Styles
	height  int
	total   int
	visible int
	offset  int
}

// Option is used to set options in New.
type Option func(*Model)

// New creates a new scrollbar model.
func New(opts ...Option) Model {
	var m Model
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// WithStyles sets the scrollbar styles.
func WithStyles(s Styles) Option {
	return func(m *Model) { m.styles = s }
}

// WithSize sets the scrollbar size. Widths other than DefaultWidth are
// ignored.
func WithSize(_, height int) Option {
	return func(m *Model) { m.height = height }
}

// WithRange sets the scrolled region.
func WithRange(total, visible, offset int) Option {
	return func(m *Model) {
		m.total = total
		m.visible = visible
		m.offset = offset
	}
}

// Thumb returns the first row and the height of the thumb. The height is 0
// when everything fits.
func (m Model) Thumb() (int, int) {
	if m.height <= 0 || m.visible <= 0 || m.total <= m.visible {
		return 0, 0
	}
	ratio := float64(m.height) / float64(m.total)
	size := mathutil.Clamp(int(math.Round(float64(m.visible)*ratio)), 1, m.height)
	top := mathutil.Clamp(int(math.Round(float64(m.offset)*ratio)), 0, m.height-size)
	return top, size
}

// View renders the scrollbar, one glyph per row. A region that fits renders
// as blank rows so the layout does not shift.
func (m Model) View() string {
	if m.height <= 0 {
		return ""
	}

	top, size := m.Thumb()
	rows := make([]string, m.height)
	for i := range rows {
		switch {
		case size == 0:
			rows[i] = " "
		case i >= top && i < top+size:
			rows[i] = m.styles.Thumb.Render(thumbGlyph)
		default:
			rows[i] = m.styles.Track.Render(trackGlyph)
		}
	}
	return strings.Join(rows, "\n")
}
