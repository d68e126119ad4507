// Package charts provides layout helpers shared by the chart components.
package charts

import (
	"math"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/kpumuk/incidentscope/internal/mathutil"
)

// AxisMap creates a mapping from source indices to target indices.
// Used to remap data series to fit available space.
func AxisMap(total, target int) []int {
	if total <= 0 || target <= 0 {
		return nil
	}
	mapping := make([]int, total)
	if total == 1 {
		return mapping
	}
	maxIdx := float64(target - 1)
	denom := float64(total - 1)
	for i := range total {
		mapping[i] = int(math.Round(float64(i) * maxIdx / denom))
	}
	return mapping
}

// RemapSeries aggregates values according to a target width.
// Values are bucketed together when the target is smaller than the source.
func RemapSeries(values []int, target int) []int {
	if len(values) == 0 || target <= 0 {
		return nil
	}
	mapping := AxisMap(len(values), target)
	out := make([]int, target)
	for i, v := range values {
		out[mapping[i]] += v
	}
	return out
}

// Mark is a single styled glyph placed on a marker row.
type Mark struct {
	Col   int
	Glyph string
	Style lipgloss.Style
}

// MarkerLine renders a width-cell row of blanks with marks placed at their
// columns. Marks outside the row are dropped; a later mark on an occupied
// column replaces the earlier one.
func MarkerLine(width int, marks []Mark) string {
	if width <= 0 {
		return ""
	}
	cells := make([]string, width)
	for i := range cells {
		cells[i] = " "
	}
	for _, mark := range marks {
		if mark.Col < 0 || mark.Col >= width || mark.Glyph == "" {
			continue
		}
		cells[mark.Col] = mark.Style.Render(ansi.Truncate(mark.Glyph, 1, ""))
	}
	return strings.Join(cells, "")
}

// Tick is an axis label centered on a column.
type Tick struct {
	Col   int
	Label string
}

// TickLine renders a width-cell label row. Labels are centered on their
// columns, clipped to the row and skipped when they would touch the
// previous label.
func TickLine(width int, ticks []Tick) string {
	if width <= 0 {
		return ""
	}
	line := make([]rune, width)
	for i := range line {
		line[i] = ' '
	}

	lastEnd := -2
	for _, tick := range ticks {
		labelRunes := []rune(tick.Label)
		if len(labelRunes) == 0 {
			continue
		}
		start := tick.Col - len(labelRunes)/2
		start = mathutil.Clamp(start, 0, max(width-len(labelRunes), 0))
		if start <= lastEnd+1 {
			continue
		}
		end := min(start+len(labelRunes), width)
		for j := start; j < end; j++ {
			line[j] = labelRunes[j-start]
		}
		lastEnd = end - 1
	}
	return string(line)
}

// Overlay draws block over base with its top-left corner at (row, col).
// Lines of base outside the block are untouched; base is padded when the
// block extends past its last line.
func Overlay(base, block string, row, col int) string {
	if block == "" {
		return base
	}
	row = max(row, 0)
	col = max(col, 0)

	baseLines := strings.Split(base, "\n")
	blockLines := strings.Split(block, "\n")
	for len(baseLines) < row+len(blockLines) {
		baseLines = append(baseLines, "")
	}

	for i, line := range blockLines {
		target := baseLines[row+i]
		targetWidth := ansi.StringWidth(target)
		if targetWidth < col {
			target += strings.Repeat(" ", col-targetWidth)
		}
		left := ansi.Truncate(target, col, "")
		right := ansi.TruncateLeft(target, col+ansi.StringWidth(line), "")
		baseLines[row+i] = left + line + right
	}
	return strings.Join(baseLines, "\n")
}

// OverlayCenter draws block centered over a width x height base.
func OverlayCenter(base, block string, width, height int) string {
	blockWidth := lipgloss.Width(block)
	blockHeight := lipgloss.Height(block)
	return Overlay(base, block, (height-blockHeight)/2, (width-blockWidth)/2)
}

// RenderCentered centers content within a given width and height.
// Handles multi-line content by centering vertically and horizontally.
func RenderCentered(width, height int, value string) string {
	if height < 1 {
		return ""
	}
	lines := make([]string, height)
	for i := range lines {
		lines[i] = strings.Repeat(" ", max(width, 0))
	}
	if width <= 0 {
		return strings.Join(lines, "\n")
	}

	contentLines := strings.Split(value, "\n")
	contentHeight := len(contentLines)
	startLine := max((height-contentHeight)/2, 0)

	maxWidthStyle := lipgloss.NewStyle()
	for i, contentLine := range contentLines {
		lineIdx := startLine + i
		if lineIdx >= height {
			break
		}
		trimmed := maxWidthStyle.MaxWidth(width).Render(contentLine)
		pad := max((width-lipgloss.Width(trimmed))/2, 0)
		lines[lineIdx] = strings.Repeat(" ", pad) + trimmed
	}

	return strings.Join(lines, "\n")
}

// PadRight pads or truncates value to exactly width cells.
func PadRight(value string, width int) string {
	if width <= 0 {
		return ""
	}
	w := ansi.StringWidth(value)
	switch {
	case w == width:
		return value
	case w > width:
		return ansi.Truncate(value, width, "")
	default:
		return value + strings.Repeat(" ", width-w)
	}
}
