// Package messagebox renders a framed placeholder with a centred message,
// shown while the dataset loads or when a window has nothing to plot.
package messagebox

import (
	"strings"

	"github.com/kpumuk/incidentscope/internal/ui/charts"
	"github.com/kpumuk/incidentscope/internal/ui/components/frame"
)

// MinHeight is the smallest box rendered, whatever height is requested.
const MinHeight = 5

// Styles holds the styles of the box. The message uses Muted.
type Styles = frame.Styles

// DefaultStyles returns default styles for the message box.
func DefaultStyles() Styles {
	return frame.DefaultStyles()
}

// Render draws a width-wide box titled title with message centred inside.
// Each line of message is styled separately so centring sees plain widths.
func Render(styles Styles, title, message string, width, height int) string {
	if width <= 2 {
		return ""
	}
	height = max(height, MinHeight)

	lines := strings.Split(message, "\n")
	for i, line := range lines {
		lines[i] = styles.Muted.Render(line)
	}

	return frame.New(
		frame.WithStyles(styles),
		frame.WithTitle(title),
		frame.WithSize(width, height),
		frame.WithContent(charts.RenderCentered(width-2, height-2, strings.Join(lines, "\n"))),
	).View()
}
