// Package frame renders the rounded panel used by dialogs and popups. The
// title and an optional meta label sit in the top border, a key hint in the
// bottom border.
package frame

import (
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
)

// Styles holds the styles of a frame.
type Styles struct {
	Title  lipgloss.Style
	Muted  lipgloss.Style
	Border lipgloss.Style
}

// DefaultStyles returns default styles for a frame.
func DefaultStyles() Styles {
	return Styles{
		Title:  lipgloss.NewStyle().Bold(true),
		Muted:  lipgloss.NewStyle().Faint(true),
		Border: lipgloss.NewStyle(),
	}
}

// Model is a frame ready to render.
type Model struct {
	styles       Styles
	title        string
	meta         string
	footer       string
	content      string
	width        int
	height       int
	minHeight    int
	padding      int
	titlePadding int
	metaPadding  int
}

// Option is used to set options in New.
type Option func(*Model)

// New creates a new frame model.
func New(opts ...Option) Model {
	m := Model{
		styles:       DefaultStyles(),
		titlePadding: 1,
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// WithStyles sets the styles.
func WithStyles(s Styles) Option {
	return func(m *Model) { m.styles = s }
}

// WithTitle sets the label at the left of the top border.
func WithTitle(title string) Option {
	return func(m *Model) { m.title = title }
}

// WithMeta sets the label at the right of the top border.
func WithMeta(meta string) Option {
	return func(m *Model) { m.meta = meta }
}

// WithFooter sets the muted hint at the right of the bottom border.
func WithFooter(footer string) Option {
	return func(m *Model) { m.footer = footer }
}

// WithContent sets the body. Lines beyond the frame are cut.
func WithContent(content string) Option {
	return func(m *Model) { m.content = content }
}

// WithSize sets the outer size including the border.
func WithSize(width, height int) Option {
	return func(m *Model) {
		m.width = width
		m.height = height
	}
}

// WithMinHeight sets the smallest outer height rendered.
func WithMinHeight(height int) Option {
	return func(m *Model) { m.minHeight = height }
}

// WithPadding sets the horizontal padding inside the border.
func WithPadding(padding int) Option {
	return func(m *Model) { m.padding = padding }
}

// WithTitlePadding sets the spaces around the title and footer.
func WithTitlePadding(padding int) Option {
	return func(m *Model) { m.titlePadding = padding }
}

// WithMetaPadding sets the spaces around the meta label.
func WithMetaPadding(padding int) Option {
	return func(m *Model) { m.metaPadding = padding }
}

// Height returns the outer height View renders.
func (m Model) Height() int {
	return max(m.height, m.minHeight)
}

// View renders the frame. It is empty when the frame cannot fit both
// borders.
func (m Model) View() string {
	height := m.Height()
	if m.width <= 0 || height < 2 {
		return ""
	}

	border := lipgloss.RoundedBorder()
	inner := max(m.width-2, 0)

	lines := make([]string, 0, height)
	lines = append(lines, m.top(border, inner))
	body := strings.Split(m.content, "\n")
	left := m.styles.Border.Render(border.Left)
	right := m.styles.Border.Render(border.Right)
	for i := range height - 2 {
		var line string
		if i < len(body) {
			line = body[i]
		}
		lines = append(lines, left+fit(pad(line, m.padding), inner)+right)
	}
	lines = append(lines, m.bottom(border, inner))

	return strings.Join(lines, "\n")
}

func (m Model) top(border lipgloss.Border, inner int) string {
	bar := m.styles.Border.Render(border.Top)
	available := max(inner-2, 0)

	title := pad(m.title, m.titlePadding)
	meta := pad(m.meta, m.metaPadding)
	if meta != "" {
		meta = m.styles.Border.Render("╖") + meta + m.styles.Border.Render("╓")
	}

	// The meta label goes first when space runs out, then the title shrinks.
	if lipgloss.Width(title)+lipgloss.Width(meta) > available {
		meta = ""
		if lipgloss.Width(title) > available {
			title = ansi.Truncate(title, available, "…")
		}
	}
	styledTitle := m.styles.Title.Render(title)
	fill := max(available-lipgloss.Width(styledTitle)-lipgloss.Width(meta), 0)

	return m.styles.Border.Render(border.TopLeft) +
		bar +
		styledTitle +
		strings.Repeat(bar, fill) +
		meta +
		bar +
		m.styles.Border.Render(border.TopRight)
}

func (m Model) bottom(border lipgloss.Border, inner int) string {
	bar := m.styles.Border.Render(border.Bottom)
	left := m.styles.Border.Render(border.BottomLeft)
	right := m.styles.Border.Render(border.BottomRight)

	footer := pad(m.footer, m.titlePadding)
	width := lipgloss.Width(footer)
	if footer == "" || width > inner-2 {
		return left + strings.Repeat(bar, inner) + right
	}
	return left +
		strings.Repeat(bar, inner-width-1) +
		m.styles.Muted.Render(footer) +
		bar +
		right
}

// fit pads or cuts s to exactly width cells.
func fit(s string, width int) string {
	if width <= 0 {
		return ""
	}
	w := lipgloss.Width(s)
	switch {
	case w < width:
		return s + strings.Repeat(" ", width-w)
	case w > width:
		return ansi.Truncate(s, width, "")
	}
	return s
}

func pad(s string, n int) string {
	if s == "" || n <= 0 {
		return s
	}
	spaces := strings.Repeat(" ", n)
	return spaces + s + spaces
}
