// Package errorpopup renders the box shown when the dataset cannot be loaded.
package errorpopup

import (
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/kpumuk/incidentscope/internal/ui/components/frame"
)

const (
	// DefaultTitle is shown in the top border.
	DefaultTitle = "Load Error"

	maxWidth = 60
)

// Styles holds the styles needed by the error popup.
type Styles struct {
	Title   lipgloss.Style
	Message lipgloss.Style
	Hint    lipgloss.Style
	Border  lipgloss.Style
}

// DefaultStyles returns default styles for the error popup.
func DefaultStyles() Styles {
	errorColor := lipgloss.Color("#FF0000")
	return Styles{
		Title:   lipgloss.NewStyle().Foreground(errorColor).Bold(true),
		Message: lipgloss.NewStyle(),
		Hint:    lipgloss.NewStyle().Faint(true),
		Border:  lipgloss.NewStyle().Foreground(errorColor),
	}
}

// Model defines state for the error popup component.
type Model struct {
	styles  Styles
	title   string
	message string
	details []string
	hint    string
	width   int
	height  int
}

// Option is used to set options in New.
type Option func(*Model)

// New creates a new error popup model.
func New(opts ...Option) Model {
	m := Model{
		styles: DefaultStyles(),
		title:  DefaultTitle,
	}

	for _, opt := range opts {
		opt(&m)
	}

	return m
}

// WithStyles sets the styles.
func WithStyles(s Styles) Option {
	return func(m *Model) {
		m.styles = s
	}
}

// WithSize sets the available width and height.
func WithSize(w, h int) Option {
	return func(m *Model) {
		m.width = w
		m.height = h
	}
}

// WithTitle overrides the title.
func WithTitle(title string) Option {
	return func(m *Model) {
		m.title = title
	}
}

// WithMessage sets the error message.
func WithMessage(msg string) Option {
	return func(m *Model) {
		m.message = msg
	}
}

// WithDetails sets extra lines rendered under the message.
func WithDetails(details ...string) Option {
	return func(m *Model) {
		m.details = details
	}
}

// WithHint sets the hint embedded in the bottom border.
func WithHint(hint string) Option {
	return func(m *Model) {
		m.hint = hint
	}
}

// SetStyles sets the styles.
func (m *Model) SetStyles(s Styles) {
	m.styles = s
}

// SetSize sets the available width and height.
func (m *Model) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// SetMessage sets the error message to display.
func (m *Model) SetMessage(msg string) {
	m.message = msg
}

// SetDetails sets extra lines rendered under the message.
func (m *Model) SetDetails(details ...string) {
	m.details = details
}

// Width returns the current width.
func (m Model) Width() int {
	return m.width
}

// Height returns the current height.
func (m Model) Height() int {
	return m.height
}

// Message returns the current error message.
func (m Model) Message() string {
	return m.message
}

// HasError returns true if there is an error message to display.
func (m Model) HasError() bool {
	return m.message != ""
}

// View renders the popup box, at most 60 cells wide and never taller than
// the available height. The caller places it over the screen.
func (m Model) View() string {
	if m.message == "" || m.width < 4 || m.height < 3 {
		return ""
	}

	width := min(m.width, maxWidth)
	innerWidth := width - 4

	lines := wrap(m.styles.Message, m.message, innerWidth)
	if len(m.details) > 0 {
		lines = append(lines, "")
		for _, d := range m.details {
			lines = append(lines, wrap(m.styles.Hint, d, innerWidth)...)
		}
	}
	height := min(len(lines)+2, m.height)

	styles := frame.Styles{
		Title:  m.styles.Title,
		Muted:  m.styles.Hint,
		Border: m.styles.Border,
	}
	box := frame.New(
		frame.WithStyles(styles),
		frame.WithTitle(m.title),
		frame.WithFooter(m.hint),
		frame.WithPadding(1),
		frame.WithSize(width, height),
		frame.WithContent(strings.Join(lines, "\n")),
	)
	return box.View()
}

func wrap(style lipgloss.Style, text string, width int) []string {
	wrapped := strings.Split(ansi.Wordwrap(text, width, ""), "\n")
	for i, line := range wrapped {
		wrapped[i] = style.Render(line)
	}
	return wrapped
}
