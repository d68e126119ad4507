// Package help provides the key bindings dialog.
package help

import (
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/kpumuk/incidentscope/internal/mathutil"
	"github.com/kpumuk/incidentscope/internal/ui/charts"
	"github.com/kpumuk/incidentscope/internal/ui/components/frame"
	"github.com/kpumuk/incidentscope/internal/ui/components/scrollbar"
	"github.com/kpumuk/incidentscope/internal/ui/dialogs"
)

// DialogID identifies the help dialog.
const DialogID dialogs.DialogID = "help"

// Column places a section in the two-column layout.
type Column int

const (
	ColumnLeft Column = iota
	ColumnRight
)

// Below this content width both columns are stacked.
const stackWidth = 56

// Section groups bindings or free-form lines under a title.
type Section struct {
	Title    string
	Bindings []key.Binding
	Lines    []string
	Column   Column
}

// Styles holds the styles used by the help dialog.
type Styles struct {
	Title   lipgloss.Style
	Border  lipgloss.Style
	Section lipgloss.Style
	Key     lipgloss.Style
	Desc    lipgloss.Style
	Muted   lipgloss.Style

	Scrollbar scrollbar.Styles
}

// KeyMap defines the dialog bindings.
type KeyMap struct {
	Close    key.Binding
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Top      key.Binding
	Bottom   key.Binding
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Close:    key.NewBinding(key.WithKeys("?", "esc", "q"), key.WithHelp("esc", "close")),
		Up:       key.NewBinding(key.WithKeys("up", "k")),
		Down:     key.NewBinding(key.WithKeys("down", "j")),
		PageUp:   key.NewBinding(key.WithKeys("pgup")),
		PageDown: key.NewBinding(key.WithKeys("pgdown", "space")),
		Top:      key.NewBinding(key.WithKeys("home")),
		Bottom:   key.NewBinding(key.WithKeys("end")),
	}
}

// Model defines state for the help dialog.
type Model struct {
	styles       Styles
	keys         KeyMap
	title        string
	sections     []Section
	width        int
	height       int
	windowWidth  int
	windowHeight int
	row          int
	col          int
	yOffset      int
}

// Option configures the help dialog.
type Option func(*Model)

// New creates a new help dialog model.
func New(opts ...Option) *Model {
	m := &Model{
		keys:  DefaultKeyMap(),
		title: "Help",
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// WithStyles sets the styles.
func WithStyles(s Styles) Option {
	return func(m *Model) { m.styles = s }
}

// WithTitle overrides the dialog title.
func WithTitle(title string) Option {
	return func(m *Model) { m.title = title }
}

// WithSections sets the help sections.
func WithSections(sections []Section) Option {
	return func(m *Model) { m.sections = sections }
}

// Init implements dialogs.DialogModel.
func (m *Model) Init() tea.Cmd { return nil }

// Update handles scrolling and closing.
func (m *Model) Update(msg tea.Msg) (dialogs.DialogModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.windowWidth = msg.Width
		m.windowHeight = msg.Height
		m.applySize()
	case tea.MouseWheelMsg:
		switch msg.Button {
		case tea.MouseWheelUp:
			m.scrollTo(m.yOffset - 1)
		case tea.MouseWheelDown:
			m.scrollTo(m.yOffset + 1)
		}
	case tea.KeyMsg:
		page := max(m.bodyHeight()-1, 1)
		switch {
		case key.Matches(msg, m.keys.Close):
			return m, func() tea.Msg { return dialogs.CloseDialogMsg{} }
		case key.Matches(msg, m.keys.Up):
			m.scrollTo(m.yOffset - 1)
		case key.Matches(msg, m.keys.Down):
			m.scrollTo(m.yOffset + 1)
		case key.Matches(msg, m.keys.PageUp):
			m.scrollTo(m.yOffset - page)
		case key.Matches(msg, m.keys.PageDown):
			m.scrollTo(m.yOffset + page)
		case key.Matches(msg, m.keys.Top):
			m.scrollTo(0)
		case key.Matches(msg, m.keys.Bottom):
			m.scrollTo(m.maxOffset())
		}
	}
	return m, nil
}

// View renders the help dialog.
func (m *Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}

	width, height := m.bodyWidth(), m.bodyHeight()
	lines := m.lines(width)
	overflow := len(lines) > height
	if overflow {
		width = max(width-scrollbar.DefaultWidth-1, 1)
		lines = m.lines(width)
	}
	total := len(lines)
	m.yOffset = mathutil.Clamp(m.yOffset, 0, max(total-height, 0))
	lines = lines[m.yOffset:min(m.yOffset+height, total)]

	content := strings.Join(lines, "\n")
	if overflow {
		bar := scrollbar.New(
			scrollbar.WithStyles(m.styles.Scrollbar),
			scrollbar.WithSize(scrollbar.DefaultWidth, height),
			scrollbar.WithRange(total, height, m.yOffset),
		)
		body := lipgloss.NewStyle().Width(width + 1).Height(height).Render(content)
		content = lipgloss.JoinHorizontal(lipgloss.Top, body, bar.View())
	}

	return frame.New(
		frame.WithStyles(frame.Styles{
			Title:  m.styles.Title,
			Muted:  m.styles.Muted,
			Border: m.styles.Border,
		}),
		frame.WithTitle(m.title),
		frame.WithFooter(dialogs.Footer(m.keys.Close)),
		frame.WithTitlePadding(0),
		frame.WithContent(content),
		frame.WithPadding(1),
		frame.WithSize(m.width, m.height),
	).View()
}

// Position returns the dialog position.
func (m *Model) Position() (int, int) {
	return m.row, m.col
}

// ID returns the dialog ID.
func (m *Model) ID() dialogs.DialogID {
	return DialogID
}

// applySize centres a dialog of two thirds of the window width and half its
// height, within minimums of 64x12.
func (m *Model) applySize() {
	if m.windowWidth == 0 || m.windowHeight == 0 {
		return
	}

	width := min(max(m.windowWidth*2/3, 64), m.windowWidth-4)
	if width < 10 {
		width = max(m.windowWidth-2, 10)
	}
	height := min(max(m.windowHeight/2, 12), m.windowHeight-4)
	if height < 5 {
		height = max(m.windowHeight-2, 5)
	}

	m.width, m.height = width, height
	m.row = max((m.windowHeight-height)/2, 0)
	m.col = max((m.windowWidth-width)/2, 0)
	m.scrollTo(m.yOffset)
}

// bodyWidth excludes the border and one column of padding on each side.
func (m *Model) bodyWidth() int {
	return max(m.width-4, 1)
}

func (m *Model) bodyHeight() int {
	return max(m.height-2, 0)
}

func (m *Model) maxOffset() int {
	return max(len(m.lines(m.bodyWidth()))-m.bodyHeight(), 0)
}

func (m *Model) scrollTo(offset int) {
	m.yOffset = mathutil.Clamp(offset, 0, m.maxOffset())
}

// lines lays the sections out in two columns, or one below stackWidth.
func (m *Model) lines(width int) []string {
	var left, right []Section
	for _, s := range m.sections {
		if s.Column == ColumnRight {
			right = append(right, s)
		} else {
			left = append(left, s)
		}
	}

	if width < stackWidth || len(left) == 0 || len(right) == 0 {
		return renderSections(append(left, right...), width, m.styles)
	}

	const gap = 4
	colWidth := (width - gap) / 2
	l := renderSections(left, colWidth, m.styles)
	r := renderSections(right, colWidth, m.styles)
	out := make([]string, max(len(l), len(r)))
	for i := range out {
		var a, b string
		if i < len(l) {
			a = l[i]
		}
		if i < len(r) {
			b = r[i]
		}
		out[i] = charts.PadRight(a, colWidth) + strings.Repeat(" ", gap) + b
	}
	return out
}

// renderSections renders each section as its title, its free-form lines and
// an aligned key column. Disabled bindings are skipped.
func renderSections(sections []Section, width int, styles Styles) []string {
	if width <= 0 {
		return nil
	}

	var lines []string
	for i, section := range sections {
		if i > 0 {
			lines = append(lines, "")
		}
		if title := strings.TrimSpace(section.Title); title != "" {
			lines = append(lines, styles.Section.Render(title))
		}
		lines = append(lines, section.Lines...)

		var bindings []key.Help
		keyWidth := 0
		for _, b := range section.Bindings {
			h := b.Help()
			if !b.Enabled() || strings.TrimSpace(h.Key) == "" {
				continue
			}
			bindings = append(bindings, h)
			keyWidth = max(keyWidth, ansi.StringWidth(h.Key))
		}
		if len(bindings) > 0 && len(section.Lines) > 0 {
			lines = append(lines, "")
		}
		for _, h := range bindings {
			line := styles.Key.Render(charts.PadRight(h.Key, keyWidth))
			if h.Desc != "" {
				line += " " + styles.Desc.Render(h.Desc)
			}
			lines = append(lines, line)
		}
	}

	for i, line := range lines {
		lines[i] = ansi.Truncate(line, width, "")
	}
	return lines
}
