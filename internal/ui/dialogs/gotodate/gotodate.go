// Package gotodate provides a dialog that reads a date or a date range.
package gotodate

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/kpumuk/incidentscope/internal/incidents"
	"github.com/kpumuk/incidentscope/internal/ui/components/frame"
	"github.com/kpumuk/incidentscope/internal/ui/dialogs"
)

// DialogID identifies the go-to-date dialog.
const DialogID dialogs.DialogID = "gotodate"

const rangeSeparator = ".."

// Kind describes what the user entered.
type Kind int

const (
	// KindDate is a single day.
	KindDate Kind = iota
	// KindRange is a start..end window.
	KindRange
)

// ActionMsg reports a parsed entry. Window.Start == Window.End for KindDate.
type ActionMsg struct {
	Kind   Kind
	Window incidents.Window
}

var errEmpty = errors.New("enter a date")

// Styles holds the styles used by the dialog.
type Styles struct {
	Title       lipgloss.Style
	Border      lipgloss.Style
	Prompt      lipgloss.Style
	Text        lipgloss.Style
	Placeholder lipgloss.Style
	Cursor      lipgloss.Style
	Muted       lipgloss.Style
	Error       lipgloss.Style
}

// DefaultStyles returns zero-value styles.
func DefaultStyles() Styles {
	return Styles{}
}

// Model defines state for the dialog.
type Model struct {
	styles       Styles
	keys         dialogs.KeyMap
	input        textinput.Model
	bounds       incidents.Window
	allowRange   bool
	err          error
	width        int
	height       int
	windowWidth  int
	windowHeight int
	row          int
	col          int
	padding      int
	minWidth     int
}

// Option configures the dialog.
type Option func(*Model)

// New creates a new go-to-date dialog.
func New(opts ...Option) *Model {
	m := &Model{
		styles:   DefaultStyles(),
		keys:     dialogs.DefaultKeyMap(),
		input:    textinput.New(),
		padding:  1,
		minWidth: 38,
	}

	m.input.Prompt = ""
	m.input.CharLimit = len("2006-01-02..2006-01-02")
	m.input.Blur()

	for _, opt := range opts {
		opt(m)
	}

	m.applyStyles()
	m.applySize()
	m.input.Placeholder = m.placeholder()

	return m
}

// WithStyles sets the styles.
func WithStyles(s Styles) Option {
	return func(m *Model) {
		m.styles = s
	}
}

// WithBounds rejects dates outside bounds.
func WithBounds(bounds incidents.Window) Option {
	return func(m *Model) {
		m.bounds = bounds
	}
}

// WithRange accepts start..end entries in addition to single dates.
func WithRange(allow bool) Option {
	return func(m *Model) {
		m.allowRange = allow
	}
}

// WithValue prefills the input.
func WithValue(value string) Option {
	return func(m *Model) {
		m.input.SetValue(value)
	}
}

// WithMinWidth sets the minimum dialog width.
func WithMinWidth(width int) Option {
	return func(m *Model) {
		m.minWidth = width
	}
}

// Err returns the last validation error.
func (m *Model) Err() error {
	return m.err
}

// Init focuses the input.
func (m *Model) Init() tea.Cmd {
	m.input.CursorEnd()
	return m.input.Focus()
}

// Update handles input and dialog lifecycle.
func (m *Model) Update(msg tea.Msg) (dialogs.DialogModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.windowWidth = msg.Width
		m.windowHeight = msg.Height
		m.applySize()
		return m, nil
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Close) {
			return m, func() tea.Msg { return dialogs.CloseDialogMsg{} }
		}
		switch msg.String() {
		case "enter":
			action, err := m.parse(m.input.Value())
			if err != nil {
				m.err = err
				return m, nil
			}
			m.err = nil
			return m, tea.Batch(
				func() tea.Msg { return action },
				func() tea.Msg { return dialogs.CloseDialogMsg{} },
			)
		case "ctrl+u":
			m.input.SetValue("")
			m.input.CursorEnd()
			m.err = nil
			return m, nil
		}

		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		m.err = nil
		return m, cmd
	}

	return m, nil
}

// Close blurs the input and drops a stale validation error so a reopened
// dialog starts clean.
func (m *Model) Close() tea.Cmd {
	m.input.Blur()
	m.err = nil
	return nil
}

func (m *Model) parse(value string) (ActionMsg, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return ActionMsg{}, errEmpty
	}

	if start, end, ok := strings.Cut(value, rangeSeparator); ok && m.allowRange {
		w, err := incidents.ParseWindow(strings.TrimSpace(start), strings.TrimSpace(end))
		if err != nil {
			return ActionMsg{}, fmt.Errorf("use YYYY-MM-DD%sYYYY-MM-DD", rangeSeparator)
		}
		if !m.bounds.IsZero() && !w.Within(m.bounds) {
			return ActionMsg{}, fmt.Errorf("range outside %s", m.bounds)
		}
		return ActionMsg{Kind: KindRange, Window: w}, nil
	}

	t, err := time.Parse(time.DateOnly, value)
	if err != nil {
		return ActionMsg{}, errors.New("use YYYY-MM-DD")
	}
	if !m.bounds.IsZero() && !m.bounds.Contains(t) {
		return ActionMsg{}, fmt.Errorf("date outside %s", m.bounds)
	}
	return ActionMsg{Kind: KindDate, Window: incidents.NewWindow(t, t)}, nil
}

// View renders the dialog.
func (m *Model) View() string {
	contentWidth := max(m.width-2-(m.padding*2), 1)
	content := lipgloss.NewStyle().Width(contentWidth).MaxWidth(contentWidth).Render(m.input.View())

	footer := "enter go · esc cancel"
	muted := m.styles.Muted
	if m.err != nil {
		footer = m.err.Error()
		muted = m.styles.Error
	}
	styles := frame.Styles{
		Title:  m.styles.Title,
		Muted:  muted,
		Border: m.styles.Border,
	}

	title := "Go to date"
	if m.allowRange {
		title = "Go to date or range"
	}
	box := frame.New(
		frame.WithStyles(styles),
		frame.WithTitle(title),
		frame.WithTitlePadding(0),
		frame.WithFooter(footer),
		frame.WithContent(content),
		frame.WithPadding(m.padding),
		frame.WithSize(m.width, m.height),
		frame.WithMinHeight(3),
	)
	return box.View()
}

// Position returns the dialog position.
func (m *Model) Position() (int, int) {
	return m.row, m.col
}

// ID returns the dialog ID.
func (m *Model) ID() dialogs.DialogID {
	return DialogID
}

func (m *Model) applyStyles() {
	styles := m.input.Styles()
	styles.Focused.Prompt = m.styles.Prompt
	styles.Focused.Text = m.styles.Text
	styles.Focused.Placeholder = m.styles.Placeholder
	styles.Blurred.Prompt = m.styles.Prompt
	styles.Blurred.Text = m.styles.Text
	styles.Blurred.Placeholder = m.styles.Placeholder
	if cursorColor := m.styles.Cursor.GetForeground(); cursorColor != nil {
		styles.Cursor.Color = cursorColor
	}
	m.input.SetStyles(styles)
}

func (m *Model) applySize() {
	if m.windowWidth == 0 || m.windowHeight == 0 {
		return
	}

	dialogWidth := max(m.windowWidth/2, m.minWidth)
	dialogWidth = min(dialogWidth, m.windowWidth-4)
	if dialogWidth < 10 {
		dialogWidth = max(m.windowWidth-2, 10)
	}

	dialogHeight := 3
	if m.windowHeight < dialogHeight {
		dialogHeight = max(m.windowHeight, 3)
	}

	m.width = dialogWidth
	m.height = dialogHeight
	m.row = max((m.windowHeight-dialogHeight)/2, 0)
	m.col = max((m.windowWidth-dialogWidth)/2, 0)

	contentWidth := max(dialogWidth-2-(m.padding*2), 1)
	// textinput renders a virtual cursor that adds one extra column.
	m.input.SetWidth(max(contentWidth-lipgloss.Width(m.input.Prompt)-1, 1))
}

func (m *Model) placeholder() string {
	if m.allowRange {
		return "YYYY-MM-DD or YYYY-MM-DD..YYYY-MM-DD"
	}
	return "YYYY-MM-DD"
}
