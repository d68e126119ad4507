// Package navbar renders the bottom navigation bar.
package navbar

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	"charm.land/lipgloss/v2"

	"github.com/kpumuk/incidentscope/internal/ui/charts"
)

// SceneInfo holds information about a scene for display in the navbar.
type SceneInfo struct {
	Name string
}

// Styles holds the styles needed by the navbar.
type Styles struct {
	Bar    lipgloss.Style
	Brand  lipgloss.Style
	Key    lipgloss.Style
	Item   lipgloss.Style
	Active lipgloss.Style
	Quit   lipgloss.Style
}

// DefaultStyles returns default styles for the navbar.
func DefaultStyles() Styles {
	return Styles{
		Bar:    lipgloss.NewStyle().Padding(0, 1),
		Brand:  lipgloss.NewStyle().Bold(true).PaddingRight(1),
		Key:    lipgloss.NewStyle().Padding(0, 1),
		Item:   lipgloss.NewStyle().PaddingRight(1),
		Active: lipgloss.NewStyle().Bold(true).Reverse(true).PaddingRight(1),
		Quit:   lipgloss.NewStyle().PaddingRight(1),
	}
}

// Model defines state for the navbar component.
type Model struct {
	styles Styles
	scenes []SceneInfo
	active int
	brand  string
	hints  []key.Binding
	width  int
}

// Option is used to set options in New.
type Option func(*Model)

// New creates a new navbar model.
func New(opts ...Option) Model {
	m := Model{
		styles: DefaultStyles(),
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

// WithScenes sets the scenes to display.
func WithScenes(scenes []SceneInfo) Option {
	return func(m *Model) {
		m.scenes = scenes
	}
}

// WithBrand sets the name rendered at the left edge.
func WithBrand(brand string) Option {
	return func(m *Model) {
		m.brand = brand
	}
}

// WithHelp sets the key hints rendered before the quit hint.
func WithHelp(bindings ...key.Binding) Option {
	return func(m *Model) {
		m.hints = bindings
	}
}

// WithWidth sets the width.
func WithWidth(w int) Option {
	return func(m *Model) {
		m.width = w
	}
}

// SetStyles sets the styles.
func (m *Model) SetStyles(s Styles) {
	m.styles = s
}

// SetScenes sets the scenes to display.
func (m *Model) SetScenes(scenes []SceneInfo) {
	m.scenes = scenes
}

// SetActive highlights the scene at index i.
func (m *Model) SetActive(i int) {
	m.active = i
}

// Active returns the highlighted scene index.
func (m Model) Active() int {
	return m.active
}

// SetWidth sets the width.
func (m *Model) SetWidth(w int) {
	m.width = w
}

// Width returns the current width.
func (m Model) Width() int {
	return m.width
}

// Height returns the height of the navbar (always 1).
func (m Model) Height() int {
	return 1
}

// View renders the navbar. Scene names are dropped from the right when the
// bar is too narrow to fit them all.
func (m Model) View() string {
	if m.width <= 0 {
		return ""
	}

	var left strings.Builder
	if m.brand != "" {
		left.WriteString(m.styles.Brand.Render(m.brand))
	}
	for i, s := range m.scenes {
		left.WriteString(m.styles.Key.Render(fmt.Sprintf("%d", i+1)))
		if i == m.active {
			left.WriteString(m.styles.Active.Render(s.Name))
		} else {
			left.WriteString(m.styles.Item.Render(s.Name))
		}
	}

	var right strings.Builder
	for _, b := range m.hints {
		if !b.Enabled() {
			continue
		}
		h := b.Help()
		right.WriteString(m.styles.Key.Render(h.Key) + m.styles.Item.Render(h.Desc))
	}
	right.WriteString(m.styles.Key.Render("q") + m.styles.Quit.Render("quit"))

	inner := max(m.width-m.styles.Bar.GetHorizontalFrameSize(), 0)
	leftText, rightText := left.String(), right.String()
	gap := inner - lipgloss.Width(leftText) - lipgloss.Width(rightText)
	var content string
	if gap >= 1 {
		content = leftText + strings.Repeat(" ", gap) + rightText
	} else {
		content = charts.PadRight(leftText, inner)
	}

	return m.styles.Bar.Width(m.width).Render(charts.PadRight(content, inner))
}
