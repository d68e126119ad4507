package views

import (
	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

// Styles holds the view-related styles from the theme
type Styles struct {
	Title       lipgloss.Style
	Text        lipgloss.Style
	Muted       lipgloss.Style
	Error       lipgloss.Style
	BorderStyle lipgloss.Style
	FocusBorder lipgloss.Style
	Key         lipgloss.Style

	// Chart
	Axis        lipgloss.Style
	AxisLabel   lipgloss.Style
	Incidents   lipgloss.Style
	Killed      lipgloss.Style
	Injured     lipgloss.Style
	Annotation  lipgloss.Style
	Cursor      lipgloss.Style
	LegendValue lipgloss.Style

	// Slider
	SliderTrack  lipgloss.Style
	SliderRange  lipgloss.Style
	SliderHandle lipgloss.Style
	SliderFocus  lipgloss.Style

	// JSON
	JSONKey         lipgloss.Style
	JSONString      lipgloss.Style
	JSONNumber      lipgloss.Style
	JSONBool        lipgloss.Style
	JSONNull        lipgloss.Style
	JSONPunctuation lipgloss.Style
}

// View defines the interface that all views must implement
type View interface {
	// Init returns an initial command for the view
	Init() tea.Cmd

	// Update handles messages and returns the updated view and any commands
	Update(msg tea.Msg) (View, tea.Cmd)

	// View renders the view as a string
	View() string

	// Name returns the display name for this view (shown in navbar)
	Name() string

	// ShortHelp returns keybindings to show in the help view
	ShortHelp() []key.Binding

	// SetSize updates the view dimensions
	SetSize(width, height int) View

	// SetStyles updates the view styles
	SetStyles(styles Styles) View
}
