// Package theme defines the colors and styles of the terminal UI.
package theme

import (
	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/compat"
)

// Theme defines all colors used throughout the UI.
type Theme struct {
	// Base colors
	Primary compat.CompleteAdaptiveColor

	// Text colors
	Text      compat.CompleteAdaptiveColor
	TextMuted compat.CompleteAdaptiveColor

	// Background colors
	MetricsBarBg compat.CompleteAdaptiveColor

	// Border colors
	Border      compat.AdaptiveColor
	BorderFocus compat.CompleteAdaptiveColor

	// Series colors
	Incidents compat.CompleteAdaptiveColor
	Killed    compat.CompleteAdaptiveColor
	Injured   compat.CompleteAdaptiveColor

	// Accent colors
	Annotation compat.AdaptiveColor
	Cursor     compat.AdaptiveColor
	Success    compat.AdaptiveColor
	Error      compat.AdaptiveColor

	// Metrics colors
	MetricsText compat.CompleteAdaptiveColor
}

// DefaultTheme is the adaptive color scheme used by default.
// Use Open Color palette when possible to define colors: https://yeun.github.io/open-color/
var DefaultTheme = Theme{
	Primary: compat.CompleteAdaptiveColor{
		Light: compat.CompleteColor{TrueColor: lipgloss.Color("#B2003C"), ANSI256: lipgloss.Color("161"), ANSI: lipgloss.Color("13")},
		Dark:  compat.CompleteColor{TrueColor: lipgloss.Color("#F73D68"), ANSI256: lipgloss.Color("204"), ANSI: lipgloss.Color("13")},
	},

	// Text
	Text: compat.CompleteAdaptiveColor{
		Light: compat.CompleteColor{TrueColor: lipgloss.Color("#111827"), ANSI256: lipgloss.Color("0"), ANSI: lipgloss.Color("0")},
		Dark:  compat.CompleteColor{TrueColor: lipgloss.Color("#F9FAFB"), ANSI256: lipgloss.Color("15"), ANSI: lipgloss.Color("15")},
	},
	TextMuted: compat.CompleteAdaptiveColor{
		Light: compat.CompleteColor{TrueColor: lipgloss.Color("#6B7280"), ANSI256: lipgloss.Color("240"), ANSI: lipgloss.Color("8")},
		Dark:  compat.CompleteColor{TrueColor: lipgloss.Color("#9CA3AF"), ANSI256: lipgloss.Color("250"), ANSI: lipgloss.Color("7")},
	},

	// Backgrounds
	MetricsBarBg: compat.CompleteAdaptiveColor{
		Light: compat.CompleteColor{TrueColor: lipgloss.Color("#1c7ed6"), ANSI256: lipgloss.Color("33"), ANSI: lipgloss.Color("12")},
		Dark:  compat.CompleteColor{TrueColor: lipgloss.Color("#4dabf7"), ANSI256: lipgloss.Color("25"), ANSI: lipgloss.Color("4")},
	},

	// Borders
	Border: compat.AdaptiveColor{
		Light: lipgloss.Color("#D1D5DB"), // Gray-300
		Dark:  lipgloss.Color("#374151"), // Gray-700
	},
	BorderFocus: compat.CompleteAdaptiveColor{
		Light: compat.CompleteColor{TrueColor: lipgloss.Color("#B2003C"), ANSI256: lipgloss.Color("161"), ANSI: lipgloss.Color("13")},
		Dark:  compat.CompleteColor{TrueColor: lipgloss.Color("#F73D68"), ANSI256: lipgloss.Color("204"), ANSI: lipgloss.Color("13")},
	},

	// Series, same hues as the exported charts
	Incidents: compat.CompleteAdaptiveColor{
		Light: compat.CompleteColor{TrueColor: lipgloss.Color("#2ca02c"), ANSI256: lipgloss.Color("34"), ANSI: lipgloss.Color("2")},
		Dark:  compat.CompleteColor{TrueColor: lipgloss.Color("#51cf66"), ANSI256: lipgloss.Color("77"), ANSI: lipgloss.Color("10")},
	},
	Killed: compat.CompleteAdaptiveColor{
		Light: compat.CompleteColor{TrueColor: lipgloss.Color("#d62728"), ANSI256: lipgloss.Color("160"), ANSI: lipgloss.Color("1")},
		Dark:  compat.CompleteColor{TrueColor: lipgloss.Color("#ff6b6b"), ANSI256: lipgloss.Color("203"), ANSI: lipgloss.Color("9")},
	},
	Injured: compat.CompleteAdaptiveColor{
		Light: compat.CompleteColor{TrueColor: lipgloss.Color("#1f77b4"), ANSI256: lipgloss.Color("25"), ANSI: lipgloss.Color("4")},
		Dark:  compat.CompleteColor{TrueColor: lipgloss.Color("#4dabf7"), ANSI256: lipgloss.Color("75"), ANSI: lipgloss.Color("12")},
	},

	// Accents
	Annotation: compat.AdaptiveColor{
		Light: lipgloss.Color("#e67700"), // Yellow-9
		Dark:  lipgloss.Color("#fcc419"), // Yellow-5
	},
	Cursor: compat.AdaptiveColor{
		Light: lipgloss.Color("#5f3dc4"), // Violet-9
		Dark:  lipgloss.Color("#b197fc"), // Violet-4
	},
	Success: compat.AdaptiveColor{
		Light: lipgloss.Color("#16A34A"),
		Dark:  lipgloss.Color("#22C55E"),
	},
	Error: compat.AdaptiveColor{
		Light: lipgloss.Color("#FF0000"),
		Dark:  lipgloss.Color("#FF0000"),
	},

	// Metrics
	MetricsText: compat.CompleteAdaptiveColor{
		Light: compat.CompleteColor{TrueColor: lipgloss.Color("#f8f9fa"), ANSI256: lipgloss.Color("255"), ANSI: lipgloss.Color("15")},
		Dark:  compat.CompleteColor{TrueColor: lipgloss.Color("#f8f9fa"), ANSI256: lipgloss.Color("255"), ANSI: lipgloss.Color("15")},
	},
}

// Styles holds all lipgloss styles derived from a theme
type Styles struct {
	// Metrics bar
	MetricsBar   lipgloss.Style
	MetricsLabel lipgloss.Style
	MetricsValue lipgloss.Style
	MetricsSep   lipgloss.Style

	// Navbar
	NavBar    lipgloss.Style
	NavBrand  lipgloss.Style
	NavItem   lipgloss.Style
	NavActive lipgloss.Style
	NavKey    lipgloss.Style
	NavQuit   lipgloss.Style

	// Content
	ViewTitle lipgloss.Style
	ViewText  lipgloss.Style
	ViewMuted lipgloss.Style

	// Status line
	StatusOK    lipgloss.Style
	StatusError lipgloss.Style
	StatusWarn  lipgloss.Style

	// Layout helpers
	BorderStyle lipgloss.Style
	FocusBorder lipgloss.Style

	// Charts
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

	// Errors
	ErrorTitle  lipgloss.Style
	ErrorBorder lipgloss.Style
}

// NewStyles creates a Styles instance from the default adaptive theme.
func NewStyles() Styles {
	t := DefaultTheme
	return Styles{
		// Metrics bar
		MetricsBar: lipgloss.NewStyle().
			Foreground(t.MetricsText).
			Background(t.MetricsBarBg).
			Padding(0, 1),

		MetricsLabel: lipgloss.NewStyle().
			Foreground(t.MetricsText).
			Background(t.MetricsBarBg),

		MetricsValue: lipgloss.NewStyle().
			Foreground(t.MetricsText).
			Background(t.MetricsBarBg).
			Bold(true),

		MetricsSep: lipgloss.NewStyle().
			Foreground(t.MetricsText).
			Background(t.MetricsBarBg).
			Faint(true),

		// Navbar
		NavBar: lipgloss.NewStyle().
			Padding(0, 1),

		NavBrand: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true).
			PaddingRight(2),

		NavItem: lipgloss.NewStyle().
			Foreground(t.TextMuted).
			PaddingRight(1),

		NavActive: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true).
			PaddingRight(1),

		NavKey: lipgloss.NewStyle().
			Foreground(t.Text).
			Background(t.Border).
			Padding(0, 1),

		NavQuit: lipgloss.NewStyle().
			Foreground(t.TextMuted).
			PaddingRight(1),

		// Content
		ViewTitle: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true),

		ViewText: lipgloss.NewStyle().
			Foreground(t.Text),

		ViewMuted: lipgloss.NewStyle().
			Foreground(t.TextMuted),

		// Status line
		StatusOK: lipgloss.NewStyle().
			Foreground(t.Success),

		StatusError: lipgloss.NewStyle().
			Foreground(t.Error).
			Bold(true),

		StatusWarn: lipgloss.NewStyle().
			Foreground(t.Annotation),

		// Layout helpers
		BorderStyle: lipgloss.NewStyle().
			Foreground(t.Border),

		FocusBorder: lipgloss.NewStyle().
			Foreground(t.BorderFocus),

		// Charts
		Axis: lipgloss.NewStyle().
			Foreground(t.Border),

		AxisLabel: lipgloss.NewStyle().
			Foreground(t.TextMuted),

		Incidents: lipgloss.NewStyle().
			Foreground(t.Incidents),

		Killed: lipgloss.NewStyle().
			Foreground(t.Killed),

		Injured: lipgloss.NewStyle().
			Foreground(t.Injured),

		Annotation: lipgloss.NewStyle().
			Foreground(t.Annotation).
			Bold(true),

		Cursor: lipgloss.NewStyle().
			Foreground(t.Cursor).
			Bold(true),

		LegendValue: lipgloss.NewStyle().
			Foreground(t.Text).
			Bold(true),

		// Slider
		SliderTrack: lipgloss.NewStyle().
			Foreground(t.Border),

		SliderRange: lipgloss.NewStyle().
			Foreground(t.Primary),

		SliderHandle: lipgloss.NewStyle().
			Foreground(t.Text).
			Bold(true),

		SliderFocus: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true),

		// JSON
		JSONKey: lipgloss.NewStyle().
			Foreground(t.Primary),

		JSONString: lipgloss.NewStyle().
			Foreground(t.Incidents),

		JSONNumber: lipgloss.NewStyle().
			Foreground(t.Injured),

		JSONBool: lipgloss.NewStyle().
			Foreground(t.Annotation),

		JSONNull: lipgloss.NewStyle().
			Foreground(t.TextMuted),

		JSONPunctuation: lipgloss.NewStyle().
			Foreground(t.TextMuted),

		ErrorTitle: lipgloss.NewStyle().
			Foreground(t.Error).
			Bold(true),

		ErrorBorder: lipgloss.NewStyle().
			Foreground(t.Error),
	}
}
