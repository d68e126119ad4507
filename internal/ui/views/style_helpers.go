package views

import (
	"github.com/kpumuk/incidentscope/internal/ui/components/incidentchart"
	"github.com/kpumuk/incidentscope/internal/ui/components/jsonview"
	"github.com/kpumuk/incidentscope/internal/ui/components/slider"
	"github.com/kpumuk/incidentscope/internal/ui/dialogs/daydetail"
	"github.com/kpumuk/incidentscope/internal/ui/dialogs/gotodate"
)

func chartStylesFromTheme(styles Styles) incidentchart.Styles {
	return incidentchart.Styles{
		Axis:       styles.Axis,
		Label:      styles.AxisLabel,
		Title:      styles.Title,
		Text:       styles.Text,
		Muted:      styles.Muted,
		Value:      styles.LegendValue,
		Incidents:  styles.Incidents,
		Killed:     styles.Killed,
		Injured:    styles.Injured,
		Annotation: styles.Annotation,
		Cursor:     styles.Cursor,
	}
}

func sliderStylesFromTheme(styles Styles) slider.Styles {
	return slider.Styles{
		Track:  styles.SliderTrack,
		Range:  styles.SliderRange,
		Handle: styles.SliderHandle,
		Focus:  styles.SliderFocus,
		Label:  styles.Text,
		Muted:  styles.Muted,
	}
}

func jsonStylesFromTheme(styles Styles) jsonview.Styles {
	return jsonview.Styles{
		Text:        styles.Text,
		Key:         styles.JSONKey,
		String:      styles.JSONString,
		Number:      styles.JSONNumber,
		Bool:        styles.JSONBool,
		Null:        styles.JSONNull,
		Punctuation: styles.JSONPunctuation,
		Muted:       styles.Muted,
	}
}

func dayDetailStylesFromTheme(styles Styles) daydetail.Styles {
	return daydetail.Styles{
		Title:  styles.Title,
		Border: styles.FocusBorder,
		Muted:  styles.Muted,
		JSON:   jsonStylesFromTheme(styles),
	}
}

func goToDateStylesFromTheme(styles Styles) gotodate.Styles {
	return gotodate.Styles{
		Title:       styles.Title,
		Border:      styles.FocusBorder,
		Prompt:      styles.Text,
		Text:        styles.Text,
		Placeholder: styles.Muted,
		Cursor:      styles.Text,
		Muted:       styles.Muted,
		Error:       styles.Error,
	}
}
