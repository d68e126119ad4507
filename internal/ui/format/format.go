// Package format provides UI formatting helpers.
package format

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/kpumuk/incidentscope/internal/incidents"
)

// Date layouts used across the UI.
const (
	DateLayout      = "2006-01-02"
	ShortDateLayout = "Jan 2"
	AxisDateLayout  = "Jan 2006"
	LongDateLayout  = "Mon, Jan 2 2006"
)

// Elapsed formats a load or render duration as "850ms", "1.2s", "2m3s".
func Elapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	switch {
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	case d < time.Minute:
		return fmt.Sprintf("%.1fs", d.Seconds())
	default:
		secs := int64(d.Seconds())
		return fmt.Sprintf("%dm%ds", secs/60, secs%60)
	}
}

// Count formats an integer with thousands separators: 239677 -> "239,677".
func Count(n int) string {
	s := strconv.Itoa(n)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	if len(s) <= 3 {
		if neg {
			return "-" + s
		}
		return s
	}

	var b strings.Builder
	head := len(s) % 3
	if head > 0 {
		b.WriteString(s[:head])
	}
	for i := head; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}

// ShortNumber formats a number into a compact 4-char max string (e.g., 999, 9.9K, 120K).
func ShortNumber(n int64) string {
	switch {
	case n < 0:
		return "-" + ShortNumber(-n)
	case n < 1_000:
		return fmt.Sprintf("%d", n)
	case n < 10_000:
		return fmt.Sprintf("%.1fK", float64(n)/1_000)
	case n < 1_000_000:
		return fmt.Sprintf("%dK", n/1_000)
	case n < 10_000_000:
		return fmt.Sprintf("%.1fM", float64(n)/1_000_000)
	default:
		return fmt.Sprintf("%dM", n/1_000_000)
	}
}

// Date formats a day as YYYY-MM-DD; the zero time renders as "-".
func Date(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(DateLayout)
}

// AxisDate picks a label layout for a date axis spanning days days.
func AxisDate(t time.Time, days int) string {
	switch {
	case days > 400:
		return t.Format(AxisDateLayout)
	case days > 3:
		return t.Format(ShortDateLayout)
	default:
		return t.Format(DateLayout)
	}
}

// Window formats a window as "2015-06-01 → 2015-08-31 (92 days)".
func Window(w incidents.Window) string {
	if w.IsZero() {
		return "-"
	}
	days := w.Days()
	unit := "days"
	if days == 1 {
		unit = "day"
	}
	return fmt.Sprintf("%s → %s (%d %s)", Date(w.Start), Date(w.End), days, unit)
}
