package incidentchart

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"

	"github.com/kpumuk/incidentscope/internal/incidents"
	"github.com/kpumuk/incidentscope/internal/scenes"
)

func day(m time.Month, d int) time.Time {
	return time.Date(2015, m, d, 0, 0, 0, 0, time.UTC)
}

func july() incidents.Window {
	return incidents.NewWindow(day(time.July, 1), day(time.July, 31))
}

func sampleAggregates() []incidents.DailyAggregate {
	return []incidents.DailyAggregate{
		{Day: day(time.July, 4), Incidents: 2, Killed: 1, Injured: 3},
		{Day: day(time.July, 5), Incidents: 1, Killed: 3, Injured: 0},
	}
}

func newChart(width, height int) Model {
	m := New(WithSize(width, height))
	m.SetData(july(), sampleAggregates())
	return m
}

func TestViewDimensions(t *testing.T) {
	tests := map[string]struct {
		width, height int
	}{
		"with legend":   {width: 80, height: 20},
		"inline legend": {width: 50, height: 16},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			m := newChart(tc.width, tc.height)
			lines := strings.Split(ansi.Strip(m.View()), "\n")
			if len(lines) != tc.height {
				t.Fatalf("expected %d lines, got %d", tc.height, len(lines))
			}
			for i, line := range lines {
				if w := ansi.StringWidth(line); w != tc.width {
					t.Fatalf("line %d: expected width %d, got %d", i, tc.width, w)
				}
			}
		})
	}
}

func TestViewZeroSize(t *testing.T) {
	m := New()
	if got := m.View(); got != "" {
		t.Fatalf("expected empty view, got %q", got)
	}
}

func TestEmptyWindowState(t *testing.T) {
	m := New(WithSize(80, 20))
	m.SetData(july(), []incidents.DailyAggregate{})

	output := ansi.Strip(m.View())
	if !strings.Contains(output, EmptyMessage) {
		t.Fatalf("expected %q in view:\n%s", EmptyMessage, output)
	}
	if strings.Contains(output, "inspect a day") {
		t.Fatal("tooltip hint shown without data")
	}
	if m.MoveCursor(1) {
		t.Fatal("cursor moved without data")
	}
	if _, ok := m.Cursor(); ok {
		t.Fatal("cursor set without data")
	}
}

func TestLegendTotalsAndRegions(t *testing.T) {
	m := newChart(80, 20)
	m.SetRegions([]incidents.RegionCount{{Region: "Ohio", Count: 3}, {Region: "Texas", Count: 1}})

	totals := m.Totals()
	if totals != (incidents.Totals{Incidents: 3, Killed: 4, Injured: 3}) {
		t.Fatalf("Totals() = %+v", totals)
	}

	output := ansi.Strip(m.View())
	for _, want := range []string{"Legend", "Incidents", "Killed", "Injured", "Top regions", "Ohio", "Texas"} {
		if !strings.Contains(output, want) {
			t.Fatalf("expected %q in view:\n%s", want, output)
		}
	}
}

func TestInlineLegendWhenNarrow(t *testing.T) {
	m := newChart(50, 16)
	output := ansi.Strip(m.View())
	if strings.Contains(output, "Legend") {
		t.Fatal("legend panel rendered in a narrow chart")
	}
	if !strings.Contains(output, "Incidents 3") {
		t.Fatalf("expected inline totals in view:\n%s", output)
	}
}

func TestAnnotationsOnlyInsideWindow(t *testing.T) {
	m := newChart(80, 20)
	m.SetAnnotations([]scenes.Annotation{
		{Date: day(time.June, 17), Label: "Outside"},
		{Date: day(time.July, 4), Label: "Independence Day"},
	})

	visible := m.VisibleAnnotations()
	if len(visible) != 1 || visible[0].Label != "Independence Day" {
		t.Fatalf("VisibleAnnotations() = %+v", visible)
	}

	output := ansi.Strip(m.View())
	if !strings.Contains(output, "1 Independence Day 2015-07-04") {
		t.Fatalf("expected numbered annotation in view:\n%s", output)
	}
	if strings.Contains(output, "Outside") {
		t.Fatal("annotation outside the window was drawn")
	}
}

func TestMoveCursor(t *testing.T) {
	m := newChart(80, 20)

	if !m.MoveCursor(1) {
		t.Fatal("expected cursor to appear")
	}
	if agg, _ := m.Cursor(); !agg.Day.Equal(day(time.July, 4)) {
		t.Fatalf("cursor on %v, want July 4", agg.Day)
	}
	if !m.MoveCursor(1) {
		t.Fatal("expected cursor to move right")
	}
	if m.MoveCursor(1) {
		t.Fatal("cursor moved past the last bucket")
	}
	if agg, _ := m.Cursor(); !agg.Day.Equal(day(time.July, 5)) {
		t.Fatalf("cursor on %v, want July 5", agg.Day)
	}

	m.ClearCursor()
	m.MoveCursor(-1)
	if agg, _ := m.Cursor(); !agg.Day.Equal(day(time.July, 5)) {
		t.Fatalf("moving left from hidden: cursor on %v, want July 5", agg.Day)
	}
}

func TestSetCursorAt(t *testing.T) {
	m := newChart(80, 20)
	plotWidth, _ := m.plotSize()
	offset := m.plotOffset()

	if !m.SetCursorAt(offset) {
		t.Fatal("expected left edge to select a bucket")
	}
	if agg, _ := m.Cursor(); !agg.Day.Equal(day(time.July, 4)) {
		t.Fatalf("left edge selected %v", agg.Day)
	}
	if !m.SetCursorAt(offset + plotWidth - 1) {
		t.Fatal("expected right edge to select a bucket")
	}
	if agg, _ := m.Cursor(); !agg.Day.Equal(day(time.July, 5)) {
		t.Fatalf("right edge selected %v", agg.Day)
	}
	if m.SetCursorAt(offset - 1) {
		t.Fatal("label column selected a bucket")
	}
	if m.SetCursorAt(offset + plotWidth) {
		t.Fatal("legend column selected a bucket")
	}
}

func TestInPlot(t *testing.T) {
	m := newChart(80, 20)
	offset := m.plotOffset()
	if !m.InPlot(offset, 0) {
		t.Fatal("expected top-left plot cell to be inside")
	}
	if m.InPlot(0, 0) {
		t.Fatal("label column reported inside the plot")
	}
	if m.InPlot(offset, 19) {
		t.Fatal("tooltip row reported inside the plot")
	}
}

func TestSetDataKeepsCursorDay(t *testing.T) {
	m := newChart(80, 20)
	m.SetCursorDate(day(time.July, 5))

	wider := append([]incidents.DailyAggregate{{Day: day(time.July, 1), Incidents: 1}}, sampleAggregates()...)
	m.SetData(july(), wider)

	agg, ok := m.Cursor()
	if !ok || !agg.Day.Equal(day(time.July, 5)) {
		t.Fatalf("cursor on %v (%v), want July 5", agg.Day, ok)
	}

	m.SetData(july(), []incidents.DailyAggregate{})
	if _, ok := m.Cursor(); ok {
		t.Fatal("cursor kept on an empty aggregate")
	}
}

func TestTooltipAndSummary(t *testing.T) {
	m := newChart(80, 20)
	if m.Summary() != "" {
		t.Fatal("expected empty summary without cursor")
	}
	if !strings.Contains(ansi.Strip(m.View()), "inspect a day") {
		t.Fatal("expected tooltip hint")
	}

	m.MoveCursor(1)
	want := "2015-07-04: 2 incidents, 1 killed, 3 injured"
	if got := m.Summary(); got != want {
		t.Fatalf("Summary() = %q, want %q", got, want)
	}

	output := ansi.Strip(m.View())
	if !strings.Contains(output, "Sat, Jul 4 2015") {
		t.Fatalf("expected tooltip date in view:\n%s", output)
	}
	if !strings.Contains(output, "▲") {
		t.Fatal("expected cursor marker")
	}
}

func TestViewIsIdempotent(t *testing.T) {
	m := newChart(80, 20)
	m.SetAnnotations([]scenes.Annotation{{Date: day(time.July, 4), Label: "Independence Day"}})
	m.MoveCursor(1)

	first := m.View()
	if second := m.View(); first != second {
		t.Fatal("rendering twice produced different output")
	}
	if got := strings.Count(ansi.Strip(first), "Independence Day"); got != 1 {
		t.Fatalf("annotation drawn %d times, want 1", got)
	}
}
