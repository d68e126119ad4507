package ui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/kpumuk/incidentscope/internal/incidents"
	"github.com/kpumuk/incidentscope/internal/observability"
	"github.com/kpumuk/incidentscope/internal/scenes"
	"github.com/kpumuk/incidentscope/internal/ui/dialogs"
	"github.com/kpumuk/incidentscope/internal/ui/views"
)

func date(month time.Month, day int) time.Time {
	return time.Date(2015, month, day, 0, 0, 0, 0, time.UTC)
}

func keyText(text string) tea.KeyPressMsg {
	var code rune
	for _, r := range text {
		code = r
		break
	}
	return tea.KeyPressMsg(tea.Key{Text: text, Code: code})
}

func testStore() *incidents.Store {
	return incidents.NewStore([]incidents.Record{
		{ID: 1, Date: date(time.January, 1), Region: "Ohio"},
		{ID: 2, Date: date(time.July, 4), Region: "Illinois", Killed: 1, Injured: 2},
		{ID: 3, Date: date(time.July, 4), Region: "Illinois", Injured: 1},
		{ID: 4, Date: date(time.July, 5), Region: "Texas", Killed: 3},
		{ID: 5, Date: date(time.December, 31), Region: "Ohio"},
	}, []*incidents.RowError{{Line: 7, Column: "n_killed"}})
}

func testController(t *testing.T) *scenes.Controller {
	t.Helper()
	ctrl, err := scenes.NewController([]scenes.Scene{
		{
			Title:       "Summer",
			Description: "July 2015",
			Window:      incidents.NewWindow(date(time.July, 1), date(time.July, 31)),
		},
		{Title: "Explore", Description: "Pick a range", Interactive: true},
	})
	if err != nil {
		t.Fatalf("NewController: %v", err)
	}
	return ctrl
}

func newTestApp(t *testing.T) (App, *observability.Metrics) {
	t.Helper()
	telemetry := observability.NewMetrics(clockwork.NewFakeClock())
	a := New(testController(t),
		WithTelemetry(telemetry),
		WithLoader(func(context.Context) (*incidents.Store, error) { return testStore(), nil }),
	)
	a = update(t, a, tea.WindowSizeMsg{Width: 120, Height: 40})
	return a, telemetry
}

func update(t *testing.T, a App, msg tea.Msg) App {
	t.Helper()
	next, _ := updateCmd(t, a, msg)
	return next
}

func updateCmd(t *testing.T, a App, msg tea.Msg) (App, tea.Cmd) {
	t.Helper()
	next, cmd := a.Update(msg)
	app, ok := next.(App)
	if !ok {
		t.Fatalf("Update returned %T, want App", next)
	}
	return app, cmd
}

// run executes cmd and feeds its message back into the app.
func run(t *testing.T, a App, cmd tea.Cmd) App {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	return update(t, a, cmd())
}

func loaded(t *testing.T, a App) App {
	t.Helper()
	a, cmd := updateCmd(t, a, loadedMsg{store: testStore()})
	return run(t, a, cmd)
}

func screen(a App) string {
	return ansi.Strip(a.render())
}

func TestAppLoaderDeliversStore(t *testing.T) {
	t.Parallel()

	a, _ := newTestApp(t)
	msg, ok := a.loadCmd()().(loadedMsg)
	if !ok {
		t.Fatalf("load message type = %T", a.loadCmd()())
	}
	if msg.store.Len() != 5 {
		t.Fatalf("records = %d, want 5", msg.store.Len())
	}
}

func TestAppLoadingState(t *testing.T) {
	t.Parallel()

	a, _ := newTestApp(t)
	output := screen(a)
	if !strings.Contains(output, "Loading incidents") {
		t.Fatalf("expected loading state in:\n%s", output)
	}
}

func TestAppLoadedStatusAndMetrics(t *testing.T) {
	t.Parallel()

	a, telemetry := newTestApp(t)
	a = loaded(t, a)

	output := screen(a)
	for _, want := range []string{
		"Data loaded successfully. Loaded 5 records.",
		"Skipped 1 row.",
		"Incidents: 3",
		"Summer",
	} {
		if !strings.Contains(output, want) {
			t.Fatalf("expected %q in:\n%s", want, output)
		}
	}
	if got := testutil.ToFloat64(telemetry.RecordsLoaded); got != 5 {
		t.Fatalf("records_loaded_total = %v, want 5", got)
	}
	if got := testutil.ToFloat64(telemetry.Aggregations); got != 1 {
		t.Fatalf("aggregations_total = %v, want 1", got)
	}
}

func TestAppScreenFillsTerminal(t *testing.T) {
	t.Parallel()

	a, _ := newTestApp(t)
	a = loaded(t, a)
	lines := strings.Split(screen(a), "\n")
	if len(lines) != 40 {
		t.Fatalf("lines = %d, want 40", len(lines))
	}
}

func TestAppLoadFailure(t *testing.T) {
	t.Parallel()

	a, telemetry := newTestApp(t)
	err := &incidents.LoadError{Source: "missing.csv", Err: errors.New("file not found")}
	a = update(t, a, loadFailedMsg{err: err})

	output := screen(a)
	for _, want := range []string{"Failed to load data.", "Load Error", "file not found", "missing.csv"} {
		if !strings.Contains(output, want) {
			t.Fatalf("expected %q in:\n%s", want, output)
		}
	}
	if got := testutil.ToFloat64(telemetry.LoadFailures); got != 1 {
		t.Fatalf("load_failures_total = %v, want 1", got)
	}

	// Navigation keeps working without data.
	a, cmd := updateCmd(t, a, keyText("n"))
	if cmd != nil {
		if msg := cmd(); msg != nil {
			t.Fatalf("unexpected message %T without data", msg)
		}
	}
	if a.controller.Active() != 1 || a.navbar.Active() != 1 {
		t.Fatalf("active = %d/%d, want 1", a.controller.Active(), a.navbar.Active())
	}

	a = update(t, a, tea.KeyPressMsg(tea.Key{Code: tea.KeyEsc}))
	if strings.Contains(screen(a), "Load Error") {
		t.Fatal("expected popup to be dismissed by esc")
	}
	if !strings.Contains(screen(a), "Failed to load data.") {
		t.Fatal("expected failure to stay in the status line")
	}
}

func TestAppSceneNavigation(t *testing.T) {
	t.Parallel()

	a, telemetry := newTestApp(t)
	a = loaded(t, a)

	a = update(t, a, keyText("p"))
	if a.controller.Active() != 0 {
		t.Fatalf("active = %d after prev on first scene", a.controller.Active())
	}

	a, cmd := updateCmd(t, a, keyText("n"))
	a = run(t, a, cmd)
	if a.controller.Active() != 1 {
		t.Fatalf("active = %d, want 1", a.controller.Active())
	}
	// The interactive scene starts on the full dataset.
	if !strings.Contains(screen(a), "Incidents: 5") {
		t.Fatalf("expected full-range totals in:\n%s", screen(a))
	}

	a = update(t, a, keyText("n"))
	if a.controller.Active() != 1 {
		t.Fatalf("active = %d after next on last scene", a.controller.Active())
	}

	a, cmd = updateCmd(t, a, keyText("1"))
	a = run(t, a, cmd)
	if a.controller.Active() != 0 {
		t.Fatalf("active = %d, want 0 after jump", a.controller.Active())
	}

	if got := testutil.ToFloat64(telemetry.SceneTransitions.WithLabelValues("next")); got != 1 {
		t.Fatalf("next transitions = %v, want 1", got)
	}
	if got := testutil.ToFloat64(telemetry.SceneTransitions.WithLabelValues("jump")); got != 1 {
		t.Fatalf("jump transitions = %v, want 1", got)
	}
}

func TestAppMissingTarget(t *testing.T) {
	t.Parallel()

	a, _ := newTestApp(t)
	a = loaded(t, a)
	a.views = a.views[:1]
	a.controller.SetActive(1)

	if _, err := a.activeSceneView(); !errors.Is(err, ErrMissingTarget) {
		t.Fatalf("err = %v, want ErrMissingTarget", err)
	}
	if cmd := a.activate("next"); cmd != nil {
		t.Fatal("expected the draw to be skipped")
	}
	_ = screen(a)
}

func TestAppHelpDialog(t *testing.T) {
	t.Parallel()

	a, _ := newTestApp(t)
	a = loaded(t, a)

	a, cmd := updateCmd(t, a, keyText("?"))
	a = run(t, a, cmd)
	if !a.dialogs.HasDialogs() {
		t.Fatal("expected help dialog to open")
	}
	output := screen(a)
	for _, want := range []string{"Help", "next scene", "Summer", "hover the chart"} {
		if !strings.Contains(output, want) {
			t.Fatalf("expected %q in:\n%s", want, output)
		}
	}

	// Keys go to the dialog while it is open.
	a, cmd = updateCmd(t, a, keyText("n"))
	if a.controller.Active() != 0 {
		t.Fatal("expected scene keys to be captured by the dialog")
	}
	if cmd != nil {
		if msg := cmd(); msg != nil {
			a = update(t, a, msg)
		}
	}

	a, cmd = updateCmd(t, a, tea.KeyPressMsg(tea.Key{Code: tea.KeyEsc}))
	a = run(t, a, cmd)
	if a.dialogs.HasDialogs() {
		t.Fatal("expected help dialog to close")
	}
}

func TestAppDetailRequiresCursor(t *testing.T) {
	t.Parallel()

	a, _ := newTestApp(t)
	a = loaded(t, a)

	_, cmd := updateCmd(t, a, tea.KeyPressMsg(tea.Key{Code: tea.KeyEnter}))
	if cmd != nil {
		if msg := cmd(); msg != nil {
			t.Fatalf("unexpected message %T without a tooltip", msg)
		}
	}

	a = update(t, a, tea.KeyPressMsg(tea.Key{Code: tea.KeyRight}))
	a, cmd = updateCmd(t, a, tea.KeyPressMsg(tea.Key{Code: tea.KeyEnter}))
	a = run(t, a, cmd)
	if !a.dialogs.HasDialogs() {
		t.Fatal("expected day detail dialog to open")
	}
	if !strings.Contains(screen(a), "2 records") {
		t.Fatalf("expected record count in:\n%s", screen(a))
	}
}

func TestAppGoToDialogNeedsData(t *testing.T) {
	t.Parallel()

	a, _ := newTestApp(t)
	if _, cmd := updateCmd(t, a, keyText("g")); cmd != nil {
		if msg := cmd(); msg != nil {
			t.Fatalf("unexpected message %T before load", msg)
		}
	}

	a = loaded(t, a)
	a, cmd := updateCmd(t, a, keyText("g"))
	a = run(t, a, cmd)
	if !strings.Contains(screen(a), "Go to date") {
		t.Fatalf("expected go-to-date dialog in:\n%s", screen(a))
	}
}

func TestAppMouseTranslatesToContent(t *testing.T) {
	t.Parallel()

	a, _ := newTestApp(t)
	a = loaded(t, a)

	// Below the metrics bar and the scene header, over the plot.
	y := a.metrics.Height() + 3
	a = update(t, a, tea.MouseMotionMsg(tea.Mouse{X: 30, Y: y}))

	scene, ok := a.views[0].(*views.Scene)
	if !ok {
		t.Fatalf("view type = %T", a.views[0])
	}
	if _, ok := scene.Chart().Cursor(); !ok {
		t.Fatal("expected hover to place the tooltip")
	}
}

func TestAppCopyNote(t *testing.T) {
	t.Parallel()

	a, _ := newTestApp(t)
	a = loaded(t, a)

	a = update(t, a, views.CopiedMsg{What: "day summary"})
	if !strings.Contains(screen(a), "copied day summary") {
		t.Fatalf("expected copy note in:\n%s", screen(a))
	}
	a = update(t, a, views.CopiedMsg{What: "day summary", Err: errors.New("no clipboard")})
	if !strings.Contains(screen(a), "copy failed: no clipboard") {
		t.Fatalf("expected copy failure in:\n%s", screen(a))
	}
}

func TestAppWindowMsgFromInactiveScene(t *testing.T) {
	t.Parallel()

	a, _ := newTestApp(t)
	a = loaded(t, a)
	before := a.metrics.Data()

	a = update(t, a, views.WindowMsg{Scene: 1, Window: testStore().Bounds()})
	if a.metrics.Data() != before {
		t.Fatal("expected metrics to ignore inactive scenes")
	}
}

func TestAppQuit(t *testing.T) {
	t.Parallel()

	a, _ := newTestApp(t)
	_, cmd := updateCmd(t, a, keyText("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("message type = %T, want tea.QuitMsg", cmd())
	}
}

func TestAppDialogClosesAfterDialogOpenMsg(t *testing.T) {
	t.Parallel()

	a, _ := newTestApp(t)
	a = update(t, a, dialogs.CloseDialogMsg{})
	if a.dialogs.HasDialogs() {
		t.Fatal("expected no dialogs")
	}
}
