package views

import (
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/kpumuk/incidentscope/internal/incidents"
	"github.com/kpumuk/incidentscope/internal/observability"
	"github.com/kpumuk/incidentscope/internal/scenes"
	"github.com/kpumuk/incidentscope/internal/ui/charts"
	"github.com/kpumuk/incidentscope/internal/ui/components/incidentchart"
	"github.com/kpumuk/incidentscope/internal/ui/components/slider"
	"github.com/kpumuk/incidentscope/internal/ui/dialogs"
	"github.com/kpumuk/incidentscope/internal/ui/dialogs/daydetail"
	"github.com/kpumuk/incidentscope/internal/ui/dialogs/gotodate"
	"github.com/kpumuk/incidentscope/internal/ui/format"
)

const (
	headerRows        = 2
	defaultTopRegions = 5
	fastStep          = 10
)

// WindowMsg reports the window a scene view has aggregated.
type WindowMsg struct {
	Scene  int
	Window incidents.Window
	Totals incidents.Totals
	Days   int
}

type sceneKeys struct {
	CursorLeft  key.Binding
	CursorRight key.Binding
	ClearCursor key.Binding
	Copy        key.Binding
	HandleLeft  key.Binding
	HandleRight key.Binding
	FastLeft    key.Binding
	FastRight   key.Binding
	SwapHandle  key.Binding
}

func defaultSceneKeys(interactive bool) sceneKeys {
	k := sceneKeys{
		CursorLeft:  helpBinding([]string{"left", "h"}, "←/h", "previous day"),
		CursorRight: helpBinding([]string{"right", "l"}, "→/l", "next day"),
		ClearCursor: helpBinding([]string{"esc"}, "esc", "hide tooltip"),
		Copy:        helpBinding([]string{"y"}, "y", "copy day summary"),
		HandleLeft:  helpBinding([]string{"["}, "[", "move handle left"),
		HandleRight: helpBinding([]string{"]"}, "]", "move handle right"),
		FastLeft:    helpBinding([]string{"{"}, "{", "move handle left ×10"),
		FastRight:   helpBinding([]string{"}"}, "}", "move handle right ×10"),
		SwapHandle:  helpBinding([]string{"s"}, "s", "switch handle"),
	}
	if !interactive {
		k.HandleLeft.SetEnabled(false)
		k.HandleRight.SetEnabled(false)
		k.FastLeft.SetEnabled(false)
		k.FastRight.SetEnabled(false)
		k.SwapHandle.SetEnabled(false)
	}
	return k
}

// Scene renders one narrative step: a header, the incident chart and, for
// the interactive scene, the range slider.
type Scene struct {
	index      int
	scene      scenes.Scene
	controller *scenes.Controller
	store      *incidents.Store
	metrics    *observability.Metrics
	logger     *slog.Logger
	topRegions int
	styles     Styles
	keys       sceneKeys
	chart      incidentchart.Model
	slider     slider.Model
	window     incidents.Window
	width      int
	height     int
}

// SceneOption configures a Scene.
type SceneOption func(*Scene)

// WithMetrics records aggregation timings.
func WithMetrics(m *observability.Metrics) SceneOption {
	return func(s *Scene) { s.metrics = m }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) SceneOption {
	return func(s *Scene) { s.logger = l }
}

// WithTopRegions sets how many regions the legend lists.
func WithTopRegions(k int) SceneOption {
	return func(s *Scene) { s.topRegions = k }
}

// NewScene creates the view of scene index of controller.
func NewScene(index int, controller *scenes.Controller, opts ...SceneOption) *Scene {
	scene := controller.Scenes()[index]
	s := &Scene{
		index:      index,
		scene:      scene,
		controller: controller,
		logger:     slog.New(slog.DiscardHandler),
		topRegions: defaultTopRegions,
		keys:       defaultSceneKeys(scene.Interactive),
		chart:      incidentchart.New(),
		slider:     slider.New(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Init re-aggregates the scene when its window changed and reports the
// window it shows.
func (s *Scene) Init() tea.Cmd {
	return s.refresh()
}

// Update handles messages.
func (s *Scene) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return s.handleKey(msg)
	case tea.MouseMotionMsg:
		return s, s.handleMotion(msg.Mouse())
	case tea.MouseClickMsg:
		return s, s.handleClick(msg.Mouse())
	case tea.MouseReleaseMsg:
		s.slider.Release()
		return s, nil
	case gotodate.ActionMsg:
		return s, s.goTo(msg)
	case daydetail.CopyMsg:
		return s, copyRecordsCmd(msg)
	}
	return s, nil
}

// View renders the scene.
func (s *Scene) View() string {
	if s.width <= 0 || s.height <= 0 {
		return ""
	}

	rows := []string{s.renderTitle(), s.renderDescription()}
	body := s.height - headerRows
	if s.store == nil {
		rows = append(rows, renderStatusMessage("No data", "The dataset is not loaded", s.styles, s.width, max(body, 0)))
		return strings.Join(rows[:min(len(rows), s.height)], "\n")
	}

	rows = append(rows, s.chart.View())
	if s.hasSlider() {
		rows = append(rows, s.slider.View())
	}
	return strings.Join(rows, "\n")
}

// Name returns the scene title.
func (s *Scene) Name() string {
	return s.scene.Title
}

// ShortHelp returns the scene keybindings.
func (s *Scene) ShortHelp() []key.Binding {
	return []key.Binding{
		s.keys.CursorLeft,
		s.keys.CursorRight,
		s.keys.ClearCursor,
		s.keys.Copy,
		s.keys.HandleLeft,
		s.keys.HandleRight,
		s.keys.FastLeft,
		s.keys.FastRight,
		s.keys.SwapHandle,
	}
}

// SetSize sets the view dimensions.
func (s *Scene) SetSize(width, height int) View {
	s.width = width
	s.height = height
	s.slider.SetWidth(width)
	s.chart.SetSize(width, s.chartHeight())
	return s
}

// SetStyles sets the view styles.
func (s *Scene) SetStyles(styles Styles) View {
	s.styles = styles
	s.chart.SetStyles(chartStylesFromTheme(styles))
	s.slider.SetStyles(sliderStylesFromTheme(styles))
	return s
}

// SetStore binds the loaded dataset. The next Init aggregates it.
func (s *Scene) SetStore(store *incidents.Store) {
	s.store = store
	s.window = incidents.Window{}
	if store == nil || !s.scene.Interactive {
		return
	}
	s.slider.SetSlider(s.controller.Slider())
	s.slider.SetWidth(s.width)
	s.slider.SetOverview(store.Aggregate(store.Bounds()))
	s.chart.SetSize(s.width, s.chartHeight())
}

// Window returns the last aggregated window.
func (s *Scene) Window() incidents.Window {
	return s.window
}

// Chart returns the chart model.
func (s *Scene) Chart() incidentchart.Model {
	return s.chart
}

// Interactive reports whether the scene is driven by the slider.
func (s *Scene) Interactive() bool {
	return s.scene.Interactive
}

// GoToDialog returns the go-to-date dialog for the scene.
func (s *Scene) GoToDialog() dialogs.DialogModel {
	opts := []gotodate.Option{
		gotodate.WithStyles(goToDateStylesFromTheme(s.styles)),
		gotodate.WithRange(s.scene.Interactive),
	}
	if s.store != nil {
		opts = append(opts, gotodate.WithBounds(s.store.Bounds()))
	}
	if agg, ok := s.chart.Cursor(); ok {
		opts = append(opts, gotodate.WithValue(agg.Day.Format(time.DateOnly)))
	}
	return gotodate.New(opts...)
}

// DetailDialog returns the day detail dialog for the day under the
// tooltip. It is nil when the tooltip is hidden.
func (s *Scene) DetailDialog() dialogs.DialogModel {
	agg, ok := s.chart.Cursor()
	if !ok || s.store == nil {
		return nil
	}
	return daydetail.New(agg.Day, s.store.RecordsOn(agg.Day),
		daydetail.WithStyles(dayDetailStylesFromTheme(s.styles)))
}

func (s *Scene) handleKey(msg tea.KeyMsg) (View, tea.Cmd) {
	switch {
	case key.Matches(msg, s.keys.CursorLeft):
		s.chart.MoveCursor(-1)
	case key.Matches(msg, s.keys.CursorRight):
		s.chart.MoveCursor(1)
	case key.Matches(msg, s.keys.ClearCursor):
		s.chart.ClearCursor()
	case key.Matches(msg, s.keys.Copy):
		return s, copyTextCmd("day summary", s.chart.Summary())
	case key.Matches(msg, s.keys.HandleLeft):
		return s, s.moveHandle(-1)
	case key.Matches(msg, s.keys.HandleRight):
		return s, s.moveHandle(1)
	case key.Matches(msg, s.keys.FastLeft):
		return s, s.moveHandle(-fastStep)
	case key.Matches(msg, s.keys.FastRight):
		return s, s.moveHandle(fastStep)
	case key.Matches(msg, s.keys.SwapHandle):
		if s.hasSlider() {
			s.slider.Slider().ToggleFocus()
		}
	}
	return s, nil
}

// handleMotion tracks the pointer. Coordinates are relative to the view.
func (s *Scene) handleMotion(m tea.Mouse) tea.Cmd {
	if s.slider.Dragging() {
		if s.slider.Drag(m.X) {
			return s.refresh()
		}
		return nil
	}

	y := m.Y - headerRows
	if s.chart.InPlot(m.X, y) {
		s.chart.SetCursorAt(m.X)
	}
	return nil
}

func (s *Scene) handleClick(m tea.Mouse) tea.Cmd {
	if m.Button != tea.MouseLeft || !s.hasSlider() {
		return nil
	}
	if m.Y != s.sliderTop()+s.slider.TrackRow() {
		return nil
	}
	if s.slider.Press(m.X) {
		return s.refresh()
	}
	return nil
}

func (s *Scene) moveHandle(delta int) tea.Cmd {
	if !s.hasSlider() {
		return nil
	}
	sl := s.slider.Slider()
	if !sl.Move(sl.Focus(), delta) {
		return nil
	}
	return s.refresh()
}

// goTo moves the focused handle, or the whole range, on the interactive
// scene and the tooltip elsewhere.
func (s *Scene) goTo(msg gotodate.ActionMsg) tea.Cmd {
	if !s.hasSlider() {
		s.chart.SetCursorDate(msg.Window.Start)
		return nil
	}

	sl := s.slider.Slider()
	switch msg.Kind {
	case gotodate.KindRange:
		sl.Set(scenes.HandleEnd, sl.Width()-1)
		sl.SetDate(scenes.HandleStart, msg.Window.Start)
		sl.SetDate(scenes.HandleEnd, msg.Window.End)
	default:
		sl.SetDate(sl.Focus(), msg.Window.Start)
	}
	cmd := s.refresh()
	s.chart.SetCursorDate(msg.Window.Start)
	return cmd
}

// refresh re-aggregates when the effective window moved.
func (s *Scene) refresh() tea.Cmd {
	if s.store == nil {
		return nil
	}
	w := s.controller.WindowOf(s.index)
	if w.IsZero() {
		return nil
	}
	if !sameWindow(w, s.window) {
		var start time.Time
		if s.metrics != nil {
			start = s.metrics.Now()
		}
		aggs := s.store.Aggregate(w)
		if s.metrics != nil {
			s.metrics.ObserveAggregation(start)
		}
		s.chart.SetData(w, aggs)
		s.chart.SetAnnotations(s.scene.Annotations)
		s.chart.SetRegions(incidents.TopRegions(s.store.InWindow(w), s.topRegions))
		s.window = w
		s.logger.Debug("scene aggregated",
			"scene", s.index,
			"window", w.String(),
			"days", len(aggs),
		)
	}

	msg := WindowMsg{
		Scene:  s.index,
		Window: s.window,
		Totals: s.chart.Totals(),
		Days:   len(s.chart.Aggregates()),
	}
	return func() tea.Msg { return msg }
}

func (s *Scene) hasSlider() bool {
	return s.scene.Interactive && s.slider.Slider() != nil
}

func (s *Scene) chartHeight() int {
	h := s.height - headerRows
	if s.hasSlider() {
		h -= s.slider.Height()
	}
	return max(h, 0)
}

func (s *Scene) sliderTop() int {
	return headerRows + s.chartHeight()
}

func (s *Scene) renderTitle() string {
	title := s.styles.Title.Render(s.scene.Title)
	if !s.window.IsZero() {
		title += s.styles.Muted.Render("  " + format.Window(s.window))
	}
	return charts.PadRight(ansi.Truncate(title, s.width, "…"), s.width)
}

func (s *Scene) renderDescription() string {
	desc := s.styles.Muted.Render(s.scene.Description)
	return charts.PadRight(ansi.Truncate(desc, s.width, "…"), s.width)
}

func sameWindow(a, b incidents.Window) bool {
	return a.Start.Equal(b.Start) && a.End.Equal(b.End)
}

func copyRecordsCmd(msg daydetail.CopyMsg) tea.Cmd {
	data, err := json.MarshalIndent(msg.Records, "", "  ")
	if err != nil {
		return func() tea.Msg { return CopiedMsg{What: "records", Err: err} }
	}
	return copyTextCmd("records of "+format.Date(msg.Day), string(data))
}
