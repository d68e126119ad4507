// Package ui renders the Bubble Tea application UI.
package ui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/jonboulle/clockwork"

	"github.com/kpumuk/incidentscope/internal/config"
	"github.com/kpumuk/incidentscope/internal/incidents"
	"github.com/kpumuk/incidentscope/internal/observability"
	"github.com/kpumuk/incidentscope/internal/scenes"
	"github.com/kpumuk/incidentscope/internal/ui/charts"
	"github.com/kpumuk/incidentscope/internal/ui/components/errorpopup"
	"github.com/kpumuk/incidentscope/internal/ui/components/messagebox"
	"github.com/kpumuk/incidentscope/internal/ui/components/metrics"
	"github.com/kpumuk/incidentscope/internal/ui/components/navbar"
	"github.com/kpumuk/incidentscope/internal/ui/components/scrollbar"
	"github.com/kpumuk/incidentscope/internal/ui/components/status"
	"github.com/kpumuk/incidentscope/internal/ui/dialogs"
	"github.com/kpumuk/incidentscope/internal/ui/dialogs/help"
	"github.com/kpumuk/incidentscope/internal/ui/theme"
	"github.com/kpumuk/incidentscope/internal/ui/views"
)

// ErrMissingTarget is reported when no view is registered for the active
// scene index.
var ErrMissingTarget = errors.New("no view for scene")

// Loader fetches the dataset.
type Loader func(ctx context.Context) (*incidents.Store, error)

// loadedMsg carries the dataset once the fetch succeeded.
type loadedMsg struct {
	store   *incidents.Store
	elapsed time.Duration
}

// loadFailedMsg indicates the dataset could not be loaded.
type loadFailedMsg struct {
	err error
}

// storeBinder is implemented by views that render the dataset.
type storeBinder interface {
	SetStore(store *incidents.Store)
}

// dialogProvider is implemented by views that open contextual dialogs.
type dialogProvider interface {
	GoToDialog() dialogs.DialogModel
	DetailDialog() dialogs.DialogModel
}

// App is the main application model.
type App struct {
	keys       KeyMap
	width      int
	height     int
	ready      bool
	controller *scenes.Controller
	views      []views.View
	store      *incidents.Store
	loadErr    error
	showError  bool
	metrics    metrics.Model
	status     status.Model
	navbar     navbar.Model
	spinner    spinner.Model
	errorPopup errorpopup.Model
	dialogs    dialogs.DialogCmp
	styles     theme.Styles
	cfg        *config.Config
	load       Loader
	logger     *slog.Logger
	telemetry  *observability.Metrics
}

// Option configures the App.
type Option func(*App)

// WithConfig sets the runtime configuration. Without WithLoader the dataset
// is read from cfg.DataSource.
func WithConfig(cfg *config.Config) Option {
	return func(a *App) { a.cfg = cfg }
}

// WithLoader replaces the dataset loader.
func WithLoader(load Loader) Option {
	return func(a *App) { a.load = load }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *App) { a.logger = logger }
}

// WithTelemetry sets the Prometheus collectors.
func WithTelemetry(m *observability.Metrics) Option {
	return func(a *App) { a.telemetry = m }
}

// New creates a new App instance with one view per scene of controller.
func New(controller *scenes.Controller, opts ...Option) App {
	styles := theme.NewStyles()

	a := App{
		keys:       DefaultKeyMap(),
		controller: controller,
		dialogs:    dialogs.NewDialogCmp(),
		styles:     styles,
		logger:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(&a)
	}
	if a.telemetry == nil {
		a.telemetry = observability.NewMetrics(clockwork.NewRealClock())
	}
	if a.load == nil && a.cfg != nil {
		a.load = configLoader(a.cfg)
	}

	topRegions := 0
	source := ""
	if a.cfg != nil {
		topRegions = a.cfg.TopRegions
		source = a.cfg.DataSource
	}

	viewStyles := views.Styles{
		Title:           styles.ViewTitle,
		Text:            styles.ViewText,
		Muted:           styles.ViewMuted,
		Error:           styles.StatusError,
		BorderStyle:     styles.BorderStyle,
		FocusBorder:     styles.FocusBorder,
		Key:             styles.NavKey,
		Axis:            styles.Axis,
		AxisLabel:       styles.AxisLabel,
		Incidents:       styles.Incidents,
		Killed:          styles.Killed,
		Injured:         styles.Injured,
		Annotation:      styles.Annotation,
		Cursor:          styles.Cursor,
		LegendValue:     styles.LegendValue,
		SliderTrack:     styles.SliderTrack,
		SliderRange:     styles.SliderRange,
		SliderHandle:    styles.SliderHandle,
		SliderFocus:     styles.SliderFocus,
		JSONKey:         styles.JSONKey,
		JSONString:      styles.JSONString,
		JSONNumber:      styles.JSONNumber,
		JSONBool:        styles.JSONBool,
		JSONNull:        styles.JSONNull,
		JSONPunctuation: styles.JSONPunctuation,
	}

	sceneOpts := []views.SceneOption{
		views.WithLogger(a.logger),
		views.WithMetrics(a.telemetry),
	}
	if topRegions > 0 {
		sceneOpts = append(sceneOpts, views.WithTopRegions(topRegions))
	}

	a.views = make([]views.View, controller.Len())
	navScenes := make([]navbar.SceneInfo, controller.Len())
	for i := range a.views {
		a.views[i] = views.NewScene(i, controller, sceneOpts...).SetStyles(viewStyles)
		navScenes[i] = navbar.SceneInfo{Name: a.views[i].Name()}
	}

	a.metrics = metrics.New(
		metrics.WithStyles(metrics.Styles{
			Bar:       styles.MetricsBar,
			Fill:      styles.MetricsLabel,
			Label:     styles.MetricsLabel,
			Value:     styles.MetricsValue,
			Separator: styles.MetricsSep,
		}),
	)
	a.status = status.New(
		status.WithStyles(status.Styles{
			Bar:   styles.NavBar,
			Text:  styles.ViewText,
			Muted: styles.ViewMuted,
			OK:    styles.StatusOK,
			Warn:  styles.StatusWarn,
			Error: styles.StatusError,
		}),
		status.WithSource(source),
	)
	a.navbar = navbar.New(
		navbar.WithStyles(navbar.Styles{
			Bar:    styles.NavBar,
			Brand:  styles.NavBrand,
			Key:    styles.NavKey,
			Item:   styles.NavItem,
			Active: styles.NavActive,
			Quit:   styles.NavQuit,
		}),
		navbar.WithBrand("incidentscope"),
		navbar.WithScenes(navScenes),
		navbar.WithHelp(a.keys.ShortHelp()...),
	)
	a.spinner = spinner.New(
		spinner.WithSpinner(spinner.MiniDot),
		spinner.WithStyle(styles.ViewMuted),
	)
	a.errorPopup = errorpopup.New(
		errorpopup.WithStyles(errorpopup.Styles{
			Title:   styles.ErrorTitle,
			Message: styles.ViewText,
			Hint:    styles.ViewMuted,
			Border:  styles.ErrorBorder,
		}),
		errorpopup.WithHint("esc dismiss · q quit"),
	)

	return a
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.Batch(
		a.loadCmd(),
		a.spinner.Tick,
	)
}

func (a App) loadCmd() tea.Cmd {
	load := a.load
	if load == nil {
		return func() tea.Msg {
			return loadFailedMsg{err: errors.New("no data source configured")}
		}
	}
	telemetry := a.telemetry
	logger := a.logger
	return func() tea.Msg {
		start := telemetry.Now()
		logger.Info("loading dataset")
		store, err := load(context.Background())
		if err != nil {
			return loadFailedMsg{err: err}
		}
		return loadedMsg{store: store, elapsed: telemetry.Now().Sub(start)}
	}
}

// configLoader reads the dataset described by cfg.
func configLoader(cfg *config.Config) Loader {
	return func(ctx context.Context) (*incidents.Store, error) {
		src, err := incidents.NewSource(cfg.DataSource, cfg.FetchTimeout)
		if err != nil {
			return nil, &incidents.LoadError{Source: cfg.DataSource, Err: err}
		}
		ctx, cancel := context.WithTimeout(ctx, cfg.FetchTimeout)
		defer cancel()
		return incidents.Load(ctx, src, cfg.LoadOptions())
	}
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case loadedMsg:
		return a, a.handleLoaded(msg)

	case loadFailedMsg:
		a.handleLoadFailed(msg.err)
		return a, nil

	case spinner.TickMsg:
		if a.status.State() != status.StateLoading {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		a.status.SetSpinner(a.spinner.View())
		return a, cmd

	case views.WindowMsg:
		if msg.Scene == a.controller.Active() {
			a.metrics = a.metrics.Update(metrics.UpdateMsg{Data: metrics.Data{
				Window: msg.Window,
				Totals: msg.Totals,
				Days:   msg.Days,
			}})
			a.status.SetWindow(msg.Window)
			a.logger.Debug("window changed", "scene", msg.Scene, "window", msg.Window.String())
		}
		return a, nil

	case views.CopiedMsg:
		if msg.Err != nil {
			a.status.SetNote(fmt.Sprintf("copy failed: %v", msg.Err), true)
			a.logger.Warn("clipboard write failed", "what", msg.What, "error", msg.Err)
		} else {
			a.status.SetNote("copied "+msg.What, false)
		}
		return a, nil

	case tea.KeyMsg:
		if a.dialogs.HasDialogs() {
			if msg.String() == "ctrl+c" {
				return a, tea.Quit
			}
			var cmd tea.Cmd
			a.dialogs, cmd = a.dialogs.Update(msg)
			return a, cmd
		}

		if a.showError && msg.String() == "esc" {
			a.showError = false
			return a, nil
		}

		// Handle global keybindings first
		switch {
		case key.Matches(msg, a.keys.Quit):
			return a, tea.Quit

		case key.Matches(msg, a.keys.Next):
			if a.controller.Next() {
				cmds = append(cmds, a.activate("next"))
			}

		case key.Matches(msg, a.keys.Prev):
			if a.controller.Prev() {
				cmds = append(cmds, a.activate("prev"))
			}

		case key.Matches(msg, a.keys.Scene):
			idx := int(msg.String()[0] - '1')
			if a.controller.SetActive(idx) {
				cmds = append(cmds, a.activate("jump"))
			}

		case key.Matches(msg, a.keys.GoTo):
			if a.store != nil {
				cmds = append(cmds, a.openDialog(func(p dialogProvider) dialogs.DialogModel { return p.GoToDialog() }))
			}

		case key.Matches(msg, a.keys.Details):
			if a.store != nil {
				cmds = append(cmds, a.openDialog(func(p dialogProvider) dialogs.DialogModel { return p.DetailDialog() }))
			}

		case key.Matches(msg, a.keys.Help):
			dialog := help.New(
				help.WithStyles(help.Styles{
					Title:   a.styles.ViewTitle,
					Border:  a.styles.FocusBorder,
					Section: a.styles.ViewTitle,
					Key:     a.styles.NavKey,
					Desc:    a.styles.ViewText,
					Muted:   a.styles.ViewMuted,
					Scrollbar: scrollbar.Styles{
						Track: a.styles.SliderTrack,
						Thumb: a.styles.SliderHandle,
					},
				}),
				help.WithSections(a.helpSections()),
			)
			cmds = append(cmds, func() tea.Msg { return dialogs.OpenDialogMsg{Model: dialog} })

		default:
			// Pass to active view
			cmds = append(cmds, a.updateActiveView(msg))
		}

	case tea.MouseMsg:
		if a.dialogs.HasDialogs() {
			var cmd tea.Cmd
			a.dialogs, cmd = a.dialogs.Update(msg)
			return a, cmd
		}
		if translated := a.contentMouse(msg); translated != nil {
			cmds = append(cmds, a.updateActiveView(translated))
		}

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true

		// Update component dimensions
		a.metrics.SetWidth(msg.Width)
		a.status.SetWidth(msg.Width)
		a.navbar.SetWidth(msg.Width)

		contentHeight := a.contentHeight()
		for i := range a.views {
			a.views[i] = a.views[i].SetSize(msg.Width, contentHeight)
		}
		a.errorPopup.SetSize(msg.Width, contentHeight)

		var cmd tea.Cmd
		a.dialogs, cmd = a.dialogs.Update(msg)
		cmds = append(cmds, cmd)

	case dialogs.OpenDialogMsg, dialogs.CloseDialogMsg:
		var cmd tea.Cmd
		a.dialogs, cmd = a.dialogs.Update(msg)
		cmds = append(cmds, cmd)

	default:
		if a.dialogs.HasDialogs() {
			var cmd tea.Cmd
			a.dialogs, cmd = a.dialogs.Update(msg)
			cmds = append(cmds, cmd)
		}
		cmds = append(cmds, a.updateActiveView(msg))
	}

	return a, tea.Batch(cmds...)
}

func (a *App) handleLoaded(msg loadedMsg) tea.Cmd {
	store := msg.store
	a.store = store
	a.loadErr = nil
	a.showError = false
	a.controller.AttachSlider(scenes.NewSlider(store.Bounds(), max(a.width, 1)))
	for _, v := range a.views {
		if binder, ok := v.(storeBinder); ok {
			binder.SetStore(store)
		}
	}

	defects := len(store.Defects())
	a.status.SetLoaded(store.Len(), defects)
	a.telemetry.Loaded(store.Len(), defects)
	a.logger.Info("dataset loaded",
		"records", store.Len(),
		"defects", defects,
		"bounds", store.Bounds().String(),
		"duration", msg.elapsed,
	)

	view, err := a.activeSceneView()
	if err != nil {
		a.logger.Error("draw skipped", "error", err)
		return nil
	}
	return view.Init()
}

func (a *App) handleLoadFailed(err error) {
	a.loadErr = err
	a.showError = true
	a.status.SetFailed()
	a.telemetry.LoadFailed()
	a.logger.Error("dataset load failed", "error", err)

	a.errorPopup.SetMessage(err.Error())
	var loadErr *incidents.LoadError
	if errors.As(err, &loadErr) {
		a.errorPopup.SetDetails("Source: " + loadErr.Source)
	}
}

// activate shows the active scene after a transition.
func (a *App) activate(direction string) tea.Cmd {
	idx := a.controller.Active()
	a.navbar.SetActive(idx)
	a.status.SetNote("", false)
	a.telemetry.Transition(direction)
	a.logger.Info("scene changed", "scene", idx, "title", a.controller.Scene().Title, "direction", direction)

	view, err := a.activeSceneView()
	if err != nil {
		a.logger.Error("draw skipped", "error", err)
		return nil
	}
	return view.Init()
}

func (a App) activeSceneView() (views.View, error) {
	idx := a.controller.Active()
	if idx < 0 || idx >= len(a.views) || a.views[idx] == nil {
		return nil, fmt.Errorf("scene %d: %w", idx, ErrMissingTarget)
	}
	return a.views[idx], nil
}

func (a *App) updateActiveView(msg tea.Msg) tea.Cmd {
	view, err := a.activeSceneView()
	if err != nil {
		return nil
	}
	updated, cmd := view.Update(msg)
	a.views[a.controller.Active()] = updated
	return cmd
}

func (a App) openDialog(build func(dialogProvider) dialogs.DialogModel) tea.Cmd {
	view, err := a.activeSceneView()
	if err != nil {
		return nil
	}
	provider, ok := view.(dialogProvider)
	if !ok {
		return nil
	}
	dialog := build(provider)
	if dialog == nil {
		return nil
	}
	return func() tea.Msg { return dialogs.OpenDialogMsg{Model: dialog} }
}

// contentMouse translates a mouse event to view coordinates. It returns nil
// for events outside the content area, except releases, which always reach
// the view so a drag cannot get stuck.
func (a App) contentMouse(msg tea.MouseMsg) tea.Msg {
	m := msg.Mouse()
	m.Y -= a.metrics.Height()
	inside := m.Y >= 0 && m.Y < a.contentHeight()

	switch msg.(type) {
	case tea.MouseReleaseMsg:
		return tea.MouseReleaseMsg(m)
	case tea.MouseClickMsg:
		if inside {
			return tea.MouseClickMsg(m)
		}
	case tea.MouseMotionMsg:
		return tea.MouseMotionMsg(m)
	case tea.MouseWheelMsg:
		if inside {
			return tea.MouseWheelMsg(m)
		}
	}
	return nil
}

func (a App) contentHeight() int {
	return max(a.height-a.metrics.Height()-a.status.Height()-a.navbar.Height(), 0)
}

func (a App) helpSections() []help.Section {
	groups := a.keys.FullHelp()
	sections := []help.Section{
		{Title: "Scenes", Bindings: groups[0], Column: help.ColumnLeft},
		{Title: "General", Bindings: groups[1], Column: help.ColumnLeft},
	}
	if view, err := a.activeSceneView(); err == nil {
		sections = append(sections, help.Section{
			Title:    view.Name(),
			Bindings: view.ShortHelp(),
			Column:   help.ColumnRight,
		})
	}
	sections = append(sections, help.Section{
		Title: "Mouse",
		Lines: []string{
			"hover the chart to inspect a day",
			"drag the slider handles",
		},
		Column: help.ColumnRight,
	})
	return sections
}

// View implements tea.Model.
func (a App) View() tea.View {
	var v tea.View
	v.AltScreen = true
	v.MouseMode = tea.MouseModeAllMotion
	v.WindowTitle = "incidentscope"

	if !a.ready {
		v.SetContent("Initializing...")
		return v
	}

	v.SetContent(a.render())
	return v
}

// render lays out metrics (top), content, status and navbar (bottom), with
// the dialogs drawn over the whole screen.
func (a App) render() string {
	contentHeight := a.contentHeight()
	content := a.renderContent(contentHeight)
	content = lipgloss.NewStyle().
		Width(a.width).MaxWidth(a.width).
		Height(contentHeight).MaxHeight(contentHeight).
		Render(content)

	if a.showError && a.errorPopup.HasError() {
		content = charts.OverlayCenter(content, a.errorPopup.View(), a.width, contentHeight)
	}

	screen := lipgloss.JoinVertical(
		lipgloss.Left,
		a.metrics.View(),
		content,
		a.status.View(),
		a.navbar.View(),
	)
	return a.dialogs.Render(screen)
}

func (a App) renderContent(height int) string {
	boxStyles := messagebox.Styles{
		Title:  a.styles.ViewTitle,
		Muted:  a.styles.ViewMuted,
		Border: a.styles.FocusBorder,
	}
	switch {
	case a.store == nil && a.loadErr != nil:
		return messagebox.Render(boxStyles, "No data", "The dataset could not be loaded", a.width, height)
	case a.store == nil:
		return messagebox.Render(boxStyles, "Loading", a.spinner.View()+" Loading incidents…", a.width, height)
	}

	view, err := a.activeSceneView()
	if err != nil {
		return ""
	}
	return view.View()
}
