package help

import (
	"strings"
	"testing"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/kpumuk/incidentscope/internal/ui/dialogs"
)

func keyCode(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg(tea.Key{Code: code})
}

func keyText(text string) tea.KeyPressMsg {
	var code rune
	for _, r := range text {
		code = r
		break
	}
	return tea.KeyPressMsg(tea.Key{Text: text, Code: code})
}

func updateModel(t *testing.T, m *Model, msg tea.Msg) (*Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	updated, ok := next.(*Model)
	if !ok {
		t.Fatalf("Update returned %T, want *Model", next)
	}
	return updated, cmd
}

func collectMsgs(t *testing.T, cmd tea.Cmd) []tea.Msg {
	t.Helper()
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if msg == nil {
		return nil
	}
	switch m := msg.(type) {
	case tea.BatchMsg:
		var out []tea.Msg
		for _, c := range m {
			out = append(out, collectMsgs(t, c)...)
		}
		return out
	default:
		return []tea.Msg{m}
	}
}

func sampleSections() []Section {
	return []Section{
		{
			Title: "General",
			Bindings: []key.Binding{
				key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
				key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
			},
			Column: ColumnLeft,
		},
		{
			Title: "Scenes",
			Bindings: []key.Binding{
				key.NewBinding(key.WithKeys("n", "pgdown"), key.WithHelp("n/pgdn", "next scene")),
				key.NewBinding(key.WithKeys("p", "pgup"), key.WithHelp("p/pgup", "previous scene")),
			},
			Column: ColumnRight,
		},
		{
			Title:  "Mouse",
			Lines:  []string{"hover the chart to inspect a day", "drag the slider handles"},
			Column: ColumnRight,
		},
		{
			Title: "Dialogs",
			Bindings: []key.Binding{
				key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
			},
			Column: ColumnLeft,
		},
	}
}

func TestHelpDialogWindowSizing(t *testing.T) {
	t.Parallel()

	m := New(WithSections(sampleSections()))
	m.Init()

	m, _ = updateModel(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	if m.width != 80 {
		t.Fatalf("width = %d, want %d", m.width, 80)
	}
	if m.height != 20 {
		t.Fatalf("height = %d, want %d", m.height, 20)
	}
	if m.row != 10 {
		t.Fatalf("row = %d, want %d", m.row, 10)
	}
	if m.col != 20 {
		t.Fatalf("col = %d, want %d", m.col, 20)
	}
}

func TestHelpDialogCloseKeys(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		msg tea.Msg
	}{
		"question": {msg: keyText("?")},
		"escape":   {msg: keyCode(tea.KeyEsc)},
		"quit key": {msg: keyText("q")},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			m := New(WithSections(sampleSections()))
			m.Init()

			_, cmd := updateModel(t, m, tc.msg)
			msgs := collectMsgs(t, cmd)
			if len(msgs) != 1 {
				t.Fatalf("messages = %d, want 1", len(msgs))
			}
			if _, ok := msgs[0].(dialogs.CloseDialogMsg); !ok {
				t.Fatalf("message type = %T, want dialogs.CloseDialogMsg", msgs[0])
			}
		})
	}
}

func TestHelpDialogScrollClamp(t *testing.T) {
	t.Parallel()

	lines := make([]string, 0, 20)
	for i := 1; i <= 20; i++ {
		lines = append(lines, "line "+string(rune('a'+i-1)))
	}
	sections := []Section{{Title: "Many", Lines: lines}}

	m := New(WithSections(sections))
	m.Init()
	m, _ = updateModel(t, m, tea.WindowSizeMsg{Width: 80, Height: 14})

	m, _ = updateModel(t, m, keyCode(tea.KeyEnd))
	if m.yOffset != m.maxOffset() {
		t.Fatalf("yOffset = %d, want %d", m.yOffset, m.maxOffset())
	}

	m, _ = updateModel(t, m, keyCode(tea.KeyHome))
	if m.yOffset != 0 {
		t.Fatalf("yOffset = %d, want %d", m.yOffset, 0)
	}
}

func TestHelpDialogColumns(t *testing.T) {
	t.Parallel()

	m := New(WithSections(sampleSections()))
	m, _ = updateModel(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})

	lines := m.lines(m.bodyWidth())
	if !strings.HasPrefix(lines[0], "General") || !strings.Contains(lines[0], "Scenes") {
		t.Fatalf("first row = %q, want General and Scenes side by side", lines[0])
	}

	stacked := m.lines(40)
	if strings.Contains(stacked[0], "Scenes") {
		t.Fatalf("narrow layout should stack columns, first row = %q", stacked[0])
	}
	found := false
	for _, line := range stacked {
		if strings.HasPrefix(line, "Scenes") {
			found = true
		}
	}
	if !found {
		t.Fatalf("stacked layout lost the right column:\n%s", strings.Join(stacked, "\n"))
	}
}

func TestHelpDialogRenderSectionsContains(t *testing.T) {
	t.Parallel()

	sections := []Section{
		{
			Title: "General",
			Bindings: []key.Binding{
				key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
				key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "hidden"), key.WithDisabled()),
			},
			Lines: []string{"extra info"},
		},
	}

	lines := renderSections(sections, 30, Styles{})
	content := strings.Join(lines, "\n")
	if !strings.Contains(content, "General") {
		t.Fatalf("expected title to be rendered, got %q", content)
	}
	if !strings.Contains(content, "q") || !strings.Contains(content, "quit") {
		t.Fatalf("expected key binding to be rendered, got %q", content)
	}
	if strings.Contains(content, "hidden") {
		t.Fatalf("unexpected disabled binding in output: %q", content)
	}
	if !strings.Contains(content, "extra info") {
		t.Fatalf("expected custom line to be rendered, got %q", content)
	}
}

func TestHelpDialogMouseWheel(t *testing.T) {
	t.Parallel()

	lines := make([]string, 0, 20)
	for i := 1; i <= 20; i++ {
		lines = append(lines, "line "+string(rune('a'+i-1)))
	}
	m := New(WithSections([]Section{{Title: "Many", Lines: lines}}))
	m, _ = updateModel(t, m, tea.WindowSizeMsg{Width: 80, Height: 14})

	m, _ = updateModel(t, m, tea.MouseWheelMsg(tea.Mouse{Button: tea.MouseWheelDown}))
	if m.yOffset != 1 {
		t.Fatalf("yOffset = %d, want 1", m.yOffset)
	}
	m, _ = updateModel(t, m, tea.MouseWheelMsg(tea.Mouse{Button: tea.MouseWheelUp}))
	if m.yOffset != 0 {
		t.Fatalf("yOffset = %d, want 0", m.yOffset)
	}
}

func TestHelpDialogView(t *testing.T) {
	t.Parallel()

	m := New(WithSections(sampleSections()), WithTitle("Keys"))
	m.Init()
	m, _ = updateModel(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})

	output := ansi.Strip(m.View())
	lines := strings.Split(output, "\n")
	if len(lines) != m.height {
		t.Fatalf("lines = %d, want %d", len(lines), m.height)
	}
	for _, want := range []string{"Keys", "General", "Scenes", "next scene", "esc close"} {
		if !strings.Contains(output, want) {
			t.Fatalf("expected %q in:\n%s", want, output)
		}
	}
}

func TestHelpDialogScrollbar(t *testing.T) {
	t.Parallel()

	lines := make([]string, 0, 30)
	for i := range 30 {
		lines = append(lines, "line "+string(rune('a'+i%26)))
	}
	m := New(WithSections([]Section{{Title: "Many", Lines: lines}}))
	m, _ = updateModel(t, m, tea.WindowSizeMsg{Width: 80, Height: 14})

	output := ansi.Strip(m.View())
	if !strings.Contains(output, "█") {
		t.Fatalf("expected scrollbar thumb in:\n%s", output)
	}
	if got := len(strings.Split(output, "\n")); got != m.height {
		t.Fatalf("lines = %d, want %d", got, m.height)
	}

	short := New(WithSections(sampleSections()))
	short, _ = updateModel(t, short, tea.WindowSizeMsg{Width: 100, Height: 30})
	if strings.Contains(ansi.Strip(short.View()), "█") {
		t.Fatal("scrollbar rendered for content that fits")
	}
}
