package gotodate

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/kpumuk/incidentscope/internal/incidents"
	"github.com/kpumuk/incidentscope/internal/ui/dialogs"
)

func keyCode(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg(tea.Key{Code: code})
}

func keyCtrl(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg(tea.Key{Code: r, Mod: tea.ModCtrl})
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

func day(m time.Month, d int) time.Time {
	return time.Date(2015, m, d, 0, 0, 0, 0, time.UTC)
}

func bounds() incidents.Window {
	return incidents.NewWindow(day(time.January, 1), day(time.December, 31))
}

func submit(t *testing.T, m *Model, value string) (*Model, []tea.Msg) {
	t.Helper()
	m.input.SetValue(value)
	m.input.CursorEnd()
	m, cmd := updateModel(t, m, keyCode(tea.KeyEnter))
	return m, collectMsgs(t, cmd)
}

func TestGoToDateDialogEnter(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		value      string
		allowRange bool
		want       ActionMsg
		wantErr    string
	}{
		"single date": {
			value: "2015-07-04",
			want:  ActionMsg{Kind: KindDate, Window: incidents.NewWindow(day(time.July, 4), day(time.July, 4))},
		},
		"trimmed date": {
			value: "  2015-07-04 ",
			want:  ActionMsg{Kind: KindDate, Window: incidents.NewWindow(day(time.July, 4), day(time.July, 4))},
		},
		"range": {
			value:      "2015-06-01..2015-08-31",
			allowRange: true,
			want:       ActionMsg{Kind: KindRange, Window: incidents.NewWindow(day(time.June, 1), day(time.August, 31))},
		},
		"range when not allowed": {value: "2015-06-01..2015-08-31", wantErr: "use YYYY-MM-DD"},
		"empty":                  {value: "  ", wantErr: "enter a date"},
		"malformed":              {value: "07/04/2015", wantErr: "use YYYY-MM-DD"},
		"outside bounds":         {value: "2016-01-01", wantErr: "date outside 2015-01-01..2015-12-31"},
		"range outside bounds": {
			value:      "2014-12-01..2015-01-31",
			allowRange: true,
			wantErr:    "range outside",
		},
		"malformed range": {value: "2015-06..2015-08", allowRange: true, wantErr: "YYYY-MM-DD..YYYY-MM-DD"},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			m := New(WithBounds(bounds()), WithRange(tc.allowRange))
			m.Init()
			m, msgs := submit(t, m, tc.value)

			if tc.wantErr != "" {
				if len(msgs) != 0 {
					t.Fatalf("messages = %v, want none", msgs)
				}
				if m.Err() == nil || !strings.Contains(m.Err().Error(), tc.wantErr) {
					t.Fatalf("Err() = %v, want %q", m.Err(), tc.wantErr)
				}
				if !strings.Contains(m.View(), tc.wantErr) && m.width > 0 {
					t.Fatalf("expected error in view")
				}
				return
			}

			var gotAction *ActionMsg
			gotClose := false
			for _, msg := range msgs {
				switch v := msg.(type) {
				case ActionMsg:
					gotAction = &v
				case dialogs.CloseDialogMsg:
					gotClose = true
				default:
					t.Fatalf("unexpected message %T", msg)
				}
			}
			if gotAction == nil || *gotAction != tc.want {
				t.Fatalf("action = %+v, want %+v", gotAction, tc.want)
			}
			if !gotClose {
				t.Fatal("expected CloseDialogMsg")
			}
		})
	}
}

func TestGoToDateDialogErrorClearsOnInput(t *testing.T) {
	t.Parallel()

	m := New()
	m.Init()
	m, _ = submit(t, m, "bad")
	if m.Err() == nil {
		t.Fatal("expected validation error")
	}
	m, _ = updateModel(t, m, tea.KeyPressMsg(tea.Key{Text: "1", Code: '1'}))
	if m.Err() != nil {
		t.Fatalf("Err() = %v, want nil after typing", m.Err())
	}
}

func TestGoToDateDialogPrefill(t *testing.T) {
	t.Parallel()

	m := New(WithValue("2015-03-03"))
	if got := m.input.Value(); got != "2015-03-03" {
		t.Fatalf("input value = %q", got)
	}
}

func TestGoToDateDialogCtrlUClearsInput(t *testing.T) {
	t.Parallel()

	m := New()
	m.Init()
	m.input.SetValue("abc")
	m.input.CursorEnd()

	m, _ = updateModel(t, m, keyCtrl('u'))
	if got := m.input.Value(); got != "" {
		t.Fatalf("input value = %q, want empty", got)
	}
}

func TestGoToDateDialogEscCloses(t *testing.T) {
	t.Parallel()

	m := New()
	m.Init()
	m.input.SetValue("2015-07-04")
	m.input.CursorEnd()

	_, cmd := updateModel(t, m, keyCode(tea.KeyEsc))
	msgs := collectMsgs(t, cmd)
	if len(msgs) != 1 {
		t.Fatalf("messages = %d, want 1", len(msgs))
	}
	if _, ok := msgs[0].(dialogs.CloseDialogMsg); !ok {
		t.Fatalf("message type = %T, want dialogs.CloseDialogMsg", msgs[0])
	}
}

func TestGoToDateDialogWindowSizing(t *testing.T) {
	t.Parallel()

	m := New()
	m.Init()

	m, _ = updateModel(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	if m.width != 60 {
		t.Fatalf("width = %d, want %d", m.width, 60)
	}
	if m.height != 3 {
		t.Fatalf("height = %d, want %d", m.height, 3)
	}
	if m.row != 18 {
		t.Fatalf("row = %d, want %d", m.row, 18)
	}
	if m.col != 30 {
		t.Fatalf("col = %d, want %d", m.col, 30)
	}
	if got := m.input.Width(); got != 55 {
		t.Fatalf("input width = %d, want %d", got, 55)
	}
}

func TestGoToDateDialogWindowSizingMinWidth(t *testing.T) {
	t.Parallel()

	m := New()
	m.Init()

	m, _ = updateModel(t, m, tea.WindowSizeMsg{Width: 30, Height: 10})
	if m.width != 26 {
		t.Fatalf("width = %d, want %d", m.width, 26)
	}
	if m.height != 3 {
		t.Fatalf("height = %d, want %d", m.height, 3)
	}
	if m.row != 3 {
		t.Fatalf("row = %d, want %d", m.row, 3)
	}
	if m.col != 2 {
		t.Fatalf("col = %d, want %d", m.col, 2)
	}
	if got := m.input.Width(); got != 21 {
		t.Fatalf("input width = %d, want %d", got, 21)
	}
}

func TestGoToDateDialogCloseResetsInput(t *testing.T) {
	t.Parallel()

	m := New(WithValue("not a date"))
	stack := dialogs.NewDialogCmp()
	stack, _ = stack.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	stack, _ = stack.Update(dialogs.OpenDialogMsg{Model: m})
	if !m.input.Focused() {
		t.Fatal("expected input to be focused after open")
	}

	stack, _ = stack.Update(keyCode(tea.KeyEnter))
	if m.Err() == nil {
		t.Fatal("expected validation error")
	}

	stack, _ = stack.Update(dialogs.CloseDialogMsg{})
	if stack.HasDialogs() {
		t.Fatal("expected the stack to be empty")
	}
	if m.input.Focused() {
		t.Fatal("expected input to be blurred after close")
	}
	if m.Err() != nil {
		t.Fatalf("err = %v, want nil", m.Err())
	}
}
