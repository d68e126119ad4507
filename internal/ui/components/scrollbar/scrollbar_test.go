package scrollbar

import (
	"strings"
	"testing"
)

func TestScrollbarFits(t *testing.T) {
	bar := New(WithSize(DefaultWidth, 3), WithRange(3, 3, 0))

	if top, size := bar.Thumb(); top != 0 || size != 0 {
		t.Fatalf("Thumb() = (%d, %d), want (0, 0)", top, size)
	}
	if got, want := bar.View(), " \n \n "; got != want {
		t.Fatalf("View() = %q, want %q", got, want)
	}
}

func TestScrollbarThumbPosition(t *testing.T) {
	tests := []struct {
		name             string
		total, offset    int
		wantTop, wantLen int
	}{
		{name: "top", total: 20, offset: 0, wantTop: 0, wantLen: 5},
		{name: "middle", total: 20, offset: 6, wantTop: 3, wantLen: 5},
		{name: "bottom", total: 20, offset: 10, wantTop: 5, wantLen: 5},
		{name: "past end", total: 20, offset: 40, wantTop: 5, wantLen: 5},
		{name: "long content keeps one cell", total: 1000, offset: 500, wantTop: 5, wantLen: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bar := New(WithSize(DefaultWidth, 10), WithRange(tt.total, 10, tt.offset))
			top, size := bar.Thumb()
			if top != tt.wantTop || size != tt.wantLen {
				t.Fatalf("Thumb() = (%d, %d), want (%d, %d)", top, size, tt.wantTop, tt.wantLen)
			}
		})
	}
}

func TestScrollbarView(t *testing.T) {
	bar := New(WithSize(DefaultWidth, 4), WithRange(8, 4, 4))

	got := bar.View()
	if want := "░\n░\n█\n█"; got != want {
		t.Fatalf("View() = %q, want %q", got, want)
	}
	if n := strings.Count(got, "\n") + 1; n != 4 {
		t.Fatalf("rows = %d, want 4", n)
	}
}

func TestScrollbarZeroHeight(t *testing.T) {
	if got := New(WithRange(10, 2, 0)).View(); got != "" {
		t.Fatalf("View() = %q, want empty", got)
	}
}
