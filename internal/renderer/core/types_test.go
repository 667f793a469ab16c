package core

import "testing"

func TestRuneWidth(t *testing.T) {
	tests := []struct {
		r    rune
		want int
	}{
		{'a', 1},
		{'\t', 0},
		{0x7f, 0},
		{'世', 2},
		{'가', 2},
		{'é', 1},
	}
	for _, tt := range tests {
		if got := RuneWidth(tt.r); got != tt.want {
			t.Errorf("RuneWidth(%U) = %d, want %d", tt.r, got, tt.want)
		}
	}
}

func TestColorString(t *testing.T) {
	tests := []struct {
		c    Color
		want string
	}{
		{ColorDefault, "default"},
		{ColorFromIndex(4), "palette(4)"},
		{ColorFromRGB(255, 128, 0), "#ff8000"},
	}
	for _, tt := range tests {
		if got := tt.c.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestStyleBuilders(t *testing.T) {
	s := DefaultStyle().WithForeground(ColorRed).WithBackground(ColorBlue).With(AttrBold).With(AttrReverse)

	if s.Foreground != ColorRed || s.Background != ColorBlue {
		t.Errorf("colors not applied: %+v", s)
	}
	if !s.Attributes.Has(AttrBold) || !s.Attributes.Has(AttrReverse) || s.Attributes.Has(AttrItalic) {
		t.Errorf("attributes = %b", s.Attributes)
	}
	if DefaultStyle().Foreground.IsDefault() != true {
		t.Error("default style should use default colors")
	}
}

func TestCells(t *testing.T) {
	if c := NewCell('世'); c.Width != 2 {
		t.Errorf("wide cell width = %d", c.Width)
	}
	if !ContinuationCell(DefaultStyle()).IsContinuation() {
		t.Error("continuation cell not recognized")
	}
	if EmptyCell().IsContinuation() {
		t.Error("empty cell is not a continuation")
	}
}

func TestScreenRect(t *testing.T) {
	r := NewScreenRect(1, 2, 4, 6)
	if r.Width() != 4 || r.Height() != 3 {
		t.Errorf("size = %dx%d", r.Width(), r.Height())
	}
	if !r.Contains(2, 1) || r.Contains(6, 1) || r.Contains(2, 4) {
		t.Error("Contains is wrong at the edges")
	}
	if NewScreenRect(5, 5, 1, 1).Width() != 0 {
		t.Error("inverted rect should be empty")
	}
}
