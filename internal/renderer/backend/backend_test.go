package backend

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/gapedit/internal/renderer/core"
)

func TestNullBackendSetGetCell(t *testing.T) {
	b := NewNullBackend(80, 24)
	b.Init()

	cell := core.NewStyledCell('X', core.DefaultStyle().WithForeground(core.ColorRed))
	b.SetCell(10, 5, cell)

	if got := b.GetCell(10, 5); got != cell {
		t.Errorf("cell mismatch: expected %+v, got %+v", cell, got)
	}

	// Out of bounds should be ignored/return empty
	b.SetCell(-1, 0, cell)
	b.SetCell(100, 0, cell)
	if got := b.GetCell(-1, 0); got != core.EmptyCell() {
		t.Error("out of bounds should return empty cell")
	}
}

func TestNullBackendFillAndClear(t *testing.T) {
	b := NewNullBackend(20, 10)
	b.Init()

	cell := core.NewCell('.')
	b.Fill(core.NewScreenRect(2, 3, 5, 8), cell)

	if b.GetCell(3, 2) != cell || b.GetCell(7, 4) != cell {
		t.Error("cells inside rect should be filled")
	}
	if b.GetCell(8, 4) == cell || b.GetCell(3, 5) == cell {
		t.Error("cells outside rect should not be filled")
	}

	b.Clear()
	if b.Row(2) != "                    " {
		t.Errorf("clear should blank the row, got %q", b.Row(2))
	}
}

func TestNullBackendRowSkipsContinuation(t *testing.T) {
	b := NewNullBackend(4, 1)
	b.Init()
	b.SetCell(0, 0, core.NewCell('世'))
	b.SetCell(1, 0, core.ContinuationCell(core.DefaultStyle()))
	b.SetCell(2, 0, core.NewCell('a'))

	if got := b.Row(0); got != "世a " {
		t.Errorf("Row(0) = %q", got)
	}
}

func TestNullBackendCursorAndEvents(t *testing.T) {
	b := NewNullBackend(10, 10)
	b.Init()

	b.ShowCursor(3, 4)
	if x, y, visible := b.CursorPosition(); x != 3 || y != 4 || !visible {
		t.Errorf("cursor = (%d, %d, %v)", x, y, visible)
	}
	b.HideCursor()
	if _, _, visible := b.CursorPosition(); visible {
		t.Error("cursor should be hidden")
	}

	b.PostEvent(Event{Type: EventKey, Key: KeyRune, Rune: 'q'})
	if ev := b.PollEvent(); ev.Key != KeyRune || ev.Rune != 'q' {
		t.Errorf("unexpected event %+v", ev)
	}

	b.Resize(40, 5)
	if w, h := b.Size(); w != 40 || h != 5 {
		t.Errorf("size = %dx%d", w, h)
	}
	if ev := b.PollEvent(); ev.Type != EventResize || ev.Width != 40 {
		t.Errorf("expected resize event, got %+v", ev)
	}

	b.Beep()
	if b.Beeps() != 1 {
		t.Error("beep not counted")
	}
}

func TestModMask(t *testing.T) {
	m := ModCtrl | ModAlt
	if !m.Has(ModCtrl) || !m.Has(ModAlt) || m.Has(ModShift) {
		t.Errorf("mask %b", m)
	}
	if fromTcellMod(toTcellMod(m)) != m {
		t.Error("modifier conversion does not round trip")
	}
}

func TestKeyTables(t *testing.T) {
	for tk, k := range fromTcellKey {
		if tk == tcell.KeyBackspace {
			continue
		}
		if toTcellKey[k] != tk {
			t.Errorf("key %d maps back to %d, want %d", k, toTcellKey[k], tk)
		}
	}
}

func TestStyleConversion(t *testing.T) {
	styles := []core.Style{
		core.DefaultStyle(),
		core.DefaultStyle().WithForeground(core.ColorFromIndex(3)).With(core.AttrBold),
		core.DefaultStyle().WithBackground(core.ColorFromRGB(10, 20, 30)).With(core.AttrReverse).With(core.AttrItalic),
	}
	for _, s := range styles {
		if got := fromTcellStyle(toTcellStyle(s)); got != s {
			t.Errorf("style %+v converted to %+v", s, got)
		}
	}
}

func newSimTerminal(t *testing.T) (*Terminal, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	term := NewTerminalWithScreen(screen)
	if err := term.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	t.Cleanup(term.Shutdown)
	screen.SetSize(20, 5)
	return term, screen
}

func TestTerminalCells(t *testing.T) {
	term, _ := newSimTerminal(t)

	style := core.DefaultStyle().WithForeground(core.ColorGreen).With(core.AttrBold)
	term.SetCell(2, 1, core.NewStyledCell('g', style))
	term.Show()

	got := term.GetCell(2, 1)
	if got.Rune != 'g' || got.Style != style {
		t.Errorf("GetCell = %+v", got)
	}

	term.Fill(core.NewScreenRect(0, 0, 1, 3), core.NewCell('#'))
	if term.GetCell(1, 0).Rune != '#' {
		t.Error("Fill did not write the rect")
	}
}

func TestTerminalKeyEvents(t *testing.T) {
	term, screen := newSimTerminal(t)

	screen.InjectKey(tcell.KeyRune, 'x', tcell.ModNone)
	screen.InjectKey(tcell.KeyCtrlZ, 0, tcell.ModNone)

	// Resize events from Init/SetSize may come first.
	var keys []Event
	for len(keys) < 2 {
		if ev := term.PollEvent(); ev.Type == EventKey {
			keys = append(keys, ev)
		}
	}
	if keys[0].Key != KeyRune || keys[0].Rune != 'x' {
		t.Errorf("first key = %+v", keys[0])
	}
	if keys[1].Key != KeyCtrlZ {
		t.Errorf("second key = %+v", keys[1])
	}
}
