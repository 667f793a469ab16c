package engine

import (
	"bytes"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/dshills/gapedit/internal/engine/text"
)

// ============================================================================
// Basic Operations
// ============================================================================

func TestNew(t *testing.T) {
	e := New()
	if e.Len() != 0 {
		t.Errorf("expected empty engine, got len %d", e.Len())
	}
	if e.Text() != "" || !e.IsEmpty() {
		t.Errorf("expected empty text, got %q", e.Text())
	}
	if e.LineCount() != 1 {
		t.Errorf("expected 1 line, got %d", e.LineCount())
	}
}

func TestNewWithContent(t *testing.T) {
	content := "Hello, World!"
	e := New(WithContent(content))

	if e.Text() != content {
		t.Errorf("expected %q, got %q", content, e.Text())
	}
	if e.Len() != len(content) {
		t.Errorf("expected len %d, got %d", len(content), e.Len())
	}
}

func TestNewFromReader(t *testing.T) {
	e, err := NewFromReader(strings.NewReader("a\r\nb"), WithLineEnding(LineEndingCRLF))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.Text() != "a\nb" {
		t.Errorf("expected normalized text, got %q", e.Text())
	}

	var buf bytes.Buffer
	if _, err := e.WriteTo(&buf); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "a\r\nb" {
		t.Errorf("expected CRLF on write, got %q", buf.String())
	}
}

func TestInsert(t *testing.T) {
	e := New()

	end, err := e.Insert(0, "Hello")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if end != 5 {
		t.Errorf("expected end 5, got %d", end)
	}
	if _, err := e.Insert(99, "x"); !errors.Is(err, ErrOffsetOutOfRange) {
		t.Errorf("expected ErrOffsetOutOfRange, got %v", err)
	}
}

func TestDeleteReplace(t *testing.T) {
	e := New(WithContent("Hello, World!"))

	if err := e.Delete(5, 7); err != nil {
		t.Fatal(err)
	}
	end, err := e.Replace(5, 10, " Go")
	if err != nil {
		t.Fatal(err)
	}
	if e.Text() != "Hello Go!" || end != 8 {
		t.Errorf("got %q end %d", e.Text(), end)
	}
	if err := e.Delete(5, 2); !errors.Is(err, ErrRangeInvalid) {
		t.Errorf("expected ErrRangeInvalid, got %v", err)
	}
}

func TestApplyEdit(t *testing.T) {
	e := New(WithContent("abc"))
	c, err := e.ApplyEdit(text.NewInsert(1, "XY"))
	if err != nil {
		t.Fatal(err)
	}
	if c.Type != text.ChangeInsert || e.Text() != "aXYbc" {
		t.Errorf("unexpected change %+v, text %q", c, e.Text())
	}
}

func TestApplyEditsUndoAsOne(t *testing.T) {
	e := New(WithContent("one two three"))
	e.SetCursor(13)

	err := e.ApplyEdits([]Edit{
		{Range: Range{Start: 8, End: 13}, NewText: "3"},
		{Range: Range{Start: 4, End: 7}, NewText: "2"},
		{Range: Range{Start: 0, End: 3}, NewText: "1"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if e.Text() != "1 2 3" {
		t.Fatalf("expected '1 2 3', got %q", e.Text())
	}
	if e.CursorOffset() != 5 {
		t.Errorf("cursor should follow the edits, got %d", e.CursorOffset())
	}
	if e.UndoCount() != 1 {
		t.Fatalf("expected a single undo entry, got %d", e.UndoCount())
	}

	if err := e.Undo(); err != nil {
		t.Fatal(err)
	}
	if e.Text() != "one two three" || e.CursorOffset() != 13 {
		t.Errorf("undo: %q cursor %d", e.Text(), e.CursorOffset())
	}

	if err := e.ApplyEdits([]Edit{text.NewDelete(0, 2), text.NewDelete(1, 3)}); !errors.Is(err, ErrEditsOverlap) {
		t.Errorf("expected ErrEditsOverlap, got %v", err)
	}
	if err := e.ApplyEdits(nil); err != nil {
		t.Errorf("empty edits should be a no-op, got %v", err)
	}
}

// ============================================================================
// Cursor Editing
// ============================================================================

func TestTypingAtCursor(t *testing.T) {
	e := New(WithContent("hello world"))
	e.SetCursor(5)

	for _, r := range ", big" {
		if err := e.InsertAtCursor(string(r)); err != nil {
			t.Fatal(err)
		}
	}
	if e.Text() != "hello, big world" {
		t.Errorf("got %q", e.Text())
	}
	if e.CursorOffset() != 10 {
		t.Errorf("expected cursor 10, got %d", e.CursorOffset())
	}
	if st := e.Stats(); st.GapStart != 10 || st.Len != 16 || st.Cap < st.Len {
		t.Errorf("gap should sit at the cursor: %+v", st)
	}
}

func TestBackspaceAndDeleteForward(t *testing.T) {
	// flag emoji is one grapheme made of two runes
	e := New(WithContent("a\U0001F1E9\U0001F1EAb"))
	e.MoveToEnd()

	if err := e.Backspace(); err != nil {
		t.Fatal(err)
	}
	if err := e.Backspace(); err != nil {
		t.Fatal(err)
	}
	if e.Text() != "a" || e.CursorOffset() != 1 {
		t.Errorf("got %q cursor %d", e.Text(), e.CursorOffset())
	}

	e.SetCursor(0)
	if err := e.DeleteForward(); err != nil {
		t.Fatal(err)
	}
	if e.Text() != "" {
		t.Errorf("got %q", e.Text())
	}

	// Both are no-ops at the boundaries.
	if err := e.Backspace(); err != nil {
		t.Error(err)
	}
	if err := e.DeleteForward(); err != nil {
		t.Error(err)
	}
}

func TestCursorFollowsEdits(t *testing.T) {
	e := New(WithContent("0123456789"))
	e.SetCursor(5)

	e.Insert(0, "ab")
	if e.CursorOffset() != 7 {
		t.Errorf("insert before cursor: expected 7, got %d", e.CursorOffset())
	}
	e.Delete(8, 10)
	if e.CursorOffset() != 7 {
		t.Errorf("delete after cursor: expected 7, got %d", e.CursorOffset())
	}
	e.Delete(5, 9)
	if e.CursorOffset() != 5 {
		t.Errorf("delete spanning cursor: expected 5, got %d", e.CursorOffset())
	}
}

// ============================================================================
// Cursor Movement
// ============================================================================

func TestHorizontalMovement(t *testing.T) {
	e := New(WithContent("aéz"))

	e.MoveRight()
	e.MoveRight()
	if e.CursorOffset() != 3 {
		t.Errorf("MoveRight should skip the combining mark, got %d", e.CursorOffset())
	}
	e.MoveLeft()
	if e.CursorOffset() != 1 {
		t.Errorf("MoveLeft: expected 1, got %d", e.CursorOffset())
	}
	e.MoveBy(10)
	if e.CursorOffset() != 4 {
		t.Errorf("MoveBy past end: expected 4, got %d", e.CursorOffset())
	}
	e.MoveBy(-10)
	if e.CursorOffset() != 0 {
		t.Errorf("MoveBy past start: expected 0, got %d", e.CursorOffset())
	}
}

func TestVerticalMovementKeepsColumn(t *testing.T) {
	e := New(WithContent("abcdef\nab\nabcdef"))
	e.SetCursor(5) // line 0, column 5

	e.MoveDown()
	if p := e.CursorPoint(); p != (Point{Line: 1, Column: 2}) {
		t.Errorf("short line should clamp: got %s", p)
	}
	e.MoveDown()
	if p := e.CursorPoint(); p != (Point{Line: 2, Column: 5}) {
		t.Errorf("preferred column should be restored: got %s", p)
	}
	e.MoveDown()
	if e.CursorOffset() != e.Len() {
		t.Errorf("MoveDown on last line should go to end, got %d", e.CursorOffset())
	}

	e.MoveUp()
	e.MoveUp()
	e.MoveUp()
	if e.CursorOffset() != 0 {
		t.Errorf("MoveUp on first line should go to start, got %d", e.CursorOffset())
	}
}

func TestVerticalMovementWithTabs(t *testing.T) {
	e := New(WithContent("\tx\nabcdefgh"), WithTabWidth(4))
	e.SetCursor(1) // after the tab: display column 4

	e.MoveDown()
	if p := e.CursorPoint(); p != (Point{Line: 1, Column: 4}) {
		t.Errorf("expected (1:4), got %s", p)
	}
	if e.Column(e.CursorOffset()) != 4 || e.TabWidth() != 4 {
		t.Error("display column mismatch")
	}
}

func TestHomeEnd(t *testing.T) {
	e := New(WithContent("first\nsecond line\nthird"))
	e.SetCursor(9)

	e.MoveEnd()
	if e.CursorOffset() != 17 {
		t.Errorf("MoveEnd: expected 17, got %d", e.CursorOffset())
	}
	e.MoveHome()
	if e.CursorOffset() != 6 {
		t.Errorf("MoveHome: expected 6, got %d", e.CursorOffset())
	}
	e.MoveToEnd()
	if e.CursorOffset() != e.Len() {
		t.Error("MoveToEnd failed")
	}
	e.MoveToStart()
	if e.CursorOffset() != 0 {
		t.Error("MoveToStart failed")
	}
	e.SetCursor(-4)
	if e.CursorOffset() != 0 {
		t.Error("SetCursor should clamp")
	}
	e.SetCursor(1000)
	if e.CursorOffset() != e.Len() {
		t.Error("SetCursor should clamp")
	}
}

// ============================================================================
// Undo/Redo
// ============================================================================

func TestUndoRedo(t *testing.T) {
	e := New()
	e.Insert(0, "Hello")
	e.Insert(5, " World")

	if err := e.Undo(); err != nil {
		t.Fatal(err)
	}
	if e.Text() != "Hello" {
		t.Errorf("expected 'Hello', got %q", e.Text())
	}
	if err := e.Undo(); err != nil {
		t.Fatal(err)
	}
	if e.Text() != "" {
		t.Errorf("expected empty, got %q", e.Text())
	}
	if err := e.Undo(); !errors.Is(err, ErrNothingToUndo) {
		t.Errorf("expected ErrNothingToUndo, got %v", err)
	}

	e.Redo()
	e.Redo()
	if e.Text() != "Hello World" {
		t.Errorf("expected 'Hello World', got %q", e.Text())
	}
	if err := e.Redo(); !errors.Is(err, ErrNothingToRedo) {
		t.Errorf("expected ErrNothingToRedo, got %v", err)
	}
	if !e.CanUndo() || e.CanRedo() || e.RedoCount() != 0 {
		t.Error("unexpected undo/redo state")
	}
}

func TestUndoTypingRun(t *testing.T) {
	e := New()
	for _, r := range "abc" {
		e.InsertAtCursor(string(r))
	}
	e.MoveLeft()
	e.InsertAtCursor("X")

	if e.Text() != "abXc" {
		t.Fatalf("got %q", e.Text())
	}
	if e.UndoCount() != 2 {
		t.Fatalf("moving the cursor should split typing runs, got %d entries", e.UndoCount())
	}

	e.Undo()
	if e.Text() != "abc" || e.CursorOffset() != 2 {
		t.Errorf("got %q cursor %d", e.Text(), e.CursorOffset())
	}
	e.Undo()
	if e.Text() != "" || e.CursorOffset() != 0 {
		t.Errorf("got %q cursor %d", e.Text(), e.CursorOffset())
	}
}

func TestUndoGroup(t *testing.T) {
	e := New(WithContent("a\nb"))
	e.BeginUndoGroup("Indent")
	e.Insert(2, "\t")
	e.Insert(0, "\t")
	e.EndUndoGroup()

	if e.Text() != "\ta\n\tb" || e.UndoCount() != 1 {
		t.Fatalf("got %q with %d entries", e.Text(), e.UndoCount())
	}
	e.Undo()
	if e.Text() != "a\nb" {
		t.Errorf("got %q", e.Text())
	}

	e.BeginUndoGroup("cancelled")
	e.Insert(0, "x")
	e.CancelUndoGroup()
	if e.RedoCount() != 0 || e.UndoCount() != 0 {
		t.Error("cancelled group should not be recorded")
	}

	e.Insert(0, "y")
	e.ClearHistory()
	if e.CanUndo() {
		t.Error("ClearHistory should empty the stack")
	}
}

func TestMaxUndoEntries(t *testing.T) {
	e := New(WithMaxUndoEntries(2), WithCoalesceWindow(0))
	for range 5 {
		e.InsertAtCursor("x")
	}
	if e.UndoCount() != 2 {
		t.Errorf("expected 2 entries, got %d", e.UndoCount())
	}
}

// ============================================================================
// State
// ============================================================================

func TestReadOnly(t *testing.T) {
	e := New(WithContent("locked"), WithReadOnly())

	checks := map[string]error{}
	_, checks["Insert"] = e.Insert(0, "x")
	checks["Delete"] = e.Delete(0, 1)
	_, checks["Replace"] = e.Replace(0, 1, "x")
	_, checks["ApplyEdit"] = e.ApplyEdit(text.NewInsert(0, "x"))
	checks["ApplyEdits"] = e.ApplyEdits([]Edit{text.NewInsert(0, "x")})
	checks["InsertAtCursor"] = e.InsertAtCursor("x")
	checks["Backspace"] = e.Backspace()
	checks["DeleteForward"] = e.DeleteForward()
	checks["Undo"] = e.Undo()
	checks["Redo"] = e.Redo()

	for op, err := range checks {
		if !errors.Is(err, ErrReadOnly) {
			t.Errorf("%s: expected ErrReadOnly, got %v", op, err)
		}
	}
	if e.Text() != "locked" || !e.IsReadOnly() {
		t.Error("read-only engine was modified")
	}

	e.SetReadOnly(false)
	if _, err := e.Insert(0, "un"); err != nil {
		t.Errorf("insert after SetReadOnly(false): %v", err)
	}
}

func TestLineAccess(t *testing.T) {
	e := New(WithContent("ab\ncde"))

	if e.LineText(1) != "cde" || e.LineLen(1) != 3 || string(e.LineRunes(0)) != "ab" {
		t.Error("line access failed")
	}
	if e.LineStartOffset(1) != 3 || e.LineEndOffset(0) != 2 {
		t.Error("line offsets failed")
	}
	if p := e.OffsetToPoint(4); p != (Point{Line: 1, Column: 1}) {
		t.Errorf("OffsetToPoint(4) = %s", p)
	}
	if e.PointToOffset(Point{Line: 1, Column: 2}) != 5 {
		t.Error("PointToOffset failed")
	}
	if r, ok := e.RuneAt(3); !ok || r != 'c' {
		t.Errorf("RuneAt(3) = %q", r)
	}
	if e.TextRange(1, 4) != "b\nc" {
		t.Errorf("TextRange = %q", e.TextRange(1, 4))
	}
}

func TestRevisionAndSnapshot(t *testing.T) {
	e := New(WithContent("v1"))
	rev := e.Revision()
	snap := e.Snapshot()

	e.Insert(2, "+")
	if e.Revision() == rev {
		t.Error("revision should change")
	}
	if snap.String() != "v1" || snap.Revision() != rev {
		t.Error("snapshot should not change")
	}

	e.SetLineEnding(LineEndingCR)
	if e.LineEnding() != LineEndingCR {
		t.Error("SetLineEnding failed")
	}
}

func TestConcurrentAccess(t *testing.T) {
	e := New(WithContent(strings.Repeat("x", 100)))

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				e.InsertAtCursor("y")
				e.MoveLeft()
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = e.Text()
				_ = e.CursorPoint()
				_ = e.LineCount()
			}
		}()
	}
	wg.Wait()

	if e.Len() != 500 {
		t.Errorf("expected 500 runes, got %d", e.Len())
	}
}
