package engine

import (
	"io"
	"sync"
	"time"

	"github.com/dshills/gapedit/internal/engine/cursor"
	"github.com/dshills/gapedit/internal/engine/history"
	"github.com/dshills/gapedit/internal/engine/text"
)

// Re-export commonly used types for convenience.
type (
	// Point represents a line/column position.
	Point = text.Point

	// Range represents a rune range in the text.
	Range = text.Range

	// Edit represents an edit operation.
	Edit = text.Edit

	// Change is an applied edit.
	Change = text.Change

	// LineEnding specifies the line ending style.
	LineEnding = text.LineEnding

	// RevisionID uniquely identifies a text revision.
	RevisionID = text.RevisionID

	// Cursor is the insertion point.
	Cursor = cursor.Cursor
)

// Re-export constants.
const (
	LineEndingLF   = text.LineEndingLF
	LineEndingCRLF = text.LineEndingCRLF
	LineEndingCR   = text.LineEndingCR
)

// Engine is the main facade for the text editor engine.
// It combines the text, the cursor and undo/redo into a unified,
// thread-safe API.
//
// All operations are thread-safe and can be called from multiple goroutines.
type Engine struct {
	mu sync.RWMutex

	// Core components
	text    *text.Text
	cur     cursor.Cursor
	history *history.History

	// Configuration
	textOpts       []text.Option
	maxUndoEntries int
	coalesce       time.Duration
	readOnly       bool

	// Initialization
	initContent string
}

func newEngine(opts []Option) *Engine {
	e := &Engine{
		maxUndoEntries: DefaultMaxUndoEntries,
		coalesce:       history.DefaultCoalesceWindow,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.cur = cursor.NewCursor(0)
	e.history = history.NewHistory(e.maxUndoEntries, history.WithCoalesceWindow(e.coalesce))
	return e
}

// New creates a new Engine with the given options.
func New(opts ...Option) *Engine {
	e := newEngine(opts)
	e.text = text.FromString(e.initContent, e.textOpts...)
	return e
}

// NewFromReader creates an Engine from an io.Reader.
func NewFromReader(r io.Reader, opts ...Option) (*Engine, error) {
	e := newEngine(opts)
	t, err := text.FromReader(r, e.textOpts...)
	if err != nil {
		return nil, err
	}
	e.text = t
	return e, nil
}

// ============================================================================
// Read Operations
// ============================================================================

// Text returns the full content with '\n' line breaks.
func (e *Engine) Text() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.text.String()
}

// TextRange returns the text in [start, end).
func (e *Engine) TextRange(start, end int) string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.text.Slice(start, end)
}

// Len returns the number of runes.
func (e *Engine) Len() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.text.Len()
}

// IsEmpty returns true if the text is empty.
func (e *Engine) IsEmpty() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.text.IsEmpty()
}

// LineCount returns the number of lines.
func (e *Engine) LineCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.text.LineCount()
}

// LineText returns the text of a specific line (without newline).
func (e *Engine) LineText(line int) string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.text.LineText(line)
}

// LineRunes returns a copy of the runes of a line (without newline).
func (e *Engine) LineRunes(line int) []rune {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.text.LineRunes(line)
}

// LineLen returns the number of runes in a line (without newline).
func (e *Engine) LineLen(line int) int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.text.LineLen(line)
}

// RuneAt returns the rune at the given offset.
func (e *Engine) RuneAt(offset int) (rune, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.text.RuneAt(offset)
}

// OffsetToPoint converts an offset to line/column.
func (e *Engine) OffsetToPoint(offset int) Point {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.text.OffsetToPoint(offset)
}

// PointToOffset converts line/column to an offset.
func (e *Engine) PointToOffset(p Point) int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.text.PointToOffset(p)
}

// LineStartOffset returns the offset of the start of a line.
func (e *Engine) LineStartOffset(line int) int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.text.LineStart(line)
}

// LineEndOffset returns the offset of the end of a line (before newline).
func (e *Engine) LineEndOffset(line int) int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.text.LineEnd(line)
}

// Column returns the display column of offset within its line.
func (e *Engine) Column(offset int) int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.text.Column(offset)
}

// Revision returns the current revision ID.
func (e *Engine) Revision() RevisionID {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.text.Revision()
}

// TabWidth returns the tab width.
func (e *Engine) TabWidth() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.text.TabWidth()
}

// LineEnding returns the line ending used when writing the content out.
func (e *Engine) LineEnding() LineEnding {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.text.LineEnding()
}

// SetLineEnding changes the line ending used when writing the content out.
func (e *Engine) SetLineEnding(le LineEnding) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.text.SetLineEnding(le)
}

// Stats describes the storage behind the text.
type Stats struct {
	Len      int
	Cap      int
	GapStart int
	GapLen   int
}

// Stats reports the current size, capacity and gap of the storage.
func (e *Engine) Stats() Stats {
	e.mu.RLock()
	defer e.mu.RUnlock()
	start, length := e.text.Gap()
	return Stats{Len: e.text.Len(), Cap: e.text.Cap(), GapStart: start, GapLen: length}
}

// Snapshot returns a read-only copy of the current content.
func (e *Engine) Snapshot() *text.Snapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.text.Snapshot()
}

// WriteTo writes the content, with the configured line ending, to w.
func (e *Engine) WriteTo(w io.Writer) (int64, error) {
	return e.Snapshot().WriteTo(w)
}

// ============================================================================
// Write Operations
// ============================================================================

// Insert inserts s at the given offset.
// Returns the end position of the inserted text.
func (e *Engine) Insert(offset int, s string) (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.readOnly {
		return 0, ErrReadOnly
	}
	if offset < 0 || offset > e.text.Len() {
		return 0, ErrOffsetOutOfRange
	}
	c, err := e.applyLocked("Insert", offset, offset, s)
	if err != nil {
		return 0, err
	}
	return c.NewRange.End, nil
}

// Delete removes text in the given range.
func (e *Engine) Delete(start, end int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.readOnly {
		return ErrReadOnly
	}
	_, err := e.applyLocked("Delete", start, end, "")
	return err
}

// Replace replaces text in the given range with s.
// Returns the end position of the replacement text.
func (e *Engine) Replace(start, end int, s string) (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.readOnly {
		return 0, ErrReadOnly
	}
	c, err := e.applyLocked("Replace", start, end, s)
	if err != nil {
		return 0, err
	}
	return c.NewRange.End, nil
}

// ApplyEdit applies a single edit operation.
func (e *Engine) ApplyEdit(edit Edit) (Change, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.readOnly {
		return Change{}, ErrReadOnly
	}
	return e.applyLocked("Edit", edit.Range.Start, edit.Range.End, edit.NewText)
}

// ApplyEdits applies multiple edits atomically and records them as one
// undo entry. Edits must be in reverse order (highest offset first).
func (e *Engine) ApplyEdits(edits []Edit) error {
	if len(edits) == 0 {
		return nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.readOnly {
		return ErrReadOnly
	}

	before := e.cur
	changes, err := e.text.ApplyEdits(edits)
	if err != nil {
		return err
	}

	if !e.history.IsGrouping() {
		e.history.BeginGroup("Edits")
		defer e.history.EndGroup()
	}
	for _, c := range changes {
		e.cur = cursor.TransformCursor(e.cur, c)
		e.history.Record("Edits", c, before, e.cur)
		before = e.cur
	}
	return nil
}

// applyLocked replaces [start, end) with s, moves the cursor along and
// records the change for undo.
func (e *Engine) applyLocked(name string, start, end int, s string) (Change, error) {
	before := e.cur
	c, err := e.text.Replace(start, end, s)
	if err != nil {
		return Change{}, err
	}
	e.cur = cursor.TransformCursor(e.cur, c).Clamp(e.text.Len())
	e.history.Record(name, c, before, e.cur)
	return c, nil
}

// ============================================================================
// Cursor Editing
// ============================================================================

// InsertAtCursor inserts s at the cursor and moves the cursor past it.
func (e *Engine) InsertAtCursor(s string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.readOnly {
		return ErrReadOnly
	}
	off := e.cur.Offset()
	before := e.cur
	c, err := e.text.Replace(off, off, s)
	if err != nil {
		return err
	}
	e.cur = cursor.NewCursor(c.NewRange.End)
	e.history.Record("Typing", c, before, e.cur)
	return nil
}

// Backspace deletes the grapheme cluster before the cursor.
// It does nothing at the start of the text.
func (e *Engine) Backspace() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.readOnly {
		return ErrReadOnly
	}
	off := e.cur.Offset()
	prev := e.text.PrevGrapheme(off)
	if prev == off {
		return nil
	}
	_, err := e.applyLocked("Backspace", prev, off, "")
	return err
}

// DeleteForward deletes the grapheme cluster after the cursor.
// It does nothing at the end of the text.
func (e *Engine) DeleteForward() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.readOnly {
		return ErrReadOnly
	}
	off := e.cur.Offset()
	next := e.text.NextGrapheme(off)
	if next == off {
		return nil
	}
	_, err := e.applyLocked("Delete", off, next, "")
	return err
}

// ============================================================================
// Cursor Movement
// ============================================================================

// Cursor returns the current cursor.
func (e *Engine) Cursor() Cursor {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.cur
}

// CursorOffset returns the current cursor offset.
func (e *Engine) CursorOffset() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.cur.Offset()
}

// CursorPoint returns the line and column of the cursor.
func (e *Engine) CursorPoint() Point {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.cur.Point(e.text)
}

// SetCursor moves the cursor to offset, clamped to the text.
func (e *Engine) SetCursor(offset int) {
	e.move(func() cursor.Cursor {
		return cursor.NewCursor(offset).Clamp(e.text.Len())
	})
}

// MoveBy moves the cursor by delta grapheme clusters.
func (e *Engine) MoveBy(delta int) {
	e.move(func() cursor.Cursor {
		off := e.cur.Offset()
		for ; delta > 0; delta-- {
			off = e.text.NextGrapheme(off)
		}
		for ; delta < 0; delta++ {
			off = e.text.PrevGrapheme(off)
		}
		return cursor.NewCursor(off)
	})
}

// MoveLeft moves the cursor one grapheme cluster back.
func (e *Engine) MoveLeft() { e.MoveBy(-1) }

// MoveRight moves the cursor one grapheme cluster forward.
func (e *Engine) MoveRight() { e.MoveBy(1) }

// MoveUp moves the cursor to the previous line, aiming for the preferred
// display column. On the first line it moves to the start of the text.
func (e *Engine) MoveUp() {
	e.move(func() cursor.Cursor { return e.vertical(-1) })
}

// MoveDown moves the cursor to the next line, aiming for the preferred
// display column. On the last line it moves to the end of the text.
func (e *Engine) MoveDown() {
	e.move(func() cursor.Cursor { return e.vertical(1) })
}

// MoveHome moves the cursor to the start of its line.
func (e *Engine) MoveHome() {
	e.move(func() cursor.Cursor {
		return cursor.NewCursor(e.text.LineStart(e.text.LineAt(e.cur.Offset())))
	})
}

// MoveEnd moves the cursor to the end of its line.
func (e *Engine) MoveEnd() {
	e.move(func() cursor.Cursor {
		return cursor.NewCursor(e.text.LineEnd(e.text.LineAt(e.cur.Offset())))
	})
}

// MoveToStart moves the cursor to the start of the text.
func (e *Engine) MoveToStart() { e.SetCursor(0) }

// MoveToEnd moves the cursor to the end of the text.
func (e *Engine) MoveToEnd() {
	e.move(func() cursor.Cursor { return cursor.NewCursor(e.text.Len()) })
}

// move applies a cursor movement. Moving ends the current typing run so
// the next keystroke starts a new undo entry.
func (e *Engine) move(to func() cursor.Cursor) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cur = to()
	e.history.Seal()
}

func (e *Engine) vertical(dir int) cursor.Cursor {
	off := e.cur.Offset()
	line := e.text.LineAt(off) + dir
	switch {
	case line < 0:
		return cursor.NewCursor(0)
	case line >= e.text.LineCount():
		return cursor.NewCursor(e.text.Len())
	}

	col := e.cur.PreferredColumn()
	if col == cursor.NoColumn {
		col = e.text.Column(off)
	}
	return cursor.NewCursor(e.text.OffsetAtColumn(line, col)).WithPreferredColumn(col)
}

// ============================================================================
// Undo/Redo Operations
// ============================================================================

// Undo undoes the last entry and restores the cursor it started from.
func (e *Engine) Undo() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.readOnly {
		return ErrReadOnly
	}
	cur, err := e.history.Undo(e.text)
	if err != nil {
		return err
	}
	e.cur = cur.Clamp(e.text.Len())
	return nil
}

// Redo redoes the last undone entry.
func (e *Engine) Redo() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.readOnly {
		return ErrReadOnly
	}
	cur, err := e.history.Redo(e.text)
	if err != nil {
		return err
	}
	e.cur = cur.Clamp(e.text.Len())
	return nil
}

// CanUndo returns true if undo is available.
func (e *Engine) CanUndo() bool {
	return e.history.CanUndo()
}

// CanRedo returns true if redo is available.
func (e *Engine) CanRedo() bool {
	return e.history.CanRedo()
}

// UndoCount returns the number of available undo entries.
func (e *Engine) UndoCount() int {
	return e.history.UndoCount()
}

// RedoCount returns the number of available redo entries.
func (e *Engine) RedoCount() int {
	return e.history.RedoCount()
}

// BeginUndoGroup starts a new undo group.
// All operations until EndUndoGroup will be undone as a single unit.
func (e *Engine) BeginUndoGroup(name string) {
	e.history.BeginGroup(name)
}

// EndUndoGroup ends the current undo group.
func (e *Engine) EndUndoGroup() {
	e.history.EndGroup()
}

// CancelUndoGroup cancels the current undo group without recording.
func (e *Engine) CancelUndoGroup() {
	e.history.CancelGroup()
}

// ClearHistory removes all undo/redo history.
func (e *Engine) ClearHistory() {
	e.history.Clear()
}

// ============================================================================
// State
// ============================================================================

// IsReadOnly returns true if the engine rejects edits.
func (e *Engine) IsReadOnly() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.readOnly
}

// SetReadOnly changes whether the engine rejects edits.
func (e *Engine) SetReadOnly(readOnly bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.readOnly = readOnly
}
