package history

import (
	"errors"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/dshills/gapedit/internal/engine/cursor"
	"github.com/dshills/gapedit/internal/engine/text"
)

// Common errors for history operations.
var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
)

// Defaults for a new History.
const (
	DefaultMaxEntries     = 1000
	DefaultCoalesceWindow = time.Second
)

// History manages undo/redo state for a text.
type History struct {
	mu sync.Mutex

	undoStack []*Entry
	redoStack []*Entry

	// Grouping state
	grouping bool
	group    *Entry

	// Configuration
	maxEntries int
	window     time.Duration
	now        func() time.Time
}

// Option configures a History.
type Option func(*History)

// WithCoalesceWindow sets how long after the previous keystroke a typed
// rune may still join the same undo entry. Zero disables coalescing.
func WithCoalesceWindow(d time.Duration) Option {
	return func(h *History) {
		h.window = d
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(h *History) {
		h.now = now
	}
}

// NewHistory creates a new history manager.
func NewHistory(maxEntries int, opts ...Option) *History {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	h := &History{
		maxEntries: maxEntries,
		window:     DefaultCoalesceWindow,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Record adds an applied change to the history and clears the redo stack.
//
// Inside a group the change joins the group. Otherwise a single typed rune
// that continues the previous typing entry is merged into it; anything
// else starts a new entry.
func (h *History) Record(name string, c text.Change, before, after cursor.Cursor) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.redoStack = nil
	now := h.now()

	if h.grouping {
		if len(h.group.Changes) == 0 {
			h.group.CursorBefore = before
		}
		h.group.Changes = append(h.group.Changes, c)
		h.group.CursorAfter = after
		h.group.Timestamp = now
		return
	}

	if last := h.top(); last != nil && h.continues(last, c, now) {
		last.Changes = append(last.Changes, c)
		last.CursorAfter = after
		last.Timestamp = now
		return
	}

	h.pushLocked(&Entry{
		Name:         name,
		Changes:      []text.Change{c},
		CursorBefore: before,
		CursorAfter:  after,
		Timestamp:    now,
		open:         typed(c),
	})
}

// typed reports whether c is a single non-space rune insertion.
func typed(c text.Change) bool {
	if c.Type != text.ChangeInsert || utf8.RuneCountInString(c.NewText) != 1 {
		return false
	}
	return !strings.ContainsAny(c.NewText, " \t\n")
}

// continues reports whether c extends the typing run in e.
func (h *History) continues(e *Entry, c text.Change, now time.Time) bool {
	if !e.open || !typed(c) || h.window <= 0 || now.Sub(e.Timestamp) > h.window {
		return false
	}
	prev := e.Changes[len(e.Changes)-1]
	return c.Range.Start == prev.NewRange.End
}

func (h *History) top() *Entry {
	if len(h.undoStack) == 0 {
		return nil
	}
	return h.undoStack[len(h.undoStack)-1]
}

// pushLocked adds an entry without acquiring the lock.
func (h *History) pushLocked(e *Entry) {
	if prev := h.top(); prev != nil {
		prev.open = false
	}
	h.undoStack = append(h.undoStack, e)
	h.redoStack = nil

	if len(h.undoStack) > h.maxEntries {
		excess := len(h.undoStack) - h.maxEntries
		clear(h.undoStack[:excess])
		h.undoStack = h.undoStack[excess:]
	}
}

// Seal stops the newest entry from absorbing further typing, for example
// after the cursor was moved.
func (h *History) Seal() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if e := h.top(); e != nil {
		e.open = false
	}
}

// Undo reverts the newest entry in t and returns the cursor to restore.
// On failure the entry stays on the undo stack.
func (h *History) Undo(t *text.Text) (cursor.Cursor, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	e := h.top()
	if e == nil {
		return cursor.Cursor{}, ErrNothingToUndo
	}
	if err := e.undo(t); err != nil {
		return cursor.Cursor{}, err
	}

	e.open = false
	h.undoStack = h.undoStack[:len(h.undoStack)-1]
	h.redoStack = append(h.redoStack, e)
	return e.CursorBefore, nil
}

// Redo reapplies the most recently undone entry and returns the cursor to
// restore.
func (h *History) Redo(t *text.Text) (cursor.Cursor, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.redoStack) == 0 {
		return cursor.Cursor{}, ErrNothingToRedo
	}
	e := h.redoStack[len(h.redoStack)-1]
	if err := e.redo(t); err != nil {
		return cursor.Cursor{}, err
	}

	h.redoStack = h.redoStack[:len(h.redoStack)-1]
	h.undoStack = append(h.undoStack, e)
	return e.CursorAfter, nil
}

// CanUndo returns true if undo is available.
func (h *History) CanUndo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undoStack) > 0
}

// CanRedo returns true if redo is available.
func (h *History) CanRedo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.redoStack) > 0
}

// UndoCount returns the number of undo entries available.
func (h *History) UndoCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undoStack)
}

// RedoCount returns the number of redo entries available.
func (h *History) RedoCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.redoStack)
}

// BeginGroup starts a group. Changes recorded while grouping undo as one
// entry. Nested calls are ignored.
func (h *History) BeginGroup(name string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.grouping {
		return
	}
	h.grouping = true
	h.group = &Entry{Name: name}
}

// EndGroup finishes a group and pushes it if it recorded anything.
func (h *History) EndGroup() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.grouping {
		return
	}
	h.grouping = false
	g := h.group
	h.group = nil
	if len(g.Changes) > 0 {
		h.pushLocked(g)
	}
}

// CancelGroup discards the current group.
// Note: changes already applied to the text stay applied.
func (h *History) CancelGroup() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.grouping = false
	h.group = nil
}

// IsGrouping returns true if currently in a group.
func (h *History) IsGrouping() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.grouping
}

// Clear removes all undo/redo history.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.undoStack = nil
	h.redoStack = nil
	h.grouping = false
	h.group = nil
}

// UndoInfo returns info about available undo entries, oldest first.
func (h *History) UndoInfo() []OperationInfo {
	h.mu.Lock()
	defer h.mu.Unlock()

	result := make([]OperationInfo, len(h.undoStack))
	for i, e := range h.undoStack {
		result[i] = e.info()
	}
	return result
}

// PeekUndo returns info about the next undo entry without removing it.
func (h *History) PeekUndo() (OperationInfo, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if e := h.top(); e != nil {
		return e.info(), true
	}
	return OperationInfo{}, false
}

// PeekRedo returns info about the next redo entry without removing it.
func (h *History) PeekRedo() (OperationInfo, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.redoStack) == 0 {
		return OperationInfo{}, false
	}
	return h.redoStack[len(h.redoStack)-1].info(), true
}

// SetMaxEntries changes the maximum number of undo entries.
// If the current stack is larger, oldest entries are removed.
func (h *History) SetMaxEntries(max int) {
	if max <= 0 {
		max = DefaultMaxEntries
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.maxEntries = max
	if len(h.undoStack) > max {
		excess := len(h.undoStack) - max
		h.undoStack = h.undoStack[excess:]
	}
}

// MaxEntries returns the maximum number of undo entries.
func (h *History) MaxEntries() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.maxEntries
}
