package history

import (
	"time"

	"github.com/dshills/gapedit/internal/engine/cursor"
	"github.com/dshills/gapedit/internal/engine/text"
)

// Entry is one undo unit: the changes it made, in the order they were
// applied, and the cursor on either side of them.
type Entry struct {
	Name    string
	Changes []text.Change

	CursorBefore cursor.Cursor
	CursorAfter  cursor.Cursor

	Timestamp time.Time

	// open is set while further typing may still be merged into the entry.
	open bool
}

// Delta returns the total change in text length, in runes.
func (e *Entry) Delta() int {
	total := 0
	for _, c := range e.Changes {
		total += c.Delta()
	}
	return total
}

// undo reverts the entry's changes, newest first. If a change fails the
// ones already reverted are reapplied.
func (e *Entry) undo(t *text.Text) error {
	for i := len(e.Changes) - 1; i >= 0; i-- {
		if err := t.ApplyChange(e.Changes[i].Invert()); err != nil {
			for j := i + 1; j < len(e.Changes); j++ {
				_ = t.ApplyChange(e.Changes[j])
			}
			return err
		}
	}
	return nil
}

// redo reapplies the entry's changes in order.
func (e *Entry) redo(t *text.Text) error {
	for i, c := range e.Changes {
		if err := t.ApplyChange(c); err != nil {
			for j := i - 1; j >= 0; j-- {
				_ = t.ApplyChange(e.Changes[j].Invert())
			}
			return err
		}
	}
	return nil
}

func (e *Entry) info() OperationInfo {
	return OperationInfo{
		Description: e.Name,
		Timestamp:   e.Timestamp,
		Changes:     len(e.Changes),
		Delta:       e.Delta(),
	}
}

// OperationInfo provides read-only info about an undo entry.
type OperationInfo struct {
	Description string    // Human-readable description
	Timestamp   time.Time // When the entry was recorded
	Changes     int       // Number of changes in the entry
	Delta       int       // Positive for insertions, negative for deletions
}
