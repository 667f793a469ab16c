package cursor

import (
	"fmt"

	"github.com/dshills/gapedit/internal/engine/text"
)

// NoColumn marks a cursor without a remembered display column.
const NoColumn = -1

// Cursor is an insertion point in a text, as a rune offset. It also
// remembers the display column vertical movement should aim for, so moving
// through a short line does not lose the original column.
// Cursor is an immutable value type.
type Cursor struct {
	offset int
	column int
}

// NewCursor creates a cursor at the given offset.
func NewCursor(offset int) Cursor {
	return Cursor{offset: max(0, offset), column: NoColumn}
}

// Offset returns the cursor's rune offset.
func (c Cursor) Offset() int {
	return c.offset
}

// PreferredColumn returns the remembered display column, or NoColumn.
func (c Cursor) PreferredColumn() int {
	return c.column
}

// WithPreferredColumn returns a copy of c that remembers col.
func (c Cursor) WithPreferredColumn(col int) Cursor {
	c.column = col
	return c
}

// MoveTo returns a new cursor at the given offset. Horizontal moves forget
// the preferred column.
func (c Cursor) MoveTo(offset int) Cursor {
	return NewCursor(offset)
}

// MoveBy returns a new cursor shifted by delta runes.
func (c Cursor) MoveBy(delta int) Cursor {
	return NewCursor(c.offset + delta)
}

// Clamp returns a cursor clamped to [0, maxOffset].
func (c Cursor) Clamp(maxOffset int) Cursor {
	if c.offset > maxOffset {
		c.offset = max(0, maxOffset)
	}
	return c
}

// String returns a string representation of the cursor.
func (c Cursor) String() string {
	return fmt.Sprintf("Cursor(%d)", c.offset)
}

// Equals returns true if two cursors are at the same position.
func (c Cursor) Equals(other Cursor) bool {
	return c.offset == other.offset
}

// Compare returns -1 if c < other, 0 if c == other, 1 if c > other.
func (c Cursor) Compare(other Cursor) int {
	if c.offset < other.offset {
		return -1
	}
	if c.offset > other.offset {
		return 1
	}
	return 0
}

// Before returns true if c is before other.
func (c Cursor) Before(other Cursor) bool {
	return c.offset < other.offset
}

// After returns true if c is after other.
func (c Cursor) After(other Cursor) bool {
	return c.offset > other.offset
}

// Point returns the line and column of the cursor in t.
func (c Cursor) Point(t *text.Text) text.Point {
	return t.OffsetToPoint(c.offset)
}
