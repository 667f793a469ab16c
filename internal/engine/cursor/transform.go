package cursor

import "github.com/dshills/gapedit/internal/engine/text"

// TransformOffset updates an offset after a change.
//
// Transformation rules:
//   - If the change ends at or before offset: shift by the change's delta
//   - If the change starts at or after offset: offset unchanged
//   - If the change spans offset: move offset to the end of the new text
func TransformOffset(offset int, c text.Change) int {
	if c.Range.End <= offset {
		return offset + c.Delta()
	}
	if c.Range.Start >= offset {
		return offset
	}
	return c.NewRange.End
}

// TransformOffsetSticky is like TransformOffset but decides what happens to
// an insertion exactly at offset. A sticky offset stays before the inserted
// text; otherwise it moves past it.
func TransformOffsetSticky(offset int, c text.Change, sticky bool) int {
	if c.Range.IsEmpty() && c.Range.Start == offset {
		if sticky {
			return offset
		}
		return c.NewRange.End
	}
	return TransformOffset(offset, c)
}

// TransformCursor updates a cursor after a change. A cursor that keeps
// its offset keeps its preferred column.
func TransformCursor(cur Cursor, c text.Change) Cursor {
	off := TransformOffset(cur.offset, c)
	if off == cur.offset {
		return cur
	}
	return NewCursor(off)
}

// TransformCursorMulti updates a cursor after several changes, given in
// the order they were applied.
func TransformCursorMulti(cur Cursor, changes []text.Change) Cursor {
	for _, c := range changes {
		cur = TransformCursor(cur, c)
	}
	return cur
}
