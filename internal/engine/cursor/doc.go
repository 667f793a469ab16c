// Package cursor provides the cursor value used by the editor engine and
// the rules that keep it in place across edits.
//
// A Cursor is a rune offset plus an optional preferred display column.
// Horizontal moves reset the column; vertical moves set it once and then
// aim for it on every following line.
//
//	c := cursor.NewCursor(10)
//	c = c.MoveBy(-2)                                 // offset 8
//	c = cursor.TransformCursor(c, change)            // follow an edit
//
// Cursors are immutable values and safe for concurrent use.
package cursor
