// Package history provides undo/redo for the text editor engine.
//
// Every edit the engine applies produces a text.Change that records the
// replaced text and the inserted text. History keeps those changes in
// entries, and an entry is the unit one undo reverts:
//
//	h := history.NewHistory(1000)
//	h.Record("Insert", change, cursorBefore, cursorAfter)
//
//	cur, err := h.Undo(t) // revert the newest entry, get its cursor back
//	cur, err = h.Redo(t)
//
// # Grouping
//
// Several edits can be made one undo unit:
//
//	h.BeginGroup("Replace All")
//	// ... multiple edits ...
//	h.EndGroup()
//
// # Coalescing
//
// Runes typed one after another at the cursor join the same entry as long
// as each follows the previous within the coalesce window. Whitespace,
// cursor movement (Seal) and any other kind of edit start a new entry, so
// undo removes roughly one word at a time.
package history
