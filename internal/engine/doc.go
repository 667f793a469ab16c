// Package engine provides the core text editor engine for gapedit.
//
// The engine package serves as the main facade, combining the text model,
// cursor handling and undo/redo into a unified, thread-safe API.
//
// # Architecture
//
// The engine is built on several sub-packages:
//
//   - gap: generic gap buffer, the storage for every text
//   - text: rune text with a line index, graphemes and display widths
//   - cursor: cursor value and its transformation across edits
//   - history: undo/redo entries with grouping and typing coalescing
//
// # Thread Safety
//
// All Engine operations are thread-safe. The engine uses a read-write mutex
// to allow concurrent reads while serializing writes.
//
// # Basic Usage
//
//	e := engine.New()
//	e.Insert(0, "Hello, World!")
//	e.Replace(7, 12, "Go") // "Hello, Go!"
//	e.Undo()               // "Hello, World!"
//
// # Editing at the Cursor
//
// Keyboard-driven editing goes through the cursor. Consecutive runes typed
// at the cursor land next to the gap of the underlying buffer, so each
// keystroke costs O(1):
//
//	e := engine.New(engine.WithContent("fox"))
//	e.MoveToEnd()
//	e.InsertAtCursor("!") // "fox!"
//	e.Backspace()         // "fox"
//	e.MoveUp()            // keeps the display column across lines
//
// # Undo/Redo
//
// Typing runs, explicit groups and multi-edit operations each undo as one
// unit:
//
//	e.BeginUndoGroup("Indent")
//	e.Insert(0, "\t")
//	e.Insert(10, "\t")
//	e.EndUndoGroup()
//	e.Undo() // removes both tabs
package engine
