// Package lua runs sandboxed Lua scripts against an engine.
//
// A State opens only the base, table, string and math libraries and removes
// the loaders that reach the file system (dofile, loadfile, load,
// loadstring). Each run is bounded twice: by an instruction budget counted
// by the VM and by a wall clock timeout.
//
// BindEngine installs the global "buffer" table:
//
//	buffer.text([start, end])     -> string
//	buffer.len()                  -> number
//	buffer.line(n)                -> string (1-indexed)
//	buffer.line_count()           -> number
//	buffer.insert(offset, text)   -> end offset
//	buffer.delete(start, end)
//	buffer.replace(start, end, s) -> end offset
//	buffer.type(text)             -- insert at the cursor
//	buffer.backspace()
//	buffer.cursor()               -> offset, line, column (line 1-indexed)
//	buffer.move(offset)
//	buffer.move_by(n)             -- grapheme clusters
//	buffer.undo()                 -> bool
//	buffer.redo()                 -> bool
//	buffer.group(fn)              -- fn's edits undo as one
//
// Offsets count runes from 0.
package lua
