package lua

import (
	"errors"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/gapedit/internal/engine"
)

// BufferModuleName is the global the engine bindings are installed under.
const BufferModuleName = "buffer"

// bufferModule exposes one engine to Lua.
type bufferModule struct {
	eng *engine.Engine
}

// BindEngine installs the buffer table for e into s.
func BindEngine(s *State, e *engine.Engine) {
	m := &bufferModule{eng: e}
	s.RegisterModule(BufferModuleName, map[string]lua.LGFunction{
		"text":       m.text,
		"len":        m.bufLen,
		"line":       m.line,
		"line_count": m.lineCount,
		"insert":     m.insert,
		"delete":     m.delete,
		"replace":    m.replace,
		"type":       m.typeText,
		"backspace":  m.backspace,
		"cursor":     m.cursor,
		"move":       m.move,
		"move_by":    m.moveBy,
		"undo":       m.undo,
		"redo":       m.redo,
		"group":      m.group,
	})
}

// text([start, end]) -> string
func (m *bufferModule) text(L *lua.LState) int {
	if L.GetTop() == 0 {
		L.Push(lua.LString(m.eng.Text()))
		return 1
	}
	start, end := m.checkRange(L, 1)
	L.Push(lua.LString(m.eng.TextRange(start, end)))
	return 1
}

// len() -> number
// Returns the length in runes.
func (m *bufferModule) bufLen(L *lua.LState) int {
	L.Push(lua.LNumber(m.eng.Len()))
	return 1
}

// line(n) -> string
// Returns the text of a specific line (1-indexed).
func (m *bufferModule) line(L *lua.LState) int {
	n := L.CheckInt(1)
	if n < 1 || n > m.eng.LineCount() {
		L.ArgError(1, "line out of range")
		return 0
	}
	L.Push(lua.LString(m.eng.LineText(n - 1)))
	return 1
}

// line_count() -> number
func (m *bufferModule) lineCount(L *lua.LState) int {
	L.Push(lua.LNumber(m.eng.LineCount()))
	return 1
}

// insert(offset, text) -> end_offset
func (m *bufferModule) insert(L *lua.LState) int {
	offset := L.CheckInt(1)
	text := L.CheckString(2)
	if offset < 0 {
		L.ArgError(1, "offset must be non-negative")
		return 0
	}

	end, err := m.eng.Insert(offset, text)
	if err != nil {
		L.RaiseError("insert: %v", err)
		return 0
	}
	L.Push(lua.LNumber(end))
	return 1
}

// delete(start, end)
func (m *bufferModule) delete(L *lua.LState) int {
	start, end := m.checkRange(L, 1)
	if err := m.eng.Delete(start, end); err != nil {
		L.RaiseError("delete: %v", err)
	}
	return 0
}

// replace(start, end, text) -> end_offset
func (m *bufferModule) replace(L *lua.LState) int {
	start, end := m.checkRange(L, 1)
	text := L.CheckString(3)

	newEnd, err := m.eng.Replace(start, end, text)
	if err != nil {
		L.RaiseError("replace: %v", err)
		return 0
	}
	L.Push(lua.LNumber(newEnd))
	return 1
}

// type(text)
// Inserts at the cursor the way keystrokes do, coalescing into one undo step.
func (m *bufferModule) typeText(L *lua.LState) int {
	text := L.CheckString(1)
	for _, r := range text {
		if err := m.eng.InsertAtCursor(string(r)); err != nil {
			L.RaiseError("type: %v", err)
			return 0
		}
	}
	return 0
}

// backspace()
func (m *bufferModule) backspace(L *lua.LState) int {
	if err := m.eng.Backspace(); err != nil {
		L.RaiseError("backspace: %v", err)
	}
	return 0
}

// cursor() -> offset, line, column
func (m *bufferModule) cursor(L *lua.LState) int {
	p := m.eng.CursorPoint()
	L.Push(lua.LNumber(m.eng.CursorOffset()))
	L.Push(lua.LNumber(p.Line + 1))
	L.Push(lua.LNumber(p.Column))
	return 3
}

// move(offset)
func (m *bufferModule) move(L *lua.LState) int {
	m.eng.SetCursor(L.CheckInt(1))
	return 0
}

// move_by(n)
func (m *bufferModule) moveBy(L *lua.LState) int {
	m.eng.MoveBy(L.CheckInt(1))
	return 0
}

// undo() -> bool
func (m *bufferModule) undo(L *lua.LState) int {
	L.Push(lua.LBool(m.history(L, m.eng.Undo())))
	return 1
}

// redo() -> bool
func (m *bufferModule) redo(L *lua.LState) int {
	L.Push(lua.LBool(m.history(L, m.eng.Redo())))
	return 1
}

func (m *bufferModule) history(L *lua.LState, err error) bool {
	switch {
	case err == nil:
		return true
	case errors.Is(err, engine.ErrNothingToUndo), errors.Is(err, engine.ErrNothingToRedo):
		return false
	}
	L.RaiseError("%v", err)
	return false
}

// group(fn)
// Runs fn with every edit it makes recorded as one undo step. The edits
// made before an error raised by fn stay recorded; the error propagates.
func (m *bufferModule) group(L *lua.LState) int {
	fn := L.CheckFunction(1)

	m.eng.BeginUndoGroup("script")
	L.Push(fn)
	err := L.PCall(0, 0, nil)
	m.eng.EndUndoGroup()
	if err != nil {
		L.RaiseError("%v", err)
	}
	return 0
}

func (m *bufferModule) checkRange(L *lua.LState, n int) (int, int) {
	start := L.CheckInt(n)
	end := L.CheckInt(n + 1)
	if start < 0 {
		L.ArgError(n, "start must be non-negative")
	}
	if end < start {
		L.ArgError(n+1, "end must be >= start")
	}
	return start, end
}
