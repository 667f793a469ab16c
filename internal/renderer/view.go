package renderer

import (
	"fmt"
	"strconv"
	"sync"

	"github.com/dshills/gapedit/internal/engine"
	"github.com/dshills/gapedit/internal/renderer/backend"
	"github.com/dshills/gapedit/internal/renderer/core"
	"github.com/dshills/gapedit/internal/renderer/viewport"
)

// Options configures a View.
type Options struct {
	ShowLineNumbers bool
	ShowGapStats    bool
	ScrollMarginV   int
	ScrollMarginH   int

	TextStyle   core.Style
	GutterStyle core.Style
	StatusStyle core.Style
	FillerStyle core.Style
}

// DefaultOptions returns default view options.
func DefaultOptions() Options {
	return Options{
		ShowLineNumbers: true,
		ShowGapStats:    true,
		ScrollMarginV:   2,
		ScrollMarginH:   4,
		TextStyle:       core.DefaultStyle(),
		GutterStyle:     core.DefaultStyle().WithForeground(core.ColorGray),
		StatusStyle:     core.DefaultStyle().With(core.AttrReverse),
		FillerStyle:     core.DefaultStyle().WithForeground(core.ColorBlue),
	}
}

// View renders an engine onto a backend. The last screen row holds the
// status line.
type View struct {
	mu sync.Mutex

	backend backend.Backend
	eng     *engine.Engine
	vp      *viewport.Viewport
	opts    Options

	// Status line state
	name     string
	modified bool
	message  string
}

// NewView creates a view of e drawn on b.
func NewView(b backend.Backend, e *engine.Engine, opts Options) *View {
	w, h := b.Size()
	vp := viewport.NewViewport(w, h-1)
	vp.SetMargins(opts.ScrollMarginV, opts.ScrollMarginH)
	return &View{backend: b, eng: e, vp: vp, opts: opts}
}

// SetName sets the name shown in the status line.
func (v *View) SetName(name string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.name = name
}

// SetModified sets the modified marker in the status line.
func (v *View) SetModified(modified bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.modified = modified
}

// SetMessage shows msg in the status line until the next call.
func (v *View) SetMessage(msg string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.message = msg
}

// ScrollBy scrolls the text without moving the cursor. The next Render
// scrolls back if the cursor left the screen.
func (v *View) ScrollBy(lines int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.vp.SetLineCount(v.eng.LineCount())
	v.vp.ScrollBy(lines)
}

// PageSize returns the number of text rows.
func (v *View) PageSize() int {
	_, h := v.backend.Size()
	return max(h-1, 1)
}

// TopLine returns the first visible line.
func (v *View) TopLine() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.vp.TopLine()
}

// Render draws the visible text, the status line and the cursor, and
// flushes them to the backend.
func (v *View) Render() {
	v.mu.Lock()
	defer v.mu.Unlock()

	width, height := v.backend.Size()
	if width <= 0 || height <= 0 {
		return
	}
	lineCount := v.eng.LineCount()
	tabWidth := v.eng.TabWidth()
	gutter := v.gutterWidth(lineCount)

	v.vp.Resize(width-gutter, height-1)
	v.vp.SetLineCount(lineCount)

	cur := v.eng.CursorPoint()
	curCol := layoutWidth(v.eng.LineRunes(cur.Line)[:cur.Column], tabWidth)
	v.vp.ScrollToReveal(cur.Line, curCol)

	v.backend.Clear()
	start, end := v.vp.VisibleLineRange()
	for line := start; line < end; line++ {
		row := line - start
		v.drawGutter(row, line, gutter)
		v.drawLine(row, gutter, v.eng.LineRunes(line), tabWidth)
	}
	for row := end - start; row < height-1; row++ {
		v.backend.SetCell(0, row, core.NewStyledCell('~', v.opts.FillerStyle))
	}
	v.drawStatus(height-1, width, cur)

	if row, x, ok := v.vp.ToScreen(cur.Line, curCol); ok {
		v.backend.ShowCursor(gutter+x, row)
	} else {
		v.backend.HideCursor()
	}
	v.backend.Show()
}

func (v *View) gutterWidth(lineCount int) int {
	if !v.opts.ShowLineNumbers {
		return 0
	}
	return len(strconv.Itoa(lineCount)) + 1
}

func (v *View) drawGutter(row, line, gutter int) {
	if gutter == 0 {
		return
	}
	num := strconv.Itoa(line + 1)
	x := gutter - 1 - len(num)
	for _, r := range num {
		v.backend.SetCell(x, row, core.NewStyledCell(r, v.opts.GutterStyle))
		x++
	}
}

// drawLine draws the part of rs that falls inside the viewport's columns.
func (v *View) drawLine(row, gutter int, rs []rune, tabWidth int) {
	left, right := v.vp.LeftColumn(), v.vp.LeftColumn()+v.vp.Width()
	style := v.opts.TextStyle
	col := 0
	for _, r := range rs {
		if col >= right {
			return
		}
		if r == '\t' {
			next := nextTabStop(col, tabWidth)
			for ; col < next; col++ {
				if col >= left && col < right {
					v.backend.SetCell(gutter+col-left, row, core.NewStyledCell(' ', style))
				}
			}
			continue
		}

		w := core.RuneWidth(r)
		if w == 0 {
			continue
		}
		switch {
		case col >= left && col+w <= right:
			v.backend.SetCell(gutter+col-left, row, core.NewStyledCell(r, style))
			for i := 1; i < w; i++ {
				v.backend.SetCell(gutter+col-left+i, row, core.ContinuationCell(style))
			}
		case col+w > left && col < right:
			// Wide rune cut by an edge
			for i := max(col, left); i < min(col+w, right); i++ {
				v.backend.SetCell(gutter+i-left, row, core.NewStyledCell(' ', style))
			}
		}
		col += w
	}
}

func (v *View) drawStatus(row, width int, cur engine.Point) {
	style := v.opts.StatusStyle
	v.backend.Fill(core.NewScreenRect(row, 0, row+1, width), core.NewStyledCell(' ', style))

	name := v.name
	if name == "" {
		name = "[scratch]"
	}
	if v.modified {
		name += " [+]"
	}
	left := " " + name
	if v.message != "" {
		left += "  " + v.message
	}

	right := fmt.Sprintf("%d:%d  %d runes ", cur.Line+1, cur.Column+1, v.eng.Len())
	if v.opts.ShowGapStats {
		st := v.eng.Stats()
		right = fmt.Sprintf("gap %d+%d  ", st.GapStart, st.GapLen) + right
	}

	v.drawText(0, row, width, left, style)
	if rw := stringWidth(right); rw < width-stringWidth(left) {
		v.drawText(width-rw, row, width, right, style)
	}
}

// drawText draws s from column x, stopping at limit.
func (v *View) drawText(x, row, limit int, s string, style core.Style) {
	for _, r := range s {
		w := core.RuneWidth(r)
		if x+w > limit {
			return
		}
		v.backend.SetCell(x, row, core.NewStyledCell(r, style))
		x += w
	}
}

func nextTabStop(col, tabWidth int) int {
	if tabWidth <= 0 {
		return col + 1
	}
	return (col/tabWidth + 1) * tabWidth
}

// layoutWidth returns the number of cells rs occupies from column 0.
func layoutWidth(rs []rune, tabWidth int) int {
	col := 0
	for _, r := range rs {
		if r == '\t' {
			col = nextTabStop(col, tabWidth)
			continue
		}
		col += core.RuneWidth(r)
	}
	return col
}

func stringWidth(s string) int {
	return layoutWidth([]rune(s), 0)
}
