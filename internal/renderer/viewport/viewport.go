// Package viewport tracks which lines and display columns of the text are
// on screen.
package viewport

// Viewport represents the visible portion of the text.
// Lines and columns are zero-based; columns are display cells.
type Viewport struct {
	// Position in text (first visible line and column)
	topLine    int
	leftColumn int

	// Size in screen cells
	width  int
	height int

	// Scroll margins (keep cursor this far from edges)
	marginV int
	marginH int

	lineCount int
}

// NewViewport creates a viewport with the given size.
// Width and height are clamped to a minimum of 1.
func NewViewport(width, height int) *Viewport {
	v := &Viewport{marginV: 2, marginH: 4}
	v.Resize(width, height)
	return v
}

// Width returns the viewport width.
func (v *Viewport) Width() int { return v.width }

// Height returns the viewport height.
func (v *Viewport) Height() int { return v.height }

// TopLine returns the first visible line.
func (v *Viewport) TopLine() int { return v.topLine }

// LeftColumn returns the first visible column.
func (v *Viewport) LeftColumn() int { return v.leftColumn }

// Resize updates the viewport size.
func (v *Viewport) Resize(width, height int) {
	v.width = max(width, 1)
	v.height = max(height, 1)
}

// SetMargins sets how many lines and columns of context ScrollToReveal
// keeps around the target. Margins never exceed half the viewport.
func (v *Viewport) SetMargins(vertical, horizontal int) {
	v.marginV = max(vertical, 0)
	v.marginH = max(horizontal, 0)
}

// SetLineCount sets the number of lines in the text.
func (v *Viewport) SetLineCount(n int) {
	v.lineCount = n
	v.clamp()
}

// VisibleLineRange returns the first visible line and one past the last.
func (v *Viewport) VisibleLineRange() (start, end int) {
	end = v.topLine + v.height
	if v.lineCount > 0 {
		end = min(end, v.lineCount)
	}
	return v.topLine, end
}

// ToScreen converts a line and display column to a screen row and column
// relative to the viewport. ok is false when the position is not visible.
func (v *Viewport) ToScreen(line, col int) (row, x int, ok bool) {
	row, x = line-v.topLine, col-v.leftColumn
	ok = row >= 0 && row < v.height && x >= 0 && x < v.width
	return row, x, ok
}

// ScrollBy scrolls vertically by delta lines.
func (v *Viewport) ScrollBy(delta int) {
	v.topLine += delta
	v.clamp()
}

// ScrollToReveal scrolls minimally so that (line, col) is visible with the
// configured margins. Returns true if scrolling occurred.
func (v *Viewport) ScrollToReveal(line, col int) bool {
	top, left := v.topLine, v.leftColumn
	mv := min(v.marginV, (v.height-1)/2)
	mh := min(v.marginH, (v.width-1)/2)

	switch {
	case line < v.topLine+mv:
		v.topLine = line - mv
	case line > v.topLine+v.height-1-mv:
		v.topLine = line - v.height + 1 + mv
	}
	switch {
	case col < v.leftColumn+mh:
		v.leftColumn = col - mh
	case col > v.leftColumn+v.width-1-mh:
		v.leftColumn = col - v.width + 1 + mh
	}
	v.clamp()
	return top != v.topLine || left != v.leftColumn
}

func (v *Viewport) clamp() {
	if v.lineCount > 0 {
		v.topLine = min(v.topLine, max(v.lineCount-v.height, 0))
	}
	v.topLine = max(v.topLine, 0)
	v.leftColumn = max(v.leftColumn, 0)
}
