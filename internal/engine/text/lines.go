package text

import (
	"iter"
	"slices"
)

// LineCount returns the number of lines. An empty text has one line, and
// a trailing '\n' starts a new, empty line.
func (t *Text) LineCount() int {
	return len(t.lines)
}

// LineStart returns the offset of the first rune of line.
// Lines outside the text are clamped.
func (t *Text) LineStart(line int) int {
	return t.lines[t.clampLine(line)]
}

// LineEnd returns the offset just before the line's '\n', or the end of
// the text for the last line.
func (t *Text) LineEnd(line int) int {
	line = t.clampLine(line)
	if line+1 < len(t.lines) {
		return t.lines[line+1] - 1
	}
	return t.Len()
}

// LineLen returns the number of runes in line, excluding its line break.
func (t *Text) LineLen(line int) int {
	return t.LineEnd(line) - t.LineStart(line)
}

// LineText returns the text of line without its line break.
func (t *Text) LineText(line int) string {
	return t.Slice(t.LineStart(line), t.LineEnd(line))
}

// LineRunes returns a copy of the runes of line without its line break.
func (t *Text) LineRunes(line int) []rune {
	start, end := t.LineStart(line), t.LineEnd(line)
	if start >= end {
		return nil
	}
	return t.runes.Range(start, end)
}

// Lines returns an iterator over line numbers and their text.
func (t *Text) Lines() iter.Seq2[int, string] {
	return func(yield func(int, string) bool) {
		for i := range t.lines {
			if !yield(i, t.LineText(i)) {
				return
			}
		}
	}
}

// LineAt returns the line containing offset.
func (t *Text) LineAt(offset int) int {
	offset = t.clamp(offset)
	i, found := slices.BinarySearch(t.lines, offset)
	if !found {
		i--
	}
	return i
}

// OffsetToPoint converts an offset to line and column.
func (t *Text) OffsetToPoint(offset int) Point {
	offset = t.clamp(offset)
	line := t.LineAt(offset)
	return Point{Line: line, Column: offset - t.lines[line]}
}

// PointToOffset converts line and column to an offset. Columns past the
// end of the line resolve to the line end.
func (t *Text) PointToOffset(p Point) int {
	start := t.LineStart(p.Line)
	end := t.LineEnd(p.Line)
	return start + max(0, min(p.Column, end-start))
}

func (t *Text) clampLine(line int) int {
	return max(0, min(line, len(t.lines)-1))
}
