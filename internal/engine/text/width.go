package text

import (
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

// Column returns the display column of offset within its line. Tabs
// advance to the next multiple of the tab width; wide characters count
// as two cells.
func (t *Text) Column(offset int) int {
	offset = t.clamp(offset)
	return t.width(t.LineStart(t.LineAt(offset)), offset)
}

// DisplayWidth returns the number of cells [start, end) occupies when
// drawn from column 0.
func (t *Text) DisplayWidth(start, end int) int {
	return t.width(t.clamp(start), t.clamp(end))
}

// OffsetAtColumn returns the offset of the last cluster in line that
// starts at or before display column col. Columns past the end of the line
// resolve to the line end.
func (t *Text) OffsetAtColumn(line, col int) int {
	start, end := t.LineStart(line), t.LineEnd(line)
	if start == end {
		return start
	}

	s := string(t.runes.Range(start, end))
	offset, cur, state := start, 0, -1
	for len(s) > 0 {
		cluster, rest, w, next := uniseg.FirstGraphemeClusterInString(s, state)
		c := advance(cur, cluster, w, t.tabWidth)
		if c > col {
			break
		}
		cur = c
		offset += utf8.RuneCountInString(cluster)
		s, state = rest, next
	}
	return offset
}

func (t *Text) width(start, end int) int {
	if start >= end {
		return 0
	}
	s := string(t.runes.Range(start, end))
	col, state := 0, -1
	for len(s) > 0 {
		var cluster string
		var w int
		cluster, s, w, state = uniseg.FirstGraphemeClusterInString(s, state)
		col = advance(col, cluster, w, t.tabWidth)
	}
	return col
}

// advance returns the column after drawing cluster at col.
func advance(col int, cluster string, w, tabWidth int) int {
	switch cluster {
	case "\t":
		return (col/tabWidth + 1) * tabWidth
	case "\n":
		return col
	}
	return col + w
}
