package text

import (
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

// graphemeWindow bounds how many runes are examined around an offset when
// looking for a cluster boundary. Longer clusters are split.
const graphemeWindow = 32

// NextGrapheme returns the offset of the grapheme cluster boundary after
// offset, or Len() at the end of the text.
func (t *Text) NextGrapheme(offset int) int {
	offset = t.clamp(offset)
	if offset == t.Len() {
		return offset
	}
	s := string(t.runes.Range(offset, min(t.Len(), offset+graphemeWindow)))
	cluster, _, _, _ := uniseg.FirstGraphemeClusterInString(s, -1)
	return offset + max(1, utf8.RuneCountInString(cluster))
}

// PrevGrapheme returns the offset of the grapheme cluster boundary before
// offset, or 0 at the start of the text.
func (t *Text) PrevGrapheme(offset int) int {
	offset = t.clamp(offset)
	if offset == 0 {
		return 0
	}

	// A line break always ends a cluster, so scanning can start at the
	// beginning of the line.
	from := max(t.LineStart(t.LineAt(offset-1)), offset-graphemeWindow)
	s := string(t.runes.Range(from, offset))

	prev, pos, state := from, from, -1
	for len(s) > 0 {
		var cluster string
		cluster, s, _, state = uniseg.FirstGraphemeClusterInString(s, state)
		prev = pos
		pos += utf8.RuneCountInString(cluster)
	}
	return prev
}

// GraphemeCount returns the number of user-perceived characters in
// [start, end).
func (t *Text) GraphemeCount(start, end int) int {
	return uniseg.GraphemeClusterCount(t.Slice(start, end))
}
