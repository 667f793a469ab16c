package text

import (
	"fmt"
	"io"
	"iter"
	"slices"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/dshills/gapedit/internal/engine/gap"
)

// Text is an editable sequence of runes stored in a gap buffer, with a
// line index kept up to date on every edit. Offsets are rune indexes.
//
// Text is not safe for concurrent use; the engine serializes access.
type Text struct {
	runes *gap.Buffer[rune]
	lines []int // offset at which each line starts; lines[0] == 0

	revision   RevisionID
	lineEnding LineEnding
	tabWidth   int
	normalize  bool
	form       norm.Form

	alloc   gap.Allocator[rune]
	bufOpts []gap.Option
}

// New creates an empty text.
func New(opts ...Option) *Text {
	t := &Text{
		lines:      []int{0},
		revision:   NewRevisionID(),
		lineEnding: LineEndingLF,
		tabWidth:   DefaultTabWidth,
	}
	for _, opt := range opts {
		opt(t)
	}
	t.runes = gap.NewWithAllocator(t.alloc, t.bufOpts...)
	return t
}

// FromString creates a text with initial content. Line breaks are
// normalized to '\n'.
func FromString(s string, opts ...Option) *Text {
	t := New(opts...)
	rs := []rune(t.prepare(s))
	if len(rs) > 0 {
		t.runes.InsertSliceBefore(t.runes.Begin(), rs)
		t.lines = append(t.lines, scanLines(0, rs)...)
	}
	return t
}

// FromReader creates a text from an io.Reader.
func FromReader(r io.Reader, opts ...Option) (*Text, error) {
	// Read everything first: a CRLF pair may straddle two reads.
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return FromString(string(data), opts...), nil
}

// prepare applies line ending and Unicode normalization to input text.
func (t *Text) prepare(s string) string {
	s = toLF(s)
	if t.normalize {
		s = t.form.String(s)
	}
	return s
}

// scanLines returns the line starts introduced by rs inserted at base.
func scanLines(base int, rs []rune) []int {
	var starts []int
	for i, r := range rs {
		if r == '\n' {
			starts = append(starts, base+i+1)
		}
	}
	return starts
}

// Read operations

// Len returns the number of runes.
func (t *Text) Len() int {
	return t.runes.Len()
}

// IsEmpty returns true if the text is empty.
func (t *Text) IsEmpty() bool {
	return t.runes.IsEmpty()
}

// String returns the content with '\n' line breaks.
func (t *Text) String() string {
	var sb strings.Builder
	sb.Grow(t.runes.Len())
	left, right := t.runes.Segments()
	for _, r := range left {
		sb.WriteRune(r)
	}
	for _, r := range right {
		sb.WriteRune(r)
	}
	return sb.String()
}

// Slice returns the text in [start, end), clamped to the content.
func (t *Text) Slice(start, end int) string {
	start = t.clamp(start)
	end = t.clamp(end)
	if start >= end {
		return ""
	}
	return string(t.runes.Range(start, end))
}

// RuneAt returns the rune at offset.
func (t *Text) RuneAt(offset int) (rune, bool) {
	if offset < 0 || offset >= t.runes.Len() {
		return 0, false
	}
	return t.runes.At(offset), true
}

// Runes returns an iterator over all runes.
func (t *Text) Runes() iter.Seq[rune] {
	return t.runes.Values()
}

// Revision returns the current revision ID.
func (t *Text) Revision() RevisionID {
	return t.revision
}

// Gap reports the position and length of the underlying buffer's gap.
func (t *Text) Gap() (start, length int) {
	return t.runes.Gap()
}

// Cap returns the capacity of the underlying buffer in runes.
func (t *Text) Cap() int {
	return t.runes.Cap()
}

// LineEnding returns the line ending used when writing the text out.
func (t *Text) LineEnding() LineEnding {
	return t.lineEnding
}

// SetLineEnding sets the line ending used when writing the text out.
func (t *Text) SetLineEnding(le LineEnding) {
	t.lineEnding = le
}

// TabWidth returns the tab width.
func (t *Text) TabWidth() int {
	return t.tabWidth
}

// SetTabWidth sets the tab width. Non-positive widths are ignored.
func (t *Text) SetTabWidth(width int) {
	if width > 0 {
		t.tabWidth = width
	}
}

// Encoded returns the content with line breaks in the configured style.
func (t *Text) Encoded() string {
	return t.lineEnding.encode(t.String())
}

// WriteTo writes the encoded content to w.
func (t *Text) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, t.Encoded())
	return int64(n), err
}

// Write operations

// Insert inserts s at offset and returns the range it now occupies.
func (t *Text) Insert(offset int, s string) (Range, error) {
	if offset < 0 || offset > t.Len() {
		return Range{}, fmt.Errorf("%w: %d not in [0, %d]", ErrOffsetOutOfRange, offset, t.Len())
	}
	rs := []rune(t.prepare(s))
	t.replace(offset, offset, rs)
	return Range{Start: offset, End: offset + len(rs)}, nil
}

// Delete removes [start, end) and returns the removed text.
func (t *Text) Delete(start, end int) (string, error) {
	if err := t.checkRange(start, end); err != nil {
		return "", err
	}
	old := string(t.runes.Range(start, end))
	t.replace(start, end, nil)
	return old, nil
}

// Replace replaces [start, end) with s.
func (t *Text) Replace(start, end int, s string) (Change, error) {
	if err := t.checkRange(start, end); err != nil {
		return Change{}, err
	}
	newText := t.prepare(s)
	c := newChange(start, string(t.runes.Range(start, end)), newText)
	t.replace(start, end, []rune(newText))
	return c, nil
}

// Apply applies a single edit.
func (t *Text) Apply(e Edit) (Change, error) {
	return t.Replace(e.Range.Start, e.Range.End, e.NewText)
}

// ApplyEdits applies several edits as one step. Edits must be in reverse
// order (highest offset first) and must not overlap. Nothing is applied
// if any edit is invalid.
func (t *Text) ApplyEdits(edits []Edit) ([]Change, error) {
	for i := 1; i < len(edits); i++ {
		if edits[i].Range.End > edits[i-1].Range.Start {
			return nil, ErrEditsOverlap
		}
	}
	for _, e := range edits {
		if err := t.checkRange(e.Range.Start, e.Range.End); err != nil {
			return nil, err
		}
	}

	changes := make([]Change, 0, len(edits))
	for _, e := range edits {
		c, err := t.Apply(e)
		if err != nil {
			return changes, err
		}
		changes = append(changes, c)
	}
	return changes, nil
}

// ApplyChange replays a recorded change. The text must currently hold
// c.OldText at c.Range; c.NewText is inserted verbatim.
func (t *Text) ApplyChange(c Change) error {
	if err := t.checkRange(c.Range.Start, c.Range.End); err != nil {
		return err
	}
	if got := string(t.runes.Range(c.Range.Start, c.Range.End)); got != c.OldText {
		return fmt.Errorf("%w: %s holds %q, want %q", ErrChangeMismatch, c.Range, got, c.OldText)
	}
	t.replace(c.Range.Start, c.Range.End, []rune(c.NewText))
	return nil
}

// replace is the single mutation path. The inserted runes go after the
// element preceding start so the gap ends up after them, where the next
// keystroke will land.
func (t *Text) replace(start, end int, rs []rune) {
	if end > start {
		t.runes.Erase(t.runes.IteratorAt(start), t.runes.IteratorAt(end))
	}
	if len(rs) > 0 {
		if start == 0 {
			t.runes.InsertSliceBefore(t.runes.Begin(), rs)
		} else {
			t.runes.InsertSliceAfter(t.runes.IteratorAt(start-1), rs)
		}
	}
	t.updateLines(start, end, rs)
	t.revision = NewRevisionID()
}

// updateLines fixes the line index after [start, end) became rs.
// Line starts in (start, end] followed a removed '\n'.
func (t *Text) updateLines(start, end int, rs []rune) {
	delta := len(rs) - (end - start)
	lo, _ := slices.BinarySearch(t.lines, start+1)
	hi, _ := slices.BinarySearch(t.lines, end+1)
	added := scanLines(start, rs)

	if len(added) == 0 && lo == hi {
		for i := hi; i < len(t.lines); i++ {
			t.lines[i] += delta
		}
		return
	}

	lines := make([]int, 0, lo+len(added)+len(t.lines)-hi)
	lines = append(lines, t.lines[:lo]...)
	lines = append(lines, added...)
	for _, s := range t.lines[hi:] {
		lines = append(lines, s+delta)
	}
	t.lines = lines
}

func (t *Text) checkRange(start, end int) error {
	if start < 0 || start > end || end > t.Len() {
		return fmt.Errorf("%w: [%d:%d) in text of length %d", ErrRangeInvalid, start, end, t.Len())
	}
	return nil
}

func (t *Text) clamp(offset int) int {
	return max(0, min(offset, t.Len()))
}
