package text

import (
	"io"
	"slices"

	"github.com/dshills/gapedit/internal/engine/gap"
)

// Snapshot is a read-only copy of a Text at one revision. It is safe to
// read from other goroutines while the Text keeps changing.
type Snapshot struct {
	runes      *gap.Buffer[rune]
	lines      []int
	revision   RevisionID
	lineEnding LineEnding
}

// Snapshot copies the current content.
func (t *Text) Snapshot() *Snapshot {
	return &Snapshot{
		runes:      t.runes.Clone(),
		lines:      slices.Clone(t.lines),
		revision:   t.revision,
		lineEnding: t.lineEnding,
	}
}

// Len returns the number of runes.
func (s *Snapshot) Len() int {
	return s.runes.Len()
}

// LineCount returns the number of lines.
func (s *Snapshot) LineCount() int {
	return len(s.lines)
}

// Revision returns the revision the snapshot was taken at.
func (s *Snapshot) Revision() RevisionID {
	return s.revision
}

// String returns the content with '\n' line breaks.
func (s *Snapshot) String() string {
	return string(s.runes.Slice())
}

// WriteTo writes the content with the text's line ending to w.
func (s *Snapshot) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, s.lineEnding.encode(s.String()))
	return int64(n), err
}
