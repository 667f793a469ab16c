package text

import (
	"fmt"
	"unicode/utf8"
)

// Edit replaces Range with NewText.
type Edit struct {
	Range   Range
	NewText string
}

// NewInsert creates an Edit that inserts text at offset.
func NewInsert(offset int, text string) Edit {
	return Edit{Range: Range{Start: offset, End: offset}, NewText: text}
}

// NewDelete creates an Edit that deletes [start, end).
func NewDelete(start, end int) Edit {
	return Edit{Range: Range{Start: start, End: end}}
}

// String returns a human-readable representation of the edit.
func (e Edit) String() string {
	if e.Range.IsEmpty() {
		return fmt.Sprintf("Insert(%d, %q)", e.Range.Start, e.NewText)
	}
	if e.NewText == "" {
		return fmt.Sprintf("Delete%s", e.Range.String())
	}
	return fmt.Sprintf("Replace%s with %q", e.Range.String(), e.NewText)
}

// IsNoOp returns true if this edit does nothing.
func (e Edit) IsNoOp() bool {
	return e.Range.IsEmpty() && e.NewText == ""
}

// ChangeType categorizes a change.
type ChangeType uint8

const (
	ChangeInsert  ChangeType = iota // Text was inserted
	ChangeDelete                    // Text was deleted
	ChangeReplace                   // Text was replaced
)

// String returns a string representation of the change type.
func (c ChangeType) String() string {
	switch c {
	case ChangeInsert:
		return "insert"
	case ChangeDelete:
		return "delete"
	case ChangeReplace:
		return "replace"
	default:
		return "unknown"
	}
}

// Change records an applied edit with enough information to revert it.
// OldText and NewText are stored exactly as they appear in the text, after
// line ending and Unicode normalization.
type Change struct {
	Type     ChangeType
	Range    Range // Range the old text occupied
	NewRange Range // Range the new text occupies
	OldText  string
	NewText  string
}

func newChange(start int, oldText, newText string) Change {
	c := Change{
		Range:    Range{Start: start, End: start + utf8.RuneCountInString(oldText)},
		NewRange: Range{Start: start, End: start + utf8.RuneCountInString(newText)},
		OldText:  oldText,
		NewText:  newText,
	}
	switch {
	case oldText == "":
		c.Type = ChangeInsert
	case newText == "":
		c.Type = ChangeDelete
	default:
		c.Type = ChangeReplace
	}
	return c
}

// Invert returns the change that undoes c.
func (c Change) Invert() Change {
	inv := Change{
		Range:    c.NewRange,
		NewRange: c.Range,
		OldText:  c.NewText,
		NewText:  c.OldText,
	}
	switch c.Type {
	case ChangeInsert:
		inv.Type = ChangeDelete
	case ChangeDelete:
		inv.Type = ChangeInsert
	default:
		inv.Type = c.Type
	}
	return inv
}

// ToEdit converts a Change to an Edit for reapplication.
func (c Change) ToEdit() Edit {
	return Edit{Range: c.Range, NewText: c.NewText}
}

// Delta returns the change in text length, in runes.
func (c Change) Delta() int {
	return c.NewRange.Len() - c.Range.Len()
}
