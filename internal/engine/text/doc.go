// Package text provides an editable text model on top of a rune gap buffer.
//
// A Text stores runes in a gap.Buffer and maintains a sorted index of line
// starts that is patched, not rebuilt, on every edit. All offsets are rune
// indexes, which keeps cursor arithmetic independent of UTF-8 encoding.
//
//	t := text.FromString("Hello World")
//	t.Insert(5, ",")      // "Hello, World"
//	t.Delete(0, 7)        // "World"
//	c, _ := t.Replace(0, 5, "Gap")
//	t.ApplyChange(c.Invert()) // "World"
//
// Edits are applied so the buffer's gap ends up after the inserted text.
// Typing at the cursor therefore never moves the gap.
//
// Line breaks are stored as '\n'. Input in CRLF or CR form is converted on
// the way in, and the configured LineEnding is applied by Encoded and
// WriteTo. With WithNormalization, inserted text is also brought into a
// Unicode normalization form.
//
// Cursor movement and display columns work on grapheme clusters, so a
// flag emoji or a letter with combining marks counts as one step and its
// rendered width.
package text
