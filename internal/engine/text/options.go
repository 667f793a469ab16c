package text

import (
	"golang.org/x/text/unicode/norm"

	"github.com/dshills/gapedit/internal/engine/gap"
)

// DefaultTabWidth is the tab width used when none is configured.
const DefaultTabWidth = 4

// Option configures a Text.
type Option func(*Text)

// WithLineEnding sets the line ending used when the text is written out.
func WithLineEnding(le LineEnding) Option {
	return func(t *Text) {
		t.lineEnding = le
	}
}

// WithDetectedLineEnding sets the line ending based on content.
func WithDetectedLineEnding(s string) Option {
	return WithLineEnding(DetectLineEnding(s))
}

// WithTabWidth sets the tab width used for display columns.
func WithTabWidth(width int) Option {
	return func(t *Text) {
		if width > 0 {
			t.tabWidth = width
		}
	}
}

// WithNormalization normalizes all inserted text to form.
func WithNormalization(form norm.Form) Option {
	return func(t *Text) {
		t.normalize = true
		t.form = form
	}
}

// WithGrowIncrement sets the grow increment of the underlying gap buffer.
func WithGrowIncrement(n int) Option {
	return func(t *Text) {
		t.bufOpts = append(t.bufOpts, gap.WithGrowIncrement(n))
	}
}

// WithAllocator makes the text obtain its storage from a.
func WithAllocator(a gap.Allocator[rune]) Option {
	return func(t *Text) {
		t.alloc = a
	}
}
