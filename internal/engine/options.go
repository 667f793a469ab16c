package engine

import (
	"time"

	"github.com/dshills/gapedit/internal/engine/history"
	"github.com/dshills/gapedit/internal/engine/text"
)

// Default configuration values.
const (
	DefaultTabWidth       = text.DefaultTabWidth
	DefaultMaxUndoEntries = history.DefaultMaxEntries
)

// Option configures an Engine during creation.
type Option func(*Engine)

// WithContent sets the initial content of the engine.
func WithContent(content string) Option {
	return func(e *Engine) {
		e.initContent = content
	}
}

// WithTabWidth sets the tab width for the engine.
func WithTabWidth(width int) Option {
	return func(e *Engine) {
		if width > 0 {
			e.textOpts = append(e.textOpts, text.WithTabWidth(width))
		}
	}
}

// WithLineEnding sets the line ending used when the content is written out.
func WithLineEnding(ending LineEnding) Option {
	return func(e *Engine) {
		e.textOpts = append(e.textOpts, text.WithLineEnding(ending))
	}
}

// WithTextOptions passes options through to the underlying text, such as
// normalization, the gap buffer's grow increment or its allocator.
func WithTextOptions(opts ...text.Option) Option {
	return func(e *Engine) {
		e.textOpts = append(e.textOpts, opts...)
	}
}

// WithMaxUndoEntries sets the maximum number of undo history entries.
func WithMaxUndoEntries(max int) Option {
	return func(e *Engine) {
		if max > 0 {
			e.maxUndoEntries = max
		}
	}
}

// WithCoalesceWindow sets how long consecutive typing keeps merging into
// one undo entry. Zero makes every keystroke its own entry.
func WithCoalesceWindow(d time.Duration) Option {
	return func(e *Engine) {
		e.coalesce = d
	}
}

// WithReadOnly creates a read-only engine.
// Write operations will return ErrReadOnly.
func WithReadOnly() Option {
	return func(e *Engine) {
		e.readOnly = true
	}
}
