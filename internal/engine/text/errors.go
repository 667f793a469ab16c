package text

import "errors"

// Errors returned by text operations.
var (
	ErrOffsetOutOfRange = errors.New("offset out of range")
	ErrRangeInvalid     = errors.New("invalid range")
	ErrEditsOverlap     = errors.New("edits overlap or are not in reverse order")
	ErrChangeMismatch   = errors.New("change does not match text")
)
