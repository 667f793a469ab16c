package gap

import "errors"

// Errors returned by buffer operations.
var (
	// ErrTooLarge is returned by Reserve when the requested capacity cannot
	// be allocated. Insert operations that need to grow panic with it.
	ErrTooLarge = errors.New("gap: buffer too large")

	// ErrIndexOutOfRange is returned by the checked accessors.
	ErrIndexOutOfRange = errors.New("gap: index out of range")

	// ErrShortAllocation indicates an Allocator returned fewer slots than requested.
	ErrShortAllocation = errors.New("gap: allocator returned short slice")
)
