package gap

import (
	"fmt"
	"iter"
)

// Buffer is a sequence container that keeps its spare capacity in a single
// movable gap. Inserting or erasing next to the gap costs O(1); moving the
// gap costs O(distance moved).
//
// The zero Buffer is empty, unallocated and ready to use. A Buffer is not
// safe for concurrent use.
type Buffer[T any] struct {
	storage  []T
	size     int
	gapStart int
	gapLen   int

	growBy int
	alloc  Allocator[T]

	stamp generation
}

// New creates an empty buffer.
// It panics with ErrTooLarge if WithCapacity asks for more than can be allocated.
func New[T any](opts ...Option) *Buffer[T] {
	return NewWithAllocator[T](nil, opts...)
}

// NewWithAllocator creates an empty buffer that obtains storage from a.
// A nil allocator selects HeapAllocator.
func NewWithAllocator[T any](a Allocator[T], opts ...Option) *Buffer[T] {
	o := collectOptions(opts)
	b := &Buffer[T]{growBy: o.growBy, alloc: a}
	if o.capacity > 0 {
		if err := b.Reserve(o.capacity); err != nil {
			panic(err)
		}
	}
	return b
}

// Of creates a buffer holding values, with the gap after the last element.
func Of[T any](values ...T) *Buffer[T] {
	return FromSlice(values)
}

// FromSlice creates a buffer holding a copy of s.
func FromSlice[T any](s []T, opts ...Option) *Buffer[T] {
	b := New[T](opts...)
	if len(s) == 0 {
		return b
	}
	b.storage = b.mustAllocate(len(s) + b.increment())
	copy(b.storage, s)
	b.size = len(s)
	b.gapStart = len(s)
	b.gapLen = len(b.storage) - len(s)
	return b
}

// FromSeq creates a buffer holding the values produced by seq, in order.
func FromSeq[T any](seq iter.Seq[T], opts ...Option) *Buffer[T] {
	b := New[T](opts...)
	for v := range seq {
		b.PushBack(v)
	}
	return b
}

// Len returns the number of elements.
func (b *Buffer[T]) Len() int {
	return b.size
}

// Cap returns Len plus the number of free slots in the gap.
func (b *Buffer[T]) Cap() int {
	return b.size + b.gapLen
}

// IsEmpty returns true if the buffer holds no elements.
func (b *Buffer[T]) IsEmpty() bool {
	return b.size == 0
}

// Gap reports the logical position and length of the gap.
// Intended for diagnostics and tests; callers must not rely on it.
func (b *Buffer[T]) Gap() (start, length int) {
	return b.gapStart, b.gapLen
}

// At returns the element at logical index i.
// The caller guarantees 0 <= i < Len().
func (b *Buffer[T]) At(i int) T {
	if debugChecks && (i < 0 || i >= b.size) {
		failf("At(%d) out of range [0, %d)", i, b.size)
	}
	return b.storage[b.phys(i)]
}

// Ref returns a pointer to the element at logical index i. The pointer is
// valid until the next call that mutates the buffer.
// The caller guarantees 0 <= i < Len().
func (b *Buffer[T]) Ref(i int) *T {
	if debugChecks && (i < 0 || i >= b.size) {
		failf("Ref(%d) out of range [0, %d)", i, b.size)
	}
	return &b.storage[b.phys(i)]
}

// Set replaces the element at logical index i.
// The caller guarantees 0 <= i < Len().
func (b *Buffer[T]) Set(i int, v T) {
	if debugChecks && (i < 0 || i >= b.size) {
		failf("Set(%d) out of range [0, %d)", i, b.size)
	}
	b.storage[b.phys(i)] = v
}

// Get is the checked form of At.
func (b *Buffer[T]) Get(i int) (T, error) {
	if i < 0 || i >= b.size {
		var zero T
		return zero, fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfRange, i, b.size)
	}
	return b.storage[b.phys(i)], nil
}

// Front returns the first element. The buffer must not be empty.
func (b *Buffer[T]) Front() T {
	if debugChecks && b.size == 0 {
		failf("Front on empty buffer")
	}
	return b.At(0)
}

// Back returns the last element. The buffer must not be empty.
func (b *Buffer[T]) Back() T {
	if debugChecks && b.size == 0 {
		failf("Back on empty buffer")
	}
	return b.At(b.size - 1)
}

// Begin returns an iterator at the first element.
func (b *Buffer[T]) Begin() Iterator[T] {
	return b.iteratorAt(0)
}

// End returns an iterator one past the last element.
func (b *Buffer[T]) End() Iterator[T] {
	return b.iteratorAt(b.size)
}

// CBegin returns a read-only iterator at the first element.
func (b *Buffer[T]) CBegin() ConstIterator[T] {
	return b.iteratorAt(0).Const()
}

// CEnd returns a read-only iterator one past the last element.
func (b *Buffer[T]) CEnd() ConstIterator[T] {
	return b.iteratorAt(b.size).Const()
}

// IteratorAt returns an iterator at logical index i, 0 <= i <= Len().
func (b *Buffer[T]) IteratorAt(i int) Iterator[T] {
	if debugChecks && (i < 0 || i > b.size) {
		failf("IteratorAt(%d) out of range [0, %d]", i, b.size)
	}
	return b.iteratorAt(i)
}

func (b *Buffer[T]) iteratorAt(i int) Iterator[T] {
	return Iterator[T]{c: cursor[T]{buf: b, pos: i, stamp: b.stamp}}
}

// Clone returns a deep copy of b with a freshly sized allocation
// (Len plus the grow increment) from the same allocator.
func (b *Buffer[T]) Clone() *Buffer[T] {
	c := &Buffer[T]{growBy: b.growBy, alloc: b.alloc}
	if b.storage == nil {
		return c
	}
	c.storage = c.mustAllocate(b.size + c.increment())
	c.adoptCopy(b)
	return c
}

// CopyFrom replaces the contents of b with a copy of src's elements.
// Existing capacity is reused when it can hold src; otherwise b reallocates.
// Copying a buffer onto itself is a no-op.
func (b *Buffer[T]) CopyFrom(src *Buffer[T]) {
	if b == src {
		return
	}

	b.Clear()
	if b.Cap() < src.size {
		b.release()
		b.storage = b.mustAllocate(src.size + b.increment())
	}
	b.adoptCopy(src)
	b.stamp.bump()
}

// MoveFrom transfers src's elements into b and leaves src empty.
//
// When both buffers use the same allocator the storage itself changes owner
// and src ends up unallocated. Otherwise the elements are moved into b's own
// storage (reused if large enough) and src keeps its now empty capacity.
// Moving a buffer onto itself is a no-op.
func (b *Buffer[T]) MoveFrom(src *Buffer[T]) {
	if b == src {
		return
	}

	b.Clear()
	switch {
	case b.allocator() == src.allocator():
		b.release()
		b.storage = src.storage
		b.size = src.size
		b.gapStart = src.gapStart
		b.gapLen = src.gapLen

		src.storage = nil
		src.size = 0
		src.gapStart = 0
		src.gapLen = 0

	case b.Cap() >= src.size:
		b.adoptCopy(src)
		src.Clear()

	default:
		b.release()
		b.storage = b.mustAllocate(src.size + b.increment())
		b.adoptCopy(src)
		src.Clear()
	}

	b.stamp.bump()
	src.stamp.bump()
}

// Take returns a new buffer owning b's storage and leaves b unallocated.
func (b *Buffer[T]) Take() *Buffer[T] {
	nb := &Buffer[T]{growBy: b.growBy, alloc: b.alloc}
	nb.MoveFrom(b)
	return nb
}

// adoptCopy copies src's elements into b.storage, keeping src's split
// around the gap. b must be empty with Cap() >= src.Len().
func (b *Buffer[T]) adoptCopy(src *Buffer[T]) {
	left := src.gapStart
	right := src.size - left

	copy(b.storage, src.storage[:left])
	copy(b.storage[len(b.storage)-right:], src.storage[src.gapStart+src.gapLen:])

	b.size = src.size
	b.gapStart = left
	b.gapLen = len(b.storage) - src.size
}

// String formats the elements in logical order.
func (b *Buffer[T]) String() string {
	return fmt.Sprint(b.Slice())
}
