package gap

import (
	"errors"
	"fmt"
	"math"
	"reflect"
)

// phys maps a logical index to a storage index.
func (b *Buffer[T]) phys(i int) int {
	if i < b.gapStart {
		return i
	}
	return i + b.gapLen
}

func (b *Buffer[T]) increment() int {
	if b.growBy <= 0 {
		return DefaultGrowIncrement
	}
	return b.growBy
}

func (b *Buffer[T]) allocator() Allocator[T] {
	if b.alloc == nil {
		return HeapAllocator[T]{}
	}
	return b.alloc
}

// moveGap relocates the gap so that it starts at logical index target.
// Only the elements between the old and the new position are moved.
func (b *Buffer[T]) moveGap(target int) {
	switch {
	case target < b.gapStart:
		// LLL...RRR
		// LL...LRRR
		copy(b.storage[target+b.gapLen:b.gapStart+b.gapLen], b.storage[target:b.gapStart])
		clear(b.storage[target:min(b.gapStart, target+b.gapLen)])

	case target > b.gapStart:
		// LLL...RRR
		// LLLR...RR
		copy(b.storage[b.gapStart:target], b.storage[b.gapStart+b.gapLen:target+b.gapLen])
		clear(b.storage[max(target, b.gapStart+b.gapLen) : target+b.gapLen])

	default:
		return
	}

	b.gapStart = target
	b.stamp.bump()
}

// growFor makes room for n more elements. The gap keeps its position.
func (b *Buffer[T]) growFor(n int) {
	if n <= b.gapLen {
		return
	}
	if b.size > math.MaxInt-n-b.increment()-growAlign {
		panic(fmt.Errorf("%w: cannot grow %d by %d", ErrTooLarge, b.size, n))
	}
	if err := b.Reserve(alignUp(b.size + n + b.increment())); err != nil {
		panic(err)
	}
}

// Reserve ensures Cap() >= n. When it has to reallocate, the existing
// elements keep their split around the gap and the new capacity is added to
// the end of the gap. On failure the buffer is left untouched.
func (b *Buffer[T]) Reserve(n int) error {
	if n <= b.Cap() {
		return nil
	}

	storage, err := b.allocate(n)
	if err != nil {
		return err
	}

	right := b.size - b.gapStart
	copy(storage, b.storage[:b.gapStart])
	copy(storage[len(storage)-right:], b.storage[b.gapStart+b.gapLen:])

	b.release()
	b.storage = storage
	b.gapLen = len(storage) - b.size
	b.stamp.bump()
	return nil
}

// allocate obtains at least n zeroed slots, converting allocation panics
// into ErrTooLarge.
func (b *Buffer[T]) allocate(n int) (s []T, err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok && errors.Is(e, ErrTooLarge) {
				err = e
				return
			}
			s, err = nil, fmt.Errorf("%w: allocating %d elements: %v", ErrTooLarge, n, r)
		}
	}()

	s = b.allocator().Allocate(n)
	if len(s) < n {
		b.allocator().Deallocate(s)
		return nil, fmt.Errorf("%w: got %d, want %d", ErrShortAllocation, len(s), n)
	}
	return s, nil
}

func (b *Buffer[T]) mustAllocate(n int) []T {
	s, err := b.allocate(n)
	if err != nil {
		panic(err)
	}
	return s
}

// release hands the storage back to the allocator. Only the storage slice
// is dropped; size and gap bookkeeping is left to the caller.
func (b *Buffer[T]) release() {
	if b.storage == nil {
		return
	}
	old := b.storage
	b.storage = nil
	b.gapLen = 0
	b.allocator().Deallocate(old)
}

func alignUp(n int) int {
	return (n + growAlign - 1) &^ (growAlign - 1)
}

// validate reports the first broken invariant, if any.
func (b *Buffer[T]) validate() error {
	if b.storage == nil {
		if b.size != 0 || b.gapStart != 0 || b.gapLen != 0 {
			return fmt.Errorf("unallocated buffer with size=%d gapStart=%d gapLen=%d", b.size, b.gapStart, b.gapLen)
		}
		return nil
	}
	if b.gapStart < 0 || b.gapStart > b.size {
		return fmt.Errorf("gapStart %d outside [0, %d]", b.gapStart, b.size)
	}
	if b.gapLen < 0 {
		return fmt.Errorf("negative gap length %d", b.gapLen)
	}
	if b.size+b.gapLen != len(b.storage) {
		return fmt.Errorf("size %d + gap %d != capacity %d", b.size, b.gapLen, len(b.storage))
	}
	for i, v := range b.storage[b.gapStart : b.gapStart+b.gapLen] {
		if !isZero(v) {
			return fmt.Errorf("gap slot %d holds a value", b.gapStart+i)
		}
	}
	return nil
}

func isZero[T any](v T) bool {
	return reflect.ValueOf(&v).Elem().IsZero()
}
