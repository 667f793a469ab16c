package gap

import "iter"

// All returns an iterator over index/value pairs in logical order.
// The buffer must not be modified during iteration.
func (b *Buffer[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		left, right := b.Segments()
		for i, v := range left {
			if !yield(i, v) {
				return
			}
		}
		for i, v := range right {
			if !yield(len(left)+i, v) {
				return
			}
		}
	}
}

// Values returns an iterator over the elements in logical order.
func (b *Buffer[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, v := range b.All() {
			if !yield(v) {
				return
			}
		}
	}
}

// Backward returns an iterator over index/value pairs from last to first.
func (b *Buffer[T]) Backward() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := b.size - 1; i >= 0; i-- {
			if !yield(i, b.storage[b.phys(i)]) {
				return
			}
		}
	}
}

// Span returns the values in [first, last), which must come from the same
// buffer. It adapts an iterator pair to the range insert operations.
func Span[T any](first, last ConstIterator[T]) iter.Seq[T] {
	first.c.checkPair(last.c, "Span")
	return func(yield func(T) bool) {
		for it := first; it.Less(last); it = it.Next() {
			if !yield(it.Get()) {
				return
			}
		}
	}
}

// Segments returns the elements before and after the gap. The slices alias
// the buffer's storage: they are read-only and valid until the next
// mutation. Renderers use them to walk the content without copying.
func (b *Buffer[T]) Segments() (left, right []T) {
	if b.storage == nil {
		return nil, nil
	}
	end := len(b.storage)
	return b.storage[:b.gapStart:b.gapStart], b.storage[b.gapStart+b.gapLen : end : end]
}

// Slice returns a copy of the elements in logical order.
func (b *Buffer[T]) Slice() []T {
	return b.AppendTo(make([]T, 0, b.size))
}

// AppendTo appends the elements to dst and returns the extended slice.
func (b *Buffer[T]) AppendTo(dst []T) []T {
	left, right := b.Segments()
	dst = append(dst, left...)
	return append(dst, right...)
}

// Range returns a copy of the elements in the logical range [start, end).
func (b *Buffer[T]) Range(start, end int) []T {
	if debugChecks && (start < 0 || start > end || end > b.size) {
		failf("Range(%d, %d) outside [0, %d]", start, end, b.size)
	}
	out := make([]T, 0, end-start)
	if start < b.gapStart {
		out = append(out, b.storage[start:min(end, b.gapStart)]...)
	}
	if end > b.gapStart {
		out = append(out, b.storage[max(start, b.gapStart)+b.gapLen:end+b.gapLen]...)
	}
	return out
}
