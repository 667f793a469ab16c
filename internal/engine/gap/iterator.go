package gap

// cursor is the state shared by Iterator and ConstIterator: a buffer and a
// logical position. It never owns storage.
type cursor[T any] struct {
	buf   *Buffer[T]
	pos   int
	stamp generation
}

// check panics, in gapdebug builds, if c cannot be used with its buffer.
func (c cursor[T]) check(op string) {
	if !debugChecks {
		return
	}
	if c.buf == nil {
		failf("%s: iterator has no buffer", op)
	}
	if c.stamp != c.buf.stamp {
		failf("%s: stale iterator used after the buffer was modified", op)
	}
	if c.pos < 0 || c.pos > c.buf.size {
		failf("%s: iterator position %d outside [0, %d]", op, c.pos, c.buf.size)
	}
}

// checkDeref additionally rejects positions that do not hold an element.
func (c cursor[T]) checkDeref(n int, op string) {
	if !debugChecks {
		return
	}
	c.check(op)
	if p := c.pos + n; p < 0 || p >= c.buf.size {
		failf("%s: dereferencing position %d outside [0, %d)", op, p, c.buf.size)
	}
}

// checkPair rejects comparisons between iterators of different buffers.
func (c cursor[T]) checkPair(o cursor[T], op string) {
	if !debugChecks {
		return
	}
	c.check(op)
	o.check(op)
	if c.buf != o.buf {
		failf("%s: iterators belong to different buffers", op)
	}
}

func (c cursor[T]) moved(n int) cursor[T] {
	c.pos += n
	if debugChecks {
		c.check("move")
	}
	return c
}

func (c cursor[T]) get(n int) T {
	c.checkDeref(n, "dereference")
	return c.buf.storage[c.buf.phys(c.pos+n)]
}

func (c cursor[T]) compare(o cursor[T]) int {
	c.checkPair(o, "compare")
	switch {
	case c.pos < o.pos:
		return -1
	case c.pos > o.pos:
		return 1
	default:
		return 0
	}
}

func (c cursor[T]) valid() bool {
	return c.buf != nil && c.stamp == c.buf.stamp && c.pos >= 0 && c.pos <= c.buf.size
}

// Iterator is a random-access position in a Buffer that can read and write
// the element it points at.
//
// Iterators are values; navigation methods return a new iterator. An
// iterator is invalidated by any call that inserts, erases, reserves or
// otherwise moves elements of its buffer. Built with the gapdebug tag, using
// an invalidated iterator panics; otherwise the behavior is undefined.
type Iterator[T any] struct {
	c cursor[T]
}

// Buffer returns the buffer the iterator points into.
func (it Iterator[T]) Buffer() *Buffer[T] { return it.c.buf }

// Index returns the logical position.
func (it Iterator[T]) Index() int { return it.c.pos }

// Valid reports whether the iterator may still be used with its buffer.
// Staleness is only tracked in gapdebug builds.
func (it Iterator[T]) Valid() bool { return it.c.valid() }

// Get returns the element at the iterator. The iterator must not be End().
func (it Iterator[T]) Get() T { return it.c.get(0) }

// At returns the element n positions away from the iterator.
func (it Iterator[T]) At(n int) T { return it.c.get(n) }

// Set replaces the element at the iterator.
func (it Iterator[T]) Set(v T) {
	it.c.checkDeref(0, "Set")
	it.c.buf.storage[it.c.buf.phys(it.c.pos)] = v
}

// SetAt replaces the element n positions away from the iterator.
func (it Iterator[T]) SetAt(n int, v T) {
	it.c.checkDeref(n, "SetAt")
	it.c.buf.storage[it.c.buf.phys(it.c.pos+n)] = v
}

// Ref returns a pointer to the element at the iterator, valid until the
// buffer is next modified.
func (it Iterator[T]) Ref() *T {
	it.c.checkDeref(0, "Ref")
	return &it.c.buf.storage[it.c.buf.phys(it.c.pos)]
}

// Next returns an iterator one position forward.
func (it Iterator[T]) Next() Iterator[T] { return Iterator[T]{c: it.c.moved(1)} }

// Prev returns an iterator one position back.
func (it Iterator[T]) Prev() Iterator[T] { return Iterator[T]{c: it.c.moved(-1)} }

// Add returns an iterator n positions forward (backward if n < 0).
func (it Iterator[T]) Add(n int) Iterator[T] { return Iterator[T]{c: it.c.moved(n)} }

// Sub returns an iterator n positions back.
func (it Iterator[T]) Sub(n int) Iterator[T] { return Iterator[T]{c: it.c.moved(-n)} }

// Distance returns it - o, the number of positions from o to it.
func (it Iterator[T]) Distance(o Iterator[T]) int {
	it.c.checkPair(o.c, "Distance")
	return it.c.pos - o.c.pos
}

// Compare returns -1, 0 or 1 as it is before, at, or after o.
func (it Iterator[T]) Compare(o Iterator[T]) int { return it.c.compare(o.c) }

// Equal reports whether both iterators point at the same position.
func (it Iterator[T]) Equal(o Iterator[T]) bool { return it.c.compare(o.c) == 0 }

// Less reports whether it is before o.
func (it Iterator[T]) Less(o Iterator[T]) bool { return it.c.compare(o.c) < 0 }

// LessEqual reports whether it is not after o.
func (it Iterator[T]) LessEqual(o Iterator[T]) bool { return it.c.compare(o.c) <= 0 }

// Greater reports whether it is after o.
func (it Iterator[T]) Greater(o Iterator[T]) bool { return it.c.compare(o.c) > 0 }

// GreaterEqual reports whether it is not before o.
func (it Iterator[T]) GreaterEqual(o Iterator[T]) bool { return it.c.compare(o.c) >= 0 }

// Const returns a read-only view of the same position.
func (it Iterator[T]) Const() ConstIterator[T] { return ConstIterator[T]{c: it.c} }

// ConstIterator is the read-only counterpart of Iterator. It shares the same
// navigation, comparison and validity rules.
type ConstIterator[T any] struct {
	c cursor[T]
}

// Buffer returns the buffer the iterator points into.
func (it ConstIterator[T]) Buffer() *Buffer[T] { return it.c.buf }

// Index returns the logical position.
func (it ConstIterator[T]) Index() int { return it.c.pos }

// Valid reports whether the iterator may still be used with its buffer.
func (it ConstIterator[T]) Valid() bool { return it.c.valid() }

// Get returns the element at the iterator. The iterator must not be End().
func (it ConstIterator[T]) Get() T { return it.c.get(0) }

// At returns the element n positions away from the iterator.
func (it ConstIterator[T]) At(n int) T { return it.c.get(n) }

// Next returns an iterator one position forward.
func (it ConstIterator[T]) Next() ConstIterator[T] { return ConstIterator[T]{c: it.c.moved(1)} }

// Prev returns an iterator one position back.
func (it ConstIterator[T]) Prev() ConstIterator[T] { return ConstIterator[T]{c: it.c.moved(-1)} }

// Add returns an iterator n positions forward (backward if n < 0).
func (it ConstIterator[T]) Add(n int) ConstIterator[T] { return ConstIterator[T]{c: it.c.moved(n)} }

// Sub returns an iterator n positions back.
func (it ConstIterator[T]) Sub(n int) ConstIterator[T] { return ConstIterator[T]{c: it.c.moved(-n)} }

// Distance returns it - o.
func (it ConstIterator[T]) Distance(o ConstIterator[T]) int {
	it.c.checkPair(o.c, "Distance")
	return it.c.pos - o.c.pos
}

// Compare returns -1, 0 or 1 as it is before, at, or after o.
func (it ConstIterator[T]) Compare(o ConstIterator[T]) int { return it.c.compare(o.c) }

// Equal reports whether both iterators point at the same position.
func (it ConstIterator[T]) Equal(o ConstIterator[T]) bool { return it.c.compare(o.c) == 0 }

// Less reports whether it is before o.
func (it ConstIterator[T]) Less(o ConstIterator[T]) bool { return it.c.compare(o.c) < 0 }

// LessEqual reports whether it is not after o.
func (it ConstIterator[T]) LessEqual(o ConstIterator[T]) bool { return it.c.compare(o.c) <= 0 }

// Greater reports whether it is after o.
func (it ConstIterator[T]) Greater(o ConstIterator[T]) bool { return it.c.compare(o.c) > 0 }

// GreaterEqual reports whether it is not before o.
func (it ConstIterator[T]) GreaterEqual(o ConstIterator[T]) bool { return it.c.compare(o.c) >= 0 }
