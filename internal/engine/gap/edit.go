package gap

import (
	"iter"
	"slices"
)

// openBefore prepares the slot at the right end of the gap for an element
// that will take logical index i. The gap ends up directly before it.
func (b *Buffer[T]) openBefore(i int) int {
	b.moveGap(i)
	b.growFor(1)
	return b.gapStart + b.gapLen - 1
}

// commitBefore accounts for an element placed by openBefore.
func (b *Buffer[T]) commitBefore() {
	b.gapLen--
	b.size++
	b.stamp.bump()
}

// openAfter prepares the slot at the left end of the gap for an element
// that will take logical index i. The gap ends up directly after it.
func (b *Buffer[T]) openAfter(i int) int {
	b.moveGap(i)
	b.growFor(1)
	return b.gapStart
}

// commitAfter accounts for an element placed by openAfter.
func (b *Buffer[T]) commitAfter() {
	b.gapStart++
	b.gapLen--
	b.size++
	b.stamp.bump()
}

// emplace runs init on a gap slot. If init panics the slot is zeroed again
// and the buffer keeps its previous contents.
func (b *Buffer[T]) emplace(slot int, init func(*T)) {
	done := false
	defer func() {
		if !done {
			var zero T
			b.storage[slot] = zero
		}
	}()
	init(&b.storage[slot])
	done = true
}

// PushBack appends v.
func (b *Buffer[T]) PushBack(v T) {
	b.storage[b.openAfter(b.size)] = v
	b.commitAfter()
}

// PushFront prepends v.
func (b *Buffer[T]) PushFront(v T) {
	b.storage[b.openBefore(0)] = v
	b.commitBefore()
}

// EmplaceBack appends an element initialized in place by init.
// init receives a pointer to a zeroed slot.
func (b *Buffer[T]) EmplaceBack(init func(*T)) {
	b.emplace(b.openAfter(b.size), init)
	b.commitAfter()
}

// EmplaceFront prepends an element initialized in place by init.
func (b *Buffer[T]) EmplaceFront(init func(*T)) {
	b.emplace(b.openBefore(0), init)
	b.commitBefore()
}

// InsertBefore inserts v before pos and returns an iterator at the new
// element. The gap is left directly before the new element, so repeated
// inserts before the returned iterator cost O(1).
//
// If the insert reallocates or moves the gap, all other iterators become
// invalid.
func (b *Buffer[T]) InsertBefore(pos Iterator[T], v T) Iterator[T] {
	i := b.own(pos.c, "InsertBefore")
	b.storage[b.openBefore(i)] = v
	b.commitBefore()
	return b.iteratorAt(i)
}

// EmplaceBefore is InsertBefore with in-place initialization.
func (b *Buffer[T]) EmplaceBefore(pos Iterator[T], init func(*T)) Iterator[T] {
	i := b.own(pos.c, "EmplaceBefore")
	b.emplace(b.openBefore(i), init)
	b.commitBefore()
	return b.iteratorAt(i)
}

// InsertAfter inserts v after pos and returns an iterator at the new
// element. The gap is left directly after the new element, so repeated
// inserts after the returned iterator cost O(1).
//
// Inserting after End() appends.
func (b *Buffer[T]) InsertAfter(pos Iterator[T], v T) Iterator[T] {
	i := b.afterIndex(pos, "InsertAfter")
	b.storage[b.openAfter(i)] = v
	b.commitAfter()
	return b.iteratorAt(i)
}

// EmplaceAfter is InsertAfter with in-place initialization.
func (b *Buffer[T]) EmplaceAfter(pos Iterator[T], init func(*T)) Iterator[T] {
	i := b.afterIndex(pos, "EmplaceAfter")
	b.emplace(b.openAfter(i), init)
	b.commitAfter()
	return b.iteratorAt(i)
}

// InsertSliceBefore inserts vs, in order, before pos.
// It returns an iterator at the first inserted element, or pos when vs is
// empty.
func (b *Buffer[T]) InsertSliceBefore(pos Iterator[T], vs []T) Iterator[T] {
	i := b.own(pos.c, "InsertSliceBefore")
	if len(vs) == 0 {
		return b.iteratorAt(i)
	}

	b.moveGap(i)
	b.growFor(len(vs))
	end := b.gapStart + b.gapLen
	copy(b.storage[end-len(vs):end], vs)
	b.gapLen -= len(vs)
	b.size += len(vs)
	b.stamp.bump()
	return b.iteratorAt(i)
}

// InsertSeqBefore inserts the values of seq, in order, before pos.
// It returns an iterator at the first inserted element, or pos when seq is
// empty.
func (b *Buffer[T]) InsertSeqBefore(pos Iterator[T], seq iter.Seq[T]) Iterator[T] {
	return b.InsertSliceBefore(pos, slices.Collect(seq))
}

// InsertSliceAfter inserts vs, in order, after pos.
// Unlike InsertSliceBefore it returns an iterator at the last inserted
// element, or pos when vs is empty.
func (b *Buffer[T]) InsertSliceAfter(pos Iterator[T], vs []T) Iterator[T] {
	i := b.afterIndex(pos, "InsertSliceAfter")
	if len(vs) == 0 {
		return b.iteratorAt(pos.c.pos)
	}

	b.moveGap(i)
	b.growFor(len(vs))
	copy(b.storage[b.gapStart:], vs)
	b.gapStart += len(vs)
	b.gapLen -= len(vs)
	b.size += len(vs)
	b.stamp.bump()
	return b.iteratorAt(i + len(vs) - 1)
}

// InsertSeqAfter inserts the values of seq, in order, after pos.
// It returns an iterator at the last inserted element, or pos when seq is
// empty.
func (b *Buffer[T]) InsertSeqAfter(pos Iterator[T], seq iter.Seq[T]) Iterator[T] {
	i := b.afterIndex(pos, "InsertSeqAfter")
	last := pos.c.pos
	for v := range seq {
		b.storage[b.openAfter(i)] = v
		b.commitAfter()
		last = i
		i++
	}
	return b.iteratorAt(last)
}

// Erase removes the elements in [first, last) and returns an iterator at
// the element that followed them, or End().
//
// The gap is first moved to directly after last, so the removed slots simply
// join the gap.
func (b *Buffer[T]) Erase(first, last Iterator[T]) Iterator[T] {
	i := b.own(first.c, "Erase")
	j := b.own(last.c, "Erase")
	if debugChecks && i > j {
		failf("Erase: first %d after last %d", i, j)
	}
	if i == j {
		return b.iteratorAt(i)
	}

	b.moveGap(j)
	clear(b.storage[i:j])
	b.gapLen += j - i
	b.gapStart = i
	b.size -= j - i
	b.stamp.bump()
	return b.iteratorAt(i)
}

// EraseAt removes the element at pos.
func (b *Buffer[T]) EraseAt(pos Iterator[T]) Iterator[T] {
	if debugChecks && pos.c.buf == b && pos.c.pos >= b.size {
		failf("EraseAt: position %d is End()", pos.c.pos)
	}
	return b.Erase(pos, pos.Next())
}

// PopBack removes and returns the last element. The buffer must not be empty.
func (b *Buffer[T]) PopBack() T {
	if debugChecks && b.size == 0 {
		failf("PopBack on empty buffer")
	}
	v := b.At(b.size - 1)
	b.Erase(b.iteratorAt(b.size-1), b.iteratorAt(b.size))
	return v
}

// PopFront removes and returns the first element. The buffer must not be empty.
func (b *Buffer[T]) PopFront() T {
	if debugChecks && b.size == 0 {
		failf("PopFront on empty buffer")
	}
	v := b.At(0)
	b.Erase(b.iteratorAt(0), b.iteratorAt(1))
	return v
}

// Clear removes every element but keeps the allocation, so a buffer that
// was moved from or cleared can be refilled without reallocating.
func (b *Buffer[T]) Clear() {
	if b.storage == nil {
		return
	}
	clear(b.storage[:b.gapStart])
	clear(b.storage[b.gapStart+b.gapLen:])
	b.size = 0
	b.gapStart = 0
	b.gapLen = len(b.storage)
	b.stamp.bump()
}

// own checks that c belongs to b and returns its index.
func (b *Buffer[T]) own(c cursor[T], op string) int {
	if debugChecks {
		if c.buf != b {
			failf("%s: iterator belongs to another buffer", op)
		}
		c.check(op)
	}
	return c.pos
}

// afterIndex is the insertion index for the *After operations.
func (b *Buffer[T]) afterIndex(pos Iterator[T], op string) int {
	i := b.own(pos.c, op)
	if i < b.size {
		return i + 1
	}
	return b.size
}
