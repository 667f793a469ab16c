// Package gap provides a gap buffer: a sequence container optimized for
// repeated insertions and deletions at the same position.
//
// Like a slice, a Buffer keeps its elements in one contiguous allocation with
// spare capacity. Unlike a slice, the spare capacity (the gap) can sit anywhere
// in the allocation. Edits move the gap to where they happen; edits that stay
// at one place, such as typing at a cursor, cost O(1) amortized while moving
// to a different place costs O(distance).
//
// Basic usage:
//
//	b := gap.Of(1, 2)
//	b.PushFront(0)                      // [0 1 2]
//	b.EraseAt(b.IteratorAt(1))          // [0 2]
//	b.InsertAfter(b.Begin(), 5)         // [0 5 2]
//
// # Layout
//
// Logical index i lives in storage slot i when it is left of the gap and in
// slot i+gapLen otherwise. Slots inside the gap always hold the zero value of
// T so that removed elements do not keep memory reachable.
//
// # Iterators
//
// Iterator and ConstIterator are (buffer, index) pairs with random access
// arithmetic and ordering. Any call that inserts, erases, reserves, clears,
// copies or moves elements invalidates every iterator of that buffer except
// the one it returns.
//
// # Preconditions and debug builds
//
// Index and iterator preconditions are the caller's responsibility; checking
// them on every access would defeat the purpose of the container. Build with
//
//	go test -tags gapdebug ./...
//
// to enable the checks: out of range indexes, dereferencing End(), mixing
// iterators of different buffers, and using an iterator after its buffer was
// modified all panic with a descriptive message. Without the tag the
// iterators carry no generation stamp at all.
//
// # Range inserts
//
// InsertSliceBefore and InsertSeqBefore return an iterator at the first
// inserted element. InsertSliceAfter and InsertSeqAfter return an iterator at
// the last inserted element. Each form leaves the gap where the next insert
// in the same direction will happen.
//
// # Copy and move
//
// Clone and CopyFrom deep copy elements. MoveFrom and Take transfer the
// allocation when both buffers share an Allocator and leave the source
// unallocated; a buffer in that state behaves like the zero Buffer.
//
// # Memory
//
// Reserve offers the strong guarantee: the new storage is allocated before
// anything is moved, and on failure it returns ErrTooLarge with the buffer
// untouched. Inserts that must grow panic with ErrTooLarge instead, the same
// convention bytes.Buffer follows.
package gap
