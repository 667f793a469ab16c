package gap

import (
	"iter"
	"slices"
)

// Equal reports whether a and b hold equal elements in the same logical
// order. Gap positions and capacities are ignored.
func Equal[T comparable](a, b *Buffer[T]) bool {
	if a.Len() != b.Len() {
		return false
	}
	return EqualFunc(a, b.Values(), func(x, y T) bool { return x == y })
}

// EqualSlice reports whether b holds exactly the elements of s.
func EqualSlice[T comparable](b *Buffer[T], s []T) bool {
	if b.Len() != len(s) {
		return false
	}
	left, right := b.Segments()
	return slices.Equal(left, s[:len(left)]) && slices.Equal(right, s[len(left):])
}

// EqualSeq reports whether b holds exactly the values produced by seq.
func EqualSeq[T comparable](b *Buffer[T], seq iter.Seq[T]) bool {
	return EqualFunc(b, seq, func(x, y T) bool { return x == y })
}

// EqualFunc compares b against any sequence using eq. It supports
// heterogeneous comparisons such as a Buffer[rune] against a string's runes.
func EqualFunc[T, U any](b *Buffer[T], seq iter.Seq[U], eq func(T, U) bool) bool {
	i := 0
	for u := range seq {
		if i >= b.size || !eq(b.storage[b.phys(i)], u) {
			return false
		}
		i++
	}
	return i == b.size
}
