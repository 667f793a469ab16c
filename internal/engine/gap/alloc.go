package gap

import (
	"math/bits"
	"sync"
)

// Allocator supplies backing storage to a Buffer.
//
// Allocate must return a zeroed slice with len >= n. Deallocate receives a
// slice previously returned by Allocate once the buffer no longer references
// it. Implementations must be comparable: MoveFrom transfers storage between
// buffers only when their allocators compare equal.
type Allocator[T any] interface {
	Allocate(n int) []T
	Deallocate(s []T)
}

// HeapAllocator allocates with make and leaves reclamation to the garbage
// collector. It is the default allocator.
type HeapAllocator[T any] struct{}

// Allocate returns a new zeroed slice of exactly n elements.
func (HeapAllocator[T]) Allocate(n int) []T {
	return make([]T, n)
}

// Deallocate does nothing.
func (HeapAllocator[T]) Deallocate([]T) {}

// minPoolClass is the smallest slice length handed out by a PoolAllocator.
const minPoolClass = 64

// maxPoolClass bounds the slices kept for reuse; larger ones are dropped.
const maxPoolClass = 1 << 24

// PoolAllocator recycles storage through size-classed sync.Pools.
//
// Requests are rounded up to the next power of two (at least 64 elements),
// so buffers allocated from a pool may report more capacity than requested.
// A PoolAllocator is safe for concurrent use and is meant to be shared by
// many buffers, typically one per element type.
type PoolAllocator[T any] struct {
	mu    sync.Mutex
	pools map[int]*sync.Pool
}

// NewPoolAllocator creates an empty pool allocator.
func NewPoolAllocator[T any]() *PoolAllocator[T] {
	return &PoolAllocator[T]{pools: make(map[int]*sync.Pool)}
}

// Allocate returns a zeroed slice whose length is the size class of n.
func (p *PoolAllocator[T]) Allocate(n int) []T {
	class := poolClass(n)
	if class > maxPoolClass {
		return make([]T, n)
	}
	if s, ok := p.pool(class).Get().(*[]T); ok && s != nil {
		return *s
	}
	return make([]T, class)
}

// Deallocate zeroes s and returns it to its size class.
// Slices that do not match a size class are dropped.
func (p *PoolAllocator[T]) Deallocate(s []T) {
	n := len(s)
	if n < minPoolClass || n > maxPoolClass || n&(n-1) != 0 {
		return
	}
	// Clear references to allow GC of element data
	clear(s)
	p.pool(n).Put(&s)
}

func (p *PoolAllocator[T]) pool(class int) *sync.Pool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.pools == nil {
		p.pools = make(map[int]*sync.Pool)
	}
	sp, ok := p.pools[class]
	if !ok {
		sp = &sync.Pool{}
		p.pools[class] = sp
	}
	return sp
}

// poolClass rounds n up to a power of two no smaller than minPoolClass.
func poolClass(n int) int {
	if n <= minPoolClass {
		return minPoolClass
	}
	shift := bits.Len(uint(n - 1))
	if shift >= bits.UintSize-1 {
		return n
	}
	return 1 << shift
}
