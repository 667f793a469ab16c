package gap

import (
	"sync"
	"testing"
)

func TestPoolClass(t *testing.T) {
	tests := []struct {
		n    int
		want int
	}{
		{0, 64},
		{1, 64},
		{64, 64},
		{65, 128},
		{128, 128},
		{129, 256},
		{320, 512},
		{1 << 20, 1 << 20},
		{1<<20 + 1, 1 << 21},
	}
	for _, tt := range tests {
		if got := poolClass(tt.n); got != tt.want {
			t.Errorf("poolClass(%d) = %d, want %d", tt.n, got, tt.want)
		}
	}
}

func TestPoolAllocatorReturnsZeroedSlices(t *testing.T) {
	p := NewPoolAllocator[*int]()

	s := p.Allocate(100)
	if len(s) != 128 {
		t.Fatalf("Allocate(100) len = %d, want 128", len(s))
	}
	x := 7
	for i := range s {
		s[i] = &x
	}
	p.Deallocate(s)

	// The pool may or may not hand back the same slice; either way it must
	// be zeroed.
	r := p.Allocate(128)
	if len(r) != 128 {
		t.Fatalf("Allocate(128) len = %d, want 128", len(r))
	}
	for i, v := range r {
		if v != nil {
			t.Fatalf("slot %d not zeroed", i)
		}
	}
}

func TestPoolAllocatorDropsOddSizes(t *testing.T) {
	p := NewPoolAllocator[int]()
	// Not a size class; must not panic or be handed out later.
	p.Deallocate(make([]int, 100))
	p.Deallocate(nil)
	if s := p.Allocate(100); len(s) != 128 {
		t.Errorf("Allocate(100) len = %d, want 128", len(s))
	}
}

func TestPoolAllocatorZeroValue(t *testing.T) {
	var p PoolAllocator[int]
	if s := p.Allocate(10); len(s) != 64 {
		t.Errorf("zero PoolAllocator Allocate(10) len = %d, want 64", len(s))
	}
}

func TestPoolAllocatorConcurrent(t *testing.T) {
	p := NewPoolAllocator[int]()
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				s := p.Allocate(64 << (i % 4))
				s[0] = g
				p.Deallocate(s)
			}
		}(g)
	}
	wg.Wait()
}

func TestBuffersSharingPool(t *testing.T) {
	p := NewPoolAllocator[int]()
	a := NewWithAllocator[int](p, WithCapacity(10))
	b := NewWithAllocator[int](p)

	for i := range 10 {
		a.PushBack(i)
	}
	storage := &a.storage[0]

	b.MoveFrom(a)
	if &b.storage[0] != storage {
		t.Error("MoveFrom between buffers sharing a pool should transfer storage")
	}
	expect(t, b, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9})
	expect(t, a, nil)
}

func TestPoolBufferGrowsThroughClasses(t *testing.T) {
	p := NewPoolAllocator[int]()
	b := NewWithAllocator[int](p, WithGrowIncrement(1))

	want := make([]int, 0, 1000)
	for i := range 1000 {
		b.PushFront(i)
		want = append([]int{i}, want...)
	}
	expect(t, b, want)
	if c := b.Cap(); c&(c-1) != 0 {
		t.Errorf("Cap() = %d, want a pool size class", c)
	}
}
