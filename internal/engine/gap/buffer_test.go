package gap

import (
	"errors"
	"math"
	"slices"
	"testing"
)

// expect checks the logical content and the internal invariants of b.
func expect[T comparable](t *testing.T, b *Buffer[T], want []T) {
	t.Helper()
	if err := b.validate(); err != nil {
		t.Fatalf("invariant broken: %v", err)
	}
	if got := b.Slice(); !slices.Equal(got, want) {
		t.Fatalf("content = %v, want %v", got, want)
	}
	if b.Len() != len(want) {
		t.Fatalf("Len() = %d, want %d", b.Len(), len(want))
	}
	if b.Cap() < b.Len() {
		t.Fatalf("Cap() = %d < Len() = %d", b.Cap(), b.Len())
	}
}

func TestZeroBuffer(t *testing.T) {
	var b Buffer[int]
	if b.Len() != 0 || b.Cap() != 0 {
		t.Errorf("zero buffer Len/Cap = %d/%d, want 0/0", b.Len(), b.Cap())
	}
	if !b.IsEmpty() {
		t.Error("zero buffer should be empty")
	}
	if !b.Begin().Equal(b.End()) {
		t.Error("Begin() should equal End() on an empty buffer")
	}
	expect(t, &b, []int{})

	b.PushBack(7)
	expect(t, &b, []int{7})
}

func TestScenarioPushEraseInsertAfter(t *testing.T) {
	b := New[int]()
	b.PushBack(1)
	b.PushBack(2)
	b.PushFront(0)
	expect(t, b, []int{0, 1, 2})

	it := b.EraseAt(b.IteratorAt(1))
	expect(t, b, []int{0, 2})
	if it.Index() != 1 || it.Get() != 2 {
		t.Errorf("EraseAt returned index %d, want 1 pointing at 2", it.Index())
	}

	it = b.InsertAfter(b.IteratorAt(0), 5)
	expect(t, b, []int{0, 5, 2})
	if it.Index() != 1 || it.Get() != 5 {
		t.Errorf("InsertAfter returned index %d, want 1 pointing at 5", it.Index())
	}
}

func TestScenarioEraseRange(t *testing.T) {
	b := Of("a", "b", "c", "d")
	it := b.Erase(b.Begin().Add(1), b.Begin().Add(3))
	expect(t, b, []string{"a", "d"})
	if b.Len() != 2 {
		t.Errorf("Len() = %d, want 2", b.Len())
	}
	if it.Get() != "d" {
		t.Errorf("Erase returned iterator at %q, want \"d\"", it.Get())
	}
}

func TestFrontBack(t *testing.T) {
	b := Of(3, 4, 5)
	if b.Front() != 3 || b.Back() != 5 {
		t.Errorf("Front/Back = %d/%d, want 3/5", b.Front(), b.Back())
	}
	b.moveGap(1)
	if b.Front() != 3 || b.Back() != 5 {
		t.Errorf("after moving gap Front/Back = %d/%d, want 3/5", b.Front(), b.Back())
	}
}

func TestPushPopMatchesSlice(t *testing.T) {
	type op struct {
		kind  string
		value int
	}
	tests := []struct {
		name string
		ops  []op
	}{
		{"back only", []op{{"pushBack", 1}, {"pushBack", 2}, {"popBack", 0}, {"pushBack", 3}}},
		{"front only", []op{{"pushFront", 1}, {"pushFront", 2}, {"popFront", 0}, {"pushFront", 3}}},
		{"alternating", []op{{"pushBack", 1}, {"pushFront", 2}, {"pushBack", 3}, {"popFront", 0}, {"pushFront", 4}, {"popBack", 0}}},
		{"drain", []op{{"pushBack", 1}, {"pushBack", 2}, {"popFront", 0}, {"popFront", 0}, {"pushFront", 9}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := New[int]()
			var model []int
			pushes, pops := 0, 0
			for _, o := range tt.ops {
				switch o.kind {
				case "pushBack":
					b.PushBack(o.value)
					model = append(model, o.value)
					pushes++
				case "pushFront":
					b.PushFront(o.value)
					model = slices.Insert(model, 0, o.value)
					pushes++
				case "popBack":
					got := b.PopBack()
					if want := model[len(model)-1]; got != want {
						t.Fatalf("PopBack() = %d, want %d", got, want)
					}
					model = model[:len(model)-1]
					pops++
				case "popFront":
					got := b.PopFront()
					if got != model[0] {
						t.Fatalf("PopFront() = %d, want %d", got, model[0])
					}
					model = model[1:]
					pops++
				}
				expect(t, b, model)
			}
			if b.Len() != pushes-pops {
				t.Errorf("Len() = %d, want %d", b.Len(), pushes-pops)
			}
		})
	}
}

func TestManyPushesAmortize(t *testing.T) {
	b := New[int](WithGrowIncrement(16))
	reallocs := 0
	lastCap := b.Cap()
	for i := 0; i < 10000; i++ {
		b.PushBack(i)
		if b.Cap() != lastCap {
			reallocs++
			lastCap = b.Cap()
		}
	}
	if b.Len() != 10000 {
		t.Fatalf("Len() = %d, want 10000", b.Len())
	}
	for i := 0; i < b.Len(); i++ {
		if b.At(i) != i {
			t.Fatalf("At(%d) = %d", i, b.At(i))
		}
	}
	if reallocs == 0 || reallocs > 10000/16 {
		t.Errorf("unexpected reallocation count %d", reallocs)
	}
}

func TestGrowthPolicy(t *testing.T) {
	b := New[int](WithGrowIncrement(16))
	b.PushBack(1)
	if b.Cap() != 64 {
		t.Errorf("Cap() = %d, want 64 (1 + 16 rounded to 64)", b.Cap())
	}

	d := New[int]()
	d.PushBack(1)
	if d.Cap() != alignUp(1+DefaultGrowIncrement) {
		t.Errorf("Cap() = %d, want %d", d.Cap(), alignUp(1+DefaultGrowIncrement))
	}
}

func TestInsertBeforeAtStableIndex(t *testing.T) {
	for _, idx := range []int{0, 1, 3, 5} {
		b := Of(10, 11, 12, 13, 14)
		model := []int{10, 11, 12, 13, 14}
		for v := 0; v < 50; v++ {
			it := b.InsertBefore(b.IteratorAt(idx), v)
			model = slices.Insert(model, idx, v)
			if it.Index() != idx || it.Get() != v {
				t.Fatalf("idx %d: InsertBefore returned %d -> %d", idx, it.Index(), it.Get())
			}
		}
		expect(t, b, model)
	}
}

func TestInsertAfterAtStableIndex(t *testing.T) {
	for _, idx := range []int{0, 2, 4} {
		b := Of(10, 11, 12, 13, 14)
		model := []int{10, 11, 12, 13, 14}
		for v := 0; v < 50; v++ {
			it := b.InsertAfter(b.IteratorAt(idx), v)
			model = slices.Insert(model, idx+1, v)
			if it.Index() != idx+1 || it.Get() != v {
				t.Fatalf("idx %d: InsertAfter returned %d -> %d", idx, it.Index(), it.Get())
			}
		}
		expect(t, b, model)
	}
}

func TestInsertAfterEnd(t *testing.T) {
	b := New[int]()
	it := b.InsertAfter(b.End(), 1)
	expect(t, b, []int{1})
	if it.Index() != 0 {
		t.Errorf("InsertAfter(End()) index = %d, want 0", it.Index())
	}
	b.InsertAfter(b.End(), 2)
	expect(t, b, []int{1, 2})
}

func TestTypingAtCursorKeepsGap(t *testing.T) {
	b := FromSlice([]rune("hello world"))
	it := b.IteratorAt(5)
	for _, r := range ",!" {
		it = b.InsertAfter(it.Prev(), r).Next()
	}
	expect(t, b, []rune("hello,! world"))
	if start, _ := b.Gap(); start != 7 {
		t.Errorf("gap start = %d, want 7", start)
	}
}

func TestEraseAtEveryGapPosition(t *testing.T) {
	base := []int{0, 1, 2, 3, 4, 5, 6}
	for g := 0; g <= len(base); g++ {
		for first := 0; first <= len(base); first++ {
			for last := first; last <= len(base); last++ {
				b := FromSlice(base, WithGrowIncrement(3))
				b.moveGap(g)

				it := b.Erase(b.IteratorAt(first), b.IteratorAt(last))

				want := slices.Delete(slices.Clone(base), first, last)
				expect(t, b, want)
				if b.Len() != len(base)-(last-first) {
					t.Fatalf("Len() = %d after erasing [%d,%d)", b.Len(), first, last)
				}
				if it.Index() != first {
					t.Fatalf("Erase returned index %d, want %d", it.Index(), first)
				}
				if first < len(want) && it.Get() != want[first] {
					t.Fatalf("Erase returned %d, want %d", it.Get(), want[first])
				}
			}
		}
	}
}

func TestMoveGapDistance(t *testing.T) {
	b := FromSlice([]int{0, 1, 2, 3, 4, 5, 6, 7}, WithGrowIncrement(4))
	for _, target := range []int{8, 3, 0, 5, 5, 8, 1} {
		b.moveGap(target)
		if start, _ := b.Gap(); start != target {
			t.Fatalf("gap start = %d, want %d", start, target)
		}
		expect(t, b, []int{0, 1, 2, 3, 4, 5, 6, 7})
	}
}

func TestClearKeepsCapacity(t *testing.T) {
	b := Of(1, 2, 3)
	b.moveGap(1)
	c := b.Cap()
	b.Clear()
	expect(t, b, []int{})
	if b.Cap() != c {
		t.Errorf("Cap() after Clear = %d, want %d", b.Cap(), c)
	}
	b.PushBack(4)
	if b.Cap() != c {
		t.Errorf("PushBack after Clear reallocated: Cap() = %d, want %d", b.Cap(), c)
	}
}

func TestReserve(t *testing.T) {
	b := Of(1, 2, 3, 4)
	b.moveGap(2)
	before := b.Cap()

	if err := b.Reserve(before - 1); err != nil {
		t.Fatalf("Reserve: %v", err)
	}
	if b.Cap() != before {
		t.Errorf("Reserve(smaller) changed Cap() from %d to %d", before, b.Cap())
	}

	if err := b.Reserve(before + 1000); err != nil {
		t.Fatalf("Reserve: %v", err)
	}
	if b.Cap() < before+1000 {
		t.Errorf("Cap() = %d, want >= %d", b.Cap(), before+1000)
	}
	if start, _ := b.Gap(); start != 2 {
		t.Errorf("gap start = %d, want 2", start)
	}
	expect(t, b, []int{1, 2, 3, 4})
}

func TestReserveTooLarge(t *testing.T) {
	b := Of(1, 2, 3)
	capBefore := b.Cap()

	err := b.Reserve(math.MaxInt)
	if !errors.Is(err, ErrTooLarge) {
		t.Fatalf("Reserve(MaxInt) error = %v, want ErrTooLarge", err)
	}
	if b.Cap() != capBefore {
		t.Errorf("Cap() changed to %d after failed Reserve", b.Cap())
	}
	expect(t, b, []int{1, 2, 3})
}

func TestGetChecked(t *testing.T) {
	b := Of(1, 2)
	if v, err := b.Get(1); err != nil || v != 2 {
		t.Errorf("Get(1) = %d, %v", v, err)
	}
	for _, i := range []int{-1, 2, 100} {
		if _, err := b.Get(i); !errors.Is(err, ErrIndexOutOfRange) {
			t.Errorf("Get(%d) error = %v, want ErrIndexOutOfRange", i, err)
		}
	}
}

func TestSetAndRef(t *testing.T) {
	b := Of(1, 2, 3)
	b.moveGap(1)
	b.Set(2, 30)
	*b.Ref(0) = 10
	expect(t, b, []int{10, 2, 30})
}

func TestEmplace(t *testing.T) {
	type point struct{ x, y int }
	b := New[point]()
	b.EmplaceBack(func(p *point) { p.x, p.y = 1, 2 })
	b.EmplaceFront(func(p *point) { p.x = 9 })
	b.EmplaceAfter(b.Begin(), func(p *point) { p.y = 5 })
	b.EmplaceBefore(b.End(), func(p *point) { p.x, p.y = 7, 7 })
	expect(t, b, []point{{9, 0}, {0, 5}, {1, 2}, {7, 7}})
}

func TestEmplacePanicLeavesBufferUnchanged(t *testing.T) {
	b := Of("a", "b")
	func() {
		defer func() {
			if recover() == nil {
				t.Fatal("expected panic from init")
			}
		}()
		b.EmplaceBefore(b.IteratorAt(1), func(s *string) {
			*s = "partial"
			panic("boom")
		})
	}()
	expect(t, b, []string{"a", "b"})
}

func TestRangeInsertReturnContract(t *testing.T) {
	b := Of(1, 5)

	first := b.InsertSliceBefore(b.IteratorAt(1), []int{2, 3})
	expect(t, b, []int{1, 2, 3, 5})
	if first.Index() != 1 || first.Get() != 2 {
		t.Errorf("InsertSliceBefore returned %d, want first inserted at 1", first.Index())
	}

	last := b.InsertSliceAfter(b.IteratorAt(2), []int{4, 4})
	expect(t, b, []int{1, 2, 3, 4, 4, 5})
	if last.Index() != 4 {
		t.Errorf("InsertSliceAfter returned %d, want last inserted at 4", last.Index())
	}

	pos := b.IteratorAt(3)
	if got := b.InsertSliceBefore(pos, nil); got.Index() != 3 {
		t.Errorf("empty InsertSliceBefore returned %d, want 3", got.Index())
	}
	if got := b.InsertSliceAfter(b.IteratorAt(3), nil); got.Index() != 3 {
		t.Errorf("empty InsertSliceAfter returned %d, want 3", got.Index())
	}
}

func TestRangeInsertLargerThanGap(t *testing.T) {
	b := FromSlice([]int{0, 9}, WithGrowIncrement(1))
	vs := make([]int, 200)
	for i := range vs {
		vs[i] = i + 1
	}
	b.InsertSliceBefore(b.IteratorAt(1), vs)
	want := append(append([]int{0}, vs...), 9)
	expect(t, b, want)
}

func TestInsertSeqFromIteratorPair(t *testing.T) {
	src := Of(1, 2, 3, 4, 5)
	b := Of(0, 9)

	first := b.InsertSeqBefore(b.IteratorAt(1), Span(src.CBegin().Add(1), src.CEnd().Sub(1)))
	expect(t, b, []int{0, 2, 3, 4, 9})
	if first.Get() != 2 {
		t.Errorf("InsertSeqBefore returned %d, want 2", first.Get())
	}

	last := b.InsertSeqAfter(b.IteratorAt(0), Span(src.CBegin(), src.CBegin().Add(2)))
	expect(t, b, []int{0, 1, 2, 2, 3, 4, 9})
	if last.Index() != 2 || last.Get() != 2 {
		t.Errorf("InsertSeqAfter returned index %d", last.Index())
	}
}

func TestCloneIsIndependent(t *testing.T) {
	b1 := Of(1, 2, 3)
	b1.moveGap(1)
	b2 := b1.Clone()
	if !Equal(b1, b2) {
		t.Fatalf("clone differs: %v vs %v", b1, b2)
	}

	b2.PushBack(4)
	b2.Set(0, 100)
	expect(t, b1, []int{1, 2, 3})
	expect(t, b2, []int{100, 2, 3, 4})
}

func TestCopyFrom(t *testing.T) {
	t.Run("reuses capacity", func(t *testing.T) {
		dst := FromSlice(make([]int, 100))
		capBefore := dst.Cap()
		src := Of(1, 2, 3)
		src.moveGap(2)

		dst.CopyFrom(src)
		expect(t, dst, []int{1, 2, 3})
		if dst.Cap() != capBefore {
			t.Errorf("Cap() = %d, want reused %d", dst.Cap(), capBefore)
		}
		src.Set(0, 50)
		expect(t, dst, []int{1, 2, 3})
	})

	t.Run("reallocates", func(t *testing.T) {
		dst := New[int]()
		src := FromSlice(make([]int, 1000))
		dst.CopyFrom(src)
		if !Equal(dst, src) {
			t.Fatal("copy differs from source")
		}
		if dst.Cap() != src.Len()+DefaultGrowIncrement {
			t.Errorf("Cap() = %d, want %d", dst.Cap(), src.Len()+DefaultGrowIncrement)
		}
	})

	t.Run("self assignment", func(t *testing.T) {
		b := Of(1, 2, 3)
		b.CopyFrom(b)
		expect(t, b, []int{1, 2, 3})
	})

	t.Run("from unallocated", func(t *testing.T) {
		b := Of(1, 2, 3)
		b.CopyFrom(&Buffer[int]{})
		expect(t, b, []int{})
	})
}

func TestMoveFrom(t *testing.T) {
	t.Run("same allocator transfers storage", func(t *testing.T) {
		src := Of(1, 2, 3)
		src.moveGap(1)
		dst := Of(7)

		dst.MoveFrom(src)
		expect(t, dst, []int{1, 2, 3})
		expect(t, src, []int{})
		if src.Cap() != 0 {
			t.Errorf("source Cap() = %d, want 0 (unallocated)", src.Cap())
		}

		src.PushBack(4)
		src.PushFront(3)
		expect(t, src, []int{3, 4})
		expect(t, dst, []int{1, 2, 3})
	})

	t.Run("different allocator moves elements", func(t *testing.T) {
		pool := NewPoolAllocator[int]()
		src := NewWithAllocator[int](pool)
		src.PushBack(1)
		src.PushBack(2)
		srcCap := src.Cap()

		dst := New[int]()
		dst.MoveFrom(src)
		expect(t, dst, []int{1, 2})
		expect(t, src, []int{})
		if src.Cap() != srcCap {
			t.Errorf("source Cap() = %d, want retained %d", src.Cap(), srcCap)
		}
	})

	t.Run("self move", func(t *testing.T) {
		b := Of(1, 2)
		b.MoveFrom(b)
		expect(t, b, []int{1, 2})
	})
}

func TestTake(t *testing.T) {
	b := Of("x", "y")
	moved := b.Take()
	expect(t, moved, []string{"x", "y"})
	expect(t, b, []string{})
	if b.Cap() != 0 {
		t.Errorf("Cap() after Take = %d, want 0", b.Cap())
	}
	b.PushBack("z")
	expect(t, b, []string{"z"})
}

func TestEqualIgnoresGap(t *testing.T) {
	a := Of(1, 2, 3, 4)
	b := Of(1, 2, 3, 4)
	a.moveGap(0)
	b.moveGap(3)
	if !Equal(a, b) {
		t.Error("buffers with different gap positions should be equal")
	}
	if !EqualSlice(a, []int{1, 2, 3, 4}) || !EqualSlice(b, []int{1, 2, 3, 4}) {
		t.Error("EqualSlice should ignore gap position")
	}
	if !EqualSeq(a, slices.Values([]int{1, 2, 3, 4})) {
		t.Error("EqualSeq failed")
	}

	b.PopBack()
	if Equal(a, b) {
		t.Error("buffers of different length should differ")
	}
	if EqualSeq(a, slices.Values([]int{1, 2, 3})) || EqualSeq(a, slices.Values([]int{1, 2, 3, 4, 5})) {
		t.Error("EqualSeq should compare lengths")
	}
}

func TestEqualFuncHeterogeneous(t *testing.T) {
	b := FromSlice([]rune("héllo"))
	b.moveGap(2)
	bytesOf := func(s string) func(func(byte) bool) {
		return func(yield func(byte) bool) {
			for i := 0; i < len(s); i++ {
				if !yield(s[i]) {
					return
				}
			}
		}
	}
	eq := func(r rune, c byte) bool { return r == rune(c) }
	if !EqualFunc(b, bytesOf("hello"), func(r rune, c byte) bool {
		return r == rune(c) || (r == 'é' && c == 'e')
	}) {
		t.Error("EqualFunc with custom comparison failed")
	}
	if EqualFunc(b, bytesOf("hello"), eq) {
		t.Error("EqualFunc should report the mismatching rune")
	}
}

func TestSegmentsAndRange(t *testing.T) {
	b := Of(1, 2, 3, 4, 5)
	b.moveGap(2)
	left, right := b.Segments()
	if !slices.Equal(left, []int{1, 2}) || !slices.Equal(right, []int{3, 4, 5}) {
		t.Errorf("Segments() = %v, %v", left, right)
	}

	tests := []struct {
		start, end int
		want       []int
	}{
		{0, 5, []int{1, 2, 3, 4, 5}},
		{0, 2, []int{1, 2}},
		{2, 4, []int{3, 4}},
		{1, 4, []int{2, 3, 4}},
		{3, 3, []int{}},
	}
	for _, tt := range tests {
		if got := b.Range(tt.start, tt.end); !slices.Equal(got, tt.want) {
			t.Errorf("Range(%d, %d) = %v, want %v", tt.start, tt.end, got, tt.want)
		}
	}
}

func TestIterationOrder(t *testing.T) {
	b := Of(1, 2, 3, 4)
	b.moveGap(2)

	var forward []int
	for i, v := range b.All() {
		if b.At(i) != v {
			t.Fatalf("All() index %d yields %d, At gives %d", i, v, b.At(i))
		}
		forward = append(forward, v)
	}
	if !slices.Equal(forward, []int{1, 2, 3, 4}) {
		t.Errorf("All() = %v", forward)
	}

	var backward []int
	for _, v := range b.Backward() {
		backward = append(backward, v)
	}
	if !slices.Equal(backward, []int{4, 3, 2, 1}) {
		t.Errorf("Backward() = %v", backward)
	}

	if got := slices.Collect(b.Values()); !slices.Equal(got, []int{1, 2, 3, 4}) {
		t.Errorf("Values() = %v", got)
	}
}

func TestFromSeq(t *testing.T) {
	b := FromSeq(slices.Values([]string{"a", "b"}))
	expect(t, b, []string{"a", "b"})
}

func TestGapSlotsAreZeroed(t *testing.T) {
	type item struct{ p *int }
	v := 1
	b := New[item]()
	for i := 0; i < 5; i++ {
		b.PushBack(item{p: &v})
	}
	b.Erase(b.IteratorAt(1), b.IteratorAt(4))
	b.moveGap(0)
	b.moveGap(2)
	if err := b.validate(); err != nil {
		t.Fatal(err)
	}
	if b.Len() != 2 {
		t.Errorf("Len() = %d, want 2", b.Len())
	}
}

func TestString(t *testing.T) {
	b := Of(1, 2, 3)
	b.moveGap(1)
	if got := b.String(); got != "[1 2 3]" {
		t.Errorf("String() = %q", got)
	}
}
