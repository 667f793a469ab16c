// Package bench runs edit workloads against a gap buffer and a plain
// slice and checks that both end up holding the same runes.
package bench

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"slices"
	"time"

	"github.com/dshills/gapedit/internal/config"
	"github.com/dshills/gapedit/internal/engine/gap"
)

// ErrMismatch is returned when the gap buffer and the slice disagree.
var ErrMismatch = errors.New("gap buffer and slice disagree")

// Workload describes a reproducible stream of edits.
type Workload struct {
	Name       string
	Operations int
	Seed       int64
	// Locality is the probability that an edit lands next to the
	// previous one instead of at a random position.
	Locality float64
	// InsertShare is the fraction of edits that insert.
	InsertShare float64
	// Initial is the length of the text before the first edit.
	Initial int
}

// Workloads returns the standard workloads sized by s.
func Workloads(s config.BenchSettings) []Workload {
	return []Workload{
		{Name: "typing", Operations: s.Operations, Seed: s.Seed, Locality: 1, InsertShare: 0.9, Initial: 4 << 10},
		{Name: "clustered", Operations: s.Operations, Seed: s.Seed, Locality: s.Locality, InsertShare: 0.6, Initial: 64 << 10},
		{Name: "scattered", Operations: s.Operations, Seed: s.Seed, Locality: 0, InsertShare: 0.6, Initial: 64 << 10},
	}
}

// Result is the outcome of one workload.
type Result struct {
	Workload   string
	Operations int
	FinalLen   int
	Gap        time.Duration
	Slice      time.Duration
}

// Speedup returns how many times faster the gap buffer was.
func (r Result) Speedup() float64 {
	if r.Gap <= 0 {
		return 0
	}
	return float64(r.Slice) / float64(r.Gap)
}

type opKind uint8

const (
	opInsert opKind = iota
	opErase
	opSet
)

type op struct {
	kind opKind
	pos  int
	// end of an erase; the runes of an insert or set.
	end   int
	runes []rune
}

// ops generates the workload's edits. Positions are valid for the length
// the text has when the edit is applied.
func (w Workload) ops() []op {
	rng := rand.New(rand.NewSource(w.Seed))
	ops := make([]op, 0, w.Operations)
	n, pos := w.Initial, w.Initial/2

	for range w.Operations {
		if rng.Float64() < w.Locality {
			pos += rng.Intn(13) - 4
		} else {
			pos = rng.Intn(n + 1)
		}
		pos = min(max(pos, 0), n)

		switch x := rng.Float64(); {
		case x < w.InsertShare || n == 0:
			rs := make([]rune, 1+rng.Intn(8))
			for i := range rs {
				rs[i] = rune('a' + rng.Intn(26))
			}
			ops = append(ops, op{kind: opInsert, pos: pos, runes: rs})
			n += len(rs)
			pos += len(rs)
		case x < w.InsertShare+(1-w.InsertShare)*0.8:
			pos = min(pos, n-1)
			end := min(n, pos+1+rng.Intn(4))
			ops = append(ops, op{kind: opErase, pos: pos, end: end})
			n -= end - pos
		default:
			pos = min(pos, n-1)
			ops = append(ops, op{kind: opSet, pos: pos, runes: []rune{rune('A' + rng.Intn(26))}})
		}
	}
	return ops
}

func initial(n int) []rune {
	rs := make([]rune, n)
	for i := range rs {
		rs[i] = rune('a' + i%26)
		if i%64 == 63 {
			rs[i] = '\n'
		}
	}
	return rs
}

// checkEvery is how many edits run between context checks.
const checkEvery = 1024

// Run applies w to a gap buffer configured by s and to a slice, timing
// each, and verifies they agree.
func Run(ctx context.Context, w Workload, s config.BufferSettings) (Result, error) {
	ops := w.ops()
	base := initial(w.Initial)

	var opts []gap.Option
	if s.GrowIncrement > 0 {
		opts = append(opts, gap.WithGrowIncrement(s.GrowIncrement))
	}
	var alloc gap.Allocator[rune]
	if s.Pooled {
		alloc = gap.NewPoolAllocator[rune]()
	}

	buf := gap.NewWithAllocator(alloc, opts...)
	buf.InsertSliceBefore(buf.End(), base)
	start := time.Now()
	for i, o := range ops {
		if i%checkEvery == 0 {
			if err := ctx.Err(); err != nil {
				return Result{}, err
			}
		}
		switch o.kind {
		case opInsert:
			buf.InsertSliceBefore(buf.IteratorAt(o.pos), o.runes)
		case opErase:
			buf.Erase(buf.IteratorAt(o.pos), buf.IteratorAt(o.end))
		case opSet:
			buf.Set(o.pos, o.runes[0])
		}
	}
	gapTime := time.Since(start)

	model := slices.Clone(base)
	start = time.Now()
	for i, o := range ops {
		if i%checkEvery == 0 {
			if err := ctx.Err(); err != nil {
				return Result{}, err
			}
		}
		switch o.kind {
		case opInsert:
			model = slices.Insert(model, o.pos, o.runes...)
		case opErase:
			model = slices.Delete(model, o.pos, o.end)
		case opSet:
			model[o.pos] = o.runes[0]
		}
	}
	sliceTime := time.Since(start)

	if !gap.EqualSlice(buf, model) {
		return Result{}, fmt.Errorf("%w: workload %s (len %d vs %d)", ErrMismatch, w.Name, buf.Len(), len(model))
	}
	return Result{
		Workload:   w.Name,
		Operations: len(ops),
		FinalLen:   buf.Len(),
		Gap:        gapTime,
		Slice:      sliceTime,
	}, nil
}
