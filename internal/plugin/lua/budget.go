package lua

import (
	"context"
	"sync"
	"sync/atomic"
)

// budget is a context whose Done channel closes after a fixed number of
// polls. The gopher-lua VM polls Done once per instruction while a context
// is set, which turns the poll count into an instruction count.
type budget struct {
	context.Context

	remaining atomic.Int64
	spent     chan struct{}
	once      sync.Once
}

func newBudget(parent context.Context, limit int64) *budget {
	b := &budget{Context: parent, spent: make(chan struct{})}
	b.remaining.Store(limit)
	return b
}

func (b *budget) Done() <-chan struct{} {
	if b.remaining.Add(-1) < 0 {
		b.once.Do(func() { close(b.spent) })
		return b.spent
	}
	return b.Context.Done()
}

func (b *budget) Err() error {
	if b.exhausted() {
		return ErrInstructionLimit
	}
	return b.Context.Err()
}

func (b *budget) exhausted() bool {
	return b.remaining.Load() < 0
}
