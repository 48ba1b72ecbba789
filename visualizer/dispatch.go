package visualizer

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// Dispatcher schedules work on the context that owns the visualization
// state. Dispatch must not block and must not wait for fn to run.
type Dispatcher interface {
	Dispatch(fn func())
}

// DispatchFunc adapts a function, such as a GUI toolkit's main-thread
// scheduler, to Dispatcher.
type DispatchFunc func(fn func())

// Dispatch calls f(fn).
func (f DispatchFunc) Dispatch(fn func()) {
	f(fn)
}

// Loop is a Dispatcher backed by a single goroutine. Work runs in FIFO
// order. When the queue is full new work is dropped rather than blocking
// the caller.
type Loop struct {
	queue    chan func()
	dropped  atomic.Uint64
	reported uint64
}

// NewLoop creates a loop with room for size pending functions.
func NewLoop(size int) *Loop {
	if size < 1 {
		size = 1
	}
	return &Loop{queue: make(chan func(), size)}
}

// Dispatch queues fn without blocking.
func (l *Loop) Dispatch(fn func()) {
	select {
	case l.queue <- fn:
	default:
		l.dropped.Add(1)
	}
}

// Run executes queued work until ctx is done.
func (l *Loop) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case fn := <-l.queue:
			fn()
			l.reportDrops()
		}
	}
}

// Dropped returns how many functions were discarded because the queue was full.
func (l *Loop) Dropped() uint64 {
	return l.dropped.Load()
}

func (l *Loop) reportDrops() {
	d := l.dropped.Load()
	if d == l.reported {
		return
	}
	slog.Warn("dispatch queue full, updates dropped", "dropped", d-l.reported, "total", d)
	l.reported = d
}
