package visualizer

import (
	"sync"

	"go.aimuz.me/vimualizer/tap"
)

// fakeTap records the registered handler so tests can feed events.
type fakeTap struct {
	mu       sync.Mutex
	handler  tap.Handler
	startErr error
	starts   int
	stops    int
}

func (f *fakeTap) Start(h tap.Handler) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.starts++
	if f.startErr != nil {
		return f.startErr
	}
	f.handler = h
	return nil
}

func (f *fakeTap) Stop() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stops++
	f.handler = nil
	return nil
}

func (f *fakeTap) send(ev tap.KeyEvent) tap.Decision {
	f.mu.Lock()
	h := f.handler
	f.mu.Unlock()
	if h == nil {
		return tap.PassThrough
	}
	return h(ev)
}

// queue is a Dispatcher that holds work until drained, standing in for a
// UI thread that runs later.
type queue struct {
	mu    sync.Mutex
	funcs []func()
}

func (q *queue) Dispatch(fn func()) {
	q.mu.Lock()
	q.funcs = append(q.funcs, fn)
	q.mu.Unlock()
}

func (q *queue) pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.funcs)
}

func (q *queue) drain() {
	for {
		q.mu.Lock()
		if len(q.funcs) == 0 {
			q.mu.Unlock()
			return
		}
		fn := q.funcs[0]
		q.funcs = q.funcs[1:]
		q.mu.Unlock()
		fn()
	}
}
