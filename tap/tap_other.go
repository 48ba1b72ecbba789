//go:build !darwin

package tap

import (
	"log/slog"
	"sync"
	"sync/atomic"

	hook "github.com/robotn/gohook"
)

// hookTap observes keys through libuiohook. libuiohook cannot stop an event
// from reaching other applications, so Consume decisions are only counted.
type hookTap struct {
	mu      sync.Mutex
	running bool
	stop    chan struct{}
	done    chan struct{}

	unvetoed atomic.Uint64
}

func newPlatformTap() Tap {
	return &hookTap{}
}

func (t *hookTap) Start(h Handler) error {
	if h == nil {
		return errNilHandler
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.running {
		return ErrRunning
	}

	events := hook.Start()
	if events == nil {
		return ErrTapUnavailable
	}

	t.stop = make(chan struct{})
	t.done = make(chan struct{})
	t.running = true
	go t.run(events, h)
	return nil
}

// run is the delivery goroutine.
func (t *hookTap) run(events chan hook.Event, h Handler) {
	defer close(t.done)
	for {
		select {
		case <-t.stop:
			return
		case e, ok := <-events:
			if !ok {
				return
			}
			ev, ok := keyEventFromHook(e)
			if !ok {
				continue
			}
			if h(ev) == Consume {
				t.unvetoed.Add(1)
			}
		}
	}
}

func (t *hookTap) Stop() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.running {
		return nil
	}

	close(t.stop)
	hook.End()
	<-t.done
	t.running = false

	if n := t.unvetoed.Load(); n > 0 {
		slog.Warn("consumed events reached other applications", "count", n)
	}
	return nil
}

// keyEventFromHook converts a libuiohook press. gohook reports a physical
// press as KeyHold; its KeyDown is the "typed" event and is skipped.
func keyEventFromHook(e hook.Event) (KeyEvent, bool) {
	if e.Kind != hook.KeyHold {
		return KeyEvent{}, false
	}
	ev := KeyEvent{
		Code:      darwinCodeFromUiohook(e.Keycode),
		Modifiers: modifiersFromUiohookMask(e.Mask),
		Kind:      KindKeyDown,
	}
	if uioModifierKeys[e.Keycode] {
		ev.Kind = KindFlagsChanged
	}
	return ev, true
}

// AccessibilityTrusted always reports true: libuiohook needs no grant here.
func AccessibilityTrusted(prompt bool) bool {
	return true
}
