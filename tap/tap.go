// Package tap registers the process as a system-wide key event observer.
//
// A Tap delivers every key-down and modifier-change event to a Handler on
// its own goroutine. The Handler decides whether the event continues to
// the foreground application.
package tap

import (
	"errors"
	"strings"
)

// ErrTapUnavailable is returned when the platform refuses the registration,
// usually because accessibility or input-monitoring access was not granted.
var ErrTapUnavailable = errors.New("tap: event tap unavailable")

// ErrRunning is returned when starting a tap that is already running.
var ErrRunning = errors.New("tap: already running")

// errNilHandler is returned by Start when no handler is given.
var errNilHandler = errors.New("tap: nil handler")

// CodeUnknown is reported for keys that have no macOS key code equivalent.
const CodeUnknown int64 = -1

// Kind is the class of an intercepted event.
type Kind uint8

const (
	KindKeyDown Kind = iota + 1
	KindFlagsChanged
)

func (k Kind) String() string {
	switch k {
	case KindKeyDown:
		return "key-down"
	case KindFlagsChanged:
		return "flags-changed"
	default:
		return "unknown"
	}
}

// Modifiers is the set of modifier keys held during an event.
type Modifiers uint8

const (
	ModCommand Modifiers = 1 << iota
	ModOption
	ModControl
	ModShift
)

// Has reports whether every modifier in o is held.
func (m Modifiers) Has(o Modifiers) bool {
	return m&o == o
}

func (m Modifiers) String() string {
	if m == 0 {
		return "none"
	}
	var parts []string
	for _, mod := range []struct {
		bit  Modifiers
		name string
	}{
		{ModCommand, "cmd"},
		{ModOption, "opt"},
		{ModControl, "ctrl"},
		{ModShift, "shift"},
	} {
		if m&mod.bit != 0 {
			parts = append(parts, mod.name)
		}
	}
	return strings.Join(parts, "+")
}

// KeyEvent is a single intercepted keyboard event. Code uses the macOS
// virtual key-code scheme on every platform.
type KeyEvent struct {
	Code      int64
	Modifiers Modifiers
	Kind      Kind
}

// Decision tells the tap what to do with an event after the handler ran.
type Decision uint8

const (
	// PassThrough lets the event continue to its destination unchanged.
	PassThrough Decision = iota
	// Consume stops the event from reaching other applications.
	Consume
)

func (d Decision) String() string {
	if d == Consume {
		return "consume"
	}
	return "pass-through"
}

// Handler is invoked on the tap's delivery goroutine, once per event and in
// order. It must return quickly and never block.
type Handler func(KeyEvent) Decision

// Tap is a platform interception point.
type Tap interface {
	// Start registers h and begins delivering events. It returns
	// ErrTapUnavailable if the platform denies the registration.
	Start(h Handler) error

	// Stop unregisters the tap. Stopping a tap that is not running is a no-op.
	Stop() error
}

// New returns the interception point for the current platform.
func New() Tap {
	return newPlatformTap()
}
