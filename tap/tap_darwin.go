//go:build darwin

package tap

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework CoreGraphics -framework CoreFoundation -framework ApplicationServices

#include <stdint.h>
#include <CoreGraphics/CoreGraphics.h>
#include <CoreFoundation/CoreFoundation.h>
#include <ApplicationServices/ApplicationServices.h>

extern CGEventRef goTapCallback(CGEventTapProxy proxy, CGEventType type, CGEventRef event, void *refcon);

static CFMachPortRef createKeyTap(uintptr_t handle) {
    CGEventMask mask = CGEventMaskBit(kCGEventKeyDown) | CGEventMaskBit(kCGEventFlagsChanged);
    return CGEventTapCreate(
        kCGSessionEventTap,
        kCGHeadInsertEventTap,
        kCGEventTapOptionDefault,
        mask,
        goTapCallback,
        (void *)handle
    );
}

static CFRunLoopSourceRef attachKeyTap(CFMachPortRef tap) {
    CFRunLoopSourceRef source = CFMachPortCreateRunLoopSource(kCFAllocatorDefault, tap, 0);
    CFRunLoopAddSource(CFRunLoopGetCurrent(), source, kCFRunLoopCommonModes);
    CGEventTapEnable(tap, true);
    return source;
}

static void releaseKeyTap(CFMachPortRef tap, CFRunLoopSourceRef source) {
    CGEventTapEnable(tap, false);
    CFRunLoopRemoveSource(CFRunLoopGetCurrent(), source, kCFRunLoopCommonModes);
    CFMachPortInvalidate(tap);
    CFRelease(source);
    CFRelease(tap);
}

static int accessibilityTrusted(int prompt) {
    const void *keys[] = { kAXTrustedCheckOptionPrompt };
    const void *values[] = { prompt ? kCFBooleanTrue : kCFBooleanFalse };
    CFDictionaryRef opts = CFDictionaryCreate(
        kCFAllocatorDefault, keys, values, 1,
        &kCFTypeDictionaryKeyCallBacks, &kCFTypeDictionaryValueCallBacks);
    Boolean trusted = AXIsProcessTrustedWithOptions(opts);
    CFRelease(opts);
    return trusted ? 1 : 0;
}
*/
import "C"

import (
	"runtime"
	"runtime/cgo"
	"sync"
	"unsafe"
)

// darwinTap is a CGEventTap running on its own locked OS thread.
type darwinTap struct {
	mu      sync.Mutex
	running bool
	handle  cgo.Handle
	done    chan struct{}

	// Written by the run goroutine before Start returns.
	handler Handler
	port    C.CFMachPortRef
	loop    C.CFRunLoopRef
}

func newPlatformTap() Tap {
	return &darwinTap{}
}

func (t *darwinTap) Start(h Handler) error {
	if h == nil {
		return errNilHandler
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.running {
		return ErrRunning
	}

	t.handler = h
	t.handle = cgo.NewHandle(t)
	t.done = make(chan struct{})

	ready := make(chan error, 1)
	go t.run(ready)
	if err := <-ready; err != nil {
		<-t.done
		t.handle.Delete()
		return err
	}

	t.running = true
	return nil
}

// run owns the tap for its whole life. The run loop it spins is the
// delivery context for every callback.
func (t *darwinTap) run(ready chan<- error) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	defer close(t.done)

	port := C.createKeyTap(C.uintptr_t(t.handle))
	if port == C.CFMachPortRef(0) {
		ready <- ErrTapUnavailable
		return
	}

	t.port = port
	t.loop = C.CFRunLoopGetCurrent()
	source := C.attachKeyTap(port)
	ready <- nil

	C.CFRunLoopRun()
	C.releaseKeyTap(port, source)
}

func (t *darwinTap) Stop() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.running {
		return nil
	}

	C.CFRunLoopStop(t.loop)
	<-t.done
	t.handle.Delete()
	t.running = false
	return nil
}

//export goTapCallback
func goTapCallback(proxy C.CGEventTapProxy, eventType C.CGEventType, event C.CGEventRef, refcon unsafe.Pointer) C.CGEventRef {
	t, ok := cgo.Handle(uintptr(refcon)).Value().(*darwinTap)
	if !ok {
		return event
	}

	var kind Kind
	switch eventType {
	case C.kCGEventTapDisabledByTimeout, C.kCGEventTapDisabledByUserInput:
		// The system turns slow taps off; turn it back on.
		C.CGEventTapEnable(t.port, true)
		return event
	case C.kCGEventKeyDown:
		kind = KindKeyDown
	case C.kCGEventFlagsChanged:
		kind = KindFlagsChanged
	default:
		return event
	}

	ev := KeyEvent{
		Code:      int64(C.CGEventGetIntegerValueField(event, C.kCGKeyboardEventKeycode)),
		Modifiers: modifiersFromCGFlags(uint64(C.CGEventGetFlags(event))),
		Kind:      kind,
	}
	if t.handler(ev) == Consume {
		return C.CGEventRef(0)
	}
	return event
}

// AccessibilityTrusted reports whether the process may create an event tap.
// With prompt set, macOS shows its permission dialog when access is missing.
func AccessibilityTrusted(prompt bool) bool {
	p := C.int(0)
	if prompt {
		p = 1
	}
	return C.accessibilityTrusted(p) == 1
}
