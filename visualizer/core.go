// Package visualizer turns intercepted key events into HUD state.
//
// A Core is registered with a tap.Tap. Its handler runs on the tap's
// delivery goroutine and only decides pass-through or consume; every state
// change is handed to a Dispatcher that owns the state. Observers subscribe
// to snapshots instead of reading the state directly.
package visualizer

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"go.aimuz.me/vimualizer/keymap"
	"go.aimuz.me/vimualizer/tap"
)

// ErrAlreadyStarted is returned by Start when the tap is already registered.
var ErrAlreadyStarted = errors.New("visualizer: tap already registered")

// settingsKey opens the settings when pressed with exactly command+option.
const settingsKey = "p"

// Core owns the key tap and the visualization state.
type Core struct {
	tap        tap.Tap
	ui         Dispatcher
	onSettings func()

	// enabled is the only field the tap handler reads.
	enabled atomic.Bool
	status  atomic.Int32

	startMu sync.Mutex

	mu         sync.RWMutex
	history    *History
	mode       string
	action     string
	hudVisible bool
	observers  map[uuid.UUID]Observer
}

// Option configures a Core.
type Option func(*Core)

// WithSettingsHandler sets the function run on the dispatcher when the
// settings hotkey is pressed.
func WithSettingsHandler(fn func()) Option {
	return func(c *Core) { c.onSettings = fn }
}

// WithMasterEnabled sets the initial enabled flag. The default is true.
func WithMasterEnabled(enabled bool) Option {
	return func(c *Core) { c.enabled.Store(enabled) }
}

// WithHUDVisible sets the initial HUD visibility. The default is true.
func WithHUDVisible(visible bool) Option {
	return func(c *Core) { c.hudVisible = visible }
}

// New creates a Core. Nothing is registered until Start.
func New(t tap.Tap, ui Dispatcher, opts ...Option) *Core {
	c := &Core{
		tap:        t,
		ui:         ui,
		history:    NewHistory(HistoryLimit),
		mode:       DefaultMode,
		hudVisible: true,
		observers:  make(map[uuid.UUID]Observer),
	}
	c.enabled.Store(true)
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Start registers the key handler with the tap. A failed registration is
// logged and leaves the core inert; it is not retried. Start may be called
// again after a failure, for example once the user granted access.
func (c *Core) Start() error {
	c.startMu.Lock()
	defer c.startMu.Unlock()

	if c.Status() == StatusRegistered {
		return ErrAlreadyStarted
	}

	if err := c.tap.Start(c.HandleEvent); err != nil {
		if !errors.Is(err, tap.ErrTapUnavailable) {
			err = fmt.Errorf("%w: %w", tap.ErrTapUnavailable, err)
		}
		c.status.Store(int32(StatusRegistrationFailed))
		slog.Error("register key tap", "error", err)
		return fmt.Errorf("register key tap: %w", err)
	}

	c.status.Store(int32(StatusRegistered))
	slog.Info("key tap registered")
	return nil
}

// Stop unregisters the tap. Disabling the visualizer never calls this.
func (c *Core) Stop() error {
	c.startMu.Lock()
	defer c.startMu.Unlock()

	if c.Status() != StatusRegistered {
		return nil
	}
	c.status.Store(int32(StatusUninitialized))
	if err := c.tap.Stop(); err != nil {
		return fmt.Errorf("stop key tap: %w", err)
	}
	return nil
}

// Status returns the registration status.
func (c *Core) Status() Status {
	return Status(c.status.Load())
}

// Phase returns the capture phase.
func (c *Core) Phase() Phase {
	switch c.Status() {
	case StatusRegistered:
		if c.enabled.Load() {
			return PhaseActive
		}
		return PhaseDisabled
	case StatusRegistrationFailed:
		return PhaseRegistrationFailed
	default:
		return PhaseUninitialized
	}
}

// HandleEvent is the tap handler. It runs on the delivery goroutine, does
// constant work, and never touches the state directly.
func (c *Core) HandleEvent(ev tap.KeyEvent) tap.Decision {
	if ev.Kind != tap.KindKeyDown {
		return tap.PassThrough
	}

	if isSettingsHotkey(ev) {
		c.ui.Dispatch(c.openSettings)
		return tap.Consume
	}

	// Fail open: a disabled visualizer never alters typing.
	if !c.enabled.Load() {
		return tap.PassThrough
	}

	key := keymap.Translate(ev.Code)
	c.ui.Dispatch(func() { c.appendHistory(key) })
	return tap.PassThrough
}

func isSettingsHotkey(ev tap.KeyEvent) bool {
	return ev.Modifiers == tap.ModCommand|tap.ModOption &&
		keymap.Translate(ev.Code) == settingsKey
}

func (c *Core) openSettings() {
	slog.Debug("settings hotkey pressed")
	if c.onSettings != nil {
		c.onSettings()
	}
}

// appendHistory runs on the dispatcher.
func (c *Core) appendHistory(key string) {
	c.mu.Lock()
	c.history.Append(key)
	c.mu.Unlock()
	c.publish()
}

// SetMasterEnabled turns key recording on or off. The tap handler sees the
// new value from its next event on.
func (c *Core) SetMasterEnabled(enabled bool) {
	c.enabled.Store(enabled)
	c.ui.Dispatch(c.publish)
}

// SetHUDVisible records whether the HUD should be drawn.
func (c *Core) SetHUDVisible(visible bool) {
	c.ui.Dispatch(func() {
		c.mu.Lock()
		c.hudVisible = visible
		c.mu.Unlock()
		c.publish()
	})
}

// Snapshot returns a copy of the current state. Safe from any goroutine.
func (c *Core) Snapshot() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snapshotLocked()
}

func (c *Core) snapshotLocked() State {
	return State{
		History:       c.history.Snapshot(),
		Mode:          c.mode,
		Action:        c.action,
		MasterEnabled: c.enabled.Load(),
		HUDVisible:    c.hudVisible,
	}
}

// Subscribe registers obs for state changes and returns a function that
// removes it.
func (c *Core) Subscribe(obs Observer) (cancel func()) {
	id := uuid.New()

	c.mu.Lock()
	c.observers[id] = obs
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.observers, id)
		c.mu.Unlock()
	}
}

// publish notifies observers with a fresh snapshot. It runs on the dispatcher.
func (c *Core) publish() {
	c.mu.RLock()
	state := c.snapshotLocked()
	observers := make([]Observer, 0, len(c.observers))
	for _, obs := range c.observers {
		observers = append(observers, obs)
	}
	c.mu.RUnlock()

	for _, obs := range observers {
		obs(state)
	}
}
