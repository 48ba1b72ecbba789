// Package app provides the core application service for Wails bindings.
package app

import (
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"go.aimuz.me/vimualizer/config"
	"go.aimuz.me/vimualizer/internal/types"
	"go.aimuz.me/vimualizer/tap"
	"go.aimuz.me/vimualizer/visualizer"

	"github.com/wailsapp/wails/v3/pkg/application"
)

// hudMargin is the gap between the HUD and the screen edge, in pixels.
const hudMargin = 24

// Service provides application functionality bound to Wails.
// It wires the key visualizer to the windows and the saved settings.
type Service struct {
	cfg  *config.Config
	core *visualizer.Core

	// UI references - set via Init
	app      *application.App
	hud      application.Window
	settings application.Window

	// mu guards cfg writes and tapErr; bindings and tray run concurrently.
	mu          sync.Mutex
	tapErr      error
	unsubscribe func()

	// Version info (set by caller)
	version string
}

// New creates a new Service. Call Init() after Wails app is created.
func New(version string, cfg *config.Config) *Service {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Service{version: version, cfg: cfg}
}

// GetVersion returns the application version.
func (s *Service) GetVersion() string {
	return s.version
}

// Init initializes the service with app and window references.
// Must be called after Wails application is created.
func (s *Service) Init(app *application.App, hud, settings application.Window) {
	s.app = app
	s.hud = hud
	s.settings = settings

	s.setupCore(tap.New(), visualizer.DispatchFunc(application.InvokeAsync))
	s.placeHUD(s.cfg.HUDPosition)

	if !tap.AccessibilityTrusted(true) {
		slog.Warn("accessibility permission missing - grant it and use retry or restart")
	}
	s.startTap()
}

// setupCore builds the visualizer. ui must run work on the main thread.
func (s *Service) setupCore(t tap.Tap, ui visualizer.Dispatcher) {
	s.core = visualizer.New(t, ui,
		visualizer.WithMasterEnabled(s.cfg.MasterEnabled),
		visualizer.WithHUDVisible(s.cfg.HUDEnabled),
		visualizer.WithSettingsHandler(s.ShowSettings),
	)
	s.unsubscribe = s.core.Subscribe(s.onState)
}

func (s *Service) startTap() {
	err := s.core.Start()

	s.mu.Lock()
	s.tapErr = err
	s.mu.Unlock()

	s.emit(EventTapStatus, s.GetTapStatus())
}

// Shutdown cleans up resources.
func (s *Service) Shutdown() {
	if s.unsubscribe != nil {
		s.unsubscribe()
	}
	if s.core != nil {
		if err := s.core.Stop(); err != nil {
			slog.Error("stop key tap", "error", err)
		}
	}
}

// emit is a safe wrapper around app.Event.Emit
func (s *Service) emit(name string, data any) {
	if s.app != nil {
		s.app.Event.Emit(name, data)
	}
}

// onState runs on the main thread for every state change.
func (s *Service) onState(state visualizer.State) {
	s.emit(EventHUDState, state)

	if s.hud == nil {
		return
	}
	if state.HUDVisible {
		s.hud.Show()
	} else {
		s.hud.Hide()
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Visualizer State
// ─────────────────────────────────────────────────────────────────────────────

// GetState returns the current HUD state.
func (s *Service) GetState() visualizer.State {
	return s.core.Snapshot()
}

// SetMasterEnabled turns key recording on or off and saves the choice.
func (s *Service) SetMasterEnabled(enabled bool) error {
	s.core.SetMasterEnabled(enabled)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.cfg.SetMasterEnabled(enabled); err != nil {
		return fmt.Errorf("save master enabled: %w", err)
	}
	return nil
}

// SetHUDVisible shows or hides the HUD and saves the choice.
func (s *Service) SetHUDVisible(visible bool) error {
	s.core.SetHUDVisible(visible)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.cfg.SetHUDEnabled(visible); err != nil {
		return fmt.Errorf("save hud enabled: %w", err)
	}
	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Settings
// ─────────────────────────────────────────────────────────────────────────────

// GetSettings returns the saved settings.
func (s *Service) GetSettings() types.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return types.Settings{
		MasterEnabled: s.cfg.MasterEnabled,
		HUDEnabled:    s.cfg.HUDEnabled,
		HUDPosition:   s.cfg.HUDPosition,
		Positions:     slices.Clone(config.Positions),
	}
}

// GetHUDPosition returns the saved HUD position.
func (s *Service) GetHUDPosition() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg.HUDPosition
}

// SetHUDPosition moves the HUD and saves the position.
func (s *Service) SetHUDPosition(position string) error {
	s.mu.Lock()
	err := s.cfg.SetHUDPosition(position)
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.placeHUD(position)
	return nil
}

// ShowSettings brings the settings window to the front.
func (s *Service) ShowSettings() {
	s.emit(EventOpenSettings, nil)
	if s.settings != nil {
		s.settings.Show()
		s.settings.Focus()
	}
}

func (s *Service) placeHUD(position string) {
	if s.hud == nil {
		return
	}

	if position == config.PositionCenter {
		s.hud.Center()
		return
	}

	screen, err := s.hud.GetScreen()
	if err != nil {
		slog.Warn("get hud screen", "error", err)
		s.hud.Center()
		return
	}
	width, _ := s.hud.Size()
	area := screen.WorkArea
	s.hud.SetPosition(area.X+area.Width-width-hudMargin, area.Y+hudMargin)
}

// ─────────────────────────────────────────────────────────────────────────────
// Key Tap & Permissions
// ─────────────────────────────────────────────────────────────────────────────

// GetTapStatus reports whether keys are being captured.
func (s *Service) GetTapStatus() types.TapStatus {
	status := types.TapStatus{
		Status:  s.core.Status().String(),
		Phase:   string(s.core.Phase()),
		Trusted: tap.AccessibilityTrusted(false),
	}

	s.mu.Lock()
	if s.tapErr != nil {
		status.Error = s.tapErr.Error()
	}
	s.mu.Unlock()

	return status
}

// RetryTap registers the key tap again after a failed start, typically
// once accessibility access was granted.
func (s *Service) RetryTap() types.TapStatus {
	if s.core.Status() != visualizer.StatusRegistered {
		s.startTap()
	}
	return s.GetTapStatus()
}

// GetAccessibilityPermission returns whether accessibility is enabled.
func (s *Service) GetAccessibilityPermission() bool {
	return tap.AccessibilityTrusted(false)
}

// RequestAccessibilityPermission shows the system prompt if access is missing.
func (s *Service) RequestAccessibilityPermission() bool {
	granted := tap.AccessibilityTrusted(true)
	s.emit(EventAccessibilityPerm, granted)
	if granted {
		slog.Info("accessibility permission granted")
	} else {
		slog.Warn("accessibility permission denied")
	}
	return granted
}
