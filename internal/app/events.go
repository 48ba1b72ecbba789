// Package app provides the core application service for Wails bindings.
package app

// Event names for frontend communication.
const (
	EventHUDState          = "hud-state"
	EventOpenSettings      = "open-settings"
	EventTapStatus         = "tap-status"
	EventAccessibilityPerm = "accessibility-permission"
)
