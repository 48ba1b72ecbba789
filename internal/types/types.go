// Package types provides shared type definitions for the application.
package types

// TapStatus reports the state of the global key tap to the frontend.
type TapStatus struct {
	Status  string `json:"status"`  // "uninitialized", "registered", "registration-failed"
	Phase   string `json:"phase"`   // "active", "disabled", or the status when not registered
	Trusted bool   `json:"trusted"` // Accessibility access granted
	Error   string `json:"error,omitempty"`
}

// Settings is the settings panel view of the configuration.
type Settings struct {
	MasterEnabled bool     `json:"masterEnabled"`
	HUDEnabled    bool     `json:"hudEnabled"`
	HUDPosition   string   `json:"hudPosition"`
	Positions     []string `json:"positions"`
}
