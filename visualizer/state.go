package visualizer

// DefaultMode is the mode label shown by the HUD.
const DefaultMode = "NORMAL"

// State is a read-only snapshot of the visualization state.
type State struct {
	History       []string `json:"history"`
	Mode          string   `json:"mode"`
	Action        string   `json:"action"`
	MasterEnabled bool     `json:"masterEnabled"`
	HUDVisible    bool     `json:"hudVisible"`
}

// Observer receives a snapshot after every state change. Observers run on
// the dispatcher's context and should return quickly.
type Observer func(State)

// Status tracks the tap registration.
type Status int32

const (
	StatusUninitialized Status = iota
	StatusRegistered
	StatusRegistrationFailed
)

func (s Status) String() string {
	switch s {
	case StatusUninitialized:
		return "uninitialized"
	case StatusRegistered:
		return "registered"
	case StatusRegistrationFailed:
		return "registration-failed"
	default:
		return "unknown"
	}
}

// Phase is the capture phase derived from Status and the enabled flag.
type Phase string

const (
	PhaseUninitialized      Phase = "uninitialized"
	PhaseActive             Phase = "active"
	PhaseDisabled           Phase = "disabled"
	PhaseRegistrationFailed Phase = "registration-failed"
)
