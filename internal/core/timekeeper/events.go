package timekeeper

import "time"

// Phase is the interval the countdown belongs to.
type Phase string

const (
	PhaseIdle    Phase = "idle"
	PhaseWorking Phase = "working"
	PhaseBreak   Phase = "on_break"
)

// Status is the label shown for a snapshot.
type Status string

const (
	StatusReady      Status = "ready"
	StatusWorking    Status = "working"
	StatusBreakReady Status = "break_ready"
	StatusOnBreak    Status = "on_break"
	StatusWorkReady  Status = "work_ready"
)

// EventType defines the type of TimeKeeper event.
type EventType string

const (
	EventStateChange     EventType = "state_change"
	EventTick            EventType = "tick"
	EventPhaseComplete   EventType = "phase_complete"
	EventSettingsChanged EventType = "settings_changed"
)

// Event represents a TimeKeeper update for observers.
type Event struct {
	Type     EventType
	Snapshot Snapshot
	// Message is set for EventPhaseComplete and names the interval that ended.
	Message string
	At      time.Time
}
