package timekeeper

import (
	"fmt"

	"timerp/internal/core/model"
)

// Snapshot is a read-only copy of the timer state.
type Snapshot struct {
	Phase            Phase
	RemainingSeconds int
	Running          bool
	// Completed is true at a break-ready or work-ready boundary.
	Completed bool
	Settings  model.Settings
}

// Controls lists which commands the UI should offer for a snapshot.
type Controls struct {
	StartWork   bool
	StartBreak  bool
	PauseResume bool
	Reset       bool
	Settings    bool
	// PauseLabel is "Pause" while counting down and "Resume" while paused.
	PauseLabel string
}

// Active reports whether a phase is mid-countdown, running or paused.
func (snapshot Snapshot) Active() bool {
	return snapshot.Phase != PhaseIdle && !snapshot.Completed
}

// Status projects the snapshot onto the phase label.
func (snapshot Snapshot) Status() Status {
	switch {
	case snapshot.Phase == PhaseWorking && snapshot.Completed:
		return StatusBreakReady
	case snapshot.Phase == PhaseBreak && snapshot.Completed:
		return StatusWorkReady
	case snapshot.Phase == PhaseWorking:
		return StatusWorking
	case snapshot.Phase == PhaseBreak:
		return StatusOnBreak
	default:
		return StatusReady
	}
}

// Controls projects the snapshot onto button enablement.
func (snapshot Snapshot) Controls() Controls {
	controls := Controls{
		StartWork:   !snapshot.Running && (snapshot.Phase == PhaseIdle || snapshot.Status() == StatusWorkReady),
		StartBreak:  !snapshot.Running && snapshot.Status() == StatusBreakReady,
		PauseResume: snapshot.Active(),
		Reset:       snapshot.Phase != PhaseIdle,
		Settings:    !snapshot.Running,
		PauseLabel:  "Pause",
	}
	if snapshot.Active() && !snapshot.Running {
		controls.PauseLabel = "Resume"
	}
	return controls
}

// Display renders the remaining time as MM:SS.
func (snapshot Snapshot) Display() string {
	return FormatRemaining(snapshot.RemainingSeconds)
}

// FormatRemaining renders seconds as zero-padded MM:SS. Negative input renders as 00:00.
func FormatRemaining(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
