package model

import "math"

// Default durations for a fresh Pomodoro cycle.
const (
	DefaultWorkMinutes  = 25
	DefaultBreakMinutes = 5
)

// MaxMinutes is the longest interval whose length in seconds still fits in an int.
const MaxMinutes = math.MaxInt / 60

// Settings holds the user-editable interval lengths in whole minutes.
type Settings struct {
	WorkMinutes  int
	BreakMinutes int
}

// DefaultSettings returns the classic 25/5 cycle.
func DefaultSettings() Settings {
	return Settings{
		WorkMinutes:  DefaultWorkMinutes,
		BreakMinutes: DefaultBreakMinutes,
	}
}

// WorkSeconds returns the work interval in seconds.
func (settings Settings) WorkSeconds() int {
	return settings.WorkMinutes * 60
}

// BreakSeconds returns the break interval in seconds.
func (settings Settings) BreakSeconds() int {
	return settings.BreakMinutes * 60
}
