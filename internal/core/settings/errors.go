package settings

import (
	"fmt"

	"timerp/internal/core/model"
)

// Field names reported by ValidationError.
const (
	FieldWork  = "work_minutes"
	FieldBreak = "break_minutes"
)

// ValidationError reports a duration that is not a positive whole number of minutes.
type ValidationError struct {
	Field    string
	Input    string
	TooLarge bool
	Err      error
}

func (err *ValidationError) Error() string {
	if err.Err != nil {
		return fmt.Sprintf("%s: %q is not a whole number of minutes", err.Field, err.Input)
	}
	if err.TooLarge {
		return fmt.Sprintf("%s: %s exceeds %d minutes", err.Field, err.Input, model.MaxMinutes)
	}
	return fmt.Sprintf("%s: %s must be at least 1 minute", err.Field, err.Input)
}

func (err *ValidationError) Unwrap() error {
	return err.Err
}

// Message returns the text shown to the user in the error dialog.
func (err *ValidationError) Message() string {
	if err.Err != nil {
		return "Please enter the time as a whole number."
	}
	if err.TooLarge {
		return "That time is too long. Please enter a smaller number of minutes."
	}
	return "Times must be whole numbers of at least 1 minute."
}
