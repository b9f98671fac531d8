// Package settings holds the validated work and break durations.
package settings

import (
	"strconv"
	"strings"
	"sync"

	"timerp/internal/core/model"
)

// Store keeps the current Settings. The zero value is not usable; call New.
type Store struct {
	mu      sync.RWMutex
	current model.Settings
}

// New creates a store seeded with initial, which must itself be valid.
func New(initial model.Settings) (*Store, error) {
	if err := Validate(initial); err != nil {
		return nil, err
	}
	return &Store{current: initial}, nil
}

// Get returns a copy of the current settings.
func (store *Store) Get() model.Settings {
	store.mu.RLock()
	defer store.mu.RUnlock()
	return store.current
}

// Set validates and stores new durations. changed reports whether they differ from
// the previous values. On error the previous settings are kept.
func (store *Store) Set(workMinutes, breakMinutes int) (updated model.Settings, changed bool, err error) {
	candidate := model.Settings{WorkMinutes: workMinutes, BreakMinutes: breakMinutes}
	if err := Validate(candidate); err != nil {
		return store.Get(), false, err
	}

	store.mu.Lock()
	defer store.mu.Unlock()
	changed = store.current != candidate
	store.current = candidate
	return candidate, changed, nil
}

// SetText parses raw user input and applies it like Set.
func (store *Store) SetText(workText, breakText string) (model.Settings, bool, error) {
	workMinutes, err := parseMinutes(FieldWork, workText)
	if err != nil {
		return store.Get(), false, err
	}
	breakMinutes, err := parseMinutes(FieldBreak, breakText)
	if err != nil {
		return store.Get(), false, err
	}
	return store.Set(workMinutes, breakMinutes)
}

// Validate checks that both durations are between 1 and model.MaxMinutes.
func Validate(candidate model.Settings) error {
	if err := validateMinutes(FieldWork, candidate.WorkMinutes); err != nil {
		return err
	}
	return validateMinutes(FieldBreak, candidate.BreakMinutes)
}

func validateMinutes(field string, minutes int) error {
	switch {
	case minutes < 1:
		return &ValidationError{Field: field, Input: strconv.Itoa(minutes)}
	case minutes > model.MaxMinutes:
		return &ValidationError{Field: field, Input: strconv.Itoa(minutes), TooLarge: true}
	}
	return nil
}

func parseMinutes(field, value string) (int, error) {
	trimmed := strings.TrimSpace(value)
	parsed, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, &ValidationError{Field: field, Input: value, Err: err}
	}
	return parsed, nil
}
