// Package config provides configuration types and defaults for timerp.
package config

import (
	"fmt"

	"timerp/internal/core/model"
	"timerp/internal/core/settings"
)

// Config holds all configuration for timerp. It only seeds the initial state;
// the running timer never writes it back.
type Config struct {
	Timer       TimerConfig       `yaml:"timer" mapstructure:"timer"`
	Sound       SoundConfig       `yaml:"sound" mapstructure:"sound"`
	Notify      NotifyConfig      `yaml:"notify" mapstructure:"notify"`
	Log         LogConfig         `yaml:"log" mapstructure:"log"`
	LogRotation LogRotationConfig `yaml:"log_rotation" mapstructure:"log_rotation"`
}

// TimerConfig holds the initial interval lengths in minutes.
type TimerConfig struct {
	WorkMinutes  int `yaml:"work_minutes" mapstructure:"work_minutes"`
	BreakMinutes int `yaml:"break_minutes" mapstructure:"break_minutes"`
}

// SoundConfig controls the completion beeps.
type SoundConfig struct {
	Enabled bool    `yaml:"enabled" mapstructure:"enabled"`
	Volume  float64 `yaml:"volume" mapstructure:"volume"` // 0.0 - 1.0
}

// NotifyConfig controls notifications besides the in-window dialog.
type NotifyConfig struct {
	Desktop bool `yaml:"desktop" mapstructure:"desktop"` // Also send an OS notification
}

// LogConfig holds logger settings. An empty File logs to stderr.
type LogConfig struct {
	Level string `yaml:"level" mapstructure:"level"`
	File  string `yaml:"file" mapstructure:"file"`
}

// LogRotationConfig holds settings for log file rotation.
type LogRotationConfig struct {
	MaxSizeMB  int  `yaml:"max_size_mb" mapstructure:"max_size_mb"`
	MaxBackups int  `yaml:"max_backups" mapstructure:"max_backups"`
	MaxAgeDays int  `yaml:"max_age_days" mapstructure:"max_age_days"`
	Compress   bool `yaml:"compress" mapstructure:"compress"`
}

// Default returns a Config with the classic 25/5 cycle.
func Default() *Config {
	return &Config{
		Timer: TimerConfig{
			WorkMinutes:  model.DefaultWorkMinutes,
			BreakMinutes: model.DefaultBreakMinutes,
		},
		Sound: SoundConfig{
			Enabled: true,
			Volume:  0.5,
		},
		Notify: NotifyConfig{
			Desktop: true,
		},
		Log: LogConfig{
			Level: "info",
		},
		LogRotation: LogRotationConfig{
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 14,
			Compress:   true,
		},
	}
}

// Settings returns the initial timer settings.
func (cfg *Config) Settings() model.Settings {
	return model.Settings{
		WorkMinutes:  cfg.Timer.WorkMinutes,
		BreakMinutes: cfg.Timer.BreakMinutes,
	}
}

// Validate checks values that cannot be corrected silently.
func (cfg *Config) Validate() error {
	if err := settings.Validate(cfg.Settings()); err != nil {
		return fmt.Errorf("timer: %w", err)
	}
	if cfg.Sound.Volume < 0 || cfg.Sound.Volume > 1 {
		return fmt.Errorf("sound.volume: %v is outside 0..1", cfg.Sound.Volume)
	}
	return nil
}
