// Package storage writes timerp configuration files.
package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"timerp/internal/config"

	"gopkg.in/yaml.v3"
)

// ErrExists is returned when a config file would be overwritten.
var ErrExists = errors.New("config file already exists")

const fileHeader = "# timerp configuration. Values here only seed the timer at startup.\n"

// Render serializes cfg as YAML with a short header.
func Render(cfg *config.Config) ([]byte, error) {
	serialized, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("marshal config yaml: %w", err)
	}
	return append([]byte(fileHeader), serialized...), nil
}

// DefaultPath returns the global config file location.
func DefaultPath() (string, error) {
	dir, err := config.ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, config.GlobalConfigFile), nil
}

// WriteConfig writes cfg to path, creating parent directories. An existing file
// is only replaced when force is set.
func WriteConfig(path string, cfg *config.Config, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s: %w", path, ErrExists)
		} else if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("stat config file: %w", err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	serialized, err := Render(cfg)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, serialized, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}
