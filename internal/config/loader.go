package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// Loader reads the settings file. It is safe for concurrent use.
type Loader struct {
	mu     sync.RWMutex
	source string
}

// NewLoader creates a new Loader instance.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads path, or FileName inside path when path is a directory, and
// returns the result with defaults and HOOKWRAP_* overrides applied. A
// missing file yields the defaults.
func (l *Loader) Load(path string) (*Config, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.source = ""
	if path == "" {
		path = "."
	}
	if fi, err := os.Stat(path); err == nil && fi.IsDir() {
		path = filepath.Join(path, FileName)
	}

	cfg := NewDefaultConfig()
	loaded, err := loadYAMLFile(path, cfg)
	if err != nil {
		return nil, err
	}
	if loaded {
		l.source = path
		applyDefaults(cfg)
	} else {
		slog.Debug("config file not found, using defaults", "path", path)
	}

	applyEnvOverrides(cfg)
	return cfg, nil
}

// Source returns the file the last Load read, or "" when defaults were used.
func (l *Loader) Source() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.source
}

// Load is a convenience wrapper around NewLoader().Load followed by Validate.
func Load(path string) (*Config, error) {
	cfg, err := NewLoader().Load(path)
	if err != nil {
		return nil, err
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadYAMLFile unmarshals the file at path into target. It returns
// (false, nil) when the file does not exist.
func loadYAMLFile(path string, target any) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, target); err != nil {
		return false, fmt.Errorf("parse %s: %w: %v", path, ErrInvalidYAML, err)
	}
	return true, nil
}
