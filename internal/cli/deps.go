// Package cli provides the Cobra command tree of hookwrap and the
// composition root wiring configuration, logging and the tool runner.
package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/hookwrap/hookwrap/internal/config"
	"github.com/hookwrap/hookwrap/internal/hook"
	"github.com/hookwrap/hookwrap/internal/logging"
	"github.com/hookwrap/hookwrap/internal/runner"
)

// Dependencies holds the services shared by the commands. It is built once
// per process in InitDependencies.
type Dependencies struct {
	Config *config.Config
	// ConfigSource is the settings file read, or "" when defaults are used.
	ConfigSource string
	Runner       *runner.Exec
	Logger       *slog.Logger
}

// deps is the global dependencies instance, initialized by InitDependencies.
var deps *Dependencies

// InitDependencies loads the configuration at path, installs the logger
// and builds the tool runner. Non-empty level and format override the
// configuration.
func InitDependencies(stderr io.Writer, path, level, format string) error {
	loader := config.NewLoader()
	cfg, err := loader.Load(path)
	if err != nil {
		return err
	}
	if level != "" {
		cfg.Log.Level = level
	}
	if format != "" {
		cfg.Log.Format = format
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}

	lvl, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("%w: %w", config.ErrInvalidLogLevel, err)
	}
	logger := logging.Setup(stderr, logging.Options{Level: lvl, Format: cfg.Log.Format, NoColor: cfg.Log.NoColor})

	deps = &Dependencies{
		Config:       cfg,
		ConfigSource: loader.Source(),
		Runner:       &runner.Exec{Paths: cfg.ToolPaths(binaryOf)},
		Logger:       logger,
	}
	if deps.ConfigSource != "" {
		logger.Debug("loaded config", "path", deps.ConfigSource)
	}
	return nil
}

// GetDeps returns the current Dependencies instance.
func GetDeps() *Dependencies {
	return deps
}

// SetDeps replaces the global dependencies (used for testing).
func SetDeps(d *Dependencies) {
	deps = d
}

func binaryOf(id string) string {
	t, err := hook.Lookup(id)
	if err != nil {
		return id
	}
	return t.Binary
}
