package config

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/hookwrap/hookwrap/internal/hook"
)

var (
	logLevels  = []string{"debug", "info", "warn", "error"}
	logFormats = []string{"text", "json"}
)

func toolIDs() []string { return hook.IDs() }

// Validate checks the configuration for correctness and reports every
// problem at once.
func Validate(cfg *Config) error {
	var errs []ValidationError

	errs = append(errs, validateLog(&cfg.Log)...)
	errs = append(errs, validateTools(cfg.Tools)...)
	errs = append(errs, validateHarness(&cfg.Harness)...)
	errs = append(errs, validateIntegration(&cfg.Integration)...)

	if len(errs) > 0 {
		return &ValidationErrors{Errors: errs}
	}
	return nil
}

func validateLog(l *LogConfig) []ValidationError {
	var errs []ValidationError
	if !slices.Contains(logLevels, strings.ToLower(l.Level)) {
		errs = append(errs, ValidationError{
			Field:   "log.level",
			Message: fmt.Sprintf("must be one of: %s", strings.Join(logLevels, ", ")),
			Value:   l.Level,
			Wrapped: ErrInvalidLogLevel,
		})
	}
	if !slices.Contains(logFormats, l.Format) {
		errs = append(errs, ValidationError{
			Field:   "log.format",
			Message: fmt.Sprintf("must be one of: %s", strings.Join(logFormats, ", ")),
			Value:   l.Format,
			Wrapped: ErrInvalidConfig,
		})
	}
	return errs
}

func validateTools(tools map[string]ToolConfig) []ValidationError {
	ids := make([]string, 0, len(tools))
	for id := range tools {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var errs []ValidationError
	for _, id := range ids {
		if !hook.Known(id) {
			errs = append(errs, ValidationError{
				Field:   "tools." + id,
				Message: fmt.Sprintf("must be one of: %s", strings.Join(hook.IDs(), ", ")),
				Wrapped: ErrUnknownTool,
			})
		}
	}
	return errs
}

func validateHarness(h *HarnessConfig) []ValidationError {
	var errs []ValidationError
	for _, s := range h.Strategies {
		if !slices.Contains(Strategies, s) {
			errs = append(errs, ValidationError{
				Field:   "harness.strategies",
				Message: fmt.Sprintf("must be one of: %s", strings.Join(Strategies, ", ")),
				Value:   s,
				Wrapped: ErrUnknownStrategy,
			})
		}
	}
	return errs
}

func validateIntegration(in *IntegrationConfig) []ValidationError {
	if in.Repo == LocalRepo || in.Repo == "" {
		return nil
	}
	if in.Rev == "" {
		return []ValidationError{{
			Field:   "integration.rev",
			Message: "required when integration.repo is not local",
			Wrapped: ErrInvalidConfig,
		}}
	}
	return nil
}
