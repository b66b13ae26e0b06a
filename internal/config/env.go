package config

import (
	"os"
	"strings"
)

// Environment variables that override the settings file.
const (
	EnvLogLevel    = "HOOKWRAP_LOG_LEVEL"
	EnvLogFormat   = "HOOKWRAP_LOG_FORMAT"
	EnvNoColor     = "HOOKWRAP_NO_COLOR"
	EnvJournal     = "HOOKWRAP_JOURNAL"
	EnvSessionDir  = "HOOKWRAP_SESSION_DIR"
	EnvHookCommand = "HOOKWRAP_HOOK_COMMAND"
	EnvStrategies  = "HOOKWRAP_STRATEGIES"
)

// ToolPathEnv is the variable overriding the binary of a tool, e.g.
// HOOKWRAP_CLANG_FORMAT_PATH.
func ToolPathEnv(id string) string {
	return "HOOKWRAP_" + strings.ToUpper(strings.NewReplacer("-", "_").Replace(id)) + "_PATH"
}

func applyEnvOverrides(cfg *Config) {
	if level := os.Getenv(EnvLogLevel); level != "" {
		cfg.Log.Level = level
	}
	if format := os.Getenv(EnvLogFormat); format != "" {
		cfg.Log.Format = format
	}
	if noColor := os.Getenv(EnvNoColor); noColor == "true" || noColor == "1" {
		cfg.Log.NoColor = true
	}
	if j := os.Getenv(EnvJournal); j != "" {
		cfg.Harness.Journal = j
	}
	if d := os.Getenv(EnvSessionDir); d != "" {
		cfg.Harness.SessionDir = d
	}
	if c := os.Getenv(EnvHookCommand); c != "" {
		cfg.Harness.HookCommand = c
	}
	if s := os.Getenv(EnvStrategies); s != "" {
		cfg.Harness.Strategies = cfg.Harness.Strategies[:0:0]
		for _, name := range strings.Split(s, ",") {
			if name = strings.TrimSpace(name); name != "" {
				cfg.Harness.Strategies = append(cfg.Harness.Strategies, name)
			}
		}
	}
	for _, id := range toolIDs() {
		if p := os.Getenv(ToolPathEnv(id)); p != "" {
			if cfg.Tools == nil {
				cfg.Tools = map[string]ToolConfig{}
			}
			cfg.Tools[id] = ToolConfig{Path: p}
		}
	}
}
