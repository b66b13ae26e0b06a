package config

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Parallel()

	l := NewLoader()
	cfg, err := l.Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if l.Source() != "" {
		t.Errorf("Source() = %q, want empty", l.Source())
	}
	if cfg.Log.Level != DefaultLogLevel || cfg.Integration.Repo != LocalRepo || cfg.Integration.PreCommit != DefaultPreCommit {
		t.Errorf("defaults not applied: %+v", cfg)
	}
	if !slices.Equal(cfg.Harness.Strategies, Strategies) {
		t.Errorf("Strategies = %v", cfg.Harness.Strategies)
	}
}

func TestLoadFile(t *testing.T) {
	t.Parallel()

	dir := writeConfig(t, `
log:
  level: debug
tools:
  clang-format:
    path: /opt/llvm/bin/clang-format
harness:
  strategies: [in-process]
  journal: .hookwrap/journal.db
integration:
  enabled: true
`)
	l := NewLoader()
	cfg, err := l.Load(dir)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if l.Source() != filepath.Join(dir, FileName) {
		t.Errorf("Source() = %q", l.Source())
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != DefaultLogFormat {
		t.Errorf("Log = %+v", cfg.Log)
	}
	if cfg.Tools["clang-format"].Path != "/opt/llvm/bin/clang-format" {
		t.Errorf("Tools = %+v", cfg.Tools)
	}
	if !slices.Equal(cfg.Harness.Strategies, []string{StrategyInProcess}) || cfg.Harness.Journal != ".hookwrap/journal.db" {
		t.Errorf("Harness = %+v", cfg.Harness)
	}
	if !cfg.Integration.Enabled || cfg.Integration.PreCommit != DefaultPreCommit {
		t.Errorf("Integration = %+v", cfg.Integration)
	}
}

func TestLoadExplicitPath(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "ci.yaml")
	if err := os.WriteFile(path, []byte("log:\n  format: json\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Log.Format != "json" {
		t.Errorf("Log.Format = %q", cfg.Log.Format)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	t.Parallel()

	dir := writeConfig(t, "log: [unclosed\n")
	if _, err := NewLoader().Load(dir); !errors.Is(err, ErrInvalidYAML) {
		t.Errorf("Load() error = %v, want ErrInvalidYAML", err)
	}
}

func TestLoadValidates(t *testing.T) {
	t.Parallel()

	dir := writeConfig(t, "tools:\n  gofmt:\n    path: /usr/bin/gofmt\n")
	_, err := Load(dir)
	if !errors.Is(err, ErrUnknownTool) || !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Load() error = %v, want ErrUnknownTool", err)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv(EnvLogLevel, "error")
	t.Setenv(EnvNoColor, "1")
	t.Setenv(EnvJournal, "/tmp/j.db")
	t.Setenv(EnvStrategies, "entry-point, in-process")
	t.Setenv(ToolPathEnv("include-what-you-use"), "/opt/iwyu")

	cfg, err := NewLoader().Load(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Log.Level != "error" || !cfg.Log.NoColor {
		t.Errorf("Log = %+v", cfg.Log)
	}
	if cfg.Harness.Journal != "/tmp/j.db" {
		t.Errorf("Journal = %q", cfg.Harness.Journal)
	}
	if !slices.Equal(cfg.Harness.Strategies, []string{StrategyEntryPoint, StrategyInProcess}) {
		t.Errorf("Strategies = %q", cfg.Harness.Strategies)
	}
	if cfg.Tools["include-what-you-use"].Path != "/opt/iwyu" {
		t.Errorf("Tools = %+v", cfg.Tools)
	}
	if slices.Equal(NewDefaultConfig().Harness.Strategies, cfg.Harness.Strategies) {
		t.Error("override leaked into the defaults")
	}
}

func TestToolPathEnv(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"clang-format":         "HOOKWRAP_CLANG_FORMAT_PATH",
		"cppcheck":             "HOOKWRAP_CPPCHECK_PATH",
		"include-what-you-use": "HOOKWRAP_INCLUDE_WHAT_YOU_USE_PATH",
	}
	for id, want := range tests {
		if got := ToolPathEnv(id); got != want {
			t.Errorf("ToolPathEnv(%q) = %q, want %q", id, got, want)
		}
	}
}

func TestToolPaths(t *testing.T) {
	t.Parallel()

	cfg := NewDefaultConfig()
	cfg.Tools["include-what-you-use"] = ToolConfig{Path: "/opt/iwyu"}
	cfg.Tools["cppcheck"] = ToolConfig{}

	binary := map[string]string{"include-what-you-use": "include-what-you-use", "cppcheck": "cppcheck"}
	paths := cfg.ToolPaths(func(id string) string { return binary[id] })
	if len(paths) != 1 || paths["include-what-you-use"] != "/opt/iwyu" {
		t.Errorf("ToolPaths() = %v", paths)
	}
}
