package config

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

func TestLocalHookMarshal(t *testing.T) {
	t.Parallel()

	data, err := LocalHook("clang-format", "clang-format-hook", []string{"--style=google", "-i"}).Marshal()
	if err != nil {
		t.Fatal(err)
	}
	want := `repos:
  - repo: local
    hooks:
      - id: clang-format
        name: clang-format
        entry: clang-format-hook
        language: system
        args:
          - --style=google
          - -i
`
	if string(data) != want {
		t.Errorf("Marshal() =\n%s\nwant\n%s", data, want)
	}
}

func TestRemoteHookRoundTrip(t *testing.T) {
	t.Parallel()

	in := RemoteHook("https://github.com/hookwrap/hookwrap", "v1.2.0", "cppcheck", nil)
	data, err := in.Marshal()
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "args") || strings.Contains(string(data), "entry") {
		t.Errorf("empty fields were written:\n%s", data)
	}
	out, err := ParsePreCommitConfig(data)
	if err != nil {
		t.Fatal(err)
	}
	if out.Repos[0].Rev != "v1.2.0" || out.Hooks()[0].ID != "cppcheck" {
		t.Errorf("ParsePreCommitConfig() = %+v", out)
	}
}

func TestParsePreCommitConfig(t *testing.T) {
	t.Parallel()

	data := []byte(`
fail_fast: false
repos:
  - repo: https://github.com/pre-commit/pre-commit-hooks
    rev: v4.5.0
    hooks:
      - id: trailing-whitespace
  - repo: https://github.com/hookwrap/hookwrap
    rev: v1.0.0
    hooks:
      - id: clang-format
        args: [--style=Google]
      - id: cpplint
        files: \.(c|h)$
`)
	cfg, err := ParsePreCommitConfig(data)
	if err != nil {
		t.Fatalf("ParsePreCommitConfig() error: %v", err)
	}
	hooks := cfg.Hooks()
	ids := make([]string, len(hooks))
	for i, h := range hooks {
		ids[i] = h.ID
	}
	if !slices.Equal(ids, []string{"trailing-whitespace", "clang-format", "cpplint"}) {
		t.Errorf("hook ids = %v", ids)
	}
	if !slices.Equal(hooks[1].Args, []string{"--style=Google"}) || hooks[2].Files != `\.(c|h)$` {
		t.Errorf("hooks = %+v", hooks)
	}
}

func TestParsePreCommitConfigErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		data   string
		target error
	}{
		{"syntax", "repos: [", ErrInvalidYAML},
		{"no repos", "fail_fast: true\n", ErrNoPreCommitHooks},
		{"repo without hooks", "repos:\n  - repo: local\n", ErrNoPreCommitHooks},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if _, err := ParsePreCommitConfig([]byte(tt.data)); !errors.Is(err, tt.target) {
				t.Errorf("error = %v, want %v", err, tt.target)
			}
		})
	}
}

func TestLoadPreCommitConfig(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if _, err := LoadPreCommitConfig(filepath.Join(dir, PreCommitConfigFile)); err == nil {
		t.Error("LoadPreCommitConfig() on a missing file succeeded")
	}
	data, _ := LocalHook("oclint", "oclint-hook", nil).Marshal()
	path := filepath.Join(dir, PreCommitConfigFile)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadPreCommitConfig(path)
	if err != nil || cfg.Hooks()[0].Entry != "oclint-hook" {
		t.Errorf("LoadPreCommitConfig() = %+v, %v", cfg, err)
	}
}
