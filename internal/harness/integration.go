package harness

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/hookwrap/hookwrap/internal/config"
	"github.com/hookwrap/hookwrap/internal/runner"
	"github.com/hookwrap/hookwrap/internal/scenario"
)

// Integration drives a hook through pre-commit in a scratch git
// repository, the way a user of the hooks runs them.
type Integration struct {
	Runner runner.Runner
	// PreCommit is the pre-commit executable; empty means "pre-commit".
	PreCommit string
	// Repo and Rev select a published hook repository. An empty Repo
	// configures a local hook that calls the installed entry point.
	Repo string
	Rev  string
	// Entry returns the local hook command for an id; the default is
	// "<id>-hook".
	Entry func(id string) string
}

func (*Integration) Name() string { return "pre-commit" }

// Run initializes dir as a repository, installs pre-commit, stages the
// scenario files and runs the single configured hook over them.
func (in *Integration) Run(ctx context.Context, s scenario.Scenario, dir string) (Result, error) {
	r := in.Runner
	if r == nil {
		r = &runner.Exec{}
	}
	preCommit := in.PreCommit
	if preCommit == "" {
		preCommit = "pre-commit"
	}

	if err := in.writeConfig(s, dir); err != nil {
		return Result{}, err
	}
	steps := [][]string{
		{"git", "init", "-q"},
		{preCommit, "install"},
		append([]string{"git", "add", "--"}, s.Files...),
	}
	for _, step := range steps {
		res, err := r.Run(ctx, dir, step[0], step[1:]...)
		if err != nil {
			return Result{}, fmt.Errorf("%w: %s: %w", ErrHarness, step[0], err)
		}
		if res.ExitCode != 0 {
			return Result{}, fmt.Errorf("%w: %v exited %d: %s", ErrHarness, step, res.ExitCode, res.Combined())
		}
	}

	res, err := r.Run(ctx, dir, preCommit, "run")
	if err != nil {
		return Result{}, fmt.Errorf("%w: %s: %w", ErrHarness, preCommit, err)
	}
	out := append(append([]byte{}, res.Stderr...), res.Stdout...)
	out = InfoLines(s, dir, out)
	if len(out) == 0 {
		return Result{}, fmt.Errorf("%w: %s", ErrEmptyOutput, s.Name())
	}
	slog.Debug("pre-commit finished", "scenario", s.Name(), "code", res.ExitCode)
	return Result{Output: out, Code: res.ExitCode}, nil
}

func (in *Integration) writeConfig(s scenario.Scenario, dir string) error {
	var cfg config.PreCommitConfig
	if in.Repo == "" {
		entry := s.Tool + "-hook"
		if in.Entry != nil {
			entry = in.Entry(s.Tool)
		}
		cfg = config.LocalHook(s.Tool, entry, s.Args)
	} else {
		cfg = config.RemoteHook(in.Repo, in.Rev, s.Tool, s.Args)
	}
	data, err := cfg.Marshal()
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(dir, config.PreCommitConfigFile), data, 0o644); err != nil {
		return fmt.Errorf("%w: write pre-commit config: %w", ErrHarness, err)
	}
	return nil
}
