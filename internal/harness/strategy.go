package harness

import (
	"context"
	"fmt"

	"github.com/hookwrap/hookwrap/internal/hook"
	"github.com/hookwrap/hookwrap/internal/runner"
	"github.com/hookwrap/hookwrap/internal/scenario"
)

// Result is what one strategy observed for one scenario.
type Result struct {
	// Output is stdout followed by stderr.
	Output []byte
	Code   int
}

// Strategy executes a resolved scenario inside dir.
type Strategy interface {
	Name() string
	Run(ctx context.Context, s scenario.Scenario, dir string) (Result, error)
}

// InProcess calls the hook wrapper directly.
type InProcess struct {
	Runner runner.Runner
}

func (InProcess) Name() string { return "in-process" }

func (p InProcess) Run(ctx context.Context, s scenario.Scenario, dir string) (Result, error) {
	t, err := hook.Lookup(s.Tool)
	if err != nil {
		return Result{}, err
	}
	w := hook.New(t, p.Runner)
	w.Dir = dir
	out := w.Execute(ctx, s.Argv())
	return Result{Output: append(out.Stdout, out.Stderr...), Code: out.Code}, nil
}

// EntryPoint runs the installed hook command as a subprocess.
type EntryPoint struct {
	Runner runner.Runner
	// Command returns the program and leading arguments for a hook id. The
	// default runs "<id>-hook" from PATH.
	Command func(id string) (string, []string)
}

func (EntryPoint) Name() string { return "entry-point" }

func (e EntryPoint) Run(ctx context.Context, s scenario.Scenario, dir string) (Result, error) {
	name, pre := HookCommand(s.Tool)
	if e.Command != nil {
		name, pre = e.Command(s.Tool)
	}
	r := e.Runner
	if r == nil {
		r = &runner.Exec{}
	}
	res, err := r.Run(ctx, dir, name, append(pre, s.Argv()...)...)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %s: %w", ErrHarness, name, err)
	}
	return Result{Output: res.Combined(), Code: res.ExitCode}, nil
}

// HookCommand is the installed entry point of a hook.
func HookCommand(id string) (string, []string) {
	return id + "-hook", nil
}
