// Package runner invokes the native analyzer binaries as opaque subprocesses.
package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"slices"
)

// ErrNotInstalled is returned when the requested executable cannot be found.
var ErrNotInstalled = errors.New("runner: executable not found")

// Invocation is one request to run a wrapped tool.
type Invocation struct {
	// Tool is the hook id of the wrapped tool.
	Tool string
	// Args are the tool flags after default merging.
	Args []string
	// Files are the targets, in the order they were given.
	Files []string
	// Dir is the working directory; empty means the current one.
	Dir string
}

// ArgvFor returns the argument list for a single file. Tools that parse
// their input before their flags want the file first.
func (inv Invocation) ArgvFor(file string, filesFirst bool) []string {
	if filesFirst {
		return append([]string{file}, inv.Args...)
	}
	return append(slices.Clone(inv.Args), file)
}

// Result is what one or more tool runs produced.
type Result struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
}

// Combined returns stdout followed by stderr, the order hooks report them in.
func (r Result) Combined() []byte {
	out := make([]byte, 0, len(r.Stdout)+len(r.Stderr))
	out = append(out, r.Stdout...)
	return append(out, r.Stderr...)
}

// Append accumulates the streams of o and takes over its exit code.
func (r *Result) Append(o Result) {
	r.Stdout = append(r.Stdout, o.Stdout...)
	r.Stderr = append(r.Stderr, o.Stderr...)
	r.ExitCode = o.ExitCode
}

// Runner executes external programs.
type Runner interface {
	// LookPath resolves name to an executable path.
	LookPath(name string) (string, error)
	// Run blocks until the program exits. A non-zero exit status is reported
	// through Result.ExitCode, not as an error.
	Run(ctx context.Context, dir, name string, args ...string) (Result, error)
}

// Exec runs programs with os/exec.
type Exec struct {
	// Paths overrides the executable used for a program name.
	Paths map[string]string
	// Env is appended to the process environment; later entries win.
	Env []string
}

// LookPath resolves name through Paths first and then $PATH.
func (e *Exec) LookPath(name string) (string, error) {
	if p, ok := e.Paths[name]; ok && p != "" {
		name = p
	}
	path, err := exec.LookPath(name)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrNotInstalled, name)
	}
	return path, nil
}

// Run executes name with args in dir and captures both streams.
func (e *Exec) Run(ctx context.Context, dir, name string, args ...string) (Result, error) {
	path, err := e.LookPath(name)
	if err != nil {
		return Result{ExitCode: -1}, err
	}

	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Dir = dir
	if len(e.Env) > 0 {
		cmd.Env = append(os.Environ(), e.Env...)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	slog.Debug("running tool", "name", name, "args", args, "dir", dir)
	runErr := cmd.Run()
	res := Result{Stdout: stdout.Bytes(), Stderr: stderr.Bytes()}
	if runErr != nil {
		var ee *exec.ExitError
		if errors.As(runErr, &ee) {
			res.ExitCode = ee.ExitCode()
			slog.Debug("tool exited", "name", name, "code", res.ExitCode)
			return res, nil
		}
		res.ExitCode = -1
		return res, fmt.Errorf("run %s: %w", name, runErr)
	}
	return res, nil
}
