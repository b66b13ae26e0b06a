package hook

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	goversion "github.com/hashicorp/go-version"

	"github.com/hookwrap/hookwrap/internal/args"
	"github.com/hookwrap/hookwrap/internal/runner"
)

// Wrapper runs one tool as a pre-commit hook.
type Wrapper struct {
	Tool   *Tool
	Runner runner.Runner
	// Dir is the working directory of the tool and the base for relative
	// file names; empty means the process working directory.
	Dir string
}

// New creates a Wrapper for t. A nil r runs tools with os/exec.
func New(t *Tool, r runner.Runner) *Wrapper {
	if r == nil {
		r = &runner.Exec{}
	}
	return &Wrapper{Tool: t, Runner: r}
}

var _ Command = (*Wrapper)(nil)

// Run executes the hook for argv, writes its output and returns the code
// the process should exit with.
func (w *Wrapper) Run(ctx context.Context, argv []string, stdout, stderr io.Writer) int {
	out := w.Execute(ctx, argv)
	if len(out.Stdout) > 0 {
		_, _ = stdout.Write(out.Stdout)
	}
	if len(out.Stderr) > 0 {
		_, _ = stderr.Write(out.Stderr)
	}
	return out.Code
}

// Execute is Run without the writers.
func (w *Wrapper) Execute(ctx context.Context, argv []string) Outcome {
	out, err := w.execute(ctx, argv)
	if err != nil {
		var pe *ProblemError
		if !errors.As(err, &pe) {
			pe = problem(w.Tool.ID, "unexpected error", err.Error(), err)
		}
		slog.Debug("hook problem", "tool", w.Tool.ID, "problem", pe.Problem)
		return Outcome{Stderr: []byte(pe.Error()), Code: 1}
	}
	return out
}

func (w *Wrapper) execute(ctx context.Context, argv []string) (Outcome, error) {
	t := w.Tool
	flags, files := args.Split(argv, func(p string) bool { return args.IsRegularFile(w.path(p)) })

	if _, err := w.Runner.LookPath(t.Binary); err != nil {
		return Outcome{}, problem(t.ID, t.Binary+" not found",
			fmt.Sprintf("Make sure %s is installed and on your PATH.", t.Binary), err)
	}

	flags, pin, pinned := args.ExtractPin(flags)
	if pinned {
		if err := w.checkPin(ctx, pin); err != nil {
			return Outcome{}, err
		}
	}

	noDiff := false
	if t.Kind == KindFormatter {
		flags, noDiff = args.Take(flags, NoDiffFlag)
	}

	if len(files) == 0 {
		files = w.stagedFiles(ctx)
	}
	if len(files) == 0 && len(flags) == 0 && !t.FilesOptional {
		return Outcome{}, problem(t.ID, "Missing arguments", "No file arguments found and no arguments to tool", nil)
	}

	flags = w.NormalizeArgs(flags)
	if t.Prepare != nil {
		prepared, err := t.Prepare(ctx, w.Runner, w.Dir, flags)
		if err != nil {
			return Outcome{}, problem(t.ID, "preparing arguments", err.Error(), err)
		}
		flags = prepared
	}

	inv := runner.Invocation{Tool: t.ID, Args: flags, Files: files, Dir: w.Dir}
	slog.Debug("invoking hook", "tool", t.ID, "args", flags, "files", files)

	if t.Kind == KindFormatter {
		res, err := w.format(ctx, inv, noDiff)
		if err != nil {
			return Outcome{}, err
		}
		code := w.ExitCode(res)
		if code == 0 {
			return Outcome{}, nil
		}
		return Outcome{Stdout: res.Stdout, Code: code}, nil
	}

	res, err := w.Invoke(ctx, inv)
	if err != nil {
		return Outcome{}, err
	}
	code := w.ExitCode(res)
	if code == 0 {
		return Outcome{}, nil
	}
	return Outcome{Stderr: res.Combined(), Code: code}, nil
}

// NormalizeArgs merges the tool defaults into flags.
func (w *Wrapper) NormalizeArgs(flags []string) []string {
	return args.Merge(flags, w.Tool.Defaults...)
}

// Invoke runs the tool over inv.Files. Formatters return their diff report
// on stdout; analyzers return the accumulated streams of every file run up
// to and including the first failing one.
func (w *Wrapper) Invoke(ctx context.Context, inv runner.Invocation) (runner.Result, error) {
	if w.Tool.Kind == KindFormatter {
		return w.format(ctx, inv, false)
	}
	return w.analyze(ctx, inv)
}

// ExitCode applies the tool's exit policy.
func (w *Wrapper) ExitCode(res runner.Result) int {
	switch w.Tool.Policy {
	case PolicyDiff:
		if res.ExitCode != 0 || len(res.Stdout) > 0 {
			return 1
		}
		return 0
	case PolicyNativeUnlessClean:
		if w.Tool.Clean(res) {
			return 0
		}
		return res.ExitCode
	default:
		return res.ExitCode
	}
}

// Version returns the installed tool version.
func (w *Wrapper) Version(ctx context.Context) (string, error) {
	t := w.Tool
	res, err := w.Runner.Run(ctx, w.Dir, t.Binary, "--version")
	if err != nil {
		return "", problem(t.ID, t.Binary+" not found",
			fmt.Sprintf("Make sure %s is installed and on your PATH.", t.Binary), err)
	}
	m := t.VersionPattern.FindSubmatch(res.Combined())
	if m == nil {
		return "", problem(t.ID, "getting version",
			fmt.Sprintf("The version format for this command has changed.\nOutput: %s", strings.TrimSpace(string(res.Combined()))), nil)
	}
	return string(m[1]), nil
}

// checkPin compares the installed version against a pinned prefix such as
// "18" or "1.89".
func (w *Wrapper) checkPin(ctx context.Context, pin string) error {
	actual, err := w.Version(ctx)
	if err != nil {
		return err
	}
	if pinMatches(pin, actual) {
		slog.Debug("version pin satisfied", "tool", w.Tool.ID, "pin", pin, "version", actual)
		return nil
	}
	return problem(w.Tool.ID, "Version of "+w.Tool.Binary+" is wrong",
		fmt.Sprintf("Expected version: %s\nFound version: %s\nEdit your pre-commit config or use a different version of %s.",
			pin, actual, w.Tool.Binary), nil)
}

// pinMatches reports whether every segment of pin equals the corresponding
// segment of actual. Unparseable versions fall back to a prefix match.
func pinMatches(pin, actual string) bool {
	p, perr := goversion.NewVersion(pin)
	a, aerr := goversion.NewVersion(actual)
	if perr != nil || aerr != nil {
		return strings.HasPrefix(actual, pin)
	}
	ps := p.Segments()
	as := a.Segments()
	n := strings.Count(strings.TrimPrefix(pin, "v"), ".") + 1
	for i := 0; i < n && i < len(ps); i++ {
		if i >= len(as) || ps[i] != as[i] {
			return false
		}
	}
	return true
}

// stagedFiles lists files added to the git index, for runs where
// pre-commit passed no file names.
func (w *Wrapper) stagedFiles(ctx context.Context) []string {
	res, err := w.Runner.Run(ctx, w.Dir, "git", "diff", "--cached", "--name-only", "--diff-filter=A")
	if err != nil || res.ExitCode != 0 {
		slog.Debug("no staged files", "tool", w.Tool.ID, "error", err)
		return nil
	}
	var files []string
	for _, line := range strings.Split(string(res.Stdout), "\n") {
		line = strings.TrimSpace(line)
		if line != "" && args.IsRegularFile(w.path(line)) {
			files = append(files, line)
		}
	}
	return files
}

func (w *Wrapper) path(p string) string {
	if w.Dir == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(w.Dir, p)
}
