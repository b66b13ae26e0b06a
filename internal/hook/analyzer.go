package hook

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hookwrap/hookwrap/internal/runner"
)

// analyze runs the tool once per file. The accumulated streams of earlier
// files are kept so the failing run is reported with its predecessors,
// except that a clean marker discards everything seen so far.
func (w *Wrapper) analyze(ctx context.Context, inv runner.Invocation) (runner.Result, error) {
	t := w.Tool

	files := inv.Files
	if len(files) == 0 {
		if !t.FilesOptional {
			return runner.Result{}, nil
		}
		// Tools that may run without files still run once.
		files = []string{""}
	}

	var acc runner.Result
	failed := 0
	for _, f := range files {
		argv := inv.Args
		if f != "" {
			argv = inv.ArgvFor(f, t.FilesFirst)
		}
		res, err := w.Runner.Run(ctx, inv.Dir, t.Binary, argv...)
		if err != nil {
			return runner.Result{}, problem(t.ID, t.Binary+" not found",
				fmt.Sprintf("Make sure %s is installed and on your PATH.", t.Binary), err)
		}
		if t.Filter != nil {
			t.Filter(inv.Args, &res)
		}
		slog.Debug("analyzed file", "tool", t.ID, "file", f, "code", res.ExitCode)

		if t.Clean(res) {
			acc = runner.Result{}
			continue
		}
		acc.Append(res)

		code := w.ExitCode(res)
		if code == 0 {
			continue
		}
		if !t.RunAll {
			return acc, nil
		}
		if failed == 0 {
			failed = code
		}
	}
	if failed != 0 {
		acc.ExitCode = failed
	}
	return acc, nil
}
