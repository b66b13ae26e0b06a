package hook

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"slices"

	"github.com/hookwrap/hookwrap/internal/diffreport"
	"github.com/hookwrap/hookwrap/internal/runner"
)

// format compares each file with what the formatter makes of it. The
// result carries the concatenated reports on stdout and exit code 1 when
// any file differs; noDiff keeps the code but drops the reports.
func (w *Wrapper) format(ctx context.Context, inv runner.Invocation, noDiff bool) (runner.Result, error) {
	t := w.Tool
	inPlace := t.EditsInPlace(inv.Args)

	var res runner.Result
	for _, f := range inv.Files {
		before, err := os.ReadFile(w.path(f))
		if err != nil {
			return runner.Result{}, problem(t.ID, "reading "+f, err.Error(), err)
		}

		argv := slices.Clone(inv.Args)
		if t.FileFlag != "" && !inPlace {
			argv = append(argv, t.FileFlag)
		}
		argv = append(argv, f)

		out, err := w.Runner.Run(ctx, inv.Dir, t.Binary, argv...)
		if err != nil {
			return runner.Result{}, problem(t.ID, t.Binary+" not found",
				fmt.Sprintf("Make sure %s is installed and on your PATH.", t.Binary), err)
		}
		if len(out.Stderr) > 0 || out.ExitCode != 0 {
			return runner.Result{}, problem(t.ID,
				fmt.Sprintf("Unexpected Stderr/return code received when analyzing %s.\nArgs: %q", f, append([]string{t.Binary}, argv...)),
				string(out.Combined()), nil)
		}

		after := out.Stdout
		if inPlace {
			if after, err = os.ReadFile(w.path(f)); err != nil {
				return runner.Result{}, problem(t.ID, "reading "+f, err.Error(), err)
			}
		}

		if bytes.Equal(before, after) {
			continue
		}
		res.ExitCode = 1
		if !noDiff {
			res.Stdout = append(res.Stdout, diffreport.Report(f, before, after)...)
		}
	}
	return res, nil
}
