package cli

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hookwrap/hookwrap/internal/config"
	"github.com/hookwrap/hookwrap/internal/diffreport"
	"github.com/hookwrap/hookwrap/internal/hook"
)

var (
	runConfigFile string
	runHookIDs    []string
)

var runCmd = &cobra.Command{
	Use:   "run [files]",
	Short: "Run the configured hooks the way pre-commit does",
	Long: `Read .pre-commit-config.yaml, run every hook it configures that hookwrap
provides over the given files and report the result in pre-commit's format.
Without files each hook checks the files staged for the next commit.`,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVarP(&runConfigFile, "pre-commit-config", "c", config.PreCommitConfigFile, "pre-commit configuration file")
	runCmd.Flags().StringSliceVar(&runHookIDs, "hook", nil, "only run these hook ids")
}

func runRun(cmd *cobra.Command, files []string) error {
	pc, err := config.LoadPreCommitConfig(runConfigFile)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	failed := false
	ran := 0
	for _, h := range pc.Hooks() {
		if !hook.Known(h.ID) {
			slog.Debug("skipping hook not provided by hookwrap", "hook", h.ID)
			continue
		}
		if len(runHookIDs) > 0 && !slices.Contains(runHookIDs, h.ID) {
			continue
		}
		ran++

		var snap *diffreport.Snapshot
		if len(files) > 0 {
			if snap, err = diffreport.Take(files...); err != nil {
				return err
			}
		}
		t, _ := hook.Lookup(h.ID)
		res := hook.New(t, deps.Runner).Execute(cmd.Context(), append(slices.Clone(h.Args), files...))

		modified := snap != nil && snapshotChanged(snap, files)
		if res.Code != 0 || modified {
			failed = true
		}
		name := h.Name
		if name == "" {
			name = h.ID
		}
		writeHookResult(out, name, h.ID, res, modified)
	}
	if ran == 0 {
		return fmt.Errorf("%s configures none of the hooks %v", runConfigFile, hook.IDs())
	}
	if failed {
		return &ExitError{Code: 1}
	}
	return nil
}

func snapshotChanged(snap *diffreport.Snapshot, files []string) bool {
	for _, f := range files {
		if _, changed, err := snap.Current(f); err == nil && changed {
			return true
		}
	}
	return false
}

// statusWidth is the width of pre-commit's hook status lines.
const statusWidth = 79

// statusLine pads name with dots so that status ends in the last column.
func statusLine(name, status string) string {
	dots := statusWidth - len(name) - len(status)
	if dots < 1 {
		dots = 1
	}
	return name + strings.Repeat(".", dots) + status
}

// writeHookResult prints one hook the way pre-commit reports it.
func writeHookResult(w io.Writer, name, id string, res hook.Outcome, modified bool) {
	if res.Code == 0 && !modified {
		_, _ = fmt.Fprintln(w, statusLine(name, "Passed"))
		return
	}
	_, _ = fmt.Fprintln(w, statusLine(name, "Failed"))
	_, _ = fmt.Fprintf(w, "- hook id: %s\n", id)
	if res.Code != 0 {
		_, _ = fmt.Fprintf(w, "- exit code: %d\n", res.Code)
	}
	if modified {
		_, _ = fmt.Fprintln(w, "- files were modified by this hook")
	}
	output := bytes.TrimSpace(append(slices.Clone(res.Stdout), res.Stderr...))
	if len(output) > 0 {
		_, _ = fmt.Fprintf(w, "\n%s\n\n", output)
	}
}
