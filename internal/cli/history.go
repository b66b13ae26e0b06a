package cli

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hookwrap/hookwrap/internal/harness"
)

var (
	historyLimit int
	historyRun   int64
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show verify runs recorded in the journal",
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 10, "number of runs to show")
	historyCmd.Flags().Int64Var(&historyRun, "run", 0, "show the failures of this run (0: latest)")
}

func runHistory(cmd *cobra.Command, _ []string) error {
	path := deps.Config.Harness.Journal
	if path == "" {
		return errors.New("no journal configured: set harness.journal or HOOKWRAP_JOURNAL")
	}
	j, err := harness.OpenJournal(path)
	if err != nil {
		return err
	}
	defer j.Close()

	out := cmd.OutOrStdout()
	if cmd.Flags().Changed("run") || historyRun != 0 {
		return printRunFailures(cmd, j, historyRun)
	}

	runs, err := j.Runs(historyLimit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		_, _ = fmt.Fprintln(out, cliMuted.Render("no runs recorded"))
		return nil
	}
	t := newTable("RUN", "STARTED", "OS", "PASSED", "VERSIONS")
	for _, r := range runs {
		passed := fmt.Sprintf("%d/%d", r.Passed, r.Total)
		if r.Passed != r.Total || r.Total == 0 {
			passed = cliError.Render(passed)
		} else {
			passed = cliSuccess.Render(passed)
		}
		t.Row(fmt.Sprint(r.ID), r.StartedAt.Format("2006-01-02 15:04"), r.GOOS, passed, formatVersions(r.Versions))
	}
	_, _ = fmt.Fprintln(out, t.Render())
	return nil
}

func printRunFailures(cmd *cobra.Command, j *harness.Journal, run int64) error {
	if run == 0 {
		latest, err := j.Latest()
		if err != nil {
			return err
		}
		run = latest.ID
	}
	failures, err := j.Failures(run)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(failures) == 0 {
		_, _ = fmt.Fprintln(out, cliSuccess.Render("✓"), fmt.Sprintf("run %d has no failures", run))
		return nil
	}
	for _, f := range failures {
		_, _ = fmt.Fprintf(out, "%s %s %s\n", cliError.Render("FAIL"), f.Scenario, cliMuted.Render("["+f.Strategy+"]"))
		if f.Error != "" {
			_, _ = fmt.Fprintln(out, indent(f.Error, "    "))
		}
	}
	return nil
}

func formatVersions(v map[string]string) string {
	parts := make([]string, 0, len(v))
	for _, id := range slices.Sorted(maps.Keys(v)) {
		parts = append(parts, id+" "+v[id])
	}
	return strings.Join(parts, ", ")
}
