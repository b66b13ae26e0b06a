package cli

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/hookwrap/hookwrap/internal/harness"
	"github.com/hookwrap/hookwrap/internal/scenario"
)

var (
	fixtureFlags  tableFlags
	fixtureOut    string
	fixtureAppend bool
)

var fixtureCmd = &cobra.Command{
	Use:   "fixture",
	Short: "Manage the pre-commit integration fixture",
}

var fixtureRecordCmd = &cobra.Command{
	Use:   "record",
	Short: "Record pre-commit output for the single file scenarios",
	Long: `Run each single file scenario through pre-commit in a scratch repository
and write what pre-commit printed as integration fixture entries. Review the
result before committing it: the recording is only as good as the tools
that produced it.`,
	Args: cobra.NoArgs,
	RunE: runFixtureRecord,
}

func init() {
	rootCmd.AddCommand(fixtureCmd)
	fixtureCmd.AddCommand(fixtureRecordCmd)
	fixtureFlags.register(fixtureRecordCmd)
	fl := fixtureRecordCmd.Flags()
	fl.StringVarP(&fixtureOut, "output", "o", "-", "fixture file to write, - for stdout")
	fl.BoolVar(&fixtureAppend, "append", false, "append to the entries already in the output file")
}

func runFixtureRecord(cmd *cobra.Command, _ []string) error {
	cfg := deps.Config
	ctx := cmd.Context()

	table, _, err := fixtureFlags.build(ctx)
	if err != nil {
		return err
	}
	var candidates []scenario.Scenario
	for _, s := range table {
		if s.Integration || len(s.Files) != 1 {
			continue
		}
		s.Integration = true
		s.ExpectedOutput, s.ExpectedCode = nil, 0
		candidates = append(candidates, s)
	}
	if len(candidates) == 0 {
		return fmt.Errorf("no single file scenarios to record")
	}

	arena, err := harness.NewArena(cfg.Harness.SessionDir, cfg.Harness.KeepScratch)
	if err != nil {
		return err
	}
	defer func() { _ = arena.Close() }()

	entries, err := harness.Record(ctx, arena, newIntegration(cfg, deps.Runner), candidates, nil)
	if err != nil {
		return err
	}
	if err := writeEntries(cmd.OutOrStdout(), entries); err != nil {
		return err
	}
	if fixtureOut != "-" {
		_, _ = fmt.Fprintln(cmd.ErrOrStderr(), cliSuccess.Render("✓"), fmt.Sprintf("recorded %d entries in %s", len(entries), fixtureOut))
	}
	return nil
}

func writeEntries(stdout io.Writer, entries []scenario.FixtureEntry) error {
	if fixtureOut == "-" {
		return scenario.WriteFixture(stdout, entries)
	}
	var existing []byte
	if fixtureAppend {
		data, err := os.ReadFile(fixtureOut)
		if err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("read fixture: %w", err)
		}
		existing = data
	}
	var buf bytes.Buffer
	if err := scenario.AppendFixture(bytes.NewReader(existing), &buf, entries...); err != nil {
		return err
	}
	return os.WriteFile(fixtureOut, buf.Bytes(), 0o644)
}
