package cli

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"os"
	"runtime"
	"slices"

	"github.com/spf13/cobra"

	"github.com/hookwrap/hookwrap/internal/hook"
	"github.com/hookwrap/hookwrap/internal/scenario"
)

// tableFlags selects which scenarios a command works on.
type tableFlags struct {
	tools       []string
	versions    map[string]string
	goos        string
	integration bool
}

func (f *tableFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringSliceVar(&f.tools, "tool", nil, "restrict to these hook ids (default: every installed tool)")
	fl.StringToStringVar(&f.versions, "tool-version", nil, "use this version instead of probing, e.g. cppcheck=2.13.0")
	fl.StringVar(&f.goos, "goos", "", "build the table for another platform")
	fl.BoolVar(&f.integration, "integration", false, "include the pre-commit fixture scenarios")
}

// build probes the selected tools and returns the scenario table together
// with the versions it was built for.
func (f *tableFlags) build(ctx context.Context) ([]scenario.Scenario, map[string]string, error) {
	for _, id := range f.tools {
		if !hook.Known(id) {
			return nil, nil, fmt.Errorf("%w: %s", hook.ErrUnknownTool, id)
		}
	}

	ids := f.tools
	var unprobed []string
	for _, id := range orAll(ids) {
		if _, ok := f.versions[id]; !ok {
			unprobed = append(unprobed, id)
		}
	}
	versions := map[string]string{}
	if len(unprobed) > 0 {
		probed, err := scenario.ProbeVersions(ctx, deps.Runner, unprobed)
		if err != nil {
			return nil, nil, err
		}
		maps.Copy(versions, probed)
	}
	maps.Copy(versions, f.versions)

	if len(ids) == 0 {
		ids = slices.Sorted(maps.Keys(versions))
		if len(ids) == 0 {
			return nil, versions, fmt.Errorf("none of the wrapped tools is installed: %v", hook.IDs())
		}
	}

	b := scenario.Builder{GOOS: f.goos, Versions: versions, Tools: ids}
	scenarios, err := b.Build()
	if err != nil {
		return nil, versions, err
	}
	if f.integration || deps.Config.Integration.Enabled {
		fixture, err := loadFixture(deps.Config.Integration.Fixture)
		if err != nil {
			return nil, versions, err
		}
		for _, s := range fixture {
			if slices.Contains(ids, s.Tool) {
				scenarios = append(scenarios, s)
			}
		}
	}
	slog.Debug("built scenario table", "scenarios", len(scenarios), "tools", ids)
	return scenarios, versions, nil
}

func orAll(ids []string) []string {
	if len(ids) == 0 {
		return hook.IDs()
	}
	return ids
}

func loadFixture(path string) ([]scenario.Scenario, error) {
	if path == "" {
		return scenario.Integration()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open fixture: %w", err)
	}
	defer f.Close()
	return scenario.LoadFixture(f)
}

func goosOr(goos string) string {
	if goos == "" {
		return runtime.GOOS
	}
	return goos
}

var scenariosFlags tableFlags

var scenariosCmd = &cobra.Command{
	Use:   "scenarios",
	Short: "List the scenarios for the installed tool versions",
	Args:  cobra.NoArgs,
	RunE:  runScenarios,
}

func init() {
	rootCmd.AddCommand(scenariosCmd)
	scenariosFlags.register(scenariosCmd)
	scenariosCmd.Flags().Bool("json", false, "print the table as fixture JSON")
}

func runScenarios(cmd *cobra.Command, _ []string) error {
	scenarios, _, err := scenariosFlags.build(cmd.Context())
	if err != nil {
		return err
	}
	asJSON, _ := cmd.Flags().GetBool("json")
	out := cmd.OutOrStdout()
	if asJSON {
		entries := make([]scenario.FixtureEntry, len(scenarios))
		for i, s := range scenarios {
			entries[i] = s.Entry("")
		}
		return scenario.WriteFixture(out, entries)
	}
	_, _ = fmt.Fprintln(out, renderScenarioTable(scenarios))
	_, _ = fmt.Fprintln(out, cliMuted.Render(fmt.Sprintf("%d scenarios for %s", len(scenarios), goosOr(scenariosFlags.goos))))
	return nil
}
