package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hookwrap/hookwrap/internal/config"
	"github.com/hookwrap/hookwrap/internal/harness"
	"github.com/hookwrap/hookwrap/internal/runner"
)

var (
	verifyFlags    tableFlags
	verifyStrategy []string
	verifyFailFast bool
	verifyKeep     bool
	verifyVerbose  bool
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Run the scenario table against the installed tools",
	Long: `Run every scenario for the installed tool versions through the hooks and
compare output and exit code byte for byte. Each run works on fresh copies
of the sample files.`,
	Args: cobra.NoArgs,
	RunE: runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)
	verifyFlags.register(verifyCmd)
	fl := verifyCmd.Flags()
	fl.StringSliceVar(&verifyStrategy, "strategy", nil, "strategies to run: in-process, entry-point (default from config)")
	fl.BoolVar(&verifyFailFast, "fail-fast", false, "stop at the first failing run")
	fl.BoolVar(&verifyKeep, "keep", false, "keep the scratch directories")
	fl.BoolVarP(&verifyVerbose, "verbose", "v", false, "print every run")
}

func runVerify(cmd *cobra.Command, _ []string) error {
	cfg := deps.Config
	out := cmd.OutOrStdout()
	ctx := cmd.Context()

	names := cfg.Harness.Strategies
	if len(verifyStrategy) > 0 {
		names = verifyStrategy
	}
	strategies, err := buildStrategies(cfg, deps.Runner, names)
	if err != nil {
		return err
	}

	scenarios, versions, err := verifyFlags.build(ctx)
	if err != nil {
		return err
	}

	arena, err := harness.NewArena(cfg.Harness.SessionDir, verifyKeep || cfg.Harness.KeepScratch)
	if err != nil {
		return err
	}
	defer func() { _ = arena.Close() }()

	e := &harness.Executor{
		Arena:      arena,
		Strategies: strategies,
		RepoDir:    cfg.Integration.RepoDir,
		FailFast:   verifyFailFast || cfg.Harness.FailFast,
		OnOutcome: func(o harness.Outcome) {
			if !verifyVerbose {
				return
			}
			status := cliSuccess.Render("PASS")
			if !o.Passed() {
				status = cliError.Render("FAIL")
			}
			_, _ = fmt.Fprintf(out, "%s %s %s\n", status, o.Scenario.Name(), cliMuted.Render("["+o.Strategy+"]"))
		},
	}
	e.Integration = newIntegration(cfg, deps.Runner)

	if cfg.Harness.Journal != "" {
		j, err := harness.OpenJournal(cfg.Harness.Journal)
		if err != nil {
			return err
		}
		defer j.Close()
		run, err := j.BeginRun(goosOr(verifyFlags.goos), versions)
		if err != nil {
			return err
		}
		e.Journal, e.RunID = j, run
	}

	outcomes, runErr := e.Run(ctx, scenarios)
	if runErr != nil && len(outcomes) == 0 {
		return runErr
	}

	for _, o := range harness.Failures(outcomes) {
		_, _ = fmt.Fprintln(out, renderFailure(o))
	}
	sum := harness.Summarize(outcomes)
	_, _ = fmt.Fprintln(out, renderSummary(sum, versions))
	if !sum.OK() {
		return &ExitError{Code: 1}
	}
	return nil
}

// buildStrategies turns strategy names into harness strategies.
func buildStrategies(cfg *config.Config, r *runner.Exec, names []string) ([]harness.Strategy, error) {
	var out []harness.Strategy
	for _, name := range names {
		switch name {
		case config.StrategyInProcess:
			out = append(out, harness.InProcess{Runner: r})
		case config.StrategyEntryPoint:
			ep := harness.EntryPoint{Runner: &runner.Exec{Env: toolEnv(cfg)}}
			if fields := strings.Fields(cfg.Harness.HookCommand); len(fields) > 0 {
				ep.Command = func(id string) (string, []string) {
					return fields[0], append(fields[1:len(fields):len(fields)], id)
				}
			}
			out = append(out, ep)
		default:
			return nil, fmt.Errorf("%w: %s", config.ErrUnknownStrategy, name)
		}
	}
	if len(out) == 0 {
		return nil, errors.New("no strategy selected")
	}
	return out, nil
}

// toolEnv passes the configured tool paths on to hook subprocesses, which
// do not see this process's settings file.
func toolEnv(cfg *config.Config) []string {
	var env []string
	for id, t := range cfg.Tools {
		if t.Path != "" {
			env = append(env, config.ToolPathEnv(id)+"="+t.Path)
		}
	}
	return env
}

func newIntegration(cfg *config.Config, r runner.Runner) *harness.Integration {
	in := &harness.Integration{Runner: r, PreCommit: cfg.Integration.PreCommit}
	if cfg.Integration.Repo != config.LocalRepo {
		in.Repo, in.Rev = cfg.Integration.Repo, cfg.Integration.Rev
	}
	if fields := strings.Fields(cfg.Harness.HookCommand); len(fields) > 0 {
		in.Entry = func(id string) string { return cfg.Harness.HookCommand + " " + id }
	}
	return in
}
