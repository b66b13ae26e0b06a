package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/hookwrap/hookwrap/internal/hook"
)

var hookCmd = &cobra.Command{
	Use:   "hook",
	Short: "Run a wrapped tool as a pre-commit hook",
	Long: `Run one of the wrapped tools the way pre-commit runs its hook entry point.
Every argument after the hook id is passed to the hook unchanged: existing
files are the targets, everything else goes to the tool.`,
}

func init() {
	rootCmd.AddCommand(hookCmd)

	for _, t := range hook.All() {
		id := t.ID
		hookCmd.AddCommand(&cobra.Command{
			Use:                id + " [files] [tool flags]",
			Short:              fmt.Sprintf("Run the %s hook (%s)", id, t.Kind),
			DisableFlagParsing: true,
			RunE: func(cmd *cobra.Command, args []string) error {
				code := runHook(cmd.Context(), id, args, cmd.OutOrStdout(), cmd.ErrOrStderr())
				if code != 0 {
					return &ExitError{Code: code}
				}
				return nil
			},
		})
	}

	hookCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List the available hooks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), renderToolTable(hook.All()))
			return nil
		},
	})
}

func runHook(ctx context.Context, id string, argv []string, stdout, stderr io.Writer) int {
	if ctx == nil {
		ctx = context.Background()
	}
	t, err := hook.Lookup(id)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 1
	}
	w := hook.New(t, deps.Runner)
	return w.Run(ctx, argv, stdout, stderr)
}

// RunHook is the main function of the <id>-hook entry points. It reads
// the settings from the working directory and returns the exit code.
func RunHook(id string, argv []string) int {
	if err := InitDependencies(os.Stderr, "", "", ""); err != nil {
		pe := &hook.ProblemError{Tool: id, Problem: "invalid hookwrap configuration", Details: err.Error(), Err: err}
		_, _ = fmt.Fprint(os.Stderr, pe.Error())
		return 1
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return runHook(ctx, id, argv, os.Stdout, os.Stderr)
}
