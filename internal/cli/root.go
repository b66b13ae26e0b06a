package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hookwrap/hookwrap/pkg/version"
)

var (
	configPath string
	logLevel   string
	logFormat  string
)

var rootCmd = &cobra.Command{
	Use:   "hookwrap",
	Short: "pre-commit hooks for C and C++ analyzers and formatters",
	Long: `hookwrap wraps clang-format, uncrustify, clang-tidy, cppcheck, cpplint,
include-what-you-use and oclint as pre-commit hooks, and verifies the hooks
against the installed tool versions with a table of scenarios.`,
	Version:       version.GetVersion(),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		return InitDependencies(cmd.ErrOrStderr(), configPath, logLevel, logFormat)
	},
}

// ExitError carries a process exit code through cobra's error return.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// ExitCode maps the error returned by Execute to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var ee *ExitError
	if errors.As(err, &ee) {
		return ee.Code
	}
	return 1
}

// Execute runs the root command. Errors other than ExitError are printed
// to stderr.
func Execute() error {
	err := rootCmd.Execute()
	var ee *ExitError
	if err != nil && !errors.As(err, &ee) {
		_, _ = fmt.Fprintln(rootCmd.ErrOrStderr(), cliError.Render("Error:"), err)
	}
	return err
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf("hookwrap %s\n", version.GetFullVersion()))

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "settings file, or a directory holding .hookwrap.yaml")
	pf.StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
	pf.StringVar(&logFormat, "log-format", "", "log format: text, json")
}
