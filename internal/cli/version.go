package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hookwrap/hookwrap/internal/hook"
	"github.com/hookwrap/hookwrap/internal/scenario"
	"github.com/hookwrap/hookwrap/pkg/version"
)

var versionTools bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the hookwrap version",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		out := cmd.OutOrStdout()
		_, _ = fmt.Fprintf(out, "hookwrap %s\n", version.GetFullVersion())
		if !versionTools {
			return nil
		}
		versions, err := scenario.ProbeVersions(cmd.Context(), deps.Runner, nil)
		if err != nil {
			return err
		}
		for _, id := range hook.IDs() {
			v, ok := versions[id]
			if !ok {
				v = cliMuted.Render("not installed")
			}
			_, _ = fmt.Fprintf(out, "  %-22s %s\n", id, v)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.Flags().BoolVar(&versionTools, "tools", false, "also print the versions of the installed tools")
}
