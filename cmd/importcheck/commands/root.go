// Package commands implements CLI command handlers for importcheck.
package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/importcheck/pkg/version"
)

// globalFlags are the persistent flags shared by every subcommand.
type globalFlags struct {
	verbose bool
	quiet   bool
}

// NewRootCommand builds the importcheck command tree.
func NewRootCommand() *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "importcheck",
		Short: "Detect hallucinated imports in source code",
		Long: `importcheck verifies that every import in a project refers to something
that exists: a project file, a declared dependency or a standard library module.

Commands:
  scan      Check the imports of a project tree
  version   Show version information`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVarP(&flags.quiet, "quiet", "q", false, "suppress output")

	rootCmd.AddCommand(NewScanCommand(flags))
	rootCmd.AddCommand(versionCmd())

	return rootCmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
		},
	}
}
