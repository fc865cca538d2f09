package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"github.com/walteh/rewriterc/cmd/rewriterc/commands"
	"github.com/walteh/rewriterc/cmd/rewriterc/opts"
)

func main() {
	rootOpts := &opts.RootOpts{}

	// Create root command
	rootCmd := &cobra.Command{
		Use:   "rewriterc",
		Short: "A safety-conscious single-file source rewriter",
		Long: `rewriterc applies an ordered ruleset of regex substitutions and
line-range splices to one source file, writing a backup before any mutation
and reporting per-rule change counts.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Flags are parsed by now, so logging and config can initialize
			logger := setupLogging()
			ctx := logger.WithContext(cmd.Context())
			cmd.SetContext(ctx)

			loaded, err := newRootOpts(ctx)
			if err != nil {
				return err
			}
			*rootOpts = *loaded
			return nil
		},
	}

	// Add shared flags
	addRootFlags(rootCmd)

	// Add commands
	rootCmd.AddCommand(
		commands.NewApplyCmd(rootOpts),
		commands.NewPlanCmd(rootOpts),
		commands.NewRestoreCmd(rootOpts),
	)

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
