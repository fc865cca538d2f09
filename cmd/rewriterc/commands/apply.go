package commands

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/rewriterc/cmd/rewriterc/opts"
	"github.com/walteh/rewriterc/pkg/report"
	"github.com/walteh/rewriterc/pkg/runner"
	"github.com/walteh/rewriterc/pkg/ruleset"
	"gitlab.com/tozd/go/errors"
)

// NewApplyCmd creates a new apply command
func NewApplyCmd(opts *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Apply the ruleset to the target file",
		Long: `Apply rewrites the target file with the configured ruleset.
It will:
1. Load the target file fully into memory
2. Write a backup to <target><backup_suffix>
3. Apply every rule in order against the in-memory buffer
4. Atomically overwrite the target and report per-rule change counts

The target is never touched before the backup is verified written.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ctx = zerolog.Ctx(ctx).With().Str("command", "apply").Logger().WithContext(ctx)

			rules, err := ruleset.FromConfig(opts.Config)
			if err != nil {
				return errors.Errorf("compiling ruleset: %w", err)
			}

			run, err := runner.New(runner.Options{
				Target:           opts.Config.Target,
				Rules:            rules,
				BackupSuffix:     opts.Config.BackupSuffix,
				OnAlreadyApplied: runner.AlreadyAppliedMode(opts.Config.OnAlreadyApplied),
				Advisories:       opts.Config.Advisories,
			})
			if err != nil {
				return errors.Errorf("creating runner: %w", err)
			}

			opts.UserLogger.LogStage("Rewriting " + opts.Config.Target)
			rep, err := run.Run(ctx)
			if err != nil {
				return errors.Errorf("applying ruleset: %w", err)
			}
			if rep.BackupPath != "" {
				opts.UserLogger.LogBackup(opts.Config.Target, rep.BackupPath)
			}

			formatter := report.NewFormatter(true)
			if err := formatter.Render(cmd.OutOrStdout(), rep); err != nil {
				return errors.Errorf("rendering report: %w", err)
			}
			return nil
		},
	}

	return cmd
}
