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

// NewPlanCmd creates a new plan command
func NewPlanCmd(opts *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Preview what apply would change, without writing anything",
		Long: `Plan runs the ruleset against an in-memory copy of the target file.
It reports per-rule change counts and a diff preview. No backup is written
and the target file is left untouched.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ctx = zerolog.Ctx(ctx).With().Str("command", "plan").Logger().WithContext(ctx)

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

			opts.UserLogger.LogStage("Planning rewrite of " + opts.Config.Target)
			rep, err := run.Plan(ctx)
			if err != nil {
				return errors.Errorf("planning ruleset: %w", err)
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
