package commands

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/rewriterc/cmd/rewriterc/opts"
	"github.com/walteh/rewriterc/pkg/backup"
	"gitlab.com/tozd/go/errors"
)

// NewRestoreCmd creates a new restore command
func NewRestoreCmd(opts *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "restore",
		Short: "Restore the target file from its backup",
		Long: `Restore copies <target><backup_suffix> back over the target file,
undoing a previous apply. The backup itself is left in place.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ctx = zerolog.Ctx(ctx).With().Str("command", "restore").Logger().WithContext(ctx)

			guard, err := backup.NewGuard(opts.Config.BackupSuffix)
			if err != nil {
				return errors.Errorf("creating backup guard: %w", err)
			}
			if err := guard.Restore(ctx, opts.Config.Target); err != nil {
				return errors.Errorf("restoring target: %w", err)
			}

			opts.UserLogger.LogValidation(true, "Restored "+opts.Config.Target+" from "+guard.BackupPath(opts.Config.Target), nil)
			return nil
		},
	}

	return cmd
}
