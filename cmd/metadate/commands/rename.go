package commands

import (
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/walteh/metadate/cmd/metadate/opts"
	"github.com/walteh/metadate/pkg/operation"
	"gitlab.com/tozd/go/errors"
)

// NewRenameCmd creates a new rename command
func NewRenameCmd(ro *opts.RootOpts) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "rename <directory>",
		Short: "Rename media files to their metadata timestamp",
		Long: `Rename scans the directory and applies the resulting plan.
It will:
1. Extract the capture date from each file's metadata
2. Derive the new timestamp name, disambiguating duplicates
3. Rename each file in place, never overwriting an existing file
4. Report every outcome; one file's failure never stops the rest`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			dir, err := filepath.Abs(args[0])
			if err != nil {
				return errors.Errorf("resolving directory: %w", err)
			}

			if dryRun {
				ro.Config.DryRun = true
			}

			op, err := operation.NewRenameOperation(operation.Options{
				Config:     ro.Config,
				Planner:    ro.Planner,
				StatusMgr:  ro.StatusMgr,
				UserLogger: ro.UserLogger,
				Dir:        dir,
			})
			if err != nil {
				return errors.Errorf("creating rename operation: %w", err)
			}

			if err := operation.NewRunner(false).Run(ctx, op); err != nil {
				return errors.Errorf("renaming files: %w", err)
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "plan only, leave files untouched")

	return cmd
}
