package commands

import (
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/walteh/metadate/cmd/metadate/opts"
	"github.com/walteh/metadate/pkg/operation"
	"gitlab.com/tozd/go/errors"
)

// NewScanCmd creates a new scan command
func NewScanCmd(ro *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan <directory>",
		Short: "Preview the rename plan for a directory",
		Long: `Scan reads the metadata of every supported media file in the directory
and prints the name each file would receive, without renaming anything.
It will:
1. Walk the directory in lexical order
2. Extract the capture date from each file's metadata
3. Derive the proposed timestamp name
4. Report files whose metadata holds no usable date`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			dir, err := filepath.Abs(args[0])
			if err != nil {
				return errors.Errorf("resolving directory: %w", err)
			}

			op, err := operation.NewScanOperation(operation.Options{
				Config:     ro.Config,
				Planner:    ro.Planner,
				StatusMgr:  ro.StatusMgr,
				UserLogger: ro.UserLogger,
				Dir:        dir,
			})
			if err != nil {
				return errors.Errorf("creating scan operation: %w", err)
			}

			if err := operation.NewRunner(false).Run(ctx, op); err != nil {
				return errors.Errorf("scanning directory: %w", err)
			}

			return nil
		},
	}

	return cmd
}
