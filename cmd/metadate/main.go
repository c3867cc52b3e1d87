package main

import (
	"context"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/metadate/cmd/metadate/commands"
	"github.com/walteh/metadate/cmd/metadate/opts"
	"github.com/walteh/metadate/pkg/config"
	"github.com/walteh/metadate/pkg/userlog"
	"gitlab.com/tozd/go/errors"
)

func main() {
	ro := &opts.RootOpts{}
	var logCloser io.Closer

	// Create root command
	rootCmd := &cobra.Command{
		Use:   "metadate",
		Short: "Rename media files after the timestamp in their metadata",
		Long: `metadate scans a folder of photos and videos, reads the capture date
embedded in each file (EXIF for images, the container movie header for
videos) and renames the files to that timestamp. File content is never
touched; only names change, and existing files are never overwritten.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "version" {
				return nil
			}

			// The log file location lives in the config, so load it first
			cfg, err := config.Load(cmd.Context(), configFile)
			if err != nil {
				userlog.NewUserLogger(cmd.Context()).LogValidation(false, "Configuration is invalid", err)
				return errors.Errorf("loading config: %w", err)
			}

			closer, err := setupLogging(cfg)
			if err != nil {
				return errors.Errorf("setting up logging: %w", err)
			}
			logCloser = closer

			ctx := zerolog.DefaultContextLogger.WithContext(cmd.Context())
			cmd.SetContext(ctx)

			*ro = *newRootOpts(ctx, cfg)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logCloser != nil {
				logCloser.Close()
			}
		},
	}

	// Add shared flags
	addRootFlags(rootCmd)

	// Add commands
	rootCmd.AddCommand(
		commands.NewScanCmd(ro),
		commands.NewRenameCmd(ro),
		NewVersionCmd(),
	)

	ctx := context.Background()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		userlog.NewUserLogger(ctx).LogValidation(false, "metadate failed", err)
		os.Exit(1)
	}
}
