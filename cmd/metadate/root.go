package main

import (
	"context"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/metadate/cmd/metadate/opts"
	"github.com/walteh/metadate/pkg/config"
	"github.com/walteh/metadate/pkg/metadata"
	"github.com/walteh/metadate/pkg/plan"
	"github.com/walteh/metadate/pkg/status"
	"github.com/walteh/metadate/pkg/userlog"
	"gitlab.com/tozd/go/errors"
)

var (
	// Flags
	configFile string
	logFile    string
	debug      bool
)

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVarP(&configFile, "config", "c", ".metadate.yaml", "config file path")
	cmd.PersistentFlags().StringVar(&logFile, "log-file", "", "log file path (empty uses the configured default, \"-\" disables)")
	cmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug logging")
}

// newRootOpts creates a new RootOpts with initialized dependencies
func newRootOpts(ctx context.Context, cfg *config.Config) *opts.RootOpts {
	// Create planner over the built-in extractors
	registry := metadata.NewDefaultRegistry(cfg.ImageExtensions, cfg.VideoExtensions)
	planner := plan.NewPlanner(cfg, registry)

	return &opts.RootOpts{
		Config:     cfg,
		Planner:    planner,
		StatusMgr:  status.NewManager(os.Stdout),
		UserLogger: userlog.NewUserLogger(ctx),
	}
}

// setupLogging configures zerolog based on flags and the configured log file.
// The returned closer owns the log file handle and may be nil.
func setupLogging(cfg *config.Config) (io.Closer, error) {
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	target := logFile
	if target == "" {
		target = cfg.LogFile
	}

	writers := []io.Writer{zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) {
		w.Out = os.Stderr
	})}

	var closer io.Closer
	if target != "-" {
		f, err := os.OpenFile(target, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return nil, errors.Errorf("opening log file: %w", err)
		}
		writers = append(writers, f)
		closer = f
	}

	log := zerolog.New(zerolog.MultiLevelWriter(writers...)).With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &log
	return closer, nil
}
