// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package operation

import (
	"context"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/walteh/metadate/pkg/plan"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"
)

// ✏️ NewRenameOperation creates an operation that scans a directory and
// applies the resulting plan
func NewRenameOperation(opts Options) (Operation, error) {
	if err := opts.validate(); err != nil {
		return nil, errors.Errorf("invalid options: %w", err)
	}
	return &renameOperation{
		BaseOperation: NewBaseOperation(opts),
	}, nil
}

// ✏️ renameOperation implements the rename operation
type renameOperation struct {
	BaseOperation
}

// Name returns the operation name for logging
func (op *renameOperation) Name() string {
	return "rename"
}

// 🏃 Execute runs the rename operation
func (op *renameOperation) Execute(ctx context.Context) error {
	logger := zerolog.Ctx(ctx)

	result, err := op.Planner.Scan(ctx, op.Dir)
	if err != nil {
		return errors.Errorf("scanning %s: %w", op.Dir, err)
	}

	// Track the whole plan first so files without a pending rename still
	// show up in the table
	for _, e := range result.Entries {
		op.StatusMgr.Track(ctx, e)
	}

	pending := result.Pending()
	if len(pending) == 0 {
		logger.Info().Msg("no files scheduled for renaming")
		if op.UserLogger != nil {
			op.UserLogger.LogSummary(op.StatusMgr.Counts())
		}
		return nil
	}

	if op.Config.DryRun {
		logger.Info().Int("files", len(pending)).Msg("dry run, leaving files untouched")
		if op.UserLogger != nil {
			op.UserLogger.LogSummary(op.StatusMgr.Counts())
		}
		return nil
	}

	logger.Info().Int("files", len(pending)).Msg("starting rename")

	op.StatusMgr.StartOperation(ctx, len(pending))
	defer op.StatusMgr.FinishOperation(ctx)

	if op.Config.Workers > 1 {
		op.applyParallel(ctx, pending)
	} else {
		op.applySequential(ctx, pending)
	}

	if op.UserLogger != nil {
		op.UserLogger.LogSummary(op.StatusMgr.Counts())
	}

	return nil
}

// 🔄 applySequential renames the pending files one at a time
func (op *renameOperation) applySequential(ctx context.Context, pending []plan.Entry) {
	for _, e := range pending {
		op.finish(ctx, op.renameFile(ctx, e))
	}
}

// ⚡ applyParallel renames the pending files on a bounded worker pool.
// Entries never share a source or destination name, so the only shared
// state is the status manager, which locks internally.
func (op *renameOperation) applyParallel(ctx context.Context, pending []plan.Entry) {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(op.Config.Workers)

	for _, e := range pending {
		e := e
		g.Go(func() error {
			op.finish(ctx, op.renameFile(ctx, e))
			return nil
		})
	}

	// Workers report per-file failures through the status manager, never
	// as errors, so a failed file cannot cancel the rest of the batch.
	_ = g.Wait()
}

// 📄 renameFile applies a single rename and returns the final entry
func (op *renameOperation) renameFile(ctx context.Context, e plan.Entry) plan.Entry {
	logger := zerolog.Ctx(ctx)

	src := filepath.Join(op.Dir, e.Original)
	dst := filepath.Join(op.Dir, e.Proposed)

	// The destination may have appeared since the scan; never overwrite it.
	// A file created between this check and the os.Rename below would still
	// be overwritten; that window is accepted, the tool assumes it is the
	// only writer in the directory while it runs.
	if _, err := os.Stat(dst); err == nil {
		logger.Warn().Str("file", e.Original).Str("proposed", e.Proposed).Msg("destination exists, skipping")
		e.Status = plan.StatusConflict
		return e
	} else if !os.IsNotExist(err) {
		logger.Error().Str("file", e.Original).Err(err).Msg("checking destination failed")
		e.Status = plan.StatusFailed
		e.Err = errors.Errorf("checking destination: %w", err)
		return e
	}

	if err := os.Rename(src, dst); err != nil {
		logger.Error().Str("file", e.Original).Err(err).Msg("rename failed")
		e.Status = plan.StatusFailed
		e.Err = errors.Errorf("renaming file: %w", err)
		return e
	}

	logger.Info().Str("file", e.Original).Str("new_name", e.Proposed).Msg("renamed")
	e.Status = plan.StatusRenamed
	return e
}

// 🏁 finish records a completed entry
func (op *renameOperation) finish(ctx context.Context, e plan.Entry) {
	op.StatusMgr.Track(ctx, e)
	op.StatusMgr.UpdateProgress(ctx)
	op.logEntry(e)
}
