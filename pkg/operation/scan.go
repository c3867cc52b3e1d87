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

	"gitlab.com/tozd/go/errors"
)

// 🔍 NewScanOperation creates an operation that plans renames without
// touching the filesystem
func NewScanOperation(opts Options) (Operation, error) {
	if err := opts.validate(); err != nil {
		return nil, errors.Errorf("invalid options: %w", err)
	}
	return &scanOperation{
		BaseOperation: NewBaseOperation(opts),
	}, nil
}

// 🔍 scanOperation implements the scan operation
type scanOperation struct {
	BaseOperation
}

// Name returns the operation name for logging
func (op *scanOperation) Name() string {
	return "scan"
}

// 🏃 Execute runs the scan operation
func (op *scanOperation) Execute(ctx context.Context) error {
	result, err := op.Planner.Scan(ctx, op.Dir)
	if err != nil {
		return errors.Errorf("scanning %s: %w", op.Dir, err)
	}

	// Track every entry so the table and counts are complete
	op.StatusMgr.StartOperation(ctx, len(result.Entries))
	defer op.StatusMgr.FinishOperation(ctx)

	for _, e := range result.Entries {
		op.StatusMgr.Track(ctx, e)
		op.StatusMgr.UpdateProgress(ctx)
	}

	if op.UserLogger != nil {
		op.UserLogger.LogSummary(op.StatusMgr.Counts())
	}

	return nil
}
