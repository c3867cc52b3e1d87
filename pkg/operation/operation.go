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

// Package operation provides the scan and rename operations of metadate.
package operation

import (
	"context"

	"github.com/walteh/metadate/pkg/config"
	"github.com/walteh/metadate/pkg/plan"
	"github.com/walteh/metadate/pkg/status"
	"github.com/walteh/metadate/pkg/userlog"
	"gitlab.com/tozd/go/errors"
)

// 🎯 Operation defines a single unit of work over one directory
type Operation interface {
	// Name returns the operation name for logging
	Name() string
	// Execute runs the operation
	Execute(ctx context.Context) error
}

// 🔧 Options contains shared dependencies for operations
type Options struct {
	// Config is the renamer configuration
	Config *config.Config
	// Planner builds the rename plan
	Planner *plan.Planner
	// StatusMgr tracks per-file outcomes
	StatusMgr *status.Manager
	// UserLogger renders user-facing lines; optional
	UserLogger *userlog.UserLogger
	// Dir is the directory to operate on
	Dir string
}

// 🔍 validate checks that the options are complete
func (o Options) validate() error {
	if o.Config == nil {
		return errors.Errorf("config is required")
	}
	if o.Planner == nil {
		return errors.Errorf("planner is required")
	}
	if o.StatusMgr == nil {
		return errors.Errorf("status manager is required")
	}
	if o.Dir == "" {
		return errors.Errorf("directory is required")
	}
	return nil
}

// 🏗️ BaseOperation holds the dependencies shared by all operations
type BaseOperation struct {
	Options
}

// 🏭 NewBaseOperation creates a new base operation
func NewBaseOperation(opts Options) BaseOperation {
	return BaseOperation{Options: opts}
}

// 📢 logEntry forwards an entry to the user logger when one is set
func (op *BaseOperation) logEntry(e plan.Entry) {
	if op.UserLogger != nil {
		op.UserLogger.LogEntry(e)
	}
}
