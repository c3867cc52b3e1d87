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

// Package userlog renders user-facing progress lines for rename runs.
package userlog

import (
	"context"
	"fmt"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/walteh/metadate/pkg/plan"
	"github.com/walteh/metadate/pkg/status"
)

// 📢 UserLogger provides user-friendly feedback about rename outcomes
type UserLogger struct {
	log zerolog.Logger // for debug/error logging
}

// 🎯 NewUserLogger creates a new user logger
func NewUserLogger(ctx context.Context) *UserLogger {
	return &UserLogger{
		log: *zerolog.Ctx(ctx),
	}
}

// 📝 LogEntry logs a rename outcome with appropriate emoji and formatting
func (u *UserLogger) LogEntry(e plan.Entry) {
	var prefix, action string
	var printer *pterm.PrefixPrinter
	switch e.Status {
	case plan.StatusRenamed:
		prefix = "✨"
		action = "Renamed"
		printer = pterm.Success.WithPrefix(pterm.Prefix{Text: prefix})
	case plan.StatusReady:
		prefix = "🔄"
		action = "Ready"
		printer = pterm.Info.WithPrefix(pterm.Prefix{Text: prefix})
	case plan.StatusNoChange:
		prefix = "⏭️"
		action = "Unchanged"
		printer = pterm.Debug.WithPrefix(pterm.Prefix{Text: prefix})
	case plan.StatusNoDate:
		prefix = "❓"
		action = "No date in"
		printer = pterm.Warning.WithPrefix(pterm.Prefix{Text: prefix})
	case plan.StatusConflict:
		prefix = "⚠️"
		action = "Conflict on"
		printer = pterm.Warning.WithPrefix(pterm.Prefix{Text: prefix})
	case plan.StatusFailed:
		prefix = "❌"
		action = "Error on"
		printer = pterm.Error.WithPrefix(pterm.Prefix{Text: prefix})
	default:
		prefix = "📄"
		action = "Saw"
		printer = pterm.Debug.WithPrefix(pterm.Prefix{Text: prefix})
	}

	msg := fmt.Sprintf("%s %s", action, e.Original)
	if e.Proposed != "" && e.Proposed != e.Original {
		msg += fmt.Sprintf(" -> %s", e.Proposed)
	}

	if e.Err != nil {
		printer.Println(msg)
		pterm.Error.Println(e.Err)
		u.log.Error().Err(e.Err).Msg(msg) // Also log to zerolog for debugging
	} else {
		printer.Println(msg)
		u.log.Info().Msg(msg) // Also log to zerolog for debugging
	}
}

// 📊 LogSummary logs the closing tally of a run
func (u *UserLogger) LogSummary(c status.Counts) {
	msg := fmt.Sprintf("%d files: %d renamed, %d ready, %d unchanged, %d without date, %d conflicts, %d errors",
		c.Total(), c.Renamed, c.Ready, c.NoChange, c.NoDate, c.Conflict, c.Failed)

	if c.Conflict > 0 || c.Failed > 0 {
		pterm.Warning.WithPrefix(pterm.Prefix{Text: "⚠️"}).Println(msg)
		u.log.Warn().Msg(msg)
	} else {
		pterm.Success.WithPrefix(pterm.Prefix{Text: "✅"}).Println(msg)
		u.log.Info().Msg(msg)
	}
}

// 🔍 LogValidation logs validation results
func (u *UserLogger) LogValidation(valid bool, description string, err error) {
	if valid {
		pterm.Success.WithPrefix(pterm.Prefix{Text: "✅"}).Println(description)
		u.log.Info().Msg(description)
	} else {
		if err != nil {
			pterm.Error.WithPrefix(pterm.Prefix{Text: "❌"}).Println(description)
			pterm.Error.Println(err)
			u.log.Error().Err(err).Msg(description)
		} else {
			pterm.Warning.WithPrefix(pterm.Prefix{Text: "⚠️"}).Println(description)
			u.log.Warn().Msg(description)
		}
	}
}
