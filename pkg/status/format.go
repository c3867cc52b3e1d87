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

package status

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/walteh/metadate/pkg/plan"
)

// 🎨 Display configuration
const (
	fileIndent  = 4  // spaces to indent file entries
	nameWidth   = 35 // Base width for filename
	statusWidth = 15 // Width for status text
)

// 🎨 EntryFormatter defines how plan entries and progress should be rendered
type EntryFormatter interface {
	// FormatEntry formats one plan entry as a console row
	FormatEntry(e plan.Entry) string

	// FormatProgress formats a progress message
	FormatProgress(current, total int) string

	// FormatError formats a per-file error message
	FormatError(err error) string
}

// 🎨 DefaultEntryFormatter provides the default console rendering
type DefaultEntryFormatter struct{}

// 🏭 NewDefaultEntryFormatter creates a new DefaultEntryFormatter
func NewDefaultEntryFormatter() *DefaultEntryFormatter {
	return &DefaultEntryFormatter{}
}

// 🎯 FormatEntry formats a plan entry for display
func (f *DefaultEntryFormatter) FormatEntry(e plan.Entry) string {
	// Determine prefix symbol
	var prefix string
	switch e.Status {
	case plan.StatusRenamed:
		prefix = color.GreenString("✓")
	case plan.StatusReady:
		prefix = color.CyanString("•")
	case plan.StatusNoDate:
		prefix = color.YellowString("?")
	case plan.StatusConflict, plan.StatusFailed:
		prefix = color.RedString("✗")
	default:
		prefix = color.HiBlackString("-")
	}

	// Format parts with padding
	namePart := fmt.Sprintf("%-*s", nameWidth, e.Original)
	proposedPart := fmt.Sprintf("%-*s", nameWidth, e.Proposed)
	statusPart := fmt.Sprintf("%-*s", statusWidth, e.Status.String())

	// Build final string with indentation
	return fmt.Sprintf("%s%s %s %s %s",
		strings.Repeat(" ", fileIndent),
		prefix,
		namePart,
		proposedPart,
		statusPart,
	)
}

// 📈 FormatProgress formats a progress message with percentage
func (f *DefaultEntryFormatter) FormatProgress(current, total int) string {
	if current < 0 {
		current = 0
	}
	if total < 0 {
		total = 0
	}

	var percentage float64
	if total > 0 {
		percentage = float64(current) / float64(total) * 100
	} else if current > 0 {
		percentage = 100
	}
	if percentage > 100 {
		percentage = 100
	}

	if current >= total {
		return fmt.Sprintf("✅ %d/%d files (%.0f%%)", current, total, percentage)
	}
	return fmt.Sprintf("⏳ %d/%d files (%.0f%%)", current, total, percentage)
}

// ❌ FormatError formats a per-file error, indented under its row
func (f *DefaultEntryFormatter) FormatError(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("%s%s %v",
		strings.Repeat(" ", fileIndent+2),
		color.RedString("✗"),
		err,
	)
}
