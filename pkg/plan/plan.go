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

// Package plan scans a directory and proposes timestamp-based filenames.
package plan

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/walteh/metadate/pkg/config"
	"github.com/walteh/metadate/pkg/metadata"
	"gitlab.com/tozd/go/errors"
)

// 📊 Status represents the state of a file within a rename plan
type Status int

const (
	StatusUnknown  Status = iota
	StatusReady           // Proposed name differs and the destination is free
	StatusNoChange        // File already carries its proposed name
	StatusNoDate          // Metadata holds no usable timestamp
	StatusConflict        // Proposed name is taken
	StatusRenamed         // Rename applied
	StatusFailed          // Rename failed at the filesystem level
)

// String returns a string representation of Status
func (s Status) String() string {
	switch s {
	case StatusReady:
		return "ready"
	case StatusNoChange:
		return "no change"
	case StatusNoDate:
		return "no date found"
	case StatusConflict:
		return "conflict"
	case StatusRenamed:
		return "renamed"
	case StatusFailed:
		return "error"
	default:
		return "unknown"
	}
}

// 📄 Entry pairs a file with its proposed name and outcome
type Entry struct {
	Original string    // Current base name
	Proposed string    // Proposed base name, empty when none could be derived
	Status   Status    // Current status
	Taken    time.Time // Timestamp extracted from metadata
	Err      error     // Any error associated with this file
}

// 📋 Plan is the result of scanning one directory
type Plan struct {
	Dir     string
	Entries []Entry
}

// 🔍 Pending returns the entries that still need a rename
func (p *Plan) Pending() []Entry {
	var pending []Entry
	for _, e := range p.Entries {
		if e.Status == StatusReady {
			pending = append(pending, e)
		}
	}
	return pending
}

// 🕰️ renamedRegex matches names already produced by the default format,
// with or without a disambiguating counter
var renamedRegex = regexp.MustCompile(`(?i)^\d{4}-\d{2}-\d{2}_\d{2}-\d{2}-\d{2}(_\d+)?(\.\w+)?$`)

// 🗺️ Planner builds rename plans for directories
type Planner struct {
	cfg      *config.Config
	registry *metadata.Registry
}

// 🏭 NewPlanner creates a new planner
func NewPlanner(cfg *config.Config, registry *metadata.Registry) *Planner {
	return &Planner{cfg: cfg, registry: registry}
}

// 🎯 Scan walks the directory in lexical order and proposes a new name for
// every supported media file. Nothing is renamed; per-file problems are
// recorded on the entry, not returned.
func (p *Planner) Scan(ctx context.Context, dir string) (*Plan, error) {
	logger := zerolog.Ctx(ctx)
	logger.Info().Str("dir", dir).Msg("scanning directory")

	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Errorf("reading directory: %w", err)
	}

	result := &Plan{Dir: dir}
	seen := make(map[string]int) // formatted timestamp -> proposals so far

	for _, de := range dirEntries {
		name := de.Name()

		if de.IsDir() {
			logger.Debug().Str("name", name).Msg("skipping directory")
			continue
		}

		if p.ignored(ctx, name) {
			continue
		}

		if p.cfg.Format == config.DefaultFormat && renamedRegex.MatchString(name) {
			logger.Debug().Str("file", name).Msg("skipping already renamed file")
			continue
		}

		if _, err := p.registry.ForFile(name); err != nil {
			logger.Debug().Str("file", name).Msg("skipping unsupported file type")
			continue
		}

		taken, err := p.registry.Extract(ctx, filepath.Join(dir, name))
		if err != nil {
			if errors.Is(err, metadata.ErrNoDate) {
				logger.Info().Str("file", name).Msg("no metadata date")
				result.Entries = append(result.Entries, Entry{Original: name, Status: StatusNoDate, Err: err})
			} else {
				logger.Error().Str("file", name).Err(err).Msg("reading metadata failed")
				result.Entries = append(result.Entries, Entry{Original: name, Status: StatusFailed, Err: err})
			}
			continue
		}

		proposed, ok := p.propose(dir, name, taken, seen)
		if !ok {
			logger.Warn().Str("file", name).Str("proposed", proposed).Msg("proposed name is taken")
			result.Entries = append(result.Entries, Entry{Original: name, Proposed: proposed, Status: StatusConflict, Taken: taken})
			continue
		}

		status := StatusReady
		if proposed == name {
			status = StatusNoChange
		}
		logger.Debug().Str("file", name).Str("proposed", proposed).Msg("proposed new name")
		result.Entries = append(result.Entries, Entry{Original: name, Proposed: proposed, Status: status, Taken: taken})
	}

	logger.Info().
		Str("dir", dir).
		Int("files", len(result.Entries)).
		Int("ready", len(result.Pending())).
		Msg("scan complete")

	return result, nil
}

// 🙈 ignored checks the name against the configured glob patterns
func (p *Planner) ignored(ctx context.Context, name string) bool {
	logger := zerolog.Ctx(ctx)
	for _, pattern := range p.cfg.IgnorePatterns {
		matched, err := doublestar.Match(pattern, name)
		if err != nil {
			logger.Debug().Str("pattern", pattern).Str("file", name).Err(err).Msg("error matching pattern")
			continue
		}
		if matched {
			logger.Debug().Str("file", name).Str("pattern", pattern).Msg("file ignored by pattern")
			return true
		}
	}
	return false
}

// 💡 propose derives the new base name for a file. The bare formatted name is
// preferred; when it is already spoken for, the conflict policy decides
// between probing numbered suffixes and giving up.
func (p *Planner) propose(dir, original string, taken time.Time, seen map[string]int) (string, bool) {
	ext := filepath.Ext(original)
	formatted := taken.Format(p.cfg.Format)

	candidate := formatted + ext
	n := seen[formatted]
	if n == 0 && !p.nameTaken(dir, original, candidate) {
		seen[formatted] = 1
		return candidate, true
	}

	if p.cfg.OnConflict == config.ConflictSkip {
		return candidate, false
	}

	for i := max(n, 1); ; i++ {
		candidate = fmt.Sprintf("%s_%d%s", formatted, i, ext)
		if !p.nameTaken(dir, original, candidate) {
			seen[formatted] = i + 1
			return candidate, true
		}
	}
}

// nameTaken reports whether candidate exists on disk. A file's own name is
// never taken, so an up-to-date file counts as unchanged rather than
// conflicting with itself.
func (p *Planner) nameTaken(dir, original, candidate string) bool {
	if candidate == original {
		return false
	}
	_, err := os.Stat(filepath.Join(dir, candidate))
	return err == nil
}
