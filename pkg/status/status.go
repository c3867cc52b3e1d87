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
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/rs/zerolog"
	"github.com/walteh/metadate/pkg/plan"
	"gitlab.com/tozd/go/errors"
)

// 📊 Counts summarizes a finished operation
type Counts struct {
	Ready    int
	NoChange int
	NoDate   int
	Conflict int
	Renamed  int
	Failed   int
}

// Total returns the number of tracked files
func (c Counts) Total() int {
	return c.Ready + c.NoChange + c.NoDate + c.Conflict + c.Renamed + c.Failed
}

// 🔧 Manager tracks plan entries as they move through scan and rename
type Manager struct {
	console   io.Writer
	formatter EntryFormatter

	mu      sync.RWMutex
	entries map[string]plan.Entry
	order   []string

	// Progress tracking
	total     int
	processed int
}

// 🏭 NewManager creates a new status manager writing rows to console
func NewManager(console io.Writer) *Manager {
	return &Manager{
		console:   console,
		formatter: NewDefaultEntryFormatter(),
		entries:   make(map[string]plan.Entry),
	}
}

// 📝 Track records an entry (keyed by original name) and renders its row
func (m *Manager) Track(ctx context.Context, e plan.Entry) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, known := m.entries[e.Original]; !known {
		m.order = append(m.order, e.Original)
	}
	m.entries[e.Original] = e

	fmt.Fprintln(m.console, m.formatter.FormatEntry(e))
	if e.Err != nil {
		fmt.Fprintln(m.console, m.formatter.FormatError(e.Err))
	}

	logger := zerolog.Ctx(ctx)
	event := logger.Info()
	if e.Err != nil {
		event = logger.Error().Err(e.Err)
	}
	event.
		Str("file", e.Original).
		Str("proposed", e.Proposed).
		Str("status", e.Status.String()).
		Msg("file status")
}

// 🔍 Get returns the tracked entry for an original name
func (m *Manager) Get(original string) (plan.Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.entries[original]
	if !ok {
		return plan.Entry{}, errors.Errorf("file not tracked: %s", original)
	}
	return e, nil
}

// 📋 Entries returns all tracked entries in insertion order
func (m *Manager) Entries() []plan.Entry {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]plan.Entry, 0, len(m.order))
	for _, name := range m.order {
		out = append(out, m.entries[name])
	}
	return out
}

// 📊 Counts tallies the tracked entries by status
func (m *Manager) Counts() Counts {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var c Counts
	for _, e := range m.entries {
		switch e.Status {
		case plan.StatusReady:
			c.Ready++
		case plan.StatusNoChange:
			c.NoChange++
		case plan.StatusNoDate:
			c.NoDate++
		case plan.StatusConflict:
			c.Conflict++
		case plan.StatusRenamed:
			c.Renamed++
		case plan.StatusFailed:
			c.Failed++
		}
	}
	return c
}

// 🚀 StartOperation begins progress tracking
func (m *Manager) StartOperation(ctx context.Context, total int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.total = total
	m.processed = 0
	zerolog.Ctx(ctx).Info().Int("total", total).Msg("starting operation")
}

// 📈 UpdateProgress records that another file has been processed
func (m *Manager) UpdateProgress(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.processed++
	zerolog.Ctx(ctx).Debug().
		Int("processed", m.processed).
		Int("total", m.total).
		Msg("progress")
}

// 🏁 FinishOperation ends progress tracking and prints the closing progress line
func (m *Manager) FinishOperation(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	fmt.Fprintln(m.console, m.formatter.FormatProgress(m.processed, m.total))

	zerolog.Ctx(ctx).Info().
		Int("processed", m.processed).
		Int("total", m.total).
		Msg("operation complete")
}
