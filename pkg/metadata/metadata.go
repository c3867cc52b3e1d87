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

// Package metadata extracts embedded timestamps from media files.
package metadata

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

var (
	// 🚫 ErrUnsupported indicates no extractor is registered for the file's extension
	ErrUnsupported = errors.Base("unsupported file type")

	// 🚫 ErrNoDate indicates the file carries no usable date in its metadata
	ErrNoDate = errors.Base("no date in metadata")
)

// 🎯 Extractor reads a single date/time value out of a file's metadata
type Extractor interface {
	// Name identifies the extractor in logs
	Name() string
	// Extract returns the embedded timestamp, or an error wrapping ErrNoDate
	// when the file has none
	Extract(ctx context.Context, path string) (time.Time, error)
}

// 🗺️ Registry maps file extensions to extractors
type Registry struct {
	byExt map[string]Extractor
}

// 🏭 NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{byExt: make(map[string]Extractor)}
}

// 🏭 NewDefaultRegistry creates a registry with the built-in extractors
// bound to the given extension lists.
func NewDefaultRegistry(imageExts, videoExts []string) *Registry {
	r := NewRegistry()
	r.Register(&EXIFExtractor{}, imageExts...)
	r.Register(&MP4Extractor{}, videoExts...)
	return r
}

// 📝 Register binds an extractor to one or more extensions (with leading dot)
func (r *Registry) Register(e Extractor, exts ...string) {
	for _, ext := range exts {
		r.byExt[strings.ToLower(ext)] = e
	}
}

// 🔍 ForFile returns the extractor for the file's extension
func (r *Registry) ForFile(name string) (Extractor, error) {
	ext := strings.ToLower(filepath.Ext(name))
	e, ok := r.byExt[ext]
	if !ok {
		return nil, errors.Errorf("%w: %s", ErrUnsupported, name)
	}
	return e, nil
}

// 🎯 Extract picks the extractor for the file and runs it
func (r *Registry) Extract(ctx context.Context, path string) (time.Time, error) {
	logger := zerolog.Ctx(ctx)

	e, err := r.ForFile(path)
	if err != nil {
		return time.Time{}, err
	}

	logger.Debug().
		Str("file", filepath.Base(path)).
		Str("extractor", e.Name()).
		Msg("extracting metadata date")

	taken, err := e.Extract(ctx, path)
	if err != nil {
		return time.Time{}, errors.Errorf("extracting date from %s: %w", filepath.Base(path), err)
	}

	logger.Debug().
		Str("file", filepath.Base(path)).
		Time("taken", taken).
		Msg("found metadata date")

	return taken, nil
}
