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

package metadata

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/rwcarlsen/goexif/exif"
	"gitlab.com/tozd/go/errors"
)

// 📅 exifDateLayout is the timestamp layout mandated by the EXIF standard
const exifDateLayout = "2006:01:02 15:04:05"

// 🗂️ exifDateTags are checked in order; capture time wins over file modification time
var exifDateTags = []exif.FieldName{
	exif.DateTimeOriginal,
	exif.DateTime,
}

// 📷 EXIFExtractor reads capture dates from image EXIF data
type EXIFExtractor struct{}

// Name identifies the extractor in logs
func (e *EXIFExtractor) Name() string {
	return "exif"
}

// 🎯 Extract returns the EXIF capture date of an image
func (e *EXIFExtractor) Extract(ctx context.Context, path string) (time.Time, error) {
	logger := zerolog.Ctx(ctx)

	f, err := os.Open(path)
	if err != nil {
		return time.Time{}, errors.Errorf("opening image: %w", err)
	}
	defer f.Close()

	x, err := exif.Decode(f)
	if err != nil {
		// Files without an EXIF segment are common, not exceptional
		return time.Time{}, errors.Errorf("%w: decoding EXIF: %w", ErrNoDate, err)
	}

	for _, name := range exifDateTags {
		tag, err := x.Get(name)
		if err != nil {
			continue
		}

		raw, err := tag.StringVal()
		if err != nil {
			return time.Time{}, errors.Errorf("%w: reading tag %s: %w", ErrNoDate, name, err)
		}

		logger.Debug().
			Str("file", filepath.Base(path)).
			Str("tag", string(name)).
			Str("raw", raw).
			Msg("found EXIF date tag")

		taken, err := time.ParseInLocation(exifDateLayout, raw, time.Local)
		if err != nil {
			return time.Time{}, errors.Errorf("%w: parsing tag %s value %q: %w", ErrNoDate, name, raw, err)
		}

		return taken, nil
	}

	return time.Time{}, errors.Errorf("%w: no EXIF date tag in %s", ErrNoDate, filepath.Base(path))
}
