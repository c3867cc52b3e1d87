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

	gomp4 "github.com/abema/go-mp4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🕰️ quicktimeEpoch is the zero point of mvhd timestamps (seconds since 1904)
var quicktimeEpoch = time.Date(1904, time.January, 1, 0, 0, 0, 0, time.UTC)

// 🎬 MP4Extractor reads the movie-header creation time from MP4/QuickTime containers
type MP4Extractor struct{}

// Name identifies the extractor in logs
func (e *MP4Extractor) Name() string {
	return "mp4"
}

// 🎯 Extract returns the container creation time of a video
func (e *MP4Extractor) Extract(ctx context.Context, path string) (time.Time, error) {
	logger := zerolog.Ctx(ctx)

	f, err := os.Open(path)
	if err != nil {
		return time.Time{}, errors.Errorf("opening video: %w", err)
	}
	defer f.Close()

	var created time.Time
	_, err = gomp4.ReadBoxStructure(f, func(h *gomp4.ReadHandle) (interface{}, error) {
		switch h.BoxInfo.Type {
		case gomp4.BoxTypeMoov():
			return h.Expand()
		case gomp4.BoxTypeMvhd():
			box, _, err := h.ReadPayload()
			if err != nil {
				return nil, err
			}
			mvhd, ok := box.(*gomp4.Mvhd)
			if !ok {
				return nil, nil
			}

			var secs uint64
			if mvhd.GetVersion() == 0 {
				secs = uint64(mvhd.CreationTimeV0)
			} else {
				secs = mvhd.CreationTimeV1
			}

			logger.Debug().
				Str("file", filepath.Base(path)).
				Uint64("mvhd_creation_time", secs).
				Msg("found movie header")

			if secs != 0 {
				created = quicktimeEpoch.Add(time.Duration(secs) * time.Second)
			}
			return nil, nil
		}
		return nil, nil
	})
	if err != nil {
		return time.Time{}, errors.Errorf("%w: parsing container: %w", ErrNoDate, err)
	}

	// Cameras that do not track time write 0; anything before the Unix epoch
	// is equally useless as a filename.
	if created.IsZero() || created.Before(time.Unix(0, 0)) {
		return time.Time{}, errors.Errorf("%w: no creation time in %s", ErrNoDate, filepath.Base(path))
	}

	return created, nil
}
