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

package plan_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/metadate/pkg/config"
	"github.com/walteh/metadate/pkg/metadata"
	"github.com/walteh/metadate/pkg/plan"
	"github.com/walteh/metadate/pkg/testutils"
)

// 🧪 createTestEnv creates a planner over a temp directory
func createTestEnv(t *testing.T, cfg *config.Config) (context.Context, *plan.Planner, string) {
	logger := zerolog.New(zerolog.NewTestWriter(t))
	ctx := logger.WithContext(context.Background())

	if cfg == nil {
		cfg = config.Default()
	}
	registry := metadata.NewDefaultRegistry(cfg.ImageExtensions, cfg.VideoExtensions)

	return ctx, plan.NewPlanner(cfg, registry), t.TempDir()
}

// entryFor finds the plan entry for a given original name
func entryFor(t *testing.T, p *plan.Plan, name string) plan.Entry {
	t.Helper()
	for _, e := range p.Entries {
		if e.Original == name {
			return e
		}
	}
	t.Fatalf("no entry for %s in plan", name)
	return plan.Entry{}
}

func TestScanProposesBareName(t *testing.T) {
	ctx, planner, dir := createTestEnv(t, nil)

	taken := time.Date(2023, time.June, 1, 14, 30, 0, 0, time.Local)
	testutils.WriteJPEG(t, filepath.Join(dir, "IMG_0001.jpg"), taken)

	p, err := planner.Scan(ctx, dir)
	require.NoError(t, err, "scan should succeed")
	require.Len(t, p.Entries, 1, "should have one entry")

	e := p.Entries[0]
	assert.Equal(t, "IMG_0001.jpg", e.Original, "original name should match")
	assert.Equal(t, "2023-06-01_14-30-00.jpg", e.Proposed, "proposed name should use the default format")
	assert.Equal(t, plan.StatusReady, e.Status, "entry should be ready")
	assert.True(t, taken.Equal(e.Taken), "extracted timestamp should be recorded")
}

func TestScanDisambiguatesEqualTimestamps(t *testing.T) {
	ctx, planner, dir := createTestEnv(t, nil)

	taken := time.Date(2023, time.June, 1, 14, 30, 0, 0, time.Local)
	testutils.WriteJPEG(t, filepath.Join(dir, "a.jpg"), taken)
	testutils.WriteJPEG(t, filepath.Join(dir, "b.jpg"), taken)
	testutils.WriteJPEG(t, filepath.Join(dir, "c.jpg"), taken)

	p, err := planner.Scan(ctx, dir)
	require.NoError(t, err, "scan should succeed")
	require.Len(t, p.Entries, 3, "should have three entries")

	assert.Equal(t, "2023-06-01_14-30-00.jpg", entryFor(t, p, "a.jpg").Proposed, "first file should get the bare name")
	assert.Equal(t, "2023-06-01_14-30-00_1.jpg", entryFor(t, p, "b.jpg").Proposed, "second file should get a counter")
	assert.Equal(t, "2023-06-01_14-30-00_2.jpg", entryFor(t, p, "c.jpg").Proposed, "third file should increment the counter")
}

func TestScanProbesPastExistingFiles(t *testing.T) {
	ctx, planner, dir := createTestEnv(t, nil)

	taken := time.Date(2023, time.June, 1, 14, 30, 0, 0, time.Local)
	testutils.WriteJPEG(t, filepath.Join(dir, "IMG_0001.jpg"), taken)
	// Both the bare name and the first counter are already taken on disk.
	// Matching the default format means they are also skipped during scan.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "2023-06-01_14-30-00.jpg"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "2023-06-01_14-30-00_1.jpg"), []byte("y"), 0644))

	p, err := planner.Scan(ctx, dir)
	require.NoError(t, err, "scan should succeed")
	require.Len(t, p.Entries, 1, "already renamed files should not appear in the plan")

	e := p.Entries[0]
	assert.Equal(t, plan.StatusReady, e.Status, "entry should be ready")
	assert.Equal(t, "2023-06-01_14-30-00_2.jpg", e.Proposed, "probing should pass over taken names")
}

func TestScanSkipPolicyReportsConflict(t *testing.T) {
	cfg := config.Default()
	cfg.OnConflict = config.ConflictSkip
	ctx, planner, dir := createTestEnv(t, cfg)

	taken := time.Date(2023, time.June, 1, 14, 30, 0, 0, time.Local)
	testutils.WriteJPEG(t, filepath.Join(dir, "IMG_0001.jpg"), taken)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "2023-06-01_14-30-00.jpg"), []byte("x"), 0644))

	p, err := planner.Scan(ctx, dir)
	require.NoError(t, err, "scan should succeed")

	e := entryFor(t, p, "IMG_0001.jpg")
	assert.Equal(t, plan.StatusConflict, e.Status, "skip policy should report a conflict")
	assert.Empty(t, p.Pending(), "nothing should be pending")
}

func TestScanNoChangeWithCustomFormat(t *testing.T) {
	cfg := config.Default()
	cfg.Format = "20060102_150405"
	ctx, planner, dir := createTestEnv(t, cfg)

	taken := time.Date(2023, time.June, 1, 14, 30, 0, 0, time.Local)
	testutils.WriteJPEG(t, filepath.Join(dir, "20230601_143000.jpg"), taken)

	p, err := planner.Scan(ctx, dir)
	require.NoError(t, err, "scan should succeed")
	require.Len(t, p.Entries, 1, "should have one entry")

	e := p.Entries[0]
	assert.Equal(t, plan.StatusNoChange, e.Status, "a correctly named file should be no change")
	assert.Equal(t, e.Original, e.Proposed, "proposed name should equal the original")
	assert.Empty(t, p.Pending(), "nothing should be pending")
}

func TestScanReportsMissingDate(t *testing.T) {
	ctx, planner, dir := createTestEnv(t, nil)

	testutils.WriteJPEGNoDate(t, filepath.Join(dir, "nodate.jpg"))

	p, err := planner.Scan(ctx, dir)
	require.NoError(t, err, "scan should succeed")
	require.Len(t, p.Entries, 1, "should have one entry")

	e := p.Entries[0]
	assert.Equal(t, plan.StatusNoDate, e.Status, "missing metadata should be reported")
	assert.Empty(t, e.Proposed, "no name should be proposed")
	assert.Error(t, e.Err, "the entry should carry the cause")
}

func TestScanSkipsIgnoredAndUnsupported(t *testing.T) {
	cfg := config.Default()
	cfg.IgnorePatterns = []string{".*", "*.tmp"}
	ctx, planner, dir := createTestEnv(t, cfg)

	taken := time.Date(2023, time.June, 1, 14, 30, 0, 0, time.Local)
	testutils.WriteJPEG(t, filepath.Join(dir, ".hidden.jpg"), taken)
	testutils.WriteJPEG(t, filepath.Join(dir, "photo.jpg"), taken)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hi"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "scratch.tmp"), []byte("hi"), 0644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "subdir"), 0755))

	p, err := planner.Scan(ctx, dir)
	require.NoError(t, err, "scan should succeed")
	require.Len(t, p.Entries, 1, "only the supported, unignored file should be planned")
	assert.Equal(t, "photo.jpg", p.Entries[0].Original, "photo.jpg should be the planned file")
}

func TestScanSkipsAlreadyRenamed(t *testing.T) {
	ctx, planner, dir := createTestEnv(t, nil)

	taken := time.Date(2023, time.June, 1, 14, 30, 0, 0, time.Local)
	testutils.WriteJPEG(t, filepath.Join(dir, "2023-06-01_14-30-00.jpg"), taken)
	testutils.WriteJPEG(t, filepath.Join(dir, "2023-06-01_14-30-00_3.jpg"), taken)

	p, err := planner.Scan(ctx, dir)
	require.NoError(t, err, "scan should succeed")
	assert.Empty(t, p.Entries, "files named by the default format should be skipped")
}

func TestScanMP4(t *testing.T) {
	ctx, planner, dir := createTestEnv(t, nil)

	taken := time.Date(2022, time.December, 31, 23, 59, 59, 0, time.UTC)
	testutils.WriteMP4(t, filepath.Join(dir, "clip.mp4"), taken)

	p, err := planner.Scan(ctx, dir)
	require.NoError(t, err, "scan should succeed")
	require.Len(t, p.Entries, 1, "should have one entry")

	e := p.Entries[0]
	assert.Equal(t, plan.StatusReady, e.Status, "entry should be ready")
	assert.Equal(t, taken.Format(config.DefaultFormat)+".mp4", e.Proposed, "proposed name should use the creation time")
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "ready", plan.StatusReady.String())
	assert.Equal(t, "no change", plan.StatusNoChange.String())
	assert.Equal(t, "no date found", plan.StatusNoDate.String())
	assert.Equal(t, "conflict", plan.StatusConflict.String())
	assert.Equal(t, "renamed", plan.StatusRenamed.String())
	assert.Equal(t, "error", plan.StatusFailed.String())
	assert.Equal(t, "unknown", plan.StatusUnknown.String())
}
