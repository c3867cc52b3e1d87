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

package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		filename    string
		config      string
		wantErr     bool
		errContains string
		check       func(t *testing.T, cfg *Config)
	}{
		{
			name:     "valid_yaml",
			filename: "metadate.yaml",
			config: `
format: "20060102_150405"
image_extensions:
  - .jpg
  - .png
video_extensions:
  - .mp4
ignore_patterns:
  - "*.tmp"
  - ".*"
on_conflict: skip
workers: 2
log_file: custom.log
`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "20060102_150405", cfg.Format, "format should match")
				assert.Equal(t, []string{".jpg", ".png"}, cfg.ImageExtensions, "image extensions should match")
				assert.Equal(t, []string{".mp4"}, cfg.VideoExtensions, "video extensions should match")
				assert.Len(t, cfg.IgnorePatterns, 2, "should have 2 ignore patterns")
				assert.Equal(t, ConflictSkip, cfg.OnConflict, "conflict policy should match")
				assert.Equal(t, 2, cfg.Workers, "workers should match")
				assert.Equal(t, "custom.log", cfg.LogFile, "log file should match")
			},
		},
		{
			name:     "minimal_yaml_gets_defaults",
			filename: "metadate.yaml",
			config:   `format: "2006-01-02_15-04-05"`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, DefaultFormat, cfg.Format, "format should keep default layout")
				assert.Equal(t, ConflictSuffix, cfg.OnConflict, "conflict policy should default to suffix")
				assert.Equal(t, DefaultLogFile, cfg.LogFile, "log file should have default value")
				assert.NotEmpty(t, cfg.ImageExtensions, "image extensions should have defaults")
				assert.NotEmpty(t, cfg.VideoExtensions, "video extensions should have defaults")
			},
		},
		{
			name:     "valid_hcl",
			filename: "metadate.hcl",
			config: `
format      = "2006-01-02_15-04-05"
on_conflict = "suffix"
workers     = 8
`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, DefaultFormat, cfg.Format, "format should match")
				assert.Equal(t, ConflictSuffix, cfg.OnConflict, "conflict policy should match")
				assert.Equal(t, 8, cfg.Workers, "workers should match")
			},
		},
		{
			name:     "valid_json",
			filename: "metadate.json",
			config:   `{"format": "20060102_150405", "workers": 1}`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "20060102_150405", cfg.Format, "format should match")
				assert.Equal(t, 1, cfg.Workers, "workers should match")
			},
		},
		{
			name:        "invalid_conflict_policy",
			filename:    "metadate.yaml",
			config:      `on_conflict: overwrite`,
			wantErr:     true,
			errContains: "on_conflict",
		},
		{
			name:        "negative_workers",
			filename:    "metadate.yaml",
			config:      `workers: -1`,
			wantErr:     true,
			errContains: "workers",
		},
		{
			name:     "extension_without_dot",
			filename: "metadate.yaml",
			config: `
image_extensions:
  - jpg
`,
			wantErr:     true,
			errContains: "must start with a dot",
		},
		{
			name:     "uppercase_extension",
			filename: "metadate.yaml",
			config: `
image_extensions:
  - .JPG
`,
			wantErr:     true,
			errContains: "must be lowercase",
		},
		{
			name:        "unknown_yaml_field",
			filename:    "metadate.yaml",
			config:      `not_a_field: true`,
			wantErr:     true,
			errContains: "parsing",
		},
		{
			name:        "unsupported_extension",
			filename:    "metadate.toml",
			config:      `format = "x"`,
			wantErr:     true,
			errContains: "no parser found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := zerolog.New(zerolog.NewTestWriter(t))
			ctx := logger.WithContext(context.Background())

			path := filepath.Join(t.TempDir(), tt.filename)
			require.NoError(t, os.WriteFile(path, []byte(tt.config), 0644), "writing config fixture")

			cfg, err := Load(ctx, path)
			if tt.wantErr {
				require.Error(t, err, "Load should fail")
				assert.Contains(t, err.Error(), tt.errContains, "error should mention the cause")
				return
			}

			require.NoError(t, err, "Load should succeed")
			tt.check(t, cfg)
		})
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	logger := zerolog.New(zerolog.NewTestWriter(t))
	ctx := logger.WithContext(context.Background())

	cfg, err := Load(ctx, filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.NoError(t, err, "a missing config file should not be an error")
	assert.Equal(t, Default(), cfg, "defaults should apply")
}

func TestLoadEmptyPathUsesDefaults(t *testing.T) {
	logger := zerolog.New(zerolog.NewTestWriter(t))
	ctx := logger.WithContext(context.Background())

	cfg, err := Load(ctx, "")
	require.NoError(t, err, "an empty path should not be an error")
	assert.Equal(t, Default(), cfg, "defaults should apply")
}

func TestGetParser(t *testing.T) {
	assert.IsType(t, &YAMLParser{}, GetParser("a.yaml"), "yaml files should use the YAML parser")
	assert.IsType(t, &YAMLParser{}, GetParser("a.yml"), "yml files should use the YAML parser")
	assert.IsType(t, &HCLParser{}, GetParser("a.hcl"), "hcl files should use the HCL parser")
	assert.IsType(t, &JSONParser{}, GetParser("a.json"), "json files should use the JSON parser")
	assert.Nil(t, GetParser("a.toml"), "unknown extensions should have no parser")
}
