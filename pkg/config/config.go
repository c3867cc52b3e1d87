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
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

// 📅 DefaultFormat is the Go time layout used for proposed filenames
const DefaultFormat = "2006-01-02_15-04-05"

// 📜 DefaultLogFile is the append-only log written next to the working directory
const DefaultLogFile = "metadate-renamer.log"

// ⚔️ Conflict policies for proposed names that are already taken
const (
	ConflictSuffix = "suffix" // append _1, _2, ... until a free name is found
	ConflictSkip   = "skip"   // leave the file alone and report a conflict
)

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse parses the config from bytes
	Parse(ctx context.Context, data []byte) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// 📚 Config represents the complete renamer configuration
type Config struct {
	Format          string   `json:"format,omitempty" yaml:"format,omitempty"`
	ImageExtensions []string `json:"image_extensions,omitempty" yaml:"image_extensions,omitempty"`
	VideoExtensions []string `json:"video_extensions,omitempty" yaml:"video_extensions,omitempty"`
	IgnorePatterns  []string `json:"ignore_patterns,omitempty" yaml:"ignore_patterns,omitempty"`
	OnConflict      string   `json:"on_conflict,omitempty" yaml:"on_conflict,omitempty"`
	Workers         int      `json:"workers,omitempty" yaml:"workers,omitempty"`
	LogFile         string   `json:"log_file,omitempty" yaml:"log_file,omitempty"`
	DryRun          bool     `json:"dry_run,omitempty" yaml:"dry_run,omitempty"`
}

// 🏭 Default returns a configuration matching the built-in behavior
func Default() *Config {
	return &Config{
		Format: DefaultFormat,
		ImageExtensions: []string{
			".jpg", ".jpeg", ".jpe", ".jif", ".jfif", ".jfi",
			".png", ".webp", ".tiff", ".tif", ".heif", ".heic", ".hif",
		},
		VideoExtensions: []string{".mp4", ".mov", ".m4v"},
		OnConflict:      ConflictSuffix,
		Workers:         4,
		LogFile:         DefaultLogFile,
	}
}

// 🎯 Load loads the configuration from a file, falling back to defaults
// when path is empty or the default config file does not exist.
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)

	if path == "" {
		logger.Debug().Msg("no config file given, using defaults")
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Debug().Str("path", path).Msg("config file not found, using defaults")
			return Default(), nil
		}
		return nil, errors.Errorf("reading config file: %w", err)
	}

	logger.Debug().Str("path", path).Msg("loading configuration")

	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	cfg, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// 🔍 Validate checks the configuration and fills in defaults for empty fields
func (cfg *Config) Validate() error {
	def := Default()

	if cfg.Format == "" {
		cfg.Format = def.Format
	}
	if len(cfg.ImageExtensions) == 0 {
		cfg.ImageExtensions = def.ImageExtensions
	}
	if len(cfg.VideoExtensions) == 0 {
		cfg.VideoExtensions = def.VideoExtensions
	}
	if cfg.OnConflict == "" {
		cfg.OnConflict = def.OnConflict
	}
	if cfg.LogFile == "" {
		cfg.LogFile = def.LogFile
	}

	switch cfg.OnConflict {
	case ConflictSuffix, ConflictSkip:
	default:
		return errors.Errorf("on_conflict must be %q or %q, got %q", ConflictSuffix, ConflictSkip, cfg.OnConflict)
	}

	if cfg.Workers < 0 {
		return errors.Errorf("workers must not be negative, got %d", cfg.Workers)
	}

	for _, ext := range append(append([]string{}, cfg.ImageExtensions...), cfg.VideoExtensions...) {
		if !strings.HasPrefix(ext, ".") {
			return errors.Errorf("extension %q must start with a dot", ext)
		}
		if ext != strings.ToLower(ext) {
			return errors.Errorf("extension %q must be lowercase", ext)
		}
	}

	return nil
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	return fmt.Sprintf("format=%s on_conflict=%s workers=%d", cfg.Format, cfg.OnConflict, cfg.Workers)
}

// 🔧 YAMLParser implements the Parser interface for YAML files
type YAMLParser struct{}

func init() {
	Register(&YAMLParser{})
}

func (p *YAMLParser) CanParse(filename string) bool {
	return strings.HasSuffix(filename, ".yaml") || strings.HasSuffix(filename, ".yml")
}

func (p *YAMLParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	var cfg Config
	decoder := yaml.NewDecoder(strings.NewReader(string(data)))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, errors.Errorf("parsing YAML: %w", err)
	}

	return &cfg, nil
}
