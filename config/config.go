// Package config holds the settings of one reporting pass.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/wudi/pdffeatures/features"
	"github.com/wudi/pdffeatures/filters"
	"github.com/wudi/pdffeatures/observability"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

type Config struct {
	LogLevel string     `toml:"log_level"`
	Workers  int        `toml:"workers"`
	Strict   bool       `toml:"strict"`
	Features FeatureSet `toml:"features"`
	Filters  Filters    `toml:"filters"`
}

// Feature selects the categories to report. An empty list reports all.
type FeatureSet struct {
	Enabled []string `toml:"enabled"`
}

type Filters struct {
	MaxDecodedSize int64 `toml:"max_decoded_size"`
	// CacheEntries bounds the decoded-stream cache. Zero disables it.
	CacheEntries int `toml:"cache_entries"`
}

func Default() Config {
	return Config{
		LogLevel: "info",
		Workers:  1,
		Filters:  Filters{MaxDecodedSize: filters.DefaultLimits.MaxDecompressedSize},
	}
}

// Load reads and validates a TOML file. Keys missing from the file keep
// their default values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	return Parse(data)
}

func Parse(data []byte) (Config, error) {
	cfg := Default()
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("%w: unknown key %q", ErrInvalid, undecoded[0].String())
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if _, err := observability.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: log_level: %v", ErrInvalid, err)
	}
	if c.Workers < 1 {
		return fmt.Errorf("%w: workers must be at least 1, got %d", ErrInvalid, c.Workers)
	}
	if c.Filters.MaxDecodedSize < 0 {
		return fmt.Errorf("%w: max_decoded_size must not be negative", ErrInvalid)
	}
	if c.Filters.CacheEntries < 0 {
		return fmt.Errorf("%w: cache_entries must not be negative", ErrInvalid)
	}
	if _, err := c.Categories(); err != nil {
		return err
	}
	return nil
}

// Categories returns the enabled categories in enum order.
func (c Config) Categories() ([]features.Category, error) {
	if len(c.Features.Enabled) == 0 {
		return features.AllCategories(), nil
	}
	enabled := make(map[features.Category]bool, len(c.Features.Enabled))
	for _, name := range c.Features.Enabled {
		cat, err := features.ParseCategory(name)
		if err != nil {
			return nil, fmt.Errorf("%w: features.enabled: %v", ErrInvalid, err)
		}
		enabled[cat] = true
	}
	var out []features.Category
	for _, cat := range features.AllCategories() {
		if enabled[cat] {
			out = append(out, cat)
		}
	}
	return out, nil
}

// Limits converts the filter section for filters.NewStandardPipeline.
func (c Config) Limits() filters.Limits {
	l := filters.DefaultLimits
	l.MaxDecompressedSize = c.Filters.MaxDecodedSize
	return l
}

// Pipeline builds the standard decoding pipeline for this configuration.
func (c Config) Pipeline() (*filters.Pipeline, error) {
	p := filters.NewStandardPipeline(c.Limits())
	if c.Filters.CacheEntries > 0 {
		if err := p.EnableCache(c.Filters.CacheEntries); err != nil {
			return nil, err
		}
	}
	return p, nil
}
