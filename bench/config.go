// Copyright ©2024 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bench

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrBadConfig is returned when a configuration holds invalid values.
var ErrBadConfig = errors.New("bench: bad configuration")

// Config holds the parameters of a benchmark run.
type Config struct {
	// Sizes lists the dataset sizes to benchmark, in order.
	Sizes []int `yaml:"sizes"`
	// Seed seeds dataset generation, key sampling and treap priorities.
	Seed uint64 `yaml:"seed"`
	// MaxKey is the upper bound of generated keys.
	MaxKey int64 `yaml:"max_key"`
	// Queries and Deletions bound the number of search and deletion keys
	// used for each size. Smaller datasets use their own size.
	Queries   int `yaml:"queries"`
	Deletions int `yaml:"deletions"`
	// Engines names the engines to run. Empty means all.
	Engines []string `yaml:"engines"`
	// Verify enables ordering and size checks after each phase.
	Verify bool `yaml:"verify"`
}

// DefaultConfig returns the configuration used when none is given.
func DefaultConfig() Config {
	return Config{
		Sizes:     []int{100000, 500000, 1000000},
		Seed:      123,
		MaxKey:    DefaultMaxKey,
		Queries:   20000,
		Deletions: 20000,
	}
}

// LoadConfig reads a YAML configuration from path and overlays it on
// DefaultConfig. A missing file yields the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Debugf("No configuration at %s, using defaults", path)
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("bench: parsing %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports whether the configuration can be run.
func (c Config) Validate() error {
	if len(c.Sizes) == 0 {
		return fmt.Errorf("%w: no sizes", ErrBadConfig)
	}
	for _, n := range c.Sizes {
		if n < 1 {
			return fmt.Errorf("%w: size %d", ErrBadConfig, n)
		}
	}
	if c.MaxKey < 1 {
		return fmt.Errorf("%w: max_key %d", ErrBadConfig, c.MaxKey)
	}
	if c.Queries < 0 || c.Deletions < 0 {
		return fmt.Errorf("%w: negative query or deletion count", ErrBadConfig)
	}
	if _, err := Select(c.Engines); err != nil {
		return fmt.Errorf("%w: %w", ErrBadConfig, err)
	}
	return nil
}
