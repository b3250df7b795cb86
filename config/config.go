/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package config

import (
	"dirpx.dev/typedesc/apis"
)

const (
	// DefaultMaxUnwrap represents the default for MaxUnwrap.
	// A value of 8 should be sufficient for all practical purposes.
	DefaultMaxUnwrap = 8
	// DefaultTagKey represents the default for TagKey.
	DefaultTagKey = "meta"
	// DefaultLookupCacheSize represents the default for LookupCacheSize.
	DefaultLookupCacheSize = 1024
	// DefaultSweepEvery represents the default for SweepEvery.
	DefaultSweepEvery = 64
)

// NewConfig constructs an apis.Config from the given options.
func NewConfig(opts ...Option) apis.Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return sanitize(cfg)
}

// DefaultConfig is the default configuration used when none is provided.
func DefaultConfig() apis.Config {
	return apis.Config{
		MaxUnwrap:       DefaultMaxUnwrap,
		TagKey:          DefaultTagKey,
		LookupCacheSize: DefaultLookupCacheSize,
		SweepEvery:      DefaultSweepEvery,
	}
}

// Option is a functional option that mutates an apis.Config during construction.
type Option func(*apis.Config)

// WithMaxUnwrap sets the MaxUnwrap option.
// A negative value resets to the default.
func WithMaxUnwrap(max int) Option {
	return func(c *apis.Config) {
		if max < 0 {
			c.MaxUnwrap = DefaultMaxUnwrap
			return
		}
		c.MaxUnwrap = max
	}
}

// WithTagKey sets the struct tag read for member attributes.
// An empty key resets to the default.
func WithTagKey(key string) Option {
	return func(c *apis.Config) {
		if key == "" {
			key = DefaultTagKey
		}
		c.TagKey = key
	}
}

// WithLookupCacheSize sets the capacity of the registry lookup cache.
func WithLookupCacheSize(n int) Option {
	return func(c *apis.Config) {
		c.LookupCacheSize = n
	}
}

// WithSweepEvery sets how many weak-table mutations happen between sweeps.
func WithSweepEvery(n int) Option {
	return func(c *apis.Config) {
		c.SweepEvery = n
	}
}

// sanitize replaces out-of-range knobs with defaults.
func sanitize(cfg apis.Config) apis.Config {
	if cfg.MaxUnwrap < 0 {
		cfg.MaxUnwrap = DefaultMaxUnwrap
	}
	if cfg.TagKey == "" {
		cfg.TagKey = DefaultTagKey
	}
	if cfg.LookupCacheSize <= 0 {
		cfg.LookupCacheSize = DefaultLookupCacheSize
	}
	if cfg.SweepEvery <= 0 {
		cfg.SweepEvery = DefaultSweepEvery
	}
	return cfg
}
