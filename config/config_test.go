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

package config_test

import (
	"testing"

	"dirpx.dev/typedesc/config"
)

func TestDefaultConfigValues(t *testing.T) {
	got := config.DefaultConfig()

	if got.MaxUnwrap != config.DefaultMaxUnwrap {
		t.Fatalf("MaxUnwrap = %d, want %d", got.MaxUnwrap, config.DefaultMaxUnwrap)
	}
	if got.TagKey != config.DefaultTagKey {
		t.Fatalf("TagKey = %q, want %q", got.TagKey, config.DefaultTagKey)
	}
	if got.LookupCacheSize != config.DefaultLookupCacheSize {
		t.Fatalf("LookupCacheSize = %d, want %d", got.LookupCacheSize, config.DefaultLookupCacheSize)
	}
	if got.SweepEvery != config.DefaultSweepEvery {
		t.Fatalf("SweepEvery = %d, want %d", got.SweepEvery, config.DefaultSweepEvery)
	}
}

func TestNewConfig_NoOptions_EqualsDefault(t *testing.T) {
	def := config.DefaultConfig()
	got := config.NewConfig()
	if got != def {
		t.Fatalf("NewConfig() = %+v, want default %+v", got, def)
	}
}

func TestWithMaxUnwrap(t *testing.T) {
	cases := []struct {
		name string
		in   int
		want int
	}{
		{"zero", 0, 0},
		{"positive", 3, 3},
		{"negative resets", -1, config.DefaultMaxUnwrap},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := config.NewConfig(config.WithMaxUnwrap(tc.in))
			if c.MaxUnwrap != tc.want {
				t.Fatalf("MaxUnwrap = %d, want %d", c.MaxUnwrap, tc.want)
			}
		})
	}
}

func TestWithTagKey(t *testing.T) {
	if c := config.NewConfig(config.WithTagKey("td")); c.TagKey != "td" {
		t.Fatalf("TagKey = %q, want td", c.TagKey)
	}
	if c := config.NewConfig(config.WithTagKey("")); c.TagKey != config.DefaultTagKey {
		t.Fatalf("TagKey = %q, want default", c.TagKey)
	}
}

func TestSizeOptions_NonPositiveFallBack(t *testing.T) {
	c := config.NewConfig(config.WithLookupCacheSize(0), config.WithSweepEvery(-5))
	if c.LookupCacheSize != config.DefaultLookupCacheSize {
		t.Fatalf("LookupCacheSize = %d, want default", c.LookupCacheSize)
	}
	if c.SweepEvery != config.DefaultSweepEvery {
		t.Fatalf("SweepEvery = %d, want default", c.SweepEvery)
	}

	c = config.NewConfig(config.WithLookupCacheSize(16), config.WithSweepEvery(2))
	if c.LookupCacheSize != 16 || c.SweepEvery != 2 {
		t.Fatalf("got %+v", c)
	}
}
