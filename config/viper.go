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
	"github.com/spf13/viper"

	"dirpx.dev/typedesc/apis"
)

// Viper keys read by FromViper.
const (
	KeyMaxUnwrap       = "typedesc.max_unwrap"
	KeyTagKey          = "typedesc.tag_key"
	KeyLookupCacheSize = "typedesc.lookup_cache_size"
	KeySweepEvery      = "typedesc.sweep_every"
)

// SetDefaults registers the default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyMaxUnwrap, DefaultMaxUnwrap)
	v.SetDefault(KeyTagKey, DefaultTagKey)
	v.SetDefault(KeyLookupCacheSize, DefaultLookupCacheSize)
	v.SetDefault(KeySweepEvery, DefaultSweepEvery)
}

// FromViper builds an apis.Config from v. Unset keys fall back to the defaults,
// explicit opts are applied last.
func FromViper(v *viper.Viper, opts ...Option) apis.Config {
	if v == nil {
		return NewConfig(opts...)
	}
	SetDefaults(v)
	cfg := apis.Config{
		MaxUnwrap:       v.GetInt(KeyMaxUnwrap),
		TagKey:          v.GetString(KeyTagKey),
		LookupCacheSize: v.GetInt(KeyLookupCacheSize),
		SweepEvery:      v.GetInt(KeySweepEvery),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return sanitize(cfg)
}
