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
	"bytes"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/typedesc/config"
)

func TestFromViper_Nil(t *testing.T) {
	assert.Equal(t, config.DefaultConfig(), config.FromViper(nil))
}

func TestFromViper_Empty(t *testing.T) {
	assert.Equal(t, config.DefaultConfig(), config.FromViper(viper.New()))
}

func TestFromViper_YAML(t *testing.T) {
	v := viper.New()
	v.SetConfigType("yaml")
	doc := []byte("typedesc:\n  max_unwrap: 2\n  tag_key: td\n  lookup_cache_size: 32\n  sweep_every: 0\n")
	require.NoError(t, v.ReadConfig(bytes.NewReader(doc)))

	got := config.FromViper(v)
	assert.Equal(t, 2, got.MaxUnwrap)
	assert.Equal(t, "td", got.TagKey)
	assert.Equal(t, 32, got.LookupCacheSize)
	assert.Equal(t, config.DefaultSweepEvery, got.SweepEvery, "non-positive sweep falls back")
}

func TestFromViper_OptionsOverride(t *testing.T) {
	v := viper.New()
	v.Set(config.KeyTagKey, "fromfile")

	got := config.FromViper(v, config.WithTagKey("explicit"))
	assert.Equal(t, "explicit", got.TagKey)
}
