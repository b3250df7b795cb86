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

package pipeline_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"dirpx.dev/typedesc/apis"
	"dirpx.dev/typedesc/attribute"
	"dirpx.dev/typedesc/descriptor"
	"dirpx.dev/typedesc/pipeline"
)

// Merged names are always unique and every input member survives.
func TestMerge_NamesUniqueProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		pool := []string{"A", "B", "C", "A_1", "A_2", "B_1", "A_1_3"}
		names := rapid.SliceOfDistinct(rapid.SampledFrom(pool), rapid.ID[string]).Draw(t, "primary")
		extNames := rapid.SliceOfN(rapid.SampledFrom(pool), 0, 8).Draw(t, "extended")

		var primary apis.Properties
		for _, n := range names {
			primary = append(primary, prop(n))
		}
		ext := &extender{}
		var extended apis.Properties
		for _, n := range extNames {
			extended = append(extended, descriptor.ExtendProperty(ext, prop(n)))
		}

		got := pipeline.New().Properties(pipeline.Input{
			Instance: &widget{},
			Extended: &descriptor.Static{Props: extended},
		}, primary)

		require.Len(t, got, len(primary)+len(extended))
		seen := map[string]bool{}
		for _, p := range got {
			require.False(t, seen[p.Name()], "duplicate name %q in %v", p.Name(), got.Names())
			seen[p.Name()] = true
		}
		for i, n := range names {
			require.Equal(t, n, got[i].Name(), "primary names are never renamed")
		}
	})
}

// Filtering by an attribute's default keeps exactly the members that lack the
// attribute or carry the default value.
func TestAttributeFilter_DefaultProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(0, 8).Draw(t, "n")
		var ps apis.Properties
		want := 0
		for i := 0; i < n; i++ {
			switch rapid.IntRange(0, 2).Draw(t, fmt.Sprintf("kind%d", i)) {
			case 0:
				ps = append(ps, prop(fmt.Sprint(i)))
				want++
			case 1:
				ps = append(ps, prop(fmt.Sprint(i), attribute.Browsable(true)))
				want++
			default:
				ps = append(ps, prop(fmt.Sprint(i), attribute.Browsable(false)))
			}
		}
		got := pipeline.Filter(ps, []apis.Attribute{attribute.Browsable(true)})
		require.Len(t, got, want)
	})
}
