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

package attribute_test

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/typedesc/apis"
	"dirpx.dev/typedesc/attribute"
)

func TestParseTag(t *testing.T) {
	conv := func(s string) (any, error) { return strconv.Atoi(s) }

	cases := []struct {
		name string
		tag  string
		want apis.Attributes
	}{
		{"empty", "", nil},
		{"hidden", "-", apis.Attributes{attribute.Browsable(false)}},
		{"flags", "readonly, browsable=false", apis.Attributes{attribute.ReadOnly(true), attribute.Browsable(false)}},
		{"text", "category=Layout,desc=Width in px,name=Width", apis.Attributes{
			attribute.Category("Layout"), attribute.Description("Width in px"), attribute.DisplayName("Width"),
		}},
		{"default", "default=10", apis.Attributes{attribute.DefaultValue{Value: 10}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := attribute.ParseTag(tc.tag, conv)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseTag_Errors(t *testing.T) {
	_, err := attribute.ParseTag("colour=red", nil)
	require.ErrorIs(t, err, attribute.ErrUnknownTagKey)

	_, err = attribute.ParseTag("browsable=maybe", nil)
	require.ErrorIs(t, err, attribute.ErrInvalidTagValue)

	_, err = attribute.ParseTag("default=x", func(s string) (any, error) { return strconv.Atoi(s) })
	require.ErrorIs(t, err, attribute.ErrInvalidTagValue)
}

func TestParseTag_NilConvKeepsText(t *testing.T) {
	got, err := attribute.ParseTag("default=abc", nil)
	require.NoError(t, err)
	assert.Equal(t, apis.Attributes{attribute.DefaultValue{Value: "abc"}}, got)
}
