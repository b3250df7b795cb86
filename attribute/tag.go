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

package attribute

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cast"

	"dirpx.dev/typedesc/apis"
)

var (
	// ErrUnknownTagKey is returned for struct tag keys that map to no attribute.
	ErrUnknownTagKey = errors.New("typedesc(attribute): unknown tag key")
	// ErrInvalidTagValue is returned when a tag value cannot be parsed.
	ErrInvalidTagValue = errors.New("typedesc(attribute): invalid tag value")
)

// Tag keys understood by ParseTag.
const (
	TagCategory    = "category"
	TagDescription = "desc"
	TagBrowsable   = "browsable"
	TagReadOnly    = "readonly"
	TagName        = "name"
	TagDefault     = "default"
)

// ParseTag parses a member tag such as
//
//	category=Layout,desc=Width in pixels,browsable=false,readonly,default=10
//
// into attributes. Boolean keys without a value mean true. The raw default text
// is passed to conv, which turns it into a value of the member's type; a nil conv
// keeps the text. A leading "-" hides the member (Browsable(false)).
func ParseTag(tag string, conv func(string) (any, error)) (apis.Attributes, error) {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return nil, nil
	}
	var out apis.Attributes
	for _, part := range strings.Split(tag, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if part == "-" {
			out = append(out, Browsable(false))
			continue
		}
		key, val, hasVal := strings.Cut(part, "=")
		key = strings.ToLower(strings.TrimSpace(key))
		val = strings.TrimSpace(val)

		switch key {
		case TagCategory:
			out = append(out, Category(val))
		case TagDescription:
			out = append(out, Description(val))
		case TagName:
			out = append(out, DisplayName(val))
		case TagBrowsable, TagReadOnly:
			b := true
			if hasVal {
				var err error
				if b, err = cast.ToBoolE(val); err != nil {
					return nil, fmt.Errorf("%w: %s=%q", ErrInvalidTagValue, key, val)
				}
			}
			if key == TagBrowsable {
				out = append(out, Browsable(b))
			} else {
				out = append(out, ReadOnly(b))
			}
		case TagDefault:
			var v any = val
			if conv != nil {
				cv, err := conv(val)
				if err != nil {
					return nil, fmt.Errorf("%w: default=%q: %v", ErrInvalidTagValue, val, err)
				}
				v = cv
			}
			out = append(out, DefaultValue{Value: v})
		default:
			return nil, fmt.Errorf("%w: %q", ErrUnknownTagKey, key)
		}
	}
	return out, nil
}
