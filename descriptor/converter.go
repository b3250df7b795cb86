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

package descriptor

import (
	"errors"
	"fmt"
	"reflect"

	"dirpx.dev/typedesc/apis"
)

// ErrNotConvertible is returned by converters that cannot perform a conversion.
var ErrNotConvertible = errors.New("typedesc(descriptor): value is not convertible")

// NopConverter converts nothing beyond plain assignability.
type NopConverter struct{}

// CanConvertFrom implements apis.Converter.
func (NopConverter) CanConvertFrom(reflect.Type) bool { return false }

// ConvertFrom implements apis.Converter.
func (NopConverter) ConvertFrom(value any) (any, error) {
	return nil, fmt.Errorf("%w: from %T", ErrNotConvertible, value)
}

// ConvertTo implements apis.Converter.
func (NopConverter) ConvertTo(value any, t reflect.Type) (any, error) {
	if t == nil {
		return nil, apis.ErrNilArgument
	}
	if value != nil && reflect.TypeOf(value).AssignableTo(t) {
		return value, nil
	}
	if t.Kind() == reflect.String {
		if value == nil {
			return "", nil
		}
		return fmt.Sprint(value), nil
	}
	return nil, fmt.Errorf("%w: %T to %v", ErrNotConvertible, value, t)
}

// StandardValues implements apis.Converter.
func (NopConverter) StandardValues() ([]any, bool) { return nil, false }

// IsValid implements apis.Converter.
func (NopConverter) IsValid(any) bool { return true }

var _ apis.Converter = NopConverter{}
