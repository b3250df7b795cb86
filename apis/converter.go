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

package apis

import "reflect"

// Converter converts values of one type to and from other representations and
// optionally exposes a closed set of standard values.
type Converter interface {
	// CanConvertFrom reports whether values of t can be converted by ConvertFrom.
	CanConvertFrom(t reflect.Type) bool
	// ConvertFrom converts value into the converter's type.
	ConvertFrom(value any) (any, error)
	// ConvertTo converts value (of the converter's type) into t.
	ConvertTo(value any, t reflect.Type) (any, error)
	// StandardValues returns the standard value set, and whether one is supported.
	StandardValues() ([]any, bool)
	// IsValid reports whether value is acceptable for the converter's type.
	IsValid(value any) bool
}

// ConverterSource is implemented by types that supply their own converter.
// It is called on the zero value of the type.
type ConverterSource interface {
	TypeConverter() Converter
}
