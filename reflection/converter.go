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

package reflection

import (
	"fmt"
	"reflect"
	"time"

	"github.com/spf13/cast"

	"dirpx.dev/typedesc/apis"
	"dirpx.dev/typedesc/descriptor"
)

var (
	durationType = reflect.TypeFor[time.Duration]()
	timeType     = reflect.TypeFor[time.Time]()
)

// kindConverter converts to and from t based on its kind.
type kindConverter struct {
	t reflect.Type
}

// NewKindConverter returns a converter for values of t.
func NewKindConverter(t reflect.Type) apis.Converter {
	return kindConverter{t: t}
}

// CanConvertFrom implements apis.Converter.
func (k kindConverter) CanConvertFrom(src reflect.Type) bool {
	if src == nil || k.t == nil {
		return false
	}
	if src.AssignableTo(k.t) {
		return true
	}
	return scalar(src) && scalar(k.t)
}

// ConvertFrom implements apis.Converter.
func (k kindConverter) ConvertFrom(value any) (any, error) {
	if k.t == nil {
		return nil, apis.ErrNilArgument
	}
	if value == nil {
		return reflect.Zero(k.t).Interface(), nil
	}
	if reflect.TypeOf(value).AssignableTo(k.t) {
		return value, nil
	}

	var (
		v   any
		err error
	)
	switch {
	case k.t == durationType:
		v, err = cast.ToDurationE(value)
	case k.t == timeType:
		v, err = cast.ToTimeE(value)
	default:
		switch k.t.Kind() {
		case reflect.Bool:
			v, err = cast.ToBoolE(value)
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			v, err = cast.ToInt64E(value)
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
			v, err = cast.ToUint64E(value)
		case reflect.Float32, reflect.Float64:
			v, err = cast.ToFloat64E(value)
		case reflect.String:
			v, err = cast.ToStringE(value)
		default:
			rv := reflect.ValueOf(value)
			if rv.Type().ConvertibleTo(k.t) {
				return rv.Convert(k.t).Interface(), nil
			}
			return nil, fmt.Errorf("%w: %T to %v", descriptor.ErrNotConvertible, value, k.t)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %T to %v: %v", descriptor.ErrNotConvertible, value, k.t, err)
	}
	rv := reflect.ValueOf(v)
	if rv.Type() != k.t {
		if overflows(rv, k.t) {
			return nil, fmt.Errorf("%w: %v overflows %v", descriptor.ErrNotConvertible, v, k.t)
		}
		rv = rv.Convert(k.t)
	}
	return rv.Interface(), nil
}

// ConvertTo implements apis.Converter.
func (k kindConverter) ConvertTo(value any, t reflect.Type) (any, error) {
	if t == nil {
		return nil, apis.ErrNilArgument
	}
	return kindConverter{t: t}.ConvertFrom(value)
}

// StandardValues implements apis.Converter.
func (k kindConverter) StandardValues() ([]any, bool) {
	if k.t != nil && k.t.Kind() == reflect.Bool {
		return []any{reflect.ValueOf(false).Convert(k.t).Interface(), reflect.ValueOf(true).Convert(k.t).Interface()}, true
	}
	return nil, false
}

// IsValid implements apis.Converter.
func (k kindConverter) IsValid(value any) bool {
	_, err := k.ConvertFrom(value)
	return err == nil
}

// overflows reports whether the numeric v does not fit in t.
func overflows(v reflect.Value, t reflect.Type) bool {
	z := reflect.Zero(t)
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.CanInt() && z.OverflowInt(v.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return v.CanUint() && z.OverflowUint(v.Uint())
	case reflect.Float32, reflect.Float64:
		return v.CanFloat() && z.OverflowFloat(v.Float())
	}
	return false
}

// scalar reports whether t is handled by cast.
func scalar(t reflect.Type) bool {
	if t == durationType || t == timeType {
		return true
	}
	switch t.Kind() {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

// parseDefault returns a tag default converter for t.
func parseDefault(t reflect.Type) func(string) (any, error) {
	c := kindConverter{t: t}
	return func(s string) (any, error) { return c.ConvertFrom(s) }
}
