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
	"errors"
	"fmt"
	"reflect"

	"dirpx.dev/typedesc/apis"
	"dirpx.dev/typedesc/attribute"
	"dirpx.dev/typedesc/descriptor"
)

var (
	// ErrComponentType is returned when a member is used on a component of another type.
	ErrComponentType = errors.New("typedesc(reflection): component has the wrong type")
	// ErrNotAddressable is returned when writing through a component passed by value.
	ErrNotAddressable = errors.New("typedesc(reflection): component is not addressable")
	// ErrHandlerType is returned when a handler does not fit the event's func type.
	ErrHandlerType = errors.New("typedesc(reflection): handler has the wrong type")
)

// fieldProperty is a property backed by an exported struct field.
type fieldProperty struct {
	name      string
	index     []int
	component reflect.Type
	typ       reflect.Type
	attrs     apis.Attributes
	readOnly  bool
	conv      apis.Converter
}

func (f *fieldProperty) Name() string                { return f.name }
func (f *fieldProperty) Attributes() apis.Attributes { return f.attrs }
func (f *fieldProperty) ComponentType() reflect.Type { return f.component }
func (f *fieldProperty) PropertyType() reflect.Type  { return f.typ }
func (f *fieldProperty) IsReadOnly() bool            { return f.readOnly }
func (f *fieldProperty) Converter() apis.Converter   { return f.conv }

func (f *fieldProperty) Value(component any) (any, error) {
	v, err := field(component, f.component, f.index, false)
	if err != nil {
		return nil, err
	}
	return v.Interface(), nil
}

func (f *fieldProperty) SetValue(component, value any) error {
	if f.readOnly {
		return fmt.Errorf("%w: %s", descriptor.ErrReadOnly, f.name)
	}
	v, err := field(component, f.component, f.index, true)
	if err != nil {
		return err
	}
	if value == nil {
		v.SetZero()
		return nil
	}
	if !reflect.TypeOf(value).AssignableTo(f.typ) {
		if value, err = f.conv.ConvertFrom(value); err != nil {
			return err
		}
		if value == nil || !reflect.TypeOf(value).AssignableTo(f.typ) {
			return fmt.Errorf("%w: %T to %v", descriptor.ErrNotConvertible, value, f.typ)
		}
	}
	v.Set(reflect.ValueOf(value))
	return nil
}

// fieldEvent is an event backed by an exported func-typed struct field.
type fieldEvent struct {
	name      string
	index     []int
	component reflect.Type
	handler   reflect.Type
	attrs     apis.Attributes
}

func (f *fieldEvent) Name() string                { return f.name }
func (f *fieldEvent) Attributes() apis.Attributes { return f.attrs }
func (f *fieldEvent) ComponentType() reflect.Type { return f.component }
func (f *fieldEvent) HandlerType() reflect.Type   { return f.handler }

func (f *fieldEvent) AddHandler(component, handler any) error {
	if handler == nil {
		return apis.ErrNilArgument
	}
	hv := reflect.ValueOf(handler)
	if !hv.Type().AssignableTo(f.handler) {
		return fmt.Errorf("%w: %T for %s", ErrHandlerType, handler, f.name)
	}
	v, err := field(component, f.component, f.index, true)
	if err != nil {
		return err
	}
	v.Set(hv)
	return nil
}

func (f *fieldEvent) RemoveHandler(component any) error {
	v, err := field(component, f.component, f.index, true)
	if err != nil {
		return err
	}
	v.SetZero()
	return nil
}

// field resolves the struct field at index on component.
func field(component any, want reflect.Type, index []int, settable bool) (reflect.Value, error) {
	if component == nil {
		return reflect.Value{}, apis.ErrNilArgument
	}
	v := reflect.ValueOf(component)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return reflect.Value{}, apis.ErrNilArgument
		}
		v = v.Elem()
	}
	if v.Type() != want {
		return reflect.Value{}, fmt.Errorf("%w: %v, want %v", ErrComponentType, v.Type(), want)
	}
	fv, err := v.FieldByIndexErr(index)
	if err != nil {
		return reflect.Value{}, err
	}
	if settable && !fv.CanSet() {
		return reflect.Value{}, ErrNotAddressable
	}
	return fv, nil
}

// readOnlyOf reports whether attrs mark a member read-only.
func readOnlyOf(attrs apis.Attributes) bool {
	ro, ok := apis.AttributeOf[attribute.ReadOnly](attrs)
	return ok && bool(ro)
}

var (
	_ apis.Property = (*fieldProperty)(nil)
	_ apis.Event    = (*fieldEvent)(nil)
)
