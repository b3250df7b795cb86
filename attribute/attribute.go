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

// Package attribute defines the built-in metadata attributes.
//
// Scalar attributes are named basic types so they can be written as literals:
//
//	apis.Attributes{attribute.Category("Layout"), attribute.Browsable(false)}
//
// A member that carries no attribute of a given type is treated as carrying that
// type's default (Browsable(true), Category("Misc"), ReadOnly(false), ...).
package attribute

import (
	"reflect"

	"dirpx.dev/typedesc/apis"
	uref "dirpx.dev/typedesc/utils/reflect"
)

// DefaultCategory is the category of members that declare none.
const DefaultCategory = "Misc"

// Browsable controls whether a member is shown to design surfaces. Default true.
type Browsable bool

// TypeID implements apis.Attribute.
func (Browsable) TypeID() any { return reflect.TypeFor[Browsable]() }

// Match implements apis.Attribute.
func (b Browsable) Match(o apis.Attribute) bool {
	ob, ok := o.(Browsable)
	return ok && ob == b
}

// IsDefault implements apis.Attribute.
func (b Browsable) IsDefault() bool { return bool(b) }

// Category groups members. Default DefaultCategory.
type Category string

// TypeID implements apis.Attribute.
func (Category) TypeID() any { return reflect.TypeFor[Category]() }

// Match implements apis.Attribute.
func (c Category) Match(o apis.Attribute) bool {
	oc, ok := o.(Category)
	return ok && oc.name() == c.name()
}

// IsDefault implements apis.Attribute.
func (c Category) IsDefault() bool { return c.name() == DefaultCategory }

func (c Category) name() string {
	if c == "" {
		return DefaultCategory
	}
	return string(c)
}

// Description is a human readable description. Default "".
type Description string

// TypeID implements apis.Attribute.
func (Description) TypeID() any { return reflect.TypeFor[Description]() }

// Match implements apis.Attribute.
func (d Description) Match(o apis.Attribute) bool {
	od, ok := o.(Description)
	return ok && od == d
}

// IsDefault implements apis.Attribute.
func (d Description) IsDefault() bool { return d == "" }

// DisplayName overrides the name shown for a member. Default "".
type DisplayName string

// TypeID implements apis.Attribute.
func (DisplayName) TypeID() any { return reflect.TypeFor[DisplayName]() }

// Match implements apis.Attribute.
func (d DisplayName) Match(o apis.Attribute) bool {
	od, ok := o.(DisplayName)
	return ok && od == d
}

// IsDefault implements apis.Attribute.
func (d DisplayName) IsDefault() bool { return d == "" }

// ReadOnly marks a property as not settable. Default false.
type ReadOnly bool

// TypeID implements apis.Attribute.
func (ReadOnly) TypeID() any { return reflect.TypeFor[ReadOnly]() }

// Match implements apis.Attribute.
func (r ReadOnly) Match(o apis.Attribute) bool {
	or, ok := o.(ReadOnly)
	return ok && or == r
}

// IsDefault implements apis.Attribute.
func (r ReadOnly) IsDefault() bool { return !bool(r) }

// DefaultProperty names the default property of a type. Default "".
type DefaultProperty string

// TypeID implements apis.Attribute.
func (DefaultProperty) TypeID() any { return reflect.TypeFor[DefaultProperty]() }

// Match implements apis.Attribute.
func (d DefaultProperty) Match(o apis.Attribute) bool {
	od, ok := o.(DefaultProperty)
	return ok && od == d
}

// IsDefault implements apis.Attribute.
func (d DefaultProperty) IsDefault() bool { return d == "" }

// DefaultEvent names the default event of a type. Default "".
type DefaultEvent string

// TypeID implements apis.Attribute.
func (DefaultEvent) TypeID() any { return reflect.TypeFor[DefaultEvent]() }

// Match implements apis.Attribute.
func (d DefaultEvent) Match(o apis.Attribute) bool {
	od, ok := o.(DefaultEvent)
	return ok && od == d
}

// IsDefault implements apis.Attribute.
func (d DefaultEvent) IsDefault() bool { return d == "" }

// DefaultValue records the value a property has when it was never set.
type DefaultValue struct {
	Value any
}

// TypeID implements apis.Attribute.
func (DefaultValue) TypeID() any { return reflect.TypeFor[DefaultValue]() }

// Match implements apis.Attribute. Values are compared deeply.
func (d DefaultValue) Match(o apis.Attribute) bool {
	od, ok := o.(DefaultValue)
	return ok && reflect.DeepEqual(od.Value, d.Value)
}

// IsDefault implements apis.Attribute.
func (d DefaultValue) IsDefault() bool { return d.Value == nil }

// ExtenderProvided marks a property contributed by an extender.
type ExtenderProvided struct {
	// Extender is the contributing extender.
	Extender apis.Extender
}

// TypeID implements apis.Attribute.
func (ExtenderProvided) TypeID() any { return reflect.TypeFor[ExtenderProvided]() }

// Match implements apis.Attribute.
func (e ExtenderProvided) Match(o apis.Attribute) bool {
	oe, ok := o.(ExtenderProvided)
	return ok && uref.Identical(oe.Extender, e.Extender)
}

// IsDefault implements apis.Attribute.
func (e ExtenderProvided) IsDefault() bool { return e.Extender == nil }

// ExtenderOf returns the extender that contributed m, if any.
func ExtenderOf(m apis.Member) (apis.Extender, bool) {
	if m == nil {
		return nil, false
	}
	ep, ok := apis.AttributeOf[ExtenderProvided](m.Attributes())
	if !ok || ep.Extender == nil {
		return nil, false
	}
	return ep.Extender, true
}

// IsBrowsable reports whether m should be shown, honoring the default.
func IsBrowsable(m apis.Member) bool {
	if b, ok := apis.AttributeOf[Browsable](m.Attributes()); ok {
		return bool(b)
	}
	return true
}

var (
	_ apis.Attribute = Browsable(true)
	_ apis.Attribute = Category("")
	_ apis.Attribute = Description("")
	_ apis.Attribute = DisplayName("")
	_ apis.Attribute = ReadOnly(false)
	_ apis.Attribute = DefaultProperty("")
	_ apis.Attribute = DefaultEvent("")
	_ apis.Attribute = DefaultValue{}
	_ apis.Attribute = ExtenderProvided{}
)
