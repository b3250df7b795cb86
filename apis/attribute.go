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

// Attribute is a typed piece of metadata attached to a type or a member.
//
// Attributes sharing a TypeID replace each other when attribute sets are merged.
// Match and IsDefault drive attribute filtering: a member that lacks an attribute
// of a given type is treated as carrying that type's default value.
type Attribute interface {
	// TypeID identifies the attribute kind. Usually the attribute's reflect.Type.
	TypeID() any
	// Match reports whether other carries the same value as the receiver.
	Match(other Attribute) bool
	// IsDefault reports whether the receiver equals its type's default value.
	IsDefault() bool
}

// Attributes is an ordered attribute set.
type Attributes []Attribute

// Get returns the last attribute whose dynamic type is t, or nil.
func (as Attributes) Get(t reflect.Type) Attribute {
	for i := len(as) - 1; i >= 0; i-- {
		if as[i] != nil && reflect.TypeOf(as[i]) == t {
			return as[i]
		}
	}
	return nil
}

// Find returns the last attribute with the given TypeID, or nil.
func (as Attributes) Find(typeID any) Attribute {
	for i := len(as) - 1; i >= 0; i-- {
		if as[i] != nil && as[i].TypeID() == typeID {
			return as[i]
		}
	}
	return nil
}

// Contains reports whether the set holds an attribute matching a.
func (as Attributes) Contains(a Attribute) bool {
	if a == nil {
		return false
	}
	m := as.Get(reflect.TypeOf(a))
	return m != nil && a.Match(m)
}

// AttributeOf returns the attribute of type T from as, if present.
func AttributeOf[T Attribute](as Attributes) (T, bool) {
	var zero T
	a := as.Get(reflect.TypeFor[T]())
	if a == nil {
		return zero, false
	}
	v, ok := a.(T)
	return v, ok
}
