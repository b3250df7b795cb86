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

// Member is a named descriptor (property or event) with its own attribute set.
type Member interface {
	// Name returns the member name as exposed to callers.
	Name() string
	// Attributes returns the member's attributes.
	Attributes() Attributes
}

// Property describes a readable (and possibly writable) value of a component.
type Property interface {
	Member
	// ComponentType is the type the property is declared on.
	ComponentType() reflect.Type
	// PropertyType is the type of the property value.
	PropertyType() reflect.Type
	// IsReadOnly reports whether SetValue is rejected.
	IsReadOnly() bool
	// Value reads the property from component.
	Value(component any) (any, error)
	// SetValue writes the property on component.
	SetValue(component, value any) error
	// Converter returns the converter for the property value.
	Converter() Converter
}

// Event describes a hook a handler can be attached to.
type Event interface {
	Member
	// ComponentType is the type the event is declared on.
	ComponentType() reflect.Type
	// HandlerType is the func type accepted by AddHandler.
	HandlerType() reflect.Type
	// AddHandler attaches handler to component.
	AddHandler(component, handler any) error
	// RemoveHandler detaches the handler from component.
	RemoveHandler(component any) error
}

// Properties is an ordered property collection.
type Properties []Property

// Find returns the property named name, or nil.
func (ps Properties) Find(name string) Property {
	for _, p := range ps {
		if p != nil && p.Name() == name {
			return p
		}
	}
	return nil
}

// Names returns the property names in order.
func (ps Properties) Names() []string {
	out := make([]string, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.Name())
	}
	return out
}

// Events is an ordered event collection.
type Events []Event

// Find returns the event named name, or nil.
func (es Events) Find(name string) Event {
	for _, e := range es {
		if e != nil && e.Name() == name {
			return e
		}
	}
	return nil
}

// Names returns the event names in order.
func (es Events) Names() []string {
	out := make([]string, 0, len(es))
	for _, e := range es {
		out = append(out, e.Name())
	}
	return out
}
