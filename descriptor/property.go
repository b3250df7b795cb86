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
	"dirpx.dev/typedesc/attribute"
)

var (
	// ErrReadOnly is returned when setting a read-only property.
	ErrReadOnly = errors.New("typedesc(descriptor): property is read-only")
	// ErrNoHandler is returned when an event has no add/remove implementation.
	ErrNoHandler = errors.New("typedesc(descriptor): event does not accept handlers")
)

// Getter reads a property value from a component.
type Getter func(component any) (any, error)

// Setter writes a property value on a component.
type Setter func(component, value any) error

// Property is a function-backed apis.Property.
type Property struct {
	name      string
	component reflect.Type
	typ       reflect.Type
	attrs     apis.Attributes
	get       Getter
	set       Setter
	conv      apis.Converter
}

// PropertyOption configures a Property.
type PropertyOption func(*Property)

// WithSetter makes the property writable.
func WithSetter(set Setter) PropertyOption {
	return func(p *Property) { p.set = set }
}

// WithAttributes sets the member attributes.
func WithAttributes(attrs ...apis.Attribute) PropertyOption {
	return func(p *Property) { p.attrs = append(p.attrs, attrs...) }
}

// WithConverter sets the value converter.
func WithConverter(c apis.Converter) PropertyOption {
	return func(p *Property) { p.conv = c }
}

// NewProperty returns a property named name of type typ declared on component.
// A nil get yields a property whose value is always nil.
func NewProperty(name string, component, typ reflect.Type, get Getter, opts ...PropertyOption) *Property {
	p := &Property{name: name, component: component, typ: typ, get: get}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Name implements apis.Member.
func (p *Property) Name() string { return p.name }

// Attributes implements apis.Member.
func (p *Property) Attributes() apis.Attributes { return p.attrs }

// ComponentType implements apis.Property.
func (p *Property) ComponentType() reflect.Type { return p.component }

// PropertyType implements apis.Property.
func (p *Property) PropertyType() reflect.Type { return p.typ }

// IsReadOnly implements apis.Property.
func (p *Property) IsReadOnly() bool {
	if p.set == nil {
		return true
	}
	ro, ok := apis.AttributeOf[attribute.ReadOnly](p.attrs)
	return ok && bool(ro)
}

// Value implements apis.Property.
func (p *Property) Value(component any) (any, error) {
	if component == nil {
		return nil, apis.ErrNilArgument
	}
	if p.get == nil {
		return nil, nil
	}
	return p.get(component)
}

// SetValue implements apis.Property.
func (p *Property) SetValue(component, value any) error {
	if component == nil {
		return apis.ErrNilArgument
	}
	if p.IsReadOnly() {
		return fmt.Errorf("%w: %s", ErrReadOnly, p.name)
	}
	return p.set(component, value)
}

// Converter implements apis.Property.
func (p *Property) Converter() apis.Converter {
	if p.conv == nil {
		return NopConverter{}
	}
	return p.conv
}

// Event is a function-backed apis.Event.
type Event struct {
	name      string
	component reflect.Type
	handler   reflect.Type
	attrs     apis.Attributes
	add       func(component, handler any) error
	remove    func(component any) error
}

// EventOption configures an Event.
type EventOption func(*Event)

// WithEventAttributes sets the member attributes.
func WithEventAttributes(attrs ...apis.Attribute) EventOption {
	return func(e *Event) { e.attrs = append(e.attrs, attrs...) }
}

// WithHandlers sets the add and remove implementations.
func WithHandlers(add func(component, handler any) error, remove func(component any) error) EventOption {
	return func(e *Event) {
		e.add = add
		e.remove = remove
	}
}

// NewEvent returns an event named name accepting handlers of type handler.
func NewEvent(name string, component, handler reflect.Type, opts ...EventOption) *Event {
	e := &Event{name: name, component: component, handler: handler}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Name implements apis.Member.
func (e *Event) Name() string { return e.name }

// Attributes implements apis.Member.
func (e *Event) Attributes() apis.Attributes { return e.attrs }

// ComponentType implements apis.Event.
func (e *Event) ComponentType() reflect.Type { return e.component }

// HandlerType implements apis.Event.
func (e *Event) HandlerType() reflect.Type { return e.handler }

// AddHandler implements apis.Event.
func (e *Event) AddHandler(component, handler any) error {
	if component == nil || handler == nil {
		return apis.ErrNilArgument
	}
	if e.add == nil {
		return fmt.Errorf("%w: %s", ErrNoHandler, e.name)
	}
	return e.add(component, handler)
}

// RemoveHandler implements apis.Event.
func (e *Event) RemoveHandler(component any) error {
	if component == nil {
		return apis.ErrNilArgument
	}
	if e.remove == nil {
		return fmt.Errorf("%w: %s", ErrNoHandler, e.name)
	}
	return e.remove(component)
}

var (
	_ apis.Property = (*Property)(nil)
	_ apis.Event    = (*Event)(nil)
)
