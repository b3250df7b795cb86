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
	"dirpx.dev/typedesc/apis"
	"dirpx.dev/typedesc/attribute"
)

// renamedProperty exposes a property under another name.
type renamedProperty struct {
	apis.Property
	name string
}

func (r *renamedProperty) Name() string { return r.name }

// Unwrap returns the renamed property.
func (r *renamedProperty) Unwrap() apis.Property { return r.Property }

// RenameProperty returns p exposed as name. Renaming a renamed property wraps
// the original, not the wrapper.
func RenameProperty(p apis.Property, name string) apis.Property {
	if r, ok := p.(*renamedProperty); ok {
		p = r.Property
	}
	if p.Name() == name {
		return p
	}
	return &renamedProperty{Property: p, name: name}
}

// renamedEvent exposes an event under another name.
type renamedEvent struct {
	apis.Event
	name string
}

func (r *renamedEvent) Name() string { return r.name }

// Unwrap returns the renamed event.
func (r *renamedEvent) Unwrap() apis.Event { return r.Event }

// RenameEvent returns e exposed as name.
func RenameEvent(e apis.Event, name string) apis.Event {
	if r, ok := e.(*renamedEvent); ok {
		e = r.Event
	}
	if e.Name() == name {
		return e
	}
	return &renamedEvent{Event: e, name: name}
}

// extendedProperty is a property contributed by an extender.
type extendedProperty struct {
	apis.Property
	attrs apis.Attributes
}

func (x *extendedProperty) Attributes() apis.Attributes { return x.attrs }

// Unwrap returns the contributed property.
func (x *extendedProperty) Unwrap() apis.Property { return x.Property }

// ExtendProperty marks p as contributed by ext.
func ExtendProperty(ext apis.Extender, p apis.Property) apis.Property {
	return &extendedProperty{
		Property: p,
		attrs:    attribute.Merge(p.Attributes(), apis.Attributes{attribute.ExtenderProvided{Extender: ext}}),
	}
}

// extendedEvent is an event contributed by an extender.
type extendedEvent struct {
	apis.Event
	attrs apis.Attributes
}

func (x *extendedEvent) Attributes() apis.Attributes { return x.attrs }

// Unwrap returns the contributed event.
func (x *extendedEvent) Unwrap() apis.Event { return x.Event }

// ExtendEvent marks e as contributed by ext.
func ExtendEvent(ext apis.Extender, e apis.Event) apis.Event {
	return &extendedEvent{
		Event: e,
		attrs: attribute.Merge(e.Attributes(), apis.Attributes{attribute.ExtenderProvided{Extender: ext}}),
	}
}
