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

// Descriptor answers metadata queries for one type or one instance.
//
// Collections may be empty (nil) but a Descriptor must always be able to answer.
// Implementations should return the same member values across calls when the
// underlying metadata did not change, so downstream caches can validate by identity.
type Descriptor interface {
	// Attributes returns the class-level attributes.
	Attributes() Attributes
	// Properties returns the property descriptors.
	Properties() Properties
	// Events returns the event descriptors.
	Events() Events
	// Converter returns the value converter. Must not be nil.
	Converter() Converter
	// ClassName returns a stable class name, e.g. "pkg.Type".
	ClassName() string
	// ComponentName returns the instance's name, or "" if it has none.
	ComponentName() string
	// DefaultProperty returns the default property, or nil.
	DefaultProperty() Property
	// DefaultEvent returns the default event, or nil.
	DefaultEvent() Event
	// PropertyOwner returns the object that owns p's value for the described instance.
	PropertyOwner(p Property) any
}

// AttributeSource is implemented by types that declare class-level attributes.
// It is called on the zero value of the type.
type AttributeSource interface {
	TypeAttributes() Attributes
}
