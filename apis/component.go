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

// Component is an object that can be sited in a container.
type Component interface {
	// Site returns the component's site, or nil when unsited.
	Site() Site
}

// Site binds a component to its container and exposes container services.
type Site interface {
	// Name returns the component's name within its container.
	Name() string
	// DesignMode reports whether the container is an authoring host.
	DesignMode() bool
	// Service returns the service registered for t, or nil.
	Service(t reflect.Type) any
}

// ServiceOf resolves a service of type T from site.
func ServiceOf[T any](site Site) (T, bool) {
	var zero T
	if site == nil {
		return zero, false
	}
	v := site.Service(reflect.TypeFor[T]())
	if v == nil {
		return zero, false
	}
	s, ok := v.(T)
	return s, ok
}

// SiteOf returns instance's site when instance is a sited component.
func SiteOf(instance any) Site {
	c, ok := instance.(Component)
	if !ok || c == nil {
		return nil
	}
	return c.Site()
}

// FilterService lets a container add, remove, or rename metadata before it
// reaches callers. Each method returns whether its result may be cached.
type FilterService interface {
	FilterAttributes(component Component, attributes *Table[any, Attribute]) bool
	FilterProperties(component Component, properties *Table[string, Property]) bool
	FilterEvents(component Component, events *Table[string, Event]) bool
}

// DesignerHost is the authoring host service that owns design-time proxies.
type DesignerHost interface {
	// Designer returns the design-time proxy for component, or nil.
	Designer(component Component) any
}

// ExtenderList is the container service listing extenders.
type ExtenderList interface {
	Extenders() []Extender
}

// Extender contributes properties to other components.
type Extender interface {
	// CanExtend reports whether the extender contributes to instance.
	CanExtend(instance any) bool
	// ExtendProperties returns the properties contributed to instance.
	ExtendProperties(instance any) Properties
}

// EventExtender is an Extender that also contributes events.
type EventExtender interface {
	Extender
	ExtendEvents(instance any) Events
}
