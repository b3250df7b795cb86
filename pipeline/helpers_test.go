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

package pipeline_test

import (
	"reflect"
	"sync/atomic"

	"dirpx.dev/typedesc/apis"
	"dirpx.dev/typedesc/descriptor"
)

type widget struct {
	site apis.Site
	n    int
}

func (w *widget) Site() apis.Site { return w.site }

var widgetType = reflect.TypeFor[widget]()

func prop(name string, attrs ...apis.Attribute) apis.Property {
	return descriptor.NewProperty(name, widgetType, reflect.TypeFor[int](), nil, descriptor.WithAttributes(attrs...))
}

func event(name string, attrs ...apis.Attribute) apis.Event {
	return descriptor.NewEvent(name, widgetType, reflect.TypeFor[func()](), descriptor.WithEventAttributes(attrs...))
}

type site struct {
	name     string
	design   bool
	services map[reflect.Type]any
}

func (s *site) Name() string     { return s.name }
func (s *site) DesignMode() bool { return s.design }
func (s *site) Service(t reflect.Type) any {
	return s.services[t]
}

func withService[T any](s *site, svc T) *site {
	if s.services == nil {
		s.services = map[reflect.Type]any{}
	}
	s.services[reflect.TypeFor[T]()] = svc
	return s
}

// countingFilter hides properties named in hide and counts invocations.
type countingFilter struct {
	calls     atomic.Int32
	hide      string
	cacheable bool
}

func (f *countingFilter) FilterAttributes(apis.Component, *apis.Table[any, apis.Attribute]) bool {
	f.calls.Add(1)
	return f.cacheable
}

func (f *countingFilter) FilterProperties(_ apis.Component, t *apis.Table[string, apis.Property]) bool {
	f.calls.Add(1)
	if f.hide != "" {
		t.Delete(f.hide)
	}
	return f.cacheable
}

func (f *countingFilter) FilterEvents(apis.Component, *apis.Table[string, apis.Event]) bool {
	f.calls.Add(1)
	return f.cacheable
}

// extender contributes fixed properties and may be sited.
type extender struct {
	site apis.Site
	_    int
}

func (e *extender) Site() apis.Site                      { return e.site }
func (e *extender) CanExtend(any) bool                   { return true }
func (e *extender) ExtendProperties(any) apis.Properties { return nil }
