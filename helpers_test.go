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

package typedesc_test

import (
	"reflect"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"dirpx.dev/typedesc"
	"dirpx.dev/typedesc/apis"
	"dirpx.dev/typedesc/descriptor"
	"dirpx.dev/typedesc/provider"
)

// Widget is a sited component.
type Widget struct {
	Name string
	site apis.Site
}

func (w *Widget) Site() apis.Site { return w.site }

// FancyWidget is a subtype of Widget.
type FancyWidget struct {
	Widget
	Glow bool
}

// Gadget is unrelated to Widget.
type Gadget struct{ Size int }

// Panel has a hidden property.
type Panel struct {
	Title  string
	Hidden string `meta:"browsable=false"`
}

var (
	widgetType = reflect.TypeFor[Widget]()
	fancyType  = reflect.TypeFor[FancyWidget]()
	gadgetType = reflect.TypeFor[Gadget]()
	panelType  = reflect.TypeFor[Panel]()
	intType    = reflect.TypeFor[int]()
)

func newTD(t testing.TB) *typedesc.TypeDescriptor {
	t.Helper()
	td, err := typedesc.New()
	require.NoError(t, err)
	return td
}

// site is a configurable apis.Site.
type site struct {
	name     string
	design   bool
	services map[reflect.Type]any
}

func newSite(name string, services ...any) *site {
	s := &site{name: name, services: make(map[reflect.Type]any)}
	for _, svc := range services {
		switch v := svc.(type) {
		case apis.ExtenderList:
			s.services[reflect.TypeFor[apis.ExtenderList]()] = v
		case apis.FilterService:
			s.services[reflect.TypeFor[apis.FilterService]()] = v
		case apis.DesignerHost:
			s.services[reflect.TypeFor[apis.DesignerHost]()] = v
		}
	}
	return s
}

func (s *site) Name() string               { return s.name }
func (s *site) DesignMode() bool           { return s.design }
func (s *site) Service(t reflect.Type) any { return s.services[t] }

func intProperty(name string, component reflect.Type) apis.Property {
	return descriptor.NewProperty(name, component, intType, func(any) (any, error) { return 1, nil })
}

// alphaProvider exposes one property "Alpha" on top of its parent.
type alphaProvider struct {
	provider.Base
	props apis.Properties
	calls atomic.Int64
}

func newAlphaProvider(parent apis.Provider) *alphaProvider {
	return &alphaProvider{
		Base:  provider.NewBase(parent),
		props: apis.Properties{intProperty("Alpha", widgetType)},
	}
}

func (p *alphaProvider) TypeDescriptor(reflect.Type, any) apis.Descriptor {
	p.calls.Add(1)
	return &descriptor.Static{Class: "alpha.Widget", Props: p.props}
}

// named answers with its name as the class name.
type named struct {
	provider.Base
	name string
}

func (n *named) TypeDescriptor(reflect.Type, any) apis.Descriptor {
	return &descriptor.Static{Class: n.name}
}

// extender contributes fixed properties to every instance.
type extender struct {
	props apis.Properties
	calls atomic.Int64
}

func (e *extender) CanExtend(any) bool { return true }

func (e *extender) ExtendProperties(any) apis.Properties {
	e.calls.Add(1)
	return e.props
}

// extenders is an apis.ExtenderList.
type extenders []apis.Extender

func (l extenders) Extenders() []apis.Extender { return l }

// hider is a filter service removing one property by name.
type hider struct {
	name  string
	calls atomic.Int64
}

func (h *hider) FilterAttributes(apis.Component, *apis.Table[any, apis.Attribute]) bool { return true }

func (h *hider) FilterProperties(_ apis.Component, t *apis.Table[string, apis.Property]) bool {
	h.calls.Add(1)
	t.Delete(h.name)
	return true
}

func (h *hider) FilterEvents(apis.Component, *apis.Table[string, apis.Event]) bool { return true }
