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

package reflection_test

import (
	"reflect"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/typedesc/apis"
	"dirpx.dev/typedesc/attribute"
	"dirpx.dev/typedesc/config"
	"dirpx.dev/typedesc/descriptor"
	"dirpx.dev/typedesc/reflection"
)

type Base struct {
	ID int `meta:"category=Identity,readonly"`
}

func (Base) TypeAttributes() apis.Attributes {
	return apis.Attributes{attribute.Category("Base"), attribute.Description("base")}
}

type Widget struct {
	Base
	Name   string `meta:"desc=Display name,default=w"`
	Width  int    `meta:"default=10"`
	hidden int
	Click  func()
	Secret string `meta:"-"`

	site apis.Site
}

func (Widget) TypeAttributes() apis.Attributes {
	return apis.Attributes{attribute.Category("Widget"), attribute.DefaultProperty("Name"), attribute.DefaultEvent("Click")}
}

func (w *Widget) Site() apis.Site { return w.site }

var widgetType = reflect.TypeFor[Widget]()

func newProvider() *reflection.Provider {
	return reflection.New(config.DefaultConfig())
}

func TestTypeDescriptor_Members(t *testing.T) {
	p := newProvider()
	d := p.TypeDescriptor(widgetType, nil)

	assert.Equal(t, []string{"ID", "Name", "Width", "Secret"}, d.Properties().Names())
	assert.Equal(t, []string{"Click"}, d.Events().Names())
	assert.Equal(t, "reflection_test.Widget", d.ClassName())
	assert.Equal(t, "Name", d.DefaultProperty().Name())
	assert.Equal(t, "Click", d.DefaultEvent().Name())

	id := d.Properties().Find("ID")
	assert.True(t, id.IsReadOnly())
	assert.Equal(t, attribute.Category("Identity"), id.Attributes()[0])

	width := d.Properties().Find("Width")
	assert.Contains(t, width.Attributes(), apis.Attribute(attribute.DefaultValue{Value: 10}))
	assert.False(t, attribute.IsBrowsable(d.Properties().Find("Secret")))
}

func TestTypeDescriptor_InheritedAttributes(t *testing.T) {
	d := newProvider().TypeDescriptor(widgetType, nil)
	assert.Equal(t, apis.Attributes{
		attribute.Category("Widget"),
		attribute.Description("base"),
		attribute.DefaultProperty("Name"),
		attribute.DefaultEvent("Click"),
	}, d.Attributes())
}

func TestTypeDescriptor_StableIdentity(t *testing.T) {
	p := newProvider()
	a := p.TypeDescriptor(widgetType, nil).Properties()
	b := p.TypeDescriptor(reflect.TypeFor[*Widget](), nil).Properties()
	require.Len(t, b, len(a))
	for i := range a {
		assert.Same(t, a[i], b[i])
	}
}

func TestTypeDescriptor_Instance(t *testing.T) {
	p := newProvider()
	w := &Widget{site: &site{name: "w1"}}
	d := p.TypeDescriptor(nil, w)
	assert.Equal(t, "w1", d.ComponentName())
	assert.Same(t, w, d.PropertyOwner(nil))
	assert.Equal(t, "", p.TypeDescriptor(widgetType, nil).ComponentName())
}

func TestFieldProperty_Values(t *testing.T) {
	d := newProvider().TypeDescriptor(widgetType, nil)
	w := &Widget{Base: Base{ID: 3}}

	v, err := d.Properties().Find("ID").Value(w)
	require.NoError(t, err)
	assert.Equal(t, 3, v)
	require.ErrorIs(t, d.Properties().Find("ID").SetValue(w, 4), descriptor.ErrReadOnly)

	width := d.Properties().Find("Width")
	require.NoError(t, width.SetValue(w, "12"))
	assert.Equal(t, 12, w.Width)
	require.NoError(t, width.SetValue(w, 7))
	assert.Equal(t, 7, w.Width)
	require.Error(t, width.SetValue(w, "wide"))

	require.ErrorIs(t, width.SetValue(Widget{}, 1), reflection.ErrNotAddressable)
	_, err = width.Value(&Base{})
	require.ErrorIs(t, err, reflection.ErrComponentType)
	_, err = width.Value(nil)
	require.ErrorIs(t, err, apis.ErrNilArgument)
}

func TestFieldEvent_Handlers(t *testing.T) {
	d := newProvider().TypeDescriptor(widgetType, nil)
	click := d.Events().Find("Click")
	w := &Widget{}

	called := false
	require.NoError(t, click.AddHandler(w, func() { called = true }))
	require.NotNil(t, w.Click)
	w.Click()
	assert.True(t, called)

	require.ErrorIs(t, click.AddHandler(w, func(int) {}), reflection.ErrHandlerType)
	require.NoError(t, click.RemoveHandler(w))
	assert.Nil(t, w.Click)
}

func TestTypeCache(t *testing.T) {
	p := newProvider()
	tc, ok := p.TypeCache()
	require.True(t, ok)

	assert.False(t, tc.IsPopulated(widgetType))
	p.TypeDescriptor(widgetType, nil)
	assert.True(t, tc.IsPopulated(widgetType))
	assert.True(t, tc.IsPopulated(reflect.TypeFor[Base]()), "base populated through inheritance")
	assert.ElementsMatch(t, []reflect.Type{widgetType, reflect.TypeFor[Base]()}, tc.PopulatedTypes(widgetType.PkgPath()))
	assert.Empty(t, tc.PopulatedTypes("example.com/other"))

	before := p.TypeDescriptor(widgetType, nil).Properties()[0]
	tc.Refresh(widgetType)
	assert.False(t, tc.IsPopulated(widgetType))
	after := p.TypeDescriptor(widgetType, nil).Properties()[0]
	assert.NotSame(t, before, after, "refresh rebuilds members")
}

func TestCreateInstance(t *testing.T) {
	p := newProvider()

	v, err := p.CreateInstance(widgetType, nil, nil)
	require.NoError(t, err)
	assert.IsType(t, &Widget{}, v)

	_, err = p.CreateInstance(widgetType, []reflect.Type{reflect.TypeFor[int]()}, nil)
	require.ErrorIs(t, err, apis.ErrArgumentMismatch)

	_, err = p.CreateInstance(widgetType, []reflect.Type{reflect.TypeFor[string]()}, []any{"x"})
	require.ErrorIs(t, err, reflection.ErrNoConstructor)

	require.NoError(t, p.RegisterConstructor(widgetType, func(args ...any) (any, error) {
		return &Widget{Name: args[0].(string)}, nil
	}))
	v, err = p.CreateInstance(reflect.TypeFor[*Widget](), []reflect.Type{reflect.TypeFor[string]()}, []any{"x"})
	require.NoError(t, err)
	assert.Equal(t, "x", v.(*Widget).Name)

	_, err = p.CreateInstance(nil, nil, nil)
	require.ErrorIs(t, err, apis.ErrNilArgument)
}

func TestCache_PerInstance(t *testing.T) {
	p := newProvider()
	a, b := &Widget{}, &Widget{}
	assert.Same(t, p.Cache(a), p.Cache(a))
	assert.NotSame(t, p.Cache(a), p.Cache(b))
	assert.Nil(t, p.Cache(Widget{}))
	assert.Nil(t, p.Cache(nil))
}

func TestCache_ConcurrentLazyInit(t *testing.T) {
	p := newProvider()
	w := &Widget{}
	var wg sync.WaitGroup
	caches := make([]apis.Cache, 16)
	for i := range caches {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			caches[i] = p.Cache(w)
		}(i)
	}
	wg.Wait()
	for _, c := range caches {
		assert.Same(t, caches[0], c)
	}
}

type countingExtender struct {
	calls atomic.Int32
	props apis.Properties
}

func (e *countingExtender) CanExtend(x any) bool { _, ok := x.(*Widget); return ok }
func (e *countingExtender) ExtendProperties(any) apis.Properties {
	e.calls.Add(1)
	return e.props
}

type extenders []apis.Extender

func (l extenders) Extenders() []apis.Extender { return l }

func TestExtendedDescriptor(t *testing.T) {
	p := newProvider()
	ext := &countingExtender{props: apis.Properties{descriptor.NewProperty("ToolTip", widgetType, reflect.TypeFor[string](), nil)}}
	s := (&site{name: "w"}).with(reflect.TypeFor[apis.ExtenderList](), extenders{ext})
	w := &Widget{site: s}

	first := p.ExtendedDescriptor(w).Properties()
	require.Len(t, first, 1)
	got, ok := attribute.ExtenderOf(first[0])
	require.True(t, ok)
	assert.Same(t, ext, got)

	second := p.ExtendedDescriptor(w).Properties()
	assert.Same(t, first[0], second[0], "wrappers cached per instance")
	assert.Equal(t, int32(1), ext.calls.Load())

	// A new extender list recomputes.
	s.with(reflect.TypeFor[apis.ExtenderList](), extenders{ext, &countingExtender{}})
	p.ExtendedDescriptor(w)
	assert.Equal(t, int32(2), ext.calls.Load())

	assert.Empty(t, p.ExtendedDescriptor(&Widget{}).Properties(), "unsited")
}

type site struct {
	name     string
	services map[reflect.Type]any
}

func (s *site) Name() string     { return s.name }
func (s *site) DesignMode() bool { return false }
func (s *site) Service(t reflect.Type) any {
	return s.services[t]
}

func (s *site) with(t reflect.Type, svc any) *site {
	if s.services == nil {
		s.services = map[reflect.Type]any{}
	}
	s.services[t] = svc
	return s
}
