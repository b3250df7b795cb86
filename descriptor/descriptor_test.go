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

package descriptor_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/typedesc/apis"
	"dirpx.dev/typedesc/attribute"
	"dirpx.dev/typedesc/descriptor"
)

type box struct{ W int }

var boxType = reflect.TypeFor[box]()

func widthProp(opts ...descriptor.PropertyOption) *descriptor.Property {
	return descriptor.NewProperty("W", boxType, reflect.TypeFor[int](),
		func(c any) (any, error) { return c.(*box).W, nil }, opts...)
}

func TestEmpty(t *testing.T) {
	d := descriptor.Empty()
	assert.Empty(t, d.Attributes())
	assert.Empty(t, d.Properties())
	assert.Empty(t, d.Events())
	assert.NotNil(t, d.Converter())
	assert.Nil(t, d.DefaultProperty())
	assert.Nil(t, d.DefaultEvent())
	assert.Equal(t, "", d.ClassName())
}

func TestProperty_ReadWrite(t *testing.T) {
	ro := widthProp()
	assert.True(t, ro.IsReadOnly())
	err := ro.SetValue(&box{}, 3)
	require.ErrorIs(t, err, descriptor.ErrReadOnly)

	rw := widthProp(descriptor.WithSetter(func(c, v any) error {
		c.(*box).W = v.(int)
		return nil
	}))
	assert.False(t, rw.IsReadOnly())
	b := &box{}
	require.NoError(t, rw.SetValue(b, 5))
	v, err := rw.Value(b)
	require.NoError(t, err)
	assert.Equal(t, 5, v)

	forced := widthProp(descriptor.WithSetter(func(any, any) error { return nil }),
		descriptor.WithAttributes(attribute.ReadOnly(true)))
	assert.True(t, forced.IsReadOnly())

	_, err = rw.Value(nil)
	require.ErrorIs(t, err, apis.ErrNilArgument)
}

func TestEvent_Handlers(t *testing.T) {
	var added any
	e := descriptor.NewEvent("Click", boxType, reflect.TypeFor[func()](),
		descriptor.WithHandlers(
			func(_, h any) error { added = h; return nil },
			func(any) error { added = nil; return nil },
		))
	h := func() {}
	require.NoError(t, e.AddHandler(&box{}, h))
	assert.NotNil(t, added)
	require.NoError(t, e.RemoveHandler(&box{}))
	assert.Nil(t, added)

	bare := descriptor.NewEvent("Other", boxType, reflect.TypeFor[func()]())
	require.ErrorIs(t, bare.AddHandler(&box{}, h), descriptor.ErrNoHandler)
	require.ErrorIs(t, bare.AddHandler(&box{}, nil), apis.ErrNilArgument)
}

func TestRename(t *testing.T) {
	p := widthProp(descriptor.WithAttributes(attribute.Category("Size")))
	r := descriptor.RenameProperty(p, "W_1")
	assert.Equal(t, "W_1", r.Name())
	assert.Equal(t, p.Attributes(), r.Attributes(), "attributes survive rename")

	rr := descriptor.RenameProperty(r, "W_2")
	assert.Equal(t, "W_2", rr.Name())
	assert.Same(t, p, rr.(interface{ Unwrap() apis.Property }).Unwrap())
	assert.Same(t, p, descriptor.RenameProperty(p, "W"), "same name is a no-op")
}

type ext struct{ _ int }

func (*ext) CanExtend(any) bool { return true }
func (*ext) ExtendProperties(any) apis.Properties {
	return nil
}

func TestExtendProperty(t *testing.T) {
	x := &ext{}
	p := descriptor.ExtendProperty(x, widthProp(descriptor.WithAttributes(attribute.Category("Size"))))
	got, ok := attribute.ExtenderOf(p)
	require.True(t, ok)
	assert.Same(t, x, got)
	assert.Equal(t, attribute.Category("Size"), p.Attributes()[0])
}

func TestStaticAndOverlay(t *testing.T) {
	wp := widthProp()
	base := &descriptor.Static{
		Attrs:       apis.Attributes{attribute.Category("Base"), attribute.Description("base")},
		Props:       apis.Properties{wp},
		Class:       "descriptor_test.box",
		DefaultProp: "W",
	}
	assert.Same(t, wp, base.DefaultProperty())

	self := &descriptor.Static{Attrs: apis.Attributes{attribute.Category("Self")}, Component: "b1"}
	o := descriptor.NewOverlay(self, base)

	assert.Equal(t, apis.Attributes{attribute.Category("Self"), attribute.Description("base")}, o.Attributes())
	assert.Equal(t, apis.Properties{wp}, o.Properties(), "empty self falls back")
	assert.Equal(t, "descriptor_test.box", o.ClassName())
	assert.Equal(t, "b1", o.ComponentName())
	assert.Same(t, base, descriptor.NewOverlay(nil, base))
}

func TestNopConverter(t *testing.T) {
	c := descriptor.NopConverter{}
	v, err := c.ConvertTo(7, reflect.TypeFor[string]())
	require.NoError(t, err)
	assert.Equal(t, "7", v)

	_, err = c.ConvertTo("x", reflect.TypeFor[int]())
	assert.True(t, errors.Is(err, descriptor.ErrNotConvertible))
	_, ok := c.StandardValues()
	assert.False(t, ok)
}

func TestSortByName(t *testing.T) {
	ps := apis.Properties{
		descriptor.NewProperty("b", boxType, nil, nil),
		descriptor.NewProperty("a", boxType, nil, nil),
	}
	descriptor.SortByName(ps)
	assert.Equal(t, []string{"a", "b"}, ps.Names())
}
