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

package typedesc

import (
	"fmt"
	"reflect"

	"go.uber.org/zap"

	"dirpx.dev/typedesc/apis"
	"dirpx.dev/typedesc/descriptor"
	"dirpx.dev/typedesc/pipeline"
	"dirpx.dev/typedesc/registry"
)

var dlog = log.Desugar()

// describeType returns the descriptor for t from its effective provider.
func (td *TypeDescriptor) describeType(t reflect.Type) (apis.Descriptor, error) {
	if t == nil {
		return nil, ErrNilType
	}
	return registry.Describe(td.st.Load().reg.Lookup(t, false), t, nil)
}

// instanceQuery is the resolved context of one instance query.
type instanceQuery struct {
	desc apis.Descriptor
	in   pipeline.Input
}

// queryInstance resolves x's descriptor and pipeline input. A self-describing
// instance overlays its own answers on the provider's and runs the pipeline
// uncached without Merge, since it already carries its extras.
func (td *TypeDescriptor) queryInstance(x any, filter []apis.Attribute) (instanceQuery, error) {
	return td.resolveInstance(x, filter, false)
}

// resolveInstance is queryInstance; with noCustom set a self-describing
// instance is described by its provider alone, extenders included.
func (td *TypeDescriptor) resolveInstance(x any, filter []apis.Attribute, noCustom bool) (instanceQuery, error) {
	if x == nil {
		return instanceQuery{}, ErrNilInstance
	}
	s := td.st.Load()
	p := s.reg.LookupInstance(x, false)
	d, err := registry.Describe(p, nil, x)
	if err != nil {
		return instanceQuery{}, err
	}
	q := instanceQuery{desc: d, in: pipeline.Input{Instance: x, Filter: filter}}

	if self, ok := x.(apis.Descriptor); ok && !noCustom {
		q.desc = descriptor.NewOverlay(self, d)
		if ce := dlog.Check(zap.DebugLevel, "self-describing instance"); ce != nil {
			ce.Write(zap.String("type", fmt.Sprintf("%T", x)))
		}
		return q, nil
	}

	ext, err := registry.DescribeExtended(p, x)
	if err != nil {
		return instanceQuery{}, err
	}
	q.in.Cache = p.Cache(x)
	q.in.Generation = s.reg.Generation(reflect.TypeOf(x))
	q.in.Extended = ext
	return q, nil
}

// Attributes returns the attributes of t.
func (td *TypeDescriptor) Attributes(t reflect.Type) (apis.Attributes, error) {
	d, err := td.describeType(t)
	if err != nil {
		return nil, err
	}
	return d.Attributes(), nil
}

// AttributesOf returns the attributes of instance x after the site's filter service.
func (td *TypeDescriptor) AttributesOf(x any) (apis.Attributes, error) {
	q, err := td.queryInstance(x, nil)
	if err != nil {
		return nil, err
	}
	return td.pipe.Attributes(q.in, q.desc.Attributes()), nil
}

// Properties returns the properties of t not hidden by filter.
func (td *TypeDescriptor) Properties(t reflect.Type, filter ...apis.Attribute) (apis.Properties, error) {
	d, err := td.describeType(t)
	if err != nil {
		return nil, err
	}
	return pipeline.Filter(d.Properties(), filter), nil
}

// PropertiesOf returns the properties of instance x: its own, those contributed
// by extenders, adjusted by the site's filter service and not hidden by filter.
func (td *TypeDescriptor) PropertiesOf(x any, filter ...apis.Attribute) (apis.Properties, error) {
	q, err := td.queryInstance(x, filter)
	if err != nil {
		return nil, err
	}
	return td.pipe.Properties(q.in, q.desc.Properties()), nil
}

// Events returns the events of t not hidden by filter.
func (td *TypeDescriptor) Events(t reflect.Type, filter ...apis.Attribute) (apis.Events, error) {
	d, err := td.describeType(t)
	if err != nil {
		return nil, err
	}
	return pipeline.Filter(d.Events(), filter), nil
}

// EventsOf is PropertiesOf for events.
func (td *TypeDescriptor) EventsOf(x any, filter ...apis.Attribute) (apis.Events, error) {
	q, err := td.queryInstance(x, filter)
	if err != nil {
		return nil, err
	}
	return td.pipe.Events(q.in, q.desc.Events()), nil
}

// AttributesWithoutCustom returns the attributes of x as its provider and the
// extenders of its site describe it, ignoring x's own apis.Descriptor answers
// and the site's filter service. A self-describing instance builds on it.
func (td *TypeDescriptor) AttributesWithoutCustom(x any) (apis.Attributes, error) {
	q, err := td.resolveInstance(x, nil, true)
	if err != nil {
		return nil, err
	}
	return td.pipe.MergedAttributes(q.in, q.desc.Attributes()), nil
}

// PropertiesWithoutCustom is AttributesWithoutCustom for properties.
func (td *TypeDescriptor) PropertiesWithoutCustom(x any) (apis.Properties, error) {
	q, err := td.resolveInstance(x, nil, true)
	if err != nil {
		return nil, err
	}
	return td.pipe.MergedProperties(q.in, q.desc.Properties()), nil
}

// EventsWithoutCustom is AttributesWithoutCustom for events.
func (td *TypeDescriptor) EventsWithoutCustom(x any) (apis.Events, error) {
	q, err := td.resolveInstance(x, nil, true)
	if err != nil {
		return nil, err
	}
	return td.pipe.MergedEvents(q.in, q.desc.Events()), nil
}

// Converter returns the converter of t.
func (td *TypeDescriptor) Converter(t reflect.Type) (apis.Converter, error) {
	d, err := td.describeType(t)
	if err != nil {
		return nil, err
	}
	return converter(d)
}

// ConverterOf returns the converter of instance x.
func (td *TypeDescriptor) ConverterOf(x any) (apis.Converter, error) {
	q, err := td.queryInstance(x, nil)
	if err != nil {
		return nil, err
	}
	return converter(q.desc)
}

func converter(d apis.Descriptor) (apis.Converter, error) {
	if c := d.Converter(); c != nil {
		return c, nil
	}
	log.Warnw("provider contract violation", "descriptor", fmt.Sprintf("%T", d), "op", "Converter")
	return nil, fmt.Errorf("%w: %T.Converter returned nil", apis.ErrProviderContract, d)
}

// ClassName returns the class name of t.
func (td *TypeDescriptor) ClassName(t reflect.Type) (string, error) {
	d, err := td.describeType(t)
	if err != nil {
		return "", err
	}
	return d.ClassName(), nil
}

// ClassNameOf returns the class name of instance x.
func (td *TypeDescriptor) ClassNameOf(x any) (string, error) {
	q, err := td.queryInstance(x, nil)
	if err != nil {
		return "", err
	}
	return q.desc.ClassName(), nil
}

// ComponentName returns the name of instance x, typically its site name.
func (td *TypeDescriptor) ComponentName(x any) (string, error) {
	q, err := td.queryInstance(x, nil)
	if err != nil {
		return "", err
	}
	return q.desc.ComponentName(), nil
}

// DefaultProperty returns the default property of t, or nil.
func (td *TypeDescriptor) DefaultProperty(t reflect.Type) (apis.Property, error) {
	d, err := td.describeType(t)
	if err != nil {
		return nil, err
	}
	return d.DefaultProperty(), nil
}

// DefaultPropertyOf returns the default property of instance x, or nil.
func (td *TypeDescriptor) DefaultPropertyOf(x any) (apis.Property, error) {
	q, err := td.queryInstance(x, nil)
	if err != nil {
		return nil, err
	}
	return q.desc.DefaultProperty(), nil
}

// DefaultEvent returns the default event of t, or nil.
func (td *TypeDescriptor) DefaultEvent(t reflect.Type) (apis.Event, error) {
	d, err := td.describeType(t)
	if err != nil {
		return nil, err
	}
	return d.DefaultEvent(), nil
}

// DefaultEventOf returns the default event of instance x, or nil.
func (td *TypeDescriptor) DefaultEventOf(x any) (apis.Event, error) {
	q, err := td.queryInstance(x, nil)
	if err != nil {
		return nil, err
	}
	return q.desc.DefaultEvent(), nil
}

// ReflectionType returns the type reflection should use for t.
func (td *TypeDescriptor) ReflectionType(t reflect.Type) (reflect.Type, error) {
	if t == nil {
		return nil, ErrNilType
	}
	return td.st.Load().reg.Lookup(t, false).ReflectionType(t, nil), nil
}

// ReflectionTypeOf returns the type reflection should use for instance x.
func (td *TypeDescriptor) ReflectionTypeOf(x any) (reflect.Type, error) {
	if x == nil {
		return nil, ErrNilInstance
	}
	return td.st.Load().reg.LookupInstance(x, false).ReflectionType(reflect.TypeOf(x), x), nil
}

// CreateInstance creates a value of t through its provider chain. argTypes and
// args must have the same length.
func (td *TypeDescriptor) CreateInstance(t reflect.Type, argTypes []reflect.Type, args []any) (any, error) {
	if t == nil {
		return nil, ErrNilType
	}
	if len(argTypes) != len(args) {
		return nil, fmt.Errorf("%w: %d types, %d values", apis.ErrArgumentMismatch, len(argTypes), len(args))
	}
	return td.st.Load().reg.Lookup(t, false).CreateInstance(t, argTypes, args)
}
