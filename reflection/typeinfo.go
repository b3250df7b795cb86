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

package reflection

import (
	"reflect"

	"go.uber.org/zap"

	"dirpx.dev/typedesc/apis"
	"dirpx.dev/typedesc/attribute"
	uref "dirpx.dev/typedesc/utils/reflect"
)

// typeInfo is the reflected metadata of one type. It is immutable once built.
type typeInfo struct {
	typ          reflect.Type
	className    string
	attrs        apis.Attributes
	props        apis.Properties
	events       apis.Events
	conv         apis.Converter
	defaultProp  apis.Property
	defaultEvent apis.Event
}

// info returns the cached metadata for t, building it on first use.
func (p *Provider) info(t reflect.Type) *typeInfo {
	if v, ok := p.types.Load(t); ok {
		return v.(*typeInfo)
	}
	ti := p.build(t)
	v, loaded := p.types.LoadOrStore(t, ti)
	if !loaded {
		if ce := dlog.Check(zap.DebugLevel, "type populated"); ce != nil {
			ce.Write(zap.Stringer("type", t), zap.Int("properties", len(ti.props)), zap.Int("events", len(ti.events)))
		}
	}
	return v.(*typeInfo)
}

func (p *Provider) build(t reflect.Type) *typeInfo {
	ti := &typeInfo{
		typ:       t,
		className: uref.ClassName(t, p.cfg),
		attrs:     p.typeAttributes(t),
		conv:      converterOf(t),
	}
	if t.Kind() == reflect.Struct {
		ti.props, ti.events = p.members(t)
	}
	if name, ok := apis.AttributeOf[attribute.DefaultProperty](ti.attrs); ok && name != "" {
		ti.defaultProp = ti.props.Find(string(name))
	}
	if name, ok := apis.AttributeOf[attribute.DefaultEvent](ti.attrs); ok && name != "" {
		ti.defaultEvent = ti.events.Find(string(name))
	}
	return ti
}

// typeAttributes merges the attributes of t's bases with t's own.
func (p *Provider) typeAttributes(t reflect.Type) apis.Attributes {
	var inherited apis.Attributes
	if b := uref.BaseType(t, p.cfg); b != nil && b != uref.ObjectType && b != uref.InterfaceType {
		inherited = p.info(b).attrs
	}
	return attribute.Merge(inherited, ownAttributes(t))
}

// ownAttributes calls AttributeSource on the zero value of t, or on a new *t.
func ownAttributes(t reflect.Type) apis.Attributes {
	if src, ok := zeroAs[apis.AttributeSource](t); ok {
		return src.TypeAttributes()
	}
	return nil
}

func converterOf(t reflect.Type) apis.Converter {
	if src, ok := zeroAs[apis.ConverterSource](t); ok {
		if c := src.TypeConverter(); c != nil {
			return c
		}
	}
	return NewKindConverter(t)
}

// zeroAs returns the zero value of t (or a new *t) as a T.
func zeroAs[T any](t reflect.Type) (T, bool) {
	var zero T
	if t.Kind() == reflect.Interface {
		return zero, false
	}
	if v, ok := reflect.Zero(t).Interface().(T); ok {
		return v, true
	}
	if v, ok := reflect.New(t).Interface().(T); ok {
		return v, true
	}
	return zero, false
}

// members reflects the exported fields of struct type t, promoted ones included.
// Func-typed fields become events, everything else a property.
func (p *Provider) members(t reflect.Type) (apis.Properties, apis.Events) {
	var (
		props  apis.Properties
		events apis.Events
	)
	for _, f := range reflect.VisibleFields(t) {
		if f.Anonymous || !f.IsExported() {
			continue
		}
		attrs, err := attribute.ParseTag(f.Tag.Get(p.cfg.TagKey), parseDefault(f.Type))
		if err != nil {
			log.Warnw("ignoring member tag", "type", t.String(), "field", f.Name, "err", err)
			attrs = nil
		}
		name := f.Name

		if f.Type.Kind() == reflect.Func {
			events = append(events, &fieldEvent{
				name:      name,
				index:     f.Index,
				component: t,
				handler:   f.Type,
				attrs:     attrs,
			})
			continue
		}
		props = append(props, &fieldProperty{
			name:      name,
			index:     f.Index,
			component: t,
			typ:       f.Type,
			attrs:     attrs,
			readOnly:  readOnlyOf(attrs),
			conv:      converterOf(f.Type),
		})
	}
	return props, events
}
