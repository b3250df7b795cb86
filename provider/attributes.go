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

package provider

import (
	"reflect"

	"dirpx.dev/typedesc/apis"
	"dirpx.dev/typedesc/attribute"
	"dirpx.dev/typedesc/descriptor"
)

// AttributeProvider overlays class attributes on top of its parent's answers.
// Overlay attributes replace parent attributes of the same type.
type AttributeProvider struct {
	Base
	attrs apis.Attributes
}

// NewAttributeProvider returns a provider adding attrs to parent's attributes.
func NewAttributeProvider(parent apis.Provider, attrs ...apis.Attribute) *AttributeProvider {
	return &AttributeProvider{Base: NewBase(parent), attrs: append(apis.Attributes(nil), attrs...)}
}

// TypeDescriptor implements apis.Provider.
func (a *AttributeProvider) TypeDescriptor(t reflect.Type, instance any) apis.Descriptor {
	return &attributeDescriptor{
		Custom: descriptor.NewCustom(a.Base.TypeDescriptor(t, instance)),
		attrs:  a.attrs,
	}
}

// attributeDescriptor merges overlay attributes into its parent's.
type attributeDescriptor struct {
	descriptor.Custom
	attrs apis.Attributes
}

func (d *attributeDescriptor) Attributes() apis.Attributes {
	return attribute.Merge(d.Custom.Attributes(), d.attrs)
}

var _ apis.Provider = (*AttributeProvider)(nil)
