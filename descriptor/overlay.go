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

// Overlay answers from self first and falls back to base where self has no
// answer. Attributes are merged, with self winning per attribute type.
type Overlay struct {
	Custom
	self apis.Descriptor
}

// NewOverlay returns self laid over base. A nil self yields base.
func NewOverlay(self, base apis.Descriptor) apis.Descriptor {
	if self == nil {
		return base
	}
	return &Overlay{Custom: NewCustom(base), self: self}
}

// Attributes implements apis.Descriptor.
func (o *Overlay) Attributes() apis.Attributes {
	return attribute.Merge(o.Custom.Attributes(), o.self.Attributes())
}

// Properties implements apis.Descriptor.
func (o *Overlay) Properties() apis.Properties {
	if ps := o.self.Properties(); len(ps) > 0 {
		return ps
	}
	return o.Custom.Properties()
}

// Events implements apis.Descriptor.
func (o *Overlay) Events() apis.Events {
	if es := o.self.Events(); len(es) > 0 {
		return es
	}
	return o.Custom.Events()
}

// Converter implements apis.Descriptor.
func (o *Overlay) Converter() apis.Converter {
	if c := o.self.Converter(); c != nil {
		if _, nop := c.(NopConverter); !nop {
			return c
		}
	}
	return o.Custom.Converter()
}

// ClassName implements apis.Descriptor.
func (o *Overlay) ClassName() string {
	if n := o.self.ClassName(); n != "" {
		return n
	}
	return o.Custom.ClassName()
}

// ComponentName implements apis.Descriptor.
func (o *Overlay) ComponentName() string {
	if n := o.self.ComponentName(); n != "" {
		return n
	}
	return o.Custom.ComponentName()
}

// DefaultProperty implements apis.Descriptor.
func (o *Overlay) DefaultProperty() apis.Property {
	if p := o.self.DefaultProperty(); p != nil {
		return p
	}
	return o.Custom.DefaultProperty()
}

// DefaultEvent implements apis.Descriptor.
func (o *Overlay) DefaultEvent() apis.Event {
	if e := o.self.DefaultEvent(); e != nil {
		return e
	}
	return o.Custom.DefaultEvent()
}

// PropertyOwner implements apis.Descriptor.
func (o *Overlay) PropertyOwner(p apis.Property) any {
	if v := o.self.PropertyOwner(p); v != nil {
		return v
	}
	return o.Custom.PropertyOwner(p)
}
