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

import "dirpx.dev/typedesc/apis"

// Custom is a base for descriptors that override some answers and delegate the
// rest to a parent descriptor. With no parent it answers like Empty.
type Custom struct {
	parent apis.Descriptor
}

// NewCustom returns a Custom delegating to parent.
func NewCustom(parent apis.Descriptor) Custom {
	return Custom{parent: parent}
}

// Parent returns the descriptor answers are delegated to.
func (c Custom) Parent() apis.Descriptor { return c.parent }

// Attributes implements apis.Descriptor.
func (c Custom) Attributes() apis.Attributes {
	if c.parent == nil {
		return nil
	}
	return c.parent.Attributes()
}

// Properties implements apis.Descriptor.
func (c Custom) Properties() apis.Properties {
	if c.parent == nil {
		return nil
	}
	return c.parent.Properties()
}

// Events implements apis.Descriptor.
func (c Custom) Events() apis.Events {
	if c.parent == nil {
		return nil
	}
	return c.parent.Events()
}

// Converter implements apis.Descriptor.
func (c Custom) Converter() apis.Converter {
	if c.parent == nil {
		return NopConverter{}
	}
	return c.parent.Converter()
}

// ClassName implements apis.Descriptor.
func (c Custom) ClassName() string {
	if c.parent == nil {
		return ""
	}
	return c.parent.ClassName()
}

// ComponentName implements apis.Descriptor.
func (c Custom) ComponentName() string {
	if c.parent == nil {
		return ""
	}
	return c.parent.ComponentName()
}

// DefaultProperty implements apis.Descriptor.
func (c Custom) DefaultProperty() apis.Property {
	if c.parent == nil {
		return nil
	}
	return c.parent.DefaultProperty()
}

// DefaultEvent implements apis.Descriptor.
func (c Custom) DefaultEvent() apis.Event {
	if c.parent == nil {
		return nil
	}
	return c.parent.DefaultEvent()
}

// PropertyOwner implements apis.Descriptor.
func (c Custom) PropertyOwner(p apis.Property) any {
	if c.parent == nil {
		return nil
	}
	return c.parent.PropertyOwner(p)
}

// Empty returns a descriptor with no metadata.
func Empty() apis.Descriptor { return Custom{} }

var _ apis.Descriptor = Custom{}
