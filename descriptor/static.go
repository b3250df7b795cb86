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

// Static is a descriptor with fixed answers. Zero fields fall back to Empty.
type Static struct {
	Attrs     apis.Attributes
	Props     apis.Properties
	Evts      apis.Events
	Conv      apis.Converter
	Class     string
	Component string
	// DefaultProp and DefaultEvt name members of Props and Evts.
	DefaultProp string
	DefaultEvt  string
	// Owner is returned by PropertyOwner.
	Owner any
}

// Attributes implements apis.Descriptor.
func (s *Static) Attributes() apis.Attributes { return s.Attrs }

// Properties implements apis.Descriptor.
func (s *Static) Properties() apis.Properties { return s.Props }

// Events implements apis.Descriptor.
func (s *Static) Events() apis.Events { return s.Evts }

// Converter implements apis.Descriptor.
func (s *Static) Converter() apis.Converter {
	if s.Conv == nil {
		return NopConverter{}
	}
	return s.Conv
}

// ClassName implements apis.Descriptor.
func (s *Static) ClassName() string { return s.Class }

// ComponentName implements apis.Descriptor.
func (s *Static) ComponentName() string { return s.Component }

// DefaultProperty implements apis.Descriptor.
func (s *Static) DefaultProperty() apis.Property {
	if s.DefaultProp == "" {
		return nil
	}
	return s.Props.Find(s.DefaultProp)
}

// DefaultEvent implements apis.Descriptor.
func (s *Static) DefaultEvent() apis.Event {
	if s.DefaultEvt == "" {
		return nil
	}
	return s.Evts.Find(s.DefaultEvt)
}

// PropertyOwner implements apis.Descriptor.
func (s *Static) PropertyOwner(apis.Property) any { return s.Owner }

var _ apis.Descriptor = (*Static)(nil)
