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
	"reflect"

	"dirpx.dev/typedesc/apis"
	"dirpx.dev/typedesc/provider"
)

// AddProvider puts p in front of the chain for t. It answers for t and for
// every subtype of t without a provider of its own.
func (td *TypeDescriptor) AddProvider(p apis.Provider, t reflect.Type) error {
	return td.st.Load().reg.AddProvider(p, t)
}

// RemoveProvider removes p from the chain for t.
func (td *TypeDescriptor) RemoveProvider(p apis.Provider, t reflect.Type) error {
	return td.st.Load().reg.RemoveProvider(p, t)
}

// AddInstanceProvider puts p in front of the chain for instance x alone.
func (td *TypeDescriptor) AddInstanceProvider(p apis.Provider, x any) error {
	return td.st.Load().reg.AddInstanceProvider(p, x)
}

// RemoveInstanceProvider removes p from the chain for instance x.
func (td *TypeDescriptor) RemoveInstanceProvider(p apis.Provider, x any) error {
	return td.st.Load().reg.RemoveInstanceProvider(p, x)
}

// Provider returns a provider for t that follows later registrations on t and
// its base types. It is the natural parent for a provider about to be added.
func (td *TypeDescriptor) Provider(t reflect.Type) (apis.Provider, error) {
	if t == nil {
		return nil, ErrNilType
	}
	return td.st.Load().reg.Lookup(t, true), nil
}

// InstanceProvider is Provider for instance x.
func (td *TypeDescriptor) InstanceProvider(x any) (apis.Provider, error) {
	if x == nil {
		return nil, ErrNilInstance
	}
	return td.st.Load().reg.LookupInstance(x, true), nil
}

// AddAttributes adds attrs to the type attributes of t, replacing attributes
// of the same type. The returned provider can be passed to RemoveProvider.
func (td *TypeDescriptor) AddAttributes(t reflect.Type, attrs ...apis.Attribute) (apis.Provider, error) {
	parent, err := td.Provider(t)
	if err != nil {
		return nil, err
	}
	p := provider.NewAttributeProvider(parent, attrs...)
	if err := td.AddProvider(p, t); err != nil {
		return nil, err
	}
	return p, nil
}

// AddInstanceAttributes is AddAttributes for instance x. The returned provider
// can be passed to RemoveInstanceProvider.
func (td *TypeDescriptor) AddInstanceAttributes(x any, attrs ...apis.Attribute) (apis.Provider, error) {
	parent, err := td.InstanceProvider(x)
	if err != nil {
		return nil, err
	}
	p := provider.NewAttributeProvider(parent, attrs...)
	if err := td.AddInstanceProvider(p, x); err != nil {
		return nil, err
	}
	return p, nil
}

// CreateAssociation links secondary to primary so that Association can hand
// it out for types primary does not satisfy. Neither side is kept alive.
func (td *TypeDescriptor) CreateAssociation(primary, secondary any) error {
	return td.assoc.Create(primary, secondary)
}

// Association returns the object answering for primary under t. It is primary
// itself unless primary does not satisfy t and an association or a design-time
// proxy does.
func (td *TypeDescriptor) Association(t reflect.Type, primary any) any {
	return td.assoc.Get(t, primary)
}

// RemoveAssociation removes the link between primary and secondary.
func (td *TypeDescriptor) RemoveAssociation(primary, secondary any) error {
	return td.assoc.Remove(primary, secondary)
}

// RemoveAssociations removes every link of primary.
func (td *TypeDescriptor) RemoveAssociations(primary any) error {
	return td.assoc.RemoveAll(primary)
}

// Refresh drops cached metadata for t. When anything was stale the metadata
// version advances and subscribers are notified.
func (td *TypeDescriptor) Refresh(t reflect.Type) error {
	return td.st.Load().reg.Refresh(t)
}

// RefreshInstance drops cached metadata for instance x.
func (td *TypeDescriptor) RefreshInstance(x any) error {
	return td.st.Load().reg.RefreshInstance(x)
}

// RefreshPackage drops cached metadata for every type of package pkgPath.
func (td *TypeDescriptor) RefreshPackage(pkgPath string) error {
	return td.st.Load().reg.RefreshPackage(pkgPath)
}

// RefreshModule drops cached metadata for every type of the module at modulePath.
func (td *TypeDescriptor) RefreshModule(modulePath string) error {
	return td.st.Load().reg.RefreshModule(modulePath)
}
