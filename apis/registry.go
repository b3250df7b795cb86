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

package apis

import (
	"reflect"

	"github.com/google/uuid"
)

// Registry maps types and instances to provider chains and owns the refresh
// and versioning state. Implementations are safe for concurrent use.
type Registry interface {
	// AddProvider puts p in front of the chain for t and refreshes t.
	AddProvider(p Provider, t reflect.Type) error
	// RemoveProvider removes p from the chain for t and refreshes t.
	RemoveProvider(p Provider, t reflect.Type) error
	// AddInstanceProvider puts p in front of the chain for instance.
	AddInstanceProvider(p Provider, instance any) error
	// RemoveInstanceProvider removes p from the chain for instance.
	RemoveInstanceProvider(p Provider, instance any) error
	// Lookup returns the effective provider for t. With materialize set, a type
	// without its own chain gets a delegating provider that keeps tracking later
	// registrations on its base types.
	Lookup(t reflect.Type, materialize bool) Provider
	// LookupInstance returns the effective provider for instance.
	LookupInstance(instance any, materialize bool) Provider

	// Refresh drops cached metadata for t.
	Refresh(t reflect.Type) error
	// RefreshInstance drops cached metadata for instance.
	RefreshInstance(instance any) error
	// RefreshPackage drops cached metadata for types declared in packages
	// matching pattern ("path" or "path/...").
	RefreshPackage(pattern string) error
	// RefreshModule refreshes every package of the module at modulePath.
	RefreshModule(modulePath string) error
	// MetadataVersion returns the number of refreshes that invalidated something.
	MetadataVersion() uint64
	// Generation returns the refresh generation of t, covering its base types.
	Generation(t reflect.Type) uint64
	// Subscribe registers h for refresh notifications.
	Subscribe(h RefreshHandler) uuid.UUID
	// Unsubscribe removes a handler and reports whether it was registered.
	Unsubscribe(id uuid.UUID) bool

	// Entries returns the type-keyed chains for diagnostics (order is unspecified).
	Entries() []Entry
	// Count returns the number of type-keyed chains.
	Count() int

	// Reconfigure applies cfg and makes root the end of every chain. Registered
	// providers, chain nodes and instance chains are kept; all cached metadata
	// is invalidated.
	Reconfigure(cfg Config, root Provider) error
}

// Entry is one type-keyed chain in a Registry snapshot.
type Entry struct {
	// Type is the registry key.
	Type reflect.Type
	// Providers are the registered providers, most recent first.
	Providers []Provider
}
