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

import "reflect"

// Provider supplies descriptors for types and instances.
//
// Providers form chains per registry key. A provider usually wraps the provider
// that was effective before it was registered and delegates what it does not
// override (see provider.Base).
type Provider interface {
	// TypeDescriptor returns the descriptor for t, or for instance when it is non-nil.
	TypeDescriptor(t reflect.Type, instance any) Descriptor
	// ExtendedDescriptor returns the descriptor for members contributed to
	// instance by other components (extenders).
	ExtendedDescriptor(instance any) Descriptor
	// Cache returns the per-instance pipeline cache, or nil if instance cannot be cached.
	Cache(instance any) Cache
	// IsSupportedType reports whether the provider can describe t.
	IsSupportedType(t reflect.Type) bool
	// ReflectionType returns the type that should be used for reflection over t/instance.
	ReflectionType(t reflect.Type, instance any) reflect.Type
	// CreateInstance creates a new value of t using the given constructor arguments.
	CreateInstance(t reflect.Type, argTypes []reflect.Type, args []any) (any, error)
	// TypeCache reports whether the provider keeps per-type reflected metadata
	// that Refresh must invalidate.
	TypeCache() (TypeCache, bool)
}

// TypeCache is the capability of a root provider that memoizes per-type metadata.
type TypeCache interface {
	// IsPopulated reports whether metadata for exactly t is cached.
	IsPopulated(t reflect.Type) bool
	// Refresh drops cached metadata for t.
	Refresh(t reflect.Type)
	// PopulatedTypes returns cached types declared in packages matching pattern,
	// an import path or a "path/..." tree.
	PopulatedTypes(pattern string) []reflect.Type
}

// Kind selects which metadata collection a pipeline works on.
type Kind int

const (
	// KindAttributes selects class-level attributes.
	KindAttributes Kind = iota
	// KindProperties selects property descriptors.
	KindProperties
	// KindEvents selects event descriptors.
	KindEvents

	// KindCount is the number of kinds.
	KindCount = 3
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindAttributes:
		return "attributes"
	case KindProperties:
		return "properties"
	case KindEvents:
		return "events"
	default:
		return "unknown"
	}
}

// Stage selects one stage of the metadata pipeline.
type Stage int

const (
	// StageInitialize records the primary baseline.
	StageInitialize Stage = iota
	// StageMerge merges extender-contributed members.
	StageMerge
	// StageFilter applies a site filter service.
	StageFilter
	// StageAttributeFilter applies a caller-supplied attribute filter.
	StageAttributeFilter

	// StageCount is the number of stages.
	StageCount = 4
)

// String returns the stage name.
func (s Stage) String() string {
	switch s {
	case StageInitialize:
		return "initialize"
	case StageMerge:
		return "merge"
	case StageFilter:
		return "filter"
	case StageAttributeFilter:
		return "attribute-filter"
	default:
		return "unknown"
	}
}

// Cache is the per-instance memo store used by the pipeline and by providers.
//
// Implementations must tolerate concurrent use without external locking; racing
// writers to the same slot are allowed and the last writer wins.
type Cache interface {
	// Slot returns the value stored for (kind, stage), or nil.
	Slot(kind Kind, stage Stage) any
	// SetSlot stores v for (kind, stage). A nil v clears the slot.
	SetSlot(kind Kind, stage Stage, v any)
	// Load returns a provider-private value.
	Load(key any) (any, bool)
	// Store saves a provider-private value.
	Store(key, value any)
	// Clear drops every slot and value and reports whether anything was stored.
	Clear() bool
}
