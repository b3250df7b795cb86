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

// Package typedesc resolves metadata (attributes, properties, events,
// converters) for Go types and for individual instances at run time.
//
// The metadata of a type is answered by a chain of providers. Every chain
// ends in the reflection provider, which derives metadata from struct fields
// and tags. Providers registered later take precedence, and a provider
// registered for a type also answers for its subtypes (struct types that
// embed it as their first field) until they get providers of their own.
//
// # Design
//
// A TypeDescriptor holds an immutable snapshot of three things:
//
//   - Config: how type keys are normalized, which struct tag the reflection
//     provider reads, and the sizes of the internal caches.
//
//   - Builder: a pluggable factory that constructs the root provider and the
//     Registry for a Config. On rebuild the default Builder reconfigures the
//     previous Registry in place, so registered providers keep their chains.
//
//   - Registry: the provider chains keyed by type and, weakly, by instance,
//     plus the refresh generations and the metadata version.
//
// Queries load the current snapshot without locking. SetConfig and
// SetBuilder build a new snapshot under a short mutex and publish it
// atomically. There is no process-wide instance; tests create their own.
//
// # Instance queries
//
// Type-level queries return what the provider chain answers. Instance-level
// queries (the ...Of methods) additionally run a four-stage memoized
// pipeline over the instance's primary members:
//
//  1. Initialize: the primary members and the type's refresh generation form
//     the baseline. A new baseline drops every later cached stage.
//  2. Merge: members contributed by extenders in the instance's site are
//     appended. A name collision renames the extender's member to
//     "<name>_<suffix>", the suffix being the extender's site name or a
//     counter.
//  3. Filter: an apis.FilterService in the instance's site may add, remove,
//     or rename members in place.
//  4. AttributeFilter: members hidden by the caller's attribute filter are
//     dropped.
//
// Each stage is reused while its recorded input is element-identical to the
// current one, so repeated queries do no work.
//
// # Refresh
//
//	td.Refresh(reflect.TypeFor[Widget]())
//
// drops cached metadata for Widget. When anything was stale, including any
// custom provider registered for Widget or its base types, the metadata
// version advances, subscribers are notified and the next instance query of
// a Widget recomputes its pipeline. Unrelated types keep their caches.
//
// # Associations
//
// CreateAssociation links a secondary object to a primary one without
// keeping either alive. Association(t, x) then hands out the newest
// secondary satisfying t when x itself does not.
package typedesc
