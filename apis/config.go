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

// Config carries read-only knobs that influence how metadata is resolved and cached.
// It is passed by value and should be treated as immutable by implementations.
type Config struct {
	// MaxUnwrap limits how many pointer indirections are stripped from a type
	// before it is used as a registry key. Acts as a guard against pathological nesting.
	MaxUnwrap int

	// TagKey is the struct tag consulted by the reflection provider for member attributes.
	TagKey string

	// LookupCacheSize bounds the registry's fast type→chain lookup cache.
	LookupCacheSize int

	// SweepEvery is the number of weak-table mutations between sweeps of dead entries.
	SweepEvery int
}
