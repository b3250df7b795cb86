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

// RefreshEvent is delivered to subscribers after cached metadata was invalidated.
// Exactly one of Type and Instance is set.
type RefreshEvent struct {
	// Type is the refreshed type, for type, package and module refreshes.
	Type reflect.Type
	// Instance is the refreshed instance, for instance refreshes.
	Instance any
}

// RefreshHandler receives refresh notifications. Handlers run synchronously on
// the goroutine that performed the refresh, outside any registry lock.
type RefreshHandler func(RefreshEvent)
