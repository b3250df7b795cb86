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

package attribute

import "dirpx.dev/typedesc/apis"

// Merge returns base overlaid with over. An attribute in over replaces every
// attribute of base with the same TypeID; order is base order, then new
// attributes from over. Nil attributes are dropped.
func Merge(base, over apis.Attributes) apis.Attributes {
	if len(over) == 0 {
		return base
	}
	out := make(apis.Attributes, 0, len(base)+len(over))
	idx := make(map[any]int, len(base)+len(over))
	add := func(a apis.Attribute) {
		if a == nil {
			return
		}
		id := a.TypeID()
		if i, ok := idx[id]; ok {
			out[i] = a
			return
		}
		idx[id] = len(out)
		out = append(out, a)
	}
	for _, a := range base {
		add(a)
	}
	for _, a := range over {
		add(a)
	}
	return out
}
