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

package weakref

// Map is a map keyed weakly by pointer identity. Entries whose key has been
// collected are dropped by Sweep, which also runs every sweepEvery mutations.
//
// Map is not safe for concurrent use; callers hold their own lock.
type Map[V any] struct {
	m          map[Ref]V
	ops        int
	sweepEvery int
}

// NewMap returns an empty map that sweeps every sweepEvery mutations.
// A non-positive sweepEvery disables automatic sweeps.
func NewMap[V any](sweepEvery int) *Map[V] {
	return &Map[V]{m: make(map[Ref]V), sweepEvery: sweepEvery}
}

// Get returns the value stored for x.
func (m *Map[V]) Get(x any) (V, bool) {
	var zero V
	k, err := Make(x)
	if err != nil {
		return zero, false
	}
	v, ok := m.m[k]
	return v, ok
}

// Set stores v for x.
func (m *Map[V]) Set(x any, v V) error {
	k, err := Make(x)
	if err != nil {
		return err
	}
	m.m[k] = v
	m.mutated()
	return nil
}

// Delete removes the entry for x and reports whether one existed.
func (m *Map[V]) Delete(x any) bool {
	k, err := Make(x)
	if err != nil {
		return false
	}
	if _, ok := m.m[k]; !ok {
		return false
	}
	delete(m.m, k)
	m.mutated()
	return true
}

// Len returns the number of entries, dead ones included until swept.
func (m *Map[V]) Len() int { return len(m.m) }

// Range calls fn for every live entry until fn returns false.
func (m *Map[V]) Range(fn func(x any, v V) bool) {
	for k, v := range m.m {
		x := k.Value()
		if x == nil {
			continue
		}
		if !fn(x, v) {
			return
		}
	}
}

// Clear drops every entry.
func (m *Map[V]) Clear() {
	clear(m.m)
	m.ops = 0
}

// Sweep drops entries whose key was collected and returns how many were removed.
func (m *Map[V]) Sweep() int {
	n := 0
	for k := range m.m {
		if !k.Alive() {
			delete(m.m, k)
			n++
		}
	}
	m.ops = 0
	return n
}

// mutated counts a mutation and sweeps when due.
func (m *Map[V]) mutated() {
	if m.sweepEvery <= 0 {
		return
	}
	m.ops++
	if m.ops >= m.sweepEvery {
		m.Sweep()
	}
}
