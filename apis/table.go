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

// Table is an insertion-ordered map handed to filter services.
// It is not safe for concurrent use.
type Table[K comparable, V any] struct {
	keys []K
	vals map[K]V
}

// NewTable returns an empty table sized for n entries.
func NewTable[K comparable, V any](n int) *Table[K, V] {
	return &Table[K, V]{keys: make([]K, 0, n), vals: make(map[K]V, n)}
}

// Len returns the number of entries.
func (t *Table[K, V]) Len() int { return len(t.keys) }

// Get returns the value stored under k.
func (t *Table[K, V]) Get(k K) (V, bool) {
	v, ok := t.vals[k]
	return v, ok
}

// Contains reports whether k is present.
func (t *Table[K, V]) Contains(k K) bool {
	_, ok := t.vals[k]
	return ok
}

// Set stores v under k. New keys are appended; existing keys keep their position.
func (t *Table[K, V]) Set(k K, v V) {
	if _, ok := t.vals[k]; !ok {
		t.keys = append(t.keys, k)
	}
	t.vals[k] = v
}

// Delete removes k.
func (t *Table[K, V]) Delete(k K) {
	if _, ok := t.vals[k]; !ok {
		return
	}
	delete(t.vals, k)
	for i, key := range t.keys {
		if key == k {
			t.keys = append(t.keys[:i], t.keys[i+1:]...)
			break
		}
	}
}

// Keys returns a copy of the keys in order.
func (t *Table[K, V]) Keys() []K {
	out := make([]K, len(t.keys))
	copy(out, t.keys)
	return out
}

// Values returns the values in key order.
func (t *Table[K, V]) Values() []V {
	out := make([]V, 0, len(t.keys))
	for _, k := range t.keys {
		out = append(out, t.vals[k])
	}
	return out
}
