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

package pipeline

import (
	"sync"
	"sync/atomic"

	"dirpx.dev/typedesc/apis"
)

// Cache is the default apis.Cache. Slots are independent atomic cells, so racing
// writers never corrupt each other and the last writer wins.
type Cache struct {
	slots  [apis.KindCount][apis.StageCount]atomic.Pointer[slot]
	values sync.Map
}

// slot boxes a slot value so it can live in an atomic.Pointer.
type slot struct{ v any }

// NewCache returns an empty cache.
func NewCache() *Cache { return &Cache{} }

// Slot implements apis.Cache.
func (c *Cache) Slot(kind apis.Kind, stage apis.Stage) any {
	if !valid(kind, stage) {
		return nil
	}
	if s := c.slots[kind][stage].Load(); s != nil {
		return s.v
	}
	return nil
}

// SetSlot implements apis.Cache.
func (c *Cache) SetSlot(kind apis.Kind, stage apis.Stage, v any) {
	if !valid(kind, stage) {
		return
	}
	if v == nil {
		c.slots[kind][stage].Store(nil)
		return
	}
	c.slots[kind][stage].Store(&slot{v: v})
}

// Load implements apis.Cache.
func (c *Cache) Load(key any) (any, bool) { return c.values.Load(key) }

// Store implements apis.Cache.
func (c *Cache) Store(key, value any) { c.values.Store(key, value) }

// Clear implements apis.Cache.
func (c *Cache) Clear() bool {
	dropped := false
	for k := range c.slots {
		for s := range c.slots[k] {
			if c.slots[k][s].Swap(nil) != nil {
				dropped = true
			}
		}
	}
	c.values.Range(func(key, _ any) bool {
		c.values.Delete(key)
		dropped = true
		return true
	})
	return dropped
}

func valid(kind apis.Kind, stage apis.Stage) bool {
	return kind >= 0 && kind < apis.KindCount && stage >= 0 && stage < apis.StageCount
}

var _ apis.Cache = (*Cache)(nil)
