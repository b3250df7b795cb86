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

package registry

import (
	"reflect"
	"sync/atomic"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"dirpx.dev/typedesc/apis"
	uref "dirpx.dev/typedesc/utils/reflect"
)

// Refresh implements apis.Registry.
//
// Every chain keyed by t, one of its bases, or the interface marker is walked.
// A custom provider in any of them counts as stale metadata; a provider with a
// TypeCache is asked whether it holds metadata for exactly t and, if so, drops
// it. When anything was stale, t's generation and the metadata version advance
// and subscribers are notified.
func (r *Registry) Refresh(t reflect.Type) error {
	if t == nil {
		return ErrNilType
	}
	t = uref.MustNormalize(t, r.conf())
	if !r.refreshType(t) {
		return nil
	}
	r.bump(t)
	r.version.Add(1)
	r.notify(apis.RefreshEvent{Type: t})
	return nil
}

// RefreshInstance implements apis.Registry. The instance's own cache is always
// cleared; the version advances when its type had stale metadata or the cache
// held anything.
func (r *Registry) RefreshInstance(instance any) error {
	if instance == nil {
		return ErrNilInstance
	}
	r.refreshInstance(instance, true)
	return nil
}

func (r *Registry) refreshInstance(instance any, refreshType bool) {
	found := false
	if refreshType {
		found = r.refreshType(r.typeOf(instance))
	}
	if c := r.LookupInstance(instance, false).Cache(instance); c != nil && c.Clear() {
		found = true
	}
	if !found {
		return
	}
	r.version.Add(1)
	r.notify(apis.RefreshEvent{Instance: instance})
}

// RefreshPackage implements apis.Registry. Every type a TypeCache holds for a
// matching package is dropped and announced once; the version advances once.
func (r *Registry) RefreshPackage(pattern string) error {
	if pattern == "" {
		return apis.ErrNilArgument
	}
	var types []reflect.Type
	seen := make(map[reflect.Type]struct{})
	for _, tc := range r.typeCaches(r.heads(nil)) {
		for _, t := range tc.PopulatedTypes(pattern) {
			tc.Refresh(t)
			if _, ok := seen[t]; !ok {
				seen[t] = struct{}{}
				types = append(types, t)
			}
		}
	}
	if len(types) == 0 {
		return nil
	}
	for _, t := range types {
		r.bump(t)
	}
	r.version.Add(1)
	for _, t := range types {
		r.notify(apis.RefreshEvent{Type: t})
	}
	return nil
}

// RefreshModule refreshes every package of the module at modulePath.
func (r *Registry) RefreshModule(modulePath string) error {
	if modulePath == "" {
		return apis.ErrNilArgument
	}
	return r.RefreshPackage(modulePath + "/...")
}

// refreshType drops cached metadata for t and reports whether anything was stale.
func (r *Registry) refreshType(t reflect.Type) bool {
	heads := r.heads(func(k reflect.Type) bool { return uref.Related(k, t, r.conf()) })

	found := false
	for _, head := range heads {
		for n := head; n != nil; n = n.Next() {
			p := n.Provider()
			if isDelegator(p) {
				continue
			}
			if _, ok := p.TypeCache(); !ok {
				found = true
			}
		}
	}
	for _, tc := range r.typeCaches(heads) {
		if tc.IsPopulated(t) {
			tc.Refresh(t)
			found = true
		}
	}
	if ce := dlog.Check(zap.DebugLevel, "type refreshed"); ce != nil {
		ce.Write(zap.Stringer("type", t), zap.Int("chains", len(heads)), zap.Bool("stale", found))
	}
	return found
}

// heads snapshots the chain heads whose key matches. A nil match takes all.
func (r *Registry) heads(match func(reflect.Type) bool) []*Node {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*Node, 0, len(r.types))
	for k, head := range r.types {
		if match == nil || match(k) {
			out = append(out, head)
		}
	}
	return out
}

// typeCaches returns the distinct TypeCaches of the chains, root first.
func (r *Registry) typeCaches(heads []*Node) []apis.TypeCache {
	var out []apis.TypeCache
	add := func(tc apis.TypeCache) {
		for _, have := range out {
			if uref.Identical(have, tc) {
				return
			}
		}
		out = append(out, tc)
	}
	if tc, ok := r.Root().TypeCache(); ok {
		add(tc)
	}
	for _, head := range heads {
		for n := head; n != nil; n = n.Next() {
			if p := n.Provider(); !isDelegator(p) {
				if tc, ok := p.TypeCache(); ok {
					add(tc)
				}
			}
		}
	}
	return out
}

// MetadataVersion implements apis.Registry.
func (r *Registry) MetadataVersion() uint64 { return r.version.Load() }

// Generation implements apis.Registry.
func (r *Registry) Generation(t reflect.Type) uint64 {
	if t == nil {
		return 0
	}
	t = uref.MustNormalize(t, r.conf())
	g := r.epoch.Load() + r.gen(t)
	for _, b := range uref.Ancestors(t, r.conf()) {
		g += r.gen(b)
	}
	return g
}

func (r *Registry) gen(t reflect.Type) uint64 {
	if v, ok := r.gens.Load(t); ok {
		return v.(*atomic.Uint64).Load()
	}
	return 0
}

func (r *Registry) bump(t reflect.Type) {
	v, _ := r.gens.LoadOrStore(t, new(atomic.Uint64))
	v.(*atomic.Uint64).Add(1)
}

// Subscribe implements apis.Registry.
func (r *Registry) Subscribe(h apis.RefreshHandler) uuid.UUID {
	id := uuid.New()
	if h == nil {
		return id
	}
	r.subsMu.Lock()
	r.subs[id] = h
	r.subsMu.Unlock()
	return id
}

// Unsubscribe implements apis.Registry.
func (r *Registry) Unsubscribe(id uuid.UUID) bool {
	r.subsMu.Lock()
	defer r.subsMu.Unlock()
	if _, ok := r.subs[id]; !ok {
		return false
	}
	delete(r.subs, id)
	return true
}

// notify calls the subscribers outside any lock.
func (r *Registry) notify(ev apis.RefreshEvent) {
	r.subsMu.Lock()
	hs := make([]apis.RefreshHandler, 0, len(r.subs))
	for _, h := range r.subs {
		hs = append(hs, h)
	}
	r.subsMu.Unlock()
	for _, h := range hs {
		h(ev)
	}
}
