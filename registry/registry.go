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
	"errors"
	"fmt"
	"reflect"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	logging "github.com/ipfs/go-log/v2"
	"go.uber.org/zap"

	"dirpx.dev/typedesc/apis"
	"dirpx.dev/typedesc/config"
	uref "dirpx.dev/typedesc/utils/reflect"
	"dirpx.dev/typedesc/utils/weakref"
)

var (
	log  = logging.Logger("typedesc/registry")
	dlog = log.Desugar()
)

var (
	// ErrNilProvider is returned when a nil provider is registered or removed.
	ErrNilProvider = fmt.Errorf("%w: provider", apis.ErrNilArgument)
	// ErrNilType is returned when a nil reflect.Type is provided.
	ErrNilType = fmt.Errorf("%w: type", apis.ErrNilArgument)
	// ErrNilInstance is returned when a nil instance is provided.
	ErrNilInstance = fmt.Errorf("%w: instance", apis.ErrNilArgument)
	// ErrNilRoot is returned by New without a root provider.
	ErrNilRoot = errors.New("typedesc(registry): nil root provider")
)

// lookupKey keys the fast lookup cache.
type lookupKey struct {
	t           reflect.Type
	materialize bool
}

// Registry is the apis.Registry implementation.
//
// One mutex guards the type table, the instance table and the fast lookup
// cache. The cache is purged on every mutation and refilled lazily.
type Registry struct {
	cfg  atomic.Pointer[apis.Config]
	root atomic.Pointer[holder]

	mu        sync.Mutex
	types     map[reflect.Type]*Node
	instances *weakref.Map[*Node]
	fast      *lru.Cache[lookupKey, *Node]

	version atomic.Uint64
	epoch   atomic.Uint64
	gens    sync.Map // reflect.Type -> *atomic.Uint64

	subsMu sync.Mutex
	subs   map[uuid.UUID]apis.RefreshHandler
}

// New constructs a Registry whose chains all end in root.
func New(cfg apis.Config, root apis.Provider) (*Registry, error) {
	if root == nil {
		return nil, ErrNilRoot
	}
	cfg = withDefaults(cfg)
	fast, err := lru.New[lookupKey, *Node](cfg.LookupCacheSize)
	if err != nil {
		return nil, err
	}
	r := &Registry{
		types:     make(map[reflect.Type]*Node),
		instances: weakref.NewMap[*Node](cfg.SweepEvery),
		fast:      fast,
		subs:      make(map[uuid.UUID]apis.RefreshHandler),
	}
	r.cfg.Store(&cfg)
	r.root.Store(&holder{p: root})
	return r, nil
}

func withDefaults(cfg apis.Config) apis.Config {
	if cfg.MaxUnwrap <= 0 {
		cfg.MaxUnwrap = config.DefaultMaxUnwrap
	}
	if cfg.LookupCacheSize <= 0 {
		cfg.LookupCacheSize = config.DefaultLookupCacheSize
	}
	return cfg
}

// Root returns the provider every chain ends in.
func (r *Registry) Root() apis.Provider { return r.root.Load().p }

func (r *Registry) conf() apis.Config { return *r.cfg.Load() }

// Reconfigure implements apis.Registry. Chains keep their nodes, so providers
// handed out before keep resolving through this registry. Nodes holding the
// previous root switch to root, keys are normalized again for cfg and every
// generation advances.
func (r *Registry) Reconfigure(cfg apis.Config, root apis.Provider) error {
	if root == nil {
		return ErrNilRoot
	}
	cfg = withDefaults(cfg)

	r.mu.Lock()
	prev := r.Root()
	r.cfg.Store(&cfg)
	r.root.Store(&holder{p: root})

	types := make(map[reflect.Type]*Node, len(r.types))
	var grafts []apis.Entry
	for k, head := range r.types {
		for n := head; n != nil; n = n.Next() {
			if uref.Identical(n.Provider(), prev) {
				n.set(root)
			}
		}
		nk := uref.MustNormalize(k, cfg)
		if types[nk] == nil {
			types[nk] = head
			continue
		}
		// Two keys collapsed into one; the second chain's providers go on top.
		var ps []apis.Provider
		for n := head; n != nil; n = n.Next() {
			if p := n.Provider(); !isDelegator(p) && !uref.Identical(p, root) {
				ps = append(ps, p)
			}
		}
		grafts = append(grafts, apis.Entry{Type: nk, Providers: ps})
	}
	for _, g := range grafts {
		log.Warnw("chains merged by normalization", "type", g.Type.String(), "providers", len(g.Providers))
		for i := len(g.Providers) - 1; i >= 0; i-- {
			types[g.Type] = newNode(g.Providers[i], types[g.Type])
		}
	}
	r.types = types
	r.fast.Resize(cfg.LookupCacheSize)
	r.fast.Purge()
	keys := make([]reflect.Type, 0, len(types))
	for k := range types {
		keys = append(keys, k)
	}
	r.mu.Unlock()

	r.epoch.Add(1)
	r.version.Add(1)
	log.Infow("registry reconfigured", "chains", len(keys), "root", fmt.Sprintf("%T", root))
	for _, k := range keys {
		r.notify(apis.RefreshEvent{Type: k})
	}
	return nil
}

// AddProvider implements apis.Registry.
func (r *Registry) AddProvider(p apis.Provider, t reflect.Type) error {
	if p == nil {
		return ErrNilProvider
	}
	if t == nil {
		return ErrNilType
	}
	t = uref.MustNormalize(t, r.conf())

	r.mu.Lock()
	head := r.types[t]
	if head == nil {
		head = r.nodeFor(t, true)
	}
	r.types[t] = newNode(p, head)
	r.fast.Purge()
	r.mu.Unlock()

	log.Infow("provider added", "type", t.String(), "provider", fmt.Sprintf("%T", p))
	return r.Refresh(t)
}

// RemoveProvider implements apis.Registry. Removing a provider that is not
// registered for t is a no-op.
func (r *Registry) RemoveProvider(p apis.Provider, t reflect.Type) error {
	if p == nil {
		return ErrNilProvider
	}
	if t == nil {
		return ErrNilType
	}
	t = uref.MustNormalize(t, r.conf())

	r.mu.Lock()
	removed := false
	if head := r.types[t]; head != nil {
		var drop bool
		removed, drop = r.remove(head, p, uref.BaseType(t, r.conf()))
		if drop {
			delete(r.types, t)
		}
	}
	r.fast.Purge()
	r.mu.Unlock()

	if !removed {
		return nil
	}
	log.Infow("provider removed", "type", t.String(), "provider", fmt.Sprintf("%T", p))
	return r.Refresh(t)
}

// AddInstanceProvider implements apis.Registry.
func (r *Registry) AddInstanceProvider(p apis.Provider, instance any) error {
	if p == nil {
		return ErrNilProvider
	}
	if instance == nil {
		return ErrNilInstance
	}
	if !uref.IsReferenceable(instance) {
		return fmt.Errorf("%w: %T", apis.ErrNotReferenceable, instance)
	}

	r.mu.Lock()
	head, ok := r.instances.Get(instance)
	if !ok {
		head = newNode(&delegator{reg: r, base: r.typeOf(instance)}, nil)
	}
	err := r.instances.Set(instance, newNode(p, head))
	r.fast.Purge()
	r.mu.Unlock()
	if err != nil {
		return err
	}

	log.Infow("instance provider added", "type", r.typeOf(instance).String(), "provider", fmt.Sprintf("%T", p))
	r.refreshInstance(instance, false)
	return nil
}

// RemoveInstanceProvider implements apis.Registry.
func (r *Registry) RemoveInstanceProvider(p apis.Provider, instance any) error {
	if p == nil {
		return ErrNilProvider
	}
	if instance == nil {
		return ErrNilInstance
	}
	if !uref.IsReferenceable(instance) {
		return fmt.Errorf("%w: %T", apis.ErrNotReferenceable, instance)
	}

	r.mu.Lock()
	removed := false
	if head, ok := r.instances.Get(instance); ok {
		var drop bool
		removed, drop = r.remove(head, p, r.typeOf(instance))
		if drop {
			r.instances.Delete(instance)
		}
	}
	r.fast.Purge()
	r.mu.Unlock()

	if removed {
		r.refreshInstance(instance, false)
	}
	return nil
}

// remove unlinks p from the chain starting at head. The node holding p takes
// over the provider and link of its successor, so references to it stay valid.
// A removed tail becomes a delegator to base. drop reports that the key no
// longer needs an entry. Callers hold r.mu.
func (r *Registry) remove(head *Node, p apis.Provider, base reflect.Type) (removed, drop bool) {
	for n := head; n != nil; n = n.Next() {
		if !uref.Identical(n.Provider(), p) {
			continue
		}
		switch next := n.Next(); {
		case next != nil:
			n.set(next.Provider())
			n.next.Store(next.Next())
			return true, n == head && isDelegator(n.Provider())
		case n != head:
			n.set(r.baseProvider(base))
			return true, false
		default:
			return true, true
		}
	}
	return false, false
}

// baseProvider returns a delegator to base, or root when there is no base.
func (r *Registry) baseProvider(base reflect.Type) apis.Provider {
	if base == nil {
		return r.Root()
	}
	return &delegator{reg: r, base: base}
}

// Lookup implements apis.Registry.
func (r *Registry) Lookup(t reflect.Type, materialize bool) apis.Provider {
	if t == nil {
		t = uref.ObjectType
	}
	return r.lookup(uref.MustNormalize(t, r.conf()), materialize)
}

// LookupInstance implements apis.Registry.
func (r *Registry) LookupInstance(instance any, materialize bool) apis.Provider {
	if instance == nil {
		return r.Lookup(uref.ObjectType, materialize)
	}
	if uref.IsReferenceable(instance) {
		r.mu.Lock()
		n, ok := r.instances.Get(instance)
		r.mu.Unlock()
		if ok {
			return n
		}
	}
	t := r.typeOf(instance)
	if materialize {
		return newNode(&delegator{reg: r, base: t}, nil)
	}
	return r.lookup(t, false)
}

// Provider returns a provider for t that keeps tracking later registrations on
// t and its base types.
func (r *Registry) Provider(t reflect.Type) apis.Provider { return r.Lookup(t, true) }

// InstanceProvider is Provider for instance.
func (r *Registry) InstanceProvider(instance any) apis.Provider {
	return r.LookupInstance(instance, true)
}

// lookup resolves the node for a normalized type, consulting the fast cache first.
func (r *Registry) lookup(t reflect.Type, materialize bool) *Node {
	key := lookupKey{t: t, materialize: materialize}
	if n, ok := r.fast.Get(key); ok {
		return n
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	n := r.nodeFor(t, materialize)
	r.fast.Add(key, n)
	return n
}

// nodeFor walks from t towards ObjectType until a chain is found. The root
// chain is created on first use. With materialize set, a type without its own
// chain gets a fresh delegator node instead. Callers hold r.mu.
func (r *Registry) nodeFor(t reflect.Type, materialize bool) *Node {
	for search := t; ; {
		if n := r.types[search]; n != nil {
			return n
		}
		base := uref.BaseType(search, r.conf())
		if base == nil {
			n := newNode(r.Root(), nil)
			r.types[search] = n
			if ce := dlog.Check(zap.DebugLevel, "root chain allocated"); ce != nil {
				ce.Write(zap.Stringer("type", search))
			}
			return n
		}
		if materialize {
			return newNode(&delegator{reg: r, base: base}, nil)
		}
		search = base
	}
}

// Entries implements apis.Registry. Delegators and the root are omitted.
func (r *Registry) Entries() []apis.Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]apis.Entry, 0, len(r.types))
	for t, head := range r.types {
		var ps []apis.Provider
		for n := head; n != nil; n = n.Next() {
			if p := n.Provider(); !isDelegator(p) && !uref.Identical(p, r.Root()) {
				ps = append(ps, p)
			}
		}
		if len(ps) > 0 {
			out = append(out, apis.Entry{Type: t, Providers: ps})
		}
	}
	return out
}

// Count implements apis.Registry.
func (r *Registry) Count() int {
	return len(r.Entries())
}

// typeOf returns the normalized dynamic type of instance.
func (r *Registry) typeOf(instance any) reflect.Type {
	return uref.MustNormalize(reflect.TypeOf(instance), r.conf())
}

var _ apis.Registry = (*Registry)(nil)
