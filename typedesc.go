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

package typedesc

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	logging "github.com/ipfs/go-log/v2"

	"dirpx.dev/typedesc/apis"
	"dirpx.dev/typedesc/association"
	"dirpx.dev/typedesc/builder"
	"dirpx.dev/typedesc/config"
	"dirpx.dev/typedesc/pipeline"
)

var log = logging.Logger("typedesc")

var (
	// ErrNilRegistry is returned when a builder returns a nil registry.
	ErrNilRegistry = errors.New("typedesc: builder returned nil registry")
	// ErrNilRoot is returned when a builder returns a nil root provider.
	ErrNilRoot = errors.New("typedesc: builder returned nil root provider")
	// ErrNilType is returned when a nil reflect.Type is queried.
	ErrNilType = fmt.Errorf("%w: type", apis.ErrNilArgument)
	// ErrNilInstance is returned when a nil instance is queried.
	ErrNilInstance = fmt.Errorf("%w: instance", apis.ErrNilArgument)
)

// state is one immutable snapshot of the configuration, the builder and the
// registry built from them.
type state struct {
	cfg apis.Config
	bld apis.Builder
	reg apis.Registry
	// sub is the facade's subscription on reg.
	sub uuid.UUID
	// base keeps MetadataVersion monotonic across registry rebuilds.
	base uint64
}

// TypeDescriptor answers metadata queries for types and instances and owns the
// registry, pipeline and association table behind them. Queries load the
// current snapshot without locking; SetConfig and SetBuilder publish a new one.
type TypeDescriptor struct {
	buildMu sync.Mutex
	st      atomic.Pointer[state]

	pipe  *pipeline.Pipeline
	assoc *association.Table

	subsMu sync.Mutex
	subs   map[uuid.UUID]apis.RefreshHandler
}

// options collects New's options.
type options struct {
	cfg apis.Config
	bld apis.Builder
}

// Option configures New.
type Option func(*options)

// WithConfig sets the configuration. The default is config.DefaultConfig().
func WithConfig(cfg apis.Config) Option {
	return func(o *options) { o.cfg = cfg }
}

// WithBuilder sets the builder of the root provider and the registry.
func WithBuilder(b apis.Builder) Option {
	return func(o *options) {
		if b != nil {
			o.bld = b
		}
	}
}

// New returns a TypeDescriptor with its own registry. Nothing is shared
// between TypeDescriptors.
func New(opts ...Option) (*TypeDescriptor, error) {
	o := options{cfg: config.DefaultConfig(), bld: builder.New()}
	for _, opt := range opts {
		opt(&o)
	}
	td := &TypeDescriptor{
		pipe:  pipeline.New(),
		assoc: association.New(o.cfg.SweepEvery),
		subs:  make(map[uuid.UUID]apis.RefreshHandler),
	}
	s, err := td.build(o.cfg, o.bld, nil)
	if err != nil {
		return nil, err
	}
	td.st.Store(s)
	return td, nil
}

// build assembles a snapshot. With old given, the builder is handed the old
// registry to reconfigure or replace.
func (td *TypeDescriptor) build(cfg apis.Config, bld apis.Builder, old *state) (*state, error) {
	root := bld.BuildRoot(cfg)
	if root == nil {
		return nil, ErrNilRoot
	}
	var prev apis.Registry
	if old != nil {
		prev = old.reg
	}
	reg := bld.BuildRegistry(cfg, root, prev)
	if reg == nil {
		return nil, ErrNilRegistry
	}
	s := &state{cfg: cfg, bld: bld, reg: reg}
	switch {
	case old == nil:
	case reg == old.reg:
		// Reconfigured in place; the registry's own version already advanced.
		s.base, s.sub = old.base, old.sub
		return s, nil
	default:
		s.base = old.base + old.reg.MetadataVersion() + 1
	}
	s.sub = reg.Subscribe(td.notify)
	return s, nil
}

// Config returns the current configuration.
func (td *TypeDescriptor) Config() apis.Config {
	return td.st.Load().cfg
}

// SetConfig rebuilds the root provider and reconfigures the registry for cfg.
// Registered providers are kept, along with every provider handed out by
// Provider and InstanceProvider; cached metadata is not.
func (td *TypeDescriptor) SetConfig(cfg apis.Config) error {
	return td.rebuild(func(old *state) (apis.Config, apis.Builder) { return cfg, old.bld })
}

// Builder returns the current builder.
func (td *TypeDescriptor) Builder() apis.Builder {
	return td.st.Load().bld
}

// SetBuilder rebuilds the root provider and the registry with b. The current
// registry is handed to b, which may reconfigure it or build a new one.
func (td *TypeDescriptor) SetBuilder(b apis.Builder) error {
	if b == nil {
		return fmt.Errorf("%w: builder", apis.ErrNilArgument)
	}
	return td.rebuild(func(old *state) (apis.Config, apis.Builder) { return old.cfg, b })
}

func (td *TypeDescriptor) rebuild(next func(old *state) (apis.Config, apis.Builder)) error {
	td.buildMu.Lock()
	defer td.buildMu.Unlock()

	// Load the old state.
	old := td.st.Load()
	cfg, bld := next(old)

	s, err := td.build(cfg, bld, old)
	if err != nil {
		return err
	}
	// Store the new state atomically.
	td.st.Store(s)
	if s.reg != old.reg {
		old.reg.Unsubscribe(old.sub)
	}
	log.Infow("registry rebuilt", "providers", s.reg.Count(), "version", s.base+s.reg.MetadataVersion())
	return nil
}

// Registry returns the current registry.
func (td *TypeDescriptor) Registry() apis.Registry {
	return td.st.Load().reg
}

// Stats returns the pipeline stage counters.
func (td *TypeDescriptor) Stats() pipeline.Stats {
	return td.pipe.Stats()
}

// MetadataVersion returns a counter that advances on every refresh that
// invalidated metadata. It never decreases, rebuilds included.
func (td *TypeDescriptor) MetadataVersion() uint64 {
	s := td.st.Load()
	return s.base + s.reg.MetadataVersion()
}

// Subscribe registers h for refresh notifications. Subscriptions survive
// registry rebuilds.
func (td *TypeDescriptor) Subscribe(h apis.RefreshHandler) uuid.UUID {
	id := uuid.New()
	if h == nil {
		return id
	}
	td.subsMu.Lock()
	td.subs[id] = h
	td.subsMu.Unlock()
	return id
}

// Unsubscribe removes a handler and reports whether it was registered.
func (td *TypeDescriptor) Unsubscribe(id uuid.UUID) bool {
	td.subsMu.Lock()
	defer td.subsMu.Unlock()
	if _, ok := td.subs[id]; !ok {
		return false
	}
	delete(td.subs, id)
	return true
}

// notify forwards a registry notification to the subscribers outside any lock.
func (td *TypeDescriptor) notify(ev apis.RefreshEvent) {
	td.subsMu.Lock()
	hs := make([]apis.RefreshHandler, 0, len(td.subs))
	for _, h := range td.subs {
		hs = append(hs, h)
	}
	td.subsMu.Unlock()
	for _, h := range hs {
		h(ev)
	}
}
