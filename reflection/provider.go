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

// Package reflection implements the root provider that describes any Go type
// from reflection.
//
// Properties are the exported non-func fields of a struct (promoted fields of
// embedded structs included), events its exported func-typed fields. Member
// attributes come from the struct tag named by Config.TagKey (see
// attribute.ParseTag), type attributes from apis.AttributeSource and are inherited
// from the embedded base. A type's converter is its apis.ConverterSource, or a
// kind-based converter backed by spf13/cast.
//
// Reflected metadata is cached per type and exposed through apis.TypeCache so
// refreshes can drop it.
package reflection

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	logging "github.com/ipfs/go-log/v2"

	"dirpx.dev/typedesc/apis"
	"dirpx.dev/typedesc/config"
	"dirpx.dev/typedesc/pipeline"
	uref "dirpx.dev/typedesc/utils/reflect"
	"dirpx.dev/typedesc/utils/weakref"
)

var (
	log  = logging.Logger("typedesc/reflection")
	dlog = log.Desugar()
)

var (
	// ErrNoConstructor is returned by CreateInstance when arguments are given for
	// a type without a registered constructor.
	ErrNoConstructor = errors.New("typedesc(reflection): no constructor registered")
)

// Constructor builds a value of a registered type from constructor arguments.
type Constructor func(args ...any) (any, error)

// Provider is the reflection-backed root provider.
type Provider struct {
	cfg   apis.Config
	types sync.Map // reflect.Type -> *typeInfo
	ctors sync.Map // reflect.Type -> Constructor

	mu     sync.Mutex
	caches *weakref.Map[*pipeline.Cache]
}

// New returns a reflection provider configured by cfg.
func New(cfg apis.Config) *Provider {
	if cfg.TagKey == "" {
		cfg.TagKey = config.DefaultTagKey
	}
	return &Provider{cfg: cfg, caches: weakref.NewMap[*pipeline.Cache](cfg.SweepEvery)}
}

// RegisterConstructor registers the constructor used by CreateInstance for t.
func (p *Provider) RegisterConstructor(t reflect.Type, ctor Constructor) error {
	if t == nil || ctor == nil {
		return apis.ErrNilArgument
	}
	p.ctors.Store(p.key(t), ctor)
	return nil
}

// TypeDescriptor implements apis.Provider.
func (p *Provider) TypeDescriptor(t reflect.Type, instance any) apis.Descriptor {
	if instance != nil {
		t = reflect.TypeOf(instance)
	}
	if t == nil {
		t = uref.ObjectType
	}
	return &typeDescriptor{info: p.info(p.key(t)), instance: instance}
}

// ExtendedDescriptor implements apis.Provider.
func (p *Provider) ExtendedDescriptor(instance any) apis.Descriptor {
	return p.extended(instance)
}

// Cache implements apis.Provider. Instances that are not non-nil pointers get no cache.
func (p *Provider) Cache(instance any) apis.Cache {
	if !uref.IsReferenceable(instance) {
		return nil
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if c, ok := p.caches.Get(instance); ok {
		return c
	}
	c := pipeline.NewCache()
	_ = p.caches.Set(instance, c)
	return c
}

// IsSupportedType implements apis.Provider.
func (p *Provider) IsSupportedType(t reflect.Type) bool { return t != nil }

// ReflectionType implements apis.Provider.
func (p *Provider) ReflectionType(t reflect.Type, instance any) reflect.Type {
	if instance != nil {
		return reflect.TypeOf(instance)
	}
	return t
}

// CreateInstance implements apis.Provider. Without arguments it returns a
// pointer to a new zero value of t.
func (p *Provider) CreateInstance(t reflect.Type, argTypes []reflect.Type, args []any) (any, error) {
	if t == nil {
		return nil, apis.ErrNilArgument
	}
	if len(argTypes) != len(args) {
		return nil, fmt.Errorf("%w: %d types, %d values", apis.ErrArgumentMismatch, len(argTypes), len(args))
	}
	key := p.key(t)
	if v, ok := p.ctors.Load(key); ok {
		return v.(Constructor)(args...)
	}
	if len(args) > 0 {
		return nil, fmt.Errorf("%w: %v", ErrNoConstructor, key)
	}
	if key.Kind() == reflect.Interface {
		return nil, fmt.Errorf("%w: %v", ErrNoConstructor, key)
	}
	return reflect.New(key).Interface(), nil
}

// TypeCache implements apis.Provider.
func (p *Provider) TypeCache() (apis.TypeCache, bool) { return p, true }

// IsPopulated implements apis.TypeCache.
func (p *Provider) IsPopulated(t reflect.Type) bool {
	if t == nil {
		return false
	}
	_, ok := p.types.Load(p.key(t))
	return ok
}

// Refresh implements apis.TypeCache.
func (p *Provider) Refresh(t reflect.Type) {
	if t == nil {
		return
	}
	p.types.Delete(p.key(t))
}

// PopulatedTypes implements apis.TypeCache. A pattern ending in "/..." matches
// a package tree.
func (p *Provider) PopulatedTypes(pattern string) []reflect.Type {
	var out []reflect.Type
	p.types.Range(func(k, _ any) bool {
		if t := k.(reflect.Type); uref.MatchPackage(t, pattern) {
			out = append(out, t)
		}
		return true
	})
	return out
}

// key normalizes t.
func (p *Provider) key(t reflect.Type) reflect.Type {
	return uref.MustNormalize(t, p.cfg)
}

// typeDescriptor answers for one type or instance from reflected metadata.
type typeDescriptor struct {
	info     *typeInfo
	instance any
}

func (d *typeDescriptor) Attributes() apis.Attributes { return d.info.attrs }
func (d *typeDescriptor) Properties() apis.Properties { return d.info.props }
func (d *typeDescriptor) Events() apis.Events         { return d.info.events }
func (d *typeDescriptor) Converter() apis.Converter   { return d.info.conv }
func (d *typeDescriptor) ClassName() string           { return d.info.className }
func (d *typeDescriptor) DefaultProperty() apis.Property {
	return d.info.defaultProp
}
func (d *typeDescriptor) DefaultEvent() apis.Event { return d.info.defaultEvent }

func (d *typeDescriptor) ComponentName() string {
	if site := apis.SiteOf(d.instance); site != nil {
		return site.Name()
	}
	return ""
}

func (d *typeDescriptor) PropertyOwner(apis.Property) any { return d.instance }

var (
	_ apis.Provider   = (*Provider)(nil)
	_ apis.TypeCache  = (*Provider)(nil)
	_ apis.Descriptor = (*typeDescriptor)(nil)
)
