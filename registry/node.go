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
	"fmt"
	"reflect"
	"sync/atomic"

	"dirpx.dev/typedesc/apis"
)

// Node is one link of a provider chain. It forwards every apis.Provider call to
// the provider it currently holds. Removal may swap that provider in place, so a
// handed-out Node keeps answering for whatever now sits at its position.
//
// next is chain bookkeeping only; dispatch never follows it.
type Node struct {
	provider atomic.Pointer[holder]
	next     atomic.Pointer[Node]
}

// holder boxes a provider interface for atomic.Pointer.
type holder struct{ p apis.Provider }

func newNode(p apis.Provider, next *Node) *Node {
	n := &Node{}
	n.provider.Store(&holder{p: p})
	n.next.Store(next)
	return n
}

// Provider returns the provider the node currently holds.
func (n *Node) Provider() apis.Provider { return n.provider.Load().p }

// Next returns the following node, or nil at the end of the chain.
func (n *Node) Next() *Node { return n.next.Load() }

func (n *Node) set(p apis.Provider) { n.provider.Store(&holder{p: p}) }

// TypeDescriptor implements apis.Provider.
func (n *Node) TypeDescriptor(t reflect.Type, instance any) apis.Descriptor {
	return n.Provider().TypeDescriptor(t, instance)
}

// ExtendedDescriptor implements apis.Provider.
func (n *Node) ExtendedDescriptor(instance any) apis.Descriptor {
	return n.Provider().ExtendedDescriptor(instance)
}

// Cache implements apis.Provider.
func (n *Node) Cache(instance any) apis.Cache { return n.Provider().Cache(instance) }

// IsSupportedType implements apis.Provider.
func (n *Node) IsSupportedType(t reflect.Type) bool { return n.Provider().IsSupportedType(t) }

// ReflectionType implements apis.Provider.
func (n *Node) ReflectionType(t reflect.Type, instance any) reflect.Type {
	return n.Provider().ReflectionType(t, instance)
}

// CreateInstance implements apis.Provider.
func (n *Node) CreateInstance(t reflect.Type, argTypes []reflect.Type, args []any) (any, error) {
	return n.Provider().CreateInstance(t, argTypes, args)
}

// TypeCache implements apis.Provider.
func (n *Node) TypeCache() (apis.TypeCache, bool) { return n.Provider().TypeCache() }

// Describe asks p for the descriptor of t or instance. A nil answer is a broken
// provider and is reported as apis.ErrProviderContract.
func Describe(p apis.Provider, t reflect.Type, instance any) (apis.Descriptor, error) {
	if d := p.TypeDescriptor(t, instance); d != nil {
		return d, nil
	}
	return nil, contractViolation(p, "TypeDescriptor")
}

// DescribeExtended is Describe for the extended descriptor of instance.
func DescribeExtended(p apis.Provider, instance any) (apis.Descriptor, error) {
	if d := p.ExtendedDescriptor(instance); d != nil {
		return d, nil
	}
	return nil, contractViolation(p, "ExtendedDescriptor")
}

func contractViolation(p apis.Provider, op string) error {
	for n, ok := p.(*Node); ok; n, ok = p.(*Node) {
		p = n.Provider()
	}
	log.Warnw("provider contract violation", "provider", fmt.Sprintf("%T", p), "op", op)
	return fmt.Errorf("%w: %T.%s returned nil", apis.ErrProviderContract, p, op)
}

// delegator forwards to the provider currently effective for base. It resolves
// on every call, outside the registry lock, so registrations made on base after
// the delegator was created are observed.
type delegator struct {
	reg  *Registry
	base reflect.Type
}

func (d *delegator) target() apis.Provider { return d.reg.lookup(d.base, false) }

func (d *delegator) TypeDescriptor(t reflect.Type, instance any) apis.Descriptor {
	return d.target().TypeDescriptor(t, instance)
}

func (d *delegator) ExtendedDescriptor(instance any) apis.Descriptor {
	return d.target().ExtendedDescriptor(instance)
}

func (d *delegator) Cache(instance any) apis.Cache { return d.target().Cache(instance) }

func (d *delegator) IsSupportedType(t reflect.Type) bool { return d.target().IsSupportedType(t) }

func (d *delegator) ReflectionType(t reflect.Type, instance any) reflect.Type {
	return d.target().ReflectionType(t, instance)
}

func (d *delegator) CreateInstance(t reflect.Type, argTypes []reflect.Type, args []any) (any, error) {
	return d.target().CreateInstance(t, argTypes, args)
}

// TypeCache implements apis.Provider. A delegator holds no metadata; refreshes
// reach the base chain through its own registry entry.
func (d *delegator) TypeCache() (apis.TypeCache, bool) { return nil, false }

func isDelegator(p apis.Provider) bool {
	_, ok := p.(*delegator)
	return ok
}

var (
	_ apis.Provider = (*Node)(nil)
	_ apis.Provider = (*delegator)(nil)
)
