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

// Package provider holds building blocks for custom providers.
//
// Base delegates every call to the provider that was effective before the custom
// one was registered, so a custom provider only overrides what it changes:
//
//	type widgetProvider struct{ provider.Base }
//
//	func (w *widgetProvider) TypeDescriptor(t reflect.Type, x any) apis.Descriptor {
//		return &widgetDescriptor{Custom: descriptor.NewCustom(w.Base.TypeDescriptor(t, x))}
//	}
//
//	td.AddProvider(&widgetProvider{Base: provider.NewBase(td.Provider(widgetType))}, widgetType)
package provider

import (
	"errors"
	"reflect"

	"dirpx.dev/typedesc/apis"
	"dirpx.dev/typedesc/descriptor"
)

var (
	// ErrNoParent is returned by Base.CreateInstance without a parent provider.
	ErrNoParent = errors.New("typedesc(provider): no parent provider")
)

// Base is an embeddable provider delegating to a parent.
// It never exposes the parent's TypeCache: a decorator holds no reflected metadata.
type Base struct {
	parent apis.Provider
}

// NewBase returns a Base delegating to parent. A nil parent answers with empty metadata.
func NewBase(parent apis.Provider) Base {
	return Base{parent: parent}
}

// Parent returns the provider calls are delegated to.
func (b Base) Parent() apis.Provider { return b.parent }

// TypeDescriptor implements apis.Provider.
func (b Base) TypeDescriptor(t reflect.Type, instance any) apis.Descriptor {
	if b.parent == nil {
		return descriptor.Empty()
	}
	return b.parent.TypeDescriptor(t, instance)
}

// ExtendedDescriptor implements apis.Provider.
func (b Base) ExtendedDescriptor(instance any) apis.Descriptor {
	if b.parent == nil {
		return descriptor.Empty()
	}
	return b.parent.ExtendedDescriptor(instance)
}

// Cache implements apis.Provider.
func (b Base) Cache(instance any) apis.Cache {
	if b.parent == nil {
		return nil
	}
	return b.parent.Cache(instance)
}

// IsSupportedType implements apis.Provider.
func (b Base) IsSupportedType(t reflect.Type) bool {
	if b.parent == nil {
		return t != nil
	}
	return b.parent.IsSupportedType(t)
}

// ReflectionType implements apis.Provider.
func (b Base) ReflectionType(t reflect.Type, instance any) reflect.Type {
	if b.parent == nil {
		if instance != nil {
			return reflect.TypeOf(instance)
		}
		return t
	}
	return b.parent.ReflectionType(t, instance)
}

// CreateInstance implements apis.Provider.
func (b Base) CreateInstance(t reflect.Type, argTypes []reflect.Type, args []any) (any, error) {
	if b.parent == nil {
		return nil, ErrNoParent
	}
	return b.parent.CreateInstance(t, argTypes, args)
}

// TypeCache implements apis.Provider.
func (Base) TypeCache() (apis.TypeCache, bool) { return nil, false }

var _ apis.Provider = Base{}
