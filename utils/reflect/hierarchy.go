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

package reflect

import (
	"reflect"
	"strings"

	"dirpx.dev/typedesc/apis"
)

// InterfaceMarker is the key under which providers for every interface type are
// registered. Its base is ObjectType.
type InterfaceMarker struct{}

var (
	// ObjectType is the root of every type hierarchy.
	ObjectType = reflect.TypeFor[any]()
	// InterfaceType is the shared base of all interface types.
	InterfaceType = reflect.TypeFor[InterfaceMarker]()
)

// BaseType returns the base of t, or nil when t is ObjectType.
//
//   - InterfaceType: ObjectType
//   - any other interface: InterfaceType
//   - struct embedding a type as its first field: that (normalized) type
//   - anything else: ObjectType
func BaseType(t reflect.Type, cfg apis.Config) reflect.Type {
	switch {
	case t == nil || t == ObjectType:
		return nil
	case t == InterfaceType:
		return ObjectType
	case t.Kind() == reflect.Interface:
		return InterfaceType
	case t.Kind() == reflect.Struct && t.NumField() > 0:
		f := t.Field(0)
		if !f.Anonymous {
			return ObjectType
		}
		bt, err := Normalize(f.Type, cfg)
		if err != nil || bt == t {
			return ObjectType
		}
		return bt
	default:
		return ObjectType
	}
}

// Ancestors returns the chain of bases of t, nearest first, ending in ObjectType.
func Ancestors(t reflect.Type, cfg apis.Config) []reflect.Type {
	var out []reflect.Type
	for b := BaseType(t, cfg); b != nil; b = BaseType(b, cfg) {
		out = append(out, b)
	}
	return out
}

// IsAncestor reports whether a is a strict ancestor of t.
func IsAncestor(a, t reflect.Type, cfg apis.Config) bool {
	if a == nil || t == nil {
		return false
	}
	for b := BaseType(t, cfg); b != nil; b = BaseType(b, cfg) {
		if b == a {
			return true
		}
	}
	return false
}

// Related reports whether a refresh of t concerns entries keyed by k:
// k is t, an ancestor of t, or the interface marker when t is an interface.
func Related(k, t reflect.Type, cfg apis.Config) bool {
	switch {
	case k == nil || t == nil:
		return false
	case k == t:
		return true
	case k == InterfaceType && t.Kind() == reflect.Interface:
		return true
	default:
		return IsAncestor(k, t, cfg)
	}
}

// InPackage reports whether t is declared in package pkgPath.
func InPackage(t reflect.Type, pkgPath string) bool {
	return t != nil && t.PkgPath() == pkgPath
}

// InModule reports whether t is declared in modulePath or one of its subpackages.
func InModule(t reflect.Type, modulePath string) bool {
	if t == nil || modulePath == "" {
		return false
	}
	p := t.PkgPath()
	return p == modulePath || strings.HasPrefix(p, modulePath+"/")
}

// MatchPackage reports whether t is declared in a package matching pattern.
// A pattern ending in "/..." matches the path and every package below it.
func MatchPackage(t reflect.Type, pattern string) bool {
	if prefix, ok := strings.CutSuffix(pattern, "/..."); ok {
		return InModule(t, prefix)
	}
	return InPackage(t, pattern)
}

// Satisfies reports whether x can be used where t is expected.
func Satisfies(x any, t reflect.Type) bool {
	if x == nil || t == nil {
		return false
	}
	xt := reflect.TypeOf(x)
	if xt.AssignableTo(t) {
		return true
	}
	return xt.Kind() == reflect.Pointer && xt.Elem() == t
}
