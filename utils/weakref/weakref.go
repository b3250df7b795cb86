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

// Package weakref holds non-owning references to pointer values.
//
// A Ref is comparable and stays usable as a map key after its target is
// collected; it then simply stops resolving. Pointers to zero-size values may
// share an address and therefore an identity.
package weakref

import (
	"reflect"
	"unsafe"
	"weak"

	"dirpx.dev/typedesc/apis"
)

// ErrNotReferenceable is returned for values that are not non-nil pointers.
var ErrNotReferenceable = apis.ErrNotReferenceable

// Ref is a weak reference to a pointer value of a known type.
type Ref struct {
	p weak.Pointer[byte]
	t reflect.Type
}

// Make returns a weak reference to x, which must be a non-nil pointer.
func Make(x any) (Ref, error) {
	if x == nil {
		return Ref{}, ErrNotReferenceable
	}
	v := reflect.ValueOf(x)
	if v.Kind() != reflect.Pointer || v.IsNil() {
		return Ref{}, ErrNotReferenceable
	}
	return Ref{p: weak.Make((*byte)(v.UnsafePointer())), t: v.Type()}, nil
}

// Value returns the target, or nil once it has been collected.
func (r Ref) Value() any {
	if r.t == nil {
		return nil
	}
	p := r.p.Value()
	if p == nil {
		return nil
	}
	return reflect.NewAt(r.t.Elem(), unsafe.Pointer(p)).Interface()
}

// Alive reports whether the target is still reachable.
func (r Ref) Alive() bool {
	return r.t != nil && r.p.Value() != nil
}

// Is reports whether r refers to x.
func (r Ref) Is(x any) bool {
	o, err := Make(x)
	return err == nil && o == r
}

// Type returns the pointer type of the target.
func (r Ref) Type() reflect.Type { return r.t }
