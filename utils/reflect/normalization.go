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
	"errors"
	"path"
	"reflect"
	"strings"

	"dirpx.dev/typedesc/apis"
	"dirpx.dev/typedesc/config"
)

var (
	// ErrReflectNilType is returned when a nil reflect.Type is provided.
	ErrReflectNilType = errors.New("typedesc(reflect): nil reflect.Type provided")
)

// Normalize strips pointer indirections from t, at most MaxUnwrap of them, and
// returns the type used as a metadata key. Pointer and pointee share one key.
//
// If MaxUnwrap <= 0, DefaultMaxUnwrap is used.
func Normalize(t reflect.Type, cfg apis.Config) (reflect.Type, error) {
	if t == nil {
		return nil, ErrReflectNilType
	}
	maxUnwrap := cfg.MaxUnwrap
	if maxUnwrap <= 0 {
		maxUnwrap = config.DefaultMaxUnwrap
	}
	for i := 0; i < maxUnwrap && t.Kind() == reflect.Pointer; i++ {
		t = t.Elem()
	}
	return t, nil
}

// MustNormalize is Normalize for callers that already rejected nil.
func MustNormalize(t reflect.Type, cfg apis.Config) reflect.Type {
	nt, err := Normalize(t, cfg)
	if err != nil {
		panic(err)
	}
	return nt
}

// ClassName returns a stable "pkg.Type" name for t. Generic instantiation
// parameters are stripped; builtin and unnamed types use their Go spelling.
func ClassName(t reflect.Type, cfg apis.Config) string {
	if t == nil {
		return ""
	}
	base, err := Normalize(t, cfg)
	if err != nil {
		return ""
	}
	if base.Name() == "" {
		return base.String()
	}
	name := stripTypeParams(base.Name())
	if p := base.PkgPath(); p != "" {
		name = path.Base(p) + "." + name
	}
	return name
}

// stripTypeParams removes generic type instantiation suffix: "T[int,string]" -> "T".
func stripTypeParams(s string) string {
	if i := strings.IndexByte(s, '['); i >= 0 {
		return s[:i]
	}
	return s
}
