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

package reflect_test

import (
	"errors"
	"reflect"
	"runtime"
	"sync"
	"testing"

	"dirpx.dev/typedesc/apis"
	uref "dirpx.dev/typedesc/utils/reflect"
)

// Local test types.
type A struct{}
type B struct{}
type G[T any] struct{}

// cfg returns a convenient baseline Config for tests.
func cfg(opts ...func(*apis.Config)) apis.Config {
	c := apis.Config{MaxUnwrap: 8}
	for _, o := range opts {
		o(&c)
	}
	return c
}

func TestNormalize_Pointers(t *testing.T) {
	conf := cfg()

	pa := &A{}
	cases := []struct {
		name string
		typ  reflect.Type
		want reflect.Type
	}{
		{"plain", reflect.TypeOf(A{}), reflect.TypeOf(A{})},
		{"ptr", reflect.TypeOf(&A{}), reflect.TypeOf(A{})},
		{"ptr-ptr", reflect.TypeOf(&pa), reflect.TypeOf(A{})},
		{"slice kept", reflect.TypeOf([]A{}), reflect.TypeOf([]A{})},
		{"map kept", reflect.TypeOf(map[string]A{}), reflect.TypeOf(map[string]A{})},
		{"builtin", reflect.TypeOf(0), reflect.TypeOf(0)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := uref.Normalize(tc.typ, conf)
			if err != nil {
				t.Fatalf("Normalize(%v) returned error: %v", tc.typ, err)
			}
			if got != tc.want {
				t.Fatalf("Normalize(%v) = %v, want %v", tc.typ, got, tc.want)
			}
		})
	}
}

func TestNormalize_MaxUnwrapLimit(t *testing.T) {
	pa := &A{}
	ppa := &pa
	typ := reflect.TypeOf(&ppa) // ***A

	got, err := uref.Normalize(typ, cfg(func(c *apis.Config) { c.MaxUnwrap = 1 }))
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if got != reflect.TypeOf(ppa) {
		t.Fatalf("MaxUnwrap=1: got %v, want **A", got)
	}

	got, _ = uref.Normalize(typ, cfg(func(c *apis.Config) { c.MaxUnwrap = 0 }))
	if got != reflect.TypeOf(A{}) {
		t.Fatalf("MaxUnwrap=0 uses default: got %v, want A", got)
	}
}

func TestNormalize_Nil(t *testing.T) {
	_, err := uref.Normalize(nil, cfg())
	if !errors.Is(err, uref.ErrReflectNilType) {
		t.Fatalf("Normalize(nil) err = %v, want ErrReflectNilType", err)
	}
}

func TestClassName(t *testing.T) {
	conf := cfg()
	cases := []struct {
		typ  reflect.Type
		want string
	}{
		{reflect.TypeOf(A{}), "reflect_test.A"},
		{reflect.TypeOf(&B{}), "reflect_test.B"},
		{reflect.TypeOf(G[int]{}), "reflect_test.G"},
		{reflect.TypeOf(0), "int"},
		{reflect.TypeOf([]int{}), "[]int"},
		{nil, ""},
	}
	for _, tc := range cases {
		if got := uref.ClassName(tc.typ, conf); got != tc.want {
			t.Fatalf("ClassName(%v) = %q, want %q", tc.typ, got, tc.want)
		}
	}
}

func TestNormalize_Concurrent(t *testing.T) {
	conf := cfg()
	typ := reflect.TypeOf(&A{})
	want := reflect.TypeOf(A{})

	n := runtime.GOMAXPROCS(0) * 4
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				got, err := uref.Normalize(typ, conf)
				if err != nil || got != want {
					t.Errorf("Normalize = %v, %v", got, err)
					return
				}
			}
		}()
	}
	wg.Wait()
}

func BenchmarkNormalize_Ptr(b *testing.B) {
	conf := cfg()
	typ := reflect.TypeOf(&A{})
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, _ = uref.Normalize(typ, conf)
	}
}
