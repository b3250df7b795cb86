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

package weakref_test

import (
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/typedesc/utils/weakref"
)

type obj struct {
	n    int
	name string
}

func TestMake_RejectsNonPointers(t *testing.T) {
	var nilPtr *obj
	for _, x := range []any{nil, obj{}, 42, nilPtr} {
		_, err := weakref.Make(x)
		require.ErrorIs(t, err, weakref.ErrNotReferenceable, "%T", x)
	}
}

func TestRef_IdentityAndValue(t *testing.T) {
	a, b := &obj{n: 1}, &obj{n: 2}
	ra, err := weakref.Make(a)
	require.NoError(t, err)
	ra2, _ := weakref.Make(a)
	rb, _ := weakref.Make(b)

	assert.Equal(t, ra, ra2)
	assert.NotEqual(t, ra, rb)
	assert.True(t, ra.Is(a))
	assert.False(t, ra.Is(b))
	assert.Same(t, a, ra.Value().(*obj))
	assert.True(t, ra.Alive())
	runtime.KeepAlive(b)
}

func TestRef_DoesNotKeepTargetAlive(t *testing.T) {
	r := func() weakref.Ref {
		r, err := weakref.Make(&obj{n: 7})
		require.NoError(t, err)
		return r
	}()

	require.Eventually(t, func() bool {
		runtime.GC()
		return !r.Alive()
	}, 2*time.Second, 10*time.Millisecond)
	assert.Nil(t, r.Value())
}

func TestMap_Basic(t *testing.T) {
	m := weakref.NewMap[string](0)
	a, b := &obj{n: 1}, &obj{n: 2}

	require.NoError(t, m.Set(a, "a"))
	require.NoError(t, m.Set(b, "b"))
	require.ErrorIs(t, m.Set(obj{}, "x"), weakref.ErrNotReferenceable)

	v, ok := m.Get(a)
	assert.True(t, ok)
	assert.Equal(t, "a", v)
	assert.Equal(t, 2, m.Len())

	seen := map[string]bool{}
	m.Range(func(_ any, v string) bool { seen[v] = true; return true })
	assert.Equal(t, map[string]bool{"a": true, "b": true}, seen)

	assert.True(t, m.Delete(a))
	assert.False(t, m.Delete(a))
	_, ok = m.Get(a)
	assert.False(t, ok)

	m.Clear()
	assert.Equal(t, 0, m.Len())
	runtime.KeepAlive(b)
}

func TestMap_SweepDropsCollected(t *testing.T) {
	m := weakref.NewMap[int](0)
	keep := &obj{n: 1}
	require.NoError(t, m.Set(keep, 1))
	func() {
		require.NoError(t, m.Set(&obj{n: 2}, 2))
	}()

	require.Eventually(t, func() bool {
		runtime.GC()
		m.Sweep()
		return m.Len() == 1
	}, 2*time.Second, 10*time.Millisecond)

	v, ok := m.Get(keep)
	assert.True(t, ok)
	assert.Equal(t, 1, v)
}
