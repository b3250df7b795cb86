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

package typedesc_test

import (
	"runtime"
	"testing"
	"time"
	"weak"

	"github.com/stretchr/testify/require"

	"dirpx.dev/typedesc/apis"
	"dirpx.dev/typedesc/attribute"
)

// A queried instance is collectable once the caller drops it, whatever the
// registry, the caches and the association table learned about it.
func TestQueriedInstanceIsCollectable(t *testing.T) {
	td := newTD(t)
	ext := &extender{props: apis.Properties{intProperty("Extra", widgetType)}}
	h := &hider{name: "Name"}

	wp := func() weak.Pointer[Widget] {
		w := &Widget{Name: "w", site: newSite("w", extenders{ext}, h)}
		_, err := td.AddInstanceAttributes(w, attribute.Category("gc"))
		require.NoError(t, err)
		require.NoError(t, td.CreateAssociation(w, &Gadget{Size: 1}))

		props, err := td.PropertiesOf(w)
		require.NoError(t, err)
		require.Contains(t, props.Names(), "Extra")
		_, err = td.AttributesOf(w)
		require.NoError(t, err)
		_, err = td.EventsOf(w)
		require.NoError(t, err)
		return weak.Make(w)
	}()

	require.Eventually(t, func() bool {
		runtime.GC()
		return wp.Value() == nil
	}, 2*time.Second, 10*time.Millisecond)

	// The facade keeps working after the instance is gone.
	_, err := td.PropertiesOf(&Widget{Name: "next"})
	require.NoError(t, err)
	runtime.KeepAlive(ext)
	runtime.KeepAlive(h)
}
