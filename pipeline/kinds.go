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

package pipeline

import (
	"dirpx.dev/typedesc/apis"
	"dirpx.dev/typedesc/attribute"
	"dirpx.dev/typedesc/descriptor"
)

var attributeStages = stages[apis.Attribute]{
	kind:     apis.KindAttributes,
	extended: func(d apis.Descriptor) []apis.Attribute { return d.Attributes() },
	merge: func(_ *Pipeline, primary, extended []apis.Attribute) []apis.Attribute {
		return attribute.Merge(primary, extended)
	},
	filter: func(_ *Pipeline, fs apis.FilterService, c apis.Component, members []apis.Attribute) ([]apis.Attribute, bool) {
		t := apis.NewTable[any, apis.Attribute](len(members))
		for _, a := range members {
			if a != nil {
				t.Set(a.TypeID(), a)
			}
		}
		cacheable := fs.FilterAttributes(c, t)
		return t.Values(), cacheable
	},
}

var propertyStages = stages[apis.Property]{
	kind:     apis.KindProperties,
	extended: func(d apis.Descriptor) []apis.Property { return d.Properties() },
	merge: func(p *Pipeline, primary, extended []apis.Property) []apis.Property {
		return mergeMembers(p, primary, extended, descriptor.RenameProperty)
	},
	filter: func(p *Pipeline, fs apis.FilterService, c apis.Component, members []apis.Property) ([]apis.Property, bool) {
		t := memberTable(p, members, descriptor.RenameProperty)
		cacheable := fs.FilterProperties(c, t)
		return t.Values(), cacheable
	},
	hidden: func(m apis.Property, filter []apis.Attribute) bool { return Hidden(m, filter) },
}

var eventStages = stages[apis.Event]{
	kind:     apis.KindEvents,
	extended: func(d apis.Descriptor) []apis.Event { return d.Events() },
	merge: func(p *Pipeline, primary, extended []apis.Event) []apis.Event {
		return mergeMembers(p, primary, extended, descriptor.RenameEvent)
	},
	filter: func(p *Pipeline, fs apis.FilterService, c apis.Component, members []apis.Event) ([]apis.Event, bool) {
		t := memberTable(p, members, descriptor.RenameEvent)
		cacheable := fs.FilterEvents(c, t)
		return t.Values(), cacheable
	},
	hidden: func(m apis.Event, filter []apis.Attribute) bool { return Hidden(m, filter) },
}

// mergeMembers appends extended to primary. An extended member whose name is
// taken is renamed "<name>_<suffix>" to a name nothing else holds; when the member it collides with was itself
// contributed by an extender, that one is renamed the same way.
func mergeMembers[M apis.Member](p *Pipeline, primary, extended []M, rename func(M, string) M) []M {
	out := make([]M, 0, len(primary)+len(extended))
	index := make(map[string]int, len(primary)+len(extended))
	taken := func(name string) bool { _, ok := index[name]; return ok }
	for _, m := range primary {
		index[m.Name()] = len(out)
		out = append(out, m)
	}
	for _, m := range extended {
		name := m.Name()
		if i, taken := index[name]; taken {
			if _, ok := attribute.ExtenderOf(out[i]); ok {
				delete(index, name)
				out[i] = rename(out[i], p.uniqueName(out[i], name, taken))
				index[out[i].Name()] = i
			}
			m = rename(m, p.uniqueName(m, name, taken))
		}
		index[m.Name()] = len(out)
		out = append(out, m)
	}
	return out
}

// memberTable builds the name-keyed table handed to filter services, resolving
// collisions the same way Merge does.
func memberTable[M apis.Member](p *Pipeline, members []M, rename func(M, string) M) *apis.Table[string, M] {
	t := apis.NewTable[string, M](len(members))
	taken := func(name string) bool { _, ok := t.Get(name); return ok }
	for _, m := range members {
		name := m.Name()
		if prev, taken := t.Get(name); taken {
			if _, ok := attribute.ExtenderOf(prev); ok {
				t.Delete(name)
				prev = rename(prev, p.uniqueName(prev, name, taken))
				t.Set(prev.Name(), prev)
			}
			m = rename(m, p.uniqueName(m, name, taken))
		}
		t.Set(m.Name(), m)
	}
	return t
}

// uniqueName returns "<name>_<suffix>" for m such that taken rejects it. The
// first suffix comes from suffixFor, later ones from the counter.
func (p *Pipeline) uniqueName(m apis.Member, name string, taken func(string) bool) string {
	n := name + "_" + p.suffixFor(m)
	for taken(n) {
		n = name + "_" + p.NextSuffix()
	}
	return n
}

// suffixFor returns the contributing extender's site name, or the next counter value.
func (p *Pipeline) suffixFor(m apis.Member) string {
	if ext, ok := attribute.ExtenderOf(m); ok {
		if site := apis.SiteOf(ext); site != nil && site.Name() != "" {
			return site.Name()
		}
	}
	return p.NextSuffix()
}
