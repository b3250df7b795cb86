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
	"reflect"

	"dirpx.dev/typedesc/apis"
	uref "dirpx.dev/typedesc/utils/reflect"
	"dirpx.dev/typedesc/utils/weakref"
)

// stages binds the generic run to one metadata kind.
type stages[M any] struct {
	kind apis.Kind
	// extended returns the extender-contributed members.
	extended func(apis.Descriptor) []M
	// merge combines primary and extended members.
	merge func(p *Pipeline, primary, extended []M) []M
	// filter applies fs and reports whether the result may be cached.
	filter func(p *Pipeline, fs apis.FilterService, c apis.Component, members []M) ([]M, bool)
	// hidden reports whether the attribute filter drops m. Nil disables the stage.
	hidden func(m M, filter []apis.Attribute) bool
}

// baseline is the Initialize slot.
type baseline[M any] struct {
	members []M
	gen     uint64
}

// merged is the Merge slot.
type merged[M any] struct {
	primary  []M
	extended []M
	out      []M
}

// filtered is the Filter slot. The service is held weakly.
type filtered[M any] struct {
	input   []M
	service weakref.Ref
	out     []M
}

// attrFiltered is the AttributeFilter slot.
type attrFiltered[M any] struct {
	input  []M
	filter []apis.Attribute
	out    []M
}

func run[M any](p *Pipeline, s stages[M], in Input, primary []M) []M {
	c := in.Cache
	members := initialize(p, s, c, in.Generation, primary)
	members = mergeStage(p, s, c, in.Extended, members)
	members = filterStage(p, s, c, in.Instance, members)
	if s.hidden != nil && len(in.Filter) > 0 {
		members = attributeFilterStage(p, s, c, in.Filter, members)
	}
	return members
}

// runMerge stops after Merge. It shares the slots of run, so a later full run
// reuses the merged collection.
func runMerge[M any](p *Pipeline, s stages[M], in Input, primary []M) []M {
	members := initialize(p, s, in.Cache, in.Generation, primary)
	return mergeStage(p, s, in.Cache, in.Extended, members)
}

// initialize validates the baseline and drops every later stage when it changed.
func initialize[M any](p *Pipeline, s stages[M], c apis.Cache, gen uint64, primary []M) []M {
	if c == nil {
		return primary
	}
	if b, ok := c.Slot(s.kind, apis.StageInitialize).(*baseline[M]); ok &&
		b.gen == gen && uref.SameElements(b.members, primary) {
		return primary
	}
	c.SetSlot(s.kind, apis.StageMerge, nil)
	c.SetSlot(s.kind, apis.StageFilter, nil)
	c.SetSlot(s.kind, apis.StageAttributeFilter, nil)
	c.SetSlot(s.kind, apis.StageInitialize, &baseline[M]{members: primary, gen: gen})
	p.computed(s.kind, apis.StageInitialize, len(primary))
	return primary
}

func mergeStage[M any](p *Pipeline, s stages[M], c apis.Cache, ext apis.Descriptor, primary []M) []M {
	if ext == nil {
		return primary
	}
	extended := s.extended(ext)
	if len(extended) == 0 {
		if c != nil {
			c.SetSlot(s.kind, apis.StageMerge, nil)
		}
		return primary
	}
	if c != nil {
		if m, ok := c.Slot(s.kind, apis.StageMerge).(*merged[M]); ok &&
			uref.SameElements(m.primary, primary) && uref.SameElements(m.extended, extended) {
			return m.out
		}
	}
	out := s.merge(p, primary, extended)
	p.computed(s.kind, apis.StageMerge, len(out))
	if c != nil {
		c.SetSlot(s.kind, apis.StageMerge, &merged[M]{primary: primary, extended: extended, out: out})
		c.SetSlot(s.kind, apis.StageFilter, nil)
		c.SetSlot(s.kind, apis.StageAttributeFilter, nil)
	}
	return out
}

func filterStage[M any](p *Pipeline, s stages[M], c apis.Cache, instance any, members []M) []M {
	site := apis.SiteOf(instance)
	fs, ok := apis.ServiceOf[apis.FilterService](site)
	if !ok {
		return members
	}
	if c != nil {
		if f, ok := c.Slot(s.kind, apis.StageFilter).(*filtered[M]); ok &&
			f.service.Is(fs) && uref.SameElements(f.input, members) {
			return f.out
		}
	}
	comp, _ := instance.(apis.Component)
	out, cacheable := s.filter(p, fs, comp, members)
	p.computed(s.kind, apis.StageFilter, len(out))
	if c == nil {
		return out
	}
	ref, err := weakref.Make(fs)
	if cacheable && err == nil {
		c.SetSlot(s.kind, apis.StageFilter, &filtered[M]{input: members, service: ref, out: out})
	} else {
		c.SetSlot(s.kind, apis.StageFilter, nil)
	}
	c.SetSlot(s.kind, apis.StageAttributeFilter, nil)
	return out
}

func attributeFilterStage[M any](p *Pipeline, s stages[M], c apis.Cache, filter []apis.Attribute, members []M) []M {
	if c != nil {
		if f, ok := c.Slot(s.kind, apis.StageAttributeFilter).(*attrFiltered[M]); ok &&
			sameFilter(f.filter, filter) && uref.SameElements(f.input, members) {
			return f.out
		}
	}
	out := make([]M, 0, len(members))
	for _, m := range members {
		if !s.hidden(m, filter) {
			out = append(out, m)
		}
	}
	p.computed(s.kind, apis.StageAttributeFilter, len(out))
	if c != nil {
		key := make([]apis.Attribute, len(filter))
		copy(key, filter)
		c.SetSlot(s.kind, apis.StageAttributeFilter, &attrFiltered[M]{input: members, filter: key, out: out})
	}
	return out
}

// sameFilter compares attribute arrays by length and per-element equality, in order.
func sameFilter(a, b []apis.Attribute) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !sameAttribute(a[i], b[i]) {
			return false
		}
	}
	return true
}

func sameAttribute(a, b apis.Attribute) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return reflect.TypeOf(a) == reflect.TypeOf(b) && a.Match(b)
}

// Hidden reports whether m is hidden by any attribute in filter. A member is
// kept by a only when it carries a matching attribute of a's type, or carries
// none of that type and a is that type's default.
func Hidden(m apis.Member, filter []apis.Attribute) bool {
	attrs := m.Attributes()
	for _, a := range filter {
		if a == nil {
			continue
		}
		ma := attrs.Get(reflect.TypeOf(a))
		if ma == nil {
			if !a.IsDefault() {
				return true
			}
			continue
		}
		if !a.Match(ma) {
			return true
		}
	}
	return false
}

// Filter applies the attribute filter to members without caching.
func Filter[S ~[]M, M apis.Member](members S, filter []apis.Attribute) S {
	if len(filter) == 0 {
		return members
	}
	out := make(S, 0, len(members))
	for _, m := range members {
		if !Hidden(m, filter) {
			out = append(out, m)
		}
	}
	return out
}
