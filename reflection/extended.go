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

package reflection

import (
	"dirpx.dev/typedesc/apis"
	"dirpx.dev/typedesc/descriptor"
	uref "dirpx.dev/typedesc/utils/reflect"
)

// extendedKey is the instance cache key of the extender contributions.
type extendedKey struct{}

// extendedSet is what the extenders in a site's extender list contributed.
type extendedSet struct {
	extenders []apis.Extender
	props     apis.Properties
	events    apis.Events
}

// extended collects extender contributions for instance. The wrapped members are
// cached in the instance cache and reused while the extender list is unchanged.
func (p *Provider) extended(instance any) apis.Descriptor {
	list, ok := apis.ServiceOf[apis.ExtenderList](apis.SiteOf(instance))
	if !ok {
		return descriptor.Empty()
	}
	exts := list.Extenders()
	if len(exts) == 0 {
		return descriptor.Empty()
	}

	cache := p.Cache(instance)
	if cache != nil {
		if v, ok := cache.Load(extendedKey{}); ok {
			if set := v.(*extendedSet); uref.SameElements(set.extenders, exts) {
				return &extendedDescriptor{set: set}
			}
		}
	}

	set := &extendedSet{extenders: append([]apis.Extender(nil), exts...)}
	for _, ext := range exts {
		if ext == nil || !ext.CanExtend(instance) {
			continue
		}
		for _, prop := range ext.ExtendProperties(instance) {
			if prop != nil {
				set.props = append(set.props, descriptor.ExtendProperty(ext, prop))
			}
		}
		if ee, ok := ext.(apis.EventExtender); ok {
			for _, ev := range ee.ExtendEvents(instance) {
				if ev != nil {
					set.events = append(set.events, descriptor.ExtendEvent(ext, ev))
				}
			}
		}
	}
	if cache != nil {
		cache.Store(extendedKey{}, set)
	}
	return &extendedDescriptor{set: set}
}

// extendedDescriptor exposes an extendedSet.
type extendedDescriptor struct {
	descriptor.Custom
	set *extendedSet
}

func (d *extendedDescriptor) Properties() apis.Properties { return d.set.props }
func (d *extendedDescriptor) Events() apis.Events         { return d.set.events }
