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

// Package association keeps non-owning links from a primary object to
// secondary objects that answer for it under other types, for example a
// designer standing in for the component it edits.
package association

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	logging "github.com/ipfs/go-log/v2"
	"go.uber.org/zap"

	"dirpx.dev/typedesc/apis"
	uref "dirpx.dev/typedesc/utils/reflect"
	"dirpx.dev/typedesc/utils/weakref"
)

var (
	log  = logging.Logger("typedesc/association")
	dlog = log.Desugar()
)

var (
	// ErrInvalidAssociation is returned when an object is associated with itself.
	ErrInvalidAssociation = errors.New("typedesc(association): object cannot be associated with itself")
	// ErrDuplicateAssociation is returned when the pair is already associated.
	ErrDuplicateAssociation = errors.New("typedesc(association): objects already associated")
)

// Table maps primaries to their secondaries. Both sides are held weakly.
// Table is safe for concurrent use.
type Table struct {
	mu      sync.Mutex
	entries *weakref.Map[[]weakref.Ref]
}

// New returns an empty table that sweeps dead primaries every sweepEvery mutations.
func New(sweepEvery int) *Table {
	return &Table{entries: weakref.NewMap[[]weakref.Ref](sweepEvery)}
}

// Create associates secondary with primary. Later associations are preferred by Get.
func (a *Table) Create(primary, secondary any) error {
	if primary == nil || secondary == nil {
		return fmt.Errorf("%w: association", apis.ErrNilArgument)
	}
	if uref.Identical(primary, secondary) {
		return ErrInvalidAssociation
	}
	ref, err := weakref.Make(secondary)
	if err != nil {
		return fmt.Errorf("%w: secondary %T", err, secondary)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	refs, _ := a.entries.Get(primary)
	for _, r := range refs {
		if r == ref && r.Alive() {
			return ErrDuplicateAssociation
		}
	}
	if err := a.entries.Set(primary, append(refs, ref)); err != nil {
		return fmt.Errorf("%w: primary %T", err, primary)
	}
	return nil
}

// Get returns the object that answers for primary under t: primary itself when
// it already satisfies t, else the newest live secondary that does, else the
// design-time proxy of a component sited in an authoring host. When nothing
// matches, primary is returned.
func (a *Table) Get(t reflect.Type, primary any) any {
	if primary == nil || t == nil {
		return primary
	}
	if uref.Satisfies(primary, t) {
		return primary
	}
	if s := a.secondary(t, primary); s != nil {
		return s
	}
	if d := designer(primary); d != nil && uref.Satisfies(d, t) {
		return d
	}
	return primary
}

// secondary scans primary's associations newest first, dropping dead ones.
func (a *Table) secondary(t reflect.Type, primary any) any {
	if !uref.IsReferenceable(primary) {
		return nil
	}
	a.mu.Lock()
	defer a.mu.Unlock()

	refs, ok := a.entries.Get(primary)
	if !ok {
		return nil
	}
	var found any
	dead := 0
	for i := len(refs) - 1; i >= 0; i-- {
		s := refs[i].Value()
		if s == nil {
			refs = append(refs[:i], refs[i+1:]...)
			dead++
			continue
		}
		if uref.Satisfies(s, t) {
			found = s
			break
		}
	}
	if dead > 0 {
		a.store(primary, refs)
		if ce := dlog.Check(zap.DebugLevel, "dead associations purged"); ce != nil {
			ce.Write(zap.Int("purged", dead), zap.String("primary", fmt.Sprintf("%T", primary)))
		}
	}
	return found
}

// designer returns the design-time proxy of primary from its authoring host.
func designer(primary any) any {
	c, ok := primary.(apis.Component)
	if !ok {
		return nil
	}
	site := c.Site()
	if site == nil || !site.DesignMode() {
		return nil
	}
	host, ok := apis.ServiceOf[apis.DesignerHost](site)
	if !ok {
		return nil
	}
	return host.Designer(c)
}

// Remove drops the association between primary and secondary, if any.
func (a *Table) Remove(primary, secondary any) error {
	if primary == nil || secondary == nil {
		return fmt.Errorf("%w: association", apis.ErrNilArgument)
	}
	a.mu.Lock()
	defer a.mu.Unlock()

	refs, ok := a.entries.Get(primary)
	if !ok {
		return nil
	}
	for i := len(refs) - 1; i >= 0; i-- {
		if refs[i].Is(secondary) {
			refs = append(refs[:i], refs[i+1:]...)
		}
	}
	a.store(primary, refs)
	return nil
}

// RemoveAll drops every association of primary.
func (a *Table) RemoveAll(primary any) error {
	if primary == nil {
		return fmt.Errorf("%w: association", apis.ErrNilArgument)
	}
	a.mu.Lock()
	a.entries.Delete(primary)
	a.mu.Unlock()
	return nil
}

// Len returns the number of primaries with associations.
func (a *Table) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.entries.Len()
}

// store writes refs back for primary, deleting the entry when empty. Callers hold a.mu.
func (a *Table) store(primary any, refs []weakref.Ref) {
	if len(refs) == 0 {
		a.entries.Delete(primary)
		return
	}
	_ = a.entries.Set(primary, refs)
}
