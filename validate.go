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

package typedesc

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/hashicorp/go-multierror"

	"dirpx.dev/typedesc/apis"
)

var (
	// ErrInvalidMember is returned by Validate for a nil or unnamed member.
	ErrInvalidMember = fmt.Errorf("%w: invalid member", apis.ErrProviderContract)
	// ErrDuplicateMember is returned by Validate when two members share a name.
	ErrDuplicateMember = errors.New("typedesc: duplicate member name")
)

// Validate runs every query against instance x and its type and returns all
// failures together, or nil. It is a debugging aid for provider authors.
func (td *TypeDescriptor) Validate(x any) error {
	if x == nil {
		return ErrNilInstance
	}
	t := reflect.TypeOf(x)
	var errs error

	if _, err := td.Attributes(t); err != nil {
		errs = multierror.Append(errs, fmt.Errorf("type attributes: %w", err))
	}
	if ps, err := td.Properties(t); err != nil {
		errs = multierror.Append(errs, fmt.Errorf("type properties: %w", err))
	} else {
		errs = appendMembers[apis.Property](errs, "type property", ps)
	}
	if es, err := td.Events(t); err != nil {
		errs = multierror.Append(errs, fmt.Errorf("type events: %w", err))
	} else {
		errs = appendMembers[apis.Event](errs, "type event", es)
	}
	if _, err := td.Converter(t); err != nil {
		errs = multierror.Append(errs, fmt.Errorf("type converter: %w", err))
	}

	if _, err := td.AttributesOf(x); err != nil {
		errs = multierror.Append(errs, fmt.Errorf("attributes: %w", err))
	}
	if ps, err := td.PropertiesOf(x); err != nil {
		errs = multierror.Append(errs, fmt.Errorf("properties: %w", err))
	} else {
		errs = appendMembers[apis.Property](errs, "property", ps)
	}
	if es, err := td.EventsOf(x); err != nil {
		errs = multierror.Append(errs, fmt.Errorf("events: %w", err))
	} else {
		errs = appendMembers[apis.Event](errs, "event", es)
	}
	if _, err := td.ConverterOf(x); err != nil {
		errs = multierror.Append(errs, fmt.Errorf("converter: %w", err))
	}

	if errs != nil {
		log.Warnw("validation failed", "type", t.String(), "err", errs)
	}
	return errs
}

// appendMembers adds an error for every nil or unnamed member and for every
// name that is not unique.
func appendMembers[M apis.Member](errs error, what string, members []M) error {
	seen := make(map[string]struct{}, len(members))
	for i, m := range members {
		if isNil(m) {
			errs = multierror.Append(errs, fmt.Errorf("%s %d: %w: nil", what, i, ErrInvalidMember))
			continue
		}
		name := m.Name()
		if name == "" {
			errs = multierror.Append(errs, fmt.Errorf("%s %d: %w: empty name", what, i, ErrInvalidMember))
			continue
		}
		if _, dup := seen[name]; dup {
			errs = multierror.Append(errs, fmt.Errorf("%s %q: %w", what, name, ErrDuplicateMember))
			continue
		}
		seen[name] = struct{}{}
	}
	return errs
}

func isNil(m apis.Member) bool {
	if m == nil {
		return true
	}
	v := reflect.ValueOf(m)
	return v.Kind() == reflect.Pointer && v.IsNil()
}
