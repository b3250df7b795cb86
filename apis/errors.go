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

package apis

import "errors"

var (
	// ErrNilArgument is returned when a required provider, type, instance or
	// destination type argument is nil.
	ErrNilArgument = errors.New("typedesc: nil argument")
	// ErrArgumentMismatch is returned when the argument type list and the argument
	// value list passed to CreateInstance differ in length.
	ErrArgumentMismatch = errors.New("typedesc: argument types and values differ in length")
	// ErrProviderContract indicates a provider returned nil where the contract requires
	// a descriptor or converter. It reports a broken plug-in and is never retried.
	ErrProviderContract = errors.New("typedesc: provider contract violation")
	// ErrNotReferenceable is returned when an instance key cannot be held weakly
	// (it is not a non-nil pointer).
	ErrNotReferenceable = errors.New("typedesc: instance is not a referenceable pointer")
)
