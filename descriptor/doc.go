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

// Package descriptor holds reusable apis.Descriptor, apis.Property and apis.Event
// implementations: a delegating base for custom providers, a static descriptor,
// function-backed members, and the wrappers the pipeline uses to rename members
// and to mark members contributed by extenders.
package descriptor
