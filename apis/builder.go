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

// Builder composes the root provider and the Registry from a Config.
// Implementations may reconfigure a previous registry (prev) in place, or ignore it.
type Builder interface {
	// BuildRoot constructs the provider every chain ends in.
	BuildRoot(cfg Config) Provider
	// BuildRegistry constructs a Registry around root, or reconfigures prev for
	// cfg and root when given.
	BuildRegistry(cfg Config, root Provider, prev Registry) Registry
}
