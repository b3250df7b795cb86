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

package builder

import (
	logging "github.com/ipfs/go-log/v2"

	"dirpx.dev/typedesc/apis"
	"dirpx.dev/typedesc/reflection"
	"dirpx.dev/typedesc/registry"
)

var log = logging.Logger("typedesc/builder")

// New creates and returns a new instance of an apis.Builder.
func New() apis.Builder {
	return &builder{}
}

// builder is an empty struct to be used as a receiver for builder methods.
type builder struct{}

// BuildRoot returns the reflection provider configured by cfg.
func (b *builder) BuildRoot(cfg apis.Config) apis.Provider {
	return reflection.New(cfg)
}

// BuildRegistry returns an apis.Registry whose chains end in root. Without a
// previous registry a new one is built. Otherwise prev is reconfigured in place
// and returned, so its chains, instance providers and every provider handed out
// from it stay valid. A nil root yields a nil registry.
func (b *builder) BuildRegistry(cfg apis.Config, root apis.Provider, prev apis.Registry) apis.Registry {
	if prev == nil {
		nreg, err := registry.New(cfg, root)
		if err != nil {
			log.Errorw("registry not built", "err", err)
			return nil
		}
		return nreg
	}
	if err := prev.Reconfigure(cfg, root); err != nil {
		log.Errorw("registry not reconfigured", "err", err)
		return nil
	}
	return prev
}
