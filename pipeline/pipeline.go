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

// Package pipeline turns the primary metadata of an instance into the metadata
// callers see, in four memoized stages:
//
//  1. Initialize records the primary collection (and the type's refresh
//     generation) as the baseline; a changed baseline drops every later stage.
//  2. Merge appends extender-contributed members, renaming name collisions.
//  3. Filter hands the members to the site's apis.FilterService.
//  4. AttributeFilter drops members hidden by a caller-supplied attribute set.
//
// Every stage stores its input next to its output and is reused only while the
// recorded input is element-identical to the current one.
package pipeline

import (
	"strconv"
	"sync/atomic"

	logging "github.com/ipfs/go-log/v2"
	"go.uber.org/zap"

	"dirpx.dev/typedesc/apis"
)

var (
	log  = logging.Logger("typedesc/pipeline")
	dlog = log.Desugar()
)

// Input carries the per-query context of a pipeline run.
type Input struct {
	// Instance is the described instance.
	Instance any
	// Cache is the instance's cache. Nil runs every stage uncached.
	Cache apis.Cache
	// Generation is the refresh generation of the instance's type.
	Generation uint64
	// Extended is the instance's extended descriptor. Nil skips Merge.
	Extended apis.Descriptor
	// Filter is the caller's attribute filter.
	Filter []apis.Attribute
}

// Stats counts stage computations, i.e. cache misses.
type Stats struct {
	Initialize      uint64
	Merge           uint64
	Filter          uint64
	AttributeFilter uint64
}

// Pipeline runs the metadata stages. A zero Pipeline is ready to use.
type Pipeline struct {
	suffix atomic.Uint64
	stats  [apis.StageCount]atomic.Uint64
}

// New returns a pipeline.
func New() *Pipeline { return &Pipeline{} }

// NextSuffix returns the next collision suffix. The first value is "1".
func (p *Pipeline) NextSuffix() string {
	return strconv.FormatUint(p.suffix.Add(1), 10)
}

// Stats returns a snapshot of the stage counters.
func (p *Pipeline) Stats() Stats {
	return Stats{
		Initialize:      p.stats[apis.StageInitialize].Load(),
		Merge:           p.stats[apis.StageMerge].Load(),
		Filter:          p.stats[apis.StageFilter].Load(),
		AttributeFilter: p.stats[apis.StageAttributeFilter].Load(),
	}
}

// Attributes runs the pipeline over the instance's primary attributes.
func (p *Pipeline) Attributes(in Input, primary apis.Attributes) apis.Attributes {
	return run(p, attributeStages, in, primary)
}

// Properties runs the pipeline over the instance's primary properties.
func (p *Pipeline) Properties(in Input, primary apis.Properties) apis.Properties {
	return run(p, propertyStages, in, primary)
}

// Events runs the pipeline over the instance's primary events.
func (p *Pipeline) Events(in Input, primary apis.Events) apis.Events {
	return run(p, eventStages, in, primary)
}

// MergedAttributes runs Initialize and Merge only, leaving the filter stages out.
func (p *Pipeline) MergedAttributes(in Input, primary apis.Attributes) apis.Attributes {
	return runMerge(p, attributeStages, in, primary)
}

// MergedProperties is MergedAttributes for properties.
func (p *Pipeline) MergedProperties(in Input, primary apis.Properties) apis.Properties {
	return runMerge(p, propertyStages, in, primary)
}

// MergedEvents is MergedAttributes for events.
func (p *Pipeline) MergedEvents(in Input, primary apis.Events) apis.Events {
	return runMerge(p, eventStages, in, primary)
}

// computed counts a stage computation and logs it.
func (p *Pipeline) computed(kind apis.Kind, stage apis.Stage, n int) {
	p.stats[stage].Add(1)
	if ce := dlog.Check(zap.DebugLevel, "stage computed"); ce != nil {
		ce.Write(zap.Stringer("kind", kind), zap.Stringer("stage", stage), zap.Int("members", n))
	}
}
