// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package search

import (
	"github.com/poiesic/petplaces/core"
)

// SearchMonitor receives callbacks at each stage of a search run.
// Implementations must be safe to call from the searching goroutine only.
type SearchMonitor interface {
	Start(category string, origin core.Coordinate, keywords []string)
	AfterKeywordSearch(keyword string, candidates []core.Candidate, err error)
	AfterMerge(working []core.ScoredCandidate)
	AfterEnrichment(resources []*core.Resource)
	Fallback(reason string)
	Finish(result *Result)
}

// noopMonitor is a no-op implementation of SearchMonitor
type noopMonitor struct{}

var _ SearchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string, _ core.Coordinate, _ []string)            {}
func (n *noopMonitor) AfterKeywordSearch(_ string, _ []core.Candidate, _ error) {}
func (n *noopMonitor) AfterMerge(_ []core.ScoredCandidate)                      {}
func (n *noopMonitor) AfterEnrichment(_ []*core.Resource)                       {}
func (n *noopMonitor) Fallback(_ string)                                        {}
func (n *noopMonitor) Finish(_ *Result)                                         {}
