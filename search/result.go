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

import "github.com/poiesic/petplaces/core"

// Source tells where the resources of a Result came from.
type Source string

const (
	SourceLive    Source = "live"
	SourceOffline Source = "offline"
)

// Advisory messages attached to offline results.
const (
	AdvisoryProviderUnavailable = "Places provider unavailable. Showing offline resources."
	AdvisoryNoResults           = "No nearby resources found. Showing offline resources."
	AdvisoryFetchFailed         = "Failed to fetch resources."
)

// Result is the outcome of one search run. Resources is never nil.
type Result struct {
	RunID      string           `json:"runId,omitempty"`
	Category   string           `json:"category"`
	Origin     core.Coordinate  `json:"origin"`
	Source     Source           `json:"source"`
	Resources  []*core.Resource `json:"resources"`
	Advisories []string         `json:"advisories,omitempty"`
}

// Offline reports whether the resources came from the offline dataset.
func (r *Result) Offline() bool {
	return r.Source == SourceOffline
}
