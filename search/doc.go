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


// Package search finds pet-care resources near a location.
//
// The Searcher runs one nearby search per category keyword, scores every
// hit against the keyword and category, merges duplicates by place ID keeping
// the best score, and enriches the top results with place details. Detail
// lookups run concurrently on a worker pool; keyword searches are sequential.
//
// A run never fails. When the provider is missing, returns nothing usable, or
// the run panics, the category's offline dataset is returned together with an
// advisory message describing what happened.
package search
