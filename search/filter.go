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
	"strings"

	"github.com/poiesic/petplaces/catalog"
	"github.com/poiesic/petplaces/core"
)

// Filter narrows resources to those whose name or type contains any of the
// whitespace-separated query terms, case-insensitively. Order is preserved.
// A blank query returns resources unchanged.
func Filter(resources []*core.Resource, query string) []*core.Resource {
	terms := queryTerms(query)
	if len(terms) == 0 {
		return resources
	}

	out := make([]*core.Resource, 0, len(resources))
	for _, r := range resources {
		if r == nil {
			continue
		}
		name := strings.ToLower(r.Name)
		typ := strings.ToLower(r.Type)
		for _, term := range terms {
			if strings.Contains(name, term) || strings.Contains(typ, term) {
				out = append(out, r)
				break
			}
		}
	}
	return out
}

// Fallback returns the offline dataset for a category, filtered by query when
// it is not blank. It never fails; an unknown category yields an empty slice.
func Fallback(reg *catalog.Registry, category, query string) []*core.Resource {
	if reg == nil {
		return []*core.Resource{}
	}
	return Filter(reg.FallbackResourcesFor(category), query)
}
