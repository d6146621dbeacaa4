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

// Scoring weights.
const (
	exactMatchPoints   = 30.0
	partialMatchPoints = 15.0
	servicePoints      = 20.0
	healthPoints       = 20.0
	ratingWeight       = 2.0
	reviewsPerPoint    = 50.0
	maxReviewPoints    = 10.0
)

var (
	dogServiceTerms = []string{"walker", "walking", "daycare", "boarding", "trainer", "training"}
	catServiceTerms = []string{"sitter", "sitting", "boarding", "groomer", "grooming"}
	healthTerms     = []string{"vet", "clinic", "hospital", "doctor", "emergency"}
)

// Score computes the relevance of a candidate found by keyword within a category.
// It is pure and never negative.
func Score(c core.Candidate, keyword string, cat catalog.Category) float64 {
	name := strings.ToLower(c.Name)
	kw := strings.ToLower(keyword)

	var score float64
	if name == kw {
		score += exactMatchPoints
	} else if strings.Contains(name, kw) {
		score += partialMatchPoints
	}

	switch cat.Family {
	case catalog.FamilyDogServices:
		if containsAny(name, dogServiceTerms...) {
			score += servicePoints
		}
	case catalog.FamilyCatServices:
		if containsAny(name, catServiceTerms...) {
			score += servicePoints
		}
	}

	if cat.IsHealth() && containsAny(name, healthTerms...) {
		score += healthPoints
	}

	if c.Rating > 0 {
		score += c.Rating * ratingWeight
	}
	if c.RatingCount > 0 {
		score += min(float64(c.RatingCount)/reviewsPerPoint, maxReviewPoints)
	}
	return score
}
