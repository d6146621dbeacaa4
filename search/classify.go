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
	"slices"
	"strings"

	"github.com/poiesic/petplaces/catalog"
)

// Resource type labels assigned by Classify.
const (
	TypeVeterinarian  = "Veterinarian"
	TypeDogWalker     = "Dog Walker"
	TypeDogTrainer    = "Dog Trainer"
	TypePetBoarding   = "Pet Boarding"
	TypePetGroomer    = "Pet Groomer"
	TypeDogPark       = "Dog Park"
	TypeCatSitter     = "Cat Sitter"
	TypeCatGroomer    = "Cat Groomer"
	TypeCatBoarding   = "Cat Boarding"
	TypePetFoodStore  = "Pet Food Store"
	TypePetSupplies   = "Pet Supplies"
	TypeEstablishment = "Establishment"
)

// labelRule assigns label when any of terms occurs in the lowercase name,
// or when the place carries tag.
type labelRule struct {
	terms []string
	tag   string
	label string
}

func (r labelRule) matches(name string, tags []string) bool {
	return containsAny(name, r.terms...) || (r.tag != "" && slices.Contains(tags, r.tag))
}

var (
	veterinaryRule = labelRule{terms: []string{"vet", "clinic", "hospital"}, tag: "veterinary_care", label: TypeVeterinarian}

	dogServiceRules = []labelRule{
		{terms: []string{"walk", "walker"}, label: TypeDogWalker},
		{terms: []string{"train", "obedience"}, label: TypeDogTrainer},
		{terms: []string{"daycare", "boarding"}, label: TypePetBoarding},
		{terms: []string{"groom"}, label: TypePetGroomer},
		{terms: []string{"park"}, tag: "park", label: TypeDogPark},
	}

	catServiceRules = []labelRule{
		{terms: []string{"sit", "sitter"}, label: TypeCatSitter},
		{terms: []string{"groom"}, label: TypeCatGroomer},
		{terms: []string{"board", "hotel"}, label: TypeCatBoarding},
	}
)

// Classify assigns exactly one human-readable type label to a place.
// Rules are evaluated in order and the first match wins. A services category
// only consults its own family rules and otherwise stays an establishment.
func Classify(cat catalog.Category, name string, tags []string) string {
	name = strings.ToLower(name)

	if veterinaryRule.matches(name, tags) {
		return veterinaryRule.label
	}

	var family []labelRule
	switch cat.Family {
	case catalog.FamilyDogServices:
		family = dogServiceRules
	case catalog.FamilyCatServices:
		family = catServiceRules
	}
	if family != nil {
		for _, rule := range family {
			if rule.matches(name, tags) {
				return rule.label
			}
		}
		return TypeEstablishment
	}

	switch {
	case cat.IsNutrition():
		return TypePetFoodStore
	case cat.IsSupplies():
		return TypePetSupplies
	}
	return TypeEstablishment
}
