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


package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"slices"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"

	"github.com/poiesic/petplaces/core"
)

// DefaultKeyword is searched when a category is not present in the registry.
const DefaultKeyword = "pet store"

// DefaultType is the provider type filter used when a category has none configured.
const DefaultType = "establishment"

//go:embed categories.toml
var builtin []byte

// Family groups categories that share service-specific scoring and classification rules.
type Family string

const (
	FamilyNone        Family = ""
	FamilyDogServices Family = "dog_services"
	FamilyCatServices Family = "cat_services"
)

// Category is the resolved configuration for one category identifier.
type Category struct {
	ID       string           `toml:"id"`
	Family   Family           `toml:"family"`
	Keywords []string         `toml:"keywords"`
	Types    []string         `toml:"types"`
	Fallback []*core.Resource `toml:"fallback"`
}

// IsHealth reports whether the category is a health category.
func (c Category) IsHealth() bool {
	return strings.HasSuffix(c.ID, "_health")
}

// IsNutrition reports whether the category sells food.
func (c Category) IsNutrition() bool {
	return strings.Contains(c.ID, "_nutrition")
}

// IsSupplies reports whether the category sells supplies.
func (c Category) IsSupplies() bool {
	return strings.Contains(c.ID, "_supplies")
}

// PrimaryType returns the first configured type, or DefaultType.
func (c Category) PrimaryType() string {
	if len(c.Types) == 0 || c.Types[0] == "" {
		return DefaultType
	}
	return c.Types[0]
}

type table struct {
	Category []Category `toml:"category"`
}

// Registry maps category identifiers to their keyword lists, type filters and
// offline datasets. It is immutable once built and safe for concurrent reads.
type Registry struct {
	byID map[string]Category
	ids  []string
}

var loadDefault = sync.OnceValues(func() (*Registry, error) {
	return Parse(builtin)
})

// Default returns the registry decoded from the embedded category table.
// The table is decoded once per process.
func Default() (*Registry, error) {
	return loadDefault()
}

// Load decodes a registry from a TOML file on disk.
func Load(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a registry from TOML bytes.
func Parse(data []byte) (*Registry, error) {
	var t table
	if _, err := toml.Decode(string(data), &t); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCatalog, err)
	}
	return New(t.Category...)
}

// New builds a registry from already decoded categories.
func New(categories ...Category) (*Registry, error) {
	r := &Registry{byID: make(map[string]Category, len(categories))}
	for _, c := range categories {
		c.ID = normalize(c.ID)
		if c.ID == "" {
			return nil, fmt.Errorf("%w: category without id", ErrInvalidCatalog)
		}
		if _, dup := r.byID[c.ID]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateCategory, c.ID)
		}
		if len(c.Keywords) == 0 {
			return nil, fmt.Errorf("%w: %s", ErrNoKeywords, c.ID)
		}
		switch c.Family {
		case FamilyNone, FamilyDogServices, FamilyCatServices:
		default:
			return nil, fmt.Errorf("%w: %q in %s", ErrUnknownFamily, c.Family, c.ID)
		}
		c.Fallback = cloneResources(c.Fallback)
		for _, res := range c.Fallback {
			if res == nil {
				return nil, fmt.Errorf("%w: empty fallback entry in %s", ErrInvalidCatalog, c.ID)
			}
			res.HasLocation = res.Location.Lat != 0 || res.Location.Lng != 0
			if res.Category == "" {
				res.Category = c.ID
			}
			if err := core.ValidateResource(res); err != nil {
				return nil, fmt.Errorf("%w: %s: %w", ErrInvalidCatalog, c.ID, err)
			}
		}
		r.byID[c.ID] = c
		r.ids = append(r.ids, c.ID)
	}
	slices.Sort(r.ids)
	return r, nil
}

// Category resolves a category identifier. Lookups are case-insensitive.
// Unknown identifiers resolve to a category searched with DefaultKeyword
// and carrying no offline dataset.
func (r *Registry) Category(id string) Category {
	id = normalize(id)
	c, ok := r.byID[id]
	if !ok {
		return Category{ID: id, Keywords: []string{DefaultKeyword}}
	}
	return Category{
		ID:       c.ID,
		Family:   c.Family,
		Keywords: slices.Clone(c.Keywords),
		Types:    slices.Clone(c.Types),
		Fallback: cloneResources(c.Fallback),
	}
}

// Has reports whether the category is configured.
func (r *Registry) Has(id string) bool {
	_, ok := r.byID[normalize(id)]
	return ok
}

// KeywordsFor returns the ordered search keywords for a category. Never empty.
func (r *Registry) KeywordsFor(id string) []string {
	if c, ok := r.byID[normalize(id)]; ok {
		return slices.Clone(c.Keywords)
	}
	return []string{DefaultKeyword}
}

// PrimaryTypeFor returns the provider type filter for a category.
func (r *Registry) PrimaryTypeFor(id string) string {
	if c, ok := r.byID[normalize(id)]; ok {
		return c.PrimaryType()
	}
	return DefaultType
}

// FallbackResourcesFor returns a copy of the offline dataset for a category.
func (r *Registry) FallbackResourcesFor(id string) []*core.Resource {
	if c, ok := r.byID[normalize(id)]; ok {
		return cloneResources(c.Fallback)
	}
	return []*core.Resource{}
}

// Categories lists every configured category sorted by identifier.
func (r *Registry) Categories() []Category {
	out := make([]Category, 0, len(r.ids))
	for _, id := range r.ids {
		out = append(out, r.Category(id))
	}
	return out
}

func normalize(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}

func cloneResources(in []*core.Resource) []*core.Resource {
	out := make([]*core.Resource, 0, len(in))
	for _, r := range in {
		if r == nil {
			out = append(out, nil)
			continue
		}
		c := *r
		c.Hours = slices.Clone(r.Hours)
		c.Types = slices.Clone(r.Types)
		out = append(out, &c)
	}
	return out
}
