package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/petplaces/catalog"
	"github.com/poiesic/petplaces/core"
)

func categoryFor(t *testing.T, id string) catalog.Category {
	t.Helper()
	reg, err := catalog.Default()
	require.NoError(t, err)
	return reg.Category(id)
}

func TestScore(t *testing.T) {
	t.Run("health bonus with rating and reviews", func(t *testing.T) {
		c := core.Candidate{PlaceID: "a", Name: "City Pet Hospital", Rating: 4.7, RatingCount: 156}
		got := Score(c, "veterinarian for dogs", categoryFor(t, "dog_health"))
		assert.InDelta(t, 32.52, got, 1e-9)
	})

	tests := []struct {
		name     string
		category string
		place    string
		keyword  string
		want     float64
	}{
		{"exact match", "dog_nutrition", "Dog Food", "dog food", 30},
		{"exact match ignores case", "dog_nutrition", "DOG FOOD", "Dog Food", 30},
		{"substring match", "dog_nutrition", "Best Dog Food Depot", "dog food", 15},
		{"no match", "dog_nutrition", "Corner Store", "dog food", 0},
		{"dog service bonus", "dog_services", "Sunrise Dog Walking", "dog walker", 20},
		{"dog service terms ignored for cat family", "cat_services", "Sunrise Dog Walking", "dog walker", 0},
		{"cat service bonus", "cat_services", "Purrfect Cat Sitting", "cat sitter", 20},
		{"boarding counts for both families", "dog_services", "Paws Boarding", "kennel", 20},
		{"health bonus", "cat_health", "Feline Clinic", "cat vet", 20},
		{"health terms ignored elsewhere", "cat_supplies", "Feline Clinic", "cat vet", 0},
		{"exact match with service bonus", "dog_services", "dog trainer", "dog trainer", 50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := core.Candidate{PlaceID: "x", Name: tt.place}
			assert.InDelta(t, tt.want, Score(c, tt.keyword, categoryFor(t, tt.category)), 1e-9)
		})
	}

	t.Run("review bonus is capped", func(t *testing.T) {
		cat := categoryFor(t, "dog_supplies")
		few := Score(core.Candidate{Name: "Shop", RatingCount: 100}, "toys", cat)
		many := Score(core.Candidate{Name: "Shop", RatingCount: 100000}, "toys", cat)
		assert.InDelta(t, 2.0, few, 1e-9)
		assert.InDelta(t, 10.0, many, 1e-9)
	})

	t.Run("exact scores at least substring", func(t *testing.T) {
		cat := categoryFor(t, "cat_services")
		base := core.Candidate{Rating: 3.9, RatingCount: 42}
		exact, partial := base, base
		exact.Name = "cat groomer"
		partial.Name = "the cat groomer shop"
		assert.GreaterOrEqual(t, Score(exact, "cat groomer", cat), Score(partial, "cat groomer", cat))
	})

	t.Run("deterministic and non-negative", func(t *testing.T) {
		cat := categoryFor(t, "dog_health")
		c := core.Candidate{Name: "Emergency Vet Hospital", Rating: 4.2, RatingCount: 12}
		first := Score(c, "emergency vet", cat)
		for range 10 {
			assert.Equal(t, first, Score(c, "emergency vet", cat))
		}
		assert.GreaterOrEqual(t, Score(core.Candidate{}, "", catalog.Category{}), 0.0)
	})
}
