package core

import (
	"encoding/binary"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// NotAvailable is the sentinel used for resource fields the provider did not supply.
const NotAvailable = "N/A"

// Business status values surfaced on a Resource.
const (
	StatusOpen   = "Open"
	StatusClosed = "Closed"
)

// ID is a fixed-width key derived from an opaque identifier.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Coordinate is a WGS84 latitude/longitude pair.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Candidate is a raw provider search hit. It only lives for the duration of one
// aggregation run.
type Candidate struct {
	PlaceID     string   // Provider-assigned, unique within the provider namespace
	Name        string
	Types       []string // Provider type tags
	Rating      float64  // 0 when absent
	RatingCount int      // 0 when absent
}

// ScoredCandidate pairs a candidate with its relevance score and the keyword
// that produced it.
type ScoredCandidate struct {
	Candidate
	Score   float64
	Keyword string
}

// Photo references a provider-hosted image.
type Photo struct {
	Reference string
	Width     int
	Height    int
}

// PlaceDetail is the enriched record returned by a provider detail lookup.
type PlaceDetail struct {
	PlaceID            string
	Name               string
	FormattedAddress   string
	Vicinity           string
	Location           *Coordinate // nil when the provider returned no geometry
	FormattedPhone     string
	InternationalPhone string
	BusinessStatus     string
	WeekdayText        []string
	Photos             []Photo
	Types              []string
	Rating             float64
	RatingCount        int
	Website            string
}

// Resource is the caller-visible place record. It is built once, either by the
// detail enricher or taken from an offline dataset, and never mutated afterwards.
type Resource struct {
	ID          string     `json:"id" toml:"id"`
	Name        string     `json:"name" toml:"name"`
	Address     string     `json:"address" toml:"address"`
	Location    Coordinate `json:"location" toml:"location"`
	HasLocation bool       `json:"hasLocation" toml:"-"`
	Phone       string     `json:"phone" toml:"phone"`
	Website     string     `json:"website" toml:"website"`
	Status      string     `json:"status" toml:"status"`
	Hours       []string   `json:"hours" toml:"hours"`
	PhotoURL    string     `json:"photoUrl,omitempty" toml:"photo_url"`
	Rating      float64    `json:"rating" toml:"rating"`
	RatingCount int        `json:"userRatingsTotal" toml:"user_ratings_total"`
	Category    string     `json:"category" toml:"category"`
	Type        string     `json:"type" toml:"type"`
	Types       []string   `json:"types,omitempty" toml:"types"`
}

// Checkpoint records how far a long-running sweep has progressed so it can resume.
type Checkpoint struct {
	Name      string
	Position  string // Last completed unit of work
	Completed int
	UpdatedAt time.Time
}
