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


package places

import (
	"context"

	"github.com/poiesic/petplaces/core"
)

// Provider is a places-search backend.
// Implementations must be safe for concurrent use.
type Provider interface {
	// NearbySearch returns the candidates matching a keyword around a location,
	// in provider order. An empty slice is a valid answer.
	NearbySearch(ctx context.Context, req NearbyRequest) ([]core.Candidate, error)

	// PlaceDetails resolves the detail record for one place identifier.
	// Only the named fields need to be populated.
	// Returns ErrNotFound when the provider does not know the identifier.
	PlaceDetails(ctx context.Context, placeID string, fields []string) (*core.PlaceDetail, error)

	// PhotoURL renders a URL for a photo reference bounded to the given size.
	PhotoURL(reference string, maxWidth, maxHeight uint) string

	// Close releases resources held by the provider.
	Close() error
}

// NearbyRequest describes one keyword search around a center point.
type NearbyRequest struct {
	Location core.Coordinate
	Radius   uint // meters
	Keyword  string
	Type     string
}

// DetailFields is the field set requested for every detail lookup.
var DetailFields = []string{
	"name",
	"vicinity",
	"geometry",
	"formatted_phone_number",
	"business_status",
	"opening_hours",
	"photos",
	"types",
	"rating",
	"user_ratings_total",
	"website",
	"formatted_address",
	"international_phone_number",
}

// Photo bounds used when rendering resource photo URLs.
const (
	PhotoMaxWidth  uint = 400
	PhotoMaxHeight uint = 300
)

// BusinessOperational is the business status a provider reports for an open place.
const BusinessOperational = "OPERATIONAL"
