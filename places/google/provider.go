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


package google

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"googlemaps.github.io/maps"

	"github.com/poiesic/petplaces/core"
	"github.com/poiesic/petplaces/places"
)

const photoEndpoint = "https://maps.googleapis.com/maps/api/place/photo"

// Provider implements places.Provider on the Google Places web service.
type Provider struct {
	client  *maps.Client
	config  *places.Config
	baseURL string
	logger  *slog.Logger
}

var _ places.Provider = (*Provider)(nil)

// Option configures a Provider.
type Option func(*Provider) error

// WithLogger sets the logger for the provider.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Provider) error {
		p.logger = logger
		return nil
	}
}

// WithBaseURL points the client at another host, such as a test server.
func WithBaseURL(baseURL string) Option {
	return func(p *Provider) error {
		p.baseURL = strings.TrimSuffix(baseURL, "/")
		return nil
	}
}

// NewProvider creates a Google Places provider.
// The config is validated and normalized before use.
func NewProvider(config *places.Config, opts ...Option) (*Provider, error) {
	if config == nil {
		config = places.DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	p := &Provider{
		config: config,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, err
		}
	}
	p.logger = p.logger.With("component", "google-places")

	clientOpts := []maps.ClientOption{
		maps.WithAPIKey(config.APIKey),
		maps.WithRateLimit(config.RateLimit),
		maps.WithHTTPClient(&http.Client{Timeout: config.RequestTimeout}),
	}
	if p.baseURL != "" {
		clientOpts = append(clientOpts, maps.WithBaseURL(p.baseURL))
	}
	client, err := maps.NewClient(clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", places.ErrProviderUnavailable, err)
	}
	p.client = client
	return p, nil
}

// NearbySearch runs one nearby search. A ZERO_RESULTS answer is an empty slice.
func (p *Provider) NearbySearch(ctx context.Context, req places.NearbyRequest) ([]core.Candidate, error) {
	radius := req.Radius
	if radius == 0 {
		radius = p.config.Radius
	}
	resp, err := p.client.NearbySearch(ctx, &maps.NearbySearchRequest{
		Location: &maps.LatLng{Lat: req.Location.Lat, Lng: req.Location.Lng},
		Radius:   radius,
		Keyword:  req.Keyword,
		Language: p.config.Language,
		Type:     maps.PlaceType(req.Type),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: nearby search %q: %w", places.ErrRequestFailed, req.Keyword, err)
	}

	candidates := make([]core.Candidate, 0, len(resp.Results))
	for _, r := range resp.Results {
		if r.PlaceID == "" {
			continue
		}
		candidates = append(candidates, core.Candidate{
			PlaceID:     r.PlaceID,
			Name:        r.Name,
			Types:       r.Types,
			Rating:      roundRating(r.Rating),
			RatingCount: r.UserRatingsTotal,
		})
	}
	p.logger.Debug("nearby search", "keyword", req.Keyword, "type", req.Type, "results", len(candidates))
	return candidates, nil
}

// PlaceDetails fetches the requested fields for one place.
func (p *Provider) PlaceDetails(ctx context.Context, placeID string, fields []string) (*core.PlaceDetail, error) {
	masks := make([]maps.PlaceDetailsFieldMask, 0, len(fields))
	for _, f := range fields {
		mask, err := maps.ParsePlaceDetailsFieldMask(f)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", places.ErrRequestFailed, err)
		}
		masks = append(masks, mask)
	}

	r, err := p.client.PlaceDetails(ctx, &maps.PlaceDetailsRequest{
		PlaceID:  placeID,
		Language: p.config.Language,
		Fields:   masks,
	})
	if err != nil {
		if strings.Contains(err.Error(), "NOT_FOUND") {
			return nil, fmt.Errorf("%w: %s", places.ErrNotFound, placeID)
		}
		return nil, fmt.Errorf("%w: details %s: %w", places.ErrRequestFailed, placeID, err)
	}

	detail := &core.PlaceDetail{
		PlaceID:            placeID,
		Name:               r.Name,
		FormattedAddress:   r.FormattedAddress,
		Vicinity:           r.Vicinity,
		FormattedPhone:     r.FormattedPhoneNumber,
		InternationalPhone: r.InternationalPhoneNumber,
		BusinessStatus:     r.BusinessStatus,
		Types:              r.Types,
		Rating:             roundRating(r.Rating),
		RatingCount:        r.UserRatingsTotal,
		Website:            r.Website,
	}
	if loc := r.Geometry.Location; loc.Lat != 0 || loc.Lng != 0 {
		detail.Location = &core.Coordinate{Lat: loc.Lat, Lng: loc.Lng}
	}
	if r.OpeningHours != nil {
		detail.WeekdayText = r.OpeningHours.WeekdayText
	}
	for _, ph := range r.Photos {
		detail.Photos = append(detail.Photos, core.Photo{
			Reference: ph.PhotoReference,
			Width:     ph.Width,
			Height:    ph.Height,
		})
	}
	return detail, nil
}

// PhotoURL renders a Places photo URL bounded to maxWidth x maxHeight.
func (p *Provider) PhotoURL(reference string, maxWidth, maxHeight uint) string {
	if reference == "" {
		return ""
	}
	endpoint := photoEndpoint
	if p.baseURL != "" {
		endpoint = p.baseURL + "/maps/api/place/photo"
	}
	q := url.Values{}
	q.Set("maxwidth", strconv.FormatUint(uint64(maxWidth), 10))
	q.Set("maxheight", strconv.FormatUint(uint64(maxHeight), 10))
	q.Set("photoreference", reference)
	q.Set("key", p.config.APIKey)
	return endpoint + "?" + q.Encode()
}

// Close releases resources held by the provider.
// The maps client holds no connections of its own.
func (p *Provider) Close() error {
	p.logger.Debug("closing Google Places provider")
	return nil
}

// roundRating converts the client's float32 rating without picking up
// float32 noise (4.7 would otherwise become 4.699999809265137).
func roundRating(r float32) float64 {
	v, _ := strconv.ParseFloat(strconv.FormatFloat(float64(r), 'f', -1, 32), 64)
	return v
}
