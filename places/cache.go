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
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/poiesic/petplaces/core"
	"github.com/poiesic/petplaces/storage"
)

// DefaultCacheTTL is how long a cached place detail stays valid.
const DefaultCacheTTL = 24 * time.Hour

// CachingProvider serves detail lookups from a DetailRepository and writes
// provider answers through on a miss. Nearby searches are always live.
//
// The cache is keyed by place ID only; callers are expected to request the
// same field set for every lookup, as the detail enricher does with DetailFields.
type CachingProvider struct {
	provider Provider
	repo     storage.DetailRepository
	ttl      time.Duration
	logger   *slog.Logger

	hits   atomic.Int64
	misses atomic.Int64
}

var _ Provider = (*CachingProvider)(nil)

// CacheOption configures a CachingProvider.
type CacheOption func(*CachingProvider)

// WithCacheLogger sets the logger for cache diagnostics.
func WithCacheLogger(logger *slog.Logger) CacheOption {
	return func(c *CachingProvider) {
		c.logger = logger
	}
}

// NewCachingProvider wraps provider with a detail cache backed by repo.
// A non-positive ttl selects DefaultCacheTTL.
func NewCachingProvider(provider Provider, repo storage.DetailRepository, ttl time.Duration, opts ...CacheOption) (*CachingProvider, error) {
	if provider == nil {
		return nil, ErrProviderUnavailable
	}
	if repo == nil {
		return nil, errors.New("places: detail repository is required")
	}
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	c := &CachingProvider{
		provider: provider,
		repo:     repo,
		ttl:      ttl,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With("component", "detail-cache")
	return c, nil
}

// NearbySearch delegates to the wrapped provider.
func (c *CachingProvider) NearbySearch(ctx context.Context, req NearbyRequest) ([]core.Candidate, error) {
	return c.provider.NearbySearch(ctx, req)
}

// PlaceDetails returns the cached detail when present, otherwise asks the
// provider and caches the answer. Cache failures never fail the lookup.
func (c *CachingProvider) PlaceDetails(ctx context.Context, placeID string, fields []string) (*core.PlaceDetail, error) {
	detail, err := c.repo.GetDetail(ctx, placeID)
	if err == nil {
		c.hits.Add(1)
		return detail, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		c.logger.Warn("detail cache read failed", "place", placeID, "err", err)
	}
	c.misses.Add(1)

	detail, err = c.provider.PlaceDetails(ctx, placeID, fields)
	if err != nil {
		return nil, err
	}
	if detail.PlaceID == "" {
		detail.PlaceID = placeID
	}
	if err := c.repo.PutDetail(ctx, detail, c.ttl); err != nil {
		c.logger.Warn("detail cache write failed", "place", placeID, "err", err)
	}
	return detail, nil
}

// PhotoURL delegates to the wrapped provider.
func (c *CachingProvider) PhotoURL(reference string, maxWidth, maxHeight uint) string {
	return c.provider.PhotoURL(reference, maxWidth, maxHeight)
}

// Close closes the wrapped provider. The repository is owned by the caller.
func (c *CachingProvider) Close() error {
	return c.provider.Close()
}

// CacheStats reports cache effectiveness since construction.
type CacheStats struct {
	Hits   int64
	Misses int64
}

// Stats returns the hit and miss counters.
func (c *CachingProvider) Stats() CacheStats {
	return CacheStats{Hits: c.hits.Load(), Misses: c.misses.Load()}
}
