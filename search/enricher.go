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
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/poiesic/petplaces/catalog"
	"github.com/poiesic/petplaces/core"
	"github.com/poiesic/petplaces/places"
)

// Enricher resolves candidates into caller-visible resources using provider
// detail lookups.
type Enricher struct {
	provider places.Provider
	pool     *ants.Pool
	logger   *slog.Logger
}

// NewEnricher creates an enricher. Lookups in EnrichAll run on pool; a nil
// pool runs them on plain goroutines.
func NewEnricher(provider places.Provider, pool *ants.Pool, logger *slog.Logger) *Enricher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Enricher{
		provider: provider,
		pool:     pool,
		logger:   logger,
	}
}

// Enrich looks up the details of one candidate and builds its resource.
func (e *Enricher) Enrich(ctx context.Context, cat catalog.Category, c core.Candidate) (*core.Resource, error) {
	if e.provider == nil {
		return nil, places.ErrProviderUnavailable
	}
	detail, err := e.provider.PlaceDetails(ctx, c.PlaceID, places.DetailFields)
	if err != nil {
		return nil, err
	}
	if detail == nil {
		return nil, fmt.Errorf("%w: %s", places.ErrNotFound, c.PlaceID)
	}
	return e.build(cat, c, detail), nil
}

func (e *Enricher) build(cat catalog.Category, c core.Candidate, d *core.PlaceDetail) *core.Resource {
	name := d.Name
	if name == "" {
		name = c.Name
	}

	r := &core.Resource{
		ID:          c.PlaceID,
		Name:        name,
		Address:     firstNonEmpty(d.FormattedAddress, d.Vicinity),
		Phone:       firstNonEmpty(d.InternationalPhone, d.FormattedPhone, core.NotAvailable),
		Website:     firstNonEmpty(d.Website, core.NotAvailable),
		Status:      core.StatusClosed,
		Hours:       []string{core.NotAvailable},
		Rating:      d.Rating,
		RatingCount: d.RatingCount,
		Category:    cat.ID,
		Type:        Classify(cat, name, d.Types),
		Types:       slices.Clone(d.Types),
	}
	if d.Location != nil {
		r.Location = *d.Location
		r.HasLocation = true
	}
	if d.BusinessStatus == places.BusinessOperational {
		r.Status = core.StatusOpen
	}
	if len(d.WeekdayText) > 0 {
		r.Hours = slices.Clone(d.WeekdayText)
	}
	if len(d.Photos) > 0 && d.Photos[0].Reference != "" {
		r.PhotoURL = e.provider.PhotoURL(d.Photos[0].Reference, places.PhotoMaxWidth, places.PhotoMaxHeight)
	}
	return r
}

// EnrichAll resolves the working set concurrently. The result keeps the
// working-set order; candidates whose lookup fails are dropped. A panic in
// any lookup is reported as an error after all lookups have finished.
func (e *Enricher) EnrichAll(ctx context.Context, cat catalog.Category, working []core.ScoredCandidate) ([]*core.Resource, error) {
	resolved := make([]*core.Resource, len(working))

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		panicked error
	)
	for i, sc := range working {
		wg.Add(1)
		task := func() {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					mu.Lock()
					if panicked == nil {
						panicked = fmt.Errorf("%w: %s: %v", errWorkerPanic, sc.PlaceID, r)
					}
					mu.Unlock()
				}
			}()

			r, err := e.Enrich(ctx, cat, sc.Candidate)
			if err != nil {
				e.logger.Debug("dropping candidate without details", "place", sc.PlaceID, "err", err)
				return
			}
			resolved[i] = r
		}

		if e.pool == nil {
			go task()
			continue
		}
		if err := e.pool.Submit(task); err != nil {
			e.logger.Debug("worker pool unavailable, enriching inline", "err", err)
			task()
		}
	}
	wg.Wait()

	if panicked != nil {
		return nil, panicked
	}

	out := make([]*core.Resource, 0, len(resolved))
	for _, r := range resolved {
		if r != nil {
			out = append(out, r)
		}
	}
	return out, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
