package search

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/panjf2000/ants/v2"

	"github.com/poiesic/petplaces/catalog"
	"github.com/poiesic/petplaces/core"
	"github.com/poiesic/petplaces/geo"
	"github.com/poiesic/petplaces/places"
)

const (
	// DefaultRadius is the nearby-search radius in meters.
	DefaultRadius = 10000

	// DefaultMaxResults caps the working set before enrichment.
	DefaultMaxResults = 20
)

// Searcher aggregates provider results for a pet-care category into a ranked
// list of resources, falling back to offline data when live results are
// unavailable.
type Searcher struct {
	registry      *catalog.Registry
	provider      places.Provider
	enricher      *Enricher
	pool          *ants.Pool
	poolSize      int
	radius        uint
	maxResults    int
	locator       geo.Locator
	locateTimeout time.Duration
	logger        *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// WithRadius sets the nearby-search radius in meters.
// Default is 10000.
func WithRadius(meters uint) Option {
	return func(s *Searcher) error {
		if meters == 0 || meters > places.MaxRadius {
			return fmt.Errorf("radius must be between 1 and %d, got %d", places.MaxRadius, meters)
		}
		s.radius = meters
		return nil
	}
}

// WithMaxResults sets how many merged candidates are enriched.
// Default is 20.
func WithMaxResults(n int) Option {
	return func(s *Searcher) error {
		if n <= 0 {
			return fmt.Errorf("max results must be positive, got %d", n)
		}
		s.maxResults = n
		return nil
	}
}

// WithPoolSize sets the number of concurrent detail lookups.
// Default is runtime.NumCPU().
func WithPoolSize(size int) Option {
	return func(s *Searcher) error {
		if size <= 0 {
			return fmt.Errorf("pool size must be positive, got %d", size)
		}
		s.poolSize = size
		return nil
	}
}

// WithLocator sets the source consulted when Search is called without an origin.
func WithLocator(locator geo.Locator) Option {
	return func(s *Searcher) error {
		s.locator = locator
		return nil
	}
}

// WithLocateTimeout bounds a single locator attempt.
// Default is 5 seconds.
func WithLocateTimeout(timeout time.Duration) Option {
	return func(s *Searcher) error {
		if timeout <= 0 {
			return fmt.Errorf("locate timeout must be positive, got %s", timeout)
		}
		s.locateTimeout = timeout
		return nil
	}
}

// NewSearcher creates a new searcher. A nil provider is allowed; every search
// then answers from the offline dataset.
func NewSearcher(registry *catalog.Registry, provider places.Provider, opts ...Option) (*Searcher, error) {
	if registry == nil {
		return nil, ErrRegistryRequired
	}

	s := &Searcher{
		registry:      registry,
		provider:      provider,
		poolSize:      runtime.NumCPU(),
		radius:        DefaultRadius,
		maxResults:    DefaultMaxResults,
		locateTimeout: geo.DefaultTimeout,
		logger:        slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	s.logger = s.logger.With("component", "searcher")

	pool, err := ants.NewPool(s.poolSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create worker pool: %w", err)
	}
	s.pool = pool
	s.enricher = NewEnricher(provider, pool, s.logger)

	return s, nil
}

// Release frees the worker pool. The searcher must not be used afterwards.
func (s *Searcher) Release() {
	s.pool.Release()
}

// Registry returns the category registry the searcher answers from.
func (s *Searcher) Registry() *catalog.Registry {
	return s.registry
}

// Search finds resources for category around origin. When origin is nil the
// configured locator is consulted and the default coordinate is used if it
// cannot answer.
func (s *Searcher) Search(ctx context.Context, category string, origin *core.Coordinate, query string) *Result {
	return s.SearchWithMonitor(ctx, category, origin, query, nil)
}

// SearchWithMonitor is Search with callbacks at each stage of the run.
func (s *Searcher) SearchWithMonitor(ctx context.Context, category string, origin *core.Coordinate, query string, monitor SearchMonitor) *Result {
	var advisories []string

	var center core.Coordinate
	if origin != nil && core.ValidateCoordinate(*origin) == nil {
		center = *origin
	} else {
		res := geo.Resolve(ctx, s.locator, s.locateTimeout)
		if res.Defaulted {
			s.logger.Info("using default location", "err", res.Err)
			advisories = append(advisories, res.Advisory)
		}
		center = res.Coordinate
	}

	result := s.aggregate(ctx, center, category, s.registry.KeywordsFor(category), query, monitor)
	result.Advisories = append(advisories, result.Advisories...)
	return result
}

// Aggregate runs one search for category around origin using keywords, in
// order, preceded by query when it is not blank. It never fails: when no live
// result survives it returns the offline dataset with an advisory.
func (s *Searcher) Aggregate(ctx context.Context, origin core.Coordinate, category string, keywords []string, query string) *Result {
	return s.aggregate(ctx, origin, category, keywords, query, nil)
}

func (s *Searcher) aggregate(
	ctx context.Context,
	origin core.Coordinate,
	category string,
	keywords []string,
	query string,
	monitor SearchMonitor,
) (result *Result) {
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	runID := uuid.NewString()
	logger := s.logger.With("run", runID, "category", category)
	cat := s.registry.Category(category)
	query = strings.TrimSpace(query)
	if query != "" {
		keywords = append([]string{query}, keywords...)
	}

	monitor.Start(cat.ID, origin, keywords)
	defer func() {
		result.RunID = runID
		monitor.Finish(result)
	}()

	offline := func(reason, advisory string) *Result {
		monitor.Fallback(reason)
		return &Result{
			Category:   cat.ID,
			Origin:     origin,
			Source:     SourceOffline,
			Resources:  Fallback(s.registry, cat.ID, query),
			Advisories: []string{advisory},
		}
	}

	if s.provider == nil {
		logger.Warn("no places provider configured, using offline resources")
		return offline("provider unavailable", AdvisoryProviderUnavailable)
	}

	defer func() {
		if r := recover(); r != nil {
			logger.Error("search run panicked, using offline resources", "err", r)
			result = offline("panic", fmt.Sprintf("%s %v", AdvisoryFetchFailed, r))
		}
	}()

	working, failed := s.collect(ctx, logger, origin, cat, keywords, monitor)
	monitor.AfterMerge(working)

	if len(working) == 0 {
		if failed == len(keywords) && failed > 0 {
			logger.Warn("every keyword search failed, using offline resources", "keywords", len(keywords))
		} else {
			logger.Warn("no candidates found nearby, using offline resources", "keywords", len(keywords))
		}
		return offline("no candidates", AdvisoryNoResults)
	}

	resources, err := s.enricher.EnrichAll(ctx, cat, working)
	if err != nil {
		logger.Error("detail enrichment failed, using offline resources", "err", err)
		return offline("enrichment failed", fmt.Sprintf("%s %v", AdvisoryFetchFailed, err))
	}
	monitor.AfterEnrichment(resources)

	if len(resources) == 0 {
		logger.Warn("no candidate could be enriched, using offline resources", "candidates", len(working))
		return offline("no details", AdvisoryNoResults)
	}

	logger.Debug("search complete", "candidates", len(working), "resources", len(resources))
	return &Result{
		Category:  cat.ID,
		Origin:    origin,
		Source:    SourceLive,
		Resources: Filter(resources, query),
	}
}

// collect runs one nearby search per keyword, merges the hits by place ID
// keeping the best score, and returns the working set ranked by score. It
// also reports how many keyword searches failed.
func (s *Searcher) collect(
	ctx context.Context,
	logger *slog.Logger,
	origin core.Coordinate,
	cat catalog.Category,
	keywords []string,
	monitor SearchMonitor,
) ([]core.ScoredCandidate, int) {
	var (
		merged []core.ScoredCandidate
		index  = make(map[string]int)
		failed int
	)

	placeType := cat.PrimaryType()
	for _, keyword := range keywords {
		if ctx.Err() != nil {
			logger.Debug("search cancelled", "err", ctx.Err())
			break
		}
		if isBlank(keyword) {
			continue
		}

		candidates, err := s.provider.NearbySearch(ctx, places.NearbyRequest{
			Location: origin,
			Radius:   s.radius,
			Keyword:  keyword,
			Type:     placeType,
		})
		monitor.AfterKeywordSearch(keyword, candidates, err)
		if err != nil {
			failed++
			logger.Debug("keyword search failed", "keyword", keyword, "err", err)
			continue
		}

		for _, c := range candidates {
			if c.PlaceID == "" {
				continue
			}
			scored := core.ScoredCandidate{
				Candidate: c,
				Score:     Score(c, keyword, cat),
				Keyword:   keyword,
			}
			if i, seen := index[c.PlaceID]; seen {
				if scored.Score > merged[i].Score {
					merged[i] = scored
				}
				continue
			}
			index[c.PlaceID] = len(merged)
			merged = append(merged, scored)
		}
	}

	slices.SortStableFunc(merged, func(a, b core.ScoredCandidate) int {
		return cmp.Compare(b.Score, a.Score)
	})
	if len(merged) > s.maxResults {
		merged = merged[:s.maxResults]
	}
	return merged, failed
}
