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


package petplaces

import (
	"context"
	"log/slog"
	"time"

	"github.com/poiesic/petplaces/catalog"
	"github.com/poiesic/petplaces/httpapi"
	"github.com/poiesic/petplaces/places"
	"github.com/poiesic/petplaces/places/google"
	"github.com/poiesic/petplaces/search"
	"github.com/poiesic/petplaces/storage"
	"github.com/poiesic/petplaces/storage/badger"
	"github.com/poiesic/petplaces/warm"
)

// Directory ties a category catalog, a places provider and the on-disk
// detail cache together.
type Directory struct {
	backend        *badger.Backend
	detailRepo     *badger.DetailRepository
	checkpointRepo *badger.CheckpointRepository
	registry       *catalog.Registry
	provider       places.Provider
	cache          *places.CachingProvider
	logger         *slog.Logger
}

// DirectoryOption configures a Directory.
type DirectoryOption func(*directoryOptions)

type directoryOptions struct {
	placesConfig *places.Config
	registry     *catalog.Registry
	provider     places.Provider
	cacheTTL     time.Duration
	inMemory     bool
	logger       *slog.Logger
}

// WithPlacesConfig sets the Google Places configuration.
// Without an API key the directory serves offline data only.
func WithPlacesConfig(config *places.Config) DirectoryOption {
	return func(o *directoryOptions) {
		o.placesConfig = config
	}
}

// WithRegistry replaces the built-in category catalog.
func WithRegistry(registry *catalog.Registry) DirectoryOption {
	return func(o *directoryOptions) {
		o.registry = registry
	}
}

// WithProvider uses provider instead of building a Google Places client.
func WithProvider(provider places.Provider) DirectoryOption {
	return func(o *directoryOptions) {
		o.provider = provider
	}
}

// WithCacheTTL sets how long place details stay cached.
// Default is places.DefaultCacheTTL.
func WithCacheTTL(ttl time.Duration) DirectoryOption {
	return func(o *directoryOptions) {
		o.cacheTTL = ttl
	}
}

// WithInMemoryCache keeps the detail cache in memory; the cache path is ignored.
func WithInMemoryCache() DirectoryOption {
	return func(o *directoryOptions) {
		o.inMemory = true
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) DirectoryOption {
	return func(o *directoryOptions) {
		o.logger = logger
	}
}

// NewDirectory opens the detail cache at cachePath and builds the provider.
func NewDirectory(cachePath string, opts ...DirectoryOption) (*Directory, error) {
	options := &directoryOptions{
		placesConfig: places.DefaultConfig(),
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		opt(options)
	}
	if options.logger == nil {
		options.logger = slog.Default()
	}

	registry := options.registry
	if registry == nil {
		var err error
		registry, err = catalog.Default()
		if err != nil {
			return nil, err
		}
	}

	// Open backend
	backend, err := badger.OpenBackend(cachePath, options.inMemory)
	if err != nil {
		return nil, err
	}
	detailRepo := badger.NewDetailRepository(backend)
	checkpointRepo := badger.NewCheckpointRepository(backend)

	d := &Directory{
		backend:        backend,
		detailRepo:     detailRepo,
		checkpointRepo: checkpointRepo,
		registry:       registry,
		logger:         options.logger,
	}

	provider := options.provider
	if provider == nil && options.placesConfig != nil && options.placesConfig.APIKey != "" {
		provider, err = google.NewProvider(options.placesConfig, google.WithLogger(options.logger))
		if err != nil {
			backend.Close()
			return nil, err
		}
	}
	if provider == nil {
		d.logger.Warn("no places API key configured, serving offline resources only")
		return d, nil
	}

	cache, err := places.NewCachingProvider(provider, detailRepo, options.cacheTTL, places.WithCacheLogger(options.logger))
	if err != nil {
		provider.Close()
		backend.Close()
		return nil, err
	}
	d.provider = cache
	d.cache = cache

	return d, nil
}

// Close releases the provider and the cache.
func (d *Directory) Close() error {
	if d.provider != nil {
		if err := d.provider.Close(); err != nil {
			d.logger.Error("error closing places provider", "err", err)
		}
	}

	if err := d.backend.Close(); err != nil {
		d.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

func (d *Directory) Registry() *catalog.Registry {
	return d.registry
}

// Provider returns the cached provider, or nil when running offline.
func (d *Directory) Provider() places.Provider {
	return d.provider
}

// Live reports whether a places provider is configured.
func (d *Directory) Live() bool {
	return d.provider != nil
}

func (d *Directory) DetailRepository() storage.DetailRepository {
	return d.detailRepo
}

func (d *Directory) CheckpointRepository() storage.CheckpointRepository {
	return d.checkpointRepo
}

// CacheStats reports detail cache hits and misses since the directory opened.
func (d *Directory) CacheStats() places.CacheStats {
	if d.cache == nil {
		return places.CacheStats{}
	}
	return d.cache.Stats()
}

// CachedDetails counts the place details currently cached.
func (d *Directory) CachedDetails(ctx context.Context) (int, error) {
	return d.detailRepo.CountDetails(ctx)
}

// Compact reclaims space left behind by expired cache entries.
func (d *Directory) Compact() error {
	return d.backend.CollectGarbage(0.5)
}

func (d *Directory) NewSearcher(opts ...search.Option) (*search.Searcher, error) {
	return search.NewSearcher(d.registry, d.Provider(), opts...)
}

func (d *Directory) NewWarmer(searcher *search.Searcher, opts ...warm.Option) (*warm.Warmer, error) {
	return warm.NewWarmer(searcher, d.checkpointRepo, opts...)
}

func (d *Directory) NewServer(searcher *search.Searcher, opts ...httpapi.Option) (*httpapi.Server, error) {
	return httpapi.NewServer(searcher, opts...)
}
