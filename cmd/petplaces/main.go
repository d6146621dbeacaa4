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


package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/poiesic/petplaces"
	"github.com/poiesic/petplaces/catalog"
	"github.com/poiesic/petplaces/core"
	"github.com/poiesic/petplaces/places"
	"github.com/poiesic/petplaces/search"
	"github.com/poiesic/petplaces/warm"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "petplaces",
		Usage: "Find veterinarians, pet stores and pet services nearby",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:  "catalog",
				Usage: "Path to a TOML category catalog replacing the built-in one",
			},
			&cli.StringFlag{
				Name:    "cache",
				Aliases: []string{"c"},
				Usage:   "Path to the BadgerDB place detail cache directory",
				Value:   "petplaces-cache",
			},
			&cli.BoolFlag{
				Name:  "in-memory",
				Usage: "Keep the place detail cache in memory",
			},
			&cli.DurationFlag{
				Name:  "cache-ttl",
				Usage: "How long place details stay cached",
				Value: places.DefaultCacheTTL,
			},
			&cli.StringFlag{
				Name:    "api-key",
				Usage:   "Google Maps API key; without one only offline resources are served",
				EnvVars: []string{"GOOGLE_MAPS_API_KEY"},
			},
			&cli.UintFlag{
				Name:  "radius",
				Usage: "Nearby search radius in meters",
				Value: places.DefaultRadius,
			},
			&cli.IntFlag{
				Name:  "rate-limit",
				Usage: "Maximum places API requests per second",
				Value: places.DefaultRateLimit,
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Usage: "Places API request timeout",
				Value: places.DefaultRequestTimeout,
			},
			&cli.StringFlag{
				Name:  "language",
				Usage: "Language for place details (e.g. en, hi)",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "categories",
				Usage:  "List the known resource categories",
				Action: categoriesCommand,
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "json", Usage: "Print JSON"},
				},
			},
			{
				Name:      "search",
				Usage:     "Search resources for a category",
				ArgsUsage: "<category>",
				Action:    searchCommand,
				Flags: append(originFlags(),
					&cli.StringFlag{
						Name:    "query",
						Aliases: []string{"q"},
						Usage:   "Free-text query searched first and used to filter results",
					},
					&cli.IntFlag{
						Name:  "max-results",
						Usage: "Maximum candidates enriched with place details",
						Value: search.DefaultMaxResults,
					},
					&cli.BoolFlag{Name: "json", Usage: "Print JSON"},
				),
			},
			{
				Name:   "warm",
				Usage:  "Search every category around a location to fill the detail cache",
				Action: warmCommand,
				Flags:  originFlags(),
			},
			{
				Name:   "serve",
				Usage:  "Serve the search API over HTTP",
				Action: serveCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "addr",
						Usage:   "Listen address",
						Value:   ":8080",
						EnvVars: []string{"PETPLACES_ADDR"},
					},
				},
			},
		},
	}
}

func originFlags() []cli.Flag {
	return []cli.Flag{
		&cli.Float64Flag{Name: "lat", Usage: "Latitude of the search origin"},
		&cli.Float64Flag{Name: "lng", Usage: "Longitude of the search origin"},
	}
}

// originFrom returns nil when no location was given on the command line.
func originFrom(c *cli.Context) (*core.Coordinate, error) {
	if !c.IsSet("lat") && !c.IsSet("lng") {
		return nil, nil
	}
	if !c.IsSet("lat") || !c.IsSet("lng") {
		return nil, fmt.Errorf("lat and lng must be given together")
	}
	origin := core.Coordinate{Lat: c.Float64("lat"), Lng: c.Float64("lng")}
	if err := core.ValidateCoordinate(origin); err != nil {
		return nil, err
	}
	return &origin, nil
}

func openDirectory(c *cli.Context) (*petplaces.Directory, error) {
	opts := []petplaces.DirectoryOption{
		petplaces.WithCacheTTL(c.Duration("cache-ttl")),
		petplaces.WithPlacesConfig(places.NewConfig(
			places.WithAPIKey(c.String("api-key")),
			places.WithRadius(c.Uint("radius")),
			places.WithRateLimit(c.Int("rate-limit")),
			places.WithRequestTimeout(c.Duration("timeout")),
			places.WithLanguage(c.String("language")),
		)),
	}
	if path := c.String("catalog"); path != "" {
		registry, err := catalog.Load(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load catalog: %w", err)
		}
		opts = append(opts, petplaces.WithRegistry(registry))
	}
	if c.Bool("in-memory") {
		opts = append(opts, petplaces.WithInMemoryCache())
	}

	dir, err := petplaces.NewDirectory(c.String("cache"), opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to open directory: %w", err)
	}
	return dir, nil
}

func categoriesCommand(c *cli.Context) error {
	registry, err := catalog.Default()
	if path := c.String("catalog"); path != "" {
		registry, err = catalog.Load(path)
	}
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	out := c.App.Writer
	categories := registry.Categories()
	if c.Bool("json") {
		return writeJSON(out, categories)
	}
	for _, cat := range categories {
		fmt.Fprintf(out, "%-16s %-13s %d offline  %s\n",
			cat.ID, cat.Family, len(cat.Fallback), strings.Join(cat.Keywords, ", "))
	}
	return nil
}

func searchCommand(c *cli.Context) error {
	category := c.Args().First()
	if category == "" {
		return fmt.Errorf("category is required")
	}
	origin, err := originFrom(c)
	if err != nil {
		return err
	}

	dir, err := openDirectory(c)
	if err != nil {
		return err
	}
	defer dir.Close()

	if !dir.Registry().Has(category) {
		slog.Warn("unknown category, using generic keywords", "category", category)
	}

	searcher, err := dir.NewSearcher(
		search.WithRadius(c.Uint("radius")),
		search.WithMaxResults(c.Int("max-results")),
	)
	if err != nil {
		return fmt.Errorf("failed to create searcher: %w", err)
	}
	defer searcher.Release()

	result := searcher.Search(c.Context, category, origin, c.String("query"))
	if c.Bool("json") {
		return writeJSON(c.App.Writer, result)
	}
	printResult(c.App.Writer, result)
	return nil
}

func warmCommand(c *cli.Context) error {
	origin, err := originFrom(c)
	if err != nil {
		return err
	}
	if origin == nil {
		return fmt.Errorf("lat and lng are required")
	}

	dir, err := openDirectory(c)
	if err != nil {
		return err
	}
	defer dir.Close()

	if !dir.Live() {
		return fmt.Errorf("warming needs a places API key")
	}

	searcher, err := dir.NewSearcher(search.WithRadius(c.Uint("radius")))
	if err != nil {
		return fmt.Errorf("failed to create searcher: %w", err)
	}
	defer searcher.Release()

	warmer, err := dir.NewWarmer(searcher, warmOptions(c)...)
	if err != nil {
		return fmt.Errorf("failed to create warmer: %w", err)
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	summary, err := warmer.Run(ctx, *origin)
	if err != nil {
		return fmt.Errorf("warming failed: %w", err)
	}

	cached, err := dir.CachedDetails(ctx)
	if err != nil {
		return fmt.Errorf("failed to count cached details: %w", err)
	}
	if err := dir.Compact(); err != nil {
		slog.Warn("cache compaction failed", "err", err)
	}

	fmt.Fprintf(c.App.ErrWriter, "Warmed %d categories (%d resumed) in %v: %d live, %d offline, %d details cached\n",
		summary.Categories, summary.Skipped, summary.Elapsed.Round(time.Millisecond), summary.Live, len(summary.Offline), cached)
	return nil
}

// warmOptions sends sweep progress to the app's error writer.
func warmOptions(c *cli.Context) []warm.Option {
	return []warm.Option{
		warm.WithProgress(c.App.ErrWriter),
		warm.WithLogger(slog.Default()),
	}
}

func serveCommand(c *cli.Context) error {
	dir, err := openDirectory(c)
	if err != nil {
		return err
	}
	defer dir.Close()

	searcher, err := dir.NewSearcher(search.WithRadius(c.Uint("radius")))
	if err != nil {
		return fmt.Errorf("failed to create searcher: %w", err)
	}
	defer searcher.Release()

	server, err := dir.NewServer(searcher)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	httpServer := &http.Server{
		Addr:              c.String("addr"),
		Handler:           server.Handler(os.Stdout),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		slog.Info("listening", "addr", httpServer.Addr, "live", dir.Live())
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}

	stats := dir.CacheStats()
	slog.Info("server stopped", "cacheHits", stats.Hits, "cacheMisses", stats.Misses)
	return nil
}

func printResult(w io.Writer, result *search.Result) {
	fmt.Fprintf(w, "%s near %.4f, %.4f (%s, %d resources)\n",
		result.Category, result.Origin.Lat, result.Origin.Lng, result.Source, len(result.Resources))
	for _, advisory := range result.Advisories {
		fmt.Fprintf(w, "! %s\n", advisory)
	}
	for i, r := range result.Resources {
		fmt.Fprintf(w, "\n%2d. %s [%s]", i+1, r.Name, r.Type)
		if r.Rating > 0 {
			fmt.Fprintf(w, " %.1f (%d)", r.Rating, r.RatingCount)
		}
		fmt.Fprintln(w)
		if r.Address != "" {
			fmt.Fprintf(w, "    %s\n", r.Address)
		}
		fmt.Fprintf(w, "    %s | %s | %s\n", r.Status, r.Phone, r.Website)
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
