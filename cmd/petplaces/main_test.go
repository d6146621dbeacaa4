package main

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	"github.com/poiesic/petplaces/catalog"
	"github.com/poiesic/petplaces/core"
	"github.com/poiesic/petplaces/search"
	"github.com/poiesic/petplaces/storage/badger"
	"github.com/poiesic/petplaces/warm"
)

// runApp runs the CLI offline with an in-memory cache and returns stdout.
func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("GOOGLE_MAPS_API_KEY", "")
	defer slog.SetDefault(slog.Default())

	var out, errOut bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ErrWriter = &errOut
	err := app.Run(append([]string{"petplaces", "--log-level", "error", "--in-memory"}, args...))
	return out.String(), err
}

func TestCategoriesCommand(t *testing.T) {
	t.Run("text", func(t *testing.T) {
		out, err := runApp(t, "categories")
		require.NoError(t, err)
		assert.Contains(t, out, "dog_health")
		assert.Contains(t, out, "cat_services")
		assert.Contains(t, out, "veterinarian for dogs")
	})

	t.Run("json", func(t *testing.T) {
		out, err := runApp(t, "categories", "--json")
		require.NoError(t, err)
		var categories []map[string]any
		require.NoError(t, json.Unmarshal([]byte(out), &categories))
		assert.Len(t, categories, 10)
	})

	t.Run("custom catalog", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "catalog.toml")
		require.NoError(t, os.WriteFile(path, []byte(`
[[category]]
id = "bird_health"
keywords = ["avian vet"]
types = ["veterinary_care"]
`), 0644))

		out, err := runApp(t, "--catalog", path, "categories")
		require.NoError(t, err)
		assert.Contains(t, out, "bird_health")
		assert.NotContains(t, out, "dog_health")
	})

	t.Run("missing catalog", func(t *testing.T) {
		_, err := runApp(t, "--catalog", filepath.Join(t.TempDir(), "nope.toml"), "categories")
		assert.Error(t, err)
	})
}

func TestSearchCommand(t *testing.T) {
	t.Run("offline text output", func(t *testing.T) {
		out, err := runApp(t, "search", "--lat", "22.3", "--lng", "73.1", "cat_services")
		require.NoError(t, err)
		assert.Contains(t, out, "cat_services near 22.3000, 73.1000 (offline, 2 resources)")
		assert.Contains(t, out, search.AdvisoryProviderUnavailable)
		assert.Contains(t, out, "Whiskers Cat Hotel")
	})

	t.Run("offline json output with query", func(t *testing.T) {
		out, err := runApp(t, "search", "--lat", "22.3", "--lng", "73.1", "-q", "walk", "--json", "dog_services")
		require.NoError(t, err)
		var result search.Result
		require.NoError(t, json.Unmarshal([]byte(out), &result))
		assert.Equal(t, search.SourceOffline, result.Source)
		require.Len(t, result.Resources, 1)
		assert.Equal(t, "Professional Dog Walking Service", result.Resources[0].Name)
	})

	t.Run("default location without coordinates", func(t *testing.T) {
		out, err := runApp(t, "search", "dog_health")
		require.NoError(t, err)
		assert.Contains(t, out, "near 20.5937, 78.9629")
		assert.Contains(t, out, "Geolocation is not supported")
	})

	t.Run("category is required", func(t *testing.T) {
		_, err := runApp(t, "search")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "category")
	})

	t.Run("lat without lng", func(t *testing.T) {
		_, err := runApp(t, "search", "--lat", "22.3", "dog_health")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "together")
	})

	t.Run("latitude out of range", func(t *testing.T) {
		_, err := runApp(t, "search", "--lat", "100", "--lng", "73.1", "dog_health")
		assert.Error(t, err)
	})
}

func TestWarmCommand(t *testing.T) {
	t.Run("requires coordinates", func(t *testing.T) {
		_, err := runApp(t, "warm")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "required")
	})

	t.Run("requires API key", func(t *testing.T) {
		_, err := runApp(t, "warm", "--lat", "22.3", "--lng", "73.1")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "API key")
	})
}

func TestWarmOptions(t *testing.T) {
	_, checkpoints, backend, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	defer backend.Close()

	reg, err := catalog.Default()
	require.NoError(t, err)
	searcher, err := search.NewSearcher(reg, nil)
	require.NoError(t, err)
	defer searcher.Release()

	var progress bytes.Buffer
	app := &cli.App{
		Name:      "petplaces",
		ErrWriter: &progress,
		Action: func(c *cli.Context) error {
			opts := warmOptions(c)
			require.Len(t, opts, 2)
			w, err := warm.NewWarmer(searcher, checkpoints, opts...)
			if err != nil {
				return err
			}
			_, err = w.Run(c.Context, core.Coordinate{Lat: 22.3, Lng: 73.1})
			return err
		},
	}

	require.NoError(t, app.Run([]string{"petplaces"}))
	assert.Contains(t, progress.String(), "Warming: 10/10")
}

func TestServeCommandFlags(t *testing.T) {
	app := newApp()
	var serve *cli.Command
	for _, cmd := range app.Commands {
		if cmd.Name == "serve" {
			serve = cmd
		}
	}
	require.NotNil(t, serve)

	var addr *cli.StringFlag
	for _, flag := range serve.Flags {
		if f, ok := flag.(*cli.StringFlag); ok && f.Name == "addr" {
			addr = f
		}
	}
	require.NotNil(t, addr)
	assert.Equal(t, ":8080", addr.Value)
}

func TestSetupLogger(t *testing.T) {
	original := slog.Default()
	defer slog.SetDefault(original)

	tests := []struct {
		level   string
		wantErr bool
	}{
		{"debug", false},
		{"INFO", false},
		{"warn", false},
		{"error", false},
		{"verbose", true},
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			app := &cli.App{
				Name: "petplaces",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "log-level", Value: "info"},
				},
				Before: setupLogger,
				Action: func(*cli.Context) error { return nil },
			}
			err := app.Run([]string{"petplaces", "--log-level", tt.level})
			if tt.wantErr {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), "invalid log level")
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
