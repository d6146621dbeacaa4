package warm

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/petplaces/catalog"
	"github.com/poiesic/petplaces/core"
	"github.com/poiesic/petplaces/places"
	"github.com/poiesic/petplaces/places/mock"
	"github.com/poiesic/petplaces/search"
	"github.com/poiesic/petplaces/storage/badger"
)

var origin = core.Coordinate{Lat: 22.3072, Lng: 73.1812}

type fixture struct {
	provider    *mock.MockProvider
	searcher    *search.Searcher
	checkpoints *badger.CheckpointRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	details, checkpoints, backend, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() {
		details.Close()
		checkpoints.Close()
		backend.Close()
	})

	reg, err := catalog.Default()
	require.NoError(t, err)

	provider := mock.NewMockProvider()
	provider.NearbySearchFunc = func(_ context.Context, req places.NearbyRequest) ([]core.Candidate, error) {
		if req.Keyword != "veterinarian for dogs" {
			return nil, nil
		}
		return []core.Candidate{{PlaceID: "vet", Name: "Riverside Vet"}}, nil
	}
	provider.WithDetail(&core.PlaceDetail{PlaceID: "vet", Name: "Riverside Vet"})

	searcher, err := search.NewSearcher(reg, provider)
	require.NoError(t, err)
	t.Cleanup(searcher.Release)

	return &fixture{provider: provider, searcher: searcher, checkpoints: checkpoints}
}

func TestNewWarmer(t *testing.T) {
	f := newFixture(t)

	_, err := NewWarmer(nil, f.checkpoints)
	assert.Equal(t, ErrSearcherRequired, err)

	_, err = NewWarmer(f.searcher, nil)
	assert.Equal(t, ErrCheckpointsRequired, err)

	w, err := NewWarmer(f.searcher, f.checkpoints, WithLogger(nil), WithProgress(nil))
	require.NoError(t, err)
	assert.NotNil(t, w)
}

func TestWarmer_Run(t *testing.T) {
	f := newFixture(t)
	var out bytes.Buffer
	w, err := NewWarmer(f.searcher, f.checkpoints, WithProgress(&out))
	require.NoError(t, err)

	summary, err := w.Run(context.Background(), origin)
	require.NoError(t, err)

	assert.Equal(t, 10, summary.Categories)
	assert.Equal(t, 0, summary.Skipped)
	assert.Equal(t, 1, summary.Live)
	assert.Equal(t, 1, summary.Resources)
	assert.Len(t, summary.Offline, 9)
	assert.NotContains(t, summary.Offline, "dog_health")
	assert.Contains(t, out.String(), "10/10")

	cp, err := f.checkpoints.LoadCheckpoint(context.Background(), CheckpointName(origin))
	require.NoError(t, err)
	assert.Nil(t, cp, "completed sweep clears its checkpoint")
}

func TestWarmer_Resume(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.checkpoints.SaveCheckpoint(ctx, &core.Checkpoint{
		Name:      CheckpointName(origin),
		Position:  "dog_health",
		Completed: 6,
	}))

	w, err := NewWarmer(f.searcher, f.checkpoints)
	require.NoError(t, err)

	summary, err := w.Run(ctx, origin)
	require.NoError(t, err)

	assert.Equal(t, 6, summary.Skipped)
	assert.Equal(t, 4, summary.Categories)
	assert.Equal(t, 0, summary.Live)
}

func TestWarmer_Cancelled(t *testing.T) {
	f := newFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	f.provider.NearbySearchFunc = func(context.Context, places.NearbyRequest) ([]core.Candidate, error) {
		cancel()
		return nil, nil
	}

	w, err := NewWarmer(f.searcher, f.checkpoints)
	require.NoError(t, err)

	summary, err := w.Run(ctx, origin)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, summary.Categories)

	cp, err := f.checkpoints.LoadCheckpoint(context.Background(), CheckpointName(origin))
	require.NoError(t, err)
	require.NotNil(t, cp)
	assert.Equal(t, "cat_health", cp.Position)
	assert.Equal(t, 1, cp.Completed)
}

func TestWarmer_InvalidOrigin(t *testing.T) {
	f := newFixture(t)
	w, err := NewWarmer(f.searcher, f.checkpoints)
	require.NoError(t, err)

	_, err = w.Run(context.Background(), core.Coordinate{Lat: -91})
	assert.ErrorIs(t, err, core.ErrInvalidCoordinate)
}
