// Package mock provides a test double implementation of places.Provider.
//
// # Usage in Tests
//
//	provider := mock.NewMockProvider().
//	    WithCandidates("dog walker", core.Candidate{PlaceID: "p1", Name: "Happy Walks"}).
//	    WithDetail(&core.PlaceDetail{PlaceID: "p1", Name: "Happy Walks"})
//
//	// Custom behavior injection
//	provider.PlaceDetailsFunc = func(ctx context.Context, id string, fields []string) (*core.PlaceDetail, error) {
//	    return nil, places.ErrRequestFailed
//	}
//
//	// Inspect calls
//	reqs := provider.NearbyCalls()
//
// # Default Behavior
//
// NearbySearch answers from the Candidates map (no entry means no results),
// PlaceDetails answers from the Details map (no entry means places.ErrNotFound),
// and PhotoURL renders a deterministic mock:// URL.
package mock
