package mock

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/poiesic/petplaces/core"
	"github.com/poiesic/petplaces/places"
)

// MockProvider is a test double for places.Provider.
// It allows custom behavior injection via function fields and records every
// call. Safe for concurrent use, so detail fan-out can run against it.
type MockProvider struct {
	// NearbySearchFunc is called by NearbySearch if set.
	// If nil, candidates are looked up by keyword in Candidates.
	NearbySearchFunc func(ctx context.Context, req places.NearbyRequest) ([]core.Candidate, error)

	// PlaceDetailsFunc is called by PlaceDetails if set.
	// If nil, details are looked up by place ID in Details.
	PlaceDetailsFunc func(ctx context.Context, placeID string, fields []string) (*core.PlaceDetail, error)

	// Candidates maps a keyword to the candidates returned for it.
	Candidates map[string][]core.Candidate

	// Details maps a place ID to its detail record.
	Details map[string]*core.PlaceDetail

	mu          sync.Mutex
	nearbyCalls []places.NearbyRequest
	detailCalls []string
	closed      bool
}

var _ places.Provider = (*MockProvider)(nil)

// NewMockProvider creates a mock provider that knows no places.
func NewMockProvider() *MockProvider {
	return &MockProvider{
		Candidates: map[string][]core.Candidate{},
		Details:    map[string]*core.PlaceDetail{},
	}
}

// WithCandidates registers the candidates returned for a keyword.
func (m *MockProvider) WithCandidates(keyword string, candidates ...core.Candidate) *MockProvider {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Candidates[keyword] = candidates
	return m
}

// WithDetail registers a detail record under its place ID.
func (m *MockProvider) WithDetail(detail *core.PlaceDetail) *MockProvider {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Details[detail.PlaceID] = detail
	return m
}

// NearbySearch returns the registered candidates for the request keyword.
func (m *MockProvider) NearbySearch(ctx context.Context, req places.NearbyRequest) ([]core.Candidate, error) {
	m.mu.Lock()
	m.nearbyCalls = append(m.nearbyCalls, req)
	fn := m.NearbySearchFunc
	candidates := slices.Clone(m.Candidates[req.Keyword])
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, req)
	}
	return candidates, nil
}

// PlaceDetails returns the registered detail or places.ErrNotFound.
func (m *MockProvider) PlaceDetails(ctx context.Context, placeID string, fields []string) (*core.PlaceDetail, error) {
	m.mu.Lock()
	m.detailCalls = append(m.detailCalls, placeID)
	fn := m.PlaceDetailsFunc
	detail, ok := m.Details[placeID]
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, placeID, fields)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", places.ErrNotFound, placeID)
	}
	clone := *detail
	return &clone, nil
}

// PhotoURL returns a deterministic fake URL.
func (m *MockProvider) PhotoURL(reference string, maxWidth, maxHeight uint) string {
	return fmt.Sprintf("mock://photo/%s?w=%d&h=%d", reference, maxWidth, maxHeight)
}

// Close marks the provider closed.
func (m *MockProvider) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// NearbyCalls returns the nearby-search requests received, in call order.
func (m *MockProvider) NearbyCalls() []places.NearbyRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.nearbyCalls)
}

// DetailCalls returns the place IDs passed to PlaceDetails, in call order.
func (m *MockProvider) DetailCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.detailCalls)
}

// CallCount returns the number of times any lookup method was called.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.nearbyCalls) + len(m.detailCalls)
}

// Closed reports whether Close was called.
func (m *MockProvider) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// Reset clears recorded calls and injected functions.
func (m *MockProvider) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nearbyCalls = nil
	m.detailCalls = nil
	m.closed = false
	m.NearbySearchFunc = nil
	m.PlaceDetailsFunc = nil
}
