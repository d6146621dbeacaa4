// Package places defines the port to a places-search provider.
//
// A Provider answers two questions: which places match a keyword around a
// point (NearbySearch), and what are the full details of one place
// (PlaceDetails). Both are plain blocking calls returning a value or an error;
// sequencing and fan-out are left to the caller.
//
// Implementations live in subpackages:
//
//   - google: Google Places web service via googlemaps.github.io/maps
//   - mock: function-field test double with call counters
//
// CachingProvider decorates any Provider with a persistent detail cache:
//
//	backend, _ := badger.OpenBackend(dir, false)
//	cached, err := places.NewCachingProvider(provider, badger.NewDetailRepository(backend), 0)
package places
