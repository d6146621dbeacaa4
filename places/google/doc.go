// Package google implements places.Provider on the Google Places web service
// using googlemaps.github.io/maps.
//
//	cfg := places.NewConfig(places.WithAPIKey(os.Getenv("GOOGLE_MAPS_API_KEY")))
//	provider, err := google.NewProvider(cfg)
//
// Nearby searches map to the Places Nearby Search endpoint, detail lookups to
// Place Details with a field mask, and photo references to Place Photo URLs
// signed with the configured API key.
package google
