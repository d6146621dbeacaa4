// Package geo resolves the caller's position for a search.
//
// A Locator is asked once per search with a bounded wait. Location failures are
// never fatal: Resolve falls back to DefaultCoordinate and reports an advisory
// the presentation layer can show next to the results.
package geo
