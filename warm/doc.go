// Package warm pre-fetches every category around a location so later
// searches are answered from the detail cache.
package warm
