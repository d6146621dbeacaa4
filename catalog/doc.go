// Package catalog holds the static category table: the ordered search keywords,
// provider type filters and offline datasets for each pet-resource category.
//
// The built-in table is embedded from categories.toml and decoded once:
//
//	reg, err := catalog.Default()
//	keywords := reg.KeywordsFor("dog_health")
//
// Lookups are case-insensitive and never fail. An unknown category resolves to
// the single keyword "pet store", the "establishment" type and an empty offline
// dataset. A replacement table with the same layout can be read with Load.
package catalog
