// Package models defines domain entities for the steamdex application cache.
//
// The package contains two categories of types:
//
// 1. Cached entities, owned by the record store:
//   - [AppRecord] : A game or DLC identity row (id, display name, comparable name, category)
//
// 2. Request-scoped values produced by enrichment operations:
//   - [AchievementDefinition] : One achievement from the Steam schema endpoint
//   - [DlcEntry] : One reconciled DLC row (id plus resolved or placeholder name)
//
// [ComparableName] derives the normalized lookup key used at both ingestion
// and query time, so a stored record and an incoming query always normalize
// through the same function.
package models
