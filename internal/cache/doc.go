// Package cache implements the application metadata cache and its
// enrichment pipeline.
//
// [Cache] is the single surface the rest of the tool consumes: an
// idempotent [Cache.Initialize] (schema creation plus a conditional catalog
// refresh), name/id lookups and fuzzy search over the cached records, and
// per-app enrichment ([Cache.Achievements], [Cache.Dlc]) that calls out to
// live remote services independent of the refresh cycle.
//
// [Synchronizer] owns the refresh: cursor-paginated catalog fetches per
// category, id deduplication, and one bulk first-write-wins load into the
// record store, gated by a staleness check on the database file.
//
// Data flows one direction: synchronizer -> record store -> lookups ->
// reconciliation/achievement fetch. The cache has a single logical writer;
// reads are safe concurrently once synchronization has completed.
package cache
