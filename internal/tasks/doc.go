// Package tasks orchestrates bulk operations over the catalog cache with real-time progress reporting.
//
// # Core Operation
//
// [ExportEngine.BulkExport] exports enrichment data for a set of cached apps:
//   - Resolves each app id against the cache
//   - Fetches achievement schemas and reconciled DLC listings, rate limited
//   - Writes per-app files in the requested format via a bounded worker pool
//   - Summarizes the run in a JSON manifest
//
// # Progress Reporting
//
// All phases emit [ProgressUpdate] values over a caller-supplied channel.
// Updates use select with default to prevent blocking; a nil channel
// disables reporting.
//
// # Implementation
//
// [ExportEngine] depends on the [Enricher] interface, the subset of the
// cache facade it needs, so tests can substitute doubles without a
// database or remote services.
package tasks
