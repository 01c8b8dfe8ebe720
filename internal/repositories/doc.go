// package repositories provides persistence layer implementations over SQLite.
//
// [AppRepository] owns the cached application records: bulk first-write-wins
// ingestion during catalog refresh and read-only lookups afterwards.
// [SyncRunRepository] records an audit row per category per refresh run.
//
// Writes are expected from a single owner (the synchronizer); reads are safe
// from concurrent callers once synchronization has completed.
package repositories
