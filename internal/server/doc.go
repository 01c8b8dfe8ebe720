// Package server provides HTTP routing, middleware, and read-only JSON views of the catalog cache.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation uses [http.ServeMux] internally with method filtering.
//
// # API Handler
//
// [AppHandler] implements the [Handler] interface and serves the cache's
// query operations over JSON:
//
//	GET /api/search?q={query}            → fuzzy name search
//	GET /api/apps/{id}                   → exact id lookup
//	GET /api/apps/{id}/achievements      → achievement schema
//	GET /api/apps/{id}/dlc[?steamdb=1]   → reconciled DLC listing
//	GET /api/sync/runs                   → recorded refresh history
//
// The handler never mutates the cache; refreshes stay with the CLI's sync
// command, keeping the single-writer contract.
//
// # Handler Interface
//
// Custom handlers implement the [Handler] interface, which wraps the stdlib handler interface and adds routes,
// allowing handlers to register multiple routes to encapsulate route definitions within the implementation.
package server
