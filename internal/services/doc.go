// Package services implements typed HTTP clients for the remote sources the
// cache depends on.
//
// Three sources exist, each behind a narrow interface so the cache layer can
// be tested without the network:
//
//   - [SteamService] : the Steam Web API, serving both the paginated app
//     catalog ([CatalogClient]) and per-game achievement schemas
//     ([SchemaClient]). Authenticated with a static API key and throttled
//     with a shared rate limiter.
//   - [StorefrontService] : the storefront appdetails endpoint
//     ([StorefrontClient]), the authoritative source for an app's type and
//     DLC id list.
//   - [SteamDBService] : a scraped SteamDB page ([SecondarySource]),
//     best-effort only. Its selectors are an external contract subject to
//     breakage; every failure mode collapses into
//     [shared.ErrSecondaryUnavailable].
package services
