// Package models defines domain entities shared across the import client.
//
// The package contains two categories of types:
//
// 1. Catalog types: results and selections from the music-search provider
//   - [CatalogItem] : An album or song from a search response
//   - [ImportRequestItem] : Projection of a selection sent to the backend
//
// 2. Job types: read-only snapshots of backend import jobs
//   - [Job] : Import job with status, phase, progress, and items
//   - [JobItem] : Per-entry state within a job
//   - [JobLog] : Append-only progress log line
//   - [LibraryEntry] : Album already present in the target library
//
// Selection normalization lives here too: [Normalize] rewrites a song to its
// containing album so imports always happen at album granularity, and
// [CatalogItem.SelectionKey] gives the dedup key the selection set uses.
package models
