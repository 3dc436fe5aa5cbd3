// Package repositories provides the local read-side cache for job history.
//
// The backend owns job state; this package only mirrors snapshots the client
// has already fetched into SQLite so `jobs history` keeps working when the
// backend is unreachable. Upserts are last-write-wins by job id.
package repositories
