// Package services implements HTTP clients for the import backend.
//
// [Service] is the typed surface the orchestration core consumes: catalog
// search, batch import submission, job snapshots, the recent-jobs listing,
// and the library view. [ImportService] is its JSON/HTTP implementation.
//
// [APIService] is a raw GET/POST passthrough used by the `api` debug commands.
//
// Error contract: transport failures and non-2xx responses are returned as
// wrapped errors; a non-2xx body's text becomes the error message so the CLI
// and TUI can surface exactly what the backend said.
package services
