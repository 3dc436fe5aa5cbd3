// package services defines interface Service for talking to the import backend over HTTP
package services

import (
	"context"

	"navimport/internal/models"
)

// Service defines the backend surface the orchestration core consumes.
type Service interface {
	// Search queries the catalog provider. The query is sent as-is; minimum
	// length is enforced by the caller, not the backend.
	Search(ctx context.Context, query string) ([]models.CatalogItem, error)

	// CreateImport submits one batch import request and returns the job id.
	CreateImport(ctx context.Context, items []models.ImportRequestItem) (string, error)

	// GetJob fetches the current snapshot of a job.
	GetJob(ctx context.Context, id string) (*models.Job, error)

	// ListJobs fetches recent jobs, most-recent-first, bounded server-side.
	ListJobs(ctx context.Context) ([]models.Job, error)

	// Library fetches the target library listing, optionally forcing a rescan.
	Library(ctx context.Context, refresh bool) ([]models.LibraryEntry, error)

	// Health checks backend reachability.
	Health(ctx context.Context) error
}
