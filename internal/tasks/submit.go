package tasks

import (
	"context"

	"github.com/charmbracelet/log"

	"navimport/internal/models"
	"navimport/internal/shared"
)

// Importer is the slice of the backend surface the ImportSubmitter needs.
type Importer interface {
	CreateImport(ctx context.Context, items []models.ImportRequestItem) (string, error)
}

// ImportSubmitter converts the current selection into one batch import request.
type ImportSubmitter struct {
	svc    Importer
	store  *SelectionStore
	logger *log.Logger
}

// NewImportSubmitter creates a submitter draining store through svc.
func NewImportSubmitter(svc Importer, store *SelectionStore, logger *log.Logger) *ImportSubmitter {
	if logger == nil {
		logger = log.Default()
	}
	return &ImportSubmitter{svc: svc, store: store, logger: logger}
}

// Submit sends the current selection as a single import request and returns
// the created job id. The selection is cleared only on success; on failure it
// stays intact so the user can retry, and the error comes back to the caller.
// Exactly one request is issued per call; there is no automatic retry.
func (s *ImportSubmitter) Submit(ctx context.Context) (string, error) {
	entries := s.store.List()
	if len(entries) == 0 {
		return "", shared.ErrEmptySelection
	}

	items := models.ImportItems(entries)
	jobID, err := s.svc.CreateImport(ctx, items)
	if err != nil {
		s.logger.Warn("import submission failed", "items", len(items), "error", err)
		return "", err
	}

	s.store.Clear()
	s.logger.Info("import submitted", "job", jobID, "items", len(items))
	return jobID, nil
}
