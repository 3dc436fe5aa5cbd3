package tasks

import (
	"context"
	"errors"
	"testing"

	"navimport/internal/models"
	"navimport/internal/shared"
)

// recordingImporter captures the submitted batch.
type recordingImporter struct {
	jobID    string
	err      error
	requests [][]models.ImportRequestItem
}

func (r *recordingImporter) CreateImport(ctx context.Context, items []models.ImportRequestItem) (string, error) {
	r.requests = append(r.requests, items)
	if r.err != nil {
		return "", r.err
	}
	return r.jobID, nil
}

func TestImportSubmitter(t *testing.T) {
	ctx := context.Background()

	newStore := func() *SelectionStore {
		store := NewSelectionStore()
		store.Toggle(models.CatalogItem{
			ID: "S1", Type: models.TypeSong, Title: "First", Artist: "Demo Ensemble",
			AlbumID: "A1", AlbumTitle: "X", CoverURL: "http://x/a1.jpg", Tracks: 10, Duration: 2300,
		})
		store.Toggle(models.CatalogItem{
			ID: "A2", Type: models.TypeAlbum, Title: "Cities in Motion", Artist: "Pulse Runner",
			CoverURL: "http://x/a2.jpg", Exists: true,
		})
		return store
	}

	t.Run("success submits one batch and clears the selection", func(t *testing.T) {
		store := newStore()
		importer := &recordingImporter{jobID: "job_1"}
		submitter := NewImportSubmitter(importer, store, nil)

		jobID, err := submitter.Submit(ctx)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if jobID != "job_1" {
			t.Errorf("expected job_1, got %s", jobID)
		}
		if len(importer.requests) != 1 {
			t.Fatalf("expected exactly one request, got %d", len(importer.requests))
		}
		if store.Len() != 0 {
			t.Errorf("expected cleared selection, got %d entries", store.Len())
		}

		items := importer.requests[0]
		if len(items) != 2 {
			t.Fatalf("expected 2 items, got %d", len(items))
		}
		// Sorted by key: the song normalized to A1 comes first.
		if items[0].ID != "A1" || items[0].Type != models.TypeAlbum || items[0].Title != "X" {
			t.Errorf("expected normalized song entry, got %+v", items[0])
		}
	})

	t.Run("failure preserves the selection", func(t *testing.T) {
		store := newStore()
		importer := &recordingImporter{err: errors.New("backend rejected import")}
		submitter := NewImportSubmitter(importer, store, nil)

		_, err := submitter.Submit(ctx)
		if err == nil {
			t.Fatal("expected error")
		}
		if store.Len() != 2 {
			t.Errorf("expected selection intact, got %d entries", store.Len())
		}
		if len(importer.requests) != 1 {
			t.Errorf("expected exactly one request (no retry), got %d", len(importer.requests))
		}
	})

	t.Run("empty selection is rejected without a request", func(t *testing.T) {
		importer := &recordingImporter{jobID: "job_1"}
		submitter := NewImportSubmitter(importer, NewSelectionStore(), nil)

		_, err := submitter.Submit(ctx)
		if !errors.Is(err, shared.ErrEmptySelection) {
			t.Fatalf("expected ErrEmptySelection, got %v", err)
		}
		if len(importer.requests) != 0 {
			t.Errorf("expected no request, got %d", len(importer.requests))
		}
	})
}
