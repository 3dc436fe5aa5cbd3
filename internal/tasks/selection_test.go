package tasks

import (
	"testing"

	"navimport/internal/models"
)

func TestSelectionStore(t *testing.T) {
	album := models.CatalogItem{
		ID: "A1", Type: models.TypeAlbum, Title: "X", Artist: "Demo Ensemble",
	}
	songOne := models.CatalogItem{
		ID: "S1", Type: models.TypeSong, Title: "First", Artist: "Demo Ensemble",
		AlbumID: "A1", AlbumTitle: "X",
	}
	songTwo := models.CatalogItem{
		ID: "S2", Type: models.TypeSong, Title: "Second", Artist: "Demo Ensemble",
		AlbumID: "A1", AlbumTitle: "X",
	}

	t.Run("toggle selects and deselects", func(t *testing.T) {
		store := NewSelectionStore()

		if !store.Toggle(album) {
			t.Error("expected first toggle to select")
		}
		if store.Len() != 1 {
			t.Fatalf("expected 1 entry, got %d", store.Len())
		}
		if store.Toggle(album) {
			t.Error("expected second toggle to deselect")
		}
		if store.Len() != 0 {
			t.Errorf("expected empty store, got %d", store.Len())
		}
	})

	t.Run("song selection stores normalized entry", func(t *testing.T) {
		store := NewSelectionStore()
		store.Toggle(songOne)

		entries := store.List()
		if len(entries) != 1 {
			t.Fatalf("expected 1 entry, got %d", len(entries))
		}
		if entries[0].ID != "A1" || entries[0].Type != models.TypeAlbum || entries[0].Title != "X" {
			t.Errorf("expected normalized album entry, got %+v", entries[0])
		}
	})

	t.Run("sibling songs dedupe to one album", func(t *testing.T) {
		store := NewSelectionStore()

		store.Toggle(songOne)
		store.Toggle(songTwo)
		if store.Len() != 0 {
			t.Errorf("expected sibling song to toggle the shared album off, got %d entries", store.Len())
		}

		store.Toggle(songOne)
		if store.Len() != 1 {
			t.Fatalf("expected 1 entry, got %d", store.Len())
		}
		if !store.Selected(songTwo) {
			t.Error("expected sibling song to read as selected via the shared album")
		}
	})

	t.Run("song and its album share one entry", func(t *testing.T) {
		store := NewSelectionStore()

		store.Toggle(songOne)
		if !store.Selected(album) {
			t.Error("expected album to read as selected after song toggle")
		}
		store.Toggle(album)
		if store.Len() != 0 {
			t.Errorf("expected album toggle to remove the shared entry, got %d", store.Len())
		}
	})

	t.Run("song without album keys on itself", func(t *testing.T) {
		orphan := models.CatalogItem{ID: "S9", Type: models.TypeSong, Title: "Orphan"}
		store := NewSelectionStore()

		store.Toggle(orphan)
		entries := store.List()
		if len(entries) != 1 || entries[0].ID != "S9" || entries[0].Type != models.TypeSong {
			t.Errorf("expected orphan song unchanged, got %+v", entries)
		}
	})

	t.Run("clear empties the set", func(t *testing.T) {
		store := NewSelectionStore()
		store.Toggle(album)
		store.Toggle(models.CatalogItem{ID: "B2", Type: models.TypeAlbum})

		store.Clear()
		if store.Len() != 0 {
			t.Errorf("expected empty store, got %d", store.Len())
		}
	})

	t.Run("list is sorted by id", func(t *testing.T) {
		store := NewSelectionStore()
		store.Toggle(models.CatalogItem{ID: "B2", Type: models.TypeAlbum})
		store.Toggle(album)

		entries := store.List()
		if len(entries) != 2 || entries[0].ID != "A1" || entries[1].ID != "B2" {
			t.Errorf("expected stable sorted order, got %+v", entries)
		}
	})
}
