package tasks

import (
	"sort"
	"sync"

	"navimport/internal/models"
)

// SelectionStore holds the set of catalog entries chosen for import.
//
// Entries are stored normalized (songs rewritten to their containing album),
// keyed by [models.CatalogItem.SelectionKey], so two entries can never share a
// key: toggling a song and its parent album toggles the same entry.
type SelectionStore struct {
	mu      sync.Mutex
	entries map[string]models.CatalogItem
}

// NewSelectionStore creates an empty selection set.
func NewSelectionStore() *SelectionStore {
	return &SelectionStore{entries: make(map[string]models.CatalogItem)}
}

// Toggle adds the normalized form of item to the set, or removes the entry if
// its key is already present. Returns true when the item is now selected.
func (s *SelectionStore) Toggle(item models.CatalogItem) bool {
	key := item.SelectionKey()

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[key]; ok {
		delete(s.entries, key)
		return false
	}
	s.entries[key] = models.Normalize(item)
	return true
}

// Selected reports whether the item (or its parent album) is in the set.
func (s *SelectionStore) Selected(item models.CatalogItem) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.entries[item.SelectionKey()]
	return ok
}

// Clear empties the set.
func (s *SelectionStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[string]models.CatalogItem)
}

// List returns the current entries sorted by key for stable output.
func (s *SelectionStore) List() []models.CatalogItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := make([]models.CatalogItem, 0, len(s.entries))
	for _, e := range s.entries {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].ID < entries[j].ID })
	return entries
}

// Len returns the number of selected entries.
func (s *SelectionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
