// package models defines the data model for the music import client
package models

// ItemType discriminates albums from songs in catalog search results.
type ItemType string

const (
	TypeAlbum ItemType = "album"
	TypeSong  ItemType = "song"
)

// CatalogItem represents an album or song returned by the catalog search provider.
//
// Items are immutable once returned from a search; identity is ID.
type CatalogItem struct {
	ID         string   `json:"id"`
	Type       ItemType `json:"type"`
	Title      string   `json:"title"`
	Artist     string   `json:"artist"`
	AlbumID    string   `json:"albumId,omitempty"`
	AlbumTitle string   `json:"albumTitle,omitempty"`
	CoverURL   string   `json:"coverUrl"`
	Tracks     int      `json:"tracks,omitempty"`
	Duration   int      `json:"duration,omitempty"` // Duration in seconds
	Exists     bool     `json:"exists"`             // Reserved for the backend's own dedup; not consulted client-side
}

// SelectionKey returns the key under which an item is held in a selection set.
//
// A song with a known album keys on the album; everything else keys on itself.
func (c CatalogItem) SelectionKey() string {
	if c.Type == TypeSong && c.AlbumID != "" {
		return c.AlbumID
	}
	return c.ID
}

// Normalize rewrites a song selection to its containing album.
//
// Albums and songs without a known album pass through unchanged.
// Normalize is idempotent: Normalize(Normalize(x)) == Normalize(x).
func Normalize(item CatalogItem) CatalogItem {
	if item.Type != TypeSong || item.AlbumID == "" {
		return item
	}
	normalized := item
	normalized.ID = item.AlbumID
	normalized.Type = TypeAlbum
	if item.AlbumTitle != "" {
		normalized.Title = item.AlbumTitle
	}
	return normalized
}

// ImportRequestItem is the projection of a selection entry sent to the backend.
//
// UI-only fields (tracks, duration, exists) are dropped.
type ImportRequestItem struct {
	ID         string   `json:"id"`
	Type       ItemType `json:"type"`
	Title      string   `json:"title"`
	Artist     string   `json:"artist"`
	AlbumID    string   `json:"albumId,omitempty"`
	AlbumTitle string   `json:"albumTitle,omitempty"`
	CoverURL   string   `json:"coverUrl"`
}

// ImportItems projects selection entries into the import request payload.
func ImportItems(entries []CatalogItem) []ImportRequestItem {
	items := make([]ImportRequestItem, len(entries))
	for i, e := range entries {
		items[i] = ImportRequestItem{
			ID:         e.ID,
			Type:       e.Type,
			Title:      e.Title,
			Artist:     e.Artist,
			AlbumID:    e.AlbumID,
			AlbumTitle: e.AlbumTitle,
			CoverURL:   e.CoverURL,
		}
	}
	return items
}
