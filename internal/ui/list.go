package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"

	"navimport/internal/models"
	"navimport/internal/shared"
)

var (
	_ list.Item = resultItem{}
	_ list.Item = jobItem{}
)

// resultItem wraps [models.CatalogItem] to implement [list.Item].
//
// selected is read through the store at render time so toggles show up without
// rebuilding the list.
type resultItem struct {
	item     models.CatalogItem
	selected func(models.CatalogItem) bool
}

func (i resultItem) FilterValue() string { return i.item.Title }

func (i resultItem) Title() string {
	marker := "[ ]"
	if i.selected != nil && i.selected(i.item) {
		marker = "[x]"
	}
	return fmt.Sprintf("%s %s", marker, i.item.Title)
}

func (i resultItem) Description() string {
	desc := fmt.Sprintf("%s • %s", i.item.Type, i.item.Artist)
	if i.item.Type == models.TypeSong && i.item.AlbumTitle != "" {
		desc = fmt.Sprintf("%s • %s", desc, i.item.AlbumTitle)
	} else if i.item.Tracks > 0 {
		desc = fmt.Sprintf("%s • %d tracks", desc, i.item.Tracks)
	}
	return desc
}

// jobItem wraps [models.Job] to implement [list.Item].
type jobItem struct {
	job models.Job
}

func (i jobItem) FilterValue() string { return i.job.Album }

func (i jobItem) Title() string {
	name := i.job.Album
	if i.job.Artist != "" {
		name = fmt.Sprintf("%s - %s", i.job.Artist, i.job.Album)
	}
	if name == "" {
		name = i.job.ID
	}
	return name
}

func (i jobItem) Description() string {
	return fmt.Sprintf("%s • %s • %s", i.job.Status, i.job.Phase, shared.FormatProgress(i.job.Progress))
}
