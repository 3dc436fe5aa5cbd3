package ui

import (
	"navimport/internal/models"
	"navimport/internal/tasks"
)

// eventMsg delivers a [tasks.Event] wake-up into the Update loop.
type eventMsg tasks.Event

// importSubmittedMsg reports the outcome of a selection submission.
type importSubmittedMsg struct {
	jobID string
	err   error
}

// recentFetchedMsg delivers the recent jobs listing.
type recentFetchedMsg struct {
	jobs []models.Job
	err  error
}
