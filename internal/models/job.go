package models

import "time"

// Job status values owned by the backend worker.
const (
	StatusQueued    = "queued"
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// Job phase values reported by the backend download/extract pipeline.
const (
	PhaseQueued         = "queued"
	PhaseFetchingSource = "fetching_source"
	PhaseDownloading    = "downloading"
	PhaseExtracting     = "extracting"
	PhasePlacing        = "placing"
	PhaseCleanup        = "cleanup"
	PhaseCompleted      = "completed"
	PhaseFailed         = "failed"
)

// Job is a read-only, eventually-consistent snapshot of a backend import job.
type Job struct {
	ID         string     `json:"id"`
	Status     string     `json:"status"`
	Phase      string     `json:"phase"`
	Message    string     `json:"message"`
	Progress   float64    `json:"progress"` // 0..1
	Artist     string     `json:"artist,omitempty"`
	Album      string     `json:"album,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  *time.Time `json:"updatedAt,omitempty"`
	FinishedAt *time.Time `json:"finishedAt,omitempty"`
	Items      []JobItem  `json:"items,omitempty"`
	Logs       []JobLog   `json:"logs,omitempty"`
}

// Terminal reports whether no further progress updates will occur for the job.
func (j Job) Terminal() bool {
	return j.Status == StatusCompleted || j.Status == StatusFailed
}

// JobItem is a single catalog entry attached to a job.
type JobItem struct {
	SourceID   string `json:"sourceId"`
	SourceType string `json:"sourceType"`
	Title      string `json:"title"`
	Artist     string `json:"artist"`
	Album      string `json:"album"`
	CoverURL   string `json:"coverUrl"`
	Status     string `json:"status"`
	Message    string `json:"message"`
}

// JobLog is an append-only log line for a job, ordered by CreatedAt.
type JobLog struct {
	JobID     string    `json:"jobId"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

// LibraryEntry describes an album already present in the target library.
type LibraryEntry struct {
	Artist     string    `json:"artist"`
	Album      string    `json:"album"`
	Path       string    `json:"path"`
	TrackCount int       `json:"trackCount"`
	UpdatedAt  time.Time `json:"updatedAt"`
}
