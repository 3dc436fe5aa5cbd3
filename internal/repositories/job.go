package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"navimport/internal/models"
	"navimport/internal/shared"
)

// JobRepository caches backend job snapshots in SQLite.
//
// Upsert is last-write-wins keyed by the backend job id, so repeated polls of
// the same job collapse into a single row with the latest snapshot.
type JobRepository struct {
	db *sql.DB
}

// NewJobRepository creates a new JobRepository with the given database connection
func NewJobRepository(db *sql.DB) *JobRepository {
	return &JobRepository{db: db}
}

// Upsert inserts or replaces the cached snapshot for job.ID.
func (r *JobRepository) Upsert(job models.Job) error {
	if job.ID == "" {
		return fmt.Errorf("%w: job id is required", shared.ErrInvalidInput)
	}

	query := `
		INSERT INTO jobs (
			id, status, phase, message, progress, artist, album,
			created_at, updated_at, finished_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			status = excluded.status,
			phase = excluded.phase,
			message = excluded.message,
			progress = excluded.progress,
			artist = excluded.artist,
			album = excluded.album,
			updated_at = excluded.updated_at,
			finished_at = excluded.finished_at
	`

	_, err := r.db.Exec(query,
		job.ID,
		job.Status,
		job.Phase,
		job.Message,
		job.Progress,
		job.Artist,
		job.Album,
		job.CreatedAt,
		job.UpdatedAt,
		job.FinishedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert job: %w", err)
	}

	return nil
}

// Get retrieves a cached job snapshot by id.
func (r *JobRepository) Get(id string) (models.Job, error) {
	query := `
		SELECT id, status, phase, message, progress, artist, album,
			created_at, updated_at, finished_at
		FROM jobs
		WHERE id = ?
	`

	var job models.Job
	err := r.db.QueryRow(query, id).Scan(
		&job.ID,
		&job.Status,
		&job.Phase,
		&job.Message,
		&job.Progress,
		&job.Artist,
		&job.Album,
		&job.CreatedAt,
		&job.UpdatedAt,
		&job.FinishedAt,
	)
	if err == sql.ErrNoRows {
		return models.Job{}, fmt.Errorf("%w: %s", shared.ErrJobNotFound, id)
	}
	if err != nil {
		return models.Job{}, fmt.Errorf("failed to get job: %w", err)
	}

	return job, nil
}

// ListRecent returns up to limit cached jobs ordered newest first.
func (r *JobRepository) ListRecent(limit int) ([]models.Job, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT id, status, phase, message, progress, artist, album,
			created_at, updated_at, finished_at
		FROM jobs
		ORDER BY created_at DESC
		LIMIT ?
	`

	rows, err := r.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	defer rows.Close()

	var jobs []models.Job
	for rows.Next() {
		var job models.Job
		if err := rows.Scan(
			&job.ID,
			&job.Status,
			&job.Phase,
			&job.Message,
			&job.Progress,
			&job.Artist,
			&job.Album,
			&job.CreatedAt,
			&job.UpdatedAt,
			&job.FinishedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}
		jobs = append(jobs, job)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate jobs: %w", err)
	}

	return jobs, nil
}

// AppendLog records a job log line in the cache.
func (r *JobRepository) AppendLog(entry models.JobLog) error {
	if entry.JobID == "" {
		return fmt.Errorf("%w: job id is required", shared.ErrInvalidInput)
	}

	createdAt := entry.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	query := `INSERT INTO job_logs (job_id, message, created_at) VALUES (?, ?, ?)`
	if _, err := r.db.Exec(query, entry.JobID, entry.Message, createdAt); err != nil {
		return fmt.Errorf("failed to append job log: %w", err)
	}

	return nil
}

// Logs returns all cached log lines for a job in chronological order.
func (r *JobRepository) Logs(jobID string) ([]models.JobLog, error) {
	query := `
		SELECT job_id, message, created_at
		FROM job_logs
		WHERE job_id = ?
		ORDER BY created_at ASC, id ASC
	`

	rows, err := r.db.Query(query, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to list job logs: %w", err)
	}
	defer rows.Close()

	var logs []models.JobLog
	for rows.Next() {
		var entry models.JobLog
		if err := rows.Scan(&entry.JobID, &entry.Message, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan job log: %w", err)
		}
		logs = append(logs, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate job logs: %w", err)
	}

	return logs, nil
}
