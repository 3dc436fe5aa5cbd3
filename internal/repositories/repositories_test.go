package repositories

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"navimport/internal/models"
	"navimport/internal/shared"
)

// setupTestDB creates an in-memory SQLite database with migrations applied
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		t.Fatalf("failed to enable foreign keys: %v", err)
	}

	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	return db
}

func testJob(id string, created time.Time) models.Job {
	return models.Job{
		ID:        id,
		Status:    models.StatusQueued,
		Phase:     models.PhaseQueued,
		Progress:  0,
		Artist:    "Boards of Canada",
		Album:     "Geogaddi",
		CreatedAt: created,
	}
}

func TestJobRepository(t *testing.T) {
	t.Run("UpsertAndGet", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewJobRepository(db)
		job := testJob("job-1", time.Now().UTC())

		if err := repo.Upsert(job); err != nil {
			t.Fatalf("failed to upsert job: %v", err)
		}

		got, err := repo.Get("job-1")
		if err != nil {
			t.Fatalf("failed to get job: %v", err)
		}
		if got.Status != models.StatusQueued {
			t.Errorf("expected status %q, got %q", models.StatusQueued, got.Status)
		}
		if got.Album != "Geogaddi" {
			t.Errorf("expected album Geogaddi, got %q", got.Album)
		}
	})

	t.Run("UpsertReplacesSnapshot", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewJobRepository(db)
		job := testJob("job-1", time.Now().UTC())

		if err := repo.Upsert(job); err != nil {
			t.Fatalf("failed to upsert job: %v", err)
		}

		finished := time.Now().UTC()
		job.Status = models.StatusCompleted
		job.Phase = models.PhaseCompleted
		job.Progress = 1
		job.FinishedAt = &finished

		if err := repo.Upsert(job); err != nil {
			t.Fatalf("failed to upsert updated job: %v", err)
		}

		got, err := repo.Get("job-1")
		if err != nil {
			t.Fatalf("failed to get job: %v", err)
		}
		if got.Status != models.StatusCompleted {
			t.Errorf("expected status %q, got %q", models.StatusCompleted, got.Status)
		}
		if got.FinishedAt == nil {
			t.Error("expected finished_at to be set")
		}

		jobs, err := repo.ListRecent(10)
		if err != nil {
			t.Fatalf("failed to list jobs: %v", err)
		}
		if len(jobs) != 1 {
			t.Errorf("expected 1 cached job after upsert, got %d", len(jobs))
		}
	})

	t.Run("UpsertRejectsEmptyID", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewJobRepository(db)
		err := repo.Upsert(models.Job{CreatedAt: time.Now()})
		if !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("GetMissing", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewJobRepository(db)
		_, err := repo.Get("nope")
		if !errors.Is(err, shared.ErrJobNotFound) {
			t.Errorf("expected ErrJobNotFound, got %v", err)
		}
	})

	t.Run("ListRecentOrdersNewestFirst", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewJobRepository(db)
		base := time.Now().UTC()
		for i, id := range []string{"job-old", "job-mid", "job-new"} {
			if err := repo.Upsert(testJob(id, base.Add(time.Duration(i)*time.Minute))); err != nil {
				t.Fatalf("failed to upsert %s: %v", id, err)
			}
		}

		jobs, err := repo.ListRecent(2)
		if err != nil {
			t.Fatalf("failed to list jobs: %v", err)
		}
		if len(jobs) != 2 {
			t.Fatalf("expected 2 jobs, got %d", len(jobs))
		}
		if jobs[0].ID != "job-new" || jobs[1].ID != "job-mid" {
			t.Errorf("unexpected order: %s, %s", jobs[0].ID, jobs[1].ID)
		}
	})

	t.Run("Logs", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewJobRepository(db)
		if err := repo.Upsert(testJob("job-1", time.Now().UTC())); err != nil {
			t.Fatalf("failed to upsert job: %v", err)
		}

		base := time.Now().UTC()
		lines := []string{"queued", "downloading disc 1", "completed"}
		for i, msg := range lines {
			entry := models.JobLog{JobID: "job-1", Message: msg, CreatedAt: base.Add(time.Duration(i) * time.Second)}
			if err := repo.AppendLog(entry); err != nil {
				t.Fatalf("failed to append log: %v", err)
			}
		}

		logs, err := repo.Logs("job-1")
		if err != nil {
			t.Fatalf("failed to list logs: %v", err)
		}
		if len(logs) != len(lines) {
			t.Fatalf("expected %d logs, got %d", len(lines), len(logs))
		}
		for i, entry := range logs {
			if entry.Message != lines[i] {
				t.Errorf("log %d: expected %q, got %q", i, lines[i], entry.Message)
			}
		}
	})

	t.Run("AppendLogRejectsEmptyJobID", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewJobRepository(db)
		err := repo.AppendLog(models.JobLog{Message: "orphan"})
		if !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})
}
