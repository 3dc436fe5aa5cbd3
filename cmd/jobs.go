package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/urfave/cli/v3"

	"navimport/internal/formatter"
	"navimport/internal/models"
	"navimport/internal/shared"
	"navimport/internal/tasks"
)

// JobsList fetches recent jobs from the backend.
func (r *Runner) JobsList(ctx context.Context, cmd *cli.Command) error {
	jobs, err := r.svc.ListJobs(ctx)
	if err != nil {
		return fmt.Errorf("failed to list jobs: %w", err)
	}

	if format := cmd.String("export"); format != "" {
		result, err := formatter.WriteJobsExport(jobs, format, cmd.String("output"))
		if err != nil {
			return err
		}
		return r.writePlain("✓ Jobs exported to %s\n", result.File)
	}

	if cmd.Bool("json") {
		return r.writeJSON(jobs, true)
	}

	r.writePlainHeader(fmt.Sprintf("Recent Jobs (%d)", len(jobs)))
	for _, job := range jobs {
		r.writePlain("%s\n", jobLine(job))
	}

	return nil
}

// JobsShow fetches a single job snapshot with items and logs.
func (r *Runner) JobsShow(ctx context.Context, cmd *cli.Command) error {
	id := strings.TrimSpace(cmd.StringArg("id"))
	if id == "" {
		return fmt.Errorf("%w: job id", shared.ErrMissingArgument)
	}

	job, err := r.svc.GetJob(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to fetch job: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(job, true)
	}

	text, err := formatter.JobToText(*job)
	if err != nil {
		return err
	}
	return r.writePlain("%s", text)
}

// JobsWatch polls a job until it reaches a terminal status.
func (r *Runner) JobsWatch(ctx context.Context, cmd *cli.Command) error {
	id := strings.TrimSpace(cmd.StringArg("id"))
	if id == "" {
		return fmt.Errorf("%w: job id", shared.ErrMissingArgument)
	}

	return r.watchJob(ctx, id)
}

// JobsHistory lists jobs from the local cache without touching the backend.
func (r *Runner) JobsHistory(ctx context.Context, cmd *cli.Command) error {
	repo, closeRepo, err := r.openRepo()
	if err != nil {
		return err
	}
	defer closeRepo()

	jobs, err := repo.ListRecent(cmd.Int("limit"))
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(jobs, true)
	}

	r.writePlainHeader(fmt.Sprintf("Job History (%d)", len(jobs)))
	for _, job := range jobs {
		r.writePlain("%s\n", jobLine(job))
	}

	return nil
}

// watchJob follows a job through the tracker, printing each snapshot change.
// On terminal status it refreshes the recent listing once and caches it.
func (r *Runner) watchJob(ctx context.Context, jobID string) error {
	events := make(chan tasks.Event, 50)
	done := make(chan struct{})

	tracker := tasks.NewJobTracker(r.svc, tasks.TrackerOpts{
		Interval:   r.config.Client.PollInterval(),
		Events:     events,
		Logger:     r.logger,
		OnTerminal: func() { close(done) },
	})
	tracker.Track(ctx, jobID)
	defer tracker.Clear()

	r.writePlain("Watching job %s\n", jobID)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev := <-events:
			if ev.Kind != tasks.JobUpdated {
				continue
			}
			if _, job := tracker.Snapshot(); job != nil && !job.Terminal() {
				r.writePlain("%s (%s) %s %s\n", job.Status, job.Phase, shared.FormatProgress(job.Progress), job.Message)
			}

		case <-done:
			_, job := tracker.Snapshot()
			if job == nil {
				return fmt.Errorf("%w: %s", shared.ErrJobNotFound, jobID)
			}

			switch job.Status {
			case models.StatusCompleted:
				r.writePlainln("✓ Job %s completed", job.ID)
			case models.StatusFailed:
				r.writePlainln("✗ Job %s failed: %s", job.ID, job.Message)
			}

			r.refreshHistory(ctx)
			return nil
		}
	}
}

// refreshHistory pulls the recent listing from the backend into the cache.
// Best effort: a cold cache or unreachable backend only logs a warning.
func (r *Runner) refreshHistory(ctx context.Context) {
	jobs, err := r.svc.ListJobs(ctx)
	if err != nil {
		r.logger.Warn("failed to refresh recent jobs", "error", err)
		return
	}

	repo, closeRepo, err := r.openRepo()
	if err != nil {
		r.logger.Warn("job cache unavailable", "error", err)
		return
	}
	defer closeRepo()

	for _, job := range jobs {
		if err := repo.Upsert(job); err != nil {
			r.logger.Warn("failed to cache job", "job", job.ID, "error", err)
			return
		}
	}
}

func jobLine(job models.Job) string {
	name := job.Album
	if job.Artist != "" {
		name = fmt.Sprintf("%s - %s", job.Artist, job.Album)
	}
	if name == "" {
		name = job.ID
	}
	return fmt.Sprintf("%-10s %-16s %4s  %s  %s",
		job.Status, job.Phase, shared.FormatProgress(job.Progress), job.CreatedAt.Format(time.RFC3339), name)
}
