package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/urfave/cli/v3"

	"navimport/internal/shared"
	"navimport/internal/tasks"
)

// Import searches the catalog, selects results by index and submits one batch import.
func (r *Runner) Import(ctx context.Context, cmd *cli.Command) error {
	query := strings.TrimSpace(cmd.String("query"))
	if query == "" {
		return fmt.Errorf("%w: --query", shared.ErrMissingArgument)
	}

	results, err := r.svc.Search(ctx, query)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}
	if len(results) == 0 {
		return r.writePlain("No results for %q\n", query)
	}

	picks, err := parsePicks(cmd.String("pick"), len(results))
	if err != nil {
		return err
	}

	store := tasks.NewSelectionStore()
	for _, idx := range picks {
		store.Toggle(results[idx])
	}

	for _, entry := range store.List() {
		r.writePlain("Queued: %s - %s\n", entry.Artist, entry.Title)
	}

	submitter := tasks.NewImportSubmitter(r.svc, store, r.logger)
	jobID, err := submitter.Submit(ctx)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	r.writePlain("✓ Import submitted, job %s\n", jobID)

	if cmd.Bool("watch") {
		return r.watchJob(ctx, jobID)
	}

	r.cacheJob(ctx, jobID)
	return nil
}

// parsePicks converts a comma-separated list of 1-based indices into
// zero-based offsets, deduplicated in input order.
func parsePicks(raw string, count int) ([]int, error) {
	seen := map[int]bool{}
	var picks []int

	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("%w: --pick value %q is not a number", shared.ErrInvalidFlag, part)
		}
		if n < 1 || n > count {
			return nil, fmt.Errorf("%w: --pick index %d out of range 1..%d", shared.ErrInvalidFlag, n, count)
		}
		if !seen[n-1] {
			seen[n-1] = true
			picks = append(picks, n-1)
		}
	}

	if len(picks) == 0 {
		return nil, fmt.Errorf("%w: --pick selects nothing", shared.ErrInvalidFlag)
	}

	return picks, nil
}

// cacheJob stores the job's current snapshot in the local history cache.
// Failures are logged, never fatal; the cache is a convenience.
func (r *Runner) cacheJob(ctx context.Context, jobID string) {
	job, err := r.svc.GetJob(ctx, jobID)
	if err != nil {
		r.logger.Warn("failed to fetch job for cache", "job", jobID, "error", err)
		return
	}

	repo, closeRepo, err := r.openRepo()
	if err != nil {
		r.logger.Warn("job cache unavailable", "error", err)
		return
	}
	defer closeRepo()

	if err := repo.Upsert(*job); err != nil {
		r.logger.Warn("failed to cache job", "job", jobID, "error", err)
		return
	}
	for _, entry := range job.Logs {
		if err := repo.AppendLog(entry); err != nil {
			r.logger.Warn("failed to cache job log", "job", jobID, "error", err)
			break
		}
	}
}
