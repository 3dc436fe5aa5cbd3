package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

// Library lists albums already present in the target library.
func (r *Runner) Library(ctx context.Context, cmd *cli.Command) error {
	refresh := cmd.Bool("refresh")
	if refresh {
		r.logger.Info("forcing library rescan")
	}

	entries, err := r.svc.Library(ctx, refresh)
	if err != nil {
		return fmt.Errorf("failed to fetch library: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(entries, true)
	}

	r.writePlainHeader(fmt.Sprintf("Library (%d albums)", len(entries)))
	for _, entry := range entries {
		r.writePlain("%s - %s (%d tracks)\n", entry.Artist, entry.Album, entry.TrackCount)
	}

	return nil
}
