package main

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/urfave/cli/v3"

	"navimport/internal/formatter"
	"navimport/internal/models"
	"navimport/internal/shared"
)

// Search queries the catalog and prints the results.
func (r *Runner) Search(ctx context.Context, cmd *cli.Command) error {
	query := strings.TrimSpace(cmd.StringArg("query"))
	if query == "" {
		return fmt.Errorf("%w: query", shared.ErrMissingArgument)
	}
	if utf8.RuneCountInString(query) < r.config.Client.MinQuery {
		return fmt.Errorf("%w: need at least %d characters", shared.ErrQueryTooShort, r.config.Client.MinQuery)
	}

	r.logger.Info("searching catalog", "query", query)

	results, err := r.svc.Search(ctx, query)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if format := cmd.String("export"); format != "" {
		result, err := formatter.WriteResultsExport(query, results, format, cmd.String("output"))
		if err != nil {
			return err
		}
		return r.writePlain("✓ Results exported to %s\n", result.File)
	}

	if cmd.Bool("json") {
		return r.writeJSON(results, cmd.Bool("pretty"))
	}

	r.writePlainHeader(fmt.Sprintf("Results for %q (%d)", query, len(results)))
	for i, item := range results {
		line := fmt.Sprintf("%d. [%s] %s - %s", i+1, item.Type, item.Artist, item.Title)
		if item.Type == models.TypeSong && item.AlbumTitle != "" {
			line += fmt.Sprintf(" (%s)", item.AlbumTitle)
		} else if item.Tracks > 0 {
			line += fmt.Sprintf(" (%d tracks)", item.Tracks)
		}
		r.writePlain("%s\n", line)
	}

	return nil
}
