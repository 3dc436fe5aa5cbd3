// package formatter provides functions to export job history and search results to various formats (CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"navimport/internal/models"
	"navimport/internal/shared"
)

// JobsToCSV converts a job list to CSV format with columns: ID, Status, Phase, Progress, Artist, Album, Created, Finished
func JobsToCSV(jobs []models.Job) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Status", "Phase", "Progress", "Artist", "Album", "Created", "Finished"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, job := range jobs {
		finished := ""
		if job.FinishedAt != nil {
			finished = job.FinishedAt.Format(time.RFC3339)
		}
		record := []string{
			job.ID,
			job.Status,
			job.Phase,
			shared.FormatProgress(job.Progress),
			job.Artist,
			job.Album,
			job.CreatedAt.Format(time.RFC3339),
			finished,
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// JobsToMarkdown converts a job list to a Markdown table
func JobsToMarkdown(jobs []models.Job) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString("# Import Jobs\n\n")
	buf.WriteString(fmt.Sprintf("**Jobs**: %d\n\n", len(jobs)))

	buf.WriteString("| ID | Status | Phase | Progress | Album | Created |\n")
	buf.WriteString("| --- | --- | --- | --- | --- | --- |\n")
	for _, job := range jobs {
		album := job.Album
		if job.Artist != "" {
			album = fmt.Sprintf("%s - %s", job.Artist, job.Album)
		}
		buf.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %s | %s |\n",
			job.ID,
			job.Status,
			job.Phase,
			shared.FormatProgress(job.Progress),
			album,
			job.CreatedAt.Format(time.RFC3339),
		))
	}

	return buf.Bytes(), nil
}

// ResultsToCSV converts catalog search results to CSV format with columns: ID, Type, Title, Artist, Album, Tracks, Duration
func ResultsToCSV(items []models.CatalogItem) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Type", "Title", "Artist", "Album", "Tracks", "Duration"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, item := range items {
		record := []string{
			item.ID,
			string(item.Type),
			item.Title,
			item.Artist,
			item.AlbumTitle,
			strconv.Itoa(item.Tracks),
			strconv.Itoa(item.Duration),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ResultsToMarkdown converts catalog search results to Markdown, grouped as a numbered list
func ResultsToMarkdown(query string, items []models.CatalogItem) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# Search: %s\n\n", query))
	buf.WriteString(fmt.Sprintf("**Results**: %d\n\n", len(items)))

	for i, item := range items {
		albumPart := ""
		if item.Type == models.TypeSong && item.AlbumTitle != "" {
			albumPart = fmt.Sprintf(" (%s)", item.AlbumTitle)
		}
		buf.WriteString(fmt.Sprintf("%d. [%s] %s - %s%s\n", i+1, item.Type, item.Artist, item.Title, albumPart))
	}

	return buf.Bytes(), nil
}

// JobToText converts a single job snapshot, with its logs, to plain text
func JobToText(job models.Job) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Job: %s\n", job.ID))
	buf.WriteString(fmt.Sprintf("Status: %s (%s)\n", job.Status, job.Phase))
	buf.WriteString(fmt.Sprintf("Progress: %s\n", shared.FormatProgress(job.Progress)))
	if job.Artist != "" || job.Album != "" {
		buf.WriteString(fmt.Sprintf("Album: %s - %s\n", job.Artist, job.Album))
	}
	if job.Message != "" {
		buf.WriteString(fmt.Sprintf("Message: %s\n", job.Message))
	}
	buf.WriteString(fmt.Sprintf("Created: %s\n", job.CreatedAt.Format(time.RFC3339)))
	if job.FinishedAt != nil {
		buf.WriteString(fmt.Sprintf("Finished: %s\n", job.FinishedAt.Format(time.RFC3339)))
	}

	if len(job.Items) > 0 {
		buf.WriteString("\nItems:\n")
		for i, item := range job.Items {
			buf.WriteString(fmt.Sprintf("%d. %s - %s [%s]\n", i+1, item.Artist, item.Title, item.Status))
		}
	}

	if len(job.Logs) > 0 {
		buf.WriteString("\nLogs:\n")
		for _, entry := range job.Logs {
			buf.WriteString(fmt.Sprintf("%s %s\n", entry.CreatedAt.Format(time.RFC3339), entry.Message))
		}
	}

	return buf.Bytes(), nil
}

// ExportResult contains the path of the file created by a Write* export
type ExportResult struct {
	File string
}

// WriteJobsExport exports a job list to the given format ("csv" or "markdown").
//
// Defaults to jobs.{ext} as the filename when filepath is empty.
func WriteJobsExport(jobs []models.Job, format string, filepath string) (*ExportResult, error) {
	var data []byte
	var err error
	var ext string

	switch format {
	case "csv":
		data, err = JobsToCSV(jobs)
		ext = "csv"
	case "markdown", "md":
		data, err = JobsToMarkdown(jobs)
		ext = "md"
	default:
		return nil, fmt.Errorf("%w: unsupported export format %q", shared.ErrInvalidFlag, format)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to generate export: %w", err)
	}

	if filepath == "" {
		filepath = "jobs." + ext
	}
	if err := os.WriteFile(filepath, data, 0644); err != nil {
		return nil, fmt.Errorf("failed to write export file: %w", err)
	}

	return &ExportResult{File: filepath}, nil
}

// WriteResultsExport exports search results to the given format ("csv" or "markdown").
//
// Defaults to results.{ext} as the filename when filepath is empty.
func WriteResultsExport(query string, items []models.CatalogItem, format string, filepath string) (*ExportResult, error) {
	var data []byte
	var err error
	var ext string

	switch format {
	case "csv":
		data, err = ResultsToCSV(items)
		ext = "csv"
	case "markdown", "md":
		data, err = ResultsToMarkdown(query, items)
		ext = "md"
	default:
		return nil, fmt.Errorf("%w: unsupported export format %q", shared.ErrInvalidFlag, format)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to generate export: %w", err)
	}

	if filepath == "" {
		filepath = "results." + ext
	}
	if err := os.WriteFile(filepath, data, 0644); err != nil {
		return nil, fmt.Errorf("failed to write export file: %w", err)
	}

	return &ExportResult{File: filepath}, nil
}
