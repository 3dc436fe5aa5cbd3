// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"testing"

	"navimport/internal/models"
)

// MockService is a configurable test double for [services.Service].
//
// Zero value returns empty results and nil errors; set the fields to script
// responses.
type MockService struct {
	SearchResults []models.CatalogItem
	SearchErr     error
	SearchCalls   []string

	ImportJobID string
	ImportErr   error
	ImportCalls [][]models.ImportRequestItem

	Job    *models.Job
	JobErr error

	Jobs     []models.Job
	JobsErr  error
	Entries  []models.LibraryEntry
	LibErr   error
	HealthOK bool
}

func (m *MockService) Search(ctx context.Context, query string) ([]models.CatalogItem, error) {
	m.SearchCalls = append(m.SearchCalls, query)
	return m.SearchResults, m.SearchErr
}

func (m *MockService) CreateImport(ctx context.Context, items []models.ImportRequestItem) (string, error) {
	m.ImportCalls = append(m.ImportCalls, items)
	return m.ImportJobID, m.ImportErr
}

func (m *MockService) GetJob(ctx context.Context, id string) (*models.Job, error) {
	return m.Job, m.JobErr
}

func (m *MockService) ListJobs(ctx context.Context) ([]models.Job, error) {
	return m.Jobs, m.JobsErr
}

func (m *MockService) Library(ctx context.Context, refresh bool) ([]models.LibraryEntry, error) {
	return m.Entries, m.LibErr
}

func (m *MockService) Health(ctx context.Context) error {
	if m.HealthOK {
		return nil
	}
	return errors.New("backend unreachable")
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

func MustGetwd(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	return wd
}

func MustChdir(t *testing.T, dir string) {
	t.Helper()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to change directory to %s: %v", dir, err)
	}
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}
