// Import backend [Service] implementation
//
// Communicates with the navidrome-helper backend over JSON/HTTP. Non-2xx
// responses surface the body text as the error message, or a generic status
// message when the body is empty.
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/time/rate"

	"navimport/internal/models"
	"navimport/internal/shared"
)

const defaultBaseURL string = "http://localhost:8080"

// searchRate bounds catalog searches from non-debounced call sites (CLI loops, scripts).
var searchRate = rate.Limit(5)

// ImportService implements the Service interface against the import backend.
type ImportService struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewImportService creates a new import backend client.
func NewImportService(baseURL string, client *http.Client) *ImportService {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if client == nil {
		client = http.DefaultClient
	}

	return &ImportService{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: client,
		limiter:    rate.NewLimiter(searchRate, 2),
	}
}

func (s *ImportService) doRequest(ctx context.Context, method, endpoint string, body, result any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", shared.GenerateID())

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		text, _ := io.ReadAll(resp.Body)
		if msg := strings.TrimSpace(string(text)); msg != "" {
			return fmt.Errorf("%w: %s", shared.ErrAPIRequest, msg)
		}
		return fmt.Errorf("%w: status %d", shared.ErrAPIRequest, resp.StatusCode)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// Search queries the catalog provider.
//
// Calls GET /api/search?q={query} on the backend.
func (s *ImportService) Search(ctx context.Context, query string) ([]models.CatalogItem, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	var payload struct {
		Items []models.CatalogItem `json:"items"`
	}

	endpoint := fmt.Sprintf("/api/search?q=%s", url.QueryEscape(query))
	if err := s.doRequest(ctx, http.MethodGet, endpoint, nil, &payload); err != nil {
		return nil, err
	}

	return payload.Items, nil
}

// CreateImport submits a batch import and returns the created job id.
//
// Calls POST /api/import on the backend.
func (s *ImportService) CreateImport(ctx context.Context, items []models.ImportRequestItem) (string, error) {
	req := struct {
		Items []models.ImportRequestItem `json:"items"`
	}{Items: items}

	var resp struct {
		JobID string `json:"jobId"`
	}

	if err := s.doRequest(ctx, http.MethodPost, "/api/import", req, &resp); err != nil {
		return "", err
	}
	if resp.JobID == "" {
		return "", fmt.Errorf("%w: backend returned no job id", shared.ErrAPIRequest)
	}

	return resp.JobID, nil
}

// GetJob fetches the current snapshot of a job.
//
// Calls GET /api/jobs/{id} on the backend.
func (s *ImportService) GetJob(ctx context.Context, id string) (*models.Job, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: empty job id", shared.ErrInvalidInput)
	}

	var job models.Job
	endpoint := fmt.Sprintf("/api/jobs/%s", url.PathEscape(id))
	if err := s.doRequest(ctx, http.MethodGet, endpoint, nil, &job); err != nil {
		return nil, err
	}

	return &job, nil
}

// ListJobs fetches recent jobs, most-recent-first.
//
// Calls GET /api/jobs on the backend; the page size (50) is enforced server-side.
func (s *ImportService) ListJobs(ctx context.Context) ([]models.Job, error) {
	var payload struct {
		Jobs []models.Job `json:"jobs"`
	}

	if err := s.doRequest(ctx, http.MethodGet, "/api/jobs", nil, &payload); err != nil {
		return nil, err
	}

	return payload.Jobs, nil
}

// Library fetches the target library listing.
//
// Calls GET /api/library, with ?refresh=true to force a rescan first.
func (s *ImportService) Library(ctx context.Context, refresh bool) ([]models.LibraryEntry, error) {
	endpoint := "/api/library"
	if refresh {
		endpoint += "?refresh=true"
	}

	var payload struct {
		Library []models.LibraryEntry `json:"library"`
	}

	if err := s.doRequest(ctx, http.MethodGet, endpoint, nil, &payload); err != nil {
		return nil, err
	}

	return payload.Library, nil
}

// Health checks backend reachability via GET /health.
func (s *ImportService) Health(ctx context.Context) error {
	return s.doRequest(ctx, http.MethodGet, "/health", nil, nil)
}
