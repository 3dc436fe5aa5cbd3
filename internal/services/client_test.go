package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"navimport/internal/models"
	"navimport/internal/shared"
)

func TestImportService(t *testing.T) {
	t.Run("NewImportService", func(t *testing.T) {
		t.Run("creates service with default URL", func(t *testing.T) {
			if svc := NewImportService("", nil); svc.baseURL != defaultBaseURL {
				t.Errorf("expected baseURL to be %s, got %s", defaultBaseURL, svc.baseURL)
			}
		})

		t.Run("trims trailing slash", func(t *testing.T) {
			if svc := NewImportService("http://backend:9000/", nil); svc.baseURL != "http://backend:9000" {
				t.Errorf("expected trimmed baseURL, got %s", svc.baseURL)
			}
		})
	})

	t.Run("Search", func(t *testing.T) {
		t.Run("encodes query and decodes items", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/api/search" {
					t.Errorf("expected path /api/search, got %s", r.URL.Path)
				}
				if got := r.URL.Query().Get("q"); got != "daft punk & friends" {
					t.Errorf("expected decoded query, got %q", got)
				}
				if r.Header.Get("X-Request-ID") == "" {
					t.Error("expected X-Request-ID header")
				}

				w.Header().Set("Content-Type", "application/json")
				json.NewEncoder(w).Encode(map[string]any{
					"items": []map[string]any{
						{"id": "alb_1", "type": "album", "title": "Discovery", "artist": "Daft Punk", "coverUrl": "http://x/c.jpg"},
						{"id": "song_1", "type": "song", "title": "One More Time", "artist": "Daft Punk", "albumId": "alb_1", "albumTitle": "Discovery", "coverUrl": "http://x/c.jpg"},
					},
				})
			}))
			defer server.Close()

			svc := NewImportService(server.URL, nil)
			items, err := svc.Search(context.Background(), "daft punk & friends")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if len(items) != 2 {
				t.Fatalf("expected 2 items, got %d", len(items))
			}
			if items[0].Type != models.TypeAlbum {
				t.Errorf("expected album, got %s", items[0].Type)
			}
			if items[1].AlbumID != "alb_1" {
				t.Errorf("expected albumId alb_1, got %s", items[1].AlbumID)
			}
		})

		t.Run("surfaces error body text", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "search provider down", http.StatusBadGateway)
			}))
			defer server.Close()

			svc := NewImportService(server.URL, nil)
			_, err := svc.Search(context.Background(), "query")
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), "search provider down") {
				t.Errorf("expected body text in error, got %v", err)
			}
		})

		t.Run("generic message for empty error body", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			}))
			defer server.Close()

			svc := NewImportService(server.URL, nil)
			_, err := svc.Search(context.Background(), "query")
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), "status 500") {
				t.Errorf("expected generic status message, got %v", err)
			}
		})
	})

	t.Run("CreateImport", func(t *testing.T) {
		t.Run("posts batch and returns job id", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/api/import" || r.Method != http.MethodPost {
					t.Errorf("expected POST /api/import, got %s %s", r.Method, r.URL.Path)
				}

				var req struct {
					Items []models.ImportRequestItem `json:"items"`
				}
				if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
					t.Fatalf("failed to decode request: %v", err)
				}
				if len(req.Items) != 2 {
					t.Errorf("expected 2 items, got %d", len(req.Items))
				}

				w.WriteHeader(http.StatusAccepted)
				json.NewEncoder(w).Encode(map[string]string{"jobId": "job_42"})
			}))
			defer server.Close()

			svc := NewImportService(server.URL, nil)
			items := []models.ImportRequestItem{
				{ID: "alb_1", Type: models.TypeAlbum, Title: "A", Artist: "X", CoverURL: "http://x/a.jpg"},
				{ID: "alb_2", Type: models.TypeAlbum, Title: "B", Artist: "Y", CoverURL: "http://x/b.jpg"},
			}

			jobID, err := svc.CreateImport(context.Background(), items)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if jobID != "job_42" {
				t.Errorf("expected job_42, got %s", jobID)
			}
		})

		t.Run("fails when backend omits job id", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				json.NewEncoder(w).Encode(map[string]string{})
			}))
			defer server.Close()

			svc := NewImportService(server.URL, nil)
			if _, err := svc.CreateImport(context.Background(), nil); err == nil {
				t.Fatal("expected error for missing job id")
			}
		})
	})

	t.Run("GetJob", func(t *testing.T) {
		t.Run("decodes job snapshot", func(t *testing.T) {
			created := time.Now().UTC().Truncate(time.Second)
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/api/jobs/job_42" {
					t.Errorf("expected path /api/jobs/job_42, got %s", r.URL.Path)
				}
				json.NewEncoder(w).Encode(models.Job{
					ID:        "job_42",
					Status:    models.StatusRunning,
					Phase:     models.PhaseDownloading,
					Message:   "Downloading zip",
					Progress:  0.2,
					CreatedAt: created,
				})
			}))
			defer server.Close()

			svc := NewImportService(server.URL, nil)
			job, err := svc.GetJob(context.Background(), "job_42")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if job.Status != models.StatusRunning || job.Phase != models.PhaseDownloading {
				t.Errorf("unexpected snapshot: %+v", job)
			}
			if job.Terminal() {
				t.Error("running job should not be terminal")
			}
		})

		t.Run("rejects empty id", func(t *testing.T) {
			svc := NewImportService("http://localhost:1", nil)
			if _, err := svc.GetJob(context.Background(), ""); err == nil {
				t.Fatal("expected error for empty id")
			}
		})
	})

	t.Run("ListJobs", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/api/jobs" {
				t.Errorf("expected path /api/jobs, got %s", r.URL.Path)
			}
			json.NewEncoder(w).Encode(map[string]any{
				"jobs": []models.Job{
					{ID: "j2", Status: models.StatusCompleted},
					{ID: "j1", Status: models.StatusFailed},
				},
			})
		}))
		defer server.Close()

		svc := NewImportService(server.URL, nil)
		jobs, err := svc.ListJobs(context.Background())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(jobs) != 2 || jobs[0].ID != "j2" {
			t.Errorf("expected most-recent-first jobs, got %+v", jobs)
		}
	})

	t.Run("Library", func(t *testing.T) {
		var sawRefresh bool
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Query().Get("refresh") == "true" {
				sawRefresh = true
			}
			json.NewEncoder(w).Encode(map[string]any{
				"library": []models.LibraryEntry{{Artist: "Demo Ensemble", Album: "Lights & Echoes", TrackCount: 10}},
			})
		}))
		defer server.Close()

		svc := NewImportService(server.URL, nil)
		entries, err := svc.Library(context.Background(), true)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !sawRefresh {
			t.Error("expected refresh query parameter")
		}
		if len(entries) != 1 || entries[0].TrackCount != 10 {
			t.Errorf("unexpected entries: %+v", entries)
		}
	})

	t.Run("Health", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/health" {
				t.Errorf("expected path /health, got %s", r.URL.Path)
			}
			json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
		}))
		defer server.Close()

		svc := NewImportService(server.URL, nil)
		if err := svc.Health(context.Background()); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})

	t.Run("wraps API errors with sentinel", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "nope", http.StatusBadRequest)
		}))
		defer server.Close()

		svc := NewImportService(server.URL, nil)
		_, err := svc.ListJobs(context.Background())
		if err == nil {
			t.Fatal("expected error")
		}
		if !errors.Is(err, shared.ErrAPIRequest) {
			t.Errorf("expected wrapped ErrAPIRequest, got %v", err)
		}
	})
}
