package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestAPIService(t *testing.T) {
	t.Run("Get returns raw response and detects JSON", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/health" {
				t.Errorf("expected path /health, got %s", r.URL.Path)
			}
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"status":"ok"}`))
		}))
		defer server.Close()

		api := NewAPIService(server.URL, nil)
		resp, err := api.Get(context.Background(), "/health")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if resp.StatusCode != http.StatusOK {
			t.Errorf("expected 200, got %d", resp.StatusCode)
		}
		if !resp.IsJSON {
			t.Error("expected JSON detection")
		}
	})

	t.Run("Get keeps non-JSON body raw", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("plain text"))
		}))
		defer server.Close()

		api := NewAPIService(server.URL, nil)
		resp, err := api.Get(context.Background(), "/")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if resp.IsJSON {
			t.Error("expected IsJSON to be false")
		}
		if string(resp.Body) != "plain text" {
			t.Errorf("expected raw body, got %q", resp.Body)
		}
	})

	t.Run("Post sends JSON body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				t.Errorf("expected POST, got %s", r.Method)
			}
			if ct := r.Header.Get("Content-Type"); ct != "application/json" {
				t.Errorf("expected JSON content type, got %s", ct)
			}
			w.WriteHeader(http.StatusAccepted)
			w.Write([]byte(`{"jobId":"j1"}`))
		}))
		defer server.Close()

		api := NewAPIService(server.URL, nil)
		resp, err := api.Post(context.Background(), "/api/import", []byte(`{"items":[]}`))
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if resp.StatusCode != http.StatusAccepted {
			t.Errorf("expected 202, got %d", resp.StatusCode)
		}
	})
}
