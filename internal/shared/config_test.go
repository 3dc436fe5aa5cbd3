package shared

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.Server.BaseURL != "http://localhost:8080" {
			t.Errorf("expected default base URL, got %s", config.Server.BaseURL)
		}
		if config.Client.DebounceMS != 250 {
			t.Errorf("expected debounce 250ms, got %d", config.Client.DebounceMS)
		}
		if config.Client.MinQuery != 2 {
			t.Errorf("expected min query 2, got %d", config.Client.MinQuery)
		}
		if config.Client.PollIntervalMS != 1500 {
			t.Errorf("expected poll interval 1500ms, got %d", config.Client.PollIntervalMS)
		}
		if config.Client.PageSize != 50 {
			t.Errorf("expected page size 50, got %d", config.Client.PageSize)
		}
	})

	t.Run("duration helpers", func(t *testing.T) {
		config := DefaultConfig()
		if config.Client.Debounce() != 250*time.Millisecond {
			t.Errorf("expected 250ms, got %v", config.Client.Debounce())
		}
		if config.Client.PollInterval() != 1500*time.Millisecond {
			t.Errorf("expected 1.5s, got %v", config.Client.PollInterval())
		}
		if config.Server.Timeout() != 30*time.Second {
			t.Errorf("expected 30s, got %v", config.Server.Timeout())
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		t.Run("loads valid file and keeps defaults for absent fields", func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			content := "[server]\nbase_url = \"http://backend:9000\"\n"
			if err := os.WriteFile(path, []byte(content), 0644); err != nil {
				t.Fatalf("failed to write config: %v", err)
			}

			config, err := LoadConfig(path)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if config.Server.BaseURL != "http://backend:9000" {
				t.Errorf("expected overridden base URL, got %s", config.Server.BaseURL)
			}
			if config.Client.DebounceMS != 250 {
				t.Errorf("expected default debounce to survive, got %d", config.Client.DebounceMS)
			}
		})

		t.Run("missing file", func(t *testing.T) {
			if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
				t.Fatal("expected error for missing file")
			}
		})

		t.Run("malformed file", func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "bad.toml")
			if err := os.WriteFile(path, []byte("not [valid toml"), 0644); err != nil {
				t.Fatalf("failed to write config: %v", err)
			}
			if _, err := LoadConfig(path); err == nil {
				t.Fatal("expected error for malformed file")
			}
		})
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		if err := CreateConfigFile(path); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if _, err := os.Stat(path); err != nil {
			t.Errorf("expected config file to exist: %v", err)
		}
		if err := CreateConfigFile(path); err == nil {
			t.Error("expected error when file already exists")
		}
	})
}
