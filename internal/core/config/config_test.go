package config

import (
	"os"
	"testing"
	"time"
)

func TestLoadConfig(t *testing.T) {
	// Clean environment
	os.Unsetenv("GF_FILTER_API_HOST")
	os.Unsetenv("GF_FILTER_API_PORT")
	os.Unsetenv("GF_DATABASE_URL")

	t.Run("defaults", func(t *testing.T) {
		cfg, err := LoadConfig("")
		if err != nil {
			t.Fatalf("LoadConfig failed: %v", err)
		}
		if cfg.Host != "0.0.0.0" {
			t.Errorf("expected host 0.0.0.0, got %s", cfg.Host)
		}
		if cfg.Port != 50061 {
			t.Errorf("expected port 50061, got %d", cfg.Port)
		}
		if cfg.MaxConnections != 1000 {
			t.Errorf("expected max_connections 1000, got %d", cfg.MaxConnections)
		}
		if cfg.RequestTimeout != 30*time.Second {
			t.Errorf("expected timeout 30s, got %v", cfg.RequestTimeout)
		}
		if cfg.MaxResults != 10000 {
			t.Errorf("expected max_results 10000, got %d", cfg.MaxResults)
		}
		if cfg.DataDir != "./data" {
			t.Errorf("expected data_dir ./data, got %s", cfg.DataDir)
		}
		if cfg.DatabaseURL != "sqlite://./data/graphfilter.db" {
			t.Errorf("expected sqlite default database, got %s", cfg.DatabaseURL)
		}
		if cfg.GraphFile != "" {
			t.Errorf("expected no graph file, got %s", cfg.GraphFile)
		}
		if cfg.LogLevel != "info" || cfg.LogFormat != "json" {
			t.Errorf("expected info/json logging, got %s/%s", cfg.LogLevel, cfg.LogFormat)
		}
	})

	t.Run("environment override", func(t *testing.T) {
		os.Setenv("GF_FILTER_API_PORT", "9999")
		os.Setenv("GF_FILTER_API_HOST", "127.0.0.1")
		os.Setenv("GF_LOG_FORMAT", "text")
		defer os.Unsetenv("GF_FILTER_API_PORT")
		defer os.Unsetenv("GF_FILTER_API_HOST")
		defer os.Unsetenv("GF_LOG_FORMAT")

		cfg, err := LoadConfig("")
		if err != nil {
			t.Fatalf("LoadConfig failed: %v", err)
		}
		if cfg.Port != 9999 {
			t.Errorf("expected port 9999, got %d", cfg.Port)
		}
		if cfg.Host != "127.0.0.1" {
			t.Errorf("expected host 127.0.0.1, got %s", cfg.Host)
		}
		if cfg.LogFormat != "text" {
			t.Errorf("expected log format text, got %s", cfg.LogFormat)
		}
		if cfg.Addr() != "127.0.0.1:9999" {
			t.Errorf("expected addr 127.0.0.1:9999, got %s", cfg.Addr())
		}
	})

	t.Run("invalid port range", func(t *testing.T) {
		os.Setenv("GF_FILTER_API_PORT", "70000")
		defer os.Unsetenv("GF_FILTER_API_PORT")

		_, err := LoadConfig("")
		if err == nil {
			t.Error("expected error for port > 65535")
		}
	})

	t.Run("invalid negative values", func(t *testing.T) {
		os.Setenv("GF_FILTER_API_MAX_RESULTS", "-1")
		defer os.Unsetenv("GF_FILTER_API_MAX_RESULTS")

		_, err := LoadConfig("")
		if err == nil {
			t.Error("expected error for negative max_results")
		}
	})

	t.Run("invalid log level", func(t *testing.T) {
		os.Setenv("GF_LOG_LEVEL", "verbose")
		defer os.Unsetenv("GF_LOG_LEVEL")

		_, err := LoadConfig("")
		if err == nil {
			t.Error("expected error for unknown log level")
		}
	})

	t.Run("missing config file", func(t *testing.T) {
		_, err := LoadConfig("/nonexistent/graphfilter.yaml")
		if err == nil {
			t.Error("expected error for missing config file")
		}
	})
}

func TestRedactedDatabaseURL(t *testing.T) {
	cfg := &FilterAPIConfig{DatabaseURL: "postgres://gf:hunter2@db:5432/graph?sslmode=disable"}
	got := cfg.RedactedDatabaseURL()
	if got != "postgres://gf:xxxxx@db:5432/graph?sslmode=disable" {
		t.Errorf("unexpected redacted URL: %s", got)
	}

	cfg.DatabaseURL = "sqlite://./data/graphfilter.db"
	if got := cfg.RedactedDatabaseURL(); got != cfg.DatabaseURL {
		t.Errorf("expected sqlite URL unchanged, got %s", got)
	}
}
