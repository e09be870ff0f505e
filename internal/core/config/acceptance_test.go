package config

import (
	"os"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	tmpfile, err := os.CreateTemp("", "config-*.yaml")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Remove(tmpfile.Name()) })

	if _, err := tmpfile.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	tmpfile.Close()
	return tmpfile.Name()
}

// TestAcceptanceCriteria verifies configuration precedence and credential handling.
func TestAcceptanceCriteria(t *testing.T) {
	t.Run("AC1: Config file values are loaded", func(t *testing.T) {
		path := writeConfig(t, `filter_api:
  host: "localhost"
  port: 8080
  max_results: 50
  graph_file: "./graph.yaml"
database:
  url: "postgres://gf@db:5432/graph"
`)

		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("AC1 FAIL: LoadConfig error: %v", err)
		}
		if cfg.Host != "localhost" || cfg.Port != 8080 || cfg.MaxResults != 50 {
			t.Fatalf("AC1 FAIL: unexpected values %+v", cfg)
		}
		if cfg.GraphFile != "./graph.yaml" {
			t.Fatalf("AC1 FAIL: graph file not loaded, got %q", cfg.GraphFile)
		}
		if cfg.DatabaseURL != "postgres://gf@db:5432/graph" {
			t.Fatalf("AC1 FAIL: database url not loaded, got %q", cfg.DatabaseURL)
		}
		t.Log("AC1 PASS: Config file values are loaded")
	})

	t.Run("AC2: Config file with database password rejected with clear error", func(t *testing.T) {
		path := writeConfig(t, `database:
  url: "postgres://gf:should_be_rejected@db:5432/graph"
`)

		_, err := LoadConfig(path)
		if err == nil {
			t.Fatal("AC2 FAIL: Expected error for password in config file")
		}
		if err.Error() != "database passwords not allowed in config files (use GF_DATABASE_URL environment variable)" {
			t.Fatalf("AC2 FAIL: Wrong error message: %v", err)
		}
		t.Log("AC2 PASS: Config file with database password rejected with clear error")
	})

	t.Run("AC3: Database password accepted from environment", func(t *testing.T) {
		os.Setenv("GF_DATABASE_URL", "postgres://gf:secret@db:5432/graph")
		defer os.Unsetenv("GF_DATABASE_URL")

		cfg, err := LoadConfig("")
		if err != nil {
			t.Fatalf("AC3 FAIL: LoadConfig error: %v", err)
		}
		if cfg.DatabaseURL != "postgres://gf:secret@db:5432/graph" {
			t.Fatalf("AC3 FAIL: Expected environment URL, got %s", cfg.DatabaseURL)
		}
		t.Log("AC3 PASS: Database password accepted from environment")
	})

	t.Run("AC4: Environment overrides config file", func(t *testing.T) {
		os.Setenv("GF_FILTER_API_PORT", "8080")
		defer os.Unsetenv("GF_FILTER_API_PORT")

		path := writeConfig(t, `filter_api:
  port: 9090
`)

		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("AC4 FAIL: LoadConfig error: %v", err)
		}
		// Environment variable (8080) should override config file (9090)
		if cfg.Port != 8080 {
			t.Fatalf("AC4 FAIL: Environment should override config file. Expected 8080, got %d", cfg.Port)
		}
		t.Log("AC4 PASS: Environment variables override config file (CLI flags > env > config in viper)")
	})
}
