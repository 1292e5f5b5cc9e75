package config

import (
	"os"
	"path/filepath"
	"testing"

	"agropazar-api/pkg/halprice"
)

// Test_feedConfig_envExpansion verifies that the feed config expands environment
// variables correctly when loaded directly via halprice.LoadConfig.
func Test_feedConfig_envExpansion(t *testing.T) {
	dir := t.TempDir()

	feedYAML := []byte(`
base_url: ${HAL_BASE_URL}
http_timeout: ${HAL_HTTP_TIMEOUT}
snapshot_ttl: 30m
max_retries: 2
`)
	feedPath := filepath.Join(dir, "halfeed.yaml")
	if err := os.WriteFile(feedPath, feedYAML, 0o600); err != nil {
		t.Fatalf("write halfeed.yaml: %v", err)
	}

	t.Setenv("HAL_BASE_URL", "https://hal.example/api/prices")
	t.Setenv("HAL_HTTP_TIMEOUT", "7s")

	cfg, err := halprice.LoadConfig(feedPath)
	if err != nil {
		t.Fatalf("halprice.LoadConfig: %v", err)
	}
	if got := cfg.BaseURL; got != "https://hal.example/api/prices" {
		t.Fatalf("Feed.BaseURL not expanded, got %q", got)
	}
	if cfg.HTTPTimeout.String() != "7s" {
		t.Fatalf("Feed http_timeout not parsed, got %s", cfg.HTTPTimeout)
	}
	if cfg.SnapshotTTL.String() != "30m0s" {
		t.Fatalf("Feed snapshot_ttl not parsed, got %s", cfg.SnapshotTTL)
	}
}

func TestValidate_TTLBounds(t *testing.T) {
	cfg := &Config{}
	cfg.TTL.Medium = 0
	cfg.TTL.Long = 86400
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected ttl.medium validation error")
	}

	cfg.TTL.Medium = 600
	cfg.TTL.Long = 0
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected ttl.long validation error")
	}
}

func TestValidate_EnvDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.TTL.Medium = 600
	cfg.TTL.Long = 86400
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if cfg.Env != "test" {
		t.Fatalf("expected env default test, got %q", cfg.Env)
	}
	if !cfg.IsTestEnv() {
		t.Fatalf("expected IsTestEnv")
	}

	cfg.Env = "staging"
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected env validation error")
	}
}
