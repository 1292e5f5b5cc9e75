package config

import (
	"os"
	"path/filepath"
	"testing"
)

// Test_hydrateSections_withFeedFile verifies env expansion and per-section
// hydration without going through go-zero conf.Load.
func Test_hydrateSections_withFeedFile(t *testing.T) {
	dir := t.TempDir()

	feedYAML := []byte(`
base_url: ${HAL_BASE_URL}
http_timeout: ${HAL_HTTP_TIMEOUT}
snapshot_ttl: 30m
max_retries: 3
max_back_days: 5
top_count: 30
`)
	feedPath := filepath.Join(dir, "halfeed.yaml")
	if err := os.WriteFile(feedPath, feedYAML, 0o600); err != nil {
		t.Fatalf("write halfeed.yaml: %v", err)
	}

	t.Setenv("HAL_BASE_URL", "https://hal.example/api/prices")
	t.Setenv("HAL_HTTP_TIMEOUT", "11s")

	cfg := &Config{
		TTL: CacheTTL{Medium: 600, Long: 86400},
	}
	cfg.Feed.File = "halfeed.yaml"
	cfg.baseDir = dir

	if err := cfg.hydrateSections(); err != nil {
		t.Fatalf("hydrateSections: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	if cfg.Feed.Value == nil {
		t.Fatalf("Feed section not hydrated")
	}
	if got := cfg.Feed.Value.BaseURL; got != "https://hal.example/api/prices" {
		t.Fatalf("Feed.BaseURL not expanded, got %q", got)
	}
	if cfg.Feed.Value.HTTPTimeout.String() != "11s" {
		t.Fatalf("Feed http_timeout not parsed, got %s", cfg.Feed.Value.HTTPTimeout)
	}
	if cfg.Feed.Value.MaxBackDays != 5 || cfg.Feed.Value.TopCount != 30 {
		t.Fatalf("Feed scan bounds not parsed, got back=%d top=%d",
			cfg.Feed.Value.MaxBackDays, cfg.Feed.Value.TopCount)
	}
}
