package halprice

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"agropazar-api/pkg/confkit"
)

// Config describes the external wholesale-market feed.
type Config struct {
	BaseURL string `yaml:"base_url"`

	HTTPTimeoutRaw string        `yaml:"http_timeout"`
	HTTPTimeout    time.Duration `yaml:"-"`
	MaxRetries     int           `yaml:"max_retries"`

	SnapshotTTLRaw string        `yaml:"snapshot_ttl"`
	SnapshotTTL    time.Duration `yaml:"-"`

	// MaxBackDays caps the backward day-scan when the feed has no bulletin
	// for recent days.
	MaxBackDays int `yaml:"max_back_days"`
	// TopCount caps the ranked snapshot.
	TopCount int `yaml:"top_count"`
}

// LoadConfig reads feed configuration from disk.
func LoadConfig(path string) (*Config, error) {
	confkit.LoadDotenvOnce()
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open feed config: %w", err)
	}
	defer file.Close()
	return LoadConfigFromReader(file)
}

// LoadConfigFromReader constructs a Config from an io.Reader.
func LoadConfigFromReader(r io.Reader) (*Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read feed config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal feed config: %w", err)
	}
	if err := cfg.normalise(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) normalise() error {
	c.BaseURL = strings.TrimSpace(os.ExpandEnv(c.BaseURL))
	c.HTTPTimeoutRaw = strings.TrimSpace(os.ExpandEnv(c.HTTPTimeoutRaw))
	c.SnapshotTTLRaw = strings.TrimSpace(os.ExpandEnv(c.SnapshotTTLRaw))

	if c.HTTPTimeoutRaw != "" {
		d, err := time.ParseDuration(c.HTTPTimeoutRaw)
		if err != nil {
			return fmt.Errorf("feed config: invalid http_timeout %q: %w", c.HTTPTimeoutRaw, err)
		}
		if d <= 0 {
			return fmt.Errorf("feed config: http_timeout must be positive, got %s", d)
		}
		c.HTTPTimeout = d
	}
	if c.SnapshotTTLRaw != "" {
		d, err := time.ParseDuration(c.SnapshotTTLRaw)
		if err != nil {
			return fmt.Errorf("feed config: invalid snapshot_ttl %q: %w", c.SnapshotTTLRaw, err)
		}
		if d <= 0 {
			return fmt.Errorf("feed config: snapshot_ttl must be positive, got %s", d)
		}
		c.SnapshotTTL = d
	}
	if c.MaxBackDays < 0 {
		return fmt.Errorf("feed config: max_back_days cannot be negative")
	}
	if c.TopCount < 0 {
		return fmt.Errorf("feed config: top_count cannot be negative")
	}
	return nil
}
