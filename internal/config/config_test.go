package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func isolateConfig(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("HNTERM_CONFIG", "")
}

func TestLoadDefaults(t *testing.T) {
	isolateConfig(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Remote.BaseURL != "https://hacker-news.firebaseio.com/v0" {
		t.Fatalf("unexpected base url %q", cfg.Remote.BaseURL)
	}
	if cfg.Feed.PageSize != 50 || cfg.Feed.PageStep != 5 {
		t.Fatalf("unexpected feed config: %#v", cfg.Feed)
	}
	if cfg.Input.PollInterval != 100*time.Millisecond {
		t.Fatalf("unexpected poll interval %s", cfg.Input.PollInterval)
	}
	if cfg.Remote.Timeout != 10*time.Second || cfg.Remote.MaxConcurrency != 16 {
		t.Fatalf("unexpected remote config: %#v", cfg.Remote)
	}
	if cfg != Default() {
		t.Fatalf("Load without overrides should equal Default()")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	isolateConfig(t)
	t.Setenv("HNTERM_FEED_PAGE_SIZE", "30")
	t.Setenv("HNTERM_VIEWER_COMMAND", "w3m -o confirm_qq=false")
	t.Setenv("HNTERM_INPUT_POLL_INTERVAL", "250ms")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Feed.PageSize != 30 {
		t.Fatalf("expected page size override, got %d", cfg.Feed.PageSize)
	}
	if cfg.Viewer.Command != "w3m -o confirm_qq=false" {
		t.Fatalf("expected viewer override, got %q", cfg.Viewer.Command)
	}
	if cfg.Input.PollInterval != 250*time.Millisecond {
		t.Fatalf("expected poll interval override, got %s", cfg.Input.PollInterval)
	}
}

func TestLoadFromExplicitFile(t *testing.T) {
	isolateConfig(t)
	path := filepath.Join(t.TempDir(), "hnterm.toml")
	content := `
[remote]
base_url = "http://localhost:9999/v0"
max_concurrency = 4

[log]
level = "debug"
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("HNTERM_CONFIG", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Remote.BaseURL != "http://localhost:9999/v0" || cfg.Remote.MaxConcurrency != 4 {
		t.Fatalf("file values not applied: %#v", cfg.Remote)
	}
	if cfg.Log.Level != "debug" {
		t.Fatalf("expected debug level, got %q", cfg.Log.Level)
	}
	if cfg.Feed.PageSize != 50 {
		t.Fatalf("defaults should survive partial files, got %d", cfg.Feed.PageSize)
	}
}

func TestLoadMissingExplicitFileFails(t *testing.T) {
	isolateConfig(t)
	t.Setenv("HNTERM_CONFIG", filepath.Join(t.TempDir(), "missing.toml"))

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for missing explicit config file")
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"relative base url", func(c *Config) { c.Remote.BaseURL = "/v0" }, "remote.base_url"},
		{"ftp base url", func(c *Config) { c.Remote.BaseURL = "ftp://example.com" }, "remote.base_url"},
		{"zero page size", func(c *Config) { c.Feed.PageSize = 0 }, "feed.page_size"},
		{"negative step", func(c *Config) { c.Feed.PageStep = -1 }, "feed.page_step"},
		{"zero poll", func(c *Config) { c.Input.PollInterval = 0 }, "input.poll_interval"},
		{"zero concurrency", func(c *Config) { c.Remote.MaxConcurrency = 0 }, "remote.max_concurrency"},
		{"negative rate", func(c *Config) { c.Remote.RateLimit = -2 }, "remote.rate_limit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error mentioning %q, got %v", tt.want, err)
			}
		})
	}
}
