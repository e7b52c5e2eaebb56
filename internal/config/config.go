// Package config loads hnterm settings from an optional TOML file and
// HNTERM_* environment variables.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Remote RemoteConfig
	Feed   FeedConfig
	Input  InputConfig
	Viewer ViewerConfig
	Log    LogConfig
}

// RemoteConfig holds API client settings.
type RemoteConfig struct {
	BaseURL        string        `mapstructure:"base_url"`
	Timeout        time.Duration `mapstructure:"timeout"`
	MaxConcurrency int           `mapstructure:"max_concurrency"`
	RateLimit      float64       `mapstructure:"rate_limit"`
	UserAgent      string        `mapstructure:"user_agent"`
}

// FeedConfig controls pagination.
type FeedConfig struct {
	PageSize int `mapstructure:"page_size"`
	PageStep int `mapstructure:"page_step"`
}

// InputConfig controls the key watcher.
type InputConfig struct {
	PollInterval time.Duration `mapstructure:"poll_interval"`
}

// ViewerConfig names the external program used to open links.
type ViewerConfig struct {
	Command string `mapstructure:"command"`
}

// LogConfig controls the log file.
type LogConfig struct {
	Path  string `mapstructure:"path"`
	Level string `mapstructure:"level"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("remote.base_url", "https://hacker-news.firebaseio.com/v0")
	v.SetDefault("remote.timeout", "10s")
	v.SetDefault("remote.max_concurrency", 16)
	v.SetDefault("remote.rate_limit", 0)
	v.SetDefault("remote.user_agent", "hnterm")
	v.SetDefault("feed.page_size", 50)
	v.SetDefault("feed.page_step", 5)
	v.SetDefault("input.poll_interval", "100ms")
	v.SetDefault("viewer.command", "")
	v.SetDefault("log.path", "")
	v.SetDefault("log.level", "info")
}

// Default returns the built-in configuration without reading files or env.
func Default() Config {
	v := viper.New()
	setDefaults(v)
	var c Config
	_ = v.Unmarshal(&c)
	return c
}

// Load reads configuration from file and env. Env var overrides use prefix HNTERM_.
func Load() (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType("toml")

	cfgPath := os.Getenv("HNTERM_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "hnterm"))
		}
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("HNTERM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		// An explicit HNTERM_CONFIG must exist; the default location is optional.
		if cfgPath != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate rejects settings the application cannot run with.
func (c Config) Validate() error {
	parsed, err := url.Parse(c.Remote.BaseURL)
	if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return fmt.Errorf("invalid remote.base_url %q: must be an absolute http(s) URL", c.Remote.BaseURL)
	}
	if c.Remote.Timeout <= 0 {
		return fmt.Errorf("invalid remote.timeout %s: must be positive", c.Remote.Timeout)
	}
	if c.Remote.MaxConcurrency <= 0 {
		return fmt.Errorf("invalid remote.max_concurrency %d: must be positive", c.Remote.MaxConcurrency)
	}
	if c.Remote.RateLimit < 0 {
		return fmt.Errorf("invalid remote.rate_limit %g: must not be negative", c.Remote.RateLimit)
	}
	if c.Feed.PageSize <= 0 {
		return fmt.Errorf("invalid feed.page_size %d: must be positive", c.Feed.PageSize)
	}
	if c.Feed.PageStep <= 0 {
		return fmt.Errorf("invalid feed.page_step %d: must be positive", c.Feed.PageStep)
	}
	if c.Input.PollInterval <= 0 {
		return fmt.Errorf("invalid input.poll_interval %s: must be positive", c.Input.PollInterval)
	}
	return nil
}
