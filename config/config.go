// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/poiesic/edusearch/lookup"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override, e.g.
// EDUSEARCH_LOOKUP_BASE_URL for lookup.base_url.
const EnvPrefix = "EDUSEARCH"

// ErrInvalidConfig is returned when a loaded configuration fails validation.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the application configuration.
type Config struct {
	Log     LogConfig     `mapstructure:"log"`
	Catalog CatalogConfig `mapstructure:"catalog"`
	Lookup  LookupConfig  `mapstructure:"lookup"`
	Session SessionConfig `mapstructure:"session"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// CatalogConfig selects the resource catalog.
type CatalogConfig struct {
	// Path is a badger catalog directory. Empty means the compiled-in corpus.
	Path string `mapstructure:"path"`
}

// LookupConfig configures the encyclopedia summary client.
type LookupConfig struct {
	BaseURL   string        `mapstructure:"base_url"`
	Timeout   time.Duration `mapstructure:"timeout"`
	UserAgent string        `mapstructure:"user_agent"`
	Breaker   BreakerConfig `mapstructure:"breaker"`
}

// BreakerConfig configures the circuit breaker around summary lookups.
type BreakerConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	MaxRequests  uint32        `mapstructure:"max_requests"`
	Interval     time.Duration `mapstructure:"interval"`
	Timeout      time.Duration `mapstructure:"timeout"`
	FailureRatio float64       `mapstructure:"failure_ratio"`
	MinRequests  uint32        `mapstructure:"min_requests"`
}

// SessionConfig configures search sessions.
type SessionConfig struct {
	PoolSize int `mapstructure:"pool_size"`
}

// Load reads configuration from defaults, the YAML file at path (skipped
// when path is empty) and EDUSEARCH_* environment variables, in increasing
// order of precedence.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("unable to read config %s: %w", path, err)
		}
	}

	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	return config, nil
}

func setDefaults(v *viper.Viper) {
	lc := lookup.DefaultConfig()

	v.SetDefault("log.level", "info")

	v.SetDefault("catalog.path", "")

	v.SetDefault("lookup.base_url", lc.BaseURL)
	v.SetDefault("lookup.timeout", lc.Timeout)
	v.SetDefault("lookup.user_agent", lc.UserAgent)
	v.SetDefault("lookup.breaker.enabled", lc.Breaker.Enabled)
	v.SetDefault("lookup.breaker.max_requests", lc.Breaker.MaxRequests)
	v.SetDefault("lookup.breaker.interval", lc.Breaker.Interval)
	v.SetDefault("lookup.breaker.timeout", lc.Breaker.Timeout)
	v.SetDefault("lookup.breaker.failure_ratio", lc.Breaker.FailureRatio)
	v.SetDefault("lookup.breaker.min_requests", lc.Breaker.MinRequests)

	v.SetDefault("session.pool_size", 2)
}

// LogLevel parses Log.Level.
func (c *Config) LogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return level, fmt.Errorf("%w: log.level %q", ErrInvalidConfig, c.Log.Level)
	}
	return level, nil
}

// LookupConfig converts the lookup section to a lookup.Config.
func (c *Config) LookupConfig() *lookup.Config {
	b := c.Lookup.Breaker
	return lookup.NewConfig(
		lookup.WithBaseURL(c.Lookup.BaseURL),
		lookup.WithTimeout(c.Lookup.Timeout),
		lookup.WithUserAgent(c.Lookup.UserAgent),
		lookup.WithBreaker(lookup.BreakerConfig{
			Enabled:      b.Enabled,
			MaxRequests:  b.MaxRequests,
			Interval:     b.Interval,
			Timeout:      b.Timeout,
			FailureRatio: b.FailureRatio,
			MinRequests:  b.MinRequests,
		}),
	)
}

// Validate checks every section.
func (c *Config) Validate() error {
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	if c.Session.PoolSize < 1 {
		return fmt.Errorf("%w: session.pool_size must be at least 1", ErrInvalidConfig)
	}
	if err := c.LookupConfig().Validate(); err != nil {
		return err
	}
	return nil
}

// YAML renders the configuration in the same layout Load reads.
func (c *Config) YAML() (string, error) {
	b := c.Lookup.Breaker
	doc := map[string]any{
		"log": map[string]any{
			"level": c.Log.Level,
		},
		"catalog": map[string]any{
			"path": c.Catalog.Path,
		},
		"lookup": map[string]any{
			"base_url":   c.Lookup.BaseURL,
			"timeout":    c.Lookup.Timeout.String(),
			"user_agent": c.Lookup.UserAgent,
			"breaker": map[string]any{
				"enabled":       b.Enabled,
				"max_requests":  b.MaxRequests,
				"interval":      b.Interval.String(),
				"timeout":       b.Timeout.String(),
				"failure_ratio": b.FailureRatio,
				"min_requests":  b.MinRequests,
			},
		},
		"session": map[string]any{
			"pool_size": c.Session.PoolSize,
		},
	}
	out, err := yaml.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("unable to encode config: %w", err)
	}
	return string(out), nil
}
