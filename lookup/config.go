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


package lookup

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// DefaultBaseURL is the English Wikipedia REST summary endpoint.
const DefaultBaseURL = "https://en.wikipedia.org/api/rest_v1/page/summary"

// DefaultUserAgent identifies the client to the summary service.
const DefaultUserAgent = "edusearch/1.0 (https://github.com/poiesic/edusearch)"

// BreakerConfig configures the circuit breaker around the summary service.
type BreakerConfig struct {
	// Enabled turns the breaker on. When off, every call reaches the service.
	Enabled bool

	// MaxRequests is the number of trial calls allowed while half-open.
	MaxRequests uint32

	// Interval is the closed-state period after which failure counts reset.
	// Zero never resets.
	Interval time.Duration

	// Timeout is how long the breaker stays open before going half-open.
	Timeout time.Duration

	// FailureRatio is the share of failed calls that trips the breaker,
	// once at least MinRequests calls were counted.
	FailureRatio float64

	// MinRequests is the number of calls observed before tripping is considered.
	MinRequests uint32
}

// Config holds configuration for summary service clients.
type Config struct {
	// BaseURL is the summary endpoint; the escaped key is appended as the
	// last path segment.
	BaseURL string

	// Timeout bounds a single HTTP request.
	Timeout time.Duration

	// UserAgent is sent with every request.
	UserAgent string

	// Breaker configures the circuit breaker.
	Breaker BreakerConfig
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithBaseURL sets the summary endpoint.
func WithBaseURL(baseURL string) ConfigOption {
	return func(c *Config) {
		c.BaseURL = baseURL
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(timeout time.Duration) ConfigOption {
	return func(c *Config) {
		c.Timeout = timeout
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(userAgent string) ConfigOption {
	return func(c *Config) {
		c.UserAgent = userAgent
	}
}

// WithBreaker replaces the circuit breaker settings.
func WithBreaker(breaker BreakerConfig) ConfigOption {
	return func(c *Config) {
		c.Breaker = breaker
	}
}

// DefaultBreakerConfig returns breaker settings that trip after 60% of at
// least three calls fail and retry after 30 seconds.
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		Enabled:      true,
		MaxRequests:  1,
		Interval:     time.Minute,
		Timeout:      30 * time.Second,
		FailureRatio: 0.6,
		MinRequests:  3,
	}
}

// DefaultConfig returns a Config pointing at English Wikipedia.
func DefaultConfig() *Config {
	return &Config{
		BaseURL:   DefaultBaseURL,
		Timeout:   10 * time.Second,
		UserAgent: DefaultUserAgent,
		Breaker:   DefaultBreakerConfig(),
	}
}

// NewConfig creates a Config with the default values and applies the provided options.
//
// Example:
//
//	cfg := NewConfig(
//	    WithBaseURL("https://de.wikipedia.org/api/rest_v1/page/summary"),
//	    WithTimeout(5 * time.Second),
//	)
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Normalize trims whitespace and trailing slashes from BaseURL.
func (c *Config) Normalize() {
	c.BaseURL = strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	c.UserAgent = strings.TrimSpace(c.UserAgent)
}

// Validate checks that the configuration is valid and complete.
// It automatically normalizes the configuration before validation.
func (c *Config) Validate() error {
	c.Normalize()

	if c.BaseURL == "" {
		return fmt.Errorf("%w: BaseURL is required", ErrInvalidConfig)
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("%w: BaseURL: %w", ErrInvalidConfig, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: BaseURL must be http or https, got %q", ErrInvalidConfig, u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("%w: BaseURL has no host", ErrInvalidConfig)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("%w: Timeout must be positive", ErrInvalidConfig)
	}
	if c.UserAgent == "" {
		return fmt.Errorf("%w: UserAgent is required", ErrInvalidConfig)
	}
	if c.Breaker.Enabled {
		if c.Breaker.FailureRatio <= 0 || c.Breaker.FailureRatio > 1 {
			return fmt.Errorf("%w: Breaker.FailureRatio must be in (0, 1]", ErrInvalidConfig)
		}
		if c.Breaker.MinRequests == 0 {
			return fmt.Errorf("%w: Breaker.MinRequests must be positive", ErrInvalidConfig)
		}
		if c.Breaker.Timeout <= 0 {
			return fmt.Errorf("%w: Breaker.Timeout must be positive", ErrInvalidConfig)
		}
		if c.Breaker.Interval < 0 {
			return fmt.Errorf("%w: Breaker.Interval cannot be negative", ErrInvalidConfig)
		}
	}
	return nil
}
