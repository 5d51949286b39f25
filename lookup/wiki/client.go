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


package wiki

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"

	"github.com/poiesic/edusearch/core"
	"github.com/poiesic/edusearch/lookup"
	"github.com/sony/gobreaker"
	"golang.org/x/sync/singleflight"
)

// maxBodySize caps how much of a response body is read.
const maxBodySize = 1 << 20

// Client implements lookup.SummaryService against the Wikipedia REST
// page summary API.
type Client struct {
	config  *lookup.Config
	http    *http.Client
	breaker *gobreaker.CircuitBreaker // nil when disabled
	flight  singleflight.Group
	closed  atomic.Bool
	logger  *slog.Logger
}

var _ lookup.SummaryService = (*Client)(nil)

// Option configures a Client.
type Option func(*Client) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) error {
		if logger == nil {
			logger = slog.Default()
		}
		c.logger = logger
		return nil
	}
}

// WithHTTPClient replaces the HTTP client. The client's own Timeout is left
// as is; the configured request timeout still applies through the context.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) error {
		if client == nil {
			return errors.New("http client cannot be nil")
		}
		c.http = client
		return nil
	}
}

// NewClient creates a summary client. The config is validated and
// normalized before use.
//
// Returns lookup.SummaryService interface to enforce abstraction.
func NewClient(config *lookup.Config, opts ...Option) (lookup.SummaryService, error) {
	return newClient(config, opts...)
}

// newClient is an internal constructor that returns the concrete type.
func newClient(config *lookup.Config, opts ...Option) (*Client, error) {
	if config == nil {
		config = lookup.DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	c := &Client{
		config: config,
		http:   &http.Client{Timeout: config.Timeout},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	c.logger = c.logger.With("component", "wiki-client")

	if config.Breaker.Enabled {
		c.breaker = gobreaker.NewCircuitBreaker(c.breakerSettings())
	}
	return c, nil
}

func (c *Client) breakerSettings() gobreaker.Settings {
	bc := c.config.Breaker
	return gobreaker.Settings{
		Name:        "wiki-summary",
		MaxRequests: bc.MaxRequests,
		Interval:    bc.Interval,
		Timeout:     bc.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < bc.MinRequests {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return failureRatio >= bc.FailureRatio
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			level := slog.LevelInfo
			if to == gobreaker.StateOpen {
				level = slog.LevelWarn
			}
			c.logger.Log(context.Background(), level, "circuit breaker state changed",
				"breaker", name, "from", from.String(), "to", to.String())
		},
	}
}

// Summary fetches the summary of the article named by key.
//
// Concurrent calls for the same key share one HTTP request. Each caller
// still returns as soon as its own ctx is done; the shared request runs to
// completion (bounded by the configured timeout) for the remaining callers.
func (c *Client) Summary(ctx context.Context, key string) (*core.FallbackSummary, error) {
	if c.closed.Load() {
		return nil, lookup.ErrClosed
	}
	if strings.TrimSpace(key) == "" {
		return nil, lookup.ErrEmptyKey
	}

	detached := context.WithoutCancel(ctx)
	ch := c.flight.DoChan(key, func() (any, error) {
		fetchCtx, cancel := context.WithTimeout(detached, c.config.Timeout)
		defer cancel()
		return c.guardedFetch(fetchCtx, key)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		summary := *res.Val.(*core.FallbackSummary)
		return &summary, nil
	}
}

// outcome carries a failure the breaker should not count.
type outcome struct {
	summary *core.FallbackSummary
	err     error
}

// guardedFetch runs fetch through the circuit breaker. Only transport
// errors, 429 and 5xx responses count as breaker failures; a 404 or a
// disambiguation page means the service is healthy.
func (c *Client) guardedFetch(ctx context.Context, key string) (*core.FallbackSummary, error) {
	if c.breaker == nil {
		summary, _, err := c.fetch(ctx, key)
		return summary, err
	}

	v, err := c.breaker.Execute(func() (interface{}, error) {
		summary, transient, err := c.fetch(ctx, key)
		if err != nil && !transient {
			return outcome{err: err}, nil
		}
		return outcome{summary: summary}, err
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			c.logger.Debug("lookup rejected by circuit breaker", "key", key)
			return nil, fmt.Errorf("%w: %w", lookup.ErrServiceUnavailable, err)
		}
		return nil, err
	}
	out := v.(outcome)
	return out.summary, out.err
}

// fetch performs one HTTP request. transient reports whether a failure
// indicates an unhealthy service rather than a missing article.
func (c *Client) fetch(ctx context.Context, key string) (summary *core.FallbackSummary, transient bool, err error) {
	endpoint := c.config.BaseURL + "/" + url.PathEscape(key)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, false, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.config.UserAgent)

	c.logger.Debug("fetching summary", "key", key)
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug("summary request failed", "key", key, "err", err)
		return nil, true, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, true, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		transient = resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500
		c.logger.Debug("summary request returned non-2xx", "key", key, "status", resp.StatusCode)
		return nil, transient, fmt.Errorf("%w: %d", lookup.ErrUnexpectedStatus, resp.StatusCode)
	}

	page, err := lookup.DecodePage(body)
	if err != nil {
		return nil, false, err
	}
	summary, err = page.Summary()
	if err != nil {
		return nil, false, err
	}
	return summary, false, nil
}

// Close marks the client closed and drops idle connections.
func (c *Client) Close() error {
	if c.closed.Swap(true) {
		return nil
	}
	c.logger.Debug("closing wiki client")
	c.http.CloseIdleConnections()
	return nil
}
