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


package fallback

import (
	"context"
	"log/slog"

	"github.com/poiesic/edusearch/core"
	"github.com/poiesic/edusearch/lookup"
)

// Resolver turns a query with no local matches into a FallbackStatus by
// consulting a summary service.
type Resolver struct {
	service lookup.SummaryService
	monitor Monitor
	logger  *slog.Logger
}

// Option configures a Resolver.
type Option func(*Resolver) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
		return nil
	}
}

// WithMonitor sets a monitor that observes every resolution.
// A nil monitor disables monitoring.
func WithMonitor(monitor Monitor) Option {
	return func(r *Resolver) error {
		if monitor == nil {
			monitor = &noopMonitor{}
		}
		r.monitor = monitor
		return nil
	}
}

// NewResolver creates a resolver backed by service.
func NewResolver(service lookup.SummaryService, opts ...Option) (*Resolver, error) {
	if service == nil {
		return nil, ErrServiceRequired
	}

	r := &Resolver{
		service: service,
		monitor: &noopMonitor{},
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}
	r.logger = r.logger.With("component", "fallback")
	return r, nil
}

// Resolve tries each of Candidates(query) in order, one at a time, and
// returns Found with the first summary obtained. Every lookup failure is
// non-fatal and moves on to the next candidate; when all fail the result is
// NotFound. Resolve never returns Idle or Loading.
//
// A blank query is NotFound without any lookup. If ctx is done, remaining
// candidates are skipped and the result is NotFound.
func (r *Resolver) Resolve(ctx context.Context, query string) core.FallbackStatus {
	candidates := Candidates(query)
	r.monitor.Start(query, candidates)

	status := r.resolve(ctx, candidates)

	r.logger.Debug("fallback resolved", "query", query, "state", status.State.String())
	r.monitor.Finish(query, status)
	return status
}

func (r *Resolver) resolve(ctx context.Context, candidates []string) core.FallbackStatus {
	for i, candidate := range candidates {
		if err := ctx.Err(); err != nil {
			r.logger.Debug("fallback abandoned", "skipped", len(candidates)-i, "err", err)
			return core.NotFound()
		}

		summary, err := r.service.Summary(ctx, candidate)
		if err != nil {
			r.logger.Debug("fallback candidate failed", "candidate", candidate, "err", err)
			r.monitor.CandidateFailed(candidate, err)
			continue
		}
		if summary == nil {
			r.monitor.CandidateFailed(candidate, lookup.ErrMalformedPayload)
			continue
		}

		r.monitor.CandidateSucceeded(candidate, summary)
		return core.Found(*summary)
	}
	return core.NotFound()
}
