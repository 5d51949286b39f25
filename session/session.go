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


package session

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/edusearch/catalog"
	"github.com/poiesic/edusearch/core"
	"github.com/poiesic/edusearch/search"
)

// DefaultPoolSize is the default number of concurrent fallback resolutions.
const DefaultPoolSize = 2

// Resolver resolves a query with no local matches into a fallback status.
// *fallback.Resolver implements it.
type Resolver interface {
	Resolve(ctx context.Context, query string) core.FallbackStatus
}

// Session owns one user's search state: the query, the facet filters, the
// local results and the fallback status.
//
// Every mutation recomputes the local results synchronously. When they are
// empty and the query is not blank, a fallback resolution is started on the
// session's worker pool and the status is Loading until it completes. A
// completion is applied only while its (query, filters) pair is still
// current; otherwise it is dropped.
//
// Session is safe for concurrent use.
type Session struct {
	id            string
	corpus        *catalog.Corpus
	resolver      Resolver
	pool          *ants.Pool
	poolSize      int
	lookupTimeout time.Duration
	monitor       Monitor
	logger        *slog.Logger

	baseCtx    context.Context
	baseCancel context.CancelFunc
	workers    sync.WaitGroup

	mu         sync.Mutex
	query      string
	filters    core.FacetFilters
	results    []core.Resource
	status     core.FallbackStatus
	generation uint64
	cancel     context.CancelFunc // cancels the current resolution
	settled    chan struct{}      // closed whenever status is not Loading
	closed     bool
	version    uint64 // bumped on every state change, orders notifications

	notifyMu sync.Mutex
	notified uint64 // version of the last snapshot sent to the monitor
}

// Option configures a Session.
type Option func(*Session) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// WithMonitor sets a monitor that observes state changes.
// A nil monitor disables monitoring.
func WithMonitor(monitor Monitor) Option {
	return func(s *Session) error {
		if monitor == nil {
			monitor = &noopMonitor{}
		}
		s.monitor = monitor
		return nil
	}
}

// WithPoolSize sets how many fallback resolutions may run at once.
// Default is DefaultPoolSize; values below 1 are raised to 1.
func WithPoolSize(size int) Option {
	return func(s *Session) error {
		if size < 1 {
			size = 1
		}
		s.poolSize = size
		return nil
	}
}

// WithLookupTimeout bounds each fallback resolution. Zero means no bound
// beyond what the summary service applies per request.
func WithLookupTimeout(timeout time.Duration) Option {
	return func(s *Session) error {
		if timeout < 0 {
			return errors.New("lookup timeout cannot be negative")
		}
		s.lookupTimeout = timeout
		return nil
	}
}

// New creates a session over corpus with a blank query and all filters set
// to All. Close must be called to release the worker pool.
func New(corpus *catalog.Corpus, resolver Resolver, opts ...Option) (*Session, error) {
	if corpus == nil {
		return nil, ErrCorpusRequired
	}
	if resolver == nil {
		return nil, ErrResolverRequired
	}

	s := &Session{
		id:       uuid.NewString(),
		corpus:   corpus,
		resolver: resolver,
		poolSize: DefaultPoolSize,
		monitor:  &noopMonitor{},
		logger:   slog.Default(),
		filters:  core.DefaultFilters(),
		status:   core.Idle(),
		settled:  make(chan struct{}),
	}
	close(s.settled)

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	s.logger = s.logger.With("component", "session", "session_id", s.id)

	pool, err := newPool(s.poolSize, s.logger)
	if err != nil {
		return nil, err
	}
	s.pool = pool
	s.baseCtx, s.baseCancel = context.WithCancel(context.Background())
	s.results = search.Match(s.corpus, s.query, s.filters)

	return s, nil
}

// ID returns the session's unique identifier.
func (s *Session) ID() string {
	return s.id
}

// SetQuery replaces the query text and refreshes the session.
// Setting the same text again re-runs matching and, if needed, the fallback.
func (s *Session) SetQuery(text string) {
	s.mu.Lock()
	s.query = text
	job, n := s.refreshLocked()
	s.mu.Unlock()

	s.publish(n, job)
}

// SetFilter replaces one facet selection and refreshes the session.
// Values that no resource carries are accepted and simply match nothing.
// Returns core.ErrUnknownFacet or core.ErrEmptyFacetValue without changing
// any state.
func (s *Session) SetFilter(facet core.Facet, value string) error {
	s.mu.Lock()
	filters, err := s.filters.With(facet, value)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	s.filters = filters
	job, n := s.refreshLocked()
	s.mu.Unlock()

	s.publish(n, job)
	return nil
}

// Reset sets every facet back to All and refreshes the session. The query
// is left untouched.
func (s *Session) Reset() {
	s.mu.Lock()
	s.filters = core.DefaultFilters()
	job, n := s.refreshLocked()
	s.mu.Unlock()

	s.publish(n, job)
}

// Snapshot returns a consistent copy of the current state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// AwaitFallback blocks until the fallback status is not Loading and returns
// the snapshot at that point. If ctx ends first it returns the current
// snapshot and ctx's error.
func (s *Session) AwaitFallback(ctx context.Context) (Snapshot, error) {
	for {
		s.mu.Lock()
		if s.status.State != core.FallbackLoading {
			snap := s.snapshotLocked()
			s.mu.Unlock()
			return snap, nil
		}
		settled := s.settled
		s.mu.Unlock()

		select {
		case <-ctx.Done():
			return s.Snapshot(), ctx.Err()
		case <-settled:
		}
	}
}

// Close cancels in-flight resolutions, waits for the workers and releases
// the pool. Mutations after Close still refresh local results but never
// start a lookup. Close is idempotent.
func (s *Session) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.generation++
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	if s.status.State == core.FallbackLoading {
		s.status = core.Idle()
		close(s.settled)
	}
	s.mu.Unlock()

	s.baseCancel()
	s.workers.Wait()
	s.pool.Release()
	s.logger.Debug("session closed")
	return nil
}

// resolution is one triggered fallback lookup.
type resolution struct {
	generation uint64
	key        core.ID
	query      string
	filters    core.FacetFilters
	ctx        context.Context
	cancel     context.CancelFunc
}

// notice is a snapshot tagged with the state version it was taken at.
type notice struct {
	version  uint64
	snapshot Snapshot
}

// noticeLocked bumps the state version and snapshots the new state.
// Must be called with s.mu held.
func (s *Session) noticeLocked() notice {
	s.version++
	return notice{version: s.version, snapshot: s.snapshotLocked()}
}

// refreshLocked recomputes local results and the fallback status after a
// mutation. It returns the resolution to launch, if any, and the snapshot
// to publish. Must be called with s.mu held.
func (s *Session) refreshLocked() (*resolution, notice) {
	s.generation++
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	if s.status.State == core.FallbackLoading {
		close(s.settled)
	}

	s.results = search.Match(s.corpus, s.query, s.filters)
	s.status = core.Idle()

	if len(s.results) > 0 || strings.TrimSpace(s.query) == "" || s.closed {
		return nil, s.noticeLocked()
	}

	var (
		ctx    context.Context
		cancel context.CancelFunc
	)
	if s.lookupTimeout > 0 {
		ctx, cancel = context.WithTimeout(s.baseCtx, s.lookupTimeout)
	} else {
		ctx, cancel = context.WithCancel(s.baseCtx)
	}

	job := &resolution{
		generation: s.generation,
		key:        core.RequestKey(s.query, s.filters),
		query:      s.query,
		filters:    s.filters,
		ctx:        ctx,
		cancel:     cancel,
	}
	s.cancel = cancel
	s.status = core.Loading()
	s.settled = make(chan struct{})
	s.workers.Add(1)

	s.logger.Debug("fallback triggered", "query", job.query, "filters", job.filters.String(),
		"request_key", uint64(job.key), "generation", job.generation)
	return job, s.noticeLocked()
}

// publish hands job to the pool and notifies the monitor, outside the
// lock. Submission runs on its own goroutine so a full pool never blocks
// the caller.
func (s *Session) publish(n notice, job *resolution) {
	if job != nil {
		go s.submit(job)
	}
	s.notify(n)
}

// notify sends n to the monitor unless a newer snapshot was already sent.
// Monitor calls never overlap.
func (s *Session) notify(n notice) {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()
	if n.version <= s.notified {
		return
	}
	s.notified = n.version
	s.monitor.SnapshotChanged(n.snapshot)
}

// submit waits for a free worker and runs job on it.
func (s *Session) submit(job *resolution) {
	if err := s.pool.Submit(func() { s.run(job) }); err != nil {
		s.logger.Warn("failed to submit fallback resolution", "query", job.query, "err", err)
		s.complete(job, core.NotFound())
		job.cancel()
		s.workers.Done()
	}
}

// run executes a resolution on a pool worker. A resolution superseded
// while it waited for the worker is dropped without calling the resolver.
// If the resolver panics the resolution settles as NotFound.
func (s *Session) run(job *resolution) {
	defer s.workers.Done()
	defer job.cancel()

	status := core.NotFound()
	defer func() { s.complete(job, status) }()

	if job.ctx.Err() != nil {
		return
	}
	status = s.resolver.Resolve(job.ctx, job.query)
	if status.State != core.FallbackFound && status.State != core.FallbackNotFound {
		status = core.NotFound()
	}
}

// complete applies a finished resolution if it is still current.
func (s *Session) complete(job *resolution, status core.FallbackStatus) {
	s.mu.Lock()
	current := job.generation == s.generation &&
		job.key == core.RequestKey(s.query, s.filters) &&
		s.status.State == core.FallbackLoading
	if !current {
		s.mu.Unlock()
		s.logger.Debug("discarding stale fallback result", "query", job.query,
			"request_key", uint64(job.key), "generation", job.generation)
		s.monitor.StaleResultDiscarded(job.query, job.filters)
		return
	}

	s.status = status
	s.cancel = nil
	close(s.settled)
	n := s.noticeLocked()
	s.mu.Unlock()

	s.logger.Debug("fallback applied", "query", job.query, "state", status.State.String())
	s.notify(n)
}

// snapshotLocked copies the current state. Must be called with s.mu held.
func (s *Session) snapshotLocked() Snapshot {
	results := make([]core.Resource, len(s.results))
	for i := range s.results {
		results[i] = s.results[i].Clone()
	}
	status := s.status
	if status.Summary != nil {
		summary := *status.Summary
		status.Summary = &summary
	}
	return Snapshot{
		SessionID:    s.id,
		Query:        s.query,
		Filters:      s.filters,
		LocalResults: results,
		Fallback:     status,
	}
}
