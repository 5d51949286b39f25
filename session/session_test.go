package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/poiesic/edusearch/catalog"
	"github.com/poiesic/edusearch/core"
	"github.com/poiesic/edusearch/fallback"
	"github.com/poiesic/edusearch/lookup/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingMonitor struct {
	mu        sync.Mutex
	snapshots []Snapshot
	stale     []string
}

func (m *recordingMonitor) SnapshotChanged(snapshot Snapshot) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snapshots = append(m.snapshots, snapshot)
}

func (m *recordingMonitor) StaleResultDiscarded(query string, _ core.FacetFilters) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stale = append(m.stale, query)
}

func (m *recordingMonitor) staleQueries() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.stale...)
}

func (m *recordingMonitor) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.snapshots)
}

type resolverFunc func(ctx context.Context, query string) core.FallbackStatus

func (f resolverFunc) Resolve(ctx context.Context, query string) core.FallbackStatus {
	return f(ctx, query)
}

func newTestSession(t *testing.T, svc *mock.MockService, opts ...Option) *Session {
	t.Helper()
	resolver, err := fallback.NewResolver(svc)
	require.NoError(t, err)
	s, err := New(catalog.Default(), resolver, opts...)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func await(t *testing.T, s *Session) Snapshot {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	snap, err := s.AwaitFallback(ctx)
	require.NoError(t, err)
	return snap
}

func resultIDs(snap Snapshot) []core.ID {
	ids := make([]core.ID, 0, len(snap.LocalResults))
	for _, r := range snap.LocalResults {
		ids = append(ids, r.Id)
	}
	return ids
}

func quantumService() *mock.MockService {
	return mock.NewMockServiceWith(map[string]core.FallbackSummary{
		"Quantum Computing": mock.Article("Quantum computing", "A quantum computer exploits quantum mechanics."),
		"Arduino":           mock.Article("Arduino", "Arduino is an open-source hardware company."),
	})
}

func TestNew(t *testing.T) {
	resolver, err := fallback.NewResolver(mock.NewMockService())
	require.NoError(t, err)

	_, err = New(nil, resolver)
	assert.ErrorIs(t, err, ErrCorpusRequired)

	_, err = New(catalog.Default(), nil)
	assert.ErrorIs(t, err, ErrResolverRequired)

	_, err = New(catalog.Default(), resolver, WithLookupTimeout(-time.Second))
	assert.Error(t, err)
}

func TestSession_InitialState(t *testing.T) {
	s := newTestSession(t, mock.NewMockService(), WithPoolSize(0), WithLogger(nil), WithMonitor(nil))

	snap := s.Snapshot()
	assert.NotEmpty(t, snap.SessionID)
	assert.Equal(t, s.ID(), snap.SessionID)
	assert.Equal(t, "", snap.Query)
	assert.Equal(t, core.DefaultFilters(), snap.Filters)
	assert.Equal(t, []core.ID{1, 2, 3, 4, 5, 6}, resultIDs(snap))
	assert.Equal(t, core.FallbackIdle, snap.Fallback.State)
}

func TestSession_LocalMatchStaysIdle(t *testing.T) {
	svc := quantumService()
	s := newTestSession(t, svc)

	s.SetQuery("Arduino")
	snap := s.Snapshot()

	assert.Equal(t, []core.ID{1}, resultIDs(snap))
	assert.Equal(t, "Introduction to Arduino UNO", snap.LocalResults[0].Title)
	assert.Equal(t, core.FallbackIdle, snap.Fallback.State)
	assert.Zero(t, svc.CallCount())
}

func TestSession_FallbackFound(t *testing.T) {
	svc := quantumService()
	s := newTestSession(t, svc)

	s.SetQuery("Quantum Computing")
	assert.Empty(t, s.Snapshot().LocalResults)

	snap := await(t, s)
	require.Equal(t, core.FallbackFound, snap.Fallback.State)
	assert.Equal(t, "Quantum computing", snap.Fallback.Summary.Title)
	assert.Equal(t, "https://en.wikipedia.org/wiki/Quantum_computing", snap.Fallback.Summary.PageURL)
	assert.Equal(t, []string{"Quantum Computing"}, svc.Keys())
}

func TestSession_FallbackNotFound(t *testing.T) {
	svc := mock.NewMockService()
	s := newTestSession(t, svc)

	s.SetQuery("zzzNoSuchTopic")
	snap := await(t, s)

	assert.Empty(t, snap.LocalResults)
	assert.Equal(t, core.FallbackNotFound, snap.Fallback.State)
	assert.Nil(t, snap.Fallback.Summary)
	assert.Equal(t, []string{"zzzNoSuchTopic", "zzzNoSuchTopic", "zzzNoSuchTopic"}, svc.Keys())
}

func TestSession_LoadingIsImmediate(t *testing.T) {
	release := make(chan struct{})
	svc := mock.NewMockService()
	svc.SummaryFunc = func(ctx context.Context, key string) (*core.FallbackSummary, error) {
		select {
		case <-release:
		case <-ctx.Done():
		}
		return nil, ctx.Err()
	}
	s := newTestSession(t, svc)
	defer close(release)

	s.SetQuery("Quantum Computing")
	snap := s.Snapshot()
	assert.Equal(t, core.FallbackLoading, snap.Fallback.State)
	assert.Nil(t, snap.Fallback.Summary)
}

func TestSession_LocalResultsClearFallback(t *testing.T) {
	svc := quantumService()
	s := newTestSession(t, svc)

	s.SetQuery("Quantum Computing")
	require.Equal(t, core.FallbackFound, await(t, s).Fallback.State)

	s.SetQuery("IoT")
	snap := s.Snapshot()
	assert.NotEmpty(t, snap.LocalResults)
	assert.Equal(t, core.FallbackIdle, snap.Fallback.State)
	assert.Nil(t, snap.Fallback.Summary)
}

func TestSession_StaleCompletionDiscarded(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{}, 1)
	svc := mock.NewMockService()
	svc.SummaryFunc = func(ctx context.Context, key string) (*core.FallbackSummary, error) {
		if key == "zzzFirst" {
			started <- struct{}{}
			<-release
			s := mock.Article("First", "should never be shown")
			return &s, nil
		}
		s := mock.Article("Quantum computing", "current")
		return &s, nil
	}
	monitor := &recordingMonitor{}
	s := newTestSession(t, svc, WithMonitor(monitor))

	s.SetQuery("zzzFirst")
	<-started

	s.SetQuery("Arduino")
	snap := s.Snapshot()
	assert.Equal(t, core.FallbackIdle, snap.Fallback.State)

	close(release)
	require.Eventually(t, func() bool {
		return len(monitor.staleQueries()) == 1
	}, 5*time.Second, 5*time.Millisecond)

	snap = s.Snapshot()
	assert.Equal(t, "Arduino", snap.Query)
	assert.Equal(t, []core.ID{1}, resultIDs(snap))
	assert.Equal(t, core.FallbackIdle, snap.Fallback.State)
	assert.Nil(t, snap.Fallback.Summary)
	assert.Equal(t, []string{"zzzFirst"}, monitor.staleQueries())
}

func TestSession_StaleCompletionDoesNotOverwriteNewerFallback(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{}, 1)
	svc := mock.NewMockService()
	svc.SummaryFunc = func(ctx context.Context, key string) (*core.FallbackSummary, error) {
		if key == "zzzFirst" {
			started <- struct{}{}
			<-release
			s := mock.Article("First", "stale")
			return &s, nil
		}
		if key == "Quantum Computing" {
			s := mock.Article("Quantum computing", "current")
			return &s, nil
		}
		return nil, assert.AnError
	}
	monitor := &recordingMonitor{}
	s := newTestSession(t, svc, WithMonitor(monitor), WithPoolSize(2))

	s.SetQuery("zzzFirst")
	<-started
	s.SetQuery("Quantum Computing")

	snap := await(t, s)
	require.Equal(t, core.FallbackFound, snap.Fallback.State)
	assert.Equal(t, "Quantum computing", snap.Fallback.Summary.Title)

	close(release)
	require.Eventually(t, func() bool {
		return len(monitor.staleQueries()) == 1
	}, 5*time.Second, 5*time.Millisecond)

	snap = s.Snapshot()
	assert.Equal(t, "Quantum computing", snap.Fallback.Summary.Title)
}

func TestSession_SupersededResolutionIsCancelled(t *testing.T) {
	cancelled := make(chan string, 4)
	started := make(chan struct{}, 1)
	svc := mock.NewMockService()
	svc.SummaryFunc = func(ctx context.Context, key string) (*core.FallbackSummary, error) {
		if key == "zzzFirst" {
			started <- struct{}{}
			<-ctx.Done()
			cancelled <- key
			return nil, ctx.Err()
		}
		return nil, assert.AnError
	}
	s := newTestSession(t, svc)

	s.SetQuery("zzzFirst")
	<-started
	s.SetQuery("Arduino")

	select {
	case key := <-cancelled:
		assert.Equal(t, "zzzFirst", key)
	case <-time.After(5 * time.Second):
		t.Fatal("superseded resolution was not cancelled")
	}
}

func TestSession_SetQueryIdempotent(t *testing.T) {
	s := newTestSession(t, mock.NewMockService())

	s.SetQuery("sensors")
	once := s.Snapshot()
	s.SetQuery("sensors")
	twice := s.Snapshot()

	assert.Equal(t, once.LocalResults, twice.LocalResults)
	assert.Equal(t, once.Fallback, twice.Fallback)
	assert.Equal(t, []core.ID{2, 5}, resultIDs(twice))
}

func TestSession_SameQueryRetriggers(t *testing.T) {
	svc := mock.NewMockService()
	s := newTestSession(t, svc)

	s.SetQuery("zzzNoSuchTopic")
	require.Equal(t, core.FallbackNotFound, await(t, s).Fallback.State)
	s.SetQuery("zzzNoSuchTopic")
	require.Equal(t, core.FallbackNotFound, await(t, s).Fallback.State)

	assert.Equal(t, 6, svc.CallCount())
}

func TestSession_SetFilter(t *testing.T) {
	svc := quantumService()
	s := newTestSession(t, svc)

	require.NoError(t, s.SetFilter(core.FacetCategory, "IoT"))
	snap := s.Snapshot()
	assert.Equal(t, []core.ID{2, 3, 5}, resultIDs(snap))
	assert.Equal(t, core.FallbackIdle, snap.Fallback.State)

	require.NoError(t, s.SetFilter(core.FacetLevel, "Advanced"))
	assert.Equal(t, []core.ID{3, 5}, resultIDs(s.Snapshot()))

	assert.Zero(t, svc.CallCount(), "blank query never triggers a lookup")
}

func TestSession_SetFilterErrorsLeaveStateUnchanged(t *testing.T) {
	monitor := &recordingMonitor{}
	s := newTestSession(t, mock.NewMockService(), WithMonitor(monitor))
	require.NoError(t, s.SetFilter(core.FacetType, "Project"))
	before := s.Snapshot()
	changes := monitor.count()

	err := s.SetFilter(core.Facet("color"), "red")
	assert.ErrorIs(t, err, core.ErrUnknownFacet)

	err = s.SetFilter(core.FacetLevel, "")
	assert.ErrorIs(t, err, core.ErrEmptyFacetValue)

	assert.Equal(t, before, s.Snapshot())
	assert.Equal(t, changes, monitor.count())
}

func TestSession_FilterEmptiesResultsTriggersFallback(t *testing.T) {
	svc := quantumService()
	s := newTestSession(t, svc)

	s.SetQuery("Arduino")
	require.NoError(t, s.SetFilter(core.FacetCategory, "IoT"))

	snap := await(t, s)
	assert.Empty(t, snap.LocalResults)
	require.Equal(t, core.FallbackFound, snap.Fallback.State)
	assert.Equal(t, "Arduino", snap.Fallback.Summary.Title)
	assert.Equal(t, []string{"Arduino"}, svc.Keys())
}

func TestSession_UnobservedFacetValueWithBlankQuery(t *testing.T) {
	svc := mock.NewMockService()
	s := newTestSession(t, svc)

	require.NoError(t, s.SetFilter(core.FacetType, "Hardware"))
	snap := s.Snapshot()

	assert.Empty(t, snap.LocalResults)
	assert.Equal(t, core.FallbackIdle, snap.Fallback.State)
	assert.Zero(t, svc.CallCount())
}

func TestSession_Reset(t *testing.T) {
	s := newTestSession(t, quantumService())

	s.SetQuery("Arduino")
	require.NoError(t, s.SetFilter(core.FacetCategory, "IoT"))
	await(t, s)

	s.Reset()
	snap := s.Snapshot()
	assert.Equal(t, "Arduino", snap.Query)
	assert.Equal(t, core.DefaultFilters(), snap.Filters)
	assert.Equal(t, []core.ID{1}, resultIDs(snap))
	assert.Equal(t, core.FallbackIdle, snap.Fallback.State)
}

func TestSession_SnapshotIsACopy(t *testing.T) {
	s := newTestSession(t, quantumService())

	s.SetQuery("Quantum Computing")
	snap := await(t, s)
	snap.Fallback.Summary.Title = "mutated"

	s.SetQuery("Arduino")
	local := s.Snapshot()
	local.LocalResults[0].Title = "mutated"
	local.LocalResults[0].Tags[0] = "mutated"

	again := s.Snapshot()
	assert.Equal(t, "Introduction to Arduino UNO", again.LocalResults[0].Title)
	assert.Equal(t, "Arduino", again.LocalResults[0].Tags[0])
}

func TestSession_NonEmptyResultsImplyIdle(t *testing.T) {
	s := newTestSession(t, quantumService())
	queries := []string{"Arduino", "Quantum Computing", "", "iot", "zzz", "final year", "Quantum Computing", "mqtt"}

	for _, q := range queries {
		s.SetQuery(q)
		snap := s.Snapshot()
		if snap.HasLocalResults() {
			assert.Equal(t, core.FallbackIdle, snap.Fallback.State, "query %q", q)
		}
		snap = await(t, s)
		if snap.HasLocalResults() {
			assert.Equal(t, core.FallbackIdle, snap.Fallback.State, "query %q", q)
		}
	}
}

func TestSession_MonitorSeesEveryChange(t *testing.T) {
	monitor := &recordingMonitor{}
	s := newTestSession(t, quantumService(), WithMonitor(monitor))

	s.SetQuery("Arduino")
	s.SetQuery("Quantum Computing")
	await(t, s)

	require.Eventually(t, func() bool { return monitor.count() == 3 }, time.Second, 5*time.Millisecond)
	monitor.mu.Lock()
	defer monitor.mu.Unlock()
	assert.Equal(t, core.FallbackIdle, monitor.snapshots[0].Fallback.State)
	assert.Equal(t, core.FallbackLoading, monitor.snapshots[1].Fallback.State)
	assert.Equal(t, core.FallbackFound, monitor.snapshots[2].Fallback.State)
}

func TestSession_AwaitFallbackContext(t *testing.T) {
	release := make(chan struct{})
	svc := mock.NewMockService()
	svc.SummaryFunc = func(ctx context.Context, key string) (*core.FallbackSummary, error) {
		select {
		case <-release:
		case <-ctx.Done():
		}
		return nil, assert.AnError
	}
	s := newTestSession(t, svc)
	defer close(release)

	s.SetQuery("zzzNoSuchTopic")

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	snap, err := s.AwaitFallback(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, core.FallbackLoading, snap.Fallback.State)
}

func TestSession_LookupTimeout(t *testing.T) {
	svc := mock.NewMockService()
	svc.SummaryFunc = func(ctx context.Context, key string) (*core.FallbackSummary, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	s := newTestSession(t, svc, WithLookupTimeout(20*time.Millisecond))

	s.SetQuery("zzzNoSuchTopic")
	snap := await(t, s)

	assert.Equal(t, core.FallbackNotFound, snap.Fallback.State)
	assert.LessOrEqual(t, svc.CallCount(), 1, "remaining candidates are skipped once the deadline passes")
}

func TestSession_ResolverPanicSettlesNotFound(t *testing.T) {
	resolver := resolverFunc(func(ctx context.Context, query string) core.FallbackStatus {
		panic("boom")
	})
	s, err := New(catalog.Default(), resolver)
	require.NoError(t, err)
	defer s.Close()

	s.SetQuery("zzzNoSuchTopic")
	snap := await(t, s)
	assert.Equal(t, core.FallbackNotFound, snap.Fallback.State)
}

func TestSession_MisbehavingResolverCoerced(t *testing.T) {
	resolver := resolverFunc(func(ctx context.Context, query string) core.FallbackStatus {
		return core.Loading()
	})
	s, err := New(catalog.Default(), resolver)
	require.NoError(t, err)
	defer s.Close()

	s.SetQuery("zzzNoSuchTopic")
	snap := await(t, s)
	assert.Equal(t, core.FallbackNotFound, snap.Fallback.State)
}

func TestSession_Close(t *testing.T) {
	svc := mock.NewMockService()
	s := newTestSession(t, svc)

	require.NoError(t, s.Close())
	require.NoError(t, s.Close())

	s.SetQuery("zzzNoSuchTopic")
	snap := s.Snapshot()
	assert.Empty(t, snap.LocalResults)
	assert.Equal(t, core.FallbackIdle, snap.Fallback.State)

	s.SetQuery("Arduino")
	assert.Equal(t, []core.ID{1}, resultIDs(s.Snapshot()))
	assert.Zero(t, svc.CallCount())
}

func TestSession_CloseWhileLoading(t *testing.T) {
	svc := mock.NewMockService()
	svc.SummaryFunc = func(ctx context.Context, key string) (*core.FallbackSummary, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	monitor := &recordingMonitor{}
	s := newTestSession(t, svc, WithMonitor(monitor))

	s.SetQuery("zzzNoSuchTopic")
	require.Equal(t, core.FallbackLoading, s.Snapshot().Fallback.State)

	require.NoError(t, s.Close())
	snap := s.Snapshot()
	assert.Equal(t, core.FallbackIdle, snap.Fallback.State)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	_, err := s.AwaitFallback(ctx)
	assert.NoError(t, err)
	assert.Equal(t, []string{"zzzNoSuchTopic"}, monitor.staleQueries())
}

func TestSession_MutationsDoNotWaitForBusyPool(t *testing.T) {
	release := make(chan struct{})
	var once sync.Once
	unblock := func() { once.Do(func() { close(release) }) }

	started := make(chan string, 3)
	resolver := resolverFunc(func(_ context.Context, query string) core.FallbackStatus {
		started <- query
		<-release
		return core.NotFound()
	})
	s, err := New(catalog.Default(), resolver, WithPoolSize(2))
	require.NoError(t, err)
	defer s.Close()
	defer unblock()

	// Both workers end up stuck in resolutions that ignore cancellation.
	s.SetQuery("zzz1")
	require.Equal(t, "zzz1", <-started)
	s.SetQuery("zzz2")
	require.Equal(t, "zzz2", <-started)

	done := make(chan struct{})
	go func() {
		s.SetQuery("zzz3")
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("SetQuery waited for a free worker")
	}

	snap := s.Snapshot()
	assert.Equal(t, "zzz3", snap.Query)
	assert.Equal(t, core.FallbackLoading, snap.Fallback.State)

	unblock()
	snap = await(t, s)
	assert.Equal(t, "zzz3", snap.Query)
	assert.Equal(t, core.FallbackNotFound, snap.Fallback.State)
	assert.Equal(t, "zzz3", <-started)
}

// blockingMonitor holds the first Found snapshot until released.
type blockingMonitor struct {
	recordingMonitor
	entered chan struct{}
	release chan struct{}
	once    sync.Once
}

func (m *blockingMonitor) SnapshotChanged(snapshot Snapshot) {
	if snapshot.Fallback.State == core.FallbackFound {
		m.once.Do(func() {
			close(m.entered)
			<-m.release
		})
	}
	m.recordingMonitor.SnapshotChanged(snapshot)
}

func (m *blockingMonitor) last() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshots[len(m.snapshots)-1]
}

func TestSession_MonitorNeverEndsOnOutdatedSnapshot(t *testing.T) {
	monitor := &blockingMonitor{
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
	s := newTestSession(t, quantumService(), WithMonitor(monitor))

	s.SetQuery("Quantum Computing")
	select {
	case <-monitor.entered:
	case <-time.After(5 * time.Second):
		t.Fatal("fallback never reached the monitor")
	}

	done := make(chan struct{})
	go func() {
		s.SetQuery("Arduino")
		close(done)
	}()
	require.Eventually(t, func() bool {
		return s.Snapshot().Query == "Arduino"
	}, 5*time.Second, 5*time.Millisecond)

	close(monitor.release)
	<-done

	snap := s.Snapshot()
	assert.Equal(t, "Arduino", snap.Query)
	assert.Equal(t, core.FallbackIdle, snap.Fallback.State)

	last := monitor.last()
	assert.Equal(t, "Arduino", last.Query)
	assert.Equal(t, core.FallbackIdle, last.Fallback.State)
}

func TestSession_NotificationsFollowStateOrder(t *testing.T) {
	monitor := &recordingMonitor{}
	s := newTestSession(t, quantumService(), WithMonitor(monitor))

	for range 20 {
		s.SetQuery("Quantum Computing")
		s.SetQuery("Arduino")
	}
	time.Sleep(50 * time.Millisecond)

	monitor.mu.Lock()
	defer monitor.mu.Unlock()
	require.NotEmpty(t, monitor.snapshots)
	last := monitor.snapshots[len(monitor.snapshots)-1]
	assert.Equal(t, "Arduino", last.Query)
	assert.Equal(t, core.FallbackIdle, last.Fallback.State)
	for _, snap := range monitor.snapshots {
		if snap.Fallback.State == core.FallbackFound {
			assert.Equal(t, "Quantum Computing", snap.Query)
		}
	}
}
