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


package mock

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/poiesic/edusearch/core"
	"github.com/poiesic/edusearch/lookup"
)

// MockService is a test double for lookup.SummaryService.
// It is safe for concurrent use.
type MockService struct {
	// SummaryFunc is called by Summary if set.
	// If nil, every key fails with lookup.ErrUnexpectedStatus (404).
	SummaryFunc func(ctx context.Context, key string) (*core.FallbackSummary, error)

	mu     sync.Mutex
	keys   []string
	closed bool
}

var _ lookup.SummaryService = (*MockService)(nil)

// NewMockService creates a mock whose lookups all fail.
// Note: Returns concrete type to allow test assertions.
func NewMockService() *MockService {
	return &MockService{}
}

// NewMockServiceWith creates a mock that answers from articles, keyed by
// lookup key. Keys missing from the map fail like a 404.
func NewMockServiceWith(articles map[string]core.FallbackSummary) *MockService {
	m := &MockService{}
	m.SummaryFunc = func(_ context.Context, key string) (*core.FallbackSummary, error) {
		if s, ok := articles[key]; ok {
			return &s, nil
		}
		return nil, fmt.Errorf("%w: 404", lookup.ErrUnexpectedStatus)
	}
	return m
}

// Article builds a summary with a wiki-style link for title.
func Article(title, extract string) core.FallbackSummary {
	return core.FallbackSummary{
		Title:   title,
		Extract: extract,
		PageURL: "https://en.wikipedia.org/wiki/" + strings.ReplaceAll(title, " ", "_"),
	}
}

// Summary records key and delegates to SummaryFunc.
func (m *MockService) Summary(ctx context.Context, key string) (*core.FallbackSummary, error) {
	m.mu.Lock()
	m.keys = append(m.keys, key)
	closed := m.closed
	fn := m.SummaryFunc
	m.mu.Unlock()

	if closed {
		return nil, lookup.ErrClosed
	}
	if strings.TrimSpace(key) == "" {
		return nil, lookup.ErrEmptyKey
	}
	if fn != nil {
		return fn(ctx, key)
	}
	return nil, fmt.Errorf("%w: 404", lookup.ErrUnexpectedStatus)
}

// Keys returns the keys passed to Summary, in call order.
func (m *MockService) Keys() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// CallCount returns the number of Summary calls.
func (m *MockService) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.keys)
}

// Reset clears recorded calls and the injected behavior.
func (m *MockService) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.keys = nil
	m.SummaryFunc = nil
	m.closed = false
}

// Close marks the mock closed. Later Summary calls return lookup.ErrClosed.
func (m *MockService) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Closed reports whether Close was called.
func (m *MockService) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}
