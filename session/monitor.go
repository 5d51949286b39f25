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

import "github.com/poiesic/edusearch/core"

// Monitor observes session state changes.
// Callbacks run outside the session lock, possibly on worker goroutines.
// SnapshotChanged calls never overlap and arrive in state order: a
// snapshot that became outdated before it could be delivered is skipped.
type Monitor interface {
	// SnapshotChanged is called after every mutation and every applied
	// fallback completion.
	SnapshotChanged(snapshot Snapshot)

	// StaleResultDiscarded is called when a fallback completes for a
	// (query, filters) pair that is no longer current.
	StaleResultDiscarded(query string, filters core.FacetFilters)
}

// noopMonitor is a no-op implementation of Monitor
type noopMonitor struct{}

var _ Monitor = (*noopMonitor)(nil)

func (n *noopMonitor) SnapshotChanged(_ Snapshot)                         {}
func (n *noopMonitor) StaleResultDiscarded(_ string, _ core.FacetFilters) {}
