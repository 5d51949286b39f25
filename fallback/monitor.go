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

import "github.com/poiesic/edusearch/core"

// Monitor receives callbacks at each stage of a resolution.
// Implementations must be safe for concurrent use when a Resolver is shared.
type Monitor interface {
	Start(query string, candidates []string)
	CandidateFailed(candidate string, err error)
	CandidateSucceeded(candidate string, summary *core.FallbackSummary)
	Finish(query string, status core.FallbackStatus)
}

// noopMonitor is a no-op implementation of Monitor
type noopMonitor struct{}

var _ Monitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string, _ []string)                           {}
func (n *noopMonitor) CandidateFailed(_ string, _ error)                    {}
func (n *noopMonitor) CandidateSucceeded(_ string, _ *core.FallbackSummary) {}
func (n *noopMonitor) Finish(_ string, _ core.FallbackStatus)               {}
