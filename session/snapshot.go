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

// Snapshot is a consistent, caller-owned copy of a session's state.
type Snapshot struct {
	SessionID    string
	Query        string
	Filters      core.FacetFilters
	LocalResults []core.Resource
	Fallback     core.FallbackStatus
}

// HasLocalResults reports whether the corpus matched.
func (s Snapshot) HasLocalResults() bool {
	return len(s.LocalResults) > 0
}
