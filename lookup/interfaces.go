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
	"context"

	"github.com/poiesic/edusearch/core"
)

// SummaryService fetches a short encyclopedia summary for a key.
// Implementations must be thread-safe for concurrent use.
type SummaryService interface {
	// Summary returns the summary of the article named by key.
	// Any failure (transport, status, payload, article type) is reported as
	// an error; callers are expected to treat all of them alike.
	Summary(ctx context.Context, key string) (*core.FallbackSummary, error)

	// Close releases resources held by the service.
	// After Close is called, Summary returns ErrClosed.
	Close() error
}
