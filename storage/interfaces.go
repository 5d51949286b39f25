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


package storage

import (
	"context"

	"github.com/poiesic/edusearch/core"
)

// ResourceRepository persists catalog resources.
// Implementations must be thread-safe and support concurrent access.
type ResourceRepository interface {
	// AddResources stores one or more resources.
	// A resource whose ID already exists replaces the stored copy but keeps
	// its original position in the listing order.
	// Returns core.ErrInvalidResource if any resource fails validation.
	AddResources(ctx context.Context, resources ...*core.Resource) error

	// GetResource retrieves a single resource by ID.
	// Returns ErrNotFound if the resource doesn't exist.
	GetResource(ctx context.Context, id core.ID) (*core.Resource, error)

	// ListResources returns every stored resource in first-insertion order.
	ListResources(ctx context.Context) ([]*core.Resource, error)

	// DeleteResources removes resources by their IDs.
	// Returns ErrNotFound if any resource doesn't exist.
	DeleteResources(ctx context.Context, ids ...core.ID) error

	// Close releases repository resources. It does not close the backend.
	Close() error
}
