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


package catalog

import (
	"context"
	"fmt"

	"github.com/poiesic/edusearch/core"
	"github.com/poiesic/edusearch/storage"
)

// Load reads every resource from repo, in stored order, into a new corpus.
// The repository is not consulted again afterwards.
func Load(ctx context.Context, repo storage.ResourceRepository) (*Corpus, error) {
	if repo == nil {
		return nil, ErrRepositoryRequired
	}
	stored, err := repo.ListResources(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list resources: %w", err)
	}
	if len(stored) == 0 {
		return nil, ErrEmptyCatalog
	}

	records := make([]core.Resource, len(stored))
	for i, r := range stored {
		records[i] = *r
	}
	return NewCorpus(records...)
}

// Seed writes every resource of corpus into repo. Existing resources with
// the same IDs are replaced.
func Seed(ctx context.Context, repo storage.ResourceRepository, corpus *Corpus) error {
	if repo == nil {
		return ErrRepositoryRequired
	}
	records := corpus.Records()
	ptrs := make([]*core.Resource, len(records))
	for i := range records {
		ptrs[i] = &records[i]
	}
	if err := repo.AddResources(ctx, ptrs...); err != nil {
		return fmt.Errorf("failed to seed catalog: %w", err)
	}
	return nil
}
