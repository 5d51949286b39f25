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


package badger

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/edusearch/core"
	"github.com/poiesic/edusearch/storage"
)

// ResourceRepository implements storage.ResourceRepository on BadgerDB.
type ResourceRepository struct {
	backend *Backend
	seq     *badger.Sequence
}

var _ storage.ResourceRepository = (*ResourceRepository)(nil)

// NewResourceRepository creates a resource repository on top of backend.
// The backend stays owned by the caller.
func NewResourceRepository(backend *Backend) (storage.ResourceRepository, error) {
	return newResourceRepository(backend)
}

func newResourceRepository(backend *Backend) (*ResourceRepository, error) {
	if backend == nil {
		return nil, fmt.Errorf("%w: backend is nil", storage.ErrStorageClosed)
	}
	seq, err := backend.GetSequence(resourceOrderSeq)
	if err != nil {
		return nil, err
	}
	return &ResourceRepository{
		backend: backend,
		seq:     seq,
	}, nil
}

// Close releases the ordinal sequence lease.
func (r *ResourceRepository) Close() error {
	if r.backend.IsClosed() {
		return nil
	}
	return r.seq.Release()
}

// AddResources upserts resources. New resources are appended to the listing
// order; replaced ones keep their position.
func (r *ResourceRepository) AddResources(ctx context.Context, resources ...*core.Resource) error {
	for _, res := range resources {
		if err := core.ValidateResource(res); err != nil {
			return err
		}
	}

	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, res := range resources {
			if err := ctx.Err(); err != nil {
				return err
			}

			key := makeResourceKey(res.Id)
			_, ordinal, err := readResource(tx, key)
			switch {
			case errors.Is(err, storage.ErrNotFound):
				ordinal, err = r.seq.Next()
				if err != nil {
					return err
				}
				if err := tx.Set(makeResourceOrderKey(ordinal), storage.MarshalID(res.Id)); err != nil {
					return err
				}
			case err != nil:
				return err
			}

			if err := tx.Set(key, storage.MarshalResource(res, ordinal)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// GetResource retrieves a single resource by ID.
func (r *ResourceRepository) GetResource(ctx context.Context, id core.ID) (*core.Resource, error) {
	var result *core.Resource
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, _, err = readResource(tx, makeResourceKey(id))
		return err
	}, false)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ListResources returns every resource in first-insertion order.
func (r *ResourceRepository) ListResources(ctx context.Context) ([]*core.Resource, error) {
	var results []*core.Resource
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		prefix := resourceOrderScanPrefix()
		opts.Prefix = prefix
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Seek(prefix); iter.Valid(); iter.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			item := iter.Item()
			if !bytes.HasPrefix(item.Key(), prefix) {
				break
			}

			var id core.ID
			err := item.Value(func(val []byte) error {
				var err error
				id, err = storage.UnmarshalID(val)
				return err
			})
			if err != nil {
				return err
			}

			res, _, err := readResource(tx, makeResourceKey(id))
			if err != nil {
				return fmt.Errorf("order index references id %d: %w", id, err)
			}
			results = append(results, res)
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}
	return results, nil
}

// DeleteResources removes resources and their order index entries.
func (r *ResourceRepository) DeleteResources(ctx context.Context, ids ...core.ID) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makeResourceKey(id)
			_, ordinal, err := readResource(tx, key)
			if err != nil {
				return err
			}
			if err := tx.Delete(makeResourceOrderKey(ordinal)); err != nil {
				return err
			}
			if err := tx.Delete(key); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// readResource reads a resource and its ordinal from the transaction.
// Returns storage.ErrNotFound if the key is absent.
func readResource(tx *badger.Txn, key []byte) (*core.Resource, uint64, error) {
	item, err := tx.Get(key)
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, 0, storage.ErrNotFound
		}
		return nil, 0, err
	}

	var (
		res     *core.Resource
		ordinal uint64
	)
	err = item.Value(func(val []byte) error {
		var err error
		res, ordinal, err = storage.UnmarshalResource(val)
		return err
	})
	return res, ordinal, err
}
