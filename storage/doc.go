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


// Package storage provides the storage abstraction layer for the resource
// catalog.
//
// The search engine itself never touches storage: a corpus is read once
// at startup and stays in memory. This package exists so that a catalog can
// be kept outside the binary and edited without a rebuild.
//
// # Constructor Return Type Pattern
//
// Public constructors in backend packages return the ResourceRepository
// interface:
//
//	repo, err := badger.NewResourceRepository(backend)  // storage.ResourceRepository
//
// Internal constructors (newResourceRepository) may return concrete types
// since they're only used within the implementation package.
//
// # Serialization
//
// Records are encoded with mus-go (MarshalResource / UnmarshalResource).
// Each encoded record carries an ordinal so listings come back in the
// order the resources were first added.
//
// # Usage
//
//	backend, err := badger.OpenBackend("/path/to/catalog", false)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer backend.Close()
//
//	repo, err := badger.NewResourceRepository(backend)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer repo.Close()
//
// Use in tests with in-memory storage:
//
//	repo, backend, err := badger.NewMemoryRepository()
//
// # Thread Safety
//
// All repository implementations must be thread-safe and support
// concurrent access from multiple goroutines.
package storage
