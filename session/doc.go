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


// Package session implements the search session controller.
//
// A Session ties the local matcher and the fallback resolver together.
// Callers mutate it with SetQuery, SetFilter and Reset and read it with
// Snapshot. Fallback lookups run asynchronously on an ants worker pool;
// a generation counter plus the (query, filters) request key decide
// whether a finished lookup may still be applied.
//
// # Usage
//
//	s, err := session.New(corpus, resolver)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer s.Close()
//
//	s.SetQuery("Quantum Computing")
//	snap, err := s.AwaitFallback(ctx)
package session
