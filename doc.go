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


// Package edusearch is a faceted search engine over a small catalog of
// education and IoT resources, with an encyclopedia fallback for queries
// the catalog cannot answer.
//
// An Engine holds the corpus and the fallback resolver; each user gets a
// session.Session from Engine.NewSession.
//
//	engine, err := edusearch.NewEngine()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer engine.Close()
//
//	s, err := engine.NewSession()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer s.Close()
//
//	s.SetQuery("smart farming")
//	snap, _ := s.AwaitFallback(ctx)
package edusearch
