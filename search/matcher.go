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


package search

import (
	"github.com/poiesic/edusearch/catalog"
	"github.com/poiesic/edusearch/core"
)

// Match returns the corpus records that satisfy both the query and the facet
// filters, in corpus order.
//
// A record matches the query when its searchable text contains the
// normalized query as a whole or any one of its terms. Matching is
// permissive on purpose: "smart zzz" still finds every record mentioning
// "smart". A blank query matches every record, so the result is then the
// facet-filtered corpus.
//
// Match is pure and safe for concurrent use. A nil corpus yields an empty,
// non-nil result.
func Match(corpus *catalog.Corpus, query string, filters core.FacetFilters) []core.Resource {
	results := []core.Resource{}
	phrase, terms := Normalize(query)
	for r, text := range corpus.Scan() {
		if !filters.Passes(&r) {
			continue
		}
		if matchesText(text, phrase, terms) {
			results = append(results, r)
		}
	}
	return results
}
