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
	"slices"
	"strings"
)

// Normalize lower-cases and trims query. It returns the resulting phrase and
// its distinct whitespace-delimited terms in first-seen order. A blank query
// yields an empty phrase and no terms.
func Normalize(query string) (phrase string, terms []string) {
	phrase = strings.ToLower(strings.TrimSpace(query))
	for _, word := range strings.Fields(phrase) {
		if !slices.Contains(terms, word) {
			terms = append(terms, word)
		}
	}
	return phrase, terms
}

// matchesText reports whether text contains the phrase or any single term.
// An empty phrase matches everything.
func matchesText(text, phrase string, terms []string) bool {
	if phrase == "" || strings.Contains(text, phrase) {
		return true
	}
	for _, term := range terms {
		if strings.Contains(text, term) {
			return true
		}
	}
	return false
}
