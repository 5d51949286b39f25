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


package fallback

import "strings"

// Candidates returns the lookup keys tried for query, in priority order:
// the trimmed query, its first word, and the trimmed query with whitespace
// runs replaced by underscores. Candidates are not deduplicated, so a
// single-word query yields the same key three times. A blank query yields nil.
func Candidates(query string) []string {
	words := strings.Fields(query)
	if len(words) == 0 {
		return nil
	}
	return []string{
		strings.TrimSpace(query),
		words[0],
		strings.Join(words, "_"),
	}
}
