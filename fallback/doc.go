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


// Package fallback resolves a query that matched nothing locally into an
// external summary.
//
// Resolution tries a fixed, ordered list of candidate keys derived from the
// query (see Candidates) strictly one after another. The first successful
// lookup wins. Failures are expected and never surface as errors: the
// outcome is always a core.FallbackStatus of Found or NotFound.
//
// There is no retry with backoff. Substituting the next candidate is the
// only recovery.
package fallback
