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


// Package wiki implements lookup.SummaryService over HTTP against the
// Wikipedia REST page summary endpoint.
//
// Requests are GET {BaseURL}/{url.PathEscape(key)} with an Accept of
// application/json and the configured User-Agent. Calls go through a
// gobreaker circuit breaker and identical concurrent keys are collapsed
// with singleflight.
package wiki
