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


// Package lookup defines the external summary service the fallback resolver
// consults when the local corpus has no match.
//
// A SummaryService turns a lookup key into a FallbackSummary. Success means
// a 2xx response whose JSON payload has type "standard"; everything else
// (transport errors, other statuses, malformed bodies, disambiguation or
// missing pages, an open circuit breaker) is an error.
//
// # Implementation Packages
//
//   - lookup/wiki: HTTP client for the Wikipedia REST page summary API
//   - lookup/mock: Test double with injectable behavior and call recording
//
// # Constructor Return Type Pattern
//
// wiki.NewClient returns the SummaryService interface. mock.NewMockService
// returns the concrete *mock.MockService so tests can inject behavior and
// inspect recorded keys.
//
// # Usage Example
//
//	cfg := lookup.NewConfig(lookup.WithTimeout(5 * time.Second))
//	svc, err := wiki.NewClient(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer svc.Close()
//
//	summary, err := svc.Summary(ctx, "Quantum_computing")
package lookup
