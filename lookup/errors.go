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


package lookup

import "errors"

var (
	// ErrInvalidConfig indicates a Config that failed validation.
	ErrInvalidConfig = errors.New("invalid lookup config")

	// ErrEmptyKey indicates a blank lookup key.
	ErrEmptyKey = errors.New("lookup key cannot be empty")

	// ErrUnexpectedStatus indicates a non-2xx HTTP response.
	ErrUnexpectedStatus = errors.New("unexpected status")

	// ErrMalformedPayload indicates a response body that is not a valid page summary.
	ErrMalformedPayload = errors.New("malformed payload")

	// ErrNotStandard indicates a page whose type is not a standard article,
	// e.g. a disambiguation page.
	ErrNotStandard = errors.New("not a standard article")

	// ErrServiceUnavailable indicates the circuit breaker is rejecting calls.
	ErrServiceUnavailable = errors.New("summary service unavailable")

	// ErrClosed indicates the service was used after Close.
	ErrClosed = errors.New("summary service closed")
)
