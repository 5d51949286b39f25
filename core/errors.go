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


package core

import "errors"

// Domain validation errors
var (
	// ErrInvalidResource indicates a Resource failed validation.
	ErrInvalidResource = errors.New("invalid resource")

	// ErrInvalidID indicates a resource ID of zero.
	ErrInvalidID = errors.New("resource id must be positive")

	// ErrDuplicateID indicates two resources in one corpus share an ID.
	ErrDuplicateID = errors.New("duplicate resource id")

	// ErrEmptyTitle indicates the Title field is empty.
	ErrEmptyTitle = errors.New("title cannot be empty")

	// ErrEmptyCategory indicates the Category field is empty.
	ErrEmptyCategory = errors.New("category cannot be empty")

	// ErrEmptyType indicates the Type field is empty.
	ErrEmptyType = errors.New("type cannot be empty")

	// ErrInvalidLevel indicates a Level outside Beginner, Intermediate and Advanced.
	ErrInvalidLevel = errors.New("invalid level")

	// ErrUnknownFacet indicates a facet name other than category, level or type.
	ErrUnknownFacet = errors.New("unknown facet")

	// ErrEmptyFacetValue indicates an empty facet selection. Use All to clear a facet.
	ErrEmptyFacetValue = errors.New("facet value cannot be empty")
)
