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

import (
	"fmt"
	"strings"
)

// All is the facet selection that places no constraint.
const All = "All"

// Facet names one of the three filter dimensions.
type Facet string

const (
	FacetCategory Facet = "category"
	FacetLevel    Facet = "level"
	FacetType     Facet = "type"
)

// Facets lists the filter dimensions in display order.
var Facets = []Facet{FacetCategory, FacetLevel, FacetType}

// ParseFacet maps a facet name to a Facet. Matching ignores case and
// surrounding whitespace.
func ParseFacet(name string) (Facet, error) {
	switch Facet(strings.ToLower(strings.TrimSpace(name))) {
	case FacetCategory:
		return FacetCategory, nil
	case FacetLevel:
		return FacetLevel, nil
	case FacetType:
		return FacetType, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFacet, name)
}

// Declared returns the facet's declared values, without All.
func (f Facet) Declared() []string {
	var out []string
	switch f {
	case FacetCategory:
		for _, c := range Categories {
			out = append(out, string(c))
		}
	case FacetLevel:
		for _, l := range Levels {
			out = append(out, string(l))
		}
	case FacetType:
		for _, t := range ResourceTypes {
			out = append(out, string(t))
		}
	}
	return out
}

// Value returns the resource's value for this facet.
func (f Facet) Value(r *Resource) string {
	switch f {
	case FacetCategory:
		return string(r.Category)
	case FacetLevel:
		return string(r.Level)
	case FacetType:
		return string(r.Type)
	}
	return ""
}

// FacetFilters holds one single-choice selection per facet.
// Each selection is All or an exact field value.
type FacetFilters struct {
	Category string
	Level    string
	Type     string
}

// DefaultFilters returns filters with every facet set to All.
func DefaultFilters() FacetFilters {
	return FacetFilters{Category: All, Level: All, Type: All}
}

// Get returns the selection for a facet.
func (f FacetFilters) Get(facet Facet) string {
	switch facet {
	case FacetCategory:
		return f.Category
	case FacetLevel:
		return f.Level
	case FacetType:
		return f.Type
	}
	return ""
}

// With returns a copy of the filters with one selection replaced.
func (f FacetFilters) With(facet Facet, value string) (FacetFilters, error) {
	if value == "" {
		return f, fmt.Errorf("%w: %s", ErrEmptyFacetValue, facet)
	}
	switch facet {
	case FacetCategory:
		f.Category = value
	case FacetLevel:
		f.Level = value
	case FacetType:
		f.Type = value
	default:
		return f, fmt.Errorf("%w: %q", ErrUnknownFacet, string(facet))
	}
	return f, nil
}

// Passes reports whether r satisfies every facet. Comparison is exact and
// case-sensitive.
func (f FacetFilters) Passes(r *Resource) bool {
	return selects(f.Category, string(r.Category)) &&
		selects(f.Level, string(r.Level)) &&
		selects(f.Type, string(r.Type))
}

func selects(selection, value string) bool {
	return selection == All || selection == value
}

// String renders the filters as "category=X level=Y type=Z".
func (f FacetFilters) String() string {
	return "category=" + f.Category + " level=" + f.Level + " type=" + f.Type
}

// RequestKey derives the correlation key of a (query, filters) pair.
// Two triggers with the same key asked the same question.
func RequestKey(query string, filters FacetFilters) ID {
	return IDFromContent(query + "\x00" + filters.Category + "\x00" + filters.Level + "\x00" + filters.Type)
}
