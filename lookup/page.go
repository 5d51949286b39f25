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

import (
	"encoding/json"
	"fmt"

	"github.com/poiesic/edusearch/core"
)

// StandardArticle is the page type of a regular article. Disambiguation
// pages, missing-title responses and the like carry other types.
const StandardArticle = "standard"

// Page is the subset of a REST page summary that the fallback consumes.
type Page struct {
	Type        string      `json:"type"`
	Title       string      `json:"title"`
	Extract     string      `json:"extract"`
	ContentURLs ContentURLs `json:"content_urls"`
}

// ContentURLs holds the per-platform links of a page.
type ContentURLs struct {
	Desktop PageLinks `json:"desktop"`
	Mobile  PageLinks `json:"mobile"`
}

// PageLinks holds the links of a page on one platform.
type PageLinks struct {
	Page string `json:"page"`
}

// DecodePage parses a page summary payload.
func DecodePage(data []byte) (*Page, error) {
	var p Page
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedPayload, err)
	}
	return &p, nil
}

// Summary converts a standard article into a FallbackSummary.
// The link is the desktop page URL, or the mobile one when the desktop URL
// is missing.
func (p *Page) Summary() (*core.FallbackSummary, error) {
	if p.Type != StandardArticle {
		return nil, fmt.Errorf("%w: type %q", ErrNotStandard, p.Type)
	}
	link := p.ContentURLs.Desktop.Page
	if link == "" {
		link = p.ContentURLs.Mobile.Page
	}
	return &core.FallbackSummary{
		Title:   p.Title,
		Extract: p.Extract,
		PageURL: link,
	}, nil
}
