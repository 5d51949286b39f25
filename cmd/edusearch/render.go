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


package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/poiesic/edusearch/catalog"
	"github.com/poiesic/edusearch/core"
	"github.com/poiesic/edusearch/session"
)

const noContent = "No content found."

func writeSnapshot(w io.Writer, snap session.Snapshot) {
	fmt.Fprintf(w, "Query: %q  Filters: %s\n", snap.Query, snap.Filters)

	if snap.HasLocalResults() {
		fmt.Fprintf(w, "%d result(s)\n", len(snap.LocalResults))
		for _, r := range snap.LocalResults {
			writeResource(w, &r)
		}
		return
	}

	switch snap.Fallback.State {
	case core.FallbackFound:
		summary := snap.Fallback.Summary
		fmt.Fprintln(w, "No local resources matched. From the encyclopedia:")
		fmt.Fprintf(w, "  %s\n", summary.Title)
		if summary.Extract != "" {
			fmt.Fprintf(w, "  %s\n", summary.Extract)
		}
		if summary.PageURL != "" {
			fmt.Fprintf(w, "  Read more: %s\n", summary.PageURL)
		}
	case core.FallbackLoading:
		fmt.Fprintln(w, "Searching...")
	case core.FallbackNotFound:
		fmt.Fprintln(w, noContent)
	default:
		if strings.TrimSpace(snap.Query) == "" {
			fmt.Fprintln(w, "Enter a query to search.")
		} else {
			fmt.Fprintln(w, noContent)
		}
	}
}

func writeResource(w io.Writer, r *core.Resource) {
	fmt.Fprintf(w, "[%d] %s (%s / %s / %s)\n", r.Id, r.Title, r.Category, r.Type, r.Level)
	if r.Description != "" {
		fmt.Fprintf(w, "    %s\n", r.Description)
	}
	if len(r.Tags) > 0 {
		fmt.Fprintf(w, "    tags: %s\n", strings.Join(r.Tags, ", "))
	}
	if len(r.Hardware) > 0 {
		fmt.Fprintf(w, "    hardware: %s\n", strings.Join(r.Hardware, ", "))
	}
	if len(r.LearningPath) > 0 {
		fmt.Fprintf(w, "    learning path: %s\n", strings.Join(r.LearningPath, " -> "))
	}
}

func writeTopics(w io.Writer, topics []catalog.Topic, suggestions []string) {
	for _, t := range topics {
		fmt.Fprintf(w, "%-22s %s\n", t.Title, t.Query)
	}
	if len(suggestions) > 0 {
		fmt.Fprintf(w, "Suggested: %s\n", strings.Join(suggestions, ", "))
	}
}

type jsonResource struct {
	ID           uint64   `json:"id"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Category     string   `json:"category"`
	Type         string   `json:"type"`
	Level        string   `json:"level"`
	Tags         []string `json:"tags"`
	Hardware     []string `json:"hardware"`
	LearningPath []string `json:"learningPath"`
}

type jsonSummary struct {
	Title   string `json:"title"`
	Extract string `json:"extract"`
	PageURL string `json:"pageUrl"`
}

type jsonFallback struct {
	State   string       `json:"state"`
	Summary *jsonSummary `json:"summary,omitempty"`
}

type jsonSnapshot struct {
	Query    string            `json:"query"`
	Filters  map[string]string `json:"filters"`
	Results  []jsonResource    `json:"results"`
	Fallback jsonFallback      `json:"fallback"`
}

func writeJSON(w io.Writer, snap session.Snapshot) error {
	view := jsonSnapshot{
		Query:   snap.Query,
		Filters: make(map[string]string, len(core.Facets)),
		Results: make([]jsonResource, 0, len(snap.LocalResults)),
		Fallback: jsonFallback{
			State: snap.Fallback.State.String(),
		},
	}
	for _, facet := range core.Facets {
		view.Filters[string(facet)] = snap.Filters.Get(facet)
	}
	for _, r := range snap.LocalResults {
		view.Results = append(view.Results, jsonResource{
			ID:           uint64(r.Id),
			Title:        r.Title,
			Description:  r.Description,
			Category:     string(r.Category),
			Type:         string(r.Type),
			Level:        string(r.Level),
			Tags:         r.Tags,
			Hardware:     r.Hardware,
			LearningPath: r.LearningPath,
		})
	}
	if s := snap.Fallback.Summary; s != nil {
		view.Fallback.Summary = &jsonSummary{Title: s.Title, Extract: s.Extract, PageURL: s.PageURL}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(view)
}
