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
	"encoding/binary"
	"strings"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// Resource IDs are assigned by the catalog and stay stable across loads.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Category groups resources by subject area. The set is open: a corpus may
// declare categories beyond the constants below.
type Category string

const (
	CategoryEducation Category = "Education"
	CategoryIoT       Category = "IoT"
)

// ResourceType describes what kind of material a resource is.
type ResourceType string

const (
	TypeConcept  ResourceType = "Concept"
	TypeProject  ResourceType = "Project"
	TypeHardware ResourceType = "Hardware"
)

// Level is the audience difficulty of a resource. Unlike Category and
// ResourceType it is a closed set.
type Level string

const (
	LevelBeginner     Level = "Beginner"
	LevelIntermediate Level = "Intermediate"
	LevelAdvanced     Level = "Advanced"
)

// Categories lists the declared categories.
var Categories = []Category{CategoryEducation, CategoryIoT}

// ResourceTypes lists the declared resource types.
var ResourceTypes = []ResourceType{TypeConcept, TypeProject, TypeHardware}

// Levels lists the valid levels in ascending difficulty.
var Levels = []Level{LevelBeginner, LevelIntermediate, LevelAdvanced}

// Resource is a single catalog entry: a concept, project idea or piece of
// hardware a student can look up.
type Resource struct {
	Id           ID
	Title        string
	Description  string
	Category     Category
	Type         ResourceType
	Level        Level
	Tags         []string // Display order matters; duplicates are allowed
	Hardware     []string // Parts list, may be empty
	LearningPath []string // Informational only, never searched
}

// SearchableText returns the lower-cased text the local matcher scans:
// title, category, type, level, description and every tag, space-joined.
func (r *Resource) SearchableText() string {
	parts := make([]string, 0, 5+len(r.Tags))
	parts = append(parts,
		r.Title,
		string(r.Category),
		string(r.Type),
		string(r.Level),
		r.Description,
	)
	parts = append(parts, r.Tags...)
	return strings.ToLower(strings.Join(parts, " "))
}

// Clone returns a deep copy of the resource.
func (r *Resource) Clone() Resource {
	c := *r
	c.Tags = cloneStrings(r.Tags)
	c.Hardware = cloneStrings(r.Hardware)
	c.LearningPath = cloneStrings(r.LearningPath)
	return c
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}

// FallbackSummary is the substitute result fetched from the external summary
// service when nothing in the corpus matches.
type FallbackSummary struct {
	Title   string
	Extract string
	PageURL string // Deep link to the full article
}

// FallbackState is the phase of a fallback lookup.
type FallbackState int

const (
	// FallbackIdle means no lookup is relevant: local results exist or the query is blank.
	FallbackIdle FallbackState = iota
	// FallbackLoading means a lookup for the current query is in flight.
	FallbackLoading
	// FallbackFound means a lookup produced a summary.
	FallbackFound
	// FallbackNotFound means every candidate lookup failed.
	FallbackNotFound
)

// String returns the lower-case name of the state.
func (s FallbackState) String() string {
	switch s {
	case FallbackIdle:
		return "idle"
	case FallbackLoading:
		return "loading"
	case FallbackFound:
		return "found"
	case FallbackNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}

// FallbackStatus is the tagged outcome of the fallback state machine.
// Summary is set only when State is FallbackFound.
type FallbackStatus struct {
	State   FallbackState
	Summary *FallbackSummary
}

// Idle returns the idle status.
func Idle() FallbackStatus {
	return FallbackStatus{State: FallbackIdle}
}

// Loading returns the loading status. It never carries a summary.
func Loading() FallbackStatus {
	return FallbackStatus{State: FallbackLoading}
}

// Found returns a found status carrying a copy of summary.
func Found(summary FallbackSummary) FallbackStatus {
	return FallbackStatus{State: FallbackFound, Summary: &summary}
}

// NotFound returns the not-found status.
func NotFound() FallbackStatus {
	return FallbackStatus{State: FallbackNotFound}
}
