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


package catalog

import (
	"iter"
	"slices"

	"github.com/poiesic/edusearch/core"
)

// Corpus is an immutable, ordered collection of resources.
// It is safe for concurrent use; nothing mutates it after NewCorpus returns.
type Corpus struct {
	records []core.Resource
	text    []string // lower-cased searchable text, parallel to records
	index   map[core.ID]int
}

// NewCorpus validates records and builds a corpus from deep copies of them.
// Corpus order is the argument order.
func NewCorpus(records ...core.Resource) (*Corpus, error) {
	if err := core.ValidateCorpus(records); err != nil {
		return nil, err
	}

	c := &Corpus{
		records: make([]core.Resource, len(records)),
		text:    make([]string, len(records)),
		index:   make(map[core.ID]int, len(records)),
	}
	for i := range records {
		c.records[i] = records[i].Clone()
		c.text[i] = c.records[i].SearchableText()
		c.index[records[i].Id] = i
	}
	return c, nil
}

// Len returns the number of resources.
func (c *Corpus) Len() int {
	if c == nil {
		return 0
	}
	return len(c.records)
}

// Records returns deep copies of every resource in corpus order.
func (c *Corpus) Records() []core.Resource {
	if c == nil {
		return nil
	}
	out := make([]core.Resource, len(c.records))
	for i := range c.records {
		out[i] = c.records[i].Clone()
	}
	return out
}

// Get returns a copy of the resource with the given ID.
func (c *Corpus) Get(id core.ID) (core.Resource, bool) {
	if c == nil {
		return core.Resource{}, false
	}
	i, ok := c.index[id]
	if !ok {
		return core.Resource{}, false
	}
	return c.records[i].Clone(), true
}

// Scan yields each resource with its searchable text, in corpus order.
// Yielded resources are copies.
func (c *Corpus) Scan() iter.Seq2[core.Resource, string] {
	return func(yield func(core.Resource, string) bool) {
		if c == nil {
			return
		}
		for i := range c.records {
			if !yield(c.records[i].Clone(), c.text[i]) {
				return
			}
		}
	}
}

// FacetOptions returns the values a user can select for the facet:
// core.All, the declared values, then any other value present in the corpus.
func (c *Corpus) FacetOptions(facet core.Facet) []string {
	options := append([]string{core.All}, facet.Declared()...)
	for _, v := range c.FacetValues(facet)[1:] {
		if !slices.Contains(options, v) {
			options = append(options, v)
		}
	}
	return options
}

// FacetValues returns core.All followed by every distinct value of the facet
// present in the corpus, in first-seen order.
func (c *Corpus) FacetValues(facet core.Facet) []string {
	values := []string{core.All}
	if c == nil {
		return values
	}
	for i := range c.records {
		v := facet.Value(&c.records[i])
		if v == "" || slices.Contains(values, v) {
			continue
		}
		values = append(values, v)
	}
	return values
}
