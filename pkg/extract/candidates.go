package extract

import (
	"slices"

	"github.com/bastiangx/stemserve/internal/utils"
)

// Placement is the ordered list of rune offsets inside one word form that
// spell out a candidate stem.
type Placement []int

// String renders the placement as "(0,1,2)".
func (pl Placement) String() string {
	return utils.JoinInts(pl)
}

// Candidate is one stem together with, for every word form in column
// order, every placement of that stem in the form.
type Candidate struct {
	Stem       string
	Placements [][]Placement
}

// Candidates maps candidate stems to their placements and remembers the
// order in which stems were discovered, so output is deterministic.
type Candidates struct {
	order  []string
	values map[string][][]Placement
}

// NewCandidates returns an empty result set.
func NewCandidates() *Candidates {
	return &Candidates{values: make(map[string][][]Placement)}
}

// Set records placements for stem. A stem that is already present keeps
// its original position in the discovery order.
func (c *Candidates) Set(stem string, placements [][]Placement) {
	if _, exists := c.values[stem]; !exists {
		c.order = append(c.order, stem)
	}
	c.values[stem] = placements
}

// Get returns the placements recorded for stem.
func (c *Candidates) Get(stem string) ([][]Placement, bool) {
	placements, ok := c.values[stem]
	return placements, ok
}

// Has reports whether stem is a candidate.
func (c *Candidates) Has(stem string) bool {
	_, ok := c.values[stem]
	return ok
}

// Keys returns the stems in discovery order.
func (c *Candidates) Keys() []string {
	return slices.Clone(c.order)
}

// Len is the number of candidate stems.
func (c *Candidates) Len() int {
	return len(c.order)
}

// Entries returns every candidate in discovery order.
func (c *Candidates) Entries() []Candidate {
	entries := make([]Candidate, 0, len(c.order))
	for _, stem := range c.order {
		entries = append(entries, Candidate{Stem: stem, Placements: c.values[stem]})
	}
	return entries
}
