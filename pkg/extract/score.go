package extract

import (
	"github.com/bastiangx/stemserve/pkg/multiset"
	"github.com/bastiangx/stemserve/pkg/paradigm"
)

// Scored is a candidate stem priced as a full stem/affix decomposition.
type Scored struct {
	Stem        string
	GrammarCost int
	DataCost    int
	TotalCost   int
}

// Score prices every candidate of c: the candidate's letters become the
// stem, each column's affix is its target minus those letters, and the
// paradigm is rebuilt under its own options. Results follow c's order.
func Score(p *paradigm.Paradigm, c *Candidates) ([]Scored, error) {
	targets := p.Targets()
	scored := make([]Scored, 0, c.Len())

	for _, stem := range c.Keys() {
		letters := multiset.Alphabetize(stem)
		affixes := make([]string, len(targets))
		for i, target := range targets {
			affixes[i] = multiset.Remove(target, letters)
		}

		q, err := p.Rebuild(letters, affixes)
		if err != nil {
			return nil, err
		}
		scored = append(scored, Scored{
			Stem:        stem,
			GrammarCost: q.GrammarCost(),
			DataCost:    q.DataCost(),
			TotalCost:   q.TotalCost(),
		})
	}
	return scored, nil
}

// Cheapest returns the scored candidates sharing the lowest total cost,
// in their original order.
func Cheapest(scored []Scored) []Scored {
	var best []Scored
	for _, s := range scored {
		switch {
		case len(best) == 0 || s.TotalCost < best[0].TotalCost:
			best = []Scored{s}
		case s.TotalCost == best[0].TotalCost:
			best = append(best, s)
		}
	}
	return best
}
