// Package paradigm builds the stem/affix decomposition of one row of
// related word forms and scores it.
//
// A Paradigm is immutable. Every derived field is computed by the
// constructor; changing the decomposition goes through Rebuild, which
// returns a new value, so derived costs can never be stale.
package paradigm

import (
	"fmt"
	"slices"
	"unicode/utf8"

	"github.com/bastiangx/stemserve/pkg/cost"
	"github.com/bastiangx/stemserve/pkg/multiset"
)

// Paradigm is one row of the input table together with its multiset stem,
// residual affixes and costs.
type Paradigm struct {
	leaf     string
	forms    []string
	shortest string

	stem    string
	targets []string
	affixes []string

	costs       []cost.Vector
	grammarCost int
	dataCost    int
	totalCost   int

	opts Options
}

// FromRow builds a Paradigm from a raw row: element 0 is the leaf label,
// the remaining elements are the word forms, one per column.
func FromRow(row []string, opts Options) (*Paradigm, error) {
	if len(row) < 2 {
		return nil, fmt.Errorf("%w: row %q has no data columns", ErrMalformedInput, row)
	}
	return New(row[0], row[1:], opts)
}

// New builds a Paradigm from a leaf label and its word forms.
func New(leaf string, forms []string, opts Options) (*Paradigm, error) {
	if len(forms) == 0 {
		return nil, fmt.Errorf("%w: paradigm %q has no data columns", ErrMalformedInput, leaf)
	}
	for i, form := range forms {
		if !utf8.ValidString(form) {
			return nil, fmt.Errorf("%w: paradigm %q column %d is not valid UTF-8", ErrMalformedInput, leaf, i)
		}
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	p := &Paradigm{
		leaf:     leaf,
		forms:    slices.Clone(forms),
		shortest: Shortest(forms),
		targets:  make([]string, len(forms)),
		opts:     opts,
	}
	for i, form := range forms {
		p.targets[i] = multiset.Alphabetize(form)
	}
	p.stem, p.affixes = commonStem(p.shortest, p.targets)
	p.score()
	return p, nil
}

// Shortest returns the first of the shortest strings in forms.
func Shortest(forms []string) string {
	if len(forms) == 0 {
		return ""
	}
	shortest := forms[0]
	for _, f := range forms[1:] {
		if multiset.Len(f) < multiset.Len(shortest) {
			shortest = f
		}
	}
	return shortest
}

// commonStem walks the letters of the alphabetized shortest form and keeps
// each one that every remaining target still has, removing it from all of
// them. What is left of the targets are the residual affixes.
func commonStem(shortest string, targets []string) (string, []string) {
	residual := slices.Clone(targets)
	var stem []rune

	for _, r := range multiset.Alphabetize(shortest) {
		letter := string(r)
		inAll := true
		for _, w := range residual {
			if !multiset.Contains(w, letter) {
				inAll = false
				break
			}
		}
		if !inAll {
			continue
		}
		stem = append(stem, r)
		for i := range residual {
			residual[i] = multiset.Remove(residual[i], letter)
		}
	}
	return string(stem), residual
}

// score fills the cost vectors and the grammar, data and total costs.
func (p *Paradigm) score() {
	p.costs = make([]cost.Vector, len(p.forms))
	affixLetters := 0
	p.dataCost = 0
	for i := range p.forms {
		p.costs[i] = cost.Cost(p.stem, p.affixes[i], p.targets[i], p.opts.Weights)
		p.dataCost += p.costs[i].Sum()
		affixLetters += multiset.Len(p.affixes[i])
	}
	p.grammarCost = p.opts.LambdaBits * (multiset.Len(p.stem) + affixLetters + len(p.forms))
	p.totalCost = p.grammarCost + p.dataCost
}

// Rebuild returns a new Paradigm over the same word forms with the given
// stem and per-column affixes, rescored under the same options.
func (p *Paradigm) Rebuild(stem string, affixes []string) (*Paradigm, error) {
	if len(affixes) != len(p.forms) {
		return nil, fmt.Errorf("%w: paradigm %q has %d columns, got %d affixes",
			ErrMalformedInput, p.leaf, len(p.forms), len(affixes))
	}
	q := p.clone()
	q.stem = stem
	q.affixes = slices.Clone(affixes)
	q.score()
	return q, nil
}

// WithOptions returns a copy of p rescored under opts.
func (p *Paradigm) WithOptions(opts Options) (*Paradigm, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	q := p.clone()
	q.opts = opts
	q.score()
	return q, nil
}

func (p *Paradigm) clone() *Paradigm {
	return &Paradigm{
		leaf:     p.leaf,
		forms:    p.forms,
		shortest: p.shortest,
		stem:     p.stem,
		targets:  p.targets,
		affixes:  p.affixes,
		opts:     p.opts,
	}
}

// Leaf is the row's label.
func (p *Paradigm) Leaf() string { return p.leaf }

// Forms returns a copy of the source word forms in column order.
func (p *Paradigm) Forms() []string { return slices.Clone(p.forms) }

// Columns is the number of word forms.
func (p *Paradigm) Columns() int { return len(p.forms) }

// ShortestForm is the first shortest word form.
func (p *Paradigm) ShortestForm() string { return p.shortest }

// Stem is the alphabetized multiset stem, empty for suppletive paradigms.
func (p *Paradigm) Stem() string { return p.stem }

// IsSuppletive reports whether no letter is shared by all forms.
func (p *Paradigm) IsSuppletive() bool { return p.stem == "" }

// Targets returns a copy of the alphabetized word forms.
func (p *Paradigm) Targets() []string { return slices.Clone(p.targets) }

// Affixes returns a copy of the residual affix of every column.
func (p *Paradigm) Affixes() []string { return slices.Clone(p.affixes) }

// UnionAffix is the letter-wise union of the residual affixes: the
// smallest inventory from which every column's affix can be drawn.
func (p *Paradigm) UnionAffix() string { return multiset.Union(p.affixes) }

// CostVectors returns a copy of the weighted cost vector of every column.
func (p *Paradigm) CostVectors() []cost.Vector { return slices.Clone(p.costs) }

// ColumnCost is the summed cost vector of column i.
func (p *Paradigm) ColumnCost(i int) int { return p.costs[i].Sum() }

// GrammarCost charges LambdaBits per stem letter, affix letter and column.
func (p *Paradigm) GrammarCost() int { return p.grammarCost }

// DataCost is the sum of all column costs.
func (p *Paradigm) DataCost() int { return p.dataCost }

// TotalCost is GrammarCost plus DataCost. Lower is better.
func (p *Paradigm) TotalCost() int { return p.totalCost }

// Options returns the options p was scored with.
func (p *Paradigm) Options() Options { return p.opts }
