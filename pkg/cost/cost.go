// Package cost scores how well a stem and an affix reconstruct a word form.
//
// A target (the alphabetized word form) is rebuilt letter by letter: each
// letter is taken from the stem if the stem still has it, otherwise from the
// affix, otherwise it is charged as an extra letter. The leftover stem and
// affix material is charged too. The five resulting counts are multiplied by
// a Weights vector.
package cost

import (
	"fmt"

	"github.com/bastiangx/stemserve/pkg/multiset"
)

// Components of a cost vector, in order.
const (
	StemUsed = iota
	StemNotUsed
	AffixUsed
	AffixNotUsed
	Extra

	NumComponents
)

// ComponentNames labels the components of a Vector for reports.
var ComponentNames = [NumComponents]string{
	"stem used",
	"stem not used",
	"affix used",
	"affix not used",
	"extra",
}

// Weights are the per-letter coefficients applied to each count.
type Weights struct {
	StemUsed     int `toml:"stem_used"`
	StemNotUsed  int `toml:"stem_not_used"`
	AffixUsed    int `toml:"affix_used"`
	AffixNotUsed int `toml:"affix_not_used"`
	Extra        int `toml:"extra"`
}

// DefaultWeights reward stem use cheaply and punish unused stem material
// and unexplained letters heavily, which favours compact stems.
func DefaultWeights() Weights {
	return Weights{
		StemUsed:     4,
		StemNotUsed:  3,
		AffixUsed:    1,
		AffixNotUsed: 2,
		Extra:        10,
	}
}

// Validate rejects negative coefficients.
func (w Weights) Validate() error {
	for i, v := range w.array() {
		if v < 0 {
			return fmt.Errorf("cost weight %q must not be negative, got %d", ComponentNames[i], v)
		}
	}
	return nil
}

func (w Weights) array() [NumComponents]int {
	return [NumComponents]int{w.StemUsed, w.StemNotUsed, w.AffixUsed, w.AffixNotUsed, w.Extra}
}

// Counts are the unweighted letter counts of one reconstruction.
type Counts [NumComponents]int

// Vector is a weighted Counts.
type Vector [NumComponents]int

// Compute reconstructs target from stem and affix, both consumed as
// depletable multisets. Only letter counts matter, so any permutation of
// target yields the same Counts.
func Compute(stem, affix, target string) Counts {
	stemLeft := multiset.Counts(stem)
	affixLeft := multiset.Counts(affix)

	var c Counts
	for _, r := range target {
		switch {
		case stemLeft[r] > 0:
			stemLeft[r]--
			c[StemUsed]++
		case affixLeft[r] > 0:
			affixLeft[r]--
			c[AffixUsed]++
		default:
			c[Extra]++
		}
	}
	c[StemNotUsed] = multiset.Len(stem) - c[StemUsed]
	c[AffixNotUsed] = multiset.Len(affix) - c[AffixUsed]
	return c
}

// Weighted multiplies each count by its coefficient.
func (c Counts) Weighted(w Weights) Vector {
	coef := w.array()
	var v Vector
	for i := range c {
		v[i] = c[i] * coef[i]
	}
	return v
}

// Cost is Compute followed by Weighted.
func Cost(stem, affix, target string, w Weights) Vector {
	return Compute(stem, affix, target).Weighted(w)
}

// Sum adds up the components of v.
func (v Vector) Sum() int {
	total := 0
	for _, x := range v {
		total += x
	}
	return total
}

// Add returns the component-wise sum of v and o.
func (v Vector) Add(o Vector) Vector {
	for i := range v {
		v[i] += o[i]
	}
	return v
}

// Slice returns the components as a plain slice for encoders.
func (v Vector) Slice() []int {
	return v[:]
}
