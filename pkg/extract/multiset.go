package extract

import (
	"slices"

	"github.com/bastiangx/stemserve/internal/utils"
	"github.com/bastiangx/stemserve/pkg/multiset"
	"github.com/bastiangx/stemserve/pkg/paradigm"
)

// Multiset places the paradigm's multiset stem in every form. For each
// distinct stem letter it takes every combination of that letter's
// positions with the multiplicity the stem needs. The per-letter lists are
// aligned by cycling each one up to the least common multiple of their
// lengths and combined position by position, so a form gets LCM
// placements rather than the full cross product.
func Multiset(p *paradigm.Paradigm) *Candidates {
	forms := p.Forms()
	if p.IsSuppletive() {
		return suppletive(forms)
	}

	stem := p.Stem()
	letters := multiset.Distinct(stem)
	need := multiset.Counts(stem)

	placements := make([][]Placement, len(forms))
	for w, form := range forms {
		positions := multiset.Positions(form)

		perLetter := make([][][]int, len(letters))
		lengths := make([]int, len(letters))
		for i, r := range letters {
			perLetter[i] = positionCombinations(positions[r], need[r])
			lengths[i] = len(perLetter[i])
		}

		n := utils.LCMAll(lengths)
		for i := 0; i < n; i++ {
			var placement Placement
			for _, combos := range perLetter {
				placement = append(placement, combos[i%len(combos)]...)
			}
			slices.Sort(placement)
			placements[w] = append(placements[w], placement)
		}
	}

	result := NewCandidates()
	result.Set(stem, placements)
	return result
}

// positionCombinations returns every k-subset of positions, each in
// ascending order, in lexicographic order.
func positionCombinations(positions []int, k int) [][]int {
	indexCombos := utils.Combinations(len(positions), k)
	combos := make([][]int, len(indexCombos))
	for i, idx := range indexCombos {
		combo := make([]int, k)
		for j, x := range idx {
			combo[j] = positions[x]
		}
		combos[i] = combo
	}
	return combos
}
