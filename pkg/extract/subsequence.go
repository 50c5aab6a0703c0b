package extract

import (
	"github.com/bastiangx/stemserve/internal/utils"
	"github.com/bastiangx/stemserve/pkg/multiset"
	"github.com/bastiangx/stemserve/pkg/paradigm"
)

// Subsequence returns the longest ordered subsequences of the shortest
// form that every form also contains as a subsequence. Each form lists
// every strictly increasing placement, not just the leftmost one.
func Subsequence(p *paradigm.Paradigm) *Candidates {
	forms := p.Forms()
	if p.IsSuppletive() {
		return suppletive(forms)
	}

	short := []rune(p.ShortestForm())
	words := make([][]rune, len(forms))
	for i, form := range forms {
		words[i] = []rune(form)
	}

	var accepted [][]rune
	seen := make(map[string]bool)
	longest := 0

	for k := len(short); k > longest; k-- {
		for idx := range utils.EachCombination(len(short), k) {
			candidate := make([]rune, k)
			for j, x := range idx {
				candidate[j] = short[x]
			}
			key := string(candidate)
			if seen[key] {
				continue
			}
			seen[key] = true

			if subsequenceOfAll(candidate, words) {
				accepted = append(accepted, candidate)
				longest = k
			}
		}
	}

	result := NewCandidates()
	for _, candidate := range accepted {
		placements := make([][]Placement, len(forms))
		for w, form := range forms {
			placements[w] = increasingPlacements(candidate, multiset.Positions(form))
		}
		result.Set(string(candidate), placements)
	}
	return result
}

func subsequenceOfAll(candidate []rune, words [][]rune) bool {
	for _, w := range words {
		if !isSubsequence(candidate, w) {
			return false
		}
	}
	return true
}

func isSubsequence(sub, word []rune) bool {
	i := 0
	for _, r := range word {
		if i < len(sub) && sub[i] == r {
			i++
		}
	}
	return i == len(sub)
}

// increasingPlacements enumerates the cross product of each candidate
// letter's positions, keeping only strictly increasing tuples. Positions are
// walked in ascending order so the result follows cross-product order.
func increasingPlacements(candidate []rune, positions map[rune][]int) []Placement {
	var (
		result  []Placement
		current = make(Placement, 0, len(candidate))
	)

	var walk func(j, after int)
	walk = func(j, after int) {
		if j == len(candidate) {
			result = append(result, append(Placement(nil), current...))
			return
		}
		for _, pos := range positions[candidate[j]] {
			if pos <= after {
				continue
			}
			current = append(current, pos)
			walk(j+1, pos)
			current = current[:len(current)-1]
		}
	}
	walk(0, -1)
	return result
}
