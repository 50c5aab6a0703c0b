package extract

import (
	"strings"

	"github.com/bastiangx/stemserve/pkg/multiset"
	"github.com/bastiangx/stemserve/pkg/paradigm"
)

// Substring returns the longest contiguous substrings of the shortest form
// that occur in every form. Each form lists every non-overlapping
// occurrence, scanning left to right.
func Substring(p *paradigm.Paradigm) *Candidates {
	forms := p.Forms()
	if p.IsSuppletive() {
		return suppletive(forms)
	}

	result := NewCandidates()
	short := []rune(p.ShortestForm())
	longest := 0

	for k := len(short); k > longest; k-- {
		for i := 0; i+k <= len(short); i++ {
			candidate := string(short[i : i+k])
			if result.Has(candidate) || !inEveryForm(candidate, forms) {
				continue
			}
			longest = k

			placements := make([][]Placement, len(forms))
			for w, form := range forms {
				for _, start := range multiset.Locate(form, candidate) {
					run := make(Placement, k)
					for j := range run {
						run[j] = start + j
					}
					placements[w] = append(placements[w], run)
				}
			}
			result.Set(candidate, placements)
		}
	}
	return result
}

func inEveryForm(candidate string, forms []string) bool {
	for _, form := range forms {
		if !strings.Contains(form, candidate) {
			return false
		}
	}
	return true
}
