package analysis

import (
	"github.com/bastiangx/stemserve/pkg/paradigm"
)

// Summary aggregates the costs of a batch.
type Summary struct {
	Paradigms   int
	Suppletive  int
	Columns     int
	GrammarCost int
	DataCost    int
	TotalCost   int
	// ColumnAffixes is, per column, the letter-wise union of every
	// paradigm's residual affix in that column.
	ColumnAffixes []string
}

// Summarize totals the costs of results and builds the per-column affix
// inventory.
func Summarize(results []Result) Summary {
	s := Summary{Paradigms: len(results)}
	affixLists := make([][]string, 0, len(results))

	for _, r := range results {
		p := r.Paradigm
		if p.IsSuppletive() {
			s.Suppletive++
		}
		s.Columns = max(s.Columns, p.Columns())
		s.GrammarCost += p.GrammarCost()
		s.DataCost += p.DataCost()
		s.TotalCost += p.TotalCost()
		affixLists = append(affixLists, p.Affixes())
	}
	s.ColumnAffixes = paradigm.UnionAffixes(affixLists)
	return s
}
