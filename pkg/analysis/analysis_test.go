package analysis

import (
	"errors"
	"fmt"
	"slices"
	"testing"

	"github.com/bastiangx/stemserve/pkg/extract"
	"github.com/bastiangx/stemserve/pkg/paradigm"
	"github.com/charmbracelet/log"
)

func init() {
	log.SetLevel(log.ErrorLevel)
}

var verbs = [][]string{
	{"run", "run", "ran", "running"},
	{"go", "go", "went", "going"},
	{"walk", "walk", "walked", "walking"},
	{"sing", "sing", "sang", "singing"},
	{"take", "take", "took", "taking"},
}

func TestAnalyzeKeepsInputOrder(t *testing.T) {
	for _, workers := range []int{1, 2, 4, 16} {
		t.Run(fmt.Sprintf("workers_%d", workers), func(t *testing.T) {
			opts := DefaultOptions()
			opts.Workers = workers
			results, err := New(opts).Analyze(verbs)
			if err != nil {
				t.Fatalf("Analyze: %v", err)
			}
			if len(results) != len(verbs) {
				t.Fatalf("got %d results, want %d", len(results), len(verbs))
			}
			for i, r := range results {
				if r.Row != i || r.Paradigm.Leaf() != verbs[i][0] {
					t.Errorf("result %d is row %d (%s)", i, r.Row, r.Paradigm.Leaf())
				}
				if r.Substring == nil || r.Multiset == nil || r.Subsequence == nil {
					t.Errorf("row %d missing an extractor result", i)
				}
			}
		})
	}
}

// Parallel analysis must match a plain sequential pass.
func TestAnalyzeMatchesSequential(t *testing.T) {
	opts := DefaultOptions()
	opts.Workers = 8
	results, err := New(opts).Analyze(verbs)
	if err != nil {
		t.Fatal(err)
	}

	for i, row := range verbs {
		p, err := paradigm.FromRow(row, paradigm.DefaultOptions())
		if err != nil {
			t.Fatal(err)
		}
		if results[i].Paradigm.Stem() != p.Stem() || results[i].Paradigm.TotalCost() != p.TotalCost() {
			t.Errorf("row %d: parallel stem/cost %q/%d, sequential %q/%d", i,
				results[i].Paradigm.Stem(), results[i].Paradigm.TotalCost(), p.Stem(), p.TotalCost())
		}
		for _, m := range extract.Methods {
			want := extract.Extract(p, m).Keys()
			if got := results[i].ByMethod(m).Keys(); !slices.Equal(got, want) {
				t.Errorf("row %d %s: %q, want %q", i, m, got, want)
			}
		}
	}
}

func TestAnalyzeRejectsMalformed(t *testing.T) {
	tests := []struct {
		name string
		rows [][]string
	}{
		{"leaf only", [][]string{{"run"}}},
		{"ragged", [][]string{{"run", "run", "ran"}, {"go", "go"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results, err := New(DefaultOptions()).Analyze(tt.rows)
			if !errors.Is(err, paradigm.ErrMalformedInput) {
				t.Errorf("err = %v, want ErrMalformedInput", err)
			}
			if results != nil {
				t.Error("no partial results on error")
			}
		})
	}
}

func TestAnalyzeEmpty(t *testing.T) {
	results, err := New(DefaultOptions()).Analyze(nil)
	if err != nil || len(results) != 0 {
		t.Errorf("Analyze(nil) = %v, %v", results, err)
	}
}

func TestAnalyzeRowNormalizes(t *testing.T) {
	// decomposed "e\u0301" in one column, precomposed "\u00e9" in the other
	row := []string{"etre", "e\u0301te\u0301", "\u00e9t\u00e9s"}

	r, err := New(DefaultOptions()).AnalyzeRow(row)
	if err != nil {
		t.Fatal(err)
	}
	if r.Paradigm.Stem() != "t\u00e9\u00e9" {
		t.Errorf("Stem = %q, want normalized t\u00e9\u00e9", r.Paradigm.Stem())
	}
	if row[1] != "e\u0301te\u0301" {
		t.Error("AnalyzeRow must not rewrite the caller's row")
	}

	opts := DefaultOptions()
	opts.Normalize = false
	raw, err := New(opts).AnalyzeRow(row)
	if err != nil {
		t.Fatal(err)
	}
	if raw.Paradigm.Stem() != "t" {
		t.Errorf("unnormalized Stem = %q, want t", raw.Paradigm.Stem())
	}
}

func TestSummarize(t *testing.T) {
	results, err := New(DefaultOptions()).Analyze([][]string{
		{"run", "run", "ran", "running"},
		{"go", "go", "went", "going"},
		{"walk", "walk", "walked", "walking"},
	})
	if err != nil {
		t.Fatal(err)
	}

	s := Summarize(results)
	if s.Paradigms != 3 || s.Columns != 3 {
		t.Errorf("Paradigms/Columns = %d/%d", s.Paradigms, s.Columns)
	}
	if s.Suppletive != 1 {
		t.Errorf("Suppletive = %d, want 1", s.Suppletive)
	}
	wantTotal := 0
	for _, r := range results {
		wantTotal += r.Paradigm.TotalCost()
	}
	if s.TotalCost != wantTotal || s.GrammarCost+s.DataCost != s.TotalCost {
		t.Errorf("TotalCost = %d (grammar %d + data %d), want %d", s.TotalCost, s.GrammarCost, s.DataCost, wantTotal)
	}
	if len(s.ColumnAffixes) != 3 {
		t.Errorf("ColumnAffixes = %q", s.ColumnAffixes)
	}
}

func TestResultRank(t *testing.T) {
	r, err := New(DefaultOptions()).AnalyzeRow([]string{"run", "run", "ran", "running"})
	if err != nil {
		t.Fatal(err)
	}
	scored, err := r.Rank(extract.MethodMultiset)
	if err != nil {
		t.Fatal(err)
	}
	if len(scored) != 1 || scored[0].TotalCost != 91 {
		t.Errorf("Rank(multiset) = %+v", scored)
	}
}
