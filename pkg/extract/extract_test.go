package extract

import (
	"reflect"
	"slices"
	"strings"
	"testing"

	"github.com/bastiangx/stemserve/internal/utils"
	"github.com/bastiangx/stemserve/pkg/multiset"
	"github.com/bastiangx/stemserve/pkg/paradigm"
)

func mustParadigm(t *testing.T, row ...string) *paradigm.Paradigm {
	t.Helper()
	p, err := paradigm.FromRow(row, paradigm.DefaultOptions())
	if err != nil {
		t.Fatalf("FromRow(%q): %v", row, err)
	}
	return p
}

func pl(ns ...int) Placement { return Placement(ns) }

func assertCandidates(t *testing.T, name string, got *Candidates, wantKeys []string, want map[string][][]Placement) {
	t.Helper()
	if !slices.Equal(got.Keys(), wantKeys) {
		t.Fatalf("%s keys = %q, want %q", name, got.Keys(), wantKeys)
	}
	for stem, wantPlacements := range want {
		gotPlacements, ok := got.Get(stem)
		if !ok {
			t.Errorf("%s: missing candidate %q", name, stem)
			continue
		}
		if !reflect.DeepEqual(gotPlacements, wantPlacements) {
			t.Errorf("%s[%q] = %v, want %v", name, stem, gotPlacements, wantPlacements)
		}
	}
}

func TestSubstringRun(t *testing.T) {
	p := mustParadigm(t, "run", "run", "ran", "running")

	assertCandidates(t, "substring", Substring(p), []string{"r", "n"}, map[string][][]Placement{
		"r": {{pl(0)}, {pl(0)}, {pl(0)}},
		"n": {{pl(2)}, {pl(2)}, {pl(2), pl(3), pl(5)}},
	})
}

func TestMultisetRun(t *testing.T) {
	p := mustParadigm(t, "run", "run", "ran", "running")

	assertCandidates(t, "multiset", Multiset(p), []string{"nr"}, map[string][][]Placement{
		"nr": {{pl(0, 2)}, {pl(0, 2)}, {pl(0, 2), pl(0, 3), pl(0, 5)}},
	})
}

func TestSubsequenceRun(t *testing.T) {
	p := mustParadigm(t, "run", "run", "ran", "running")

	assertCandidates(t, "subsequence", Subsequence(p), []string{"rn"}, map[string][][]Placement{
		"rn": {{pl(0, 2)}, {pl(0, 2)}, {pl(0, 2), pl(0, 3), pl(0, 5)}},
	})
}

func TestRepeatedMaterial(t *testing.T) {
	p := mustParadigm(t, "ana", "ana", "anana")

	assertCandidates(t, "substring", Substring(p), []string{"ana"}, map[string][][]Placement{
		"ana": {{pl(0, 1, 2)}, {pl(0, 1, 2)}},
	})
	assertCandidates(t, "multiset", Multiset(p), []string{"aan"}, map[string][][]Placement{
		"aan": {
			{pl(0, 1, 2)},
			{pl(0, 1, 2), pl(0, 3, 4), pl(1, 2, 4), pl(0, 2, 3), pl(0, 1, 4), pl(2, 3, 4)},
		},
	})
	assertCandidates(t, "subsequence", Subsequence(p), []string{"ana"}, map[string][][]Placement{
		"ana": {
			{pl(0, 1, 2)},
			{pl(0, 1, 2), pl(0, 1, 4), pl(0, 3, 4), pl(2, 3, 4)},
		},
	})
}

func TestSuppletive(t *testing.T) {
	p := mustParadigm(t, "go", "go", "went")
	want := map[string][][]Placement{
		"": {{pl(0, 1)}, {pl(0, 1, 2, 3)}},
	}

	for _, m := range Methods {
		assertCandidates(t, m.String(), Extract(p, m), []string{""}, want)
	}

	r := All(p)
	for _, m := range Methods {
		assertCandidates(t, "All/"+m.String(), r.ByMethod(m), []string{""}, want)
	}
}

func TestSuppletiveEmptyForm(t *testing.T) {
	p := mustParadigm(t, "gap", "", "x")
	got := Substring(p)
	placements, ok := got.Get("")
	if !ok || len(placements) != 2 {
		t.Fatalf("Substring = %v", got.Entries())
	}
	if len(placements[0]) != 1 || len(placements[0][0]) != 0 {
		t.Errorf("empty form placement = %v, want a single empty tuple", placements[0])
	}
}

// Multiset placements per form number the LCM of the per-letter
// combination counts, not their product.
func TestMultisetUsesLCM(t *testing.T) {
	p := mustParadigm(t, "an", "an", "nanann")
	got := Multiset(p)

	placements, ok := got.Get("an")
	if !ok {
		t.Fatalf("missing candidate an, got %q", got.Keys())
	}
	want := []Placement{pl(0, 1), pl(2, 3), pl(1, 4), pl(3, 5)}
	if !reflect.DeepEqual(placements[1], want) {
		t.Errorf("nanann placements = %v, want %v", placements[1], want)
	}

	rows := [][]string{
		{"an", "an", "nanann"},
		{"ana", "ana", "anana"},
		{"run", "run", "ran", "running"},
		{"sing", "sing", "sang", "sung", "singing"},
		{"banana", "banana", "bananas", "nab"},
	}
	for _, row := range rows {
		p := mustParadigm(t, row...)
		stem := p.Stem()
		c := Multiset(p)
		perForm, _ := c.Get(stem)
		for w, form := range p.Forms() {
			positions := multiset.Positions(form)
			var lengths []int
			product := 1
			for r, k := range multiset.Counts(stem) {
				n := len(utils.Combinations(len(positions[r]), k))
				lengths = append(lengths, n)
				product *= n
			}
			if got, want := len(perForm[w]), utils.LCMAll(lengths); got != want {
				t.Errorf("%s/%s: %d placements, want LCM %d (product %d)", row[0], form, got, want, product)
			}
		}
	}
}

// Every returned placement must actually spell the candidate in its form.
func TestPlacementsSpellCandidate(t *testing.T) {
	rows := [][]string{
		{"run", "run", "ran", "running"},
		{"sing", "sing", "sang", "sung", "singing"},
		{"ana", "ana", "anana"},
		{"sehen", "sehen", "sah", "gesehen", "sieht"},
		{"être", "être", "été", "êtes"},
	}

	for _, row := range rows {
		p := mustParadigm(t, row...)
		r := All(p)
		for _, m := range Methods {
			for _, cand := range r.ByMethod(m).Entries() {
				for w, form := range p.Forms() {
					runes := []rune(form)
					if len(cand.Placements[w]) == 0 {
						t.Errorf("%s %s %q: no placement in %q", row[0], m, cand.Stem, form)
					}
					for _, placement := range cand.Placements[w] {
						if !slices.IsSorted(placement) {
							t.Errorf("%s %s: placement %v not ascending", row[0], m, placement)
						}
						var spelled []rune
						for _, i := range placement {
							spelled = append(spelled, runes[i])
						}
						got := string(spelled)
						if m == MethodMultiset {
							got = multiset.Alphabetize(got)
						}
						if got != cand.Stem {
							t.Errorf("%s %s: placement %v in %q spells %q, want %q", row[0], m, placement, form, got, cand.Stem)
						}
					}
				}
			}
		}
	}
}

// No candidate is shorter than another, and no longer common substring or
// subsequence of the shortest form exists.
func TestMaximality(t *testing.T) {
	rows := [][]string{
		{"run", "run", "ran", "running"},
		{"sing", "sing", "sang", "sung", "singing"},
		{"walk", "walk", "walks", "walked", "walking"},
		{"take", "take", "took", "taken", "taking"},
		{"abab", "abab", "babab", "ababa"},
	}

	for _, row := range rows {
		p := mustParadigm(t, row...)
		short := []rune(p.ShortestForm())

		sub := Substring(p)
		bestSub := checkUniformLength(t, row[0]+"/substring", sub)
		for k := bestSub + 1; k <= len(short); k++ {
			for i := 0; i+k <= len(short); i++ {
				s := string(short[i : i+k])
				common := true
				for _, f := range p.Forms() {
					common = common && strings.Contains(f, s)
				}
				if common {
					t.Errorf("%s: substring %q longer than best length %d", row[0], s, bestSub)
				}
			}
		}

		seq := Subsequence(p)
		bestSeq := checkUniformLength(t, row[0]+"/subsequence", seq)
		if bestSeq < bestSub {
			t.Errorf("%s: subsequence length %d shorter than substring length %d", row[0], bestSeq, bestSub)
		}
		for _, idx := range utils.Combinations(len(short), bestSeq+1) {
			cand := make([]rune, len(idx))
			for j, x := range idx {
				cand[j] = short[x]
			}
			common := true
			for _, f := range p.Forms() {
				common = common && isSubsequence(cand, []rune(f))
			}
			if common {
				t.Errorf("%s: subsequence %q longer than best length %d", row[0], string(cand), bestSeq)
			}
		}
	}
}

func checkUniformLength(t *testing.T, name string, c *Candidates) int {
	t.Helper()
	if c.Len() == 0 {
		t.Fatalf("%s: no candidates", name)
	}
	length := len([]rune(c.Keys()[0]))
	for _, k := range c.Keys() {
		if len([]rune(k)) != length {
			t.Errorf("%s: candidate %q has length %d, others %d", name, k, len([]rune(k)), length)
		}
	}
	return length
}

func TestScore(t *testing.T) {
	p := mustParadigm(t, "run", "run", "ran", "running")

	scored, err := Score(p, Substring(p))
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	want := []Scored{
		{Stem: "r", GrammarCost: 70, DataCost: 22, TotalCost: 92},
		{Stem: "n", GrammarCost: 70, DataCost: 22, TotalCost: 92},
	}
	if !reflect.DeepEqual(scored, want) {
		t.Errorf("Score = %+v, want %+v", scored, want)
	}
	if got := Cheapest(scored); len(got) != 2 {
		t.Errorf("Cheapest kept %d of two tied candidates", len(got))
	}

	multi, err := Score(p, Multiset(p))
	if err != nil {
		t.Fatal(err)
	}
	if multi[0].TotalCost != p.TotalCost() {
		t.Errorf("multiset stem rescored to %d, paradigm total is %d", multi[0].TotalCost, p.TotalCost())
	}
	if Cheapest(nil) != nil {
		t.Error("Cheapest(nil) should be nil")
	}
}

func TestCandidatesOrder(t *testing.T) {
	c := NewCandidates()
	c.Set("b", nil)
	c.Set("a", nil)
	c.Set("b", [][]Placement{{pl(1)}})

	if !slices.Equal(c.Keys(), []string{"b", "a"}) {
		t.Errorf("Keys = %q, want discovery order", c.Keys())
	}
	if got, _ := c.Get("b"); len(got) != 1 {
		t.Error("Set should replace placements of an existing stem")
	}
	if pl(0, 1, 2).String() != "(0,1,2)" {
		t.Errorf("Placement.String = %s", pl(0, 1, 2))
	}
}

func TestParseMethod(t *testing.T) {
	for _, m := range Methods {
		got, err := ParseMethod(m.String())
		if err != nil || got != m {
			t.Errorf("ParseMethod(%q) = %v, %v", m.String(), got, err)
		}
	}
	if _, err := ParseMethod("bogus"); err == nil {
		t.Error("expected error for unknown method")
	}
}
