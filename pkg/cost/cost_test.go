package cost

import (
	"testing"
)

func TestCompute(t *testing.T) {
	tests := []struct {
		name   string
		stem   string
		affix  string
		target string
		want   Counts
	}{
		{"exact stem", "nr", "u", "nru", Counts{2, 0, 1, 0, 0}},
		{"stem first then affix", "nr", "ginnu", "ginnnru", Counts{2, 0, 5, 0, 0}},
		{"unused affix", "nr", "igu", "anr", Counts{2, 0, 0, 3, 1}},
		{"unused stem", "abc", "", "a", Counts{1, 2, 0, 0, 0}},
		{"all extra", "", "", "go", Counts{0, 0, 0, 0, 2}},
		{"empty everything", "", "", "", Counts{}},
		{"stem shadows affix", "a", "a", "aa", Counts{1, 0, 1, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Compute(tt.stem, tt.affix, tt.target); got != tt.want {
				t.Errorf("Compute(%q, %q, %q) = %v, want %v", tt.stem, tt.affix, tt.target, got, tt.want)
			}
		})
	}
}

func TestWeighted(t *testing.T) {
	c := Counts{2, 1, 3, 0, 1}
	want := Vector{8, 3, 3, 0, 10}
	got := c.Weighted(DefaultWeights())
	if got != want {
		t.Fatalf("Weighted = %v, want %v", got, want)
	}
	if got.Sum() != 24 {
		t.Errorf("Sum = %d, want 24", got.Sum())
	}

	custom := Weights{StemUsed: 1, StemNotUsed: 20, AffixUsed: 5, AffixNotUsed: 10, Extra: 30}
	if got := c.Weighted(custom); got != (Vector{2, 20, 15, 0, 30}) {
		t.Errorf("Weighted(custom) = %v", got)
	}
}

// Every letter of the target is accounted for exactly once and every
// letter of stem and affix is either used or charged as unused.
func TestComputeConservesLetters(t *testing.T) {
	inputs := []string{"", "a", "nr", "ginnu", "aabbc", "banana", "xyz", "été"}

	for _, stem := range inputs {
		for _, affix := range inputs {
			for _, target := range inputs {
				c := Compute(stem, affix, target)
				if c[StemUsed]+c[StemNotUsed] != len([]rune(stem)) {
					t.Errorf("stem counts %v do not add up for stem %q", c, stem)
				}
				if c[AffixUsed]+c[AffixNotUsed] != len([]rune(affix)) {
					t.Errorf("affix counts %v do not add up for affix %q", c, affix)
				}
				if c[StemUsed]+c[AffixUsed]+c[Extra] != len([]rune(target)) {
					t.Errorf("target counts %v do not add up for target %q", c, target)
				}
				for i, n := range c {
					if n < 0 {
						t.Errorf("component %s negative in %v", ComponentNames[i], c)
					}
				}
			}
		}
	}
}

func TestComputeOrderIndependent(t *testing.T) {
	stem, affix := "nr", "ingu"
	permutations := []string{"ginnnru", "running", "nnnrugi", "urnnnig", "ignnnur"}

	want := Compute(stem, affix, permutations[0])
	for _, target := range permutations[1:] {
		if got := Compute(stem, affix, target); got != want {
			t.Errorf("Compute with target %q = %v, want %v", target, got, want)
		}
	}
}

func TestWeightsValidate(t *testing.T) {
	if err := DefaultWeights().Validate(); err != nil {
		t.Errorf("default weights rejected: %v", err)
	}
	w := DefaultWeights()
	w.Extra = -1
	if err := w.Validate(); err == nil {
		t.Error("expected negative weight to be rejected")
	}
}

func TestVectorAdd(t *testing.T) {
	a := Vector{1, 2, 3, 4, 5}
	b := Vector{5, 4, 3, 2, 1}
	if got := a.Add(b); got != (Vector{6, 6, 6, 6, 6}) {
		t.Errorf("Add = %v", got)
	}
	if a != (Vector{1, 2, 3, 4, 5}) {
		t.Error("Add must not mutate its receiver")
	}
}
