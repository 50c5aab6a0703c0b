// Package extract finds the stems that best explain a paradigm's word forms
// under three notions of shared material: contiguous substrings, letter
// multisets and ordered subsequences.
//
// Each extractor returns a Candidates set in which every stem reaches the
// same, best score for that extractor; ties are all kept. Positions are rune
// offsets. When a paradigm is suppletive every extractor returns the single
// pseudo-candidate "" whose only placement covers each whole word.
package extract

import (
	"fmt"
	"sync"

	"github.com/bastiangx/stemserve/pkg/paradigm"
)

// Method names an extraction algorithm.
type Method int

const (
	MethodSubstring Method = iota
	MethodMultiset
	MethodSubsequence
)

// Methods lists every extractor in report order.
var Methods = []Method{MethodSubstring, MethodMultiset, MethodSubsequence}

func (m Method) String() string {
	switch m {
	case MethodSubstring:
		return "substring"
	case MethodMultiset:
		return "multiset"
	case MethodSubsequence:
		return "subsequence"
	default:
		return fmt.Sprintf("Method(%d)", int(m))
	}
}

// ParseMethod is the inverse of Method.String.
func ParseMethod(s string) (Method, error) {
	for _, m := range Methods {
		if m.String() == s {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown extraction method %q", s)
}

// Extract runs the extractor named by m.
func Extract(p *paradigm.Paradigm, m Method) *Candidates {
	switch m {
	case MethodMultiset:
		return Multiset(p)
	case MethodSubsequence:
		return Subsequence(p)
	default:
		return Substring(p)
	}
}

// Result holds the output of all three extractors for one paradigm.
type Result struct {
	Substring   *Candidates
	Multiset    *Candidates
	Subsequence *Candidates
}

// ByMethod returns the candidate set produced by m.
func (r Result) ByMethod(m Method) *Candidates {
	switch m {
	case MethodMultiset:
		return r.Multiset
	case MethodSubsequence:
		return r.Subsequence
	default:
		return r.Substring
	}
}

// All runs the three extractors concurrently. They only read p.
func All(p *paradigm.Paradigm) Result {
	var (
		r  Result
		wg sync.WaitGroup
	)
	wg.Add(3)
	go func() {
		defer wg.Done()
		r.Substring = Substring(p)
	}()
	go func() {
		defer wg.Done()
		r.Multiset = Multiset(p)
	}()
	go func() {
		defer wg.Done()
		r.Subsequence = Subsequence(p)
	}()
	wg.Wait()
	return r
}

// suppletive is the result for a paradigm with an empty multiset stem:
// the whole of every word is affix material.
func suppletive(forms []string) *Candidates {
	placements := make([][]Placement, len(forms))
	for i, form := range forms {
		n := len([]rune(form))
		whole := make(Placement, n)
		for j := range whole {
			whole[j] = j
		}
		placements[i] = []Placement{whole}
	}
	c := NewCandidates()
	c.Set("", placements)
	return c
}
