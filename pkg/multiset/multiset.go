// Package multiset treats strings as bags of characters.
//
// All functions work on Unicode code points, never bytes, and every
// position they report is a rune offset into the word. They are pure and
// total: empty inputs produce empty results.
package multiset

import (
	"slices"
	"strings"
	"unicode/utf8"
)

// Alphabetize returns the characters of s in sorted order.
func Alphabetize(s string) string {
	runes := []rune(s)
	slices.Sort(runes)
	return string(runes)
}

// Counts returns how many times each character occurs in s.
func Counts(s string) map[rune]int {
	counts := make(map[rune]int)
	for _, r := range s {
		counts[r]++
	}
	return counts
}

// Positions returns, for every distinct character of word, the ascending
// list of rune offsets where it occurs.
func Positions(word string) map[rune][]int {
	positions := make(map[rune][]int)
	for i, r := range []rune(word) {
		positions[r] = append(positions[r], i)
	}
	return positions
}

// Distinct returns the distinct characters of s in sorted order.
func Distinct(s string) []rune {
	runes := []rune(s)
	slices.Sort(runes)
	return slices.Compact(runes)
}

// Locate returns the rune offsets at which pattern starts inside word,
// scanning left to right. A match consumes its span before the search
// resumes, so occurrences never overlap.
func Locate(word, pattern string) []int {
	w, p := []rune(word), []rune(pattern)
	if len(p) == 0 || len(p) > len(w) {
		return nil
	}

	var starts []int
	for i := 0; i+len(p) <= len(w); {
		if slices.Equal(w[i:i+len(p)], p) {
			starts = append(starts, i)
			i += len(p)
			continue
		}
		i++
	}
	return starts
}

// Union returns the letter-wise union of words: each distinct character
// repeated as many times as it occurs in the word that has the most of
// it. The result is alphabetized.
func Union(words []string) string {
	maxCounts := make(map[rune]int)
	for _, w := range words {
		for r, n := range Counts(w) {
			if n > maxCounts[r] {
				maxCounts[r] = n
			}
		}
	}

	letters := make([]rune, 0, len(maxCounts))
	for r := range maxCounts {
		letters = append(letters, r)
	}
	slices.Sort(letters)

	var b strings.Builder
	for _, r := range letters {
		b.WriteString(strings.Repeat(string(r), maxCounts[r]))
	}
	return b.String()
}

// Reorder rearranges the characters of s to follow their order in sample.
// Each character of sample claims one matching character of s; characters
// of s that sample never claims are dropped.
func Reorder(s, sample string) string {
	remaining := Counts(s)
	var b strings.Builder
	for _, r := range sample {
		if remaining[r] > 0 {
			remaining[r]--
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Remove deletes one occurrence of each character of letters from s,
// leftmost first, keeping the order of what is left. Characters of
// letters that s lacks are ignored.
func Remove(s, letters string) string {
	pending := Counts(letters)
	var b strings.Builder
	for _, r := range s {
		if pending[r] > 0 {
			pending[r]--
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Contains reports whether sub is a sub-multiset of s.
func Contains(s, sub string) bool {
	counts := Counts(s)
	for _, r := range sub {
		counts[r]--
		if counts[r] < 0 {
			return false
		}
	}
	return true
}

// Len returns the number of characters in s.
func Len(s string) int {
	return utf8.RuneCountInString(s)
}
