package utils

import (
	"iter"
	"slices"
)

// GCD returns the greatest common divisor using Euclid's algorithm.
func GCD(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// LCM returns the least common multiple of a and b.
// Zero if either argument is zero.
func LCM(a, b int) int {
	if a == 0 || b == 0 {
		return 0
	}
	return a / GCD(a, b) * b
}

// LCMAll folds LCM over ns. Returns 0 for an empty slice.
func LCMAll(ns []int) int {
	if len(ns) == 0 {
		return 0
	}
	result := ns[0]
	for _, n := range ns[1:] {
		result = LCM(result, n)
	}
	return result
}

// Combinations returns every k-combination of the indices 0..n-1 in
// lexicographic order. k == 0 yields a single empty combination,
// k > n yields none.
func Combinations(n, k int) [][]int {
	var result [][]int
	for combo := range EachCombination(n, k) {
		result = append(result, slices.Clone(combo))
	}
	return result
}

// EachCombination yields the same sequence as Combinations without
// materializing it. The yielded slice is reused between iterations;
// clone it to keep it.
func EachCombination(n, k int) iter.Seq[[]int] {
	return func(yield func([]int) bool) {
		if k < 0 || k > n {
			return
		}
		combo := make([]int, k)
		for i := range combo {
			combo[i] = i
		}
		for {
			if !yield(combo) {
				return
			}

			// rightmost index that can still move right
			i := k - 1
			for i >= 0 && combo[i] == n-k+i {
				i--
			}
			if i < 0 {
				return
			}
			combo[i]++
			for j := i + 1; j < k; j++ {
				combo[j] = combo[j-1] + 1
			}
		}
	}
}
