package utils

import (
	"unicode"
)

// IsSeparator checks if a rune may appear inside a word form
// without being a letter (elision marks, hyphenated compounds)
func IsSeparator(r rune) bool {
	return r == '\'' || r == '-' || r == '’'
}

// ContainsNumbers checks if a string contains any numeric digits
func ContainsNumbers(s string) bool {
	for _, r := range s {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

// IsOnlyNumbers checks if a string consists entirely of numeric digits
func IsOnlyNumbers(s string) bool {
	if len(s) == 0 {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// ContainsSpecialChars checks if a string contains anything other than
// letters, combining marks and word-internal separators
func ContainsSpecialChars(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.Is(unicode.Mn, r) && !IsSeparator(r) {
			return true
		}
	}
	return false
}

// IsValidForm checks if a cell looks like a surface word form.
// Empty cells are valid: they are a paradigm gap, not garbage.
func IsValidForm(s string) bool {
	if s == "" {
		return true
	}
	if IsOnlyNumbers(s) || ContainsNumbers(s) {
		return false
	}
	return !ContainsSpecialChars(s)
}

// IsValidRow reports the first data cell that fails IsValidForm.
// The leaf label at index 0 is not checked.
func IsValidRow(row []string) (int, bool) {
	for i := 1; i < len(row); i++ {
		if !IsValidForm(row[i]) {
			return i, false
		}
	}
	return 0, true
}
