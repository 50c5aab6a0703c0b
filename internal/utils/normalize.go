package utils

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// NormalizeForm trims a word form and composes it to NFC so that
// precomposed and decomposed spellings compare as the same characters.
func NormalizeForm(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

// NormalizeRow applies NormalizeForm to every cell of a row, in place.
func NormalizeRow(row []string) []string {
	for i, cell := range row {
		row[i] = NormalizeForm(cell)
	}
	return row
}
