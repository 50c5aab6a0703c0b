package paradigm

import (
	"fmt"

	"github.com/bastiangx/stemserve/pkg/multiset"
)

// ValidateRows checks a whole dataset before any Paradigm is built: every
// row needs a leaf and at least one data column, and all rows must share
// the column count of the first one.
func ValidateRows(rows [][]string) error {
	if len(rows) == 0 {
		return nil
	}
	columns := len(rows[0]) - 1
	for i, row := range rows {
		if len(row) < 2 {
			return fmt.Errorf("%w: row %d has no data columns", ErrMalformedInput, i)
		}
		if len(row)-1 != columns {
			return fmt.Errorf("%w: row %d has %d columns, expected %d",
				ErrMalformedInput, i, len(row)-1, columns)
		}
	}
	return nil
}

// UnionAffixes combines per-column affix lists of several paradigms
// aligned on the same columns: column i of the result is the letter-wise
// union of column i of every list. Lists shorter than the longest one
// contribute nothing to the missing columns.
func UnionAffixes(lists [][]string) []string {
	columns := 0
	for _, l := range lists {
		columns = max(columns, len(l))
	}

	result := make([]string, columns)
	for col := range result {
		var column []string
		for _, l := range lists {
			if col < len(l) {
				column = append(column, l[col])
			}
		}
		result[col] = multiset.Union(column)
	}
	return result
}
