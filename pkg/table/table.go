// Package table reads paradigm tables: one paradigm per line, the leaf
// label first and then one word form per column.
package table

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bastiangx/stemserve/internal/utils"
	"github.com/bastiangx/stemserve/pkg/paradigm"
	"github.com/charmbracelet/log"
)

// ErrEmptyTable is returned when a table holds no rows.
var ErrEmptyTable = errors.New("empty table")

// Options control parsing.
type Options struct {
	Delimiter  rune
	SkipHeader bool
	Normalize  bool
}

// DefaultOptions parses comma separated tables with normalization on.
func DefaultOptions() Options {
	return Options{Delimiter: ',', Normalize: true}
}

// Table is a validated dataset.
type Table struct {
	Source  string
	Header  []string
	Rows    [][]string
	Columns int
}

// Load reads and validates the table at path.
func Load(path string, opts Options) (*Table, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}
	opts.Delimiter = delimiterFor(format, opts.Delimiter)

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open table %s: %w", path, err)
	}
	defer file.Close()

	t, err := Parse(file, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	t.Source = path
	log.Debugf("Loaded %s (%s): %d rows, %d columns", path, format, len(t.Rows), t.Columns)
	return t, nil
}

// Parse reads a table from r. Every row must have a leaf and at least
// one word form, and all rows must agree on the column count.
func Parse(r io.Reader, opts Options) (*Table, error) {
	reader := csv.NewReader(r)
	reader.Comma = opts.Delimiter
	if reader.Comma == 0 {
		reader.Comma = ','
	}
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	t := &Table{}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read table: %w", err)
		}
		line, _ := reader.FieldPos(0)

		row := cleanRow(record, opts.Normalize)
		if opts.SkipHeader && t.Header == nil {
			t.Header = row
			continue
		}
		if len(row) < 2 {
			return nil, fmt.Errorf("%w: line %d has no data columns", paradigm.ErrMalformedInput, line)
		}
		if t.Columns == 0 {
			t.Columns = len(row) - 1
		} else if len(row)-1 != t.Columns {
			return nil, fmt.Errorf("%w: line %d has %d columns, expected %d",
				paradigm.ErrMalformedInput, line, len(row)-1, t.Columns)
		}
		t.Rows = append(t.Rows, row)
	}

	if len(t.Rows) == 0 {
		return nil, ErrEmptyTable
	}
	return t, nil
}

// ParseRow splits a single delimited line into a row.
func ParseRow(line string, opts Options) ([]string, error) {
	t, err := Parse(strings.NewReader(line), opts)
	if err != nil {
		return nil, err
	}
	return t.Rows[0], nil
}

// cleanRow trims cells and optionally normalizes them to NFC.
// Empty cells are kept so column positions stay aligned.
func cleanRow(record []string, normalize bool) []string {
	row := make([]string, len(record))
	for i, cell := range record {
		if normalize {
			row[i] = utils.NormalizeForm(cell)
		} else {
			row[i] = strings.TrimSpace(cell)
		}
	}
	return row
}
