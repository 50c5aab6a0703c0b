package table

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bastiangx/stemserve/pkg/paradigm"
	"github.com/charmbracelet/log"
)

func init() {
	log.SetLevel(log.ErrorLevel)
}

func TestParse(t *testing.T) {
	input := "run, run ,ran,running\r\ngo,go,went,going\n\nwalk,walk,walked,walking\n"
	tbl, err := Parse(strings.NewReader(input), DefaultOptions())
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if tbl.Columns != 3 {
		t.Errorf("Columns = %d, want 3", tbl.Columns)
	}
	if len(tbl.Rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(tbl.Rows))
	}
	want := []string{"run", "run", "ran", "running"}
	for i, cell := range tbl.Rows[0] {
		if cell != want[i] {
			t.Errorf("Rows[0][%d] = %q, want %q", i, cell, want[i])
		}
	}
}

func TestParseHeader(t *testing.T) {
	input := "lemma\tsg\tpl\nhund\thund\thunde\n"
	opts := Options{Delimiter: '\t', SkipHeader: true, Normalize: true}
	tbl, err := Parse(strings.NewReader(input), opts)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(tbl.Header) != 3 || tbl.Header[0] != "lemma" {
		t.Errorf("Header = %v", tbl.Header)
	}
	if len(tbl.Rows) != 1 || tbl.Rows[0][2] != "hunde" {
		t.Errorf("Rows = %v", tbl.Rows)
	}
}

func TestParseNormalizes(t *testing.T) {
	input := "cafe,cafe\u0301,cafe\u0301s\n"
	tbl, err := Parse(strings.NewReader(input), DefaultOptions())
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if got := tbl.Rows[0][1]; got != "caf\u00e9" {
		t.Errorf("cell = %q, want precomposed form", got)
	}

	raw, err := Parse(strings.NewReader(input), Options{Delimiter: ','})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if got := raw.Rows[0][1]; got != "cafe\u0301" {
		t.Errorf("cell = %q, want decomposed form kept", got)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"empty", "", ErrEmptyTable},
		{"header only", "lemma,sg\n", ErrEmptyTable},
		{"no data columns", "run\n", paradigm.ErrMalformedInput},
		{"ragged", "run,run,ran\ngo,go\n", paradigm.ErrMalformedInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			opts.SkipHeader = tt.name == "header only"
			_, err := Parse(strings.NewReader(tt.input), opts)
			if !errors.Is(err, tt.want) {
				t.Errorf("Parse() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestParseKeepsEmptyCells(t *testing.T) {
	tbl, err := Parse(strings.NewReader("be,be,,been\n"), DefaultOptions())
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if tbl.Columns != 3 || tbl.Rows[0][2] != "" {
		t.Errorf("Rows = %q, Columns = %d", tbl.Rows, tbl.Columns)
	}
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name  string
		want  Format
		delim rune
		err   bool
	}{
		{"verbs.csv", FormatCSV, ',', false},
		{"verbs.TSV", FormatTSV, '\t', false},
		{"verbs.txt", FormatText, ';', false},
		{"verbs", FormatText, ';', false},
		{"verbs.bin", FormatUnknown, 0, true},
	}
	for _, tt := range tests {
		got, err := DetectFormat(tt.name)
		if (err != nil) != tt.err {
			t.Errorf("DetectFormat(%q) error = %v", tt.name, err)
			continue
		}
		if tt.err {
			if !errors.Is(err, ErrUnsupportedFormat) {
				t.Errorf("DetectFormat(%q) error = %v, want ErrUnsupportedFormat", tt.name, err)
			}
			continue
		}
		if got != tt.want {
			t.Errorf("DetectFormat(%q) = %v, want %v", tt.name, got, tt.want)
		}
		if d := delimiterFor(got, ';'); d != tt.delim {
			t.Errorf("delimiterFor(%v) = %q, want %q", got, d, tt.delim)
		}
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "verbs.tsv")
	if err := os.WriteFile(path, []byte("run\trun\tran\ngo\tgo\twent\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	// The extension wins over the configured delimiter.
	tbl, err := Load(path, DefaultOptions())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if tbl.Source != path || len(tbl.Rows) != 2 || tbl.Columns != 2 {
		t.Errorf("Load() = %+v", tbl)
	}

	if _, err := Load(filepath.Join(dir, "missing.csv"), DefaultOptions()); err == nil {
		t.Error("Load() of missing file should fail")
	}
}

func TestParseRow(t *testing.T) {
	row, err := ParseRow("go, go, went", DefaultOptions())
	if err != nil {
		t.Fatalf("ParseRow() error = %v", err)
	}
	if len(row) != 3 || row[2] != "went" {
		t.Errorf("ParseRow() = %q", row)
	}
}
