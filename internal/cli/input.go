// Package cli provides an interactive input handler for analysing paradigms one row at a time
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/bastiangx/stemserve/internal/logger"
	"github.com/bastiangx/stemserve/internal/utils"
	"github.com/bastiangx/stemserve/pkg/analysis"
	"github.com/bastiangx/stemserve/pkg/index"
	"github.com/bastiangx/stemserve/pkg/paradigm"
	"github.com/bastiangx/stemserve/pkg/render"
	"github.com/bastiangx/stemserve/pkg/table"
	"github.com/charmbracelet/log"
)

// InputHandler reads rows from the terminal and prints their analysis
type InputHandler struct {
	analyzer  *analysis.Analyzer
	index     *index.Index
	renderer  *render.Renderer
	tableOpts table.Options
	noFilter  bool // If true, rows with digits or symbols are analysed anyway
	results   []analysis.Result
	in        io.Reader
	out       io.Writer
	log       *log.Logger
}

// NewInputHandler creates a new CLI input handler
func NewInputHandler(analyzer *analysis.Analyzer, tableOpts table.Options, noFilter bool, in io.Reader, out io.Writer) *InputHandler {
	return &InputHandler{
		analyzer:  analyzer,
		index:     index.New(),
		renderer:  render.New(out),
		tableOpts: tableOpts,
		noFilter:  noFilter,
		in:        in,
		out:       out,
		log:       logger.Default("cli"),
	}
}

// Start begins the CLI input loop. It returns nil when the input ends.
func (h *InputHandler) Start() error {
	h.log.Print("stemserve CLI")
	h.log.Printf("enter a row as leaf%cform%cform..., :lookup <prefix>, :shared [n], :summary or :q", h.tableOpts.Delimiter, h.tableOpts.Delimiter)
	reader := bufio.NewReader(h.in)

	for {
		line, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		line = strings.TrimSpace(line)
		if line == ":q" {
			return nil
		}
		if line != "" {
			h.handleInput(line)
		}
		if err != nil {
			return nil
		}
	}
}

// handleInput dispatches commands and rows
func (h *InputHandler) handleInput(line string) {
	switch {
	case line == ":summary":
		if len(h.results) == 0 {
			h.log.Warn("Nothing analysed yet")
			return
		}
		fmt.Fprintln(h.out, h.renderer.Summary(analysis.Summarize(h.results)))
	case strings.HasPrefix(line, ":lookup"):
		h.handleLookup(strings.TrimSpace(strings.TrimPrefix(line, ":lookup")))
	case strings.HasPrefix(line, ":shared"):
		if err := h.handleShared(strings.TrimSpace(strings.TrimPrefix(line, ":shared"))); err != nil {
			h.log.Errorf("Invalid command: %v", err)
		}
	case strings.HasPrefix(line, ":"):
		h.log.Errorf("Unknown command: %s", line)
	default:
		if err := h.handleRow(line); err != nil {
			h.log.Errorf("Row rejected: %v", err)
		}
	}
}

// handleRow analyses one row. Every row of a session must have as many
// columns as the first one.
func (h *InputHandler) handleRow(line string) error {
	row, err := table.ParseRow(line, h.tableOpts)
	if err != nil {
		return err
	}
	if len(h.results) > 0 {
		if want := h.results[0].Paradigm.Columns(); len(row)-1 != want {
			return fmt.Errorf("%w: row %q has %d columns, session uses %d",
				paradigm.ErrMalformedInput, row[0], len(row)-1, want)
		}
	}

	if !h.noFilter {
		if i, ok := utils.IsValidRow(row); !ok {
			h.log.Warnf("Skipping row %q: column %d (%q) is not a word form", row[0], i, row[i])
			return nil
		}
	} else {
		h.log.Debug("Input filtering disabled - allowing all inputs")
	}

	start := time.Now()
	res, err := h.analyzer.AnalyzeRow(row)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}
	res.Row = len(h.results)
	h.results = append(h.results, res)
	h.index.Add(res)
	h.log.Debugf("Took %v for %q", time.Since(start), row[0])

	fmt.Fprintln(h.out, h.renderer.Report(res))
	return nil
}

func (h *InputHandler) handleLookup(prefix string) {
	matches := h.index.WithPrefix(prefix)
	if len(matches) == 0 {
		h.log.Warnf("No stems found for prefix: '%s'", prefix)
		return
	}

	fmt.Fprintf(h.out, "Found %d stems for prefix '%s':\n", len(matches), prefix)
	h.printMatches(matches)
}

// handleShared lists stems proposed by at least n paradigms, 2 by default
func (h *InputHandler) handleShared(arg string) error {
	n := 2
	if arg != "" {
		v, err := strconv.Atoi(arg)
		if err != nil || v < 1 {
			return fmt.Errorf(":shared takes a positive count, got %q", arg)
		}
		n = v
	}

	matches := h.index.Shared(n)
	if len(matches) == 0 {
		h.log.Warnf("No stem is shared by %d paradigms", n)
		return nil
	}
	fmt.Fprintf(h.out, "Found %d stems shared by at least %d paradigms:\n", len(matches), n)
	h.printMatches(matches)
	return nil
}

func (h *InputHandler) printMatches(matches []index.Match) {
	for i, m := range matches {
		leaves := make([]string, 0, len(m.Entries))
		for _, e := range m.Entries {
			leaves = append(leaves, fmt.Sprintf("%s/%s", e.Leaf, e.Method))
		}
		fmt.Fprintf(h.out, "%2d. %-16s %s\n", i+1, render.Null(m.Stem), strings.Join(leaves, ", "))
	}
}
