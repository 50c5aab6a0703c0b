package server

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"time"
	"unicode/utf8"

	"github.com/bastiangx/stemserve/pkg/analysis"
	"github.com/bastiangx/stemserve/pkg/config"
	"github.com/bastiangx/stemserve/pkg/extract"
	"github.com/bastiangx/stemserve/pkg/index"
	"github.com/bastiangx/stemserve/pkg/paradigm"
	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

// Server handles msgpack IPC for paradigm analysis
type Server struct {
	analyzer     *analysis.Analyzer
	index        *index.Index
	config       *config.Config
	reader       *bufio.Reader
	writer       io.Writer
	requestCount int
	// rowsSeen offsets indexed rows so every analyzed row keeps its own number
	rowsSeen int
}

// NewServer creates a server reading requests from r and writing responses to w
func NewServer(analyzer *analysis.Analyzer, ix *index.Index, cfg *config.Config, r io.Reader, w io.Writer) *Server {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if ix == nil {
		ix = index.New()
	}
	return &Server{
		analyzer: analyzer,
		index:    ix,
		config:   cfg,
		reader:   bufio.NewReader(r),
		writer:   w,
	}
}

// Start processes requests until the input stream ends. A message that is
// not valid msgpack stops the server, since the stream cannot be resynced.
func (s *Server) Start() error {
	log.Debug("Starting msgpack server")
	s.sendResponse(HealthResponse{Status: "ready", Stems: s.index.Len(), Workers: s.analyzer.Workers()})

	dec := msgpack.NewDecoder(s.reader)
	for {
		raw, err := dec.DecodeRaw()
		if err != nil {
			if errors.Is(err, io.EOF) {
				log.Debugf("Input closed after %d requests", s.requestCount)
				return nil
			}
			log.Errorf("Reading request: %v", err)
			s.sendError("", "Invalid msgpack stream", 400)
			return err
		}
		s.handleRequest(raw)
	}
}

// handleRequest decodes and dispatches one message
func (s *Server) handleRequest(raw msgpack.RawMessage) {
	s.requestCount++

	var req Request
	if err := msgpack.Unmarshal(raw, &req); err != nil {
		log.Errorf("Unmarshaling request: %v", err)
		s.sendError(req.ID, "Invalid request format", 400)
		return
	}

	switch req.Action {
	case ActionAnalyze:
		s.handleAnalyze(req)
	case ActionLookup:
		s.handleLookup(req)
	case ActionShared:
		s.handleShared(req)
	case ActionHealth:
		stats := s.analyzer.CacheStats()
		s.sendResponse(HealthResponse{
			ID:      req.ID,
			Status:  "ok",
			Stems:   s.index.Len(),
			Workers: s.analyzer.Workers(),
			Cached:  stats["cachedRows"],
			Hits:    stats["cacheHits"],
		})
	case "":
		s.sendError(req.ID, "Missing 'action' field", 400)
	default:
		s.sendError(req.ID, fmt.Sprintf("Unknown action: %s", req.Action), 400)
	}
}

// checkLimits enforces the [server] limits on an analyze request
func (s *Server) checkLimits(rows [][]string) error {
	limits := s.config.Server
	if len(rows) == 0 {
		return errors.New("missing 'rows' parameter")
	}
	if len(rows) > limits.MaxRows {
		return fmt.Errorf("request has %d rows, maximum is %d", len(rows), limits.MaxRows)
	}
	for i, row := range rows {
		if len(row)-1 > limits.MaxColumns {
			return fmt.Errorf("row %d has %d columns, maximum is %d", i, len(row)-1, limits.MaxColumns)
		}
		for j, cell := range row {
			if n := utf8.RuneCountInString(cell); n > limits.MaxWordLen {
				return fmt.Errorf("row %d cell %d is %d characters long, maximum is %d", i, j, n, limits.MaxWordLen)
			}
		}
		if len(row) > 1 {
			if n := utf8.RuneCountInString(paradigm.Shortest(row[1:])); n > limits.MaxShortestLen {
				return fmt.Errorf("row %d shortest form is %d characters long, maximum is %d", i, n, limits.MaxShortestLen)
			}
		}
	}
	return nil
}

func (s *Server) handleAnalyze(req Request) {
	if err := s.checkLimits(req.Rows); err != nil {
		log.Debugf("Rejected request %s: %v", req.ID, err)
		s.sendError(req.ID, err.Error(), 400)
		return
	}

	start := time.Now()
	results, err := s.analyzer.Analyze(req.Rows)
	if err != nil {
		code := 500
		if errors.Is(err, paradigm.ErrMalformedInput) {
			code = 400
		}
		s.sendError(req.ID, err.Error(), code)
		return
	}
	s.indexResults(results)

	paradigms := make([]ParadigmResult, 0, len(results))
	for _, r := range results {
		pr, err := toParadigmResult(r)
		if err != nil {
			log.Errorf("Scoring row %d: %v", r.Row, err)
			s.sendError(req.ID, err.Error(), 500)
			return
		}
		paradigms = append(paradigms, pr)
	}
	elapsed := time.Since(start)

	s.sendResponse(AnalyzeResponse{
		ID:        req.ID,
		Paradigms: paradigms,
		Count:     len(paradigms),
		TimeTaken: elapsed.Microseconds(),
	})
}

// indexResults adds results to the stem index under process-wide row numbers
func (s *Server) indexResults(results []analysis.Result) {
	shifted := make([]analysis.Result, len(results))
	for i, r := range results {
		r.Row += s.rowsSeen
		shifted[i] = r
	}
	s.index.AddAll(shifted)
	s.rowsSeen += len(results)
}

func (s *Server) handleLookup(req Request) {
	var matches []index.Match
	switch {
	case req.Stem != "":
		if entries := s.index.Lookup(req.Stem); len(entries) > 0 {
			matches = []index.Match{{Stem: req.Stem, Entries: entries}}
		}
	default:
		matches = s.index.WithPrefix(req.Prefix)
	}
	s.sendMatches(req.ID, matches)
}

func (s *Server) handleShared(req Request) {
	minLeaves := req.Min
	if minLeaves < 0 {
		s.sendError(req.ID, fmt.Sprintf("'min' must not be negative, got %d", minLeaves), 400)
		return
	}
	if minLeaves == 0 {
		minLeaves = 2
	}
	s.sendMatches(req.ID, s.index.Shared(minLeaves))
}

func (s *Server) sendMatches(id string, matches []index.Match) {
	out := make([]StemMatch, 0, len(matches))
	for _, m := range matches {
		sm := StemMatch{Stem: m.Stem, Entries: make([]StemEntry, 0, len(m.Entries))}
		for _, e := range m.Entries {
			sm.Entries = append(sm.Entries, StemEntry{Leaf: e.Leaf, Row: e.Row, Method: e.Method.String()})
		}
		out = append(out, sm)
	}
	s.sendResponse(LookupResponse{ID: id, Matches: out, Count: len(out)})
}

// toParadigmResult flattens an analysis result for the wire
func toParadigmResult(r analysis.Result) (ParadigmResult, error) {
	p := r.Paradigm
	pr := ParadigmResult{
		Row:         r.Row,
		Leaf:        p.Leaf(),
		Forms:       p.Forms(),
		Stem:        p.Stem(),
		Suppletive:  p.IsSuppletive(),
		Targets:     p.Targets(),
		Affixes:     p.Affixes(),
		UnionAffix:  p.UnionAffix(),
		GrammarCost: p.GrammarCost(),
		DataCost:    p.DataCost(),
		TotalCost:   p.TotalCost(),
	}
	for _, v := range p.CostVectors() {
		pr.Costs = append(pr.Costs, v.Slice())
	}

	for _, m := range extract.Methods {
		candidates, err := toCandidateResults(r, m)
		if err != nil {
			return ParadigmResult{}, err
		}
		switch m {
		case extract.MethodSubstring:
			pr.Substring = candidates
		case extract.MethodMultiset:
			pr.Multiset = candidates
		case extract.MethodSubsequence:
			pr.Subsequence = candidates
		}
	}
	return pr, nil
}

func toCandidateResults(r analysis.Result, m extract.Method) ([]CandidateResult, error) {
	candidates := r.ByMethod(m)
	if candidates == nil {
		return nil, nil
	}
	scored, err := r.Rank(m)
	if err != nil {
		return nil, err
	}
	out := make([]CandidateResult, 0, candidates.Len())
	for i, c := range candidates.Entries() {
		placements := make([][][]int, len(c.Placements))
		for col, options := range c.Placements {
			placements[col] = make([][]int, len(options))
			for k, pl := range options {
				placements[col][k] = []int(pl)
			}
		}
		out = append(out, CandidateResult{
			Stem:        c.Stem,
			Placements:  placements,
			GrammarCost: scored[i].GrammarCost,
			DataCost:    scored[i].DataCost,
			TotalCost:   scored[i].TotalCost,
		})
	}
	return out, nil
}

// sendResponse marshals the response and writes it to the client
func (s *Server) sendResponse(response any) {
	data, err := msgpack.Marshal(response)
	if err != nil {
		log.Errorf("Marshaling response: %v", err)
		s.sendError("", "Internal server error", 500)
		return
	}
	if _, err := s.writer.Write(data); err != nil {
		log.Errorf("Writing response: %v", err)
	}
}

// sendError sends an error response
func (s *Server) sendError(id, message string, code int) {
	data, err := msgpack.Marshal(ErrorResponse{ID: id, Error: message, Code: code})
	if err != nil {
		log.Errorf("Marshaling error response: %v", err)
		return
	}
	if _, err := s.writer.Write(data); err != nil {
		log.Errorf("Writing error response: %v", err)
	}
}
