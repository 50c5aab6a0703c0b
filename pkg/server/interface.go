/*
Package server implements msgpack IPC for paradigm analysis.

The server reads a stream of msgpack maps from stdin and answers each one
with a single msgpack map on stdout. Every request carries an ID that is
echoed back, and an action that selects the operation.

# IPC

Analyze one or more rows (leaf first, then one word form per column):

	{"id": "req_001", "action": "analyze", "rows": [["run", "run", "ran", "running"]]}

The response lists every paradigm with its stem, targets, affixes, cost
matrix and the candidates of the three extractors:

	{"id": "req_001", "p": [{"leaf": "run", "stem": "nr", ...}], "c": 1, "t": 212}

Every analysed candidate is added to a stem index kept for the lifetime
of the process. Query it by exact stem or by prefix:

	{"id": "req_002", "action": "lookup", "stem": "nr"}
	{"id": "req_003", "action": "lookup", "prefix": "n"}

Indexed rows are numbered across every analyze request of the process,
so lookup entries from separate requests never collide. Stems proposed
by at least min paradigms (default 2) are listed with:

	{"id": "req_005", "action": "shared", "min": 2}

Health checks report the size of the index:

	{"id": "req_004", "action": "health"}

Failed requests get an ErrorResponse with an HTTP-like code: 400 for bad
input and limit violations, 500 for internal failures.
*/
package server

// Actions understood by the server.
const (
	ActionAnalyze = "analyze"
	ActionLookup  = "lookup"
	ActionHealth  = "health"
	ActionShared  = "shared"
)

// Request is the envelope of every incoming message.
type Request struct {
	ID     string     `msgpack:"id"`
	Action string     `msgpack:"action"`
	Rows   [][]string `msgpack:"rows,omitempty"`
	Stem   string     `msgpack:"stem,omitempty"`
	Prefix string     `msgpack:"prefix,omitempty"`
	Min    int        `msgpack:"min,omitempty"`
}

// CandidateResult is one candidate stem, priced as a full decomposition.
// Placements holds, per column, every placement of the stem in that form.
type CandidateResult struct {
	Stem        string    `msgpack:"s"`
	Placements  [][][]int `msgpack:"p"`
	GrammarCost int       `msgpack:"g"`
	DataCost    int       `msgpack:"d"`
	TotalCost   int       `msgpack:"tc"`
}

// ParadigmResult is the analysis of one row.
type ParadigmResult struct {
	Row         int               `msgpack:"row"`
	Leaf        string            `msgpack:"leaf"`
	Forms       []string          `msgpack:"forms"`
	Stem        string            `msgpack:"stem"`
	Suppletive  bool              `msgpack:"suppletive,omitempty"`
	Targets     []string          `msgpack:"targets"`
	Affixes     []string          `msgpack:"affixes"`
	UnionAffix  string            `msgpack:"union"`
	Costs       [][]int           `msgpack:"costs"`
	GrammarCost int               `msgpack:"g"`
	DataCost    int               `msgpack:"d"`
	TotalCost   int               `msgpack:"tc"`
	Substring   []CandidateResult `msgpack:"substring"`
	Multiset    []CandidateResult `msgpack:"multiset"`
	Subsequence []CandidateResult `msgpack:"subsequence"`
}

// AnalyzeResponse answers an analyze request. TimeTaken is in microseconds.
type AnalyzeResponse struct {
	ID        string           `msgpack:"id"`
	Paradigms []ParadigmResult `msgpack:"p"`
	Count     int              `msgpack:"c"`
	TimeTaken int64            `msgpack:"t"`
}

// StemEntry names a paradigm that proposed a stem.
type StemEntry struct {
	Leaf   string `msgpack:"leaf"`
	Row    int    `msgpack:"row"`
	Method string `msgpack:"method"`
}

// StemMatch is one indexed stem.
type StemMatch struct {
	Stem    string      `msgpack:"s"`
	Entries []StemEntry `msgpack:"e"`
}

// LookupResponse answers a lookup request.
type LookupResponse struct {
	ID      string      `msgpack:"id"`
	Matches []StemMatch `msgpack:"m"`
	Count   int         `msgpack:"c"`
}

// HealthResponse reports server status.
type HealthResponse struct {
	ID      string `msgpack:"id"`
	Status  string `msgpack:"status"`
	Stems   int    `msgpack:"stems"`
	Workers int    `msgpack:"workers"`
	Cached  int    `msgpack:"cached"`
	Hits    int    `msgpack:"hits"`
}

// ErrorResponse holds basic error information for failed requests
type ErrorResponse struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}
