// Package analysis runs paradigm construction and stem extraction over a
// whole table. Rows are independent, so they are fanned out to a bounded
// pool of workers; results come back in input order.
package analysis

import (
	"runtime"
	"slices"
	"sync"
	"time"

	"github.com/bastiangx/stemserve/internal/logger"
	"github.com/bastiangx/stemserve/internal/utils"
	"github.com/bastiangx/stemserve/pkg/extract"
	"github.com/bastiangx/stemserve/pkg/paradigm"
	"github.com/charmbracelet/log"
)

// Options configure an Analyzer.
type Options struct {
	Paradigm paradigm.Options
	// Workers bounds the number of rows analysed at once; 0 means GOMAXPROCS.
	Workers int
	// Normalize composes every cell to NFC before analysis.
	Normalize bool
	// CacheSize is the number of row results kept for reuse; 0 disables the cache.
	CacheSize int
}

// DefaultOptions returns default scoring with one worker per CPU.
func DefaultOptions() Options {
	return Options{
		Paradigm:  paradigm.DefaultOptions(),
		Normalize: true,
		CacheSize: DefaultCacheSize,
	}
}

// DefaultCacheSize is the default number of cached rows.
const DefaultCacheSize = 1024

// Result is the analysis of one row.
type Result struct {
	Row      int
	Paradigm *paradigm.Paradigm
	extract.Result
}

// Rank prices the candidates of method m as full decompositions.
func (r Result) Rank(m extract.Method) ([]extract.Scored, error) {
	return extract.Score(r.Paradigm, r.ByMethod(m))
}

// Analyzer turns rows into Results.
type Analyzer struct {
	opts  Options
	cache *RowCache
	log   *log.Logger
}

// New creates an Analyzer.
func New(opts Options) *Analyzer {
	if opts.Workers <= 0 {
		opts.Workers = runtime.GOMAXPROCS(0)
	}
	return &Analyzer{
		opts:  opts,
		cache: NewRowCache(opts.CacheSize),
		log:   logger.New("analysis"),
	}
}

// Workers reports the size of the worker pool.
func (a *Analyzer) Workers() int {
	return a.opts.Workers
}

// CacheStats reports row cache usage.
func (a *Analyzer) CacheStats() map[string]int {
	return a.cache.Stats()
}

// AnalyzeRow builds and extracts a single row. Results of rows seen
// before are served from the row cache.
func (a *Analyzer) AnalyzeRow(row []string) (Result, error) {
	if a.opts.Normalize {
		row = utils.NormalizeRow(slices.Clone(row))
	}
	if r, ok := a.cache.Get(row); ok {
		return r, nil
	}
	p, err := paradigm.FromRow(row, a.opts.Paradigm)
	if err != nil {
		return Result{}, err
	}
	r := Result{Paradigm: p, Result: extract.All(p)}
	a.cache.Put(row, r)
	return r, nil
}

// Analyze validates the whole dataset, then analyses every row. Nothing
// is returned unless every row succeeds.
func (a *Analyzer) Analyze(rows [][]string) ([]Result, error) {
	if err := paradigm.ValidateRows(rows); err != nil {
		return nil, err
	}
	if err := a.opts.Paradigm.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	results := make([]Result, len(rows))
	errs := make([]error, len(rows))

	jobs := make(chan int)
	var wg sync.WaitGroup
	workers := min(a.opts.Workers, max(len(rows), 1))
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				r, err := a.AnalyzeRow(rows[i])
				r.Row = i
				results[i], errs[i] = r, err
			}
		}()
	}
	for i := range rows {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			a.log.Errorf("row %d: %v", i, err)
			return nil, err
		}
	}
	a.log.Debugf("Analyzed %d rows with %d workers in [ %v ]", len(rows), workers, time.Since(start))
	return results, nil
}
