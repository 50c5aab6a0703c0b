// Package index keeps every candidate stem of an analysed dataset in a
// patricia trie, so paradigms sharing a stem (or a stem prefix) can be
// found without rescanning the results.
package index

import (
	"cmp"
	"slices"
	"sync"

	"github.com/bastiangx/stemserve/pkg/analysis"
	"github.com/bastiangx/stemserve/pkg/extract"
	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"
)

// Entry records which paradigm proposed a stem and with which extractor.
type Entry struct {
	Leaf   string
	Row    int
	Method extract.Method
}

// Match is a stem found by a prefix search with its entries.
type Match struct {
	Stem    string
	Entries []Entry
}

// Index is safe for concurrent use.
type Index struct {
	trie    *patricia.Trie
	stems   int
	entries int
	mu      sync.RWMutex
}

// New returns an empty index.
func New() *Index {
	return &Index{trie: patricia.NewTrie()}
}

// Add indexes every candidate of every extractor in r. The empty
// pseudo-stem of suppletive paradigms is not a stem and is skipped.
func (ix *Index) Add(r analysis.Result) {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	for _, m := range extract.Methods {
		candidates := r.ByMethod(m)
		if candidates == nil {
			continue
		}
		for _, stem := range candidates.Keys() {
			if stem == "" {
				continue
			}
			ix.insert(stem, Entry{Leaf: r.Paradigm.Leaf(), Row: r.Row, Method: m})
		}
	}
}

// AddAll indexes a batch of results.
func (ix *Index) AddAll(results []analysis.Result) {
	for _, r := range results {
		ix.Add(r)
	}
	log.Debugf("Indexed %d results: %d stems, %d entries", len(results), ix.Len(), ix.Entries())
}

func (ix *Index) insert(stem string, e Entry) {
	key := patricia.Prefix(stem)
	if item := ix.trie.Get(key); item != nil {
		entries := item.([]Entry)
		if slices.Contains(entries, e) {
			return
		}
		ix.trie.Set(key, append(entries, e))
	} else {
		ix.trie.Insert(key, []Entry{e})
		ix.stems++
	}
	ix.entries++
}

// Lookup returns the entries for exactly stem.
func (ix *Index) Lookup(stem string) []Entry {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	if stem == "" {
		return nil
	}
	item := ix.trie.Get(patricia.Prefix(stem))
	if item == nil {
		return nil
	}
	return slices.Clone(item.([]Entry))
}

// WithPrefix returns every indexed stem starting with prefix, sorted by
// stem. An empty prefix lists the whole index.
func (ix *Index) WithPrefix(prefix string) []Match {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	var matches []Match
	visit := func(p patricia.Prefix, item patricia.Item) error {
		entries, ok := item.([]Entry)
		if !ok {
			log.Errorf("Unknown item type: %T for stem %s", item, p)
			return nil
		}
		matches = append(matches, Match{Stem: string(p), Entries: slices.Clone(entries)})
		return nil
	}

	var err error
	if prefix == "" {
		err = ix.trie.Visit(visit)
	} else {
		err = ix.trie.VisitSubtree(patricia.Prefix(prefix), visit)
	}
	if err != nil {
		log.Errorf("Error visiting stem index: %v", err)
	}

	slices.SortFunc(matches, func(a, b Match) int {
		return cmp.Compare(a.Stem, b.Stem)
	})
	return matches
}

// Shared returns the stems proposed by at least minLeaves distinct
// paradigms, sorted by stem. A paradigm is identified by its leaf and row,
// so results indexed from separate batches are never merged.
func (ix *Index) Shared(minLeaves int) []Match {
	type paradigmKey struct {
		leaf string
		row  int
	}

	var shared []Match
	for _, m := range ix.WithPrefix("") {
		paradigms := make(map[paradigmKey]struct{})
		for _, e := range m.Entries {
			paradigms[paradigmKey{e.Leaf, e.Row}] = struct{}{}
		}
		if len(paradigms) >= minLeaves {
			shared = append(shared, m)
		}
	}
	return shared
}

// Len is the number of distinct stems.
func (ix *Index) Len() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return ix.stems
}

// Entries is the number of (stem, paradigm, extractor) records.
func (ix *Index) Entries() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return ix.entries
}
