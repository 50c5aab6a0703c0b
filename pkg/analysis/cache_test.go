package analysis

import (
	"testing"
)

func TestRowCacheEvictsLeastRecentlyUsed(t *testing.T) {
	c := NewRowCache(2)
	a := []string{"run", "run", "ran"}
	b := []string{"go", "go", "went"}
	d := []string{"sing", "sing", "sang"}

	c.Put(a, Result{Row: 1})
	c.Put(b, Result{Row: 2})
	if _, ok := c.Get(a); !ok {
		t.Fatal("a should be cached")
	}
	c.Put(d, Result{Row: 3})

	if _, ok := c.Get(b); ok {
		t.Error("b was least recently used and should be evicted")
	}
	if r, ok := c.Get(a); !ok || r.Row != 1 {
		t.Errorf("Get(a) = %v, %v", r, ok)
	}
	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2", c.Len())
	}
	if hits := c.Stats()["cacheHits"]; hits != 2 {
		t.Errorf("cacheHits = %d, want 2", hits)
	}
}

func TestRowCacheKeysWholeRow(t *testing.T) {
	c := NewRowCache(4)
	c.Put([]string{"ab", "c"}, Result{Row: 1})
	if _, ok := c.Get([]string{"a", "bc"}); ok {
		t.Error("rows with different cells must not share a key")
	}
}

func TestRowCacheDisabled(t *testing.T) {
	c := NewRowCache(0)
	c.Put([]string{"run", "run"}, Result{})
	if c.Len() != 0 {
		t.Errorf("Len() = %d, want 0", c.Len())
	}
}

func TestAnalyzerReusesRows(t *testing.T) {
	a := New(DefaultOptions())
	row := []string{"run", "run", "ran", "running"}

	first, err := a.AnalyzeRow(row)
	if err != nil {
		t.Fatalf("AnalyzeRow() error = %v", err)
	}
	second, err := a.AnalyzeRow(row)
	if err != nil {
		t.Fatalf("AnalyzeRow() error = %v", err)
	}
	if first.Paradigm != second.Paradigm {
		t.Error("second call should return the cached paradigm")
	}
	if a.CacheStats()["cacheHits"] != 1 {
		t.Errorf("CacheStats() = %v", a.CacheStats())
	}

	opts := DefaultOptions()
	opts.CacheSize = 0
	uncached := New(opts)
	x, _ := uncached.AnalyzeRow(row)
	y, _ := uncached.AnalyzeRow(row)
	if x.Paradigm == y.Paradigm {
		t.Error("disabled cache should build a fresh paradigm")
	}
}
