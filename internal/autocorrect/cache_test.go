package autocorrect

import "testing"

func TestCacheEvictsLeastRecentlyUsed(t *testing.T) {
	c := newSuggestionCache(2)
	c.put("a", []string{"aa"})
	c.put("b", []string{"bb"})
	if _, ok := c.get("a"); !ok {
		t.Fatalf("expected a to be cached")
	}
	c.put("c", []string{"cc"})
	if _, ok := c.get("b"); ok {
		t.Fatalf("expected b to be evicted as least recently used")
	}
	if _, ok := c.get("a"); !ok {
		t.Fatalf("expected a to survive eviction")
	}
	if _, ok := c.get("c"); !ok {
		t.Fatalf("expected c to be cached")
	}
	if c.len() != 2 {
		t.Fatalf("expected 2 entries, got %d", c.len())
	}
}

func TestCachePutUpdatesExistingKey(t *testing.T) {
	c := newSuggestionCache(2)
	c.put("a", []string{"old"})
	c.put("a", []string{"new"})
	values, ok := c.get("a")
	if !ok || len(values) != 1 || values[0] != "new" {
		t.Fatalf("expected updated entry, got %v (ok=%v)", values, ok)
	}
	if c.len() != 1 {
		t.Fatalf("expected 1 entry, got %d", c.len())
	}
}

func TestCacheInvalidate(t *testing.T) {
	c := newSuggestionCache(2)
	c.put("a", []string{"aa"})
	c.invalidate("a")
	if _, ok := c.get("a"); ok {
		t.Fatalf("expected invalidated entry to be gone")
	}
	c.invalidate("missing")
}
