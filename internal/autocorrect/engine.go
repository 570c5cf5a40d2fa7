package autocorrect

import (
	"fmt"
	"sort"
	"strings"
)

const (
	defaultMaxSuggestions = 3
	defaultMaxDistance    = 2
	defaultCacheCapacity  = 100
	defaultLearnedCap     = 1000
)

// Config tunes the correction engine. Zero values select defaults; the
// word list and extra dictionary entries are optional.
type Config struct {
	MaxSuggestions int
	MaxDistance    int
	CacheCapacity  int
	LearnedCap     int
	Words          []string
	Dictionary     map[string][]string
	Distance       DistanceFunc
}

// Stats reports cache behavior for introspection.
type Stats struct {
	Hits    int
	Misses  int
	Entries int
}

// Engine suggests spelling corrections using a misspelling dictionary, a
// common-word list, and Levenshtein matching, with an LRU result cache.
// Not safe for concurrent use; callers serialize access per instance.
type Engine struct {
	dict           map[string][]string
	words          []string
	cache          *suggestionCache
	dist           DistanceFunc
	maxSuggestions int
	maxDistance    int
	learnedCap     int
	hits           int
	misses         int
}

// New builds an Engine, validating the configuration eagerly.
func New(cfg Config) (*Engine, error) {
	if cfg.MaxSuggestions == 0 {
		cfg.MaxSuggestions = defaultMaxSuggestions
	}
	if cfg.MaxDistance == 0 {
		cfg.MaxDistance = defaultMaxDistance
	}
	if cfg.CacheCapacity == 0 {
		cfg.CacheCapacity = defaultCacheCapacity
	}
	if cfg.LearnedCap == 0 {
		cfg.LearnedCap = defaultLearnedCap
	}
	if cfg.MaxSuggestions < 0 {
		return nil, fmt.Errorf("max suggestions must be > 0, got %d", cfg.MaxSuggestions)
	}
	if cfg.MaxDistance < 0 {
		return nil, fmt.Errorf("max distance must be > 0, got %d", cfg.MaxDistance)
	}
	if cfg.CacheCapacity < 0 {
		return nil, fmt.Errorf("cache capacity must be > 0, got %d", cfg.CacheCapacity)
	}
	if cfg.LearnedCap < 0 {
		return nil, fmt.Errorf("learned cap must be > 0, got %d", cfg.LearnedCap)
	}
	if cfg.Distance == nil {
		cfg.Distance = Distance
	}

	dict := copyDictionary(builtinCorrections)
	for key, values := range cfg.Dictionary {
		key = strings.ToLower(key)
		for _, value := range values {
			dict[key] = appendUnique(dict[key], strings.ToLower(value))
		}
	}

	return &Engine{
		dict:           dict,
		words:          cfg.Words,
		cache:          newSuggestionCache(cfg.CacheCapacity),
		dist:           cfg.Distance,
		maxSuggestions: cfg.MaxSuggestions,
		maxDistance:    cfg.MaxDistance,
		learnedCap:     cfg.LearnedCap,
	}, nil
}

// Suggest returns up to MaxSuggestions corrections for word, best first.
// Results are ordered by ascending edit distance with lexicographic
// tie-breaks; an empty slice means no suggestion. Cached per word.
func (e *Engine) Suggest(word string) []string {
	key := strings.ToLower(word)
	if cached, ok := e.cache.get(key); ok {
		e.hits++
		return append([]string(nil), cached...)
	}
	e.misses++

	// Candidate pool keyed by word, value is the best distance seen.
	// Exact dictionary hits contribute their replacements at distance 0
	// so they always rank ahead of fuzzy matches.
	pool := map[string]int{}
	if replacements, ok := e.dict[key]; ok {
		for _, r := range replacements {
			if r != key {
				pool[r] = 0
			}
		}
	}
	for _, w := range e.words {
		e.consider(pool, key, w)
	}
	for dictKey := range e.dict {
		e.consider(pool, key, dictKey)
	}

	type candidate struct {
		word string
		dist int
	}
	candidates := make([]candidate, 0, len(pool))
	for w, d := range pool {
		candidates = append(candidates, candidate{word: w, dist: d})
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].dist == candidates[j].dist {
			return candidates[i].word < candidates[j].word
		}
		return candidates[i].dist < candidates[j].dist
	})
	if len(candidates) > e.maxSuggestions {
		candidates = candidates[:e.maxSuggestions]
	}

	suggestions := make([]string, 0, len(candidates))
	for _, c := range candidates {
		suggestions = append(suggestions, c.word)
	}
	e.cache.put(key, suggestions)
	return append([]string(nil), suggestions...)
}

func (e *Engine) consider(pool map[string]int, key, candidate string) {
	if !withinLengthBound(key, candidate, e.maxDistance) {
		return
	}
	d := e.dist(key, candidate)
	if d < 1 || d > e.maxDistance {
		return
	}
	if best, ok := pool[candidate]; !ok || d < best {
		pool[candidate] = d
	}
}

// Learn records correction as a replacement for original. Both are
// lowercased; duplicate replacements are ignored. New dictionary keys are
// refused once the learned cap is reached. The cache entry for the key is
// invalidated so the next Suggest sees the new replacement.
func (e *Engine) Learn(original, correction string) {
	key := strings.ToLower(original)
	value := strings.ToLower(correction)
	if key == "" || value == "" {
		return
	}
	existing, ok := e.dict[key]
	if !ok && len(e.dict) >= e.learnedCap {
		return
	}
	updated := appendUnique(existing, value)
	if len(updated) == len(existing) && ok {
		return
	}
	e.dict[key] = updated
	e.cache.invalidate(key)
}

// Confidence scores how close a suggestion is to the input word, in [0, 1].
func (e *Engine) Confidence(word, suggestion string) float64 {
	word = strings.ToLower(word)
	suggestion = strings.ToLower(suggestion)
	lw := len([]rune(word))
	ls := len([]rune(suggestion))
	longest := lw
	if ls > longest {
		longest = ls
	}
	if longest == 0 {
		return 1
	}
	score := 1 - float64(e.dist(word, suggestion))/float64(longest)
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}

// Replacements returns the dictionary replacements for a key, or nil.
func (e *Engine) Replacements(key string) []string {
	values, ok := e.dict[strings.ToLower(key)]
	if !ok {
		return nil
	}
	return append([]string(nil), values...)
}

// Stats returns cache hit/miss counters and the current entry count.
func (e *Engine) Stats() Stats {
	return Stats{Hits: e.hits, Misses: e.misses, Entries: e.cache.len()}
}

func appendUnique(values []string, value string) []string {
	for _, v := range values {
		if v == value {
			return values
		}
	}
	return append(values, value)
}
