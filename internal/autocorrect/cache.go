package autocorrect

import "container/list"

// suggestionCache is a bounded LRU map from a lowercased input word to its
// computed suggestions. Eviction removes the least recently used entry.
type suggestionCache struct {
	capacity int
	order    *list.List
	items    map[string]*list.Element
}

type cacheEntry struct {
	key         string
	suggestions []string
}

func newSuggestionCache(capacity int) *suggestionCache {
	return &suggestionCache{
		capacity: capacity,
		order:    list.New(),
		items:    make(map[string]*list.Element, capacity),
	}
}

func (c *suggestionCache) get(key string) ([]string, bool) {
	elem, ok := c.items[key]
	if !ok {
		return nil, false
	}
	c.order.MoveToFront(elem)
	return elem.Value.(*cacheEntry).suggestions, true
}

func (c *suggestionCache) put(key string, suggestions []string) {
	if elem, ok := c.items[key]; ok {
		c.order.MoveToFront(elem)
		elem.Value.(*cacheEntry).suggestions = suggestions
		return
	}
	if c.order.Len() >= c.capacity {
		oldest := c.order.Back()
		if oldest != nil {
			c.order.Remove(oldest)
			delete(c.items, oldest.Value.(*cacheEntry).key)
		}
	}
	c.items[key] = c.order.PushFront(&cacheEntry{key: key, suggestions: suggestions})
}

func (c *suggestionCache) invalidate(key string) {
	elem, ok := c.items[key]
	if !ok {
		return
	}
	c.order.Remove(elem)
	delete(c.items, key)
}

func (c *suggestionCache) len() int {
	return c.order.Len()
}
