package nlp

import (
	"sync"

	"github.com/rainsafe/rainsafe-backend/internal/domain"
)

// CachedScorer wraps a Scorer with an in-memory LRU cache keyed by the
// description text. Scoring is a pure function of the description, so a hit
// is always safe to reuse; resubmissions and near-duplicate spam are common
// during flood events.
type CachedScorer struct {
	inner Scorer
	cache *lruCache
}

// NewCachedScorer creates a cache decorator around a scorer.
func NewCachedScorer(inner Scorer, maxEntries int) *CachedScorer {
	return &CachedScorer{
		inner: inner,
		cache: newLRUCache(maxEntries),
	}
}

func (c *CachedScorer) Score(description string) domain.NLPAnalysis {
	if result, ok := c.cache.get(description); ok {
		return result
	}
	result := c.inner.Score(description)
	c.cache.put(description, result)
	return result
}

// lruCache is a simple thread-safe LRU cache for NLP analyses.
type lruCache struct {
	maxEntries int
	mu         sync.Mutex
	entries    map[string]*entry
	head       *entry // most recently used
	tail       *entry // least recently used
}

type entry struct {
	key   string
	value domain.NLPAnalysis
	prev  *entry
	next  *entry
}

func newLRUCache(maxEntries int) *lruCache {
	return &lruCache{
		maxEntries: maxEntries,
		entries:    make(map[string]*entry),
	}
}

func (c *lruCache) get(key string) (domain.NLPAnalysis, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return domain.NLPAnalysis{}, false
	}
	c.moveToFront(e)
	return e.value, true
}

func (c *lruCache) put(key string, value domain.NLPAnalysis) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		e.value = value
		c.moveToFront(e)
		return
	}

	e := &entry{key: key, value: value}
	c.entries[key] = e
	c.addToFront(e)

	if len(c.entries) > c.maxEntries {
		c.evictTail()
	}
}

func (c *lruCache) moveToFront(e *entry) {
	if e == c.head {
		return
	}
	c.remove(e)
	c.addToFront(e)
}

func (c *lruCache) addToFront(e *entry) {
	e.next = c.head
	e.prev = nil
	if c.head != nil {
		c.head.prev = e
	}
	c.head = e
	if c.tail == nil {
		c.tail = e
	}
}

func (c *lruCache) remove(e *entry) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		c.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		c.tail = e.prev
	}
}

func (c *lruCache) evictTail() {
	if c.tail == nil {
		return
	}
	delete(c.entries, c.tail.key)
	c.remove(c.tail)
}
