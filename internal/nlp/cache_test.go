package nlp

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rainsafe/rainsafe-backend/internal/domain"
)

// countingScorer records how many times Score was invoked.
type countingScorer struct {
	inner Scorer
	calls int
}

func (c *countingScorer) Score(description string) domain.NLPAnalysis {
	c.calls++
	return c.inner.Score(description)
}

func TestCachedScorer_HitSkipsInner(t *testing.T) {
	counting := &countingScorer{inner: NewAnalyzer(DefaultLexicon())}
	cached := NewCachedScorer(counting, 8)

	first := cached.Score("Water is rising near the bridge")
	second := cached.Score("Water is rising near the bridge")

	assert.Equal(t, first, second)
	assert.Equal(t, 1, counting.calls)
}

func TestCachedScorer_DistinctKeys(t *testing.T) {
	counting := &countingScorer{inner: NewAnalyzer(DefaultLexicon())}
	cached := NewCachedScorer(counting, 8)

	cached.Score("water rising")
	cached.Score("road impassable")
	cached.Score("water rising")

	assert.Equal(t, 2, counting.calls)
}

func TestCachedScorer_EvictsLeastRecentlyUsed(t *testing.T) {
	counting := &countingScorer{inner: NewAnalyzer(DefaultLexicon())}
	cached := NewCachedScorer(counting, 2)

	cached.Score("a") // a
	cached.Score("b") // b a
	cached.Score("a") // a b
	cached.Score("c") // c a, evicts b
	assert.Equal(t, 3, counting.calls)

	cached.Score("a") // hit
	assert.Equal(t, 3, counting.calls)

	cached.Score("b") // evicted, rescored
	assert.Equal(t, 4, counting.calls)
}

func TestLRUCache_UpdateExisting(t *testing.T) {
	c := newLRUCache(2)

	c.put("k", domain.NLPAnalysis{Severity: SeverityLow})
	c.put("k", domain.NLPAnalysis{Severity: SeverityHigh})

	got, ok := c.get("k")
	assert.True(t, ok)
	assert.Equal(t, SeverityHigh, got.Severity)
}
