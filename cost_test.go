package squeeze

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFixedCostNonNegativeAndTotal(t *testing.T) {
	fc := FixedCost{}
	for lit := 0; lit < 256; lit++ {
		assert.Positive(t, fc.Cost(uint32(lit), 0))
	}
	for _, length := range []uint32{3, 10, 100, 258} {
		for _, dist := range []uint32{1, 100, 4096, 32768} {
			assert.Positive(t, fc.Cost(length, dist))
		}
	}
}

// TestMinCostIsALowerBound checks that MinCost is <= every match-symbol
// cost the model can produce, since GetBestLengths uses it only to prune
// candidate match lengths, never literal costs.
func TestMinCostIsALowerBound(t *testing.T) {
	fc := FixedCost{}
	mincost := MinCost(fc)

	for length := MinMatch; length <= MaxMatch; length++ {
		for _, dist := range distSymbolClasses {
			assert.LessOrEqual(t, mincost, fc.Cost(uint32(length), uint32(dist)))
		}
	}
}

func TestStatCostNonNegativeWithLiteralOnlyStats(t *testing.T) {
	stats := NewSymbolStats()
	// A store with one of every literal gives a near-uniform distribution;
	// Cost should still be total and non-negative across the domain.
	store := NewStore()
	for b := 0; b < 256; b++ {
		store.AddLiteral(byte(b), b)
	}
	stats.Clear()
	stats.Add(store)
	stats.CalculateStatistics()

	mincost := MinCost(stats)
	assert.Greater(t, mincost, 0.0)
	for lit := 0; lit < 256; lit++ {
		assert.GreaterOrEqual(t, stats.Cost(uint32(lit), 0), 0.0)
	}
	for length := MinMatch; length <= MaxMatch; length++ {
		assert.LessOrEqual(t, mincost, stats.Cost(uint32(length), 1))
	}
}
