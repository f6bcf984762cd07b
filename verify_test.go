package squeeze_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zopfligo/squeeze"
	"github.com/zopfligo/squeeze/internal/verify"
)

// The cross-check drives GetBestLengths directly and compares its cost
// against a dijkstra solve over a graph built with the same exported
// FixedCost model and findMatchFor below, a naive longest-match search that
// shares no code with squeeze's Hash oracle.
func TestShortestPathCostMatchesForwardDP(t *testing.T) {
	cases := [][]byte{
		[]byte("abcabcabc"),
		[]byte("aaaaaaaaaaaaaaaa"),
		[]byte("mississippi river"),
	}

	for _, in := range cases {
		lengthArray := make([]uint16, len(in)+1)
		dpCost := squeeze.GetBestLengths(in, 0, len(in), squeeze.FixedCost{}, lengthArray)

		graphCost, err := verify.ShortestPathCost(in, 0, len(in), squeeze.FixedCost{}, findMatchFor(in), squeeze.MaxMatch)
		require.NoError(t, err)

		assert.InDelta(t, dpCost, graphCost, 1e-3, "DP and dijkstra disagree on %q", in)
	}
}

func TestShortestPathCostEmptyBlock(t *testing.T) {
	cost, err := verify.ShortestPathCost(nil, 0, 0, squeeze.FixedCost{}, findMatchFor(nil), squeeze.MaxMatch)
	require.NoError(t, err)
	assert.Zero(t, cost)
}

// findMatchFor builds a naive O(n^2) longest-match oracle for in, good
// enough for the small test blocks this cross-check runs on and independent
// of squeeze's own hash-chain implementation.
func findMatchFor(in []byte) func(pos, maxLen int) (int, int, [259]int) {
	return func(pos, maxLen int) (int, int, [259]int) {
		var sublen [259]int
		bestLen, bestDist := 0, 0
		for src := 0; src < pos; src++ {
			l := 0
			for l < maxLen && pos+l < len(in) && in[src+l] == in[pos+l] {
				l++
			}
			if l < 3 {
				continue
			}
			dist := pos - src
			for k := 3; k <= l; k++ {
				if sublen[k] == 0 || dist < sublen[k] {
					sublen[k] = dist
				}
			}
			if l > bestLen {
				bestLen = l
				bestDist = dist
			}
		}
		return bestLen, bestDist, sublen
	}
}

func TestShortestPathCostRandomBlock(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	in := make([]byte, 64)
	for i := range in {
		in[i] = byte(rng.Intn(3))
	}

	lengthArray := make([]uint16, len(in)+1)
	dpCost := squeeze.GetBestLengths(in, 0, len(in), squeeze.FixedCost{}, lengthArray)

	graphCost, err := verify.ShortestPathCost(in, 0, len(in), squeeze.FixedCost{}, findMatchFor(in), squeeze.MaxMatch)
	require.NoError(t, err)
	assert.InDelta(t, dpCost, graphCost, 1e-3)
}
