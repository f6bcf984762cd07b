// Package verify is a test-only differential cross-check for the forward
// DP (squeeze.GetBestLengths): it re-solves the same shortest-path problem
// with an independent algorithm -- Dijkstra over an explicit graph, via
// github.com/RyanCarrier/dijkstra -- and compares total cost. Two
// independently implemented shortest-path solvers agreeing on the optimal
// cost is strong evidence the DP has no edge-relaxation bug.
//
// This is deliberately confined to test-time use on small blocks: building
// one graph edge per (position, candidate length) pair does not scale to
// the multi-KB/MB blocks the production DP handles.
package verify

import (
	"fmt"
	"math"

	"github.com/RyanCarrier/dijkstra"
)

// CostModel mirrors squeeze.CostModel structurally so this package does not
// need to import the root module (which would create an import cycle with
// its own _test.go files importing both).
type CostModel interface {
	Cost(litlen, dist uint32) float64
}

// scale converts a float bit-cost into dijkstra's required int64 edge
// weight with enough precision that quantization error across an entire
// path stays far below one bit.
const scale = 1 << 16

// ShortestPathCost builds an explicit DAG over byte positions
// [0, inend-instart] for the range [instart, inend) of in: one vertex per
// position, one edge per (position, literal-or-match) choice available
// there, weighted by model.Cost. It returns the total cost of the graph's
// shortest path from 0 to blocksize, in the same bit units as model.Cost
// (i.e. divided back out of dijkstra's integer scale).
//
// maxLen bounds how far ahead from each position an edge is considered;
// pass squeeze.MaxMatch for a faithful cross-check, or a smaller value to
// keep the graph small on larger test blocks.
func ShortestPathCost(in []byte, instart, inend int, model CostModel, findMatch func(pos, maxLen int) (length, dist int, sublen [259]int), maxLen int) (float64, error) {
	blocksize := inend - instart
	if blocksize == 0 {
		return 0, nil
	}

	g := dijkstra.NewGraph()
	for i := 0; i <= blocksize; i++ {
		g.AddVertex(i)
	}

	for i := instart; i < inend; i++ {
		j := i - instart
		// Literal edge.
		w := int64(math.Round(model.Cost(uint32(in[i]), 0) * scale))
		g.AddArc(j, j+1, w)

		length, _, sublen := findMatch(i, maxLen)
		for k := 3; k <= length && i+k <= inend; k++ {
			dist := sublen[k]
			if dist == 0 {
				continue
			}
			w := int64(math.Round(model.Cost(uint32(k), uint32(dist)) * scale))
			g.AddArc(j, j+k, w)
		}
	}

	best, err := g.Shortest(0, blocksize)
	if err != nil {
		return 0, fmt.Errorf("verify: dijkstra shortest path: %w", err)
	}
	return float64(best.Distance) / scale, nil
}
