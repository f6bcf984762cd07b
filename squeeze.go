package squeeze

import (
	"errors"
	"fmt"
	"log"
	"math/rand"
)

// largeFloat is the cost-array sentinel: large enough that no legitimate sum
// of edges can reach it, but finite, so the DP's pruning subtraction
// (costs[j+k] - costs[j]) always yields a real number rather than +Inf.
const largeFloat = 1e30

// ErrNoIterations is returned by LZ77Optimal when asked to run zero
// iterations. A zero-iteration loop would simply never execute, leaving
// bestcost at its sentinel with nothing copied to the output store; this
// treats that silent empty-output case as a caller error instead.
var ErrNoIterations = errors.New("squeeze: LZ77Optimal requires at least 1 iteration")

// GetBestLengths runs the forward dynamic program over [instart, inend) of
// in under the given cost model, filling lengthArray (sized inend-instart+1)
// with the length of the best incoming edge to each position and returning
// the total model cost of reaching the end.
func GetBestLengths(in []byte, instart, inend int, model CostModel, lengthArray []uint16) float64 {
	if instart == inend {
		return 0
	}
	blocksize := inend - instart

	costs := make([]float32, blocksize+1)
	for i := 1; i <= blocksize; i++ {
		costs[i] = largeFloat
	}
	costs[0] = 0
	lengthArray[0] = 0

	windowStart := instart - WindowSize
	if windowStart < 0 {
		windowStart = 0
	}
	h := NewHash(in, WindowSize)
	h.Warmup(windowStart, instart, inend)

	mincost := MinCost(model)

	i := instart
	for i < inend {
		j := i - instart
		h.Update(i, inend)
		hsame := h.Same()

		if int(hsame[i&WindowMask]) > MaxMatch*2 &&
			i > instart+MaxMatch+1 &&
			i+MaxMatch*2+1 < inend &&
			int(hsame[(i-MaxMatch)&WindowMask]) > MaxMatch {
			symbolCost := model.Cost(MaxMatch, 1)
			for k := 0; k < MaxMatch; k++ {
				costs[j+MaxMatch] = float32(float64(costs[j]) + symbolCost)
				lengthArray[j+MaxMatch] = MaxMatch
				i++
				j++
				h.Update(i, inend)
			}
		}

		length, _, sublen := h.FindLongestMatch(i, MaxMatch)

		if i+1 <= inend {
			newCost := float64(costs[j]) + model.Cost(uint32(in[i]), 0)
			if newCost < float64(costs[j+1]) {
				costs[j+1] = float32(newCost)
				lengthArray[j+1] = 1
			}
		}

		for k := MinMatch; k <= length && i+k <= inend; k++ {
			if float64(costs[j+k])-float64(costs[j]) <= mincost {
				continue
			}
			newCost := float64(costs[j]) + model.Cost(uint32(k), uint32(sublen[k]))
			if newCost < float64(costs[j+k]) {
				costs[j+k] = float32(newCost)
				lengthArray[j+k] = uint16(k)
			}
		}

		i++
	}

	return float64(costs[blocksize])
}

// TraceBackwards walks lengthArray from size back to 0, producing the
// in-order edge-length path.
func TraceBackwards(size int, lengthArray []uint16) []uint16 {
	if size == 0 {
		return nil
	}
	var path []uint16
	index := size
	for {
		l := lengthArray[index]
		if l == 0 || int(l) > index || int(l) > MaxMatch {
			panic(fmt.Sprintf("squeeze: corrupt length array at index %d: length %d", index, l))
		}
		path = append(path, l)
		index -= int(l)
		if index == 0 {
			break
		}
	}
	for l, r := 0, len(path)-1; l < r; l, r = l+1, r-1 {
		path[l], path[r] = path[r], path[l]
	}
	return path
}

// FollowPath re-runs the longest-match oracle along path to recover match
// distances (the DP only recorded lengths) and appends the resulting
// symbols to store.
func FollowPath(in []byte, instart, inend int, path []uint16, store *Store) error {
	if instart == inend {
		return nil
	}
	windowStart := instart - WindowSize
	if windowStart < 0 {
		windowStart = 0
	}
	h := NewHash(in, WindowSize)
	h.Warmup(windowStart, instart, inend)

	pos := instart
	for _, length16 := range path {
		length := int(length16)
		if pos >= inend {
			return fmt.Errorf("squeeze: path overruns block at pos %d", pos)
		}
		h.Update(pos, inend)

		if length >= MinMatch {
			dummyLength, dist, _ := h.FindLongestMatch(pos, length)
			if dummyLength != length && length > 2 && dummyLength > 2 {
				panic(fmt.Sprintf("squeeze: replay length mismatch at %d: path chose %d, oracle found %d", pos, length, dummyLength))
			}
			if err := VerifyLenDist(in, pos, dist, length); err != nil {
				return err
			}
			store.AddMatch(uint32(length), uint32(dist), pos)
		} else {
			length = 1
			store.AddLiteral(in[pos], pos)
		}

		if pos+length > inend {
			return fmt.Errorf("squeeze: symbol at %d of length %d runs past block end %d", pos, length, inend)
		}
		for k := 1; k < length; k++ {
			h.Update(pos+k, inend)
		}
		pos += length
	}
	return nil
}

// lz77OptimalRun sequences GetBestLengths -> TraceBackwards -> FollowPath
// for one cost model.
func lz77OptimalRun(in []byte, instart, inend int, model CostModel, lengthArray []uint16, store *Store) (float64, error) {
	cost := GetBestLengths(in, instart, inend, model, lengthArray)
	path := TraceBackwards(inend-instart, lengthArray)
	if err := FollowPath(in, instart, inend, path, store); err != nil {
		return 0, err
	}
	return cost, nil
}

// Options configures the iterated optimizer.
type Options struct {
	// Iterations is the number of statistics-driven DP runs to perform.
	Iterations int
	// Verbose logs "iteration %d: %d bit" each time a new best is found.
	Verbose bool
	// VerboseMore logs every iteration's true cost, not just improvements.
	VerboseMore bool
	// Seed drives the stagnation-escape randomizer. Zero is used as a
	// seed like any other value, so runs with the same options and input
	// are reproducible.
	Seed int64
}

// LZ77Optimal runs the iterated shortest-path optimizer over [instart,
// inend) of in: seed via greedy parse, then repeatedly re-parse with a
// statistics-derived cost model, keeping the best-by-true-cost result.
func LZ77Optimal(in []byte, instart, inend int, opts Options, store *Store) error {
	if opts.Iterations < 1 {
		return ErrNoIterations
	}
	blocksize := inend - instart
	lengthArray := make([]uint16, blocksize+1)

	rng := rand.New(rand.NewSource(opts.Seed))

	stats := NewSymbolStats()
	beststats := NewSymbolStats()
	laststats := NewSymbolStats()
	current := NewStore()

	bestcost := largeFloat
	lastcost := 0.0
	lastRandomStep := -1

	greedyParse(in, instart, inend, current)
	stats.Clear()
	stats.Add(current)
	stats.CalculateStatistics()

	for iter := 0; iter < opts.Iterations; iter++ {
		current.Reset()
		if _, err := lz77OptimalRun(in, instart, inend, stats, lengthArray, current); err != nil {
			return err
		}
		cost := CalculateBlockSize(current, true)

		if opts.VerboseMore || (opts.Verbose && cost < bestcost) {
			log.Printf("iteration %d: %d bit", iter, int(cost))
		}

		if cost < bestcost {
			CopyStore(store, current)
			CopyStats(beststats, stats)
			bestcost = cost
		}

		CopyStats(laststats, stats)
		stats.Clear()
		stats.Add(current)
		stats.CalculateStatistics()

		if lastRandomStep != -1 {
			AddWeighted(stats, 1.0, laststats, 0.5, stats)
			stats.CalculateStatistics()
		}

		if iter > 5 && cost == lastcost {
			CopyStats(stats, beststats)
			stats.Randomize(rng)
			stats.CalculateStatistics()
			lastRandomStep = iter
		}

		lastcost = cost
	}

	return nil
}

// LZ77OptimalFixed runs a single shortest-path pass under the fixed-Huffman
// cost model: no iteration is needed since the tree is already fully
// determined.
func LZ77OptimalFixed(in []byte, instart, inend int, store *Store) error {
	blocksize := inend - instart
	lengthArray := make([]uint16, blocksize+1)
	_, err := lz77OptimalRun(in, instart, inend, FixedCost{}, lengthArray, store)
	return err
}
