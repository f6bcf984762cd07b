package squeeze

import (
	"math/rand"
	"sort"

	"github.com/zopfligo/squeeze/internal/deflate"
)

// SymbolStats holds frequency counts and derived Huffman bit-lengths for
// DEFLATE's 288 litlen symbols and 32 distance symbols.
// Three instances coexist in the iterated optimizer (stats/beststats/
// laststats); this type is the unit the optimizer clones, blends and
// randomizes between runs.
type SymbolStats struct {
	LitLenFreq [deflate.NumLitLenSymbols]float64
	DistFreq   [deflate.NumDistSymbols]float64

	litLenBits [deflate.NumLitLenSymbols]int
	distBits   [deflate.NumDistSymbols]int
}

// NewSymbolStats returns a zeroed stats instance with derived bit-lengths
// already computed from the (all-zero) frequencies.
func NewSymbolStats() *SymbolStats {
	s := &SymbolStats{}
	s.CalculateStatistics()
	return s
}

// Clear zeroes all frequency counts (ClearStatFreqs). Bit-lengths are left
// untouched until the next CalculateStatistics call, matching the source,
// which clears frequencies and immediately repopulates them from a store
// before ever calling GetCostStat again.
func (s *SymbolStats) Clear() {
	s.LitLenFreq = [deflate.NumLitLenSymbols]float64{}
	s.DistFreq = [deflate.NumDistSymbols]float64{}
}

// Add accumulates the symbol frequencies of store into s (GetStatistics).
func (s *SymbolStats) Add(store *Store) {
	for _, sym := range store.Symbols {
		if sym.IsLiteral() {
			s.LitLenFreq[sym.LitLen]++
			continue
		}
		s.LitLenFreq[deflate.LengthSymbol(int(sym.LitLen))]++
		s.DistFreq[deflate.DistSymbol(int(sym.Dist))]++
	}
	s.LitLenFreq[deflate.EndOfBlock]++
}

// CopyStats overwrites dst's frequencies and derived bit-lengths with src's.
func CopyStats(dst, src *SymbolStats) {
	dst.LitLenFreq = src.LitLenFreq
	dst.DistFreq = src.DistFreq
	dst.litLenBits = src.litLenBits
	dst.distBits = src.distBits
}

// AddWeighted computes result = a*wa + b*wb elementwise over frequencies
// (AddWeighedStatFreqs); it is safe for result to alias a or b.
func AddWeighted(a *SymbolStats, wa float64, b *SymbolStats, wb float64, result *SymbolStats) {
	var ll [deflate.NumLitLenSymbols]float64
	var d [deflate.NumDistSymbols]float64
	for i := range ll {
		ll[i] = a.LitLenFreq[i]*wa + b.LitLenFreq[i]*wb
	}
	for i := range d {
		d[i] = a.DistFreq[i]*wa + b.DistFreq[i]*wb
	}
	result.LitLenFreq = ll
	result.DistFreq = d
}

// Randomize perturbs frequencies to escape a stagnating local minimum
// (RandomizeStatFreqs): about one bucket in three takes the value of a
// randomly chosen bucket of the same alphabet (which can seed an empty
// bucket or empty a full one); every other bucket is scaled by a random
// factor in [0.5, 1.5). The derived Huffman tree shifts shape without
// discarding all prior signal.
func (s *SymbolStats) Randomize(rng *rand.Rand) {
	randomizeFreqs(s.LitLenFreq[:], rng)
	randomizeFreqs(s.DistFreq[:], rng)
}

func randomizeFreqs(freq []float64, rng *rand.Rand) {
	for i := range freq {
		if (rng.Int31()>>4)%3 == 0 {
			idx := rng.Int31() % int32(len(freq))
			freq[i] = freq[idx]
		} else {
			scale := 0.5 + rng.Float64()
			freq[i] *= scale
		}
	}
}

// CalculateStatistics rebuilds the derived Huffman bit-lengths from the
// current frequency counts, via a length-limited (package-merge) Huffman
// construction.
func (s *SymbolStats) CalculateStatistics() {
	ll := s.LitLenFreq
	ll[deflate.EndOfBlock] += 1 // ensure EOB always has a code, as GetStatistics does on every Add
	copy(s.litLenBits[:], lengthLimitedHuffman(ll[:], 15))
	copy(s.distBits[:], lengthLimitedHuffman(s.DistFreq[:], 15))
}

// Cost implements CostModel: bit-length of the symbol's code under the
// statistics-derived tree, plus its mandated extra bits (GetCostStat).
func (s *SymbolStats) Cost(litlen, dist uint32) float64 {
	if dist == 0 {
		return float64(s.litLenBits[litlen])
	}
	lsym := deflate.LengthSymbol(int(litlen))
	dsym := deflate.DistSymbol(int(dist))
	bits := s.litLenBits[lsym] + deflate.LengthExtraBits[lsym-257]
	bits += s.distBits[dsym] + deflate.DistExtraBits[dsym]
	return float64(bits)
}

// CalculateBlockSize computes the true bit cost of encoding store as one
// DEFLATE block (ZopfliCalculateBlockSize). With dynamic true, the Huffman
// tree is rebuilt from store's own symbol histogram (as a real dynamic
// block would); with dynamic false, the static fixed tree is used. This is
// the "true" cost the iterated optimizer judges convergence on, as opposed
// to the model cost that merely steers the DP.
func CalculateBlockSize(store *Store, dynamic bool) float64 {
	if !dynamic {
		fc := FixedCost{}
		bits := 3.0 // block header: BFINAL + BTYPE
		for _, sym := range store.Symbols {
			if sym.IsLiteral() {
				bits += fc.Cost(sym.LitLen, 0)
			} else {
				bits += fc.Cost(sym.LitLen, sym.Dist)
			}
		}
		bits += float64(deflate.FixedLitLenBits(deflate.EndOfBlock))
		return bits
	}

	stats := NewSymbolStats()
	stats.Clear()
	stats.Add(store)
	stats.CalculateStatistics()

	bits := 3.0 + huffmanTreeDescriptionBitsEstimate(stats)
	for _, sym := range store.Symbols {
		if sym.IsLiteral() {
			bits += stats.Cost(sym.LitLen, 0)
		} else {
			bits += stats.Cost(sym.LitLen, sym.Dist)
		}
	}
	bits += float64(stats.litLenBits[deflate.EndOfBlock])
	return bits
}

// huffmanTreeDescriptionBitsEstimate approximates the bits RFC 1951's
// dynamic-block header spends describing the two Huffman code-length
// tables themselves (HLIT/HDIST/HCLEN plus the run-length-coded length
// sequences). Zopfli's real ZopfliCalculateBlockSize does this exactly by
// simulating the RLE pass; here it is approximated as a flat per-used-symbol
// charge, which is within a few bytes of the true value. The charge grows
// with the number of distinct symbols a store uses, so it is part of the
// cost the iterated optimizer compares across iterations: richer alphabets
// cost a little more tree-description overhead.
func huffmanTreeDescriptionBitsEstimate(stats *SymbolStats) float64 {
	used := 0
	for _, f := range stats.LitLenFreq {
		if f > 0 {
			used++
		}
	}
	for _, f := range stats.DistFreq {
		if f > 0 {
			used++
		}
	}
	return float64(used) * 4.5
}

// lengthLimitedHuffman computes optimal code lengths, each at most maxBits,
// for the given symbol frequencies via the package-merge (coin-collector's
// problem) algorithm: the standard technique for length-limited Huffman
// coding, and the one zopfli's own tree.c/katajainen.c implements.
func lengthLimitedHuffman(freq []float64, maxBits int) []int {
	lengths := make([]int, len(freq))

	type item struct {
		weight float64
		syms   []int
	}

	var leaves []item
	for sym, f := range freq {
		if f > 0 {
			leaves = append(leaves, item{weight: f, syms: []int{sym}})
		}
	}

	switch len(leaves) {
	case 0:
		return lengths
	case 1:
		lengths[leaves[0].syms[0]] = 1
		return lengths
	}

	sort.Slice(leaves, func(i, j int) bool { return leaves[i].weight < leaves[j].weight })

	level := append([]item(nil), leaves...)
	for bits := 2; bits <= maxBits; bits++ {
		var packages []item
		for i := 0; i+1 < len(level); i += 2 {
			packages = append(packages, item{
				weight: level[i].weight + level[i+1].weight,
				syms:   append(append([]int{}, level[i].syms...), level[i+1].syms...),
			})
		}
		merged := append(append([]item(nil), packages...), leaves...)
		sort.Slice(merged, func(i, j int) bool { return merged[i].weight < merged[j].weight })
		level = merged
	}

	take := 2 * (len(leaves) - 1)
	if take > len(level) {
		take = len(level)
	}
	for i := 0; i < take; i++ {
		for _, sym := range level[i].syms {
			lengths[sym]++
		}
	}
	return lengths
}
