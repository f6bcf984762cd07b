package squeeze

import "github.com/zopfligo/squeeze/internal/deflate"

// CostModel estimates the bit cost of one LZ77 symbol. dist == 0 means
// litlen is a literal byte value in [0, 255]; otherwise litlen is a match
// length in [MinMatch, MaxMatch] and dist is a match distance in
// [1, WindowSize]. Implementations must be total and non-negative across
// that domain.
type CostModel interface {
	Cost(litlen, dist uint32) float64
}

// FixedCost is the stateless cost model under DEFLATE's fixed Huffman trees:
// exact bit-length of the symbol's code plus its mandated extra bits.
type FixedCost struct{}

func (FixedCost) Cost(litlen, dist uint32) float64 {
	if dist == 0 {
		return float64(deflate.FixedLitLenBits(int(litlen)))
	}
	lsym := deflate.LengthSymbol(int(litlen))
	dsym := deflate.DistSymbol(int(dist))
	bits := deflate.FixedLitLenBits(lsym) + deflate.LengthExtraBits[lsym-257]
	bits += deflate.FixedDistBits + deflate.DistExtraBits[dsym]
	return float64(bits)
}

// distSymbolClasses are the 30 representative distances: each is the first
// distance with a new DEFLATE distance-symbol class, so costs are monotone
// within a class and sampling the class start suffices.
var distSymbolClasses = [30]int{
	1, 2, 3, 4, 5, 7, 9, 13, 17, 25, 33, 49, 65, 97, 129, 193, 257, 385, 513,
	769, 1025, 1537, 2049, 3073, 4097, 6145, 8193, 12289, 16385, 24577,
}

// MinCost computes a lower bound on any match-symbol cost model can emit,
// used by GetBestLengths as a DP pruning floor.
func MinCost(model CostModel) float64 {
	mincost := largeFloat
	bestLength := 0
	for length := MinMatch; length <= MaxMatch; length++ {
		c := model.Cost(uint32(length), 1)
		if c < mincost {
			bestLength = length
			mincost = c
		}
	}

	mincost = largeFloat
	bestDist := 0
	for _, d := range distSymbolClasses {
		c := model.Cost(MinMatch, uint32(d))
		if c < mincost {
			bestDist = d
			mincost = c
		}
	}

	return model.Cost(uint32(bestLength), uint32(bestDist))
}
