package squeeze

// Hash is the sliding-window longest-match oracle consumed by the DP
// (GetBestLengths) and by path replay (FollowPath). It is grounded in a
// position-list match finder generalized from a small fixed window to the
// full 32768-byte DEFLATE window, and in the rolling-hash / match-length
// idiom of klauspost/compress's flate compressor (hash4, matchLen).
//
// Two hash states are created per call (one in GetBestLengths, one in
// FollowPath) and never shared: each owns its own chain table and must see
// the identical sequence of Update calls (same warmup, same per-byte
// advance, including inside the RLE fast path) so that FindLongestMatch
// returns the same distances in both passes.
type Hash struct {
	in   []byte
	head []int32   // hash3(seq) -> most recent position with that prefix, or -1
	prev []int32   // pos & WindowMask -> previous position with the same hash3
	same []uint16  // pos & WindowMask -> run length of identical bytes from pos
	maxChain int
}

const hashBits = 15
const hashSize = 1 << hashBits
const hashMask = hashSize - 1

// maxChainLength bounds how many candidates FindLongestMatch walks per call.
// Unbounded chain walking is the one thing that would make huge, highly
// repetitive blocks pathological; zlib-family encoders all cap this the same
// way.
const maxChainLength = 4096

func hash3(b []byte, pos int) uint32 {
	if pos+3 > len(b) {
		// Pad with zero bytes conceptually; only reached within MaxMatch of
		// the very end, where match length is bounded anyway.
		var h uint32
		for i := 0; i < 3; i++ {
			var c byte
			if pos+i < len(b) {
				c = b[pos+i]
			}
			h = h*131 + uint32(c)
		}
		return h & hashMask
	}
	h := uint32(b[pos])*131*131 + uint32(b[pos+1])*131 + uint32(b[pos+2])
	return h & hashMask
}

// NewHash allocates a hash chain over the given input, sized for the given
// sliding window (ZopfliInitHash).
func NewHash(in []byte, windowSize int) *Hash {
	h := &Hash{
		in:       in,
		head:     make([]int32, hashSize),
		prev:     make([]int32, windowSize),
		same:     make([]uint16, windowSize),
		maxChain: maxChainLength,
	}
	for i := range h.head {
		h.head[i] = -1
	}
	for i := range h.prev {
		h.prev[i] = -1
	}
	return h
}

// Warmup primes the chain by calling Update for every position in
// [start, instart), matching ZopfliWarmupHash + the windowstart..instart
// ZopfliUpdateHash loop, so those bytes are available as match sources for
// the first block position.
func (h *Hash) Warmup(start, instart, end int) {
	for i := start; i < instart; i++ {
		h.Update(i, end)
	}
}

// Update advances the hash chain by the single byte at pos (ZopfliUpdateHash).
func (h *Hash) Update(pos, end int) {
	if pos >= len(h.in) {
		return
	}
	key := hash3(h.in, pos)
	slot := int32(pos & (len(h.prev) - 1))
	h.prev[slot] = h.head[key]
	h.head[key] = int32(pos)
	h.updateSame(pos, end)
}

func (h *Hash) updateSame(pos, end int) {
	mask := len(h.same) - 1
	limit := end - pos
	if limit > 65535 {
		limit = 65535
	}
	amount := 0
	if pos > 0 && limit > 0 && h.in[pos] == h.in[pos-1] {
		prevAmount := int(h.same[(pos-1)&mask])
		if prevAmount > 1 {
			amount = prevAmount - 1
		}
	}
	for amount < limit && h.in[pos+amount] == h.in[pos] {
		amount++
	}
	h.same[pos&mask] = uint16(amount)
}

// Same returns the run-length table: Same()[pos & WindowMask] is how many
// consecutive bytes starting at pos equal in[pos] (ZopfliHashSame).
func (h *Hash) Same() []uint16 { return h.same }

// FindLongestMatch scans backward through the chain for the longest match at
// pos, capped at maxLen, and fills sublen[k] (for MinMatch <= k <= length)
// with the smallest distance achieving a match of exactly length k --
// "smallest" because a closer match of the same length is never worse and
// is what greedy/zopfli-style finders conventionally report.
func (h *Hash) FindLongestMatch(pos, maxLen int) (length int, dist int, sublen [MaxMatch + 1]int) {
	end := len(h.in)
	if pos >= end {
		return 0, 0, sublen
	}
	if maxLen > end-pos {
		maxLen = end - pos
	}

	minPos := pos - WindowSize
	if minPos < 0 {
		minPos = 0
	}

	if maxLen < MinMatch {
		return 0, 0, sublen
	}

	key := hash3(h.in, pos)
	cand := h.head[key]
	chain := h.maxChain
	bestLen, bestDist := 0, 0

	for cand >= 0 && int(cand) >= minPos && chain > 0 {
		chain--
		srcPos := int(cand)
		if srcPos == pos {
			cand = h.prevAt(srcPos)
			continue
		}
		l := matchLen(h.in, srcPos, pos, maxLen)
		if l >= MinMatch {
			d := pos - srcPos
			for k := MinMatch; k <= l; k++ {
				if sublen[k] == 0 || d < sublen[k] {
					sublen[k] = d
				}
			}
			if l > bestLen {
				bestLen = l
				bestDist = d
			}
		}
		if l >= maxLen {
			break
		}
		cand = h.prevAt(srcPos)
	}

	return bestLen, bestDist, sublen
}

func (h *Hash) prevAt(pos int) int32 {
	return h.prev[pos&(len(h.prev)-1)]
}

// matchLen returns how many bytes starting at a and b agree, capped at max.
// Grounded in klauspost/compress's flate matchLen helper.
func matchLen(in []byte, a, b, max int) int {
	n := 0
	for n < max && in[a+n] == in[b+n] {
		n++
	}
	return n
}
