package squeeze

// greedyParse seeds the iterated optimizer's initial statistics
// (ZopfliLZ77Greedy): a single forward scan taking the longest match the
// oracle reports at every position, falling back to a literal when no match
// reaches MinMatch.
//
// Unlike zopfli's real greedy parser, this does not lazy-match (look one
// byte ahead to see if deferring the match one position finds something
// longer): the seed only needs to produce reasonable statistics for the
// first statistics-driven DP run to improve on, not an optimal parse itself.
func greedyParse(in []byte, instart, inend int, store *Store) {
	if instart == inend {
		return
	}
	windowStart := instart - WindowSize
	if windowStart < 0 {
		windowStart = 0
	}

	h := NewHash(in, WindowSize)
	h.Warmup(windowStart, instart, inend)

	pos := instart
	for pos < inend {
		h.Update(pos, inend)
		length, dist, _ := h.FindLongestMatch(pos, MaxMatch)
		if length >= MinMatch {
			store.AddMatch(uint32(length), uint32(dist), pos)
			for k := 1; k < length; k++ {
				h.Update(pos+k, inend)
			}
			pos += length
		} else {
			store.AddLiteral(in[pos], pos)
			pos++
		}
	}
}
