package squeeze

import "fmt"

// LZ77 symbol-stream bounds, see RFC 1951 section 3.2.5.
const (
	MinMatch   = 3     // ZOPFLI_MIN_MATCH
	MaxMatch   = 258   // ZOPFLI_MAX_MATCH
	WindowSize = 32768 // ZOPFLI_WINDOW_SIZE
	WindowMask = WindowSize - 1
)

// Symbol is one LZ77 output symbol: a literal byte (Dist == 0, LitLen is the
// byte value) or a length/distance back-reference (Dist != 0, LitLen is the
// match length).
type Symbol struct {
	LitLen uint32 // literal byte value, or match length in [MinMatch, MaxMatch]
	Dist   uint32 // 0 for a literal, or match distance in [1, WindowSize]
	Pos    int    // source byte offset this symbol starts at
}

// IsLiteral reports whether s encodes a literal byte rather than a match.
func (s Symbol) IsLiteral() bool { return s.Dist == 0 }

// Len is the number of input bytes this symbol consumes: 1 for a literal,
// LitLen for a match.
func (s Symbol) Len() int {
	if s.IsLiteral() {
		return 1
	}
	return int(s.LitLen)
}

// Store is an ordered sequence of LZ77 symbols tagged with source offsets.
// The core treats it purely as an append-only sink; callers own its lifetime.
type Store struct {
	Symbols []Symbol
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{}
}

// Reset empties the store for reuse, as the iterated optimizer does between
// runs (ZopfliCleanLZ77Store + ZopfliInitLZ77Store in the original source).
func (st *Store) Reset() {
	st.Symbols = st.Symbols[:0]
}

// AddLiteral appends a literal byte symbol at source offset pos.
func (st *Store) AddLiteral(b byte, pos int) {
	st.Symbols = append(st.Symbols, Symbol{LitLen: uint32(b), Dist: 0, Pos: pos})
}

// AddMatch appends a length/distance back-reference at source offset pos.
func (st *Store) AddMatch(length, dist uint32, pos int) {
	st.Symbols = append(st.Symbols, Symbol{LitLen: length, Dist: dist, Pos: pos})
}

// CopyStore deep-copies src's symbols into dst, overwriting dst's contents.
func CopyStore(dst, src *Store) {
	dst.Symbols = append(dst.Symbols[:0], src.Symbols...)
}

// Size returns the true encoded byte count the store's symbols consume from
// the input, i.e. sum of each symbol's Len().
func (st *Store) Size() int {
	n := 0
	for _, s := range st.Symbols {
		n += s.Len()
	}
	return n
}

// Bytes replays the store's symbols to recover the decoded byte sequence:
// literals are appended and each match copies from the bytes already
// decoded, so the original input is not needed. This is symbol-level decode (not a DEFLATE
// bitstream decode); it exists to exercise the round-trip property without
// needing a full bit-accurate codec for every cost model, only for the
// fixed-Huffman path which WriteFixedBlock covers.
func (st *Store) Bytes() ([]byte, error) {
	var out []byte
	for i, s := range st.Symbols {
		if s.IsLiteral() {
			out = append(out, byte(s.LitLen))
			continue
		}
		length, dist := int(s.LitLen), int(s.Dist)
		if dist < 1 || dist > len(out) {
			return nil, fmt.Errorf("squeeze: symbol %d: distance %d out of range (have %d decoded bytes)", i, dist, len(out))
		}
		start := len(out) - dist
		for k := 0; k < length; k++ {
			out = append(out, out[start+k])
		}
	}
	return out, nil
}

// VerifyLenDist asserts that a claimed back-reference of length bytes at
// distance dist, starting at position pos in in, actually reproduces the
// earlier bytes it claims to copy. Mirrors ZopfliVerifyLenDist.
func VerifyLenDist(in []byte, pos, dist, length int) error {
	if dist > pos {
		return fmt.Errorf("squeeze: distance %d exceeds position %d", dist, pos)
	}
	end := pos + length
	if end > len(in) {
		return fmt.Errorf("squeeze: match of length %d at %d runs past input end %d", length, pos, len(in))
	}
	for i := 0; i < length; i++ {
		if in[pos-dist+i] != in[pos+i] {
			return fmt.Errorf("squeeze: match verify failed at %d: byte %d of match (src %d) mismatches", pos, i, pos-dist+i)
		}
	}
	return nil
}
