package deflate

// Token is the minimal view of an LZ77 symbol this package needs to emit a
// bitstream; it intentionally does not depend on the root module's richer
// Store/Symbol types (which in turn depend on this package for its tables),
// to keep the dependency graph acyclic.
type Token struct {
	Literal bool
	Value   uint32 // literal byte value, or match length
	Dist    uint32 // 0 for a literal symbol
}

var fixedLitLenCodes = BuildCanonicalCodes(FixedLitLenLengths())
var fixedDistCodes = BuildCanonicalCodes(FixedDistLengths())

// WriteFixedBlock emits one RFC 1951 section 3.2.6 fixed-Huffman (BTYPE=01)
// DEFLATE block for the given token stream. This is the one bitstream path
// this repo implements: the fixed tree is a protocol constant, so unlike the
// dynamic-Huffman path it needs no Huffman-length computation of its own,
// only the canonical code words built once above.
func WriteFixedBlock(w *BitWriter, tokens []Token, final bool) {
	if final {
		w.WriteBits(1, 1)
	} else {
		w.WriteBits(0, 1)
	}
	w.WriteBits(0b01, 2) // BTYPE = 01, fixed Huffman

	for _, t := range tokens {
		if t.Literal {
			sym := int(t.Value)
			w.WriteHuffmanCode(fixedLitLenCodes[sym], FixedLitLenBits(sym))
			continue
		}
		length, dist := int(t.Value), int(t.Dist)
		lsym := LengthSymbol(length)
		w.WriteHuffmanCode(fixedLitLenCodes[lsym], FixedLitLenBits(lsym))
		lbase := lsym - 257
		if extra := LengthExtraBits[lbase]; extra > 0 {
			w.WriteBits(uint32(length-LengthBase[lbase]), extra)
		}

		dsym := DistSymbol(dist)
		w.WriteHuffmanCode(fixedDistCodes[dsym], FixedDistBits)
		if extra := DistExtraBits[dsym]; extra > 0 {
			w.WriteBits(uint32(dist-DistBase[dsym]), extra)
		}
	}

	w.WriteHuffmanCode(fixedLitLenCodes[EndOfBlock], FixedLitLenBits(EndOfBlock))
}
