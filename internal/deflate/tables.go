// Package deflate holds the RFC 1951 wire-format constants and a minimal
// fixed-Huffman block writer. These are protocol constants, not algorithmic
// choices, so they are hand-coded from RFC 1951 section 3.2.5/3.2.6 rather
// than sourced from a library.
package deflate

// LengthBase and LengthExtraBits index by (length code - 257): the smallest
// length that code represents, and how many extra bits follow it to cover
// the rest of the codes's range. Length 258 is a special case (code 285,
// zero extra bits).
var LengthBase = [29]int{
	3, 4, 5, 6, 7, 8, 9, 10, 11, 13,
	15, 17, 19, 23, 27, 31, 35, 43, 51, 59,
	67, 83, 99, 115, 131, 163, 195, 227, 258,
}

var LengthExtraBits = [29]int{
	0, 0, 0, 0, 0, 0, 0, 0, 1, 1,
	1, 1, 2, 2, 2, 2, 3, 3, 3, 3,
	4, 4, 4, 4, 5, 5, 5, 5, 0,
}

// DistBase and DistExtraBits index by distance code 0..29.
var DistBase = [30]int{
	1, 2, 3, 4, 5, 7, 9, 13, 17, 25,
	33, 49, 65, 97, 129, 193, 257, 385, 513, 769,
	1025, 1537, 2049, 3073, 4097, 6145, 8193, 12289, 16385, 24577,
}

var DistExtraBits = [30]int{
	0, 0, 0, 0, 1, 1, 2, 2, 3, 3,
	4, 4, 5, 5, 6, 6, 7, 7, 8, 8,
	9, 9, 10, 10, 11, 11, 12, 12, 13, 13,
}

// LengthSymbol maps a match length (3..258) to its DEFLATE length code
// (257..285).
func LengthSymbol(length int) int {
	for i := len(LengthBase) - 1; i >= 0; i-- {
		if length >= LengthBase[i] {
			return 257 + i
		}
	}
	return 257
}

// DistSymbol maps a match distance (1..32768) to its DEFLATE distance code
// (0..29).
func DistSymbol(dist int) int {
	for i := len(DistBase) - 1; i >= 0; i-- {
		if dist >= DistBase[i] {
			return i
		}
	}
	return 0
}

// FixedLitLenBits returns the fixed-Huffman code length (RFC 1951 3.2.6) for
// literal/length symbol sym (0..287: 0-255 literals, 256 end-of-block,
// 257-287 length codes).
func FixedLitLenBits(sym int) int {
	switch {
	case sym <= 143:
		return 8
	case sym <= 255:
		return 9
	case sym <= 279:
		return 7
	default:
		return 8
	}
}

// FixedDistBits is the fixed-Huffman code length for every distance symbol:
// always 5 bits under RFC 1951's fixed tree.
const FixedDistBits = 5

// EndOfBlock is the litlen symbol terminating a DEFLATE block.
const EndOfBlock = 256

// NumLitLenSymbols and NumDistSymbols are DEFLATE's fixed alphabet sizes.
const (
	NumLitLenSymbols = 288
	NumDistSymbols   = 32
)
