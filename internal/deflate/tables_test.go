package deflate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLengthSymbolBoundaries(t *testing.T) {
	assert.Equal(t, 257, LengthSymbol(3))
	assert.Equal(t, 258, LengthSymbol(4))
	assert.Equal(t, 259, LengthSymbol(5))
	assert.Equal(t, 285, LengthSymbol(258))
}

func TestDistSymbolBoundaries(t *testing.T) {
	assert.Equal(t, 0, DistSymbol(1))
	assert.Equal(t, 1, DistSymbol(2))
	assert.Equal(t, 2, DistSymbol(3))
	assert.Equal(t, 29, DistSymbol(32768))
}

func TestLengthSymbolCoversFullRange(t *testing.T) {
	for length := 3; length <= 258; length++ {
		sym := LengthSymbol(length)
		assert.GreaterOrEqual(t, sym, 257)
		assert.LessOrEqual(t, sym, 285)
		base := LengthBase[sym-257]
		assert.LessOrEqual(t, base, length)
		if sym < 285 {
			nextBase := LengthBase[sym-257+1]
			assert.Less(t, length, nextBase+1)
		}
	}
	assert.Equal(t, 285, LengthSymbol(258))
}

func TestFixedLitLenBitsMatchesRFC1951Profile(t *testing.T) {
	assert.Equal(t, 8, FixedLitLenBits(0))
	assert.Equal(t, 8, FixedLitLenBits(143))
	assert.Equal(t, 9, FixedLitLenBits(144))
	assert.Equal(t, 9, FixedLitLenBits(255))
	assert.Equal(t, 7, FixedLitLenBits(256))
	assert.Equal(t, 7, FixedLitLenBits(279))
	assert.Equal(t, 8, FixedLitLenBits(280))
	assert.Equal(t, 8, FixedLitLenBits(287))
}

func TestBuildCanonicalCodesIsPrefixFree(t *testing.T) {
	lengths := FixedLitLenLengths()
	codes := BuildCanonicalCodes(lengths)

	seen := map[string]bool{}
	for sym, l := range lengths {
		if l == 0 {
			continue
		}
		key := codeKey(codes[sym], l)
		assert.False(t, seen[key], "duplicate code for symbol %d", sym)
		seen[key] = true
	}

	// Kraft's inequality must hold with equality for a complete code.
	var sum float64
	for _, l := range lengths {
		if l > 0 {
			sum += 1.0 / float64(int(1)<<uint(l))
		}
	}
	assert.InDelta(t, 1.0, sum, 1e-9)
}

func codeKey(code uint16, length int) string {
	b := make([]byte, length)
	for i := 0; i < length; i++ {
		bit := (code >> uint(length-1-i)) & 1
		if bit == 1 {
			b[i] = '1'
		} else {
			b[i] = '0'
		}
	}
	return string(b)
}
