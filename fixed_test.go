package squeeze

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zopfligo/squeeze/internal/deflate"
)

// TestFixedBlockRoundTripsThroughStdlib checks that a store emitted as a
// fixed-Huffman block must decode back to the original bytes under the
// standard library's own flate.Reader, not just this repo's symbol-level
// Store.Bytes replay.
func TestFixedBlockRoundTripsThroughStdlib(t *testing.T) {
	cases := [][]byte{
		[]byte(""),
		[]byte("a"),
		[]byte("abcabcabcabcabc"),
		[]byte("the quick brown fox jumps over the lazy dog, the quick brown fox jumps again"),
	}

	for _, in := range cases {
		store := NewStore()
		require.NoError(t, LZ77OptimalFixed(in, 0, len(in), store))

		bw := deflate.NewBitWriter()
		deflate.WriteFixedBlock(bw, storeToTokens(store), true)

		decoded, err := Decompress(bw.Bytes())
		require.NoError(t, err)
		assert.Equal(t, in, decoded)
	}
}

func TestLZ77OptimalFixedMatchesSymbolReplay(t *testing.T) {
	in := []byte("abcabcabcabc")
	store := NewStore()
	require.NoError(t, LZ77OptimalFixed(in, 0, len(in), store))

	out, err := store.Bytes()
	require.NoError(t, err)
	assert.Equal(t, in, out)
}
