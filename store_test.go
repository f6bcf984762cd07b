package squeeze

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreBytesRoundTrip(t *testing.T) {
	in := []byte("abcabcabc")
	store := NewStore()
	store.AddLiteral('a', 0)
	store.AddLiteral('b', 1)
	store.AddLiteral('c', 2)
	store.AddMatch(6, 3, 3)

	out, err := store.Bytes()
	require.NoError(t, err)
	assert.Equal(t, in, out)
	assert.Equal(t, len(in), store.Size())
}

func TestStoreBytesBadDistance(t *testing.T) {
	store := NewStore()
	store.AddLiteral('a', 0)
	store.AddMatch(3, 5, 1) // distance exceeds the single decoded byte so far

	_, err := store.Bytes()
	assert.Error(t, err)
}

func TestVerifyLenDist(t *testing.T) {
	in := []byte("abcabc")
	assert.NoError(t, VerifyLenDist(in, 3, 3, 3))
	assert.Error(t, VerifyLenDist(in, 3, 3, 4)) // runs past input end: 3+4 > len(in)
}

func TestVerifyLenDistMismatch(t *testing.T) {
	in := []byte("abcabd")
	assert.Error(t, VerifyLenDist(in, 3, 3, 3))
}

func TestCopyStoreAndReset(t *testing.T) {
	src := NewStore()
	src.AddLiteral('x', 0)
	src.AddMatch(10, 5, 1)

	dst := NewStore()
	CopyStore(dst, src)
	assert.Equal(t, src.Symbols, dst.Symbols)

	src.Reset()
	assert.Empty(t, src.Symbols)
	assert.Len(t, dst.Symbols, 2, "CopyStore must deep-copy, not alias")
}
