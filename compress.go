package squeeze

import (
	"bytes"
	"compress/flate"
	"fmt"
	"io"

	"github.com/zopfligo/squeeze/internal/deflate"
)

// Compressor is the library's top-level entry point: New reads the whole
// input up front (the block is fully materialized; no streaming), WriteTo
// runs the optimizer and emits a compressed stream, reporting a ratio the
// same way a one-shot command-line compressor would.
type Compressor struct {
	opts Options
	src  []byte
}

// New reads all of r and returns a Compressor configured with opts.
func New(r io.Reader, opts Options) (*Compressor, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("squeeze: reading input: %w", err)
	}
	return &Compressor{opts: opts, src: src}, nil
}

// Parse runs the iterated optimizer (or, if opts.Iterations == 0, the
// one-shot fixed-tree optimizer) over the whole input as a single block and
// returns the resulting LZ77 store. Multi-block coordination is out of
// scope: larger inputs are still parsed as one block here.
func (c *Compressor) Parse() (*Store, error) {
	store := NewStore()
	if len(c.src) == 0 {
		return store, nil
	}
	if c.opts.Iterations == 0 {
		if err := LZ77OptimalFixed(c.src, 0, len(c.src), store); err != nil {
			return nil, err
		}
		return store, nil
	}
	if err := LZ77Optimal(c.src, 0, len(c.src), c.opts, store); err != nil {
		return nil, err
	}
	return store, nil
}

// WriteTo runs Parse, emits the result as a single final fixed-Huffman
// DEFLATE block (dynamic-Huffman bitstream emission is out of scope) and
// writes it to w, returning the byte count written.
func (c *Compressor) WriteTo(w io.Writer) (int64, error) {
	store, err := c.Parse()
	if err != nil {
		return 0, err
	}

	bw := deflate.NewBitWriter()
	deflate.WriteFixedBlock(bw, storeToTokens(store), true)
	buf := bw.Bytes()

	n, err := w.Write(buf)
	if err != nil {
		return int64(n), err
	}

	if !c.opts.Verbose {
		return int64(n), nil
	}
	ratio := float64(len(buf)) * 100.0 / float64(maxInt(len(c.src), 1))
	fmt.Printf("input  %d bytes\noutput %d bytes\ncompressed to %.2f%% of original size\n",
		len(c.src), len(buf), ratio)
	return int64(n), nil
}

func storeToTokens(store *Store) []deflate.Token {
	tokens := make([]deflate.Token, len(store.Symbols))
	for i, s := range store.Symbols {
		tokens[i] = deflate.Token{Literal: s.IsLiteral(), Value: s.LitLen, Dist: s.Dist}
	}
	return tokens
}

// Decompress decodes a stream produced by WriteTo. It delegates to the
// standard library's compress/flate reader rather than hand-rolling a
// DEFLATE decoder: bitstream emission is implemented here only for the
// fixed-Huffman path, specifically so the wire format can be verified
// against a decoder this repo did not also have to write.
func Decompress(data []byte) ([]byte, error) {
	r := flate.NewReader(bytes.NewReader(data))
	defer r.Close()
	out, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("squeeze: decompress: %w", err)
	}
	return out, nil
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
