package testing

import (
	"bytes"
	"crypto/rand"
	mathrand "math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

// CreateRandomBlock returns size bytes of cryptographically random data. It is
// guaranteed to either return a valid slice or fail the test and abort.
//
// Random data doesn't compress, so it's what to use when a block must end up
// stored RAW.
func CreateRandomBlock(size int, t *testing.T) []byte {
	block := make([]byte, size)
	_, err := rand.Read(block)
	require.NoErrorf(t, err, "failed to initialize %d random bytes", size)
	return block
}

// CreateTextBlock returns size bytes of pseudo-random words drawn from a small
// vocabulary. The same seed always gives the same block. The output has enough
// repetition for the transform to shrink it.
func CreateTextBlock(size int, seed int64) []byte {
	words := []string{
		"block ", "frame ", "rotation ", "primary ", "index ", "run ",
		"length ", "front ", "list ", "suffix ", "array ", "the ", "a ",
	}
	rng := mathrand.New(mathrand.NewSource(seed))

	var buffer bytes.Buffer
	buffer.Grow(size + 16)
	for buffer.Len() < size {
		buffer.WriteString(words[rng.Intn(len(words))])
	}
	return buffer.Bytes()[:size]
}

// CreateUniformBlock returns size copies of value.
func CreateUniformBlock(size int, value byte) []byte {
	return bytes.Repeat([]byte{value}, size)
}
