package container_test

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/dargueta/skew"
	"github.com/dargueta/skew/container"
	"github.com/dargueta/skew/utilities/bwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// identityMTFStage pretends to MTF-encode but passes bytes through unchanged,
// while decoding like the real thing. Its output still compresses well under
// RLE, so it produces plausible-looking payloads that don't invert.
type identityMTFStage struct {
	container.MTFStage
}

func (identityMTFStage) Encode(src []byte) ([]byte, error) {
	return bytes.Clone(src), nil
}

func newEncoder(t *testing.T, selfValidate bool) *container.Encoder {
	encoder, err := container.NewEncoder(bwt.SuffixArray, 255, selfValidate)
	require.NoError(t, err)
	return encoder
}

func decodeFramed(t *testing.T, framed container.Framed) []byte {
	var buffer bytes.Buffer
	_, err := framed.WriteTo(&buffer)
	require.NoError(t, err)
	assert.Equal(t, framed.Size(), buffer.Len())

	decoded, header, err := container.NewDecoder(&buffer).Next()
	require.NoError(t, err)
	assert.Equal(t, framed.Header, header)
	return decoded
}

func TestEncodeBlock__RepetitiveIsTransformed(t *testing.T) {
	block := bytes.Repeat([]byte("abcabcabd"), 500)

	framed, err := newEncoder(t, true).EncodeBlock(block)
	require.NoError(t, err)
	assert.Equal(t, container.ModeTransformed, framed.Mode())
	assert.Less(t, len(framed.Payload), len(block))
	assert.Zero(t, len(framed.Payload)%2, "payload length must be even")
	assert.Less(t, framed.Header.Primary(), len(block))
	assert.False(t, framed.ValidationFailed)

	assert.Equal(t, block, decodeFramed(t, framed))
}

func TestEncodeBlock__RandomIsRaw(t *testing.T) {
	block := make([]byte, 4096)
	rand.New(rand.NewSource(7)).Read(block)

	framed, err := newEncoder(t, true).EncodeBlock(block)
	require.NoError(t, err)
	assert.Equal(t, container.ModeRaw, framed.Mode())
	assert.Equal(t, block, framed.Payload)
	assert.LessOrEqual(t, framed.Size(), len(block)+container.HeaderSize)
	assert.False(t, framed.ValidationFailed)

	assert.Equal(t, block, decodeFramed(t, framed))
}

func TestEncodeBlock__BananaTooShortToShrink(t *testing.T) {
	// nnbaaa -> MTF 110 0 99 99 0 0 -> four pairs, eight bytes
	framed, err := newEncoder(t, true).EncodeBlock([]byte("banana"))
	require.NoError(t, err)
	assert.Equal(t, container.ModeRaw, framed.Mode())
	assert.Equal(t, container.RawHeader(6), framed.Header)
}

func TestEncodeBlock__SingleByteBlockIsRaw(t *testing.T) {
	framed, err := newEncoder(t, true).EncodeBlock([]byte{0x41})
	require.NoError(t, err)
	assert.Equal(t, container.ModeRaw, framed.Mode())
	assert.Equal(t, []byte{0x41}, decodeFramed(t, framed))
}

func TestEncodeBlock__SingleByteValueCompressesHard(t *testing.T) {
	block := bytes.Repeat([]byte{0x5a}, 1<<20)

	framed, err := newEncoder(t, true).EncodeBlock(block)
	require.NoError(t, err)
	require.Equal(t, container.ModeTransformed, framed.Mode())
	// One pair for the first MTF index, then runs of 255 zeros.
	assert.Less(t, len(framed.Payload), len(block)/100)
	assert.Equal(t, block, decodeFramed(t, framed))
}

func TestEncodeBlock__SelfValidationCatchesBrokenCoder(t *testing.T) {
	block := bytes.Repeat([]byte("abc"), 1000)

	encoder := newEncoder(t, true)
	encoder.Stages = []container.Stage{identityMTFStage{}, container.RLEStage{MaxRun: 255}}

	framed, err := encoder.EncodeBlock(block)
	require.NoError(t, err)
	assert.Equal(t, container.ModeRaw, framed.Mode(), "broken payload wasn't rejected")
	assert.True(t, framed.ValidationFailed)
	assert.Equal(t, block, decodeFramed(t, framed))
}

func TestEncodeBlock__WithoutValidationBrokenCoderCorrupts(t *testing.T) {
	block := bytes.Repeat([]byte("abc"), 1000)

	encoder := newEncoder(t, false)
	encoder.Stages = []container.Stage{identityMTFStage{}, container.RLEStage{MaxRun: 255}}

	framed, err := encoder.EncodeBlock(block)
	require.NoError(t, err)
	require.Equal(t, container.ModeTransformed, framed.Mode())
	assert.False(t, framed.ValidationFailed)
	assert.NotEqual(t, block, decodeFramed(t, framed))
}

func TestNewEncoder__InvalidMaxRun(t *testing.T) {
	_, err := container.NewEncoder(bwt.SuffixArray, 0, true)
	assert.ErrorIs(t, err, skew.ErrInvalidMaxRun)

	_, err = container.NewEncoder(bwt.SuffixArray, 256, true)
	assert.ErrorIs(t, err, skew.ErrInvalidMaxRun)
}

func TestEncodeBlock__SmallMaxRunStillInverts(t *testing.T) {
	block := bytes.Repeat([]byte{1, 1, 1, 1, 1, 1, 1, 1, 2}, 300)
	encoder, err := container.NewEncoder(bwt.Naive, 3, true)
	require.NoError(t, err)

	framed, err := encoder.EncodeBlock(block)
	require.NoError(t, err)
	for i := 1; i < len(framed.Payload) && framed.Mode() == container.ModeTransformed; i += 2 {
		assert.LessOrEqual(t, framed.Payload[i], byte(3))
	}
	assert.Equal(t, block, decodeFramed(t, framed))
}
