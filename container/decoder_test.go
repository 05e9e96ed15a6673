package container_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/dargueta/skew"
	"github.com/dargueta/skew/container"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func frame(t *testing.T, header container.Header, payload []byte) []byte {
	data, err := header.MarshalBinary()
	require.NoError(t, err)
	return append(data, payload...)
}

func TestDecoder__EmptyContainer(t *testing.T) {
	decoder := container.NewDecoder(bytes.NewReader(nil))
	_, _, err := decoder.Next()
	assert.Equal(t, io.EOF, err)
	assert.Zero(t, decoder.BlocksRead())
}

func TestDecoder__Sequence(t *testing.T) {
	encoder := newEncoder(t, true)
	blocks := [][]byte{
		bytes.Repeat([]byte{0}, 1000),
		[]byte("short"),
		bytes.Repeat([]byte("xyz"), 400),
	}

	var stream bytes.Buffer
	for _, block := range blocks {
		framed, err := encoder.EncodeBlock(block)
		require.NoError(t, err)
		_, err = framed.WriteTo(&stream)
		require.NoError(t, err)
	}

	decoder := container.NewDecoder(&stream)
	for i, expected := range blocks {
		block, _, err := decoder.Next()
		require.NoError(t, err, "block %d", i)
		assert.Equal(t, expected, block, "block %d", i)
	}
	_, _, err := decoder.Next()
	assert.Equal(t, io.EOF, err)
	assert.Equal(t, len(blocks), decoder.BlocksRead())
}

func TestDecoder__RawBlock(t *testing.T) {
	data := frame(t, container.RawHeader(3), []byte{7, 8, 9})
	block, header, err := container.NewDecoder(bytes.NewReader(data)).Next()
	require.NoError(t, err)
	assert.Equal(t, container.ModeRaw, header.Mode())
	assert.Equal(t, []byte{7, 8, 9}, block)
}

func TestDecoder__BananaByHand(t *testing.T) {
	// MTF indices of "nnbaaa" as pairs, with primary index 3.
	payload := []byte{110, 1, 0, 1, 99, 2, 0, 2}
	data := frame(t, container.TransformedHeader(3, len(payload)), payload)

	block, _, err := container.NewDecoder(bytes.NewReader(data)).Next()
	require.NoError(t, err)
	assert.Equal(t, []byte("banana"), block)
}

func TestDecoder__TruncatedHeader(t *testing.T) {
	data := frame(t, container.RawHeader(1), []byte{1})
	data = append(data, 0, 0, 0)

	decoder := container.NewDecoder(bytes.NewReader(data))
	_, _, err := decoder.Next()
	require.NoError(t, err)
	_, _, err = decoder.Next()
	assert.ErrorIs(t, err, skew.ErrTruncatedContainer)
}

func TestDecoder__TruncatedPayload(t *testing.T) {
	data := frame(t, container.RawHeader(100), []byte{1, 2, 3})
	_, _, err := container.NewDecoder(bytes.NewReader(data)).Next()
	assert.ErrorIs(t, err, skew.ErrTruncatedContainer)
}

func TestDecoder__HugeLengthDoesNotAllocate(t *testing.T) {
	data := frame(t, container.Header{ModeOrPrimary: 0, PayloadLength: 0xfffffff0}, []byte{1, 2})
	_, _, err := container.NewDecoder(bytes.NewReader(data)).Next()
	assert.ErrorIs(t, err, skew.ErrTruncatedContainer)
}

func TestDecoder__PrimaryOutOfRange(t *testing.T) {
	payload := []byte{5, 3}
	data := frame(t, container.TransformedHeader(3, len(payload)), payload)
	_, _, err := container.NewDecoder(bytes.NewReader(data)).Next()
	assert.ErrorIs(t, err, skew.ErrCorruptPrimaryIndex)
}

func TestDecoder__OddPayload(t *testing.T) {
	payload := []byte{5, 3, 1}
	data := frame(t, container.TransformedHeader(0, len(payload)), payload)
	_, _, err := container.NewDecoder(bytes.NewReader(data)).Next()
	assert.ErrorIs(t, err, skew.ErrCorruptPayload)
}

func TestDecoder__ZeroRunLength(t *testing.T) {
	payload := []byte{5, 3, 1, 0}
	data := frame(t, container.TransformedHeader(0, len(payload)), payload)
	_, _, err := container.NewDecoder(bytes.NewReader(data)).Next()
	assert.ErrorIs(t, err, skew.ErrCorruptPayload)
}
