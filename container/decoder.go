package container

import (
	"fmt"
	"io"

	"github.com/dargueta/skew"
	"github.com/dargueta/skew/utilities/compression"
)

// Decoder reads framed blocks from a container stream, one at a time.
type Decoder struct {
	r      io.Reader
	stages []Stage
	blocks int
}

// NewDecoder returns a decoder reading from r with the default coder chain.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{
		r:      r,
		stages: DefaultStages(compression.DefaultMaxRun),
	}
}

// BlocksRead returns the number of blocks successfully decoded so far.
func (decoder *Decoder) BlocksRead() int {
	return decoder.blocks
}

// Next decodes the next block. It returns [io.EOF] once the container ends on a
// block boundary. Any other error is fatal and the decoder must not be used
// again.
func (decoder *Decoder) Next() ([]byte, Header, error) {
	header, err := ReadHeader(decoder.r)
	if err == io.EOF {
		return nil, header, io.EOF
	}
	if err != nil {
		return nil, header, fmt.Errorf("block %d: %w", decoder.blocks, err)
	}

	// Read through a limit so a corrupt length can't make us allocate more
	// than the input actually contains.
	payload, err := io.ReadAll(io.LimitReader(decoder.r, int64(header.PayloadLength)))
	if err != nil {
		return nil, header, fmt.Errorf("block %d: %w", decoder.blocks, err)
	}
	if int64(len(payload)) < int64(header.PayloadLength) {
		return nil, header, skew.ErrTruncatedContainer.WithMessage(
			fmt.Sprintf(
				"block %d: expected %d payload bytes, got %d",
				decoder.blocks,
				header.PayloadLength,
				len(payload),
			),
		)
	}

	block, err := DecodeFrame(header, payload, decoder.stages)
	if err != nil {
		return nil, header, fmt.Errorf("block %d: %w", decoder.blocks, err)
	}
	decoder.blocks++
	return block, header, nil
}

// DecodeFrame recovers the original block from a header and its complete
// payload.
func DecodeFrame(header Header, payload []byte, stages []Stage) ([]byte, error) {
	if header.Mode() == ModeRaw {
		return payload, nil
	}
	return decodeTransformed(payload, header.Primary(), stages)
}
