package container

import (
	"bytes"
	"fmt"
	"io"

	"github.com/dargueta/skew"
	"github.com/dargueta/skew/utilities/bwt"
	"github.com/dargueta/skew/utilities/compression"
)

// Framed is a block ready to be written to a container.
type Framed struct {
	Header  Header
	Payload []byte
	// RawSize is the length of the block before encoding.
	RawSize int
	// ValidationFailed is set when a transformed payload that would have been
	// small enough didn't decode back to the block, so it was stored RAW.
	ValidationFailed bool
}

// Mode returns how the block is stored.
func (framed Framed) Mode() Mode {
	return framed.Header.Mode()
}

// Size returns the number of bytes the frame occupies in the container,
// including the header.
func (framed Framed) Size() int {
	return HeaderSize + len(framed.Payload)
}

// WriteTo writes the header and payload to w.
func (framed Framed) WriteTo(w io.Writer) (int64, error) {
	header, _ := framed.Header.MarshalBinary()
	n, err := w.Write(header)
	total := int64(n)
	if err != nil {
		return total, err
	}
	n, err = w.Write(framed.Payload)
	total += int64(n)
	return total, err
}

// Encoder turns blocks into frames. An Encoder has no mutable state of its own
// and can be shared, but each call to EncodeBlock allocates its own coders.
type Encoder struct {
	Strategy bwt.Strategy
	// Stages is the coder chain run over the BWT last column.
	Stages []Stage
	// SelfValidate makes the encoder decode every candidate XFORM payload and
	// compare it with the source block before using it.
	//
	// Turning this off roughly halves the work per block, but a defect in the
	// coder chain will then silently produce containers that don't invert.
	SelfValidate bool
}

// NewEncoder returns an encoder using the default MTF+RLE chain.
func NewEncoder(strategy bwt.Strategy, maxRun int, selfValidate bool) (*Encoder, error) {
	if err := compression.CheckMaxRun(maxRun); err != nil {
		return nil, err
	}
	return &Encoder{
		Strategy:     strategy,
		Stages:       DefaultStages(maxRun),
		SelfValidate: selfValidate,
	}, nil
}

// EncodeBlock chooses between XFORM and RAW framing for block.
//
// A validation mismatch is not an error; it's reported through
// [Framed.ValidationFailed] and the block is stored RAW. Errors are only
// returned for blocks too large to frame or failures in the encoding stages.
func (encoder *Encoder) EncodeBlock(block []byte) (Framed, error) {
	if int64(len(block)) > MaxBlockSize {
		return Framed{}, skew.ErrUnsupportedBlockSize.WithMessage(
			fmt.Sprintf("block of %d bytes can't be framed", len(block)))
	}

	raw := Framed{
		Header:  RawHeader(len(block)),
		Payload: block,
		RawSize: len(block),
	}

	lastColumn, primary := bwt.Transform(block, encoder.Strategy)
	payload := lastColumn
	for _, stage := range encoder.Stages {
		var err error
		payload, err = stage.Encode(payload)
		if err != nil {
			return Framed{}, fmt.Errorf("%s stage failed: %w", stage.Name(), err)
		}
	}

	if len(payload) >= len(block) {
		return raw, nil
	}

	if encoder.SelfValidate {
		restored, err := decodeTransformed(payload, primary, encoder.Stages)
		if err != nil || !bytes.Equal(restored, block) {
			raw.ValidationFailed = true
			return raw, nil
		}
	}

	return Framed{
		Header:  TransformedHeader(primary, len(payload)),
		Payload: payload,
		RawSize: len(block),
	}, nil
}

// decodeTransformed runs the stages in reverse and inverts the BWT.
func decodeTransformed(payload []byte, primary int, stages []Stage) ([]byte, error) {
	if len(payload)%compression.PairSize != 0 {
		return nil, skew.ErrCorruptPayload.WithMessage(
			fmt.Sprintf("payload length %d is odd", len(payload)))
	}

	data := payload
	for i := len(stages) - 1; i >= 0; i-- {
		var err error
		data, err = stages[i].Decode(data)
		if err != nil {
			return nil, err
		}
	}
	return bwt.Inverse(data, primary)
}
