package container

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/dargueta/skew"
)

const (
	// Sentinel in the first header field marks a RAW block.
	Sentinel uint32 = 0xFFFFFFFF
	// HeaderSize is the size of a frame header, in bytes.
	HeaderSize = 8
	// MaxBlockSize is the largest block a header can describe.
	MaxBlockSize = math.MaxUint32
)

// Mode says how a block's payload is stored.
type Mode int

const (
	// ModeRaw stores the block verbatim.
	ModeRaw Mode = iota
	// ModeTransformed stores the RLE-encoded MTF indices of the block's BWT.
	ModeTransformed
)

func (mode Mode) String() string {
	switch mode {
	case ModeRaw:
		return "RAW"
	case ModeTransformed:
		return "XFORM"
	default:
		return fmt.Sprintf("Mode(%d)", int(mode))
	}
}

// Header is the fixed-size prefix of every framed block.
type Header struct {
	// ModeOrPrimary is either [Sentinel] or the BWT primary index.
	ModeOrPrimary uint32
	// PayloadLength is the number of payload bytes following the header.
	PayloadLength uint32
}

// RawHeader returns the header for a block of length bytes stored verbatim.
func RawHeader(length int) Header {
	return Header{ModeOrPrimary: Sentinel, PayloadLength: uint32(length)}
}

// TransformedHeader returns the header for a transformed block.
func TransformedHeader(primary, payloadLength int) Header {
	return Header{ModeOrPrimary: uint32(primary), PayloadLength: uint32(payloadLength)}
}

// Mode returns how the payload following this header is stored.
func (header Header) Mode() Mode {
	if header.ModeOrPrimary == Sentinel {
		return ModeRaw
	}
	return ModeTransformed
}

// Primary returns the BWT primary index. It's only meaningful for transformed
// blocks.
func (header Header) Primary() int {
	return int(header.ModeOrPrimary)
}

// MarshalBinary implements [encoding.BinaryMarshaler].
func (header Header) MarshalBinary() ([]byte, error) {
	buffer := make([]byte, HeaderSize)
	binary.BigEndian.PutUint32(buffer[0:4], header.ModeOrPrimary)
	binary.BigEndian.PutUint32(buffer[4:8], header.PayloadLength)
	return buffer, nil
}

// UnmarshalBinary implements [encoding.BinaryUnmarshaler].
func (header *Header) UnmarshalBinary(data []byte) error {
	if len(data) < HeaderSize {
		return skew.ErrTruncatedContainer.WithMessage(
			fmt.Sprintf("header needs %d bytes, got %d", HeaderSize, len(data)))
	}
	header.ModeOrPrimary = binary.BigEndian.Uint32(data[0:4])
	header.PayloadLength = binary.BigEndian.Uint32(data[4:8])
	return nil
}

// ReadHeader reads one header from r.
//
// If r is already at its end, this returns [io.EOF]; that's the only way a
// container ends cleanly. A partial header returns [skew.ErrTruncatedContainer].
func ReadHeader(r io.Reader) (Header, error) {
	var buffer [HeaderSize]byte
	var header Header

	_, err := io.ReadFull(r, buffer[:])
	if err != nil {
		if errors.Is(err, io.EOF) {
			return header, io.EOF
		}
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return header, skew.ErrTruncatedContainer.Wrap(err)
		}
		return header, err
	}

	err = header.UnmarshalBinary(buffer[:])
	return header, err
}
