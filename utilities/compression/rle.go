package compression

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/dargueta/skew"
	"github.com/noxer/bytewriter"
)

const (
	// MinRunLength is the smallest cap accepted for a single run.
	MinRunLength = 1
	// MaxRunLength is the largest run length that fits in a pair.
	MaxRunLength = 255
	// DefaultMaxRun is the run cap used when none is configured.
	DefaultMaxRun = MaxRunLength
	// PairSize is the encoded size of one (value, run length) pair.
	PairSize = 2
)

// CheckMaxRun returns [skew.ErrInvalidMaxRun] if maxRun can't be encoded in a
// pair. Out-of-range values are rejected rather than clamped.
func CheckMaxRun(maxRun int) error {
	if maxRun < MinRunLength || maxRun > MaxRunLength {
		return skew.ErrInvalidMaxRun.WithMessage(fmt.Sprintf("got %d", maxRun))
	}
	return nil
}

// CompressRLE reads bytes from the input and writes (value, run length) pairs
// to the output until the input is exhausted. No run written is longer than
// maxRun. The return value is the number of bytes written, only valid if no
// error occurred.
func CompressRLE(input io.Reader, output io.Writer, maxRun int) (int64, error) {
	if err := CheckMaxRun(maxRun); err != nil {
		return 0, err
	}

	grouper := NewRLEGrouper(input, maxRun)
	totalBytesWritten := int64(0)
	for {
		run, err := grouper.GetNextRun()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return totalBytesWritten, nil
			}
			return totalBytesWritten, err
		}

		n, err := output.Write([]byte{run.Byte, byte(run.RunLength)})
		totalBytesWritten += int64(n)
		if err != nil {
			return totalBytesWritten, fmt.Errorf("failed to write to output: %w", err)
		}
	}
}

// DecompressRLE expands (value, run length) pairs from the input into the
// output. The return value is the number of bytes written.
//
// A trailing half pair or a zero run length returns [skew.ErrCorruptPayload].
func DecompressRLE(input io.Reader, output io.Writer) (int64, error) {
	source := bufio.NewReader(input)
	totalBytesWritten := int64(0)
	pairIndex := 0

	for ; ; pairIndex++ {
		value, err := source.ReadByte()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return totalBytesWritten, nil
			}
			return totalBytesWritten, fmt.Errorf("error reading input: %w", err)
		}

		runLength, err := source.ReadByte()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return totalBytesWritten, skew.ErrCorruptPayload.Wrap(io.ErrUnexpectedEOF).WithMessage(
					fmt.Sprintf("missing run length after value %02x in pair %d", value, pairIndex))
			}
			return totalBytesWritten, fmt.Errorf("error reading input: %w", err)
		}
		if runLength == 0 {
			return totalBytesWritten, skew.ErrCorruptPayload.WithMessage(
				fmt.Sprintf("pair %d has a run length of 0", pairIndex))
		}

		n, err := output.Write(bytes.Repeat([]byte{value}, int(runLength)))
		totalBytesWritten += int64(n)
		if err != nil {
			return totalBytesWritten, fmt.Errorf("failed to write to output: %w", err)
		}
	}
}

// EncodeRLE is a convenience function wrapping [CompressRLE] for in-memory
// data.
func EncodeRLE(indices []byte, maxRun int) ([]byte, error) {
	var buffer bytes.Buffer
	_, err := CompressRLE(bytes.NewReader(indices), &buffer, maxRun)
	if err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

// DecodedLength returns the number of bytes the pairs in payload expand to.
func DecodedLength(payload []byte) (int, error) {
	if len(payload)%PairSize != 0 {
		return 0, skew.ErrCorruptPayload.Wrap(io.ErrUnexpectedEOF).WithMessage(
			fmt.Sprintf("payload length %d is odd", len(payload)))
	}

	total := 0
	for i := 1; i < len(payload); i += PairSize {
		total += int(payload[i])
	}
	return total, nil
}

// DecodeRLE expands a complete in-memory payload. The output is sized up front
// from the run lengths, so a payload that would overrun it is reported as
// corrupt instead of growing the buffer.
func DecodeRLE(payload []byte) ([]byte, error) {
	total, err := DecodedLength(payload)
	if err != nil {
		return nil, err
	}

	output := make([]byte, total)
	n, err := DecompressRLE(bytes.NewReader(payload), bytewriter.New(output))
	if err != nil {
		return nil, err
	}
	if n != int64(total) {
		return nil, skew.ErrCorruptPayload.WithMessage(
			fmt.Sprintf("expected %d decoded bytes, got %d", total, n))
	}
	return output, nil
}
