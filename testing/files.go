package testing

import (
	"io"

	"github.com/xaionaro-go/bytesextra"
)

// NewMemoryFile returns a seekable in-memory stream over a copy of data, for
// code that expects an open file.
//
//   - Writes to the stream do not affect `data`.
//   - While the stream can be written to, its size is fixed to `len(data)`.
//     Attempting to write past the end of this buffer will trigger an error.
func NewMemoryFile(data []byte) io.ReadWriteSeeker {
	contents := make([]byte, len(data))
	copy(contents, data)
	return bytesextra.NewReadWriteSeeker(contents)
}
