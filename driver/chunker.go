package driver

import (
	"fmt"
	"io"

	"github.com/dargueta/skew"
	"github.com/dargueta/skew/container"
)

// Block is a span of input bytes and its position in the input.
type Block struct {
	Index int
	Data  []byte
}

// Chunker splits an input stream into blocks.
type Chunker struct {
	r         io.Reader
	blockSize int64
	wholeFile bool
	nextIndex int
	done      bool
}

// NewChunker returns a chunker producing blocks of blockSize bytes from r, the
// last one possibly shorter. If wholeFile is set, the entire input becomes one
// block and blockSize is ignored.
func NewChunker(r io.Reader, blockSize int64, wholeFile bool) *Chunker {
	return &Chunker{r: r, blockSize: blockSize, wholeFile: wholeFile}
}

// Next returns the next block, or [io.EOF] when the input is exhausted. An empty
// input produces no blocks at all, in either mode.
//
// Each block gets its own buffer, so callers may hold on to it.
func (chunker *Chunker) Next() (Block, error) {
	if chunker.done {
		return Block{}, io.EOF
	}

	limit := chunker.blockSize
	if chunker.wholeFile {
		// One byte past the limit so oversized input can be detected.
		limit = int64(container.MaxBlockSize) + 1
	}

	data, err := io.ReadAll(io.LimitReader(chunker.r, limit))
	if err != nil {
		return Block{}, fmt.Errorf("failed to read block %d: %w", chunker.nextIndex, err)
	}
	if int64(len(data)) < limit {
		chunker.done = true
	}
	if len(data) == 0 {
		return Block{}, io.EOF
	}
	if chunker.wholeFile {
		chunker.done = true
		if int64(len(data)) > container.MaxBlockSize {
			return Block{}, skew.ErrUnsupportedBlockSize.WithMessage(
				"input is too large to be a single block")
		}
	}

	block := Block{Index: chunker.nextIndex, Data: data}
	chunker.nextIndex++
	return block, nil
}
