package driver

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/dargueta/skew"
	"github.com/dargueta/skew/container"
	"github.com/dargueta/skew/utilities/bwt"
	"github.com/dargueta/skew/utilities/compression"
	"github.com/hashicorp/go-multierror"
)

// DefaultBlockSize is the block size used when none is given: 4 MiB.
const DefaultBlockSize = 4 * 1024 * 1024

// Options configures a [Pipeline].
type Options struct {
	// BlockSize is the number of bytes per block. Ignored if WholeFile is set.
	BlockSize int64
	// WholeFile treats the entire input as a single block.
	WholeFile bool
	// MaxRun caps the length of a single RLE run, 1 to 255 inclusive.
	MaxRun int
	// SelfValidate decodes every transformed block in memory before writing it
	// and falls back to RAW on a mismatch. See [container.Encoder].
	SelfValidate bool
	// Workers is the number of blocks transformed in parallel. 1 gives the
	// plain sequential pipeline. Inverse is always sequential.
	Workers int
	// Strategy names the BWT sorting strategy, see [bwt.SelectStrategy].
	Strategy string
	// Logger receives per-block records at debug level. Nil discards them.
	Logger *slog.Logger
	// OnBlock, if set, is called once per block in container order.
	OnBlock func(BlockStat)
}

// DefaultOptions returns the recommended configuration: 4 MiB blocks, runs of
// up to 255, self-validation on, one worker.
func DefaultOptions() Options {
	return Options{
		BlockSize:    DefaultBlockSize,
		MaxRun:       compression.DefaultMaxRun,
		SelfValidate: true,
		Workers:      1,
		Strategy:     bwt.StrategyAuto,
	}
}

// Validate checks every field and reports all problems at once.
func (options Options) Validate() error {
	var result *multierror.Error

	if !options.WholeFile {
		if options.BlockSize <= 0 || options.BlockSize > container.MaxBlockSize {
			result = multierror.Append(
				result,
				skew.ErrUnsupportedBlockSize.WithMessage(
					fmt.Sprintf(
						"%d not in range [1, %d]",
						options.BlockSize,
						int64(container.MaxBlockSize),
					),
				),
			)
		}
	}
	if err := compression.CheckMaxRun(options.MaxRun); err != nil {
		result = multierror.Append(result, err)
	}
	if options.Workers < 1 {
		result = multierror.Append(
			result,
			skew.ErrInvalidArgument.WithMessage(
				fmt.Sprintf("need at least one worker, got %d", options.Workers)),
		)
	}
	if _, err := bwt.SelectStrategy(options.Strategy); err != nil {
		result = multierror.Append(result, err)
	}

	return result.ErrorOrNil()
}

func (options Options) logger() *slog.Logger {
	if options.Logger != nil {
		return options.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
