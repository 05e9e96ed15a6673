package driver

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/dargueta/skew"
	"github.com/dargueta/skew/container"
	"github.com/dargueta/skew/utilities/bwt"
	"golang.org/x/sync/errgroup"
)

// Pipeline drives the container encoder over a stream of blocks and the
// decoder over a container.
type Pipeline struct {
	options  Options
	strategy bwt.Strategy
	logger   *slog.Logger
}

// New validates options and creates a pipeline. The BWT strategy is resolved
// here, once, rather than per block.
func New(options Options) (*Pipeline, error) {
	if err := options.Validate(); err != nil {
		return nil, err
	}

	strategy, err := bwt.SelectStrategy(options.Strategy)
	if err != nil {
		return nil, err
	}

	return &Pipeline{
		options:  options,
		strategy: strategy,
		logger:   options.logger(),
	}, nil
}

// Options returns the configuration the pipeline was created with.
func (pipeline *Pipeline) Options() Options {
	return pipeline.options
}

func (pipeline *Pipeline) newEncoder() (*container.Encoder, error) {
	return container.NewEncoder(
		pipeline.strategy, pipeline.options.MaxRun, pipeline.options.SelfValidate)
}

// record updates the report and notifies observers about one finished block.
func (pipeline *Pipeline) record(report *Report, stat BlockStat, bytesIn, bytesOut int) {
	report.add(stat, bytesIn, bytesOut)

	pipeline.logger.Debug(
		"block",
		"block", stat.Index,
		"mode", stat.Mode.String(),
		"raw", stat.RawSize,
		"encoded", stat.EncodedSize,
	)
	if stat.ValidationFailed {
		pipeline.logger.Warn(
			"transformed block failed validation, stored raw",
			"block", stat.Index,
			"error", skew.ErrValidationMismatch,
		)
	}
	if pipeline.options.OnBlock != nil {
		pipeline.options.OnBlock(stat)
	}
}

func frameStat(index int, framed container.Framed) BlockStat {
	return BlockStat{
		Index:            index,
		Mode:             framed.Mode(),
		RawSize:          framed.RawSize,
		EncodedSize:      framed.Size(),
		ValidationFailed: framed.ValidationFailed,
	}
}

// Transform reads input until EOF and writes the container to output.
//
// Frames are always written in input order. If ctx is cancelled or an error
// occurs, output holds the frames completed before that point, which the
// inverse will reject as truncated only if a frame was cut short.
func (pipeline *Pipeline) Transform(
	ctx context.Context, input io.Reader, output io.Writer,
) (Report, error) {
	writer := bufio.NewWriter(output)

	var report Report
	var err error
	if pipeline.options.Workers > 1 {
		report, err = pipeline.transformParallel(ctx, input, writer)
	} else {
		report, err = pipeline.transformSequential(ctx, input, writer)
	}

	flushErr := writer.Flush()
	if err == nil {
		err = flushErr
	}
	if err == nil {
		pipeline.logger.Info(
			"transform complete",
			"blocks", report.Blocks,
			"passthrough", report.Passthrough,
			"validation_fallbacks", report.ValidationFallbacks,
			"bytes_in", report.BytesIn,
			"bytes_out", report.BytesOut,
		)
	}
	return report, err
}

func (pipeline *Pipeline) transformSequential(
	ctx context.Context, input io.Reader, output io.Writer,
) (Report, error) {
	var report Report

	encoder, err := pipeline.newEncoder()
	if err != nil {
		return report, err
	}

	chunker := NewChunker(input, pipeline.options.BlockSize, pipeline.options.WholeFile)
	for {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		block, err := chunker.Next()
		if errors.Is(err, io.EOF) {
			return report, nil
		}
		if err != nil {
			return report, err
		}

		framed, err := encoder.EncodeBlock(block.Data)
		if err != nil {
			return report, fmt.Errorf("block %d: %w", block.Index, err)
		}
		if _, err := framed.WriteTo(output); err != nil {
			return report, fmt.Errorf("failed to write block %d: %w", block.Index, err)
		}
		pipeline.record(&report, frameStat(block.Index, framed), framed.RawSize, framed.Size())
	}
}

type encodedBlock struct {
	index  int
	framed container.Framed
}

// transformParallel runs one reader, Workers encoders and one writer. The
// reader may only run 2*Workers blocks ahead of the writer, which bounds both
// memory use and the size of the reorder window.
func (pipeline *Pipeline) transformParallel(
	ctx context.Context, input io.Reader, output io.Writer,
) (Report, error) {
	var report Report

	numWorkers := pipeline.options.Workers
	windowSize := 2 * numWorkers

	// Each worker gets its own encoder so no coder state is shared.
	encoders := make([]*container.Encoder, numWorkers)
	for i := range encoders {
		encoder, err := pipeline.newEncoder()
		if err != nil {
			return report, err
		}
		encoders[i] = encoder
	}

	inFlight := make(chan struct{}, windowSize)
	jobs := make(chan Block)
	results := make(chan encodedBlock, windowSize)

	group, ctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		defer close(jobs)
		chunker := NewChunker(input, pipeline.options.BlockSize, pipeline.options.WholeFile)
		for {
			if err := ctx.Err(); err != nil {
				return err
			}

			block, err := chunker.Next()
			if errors.Is(err, io.EOF) {
				return nil
			}
			if err != nil {
				return err
			}

			select {
			case inFlight <- struct{}{}:
			case <-ctx.Done():
				return ctx.Err()
			}
			select {
			case jobs <- block:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	})

	var workers sync.WaitGroup
	for _, encoder := range encoders {
		workers.Add(1)
		group.Go(func() error {
			defer workers.Done()
			for block := range jobs {
				framed, err := encoder.EncodeBlock(block.Data)
				if err != nil {
					return fmt.Errorf("block %d: %w", block.Index, err)
				}
				select {
				case results <- encodedBlock{index: block.Index, framed: framed}:
				case <-ctx.Done():
					return ctx.Err()
				}
			}
			return nil
		})
	}
	go func() {
		workers.Wait()
		close(results)
	}()

	group.Go(func() error {
		window := newReorderWindow(windowSize)
		for result := range results {
			if err := window.put(result.index, result.framed); err != nil {
				return err
			}
			for {
				index, framed, ok := window.pop()
				if !ok {
					break
				}
				if _, err := framed.WriteTo(output); err != nil {
					return fmt.Errorf("failed to write block %d: %w", index, err)
				}
				pipeline.record(&report, frameStat(index, framed), framed.RawSize, framed.Size())
				<-inFlight
			}
		}
		return nil
	})

	err := group.Wait()
	return report, err
}

// Inverse reads a container from input and writes the recovered bytes to
// output. Any framing error aborts the run; blocks decoded before it have
// already been written.
func (pipeline *Pipeline) Inverse(
	ctx context.Context, input io.Reader, output io.Writer,
) (Report, error) {
	var report Report
	decoder := container.NewDecoder(bufio.NewReader(input))
	writer := bufio.NewWriter(output)

	err := func() error {
		for {
			if err := ctx.Err(); err != nil {
				return err
			}

			block, header, err := decoder.Next()
			if err == io.EOF {
				return nil
			}
			if err != nil {
				return err
			}

			index := decoder.BlocksRead() - 1
			if _, err := writer.Write(block); err != nil {
				return fmt.Errorf("failed to write block %d: %w", index, err)
			}

			frameSize := container.HeaderSize + int(header.PayloadLength)
			stat := BlockStat{
				Index:       index,
				Mode:        header.Mode(),
				RawSize:     len(block),
				EncodedSize: frameSize,
			}
			pipeline.record(&report, stat, frameSize, len(block))
		}
	}()

	flushErr := writer.Flush()
	if err == nil {
		err = flushErr
	}
	if err == nil {
		pipeline.logger.Info(
			"inverse complete",
			"blocks", report.Blocks,
			"bytes_in", report.BytesIn,
			"bytes_out", report.BytesOut,
		)
	}
	return report, err
}
