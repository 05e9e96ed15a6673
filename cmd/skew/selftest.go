package main

import (
	"bytes"
	"crypto/rand"
	"fmt"

	"github.com/dargueta/skew"
	"github.com/dargueta/skew/driver"
	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v2"
)

const (
	selfTestDataSize  = 1 << 20
	selfTestBlockSize = 64 << 10
)

// selfTest round-trips a megabyte of random data through the whole pipeline
// in memory.
func selfTest(ctx *cli.Context) error {
	options := driver.DefaultOptions()
	options.BlockSize = selfTestBlockSize
	options.Workers = ctx.Int("workers")
	options.Strategy = ctx.String("bwt-strategy")
	options.Logger = newLogger(ctx)

	pipeline, err := driver.New(options)
	if err != nil {
		return err
	}

	data := make([]byte, selfTestDataSize)
	if _, err := rand.Read(data); err != nil {
		return fmt.Errorf("failed to generate test data: %w", err)
	}

	var encoded, restored bytes.Buffer
	report, err := pipeline.Transform(ctx.Context, bytes.NewReader(data), &encoded)
	if err != nil {
		return err
	}
	if _, err = pipeline.Inverse(ctx.Context, &encoded, &restored); err != nil {
		return err
	}

	fmt.Fprintf(
		errWriter(ctx),
		"Self-test: %s in %d blocks of %s\n",
		humanize.IBytes(uint64(len(data))),
		report.Blocks,
		humanize.IBytes(uint64(pipeline.Options().BlockSize)),
	)
	if !bytes.Equal(data, restored.Bytes()) {
		fmt.Fprintln(errWriter(ctx), "SELFTEST FAILED")
		return skew.ErrValidationMismatch.WithMessage("restored data differs from input")
	}
	fmt.Fprintln(errWriter(ctx), "SELFTEST PASSED")
	return nil
}
