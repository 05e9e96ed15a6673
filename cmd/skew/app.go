package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/dargueta/skew/driver"
	"github.com/dargueta/skew/utilities/bwt"
	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v2"
)

// commonFlags returns fresh copies of the flags both commands take.
func commonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "input",
			Aliases:  []string{"i"},
			Usage:    "read from `FILE` (- for stdin)",
			Required: true,
		},
		&cli.StringFlag{
			Name:     "output",
			Aliases:  []string{"o"},
			Usage:    "write to `FILE` (- for stdout)",
			Required: true,
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "log the mode and size of every block",
		},
		&cli.StringFlag{
			Name:  "stats-csv",
			Usage: "write per-block statistics to `FILE` as CSV",
		},
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "skew",
		Usage: "Reversibly reorder a file with BWT, MTF and RLE to expose redundancy",
		Commands: []*cli.Command{
			{
				Name:   "transform",
				Usage:  "Transform a file into a block container",
				Action: transformFile,
				Flags: append(
					commonFlags(),
					&cli.StringFlag{
						Name:    "block-size",
						Aliases: []string{"b"},
						Usage:   "block size, e.g. 512K or 4M (K, M and G are powers of 1024)",
						Value:   "4M",
					},
					&cli.IntFlag{
						Name:  "rle-max-run",
						Usage: "longest run stored in a single RLE pair, 1-255",
						Value: driver.DefaultOptions().MaxRun,
					},
					&cli.BoolFlag{
						Name:    "whole-file",
						Aliases: []string{"w"},
						Usage:   "transform the entire input as one block",
					},
					&cli.BoolFlag{
						Name: "no-validate",
						Usage: "skip decoding each transformed block before writing it; faster, " +
							"but a coder bug would go unnoticed and corrupt the output",
					},
					workersFlag(),
					strategyFlag(),
				),
			},
			{
				Name:   "inverse",
				Usage:  "Recover the original file from a block container",
				Action: inverseFile,
				Flags: append(
					commonFlags(),
					&cli.BoolFlag{
						Name:    "whole-file",
						Aliases: []string{"w"},
						Usage:   "ignored; block boundaries come from the container",
					},
				),
			},
			{
				Name:   "selftest",
				Usage:  "Round-trip 1 MiB of random data in 64 KiB blocks and report the result",
				Action: selfTest,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:    "verbose",
						Aliases: []string{"v"},
						Usage:   "log the mode and size of every block",
					},
					workersFlag(),
					strategyFlag(),
				},
			},
		},
	}
}

func workersFlag() cli.Flag {
	return &cli.IntFlag{
		Name:    "workers",
		Aliases: []string{"j"},
		Usage:   "number of blocks to transform in parallel",
		Value:   1,
	}
}

func strategyFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "bwt-strategy",
		Usage: fmt.Sprintf("rotation sort to use, one of %v", bwt.StrategyNames()),
		Value: bwt.StrategyAuto,
	}
}

// newLogger logs warnings only, or everything down to per-block records when
// verbose is set.
func newLogger(ctx *cli.Context) *slog.Logger {
	level := slog.LevelWarn
	if ctx.Bool("verbose") {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(errWriter(ctx), &slog.HandlerOptions{Level: level}))
}

func errWriter(ctx *cli.Context) io.Writer {
	if ctx.App.ErrWriter != nil {
		return ctx.App.ErrWriter
	}
	return os.Stderr
}

func openInput(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file for reading: `%v`: %w", path, err)
	}
	return file, nil
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error {
	return nil
}

func openOutput(path string) (io.WriteCloser, error) {
	if path == "-" {
		return nopWriteCloser{os.Stdout}, nil
	}
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file for writing: `%v`: %w", path, err)
	}
	return file, nil
}

// runPipeline opens the files named on the command line and runs either
// Transform or Inverse between them.
func runPipeline(
	ctx *cli.Context, options driver.Options, inverse bool,
) (driver.Report, error) {
	var stats []driver.BlockStat
	statsPath := ctx.String("stats-csv")
	if statsPath != "" {
		options.OnBlock = func(stat driver.BlockStat) {
			stats = append(stats, stat)
		}
	}
	options.Logger = newLogger(ctx)

	pipeline, err := driver.New(options)
	if err != nil {
		return driver.Report{}, err
	}

	input, err := openInput(ctx.String("input"))
	if err != nil {
		return driver.Report{}, err
	}
	defer input.Close()

	output, err := openOutput(ctx.String("output"))
	if err != nil {
		return driver.Report{}, err
	}

	var report driver.Report
	if inverse {
		report, err = pipeline.Inverse(ctx.Context, input, output)
	} else {
		report, err = pipeline.Transform(ctx.Context, input, output)
	}
	closeErr := output.Close()
	if err != nil {
		return report, err
	}
	if closeErr != nil {
		return report, closeErr
	}

	if statsPath != "" {
		if err := writeStatsCSV(statsPath, stats); err != nil {
			return report, err
		}
	}
	return report, nil
}

func transformFile(ctx *cli.Context) error {
	blockSize, err := parseSize(ctx.String("block-size"))
	if err != nil {
		return err
	}

	options := driver.DefaultOptions()
	options.BlockSize = blockSize
	options.WholeFile = ctx.Bool("whole-file")
	options.MaxRun = ctx.Int("rle-max-run")
	options.SelfValidate = !ctx.Bool("no-validate")
	options.Workers = ctx.Int("workers")
	options.Strategy = ctx.String("bwt-strategy")

	report, err := runPipeline(ctx, options, false)
	if err != nil {
		return err
	}

	fmt.Fprintf(
		errWriter(ctx),
		"Transform done: %d/%d blocks passthrough (%.1f%%), %s -> %s\n",
		report.Passthrough,
		report.Blocks,
		report.PassthroughPercent(),
		humanize.IBytes(uint64(report.BytesIn)),
		humanize.IBytes(uint64(report.BytesOut)),
	)
	if report.ValidationFallbacks > 0 {
		fmt.Fprintf(
			errWriter(ctx),
			"%d blocks failed self-validation and were stored raw\n",
			report.ValidationFallbacks,
		)
	}
	return nil
}

func inverseFile(ctx *cli.Context) error {
	report, err := runPipeline(ctx, driver.DefaultOptions(), true)
	if err != nil {
		return err
	}

	fmt.Fprintf(
		errWriter(ctx),
		"Inverse done: %d blocks, %s -> %s\n",
		report.Blocks,
		humanize.IBytes(uint64(report.BytesIn)),
		humanize.IBytes(uint64(report.BytesOut)),
	)
	return nil
}
