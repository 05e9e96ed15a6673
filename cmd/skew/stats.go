package main

import (
	"fmt"
	"os"

	"github.com/dargueta/skew/driver"
	"github.com/gocarina/gocsv"
)

type blockStatRow struct {
	Block            int    `csv:"block"`
	Mode             string `csv:"mode"`
	RawSize          int    `csv:"raw_size"`
	EncodedSize      int    `csv:"encoded_size"`
	ValidationFailed bool   `csv:"validation_failed"`
}

// writeStatsCSV writes one row per block to the file at path.
func writeStatsCSV(path string, stats []driver.BlockStat) error {
	rows := make([]*blockStatRow, 0, len(stats))
	for _, stat := range stats {
		rows = append(rows, &blockStatRow{
			Block:            stat.Index,
			Mode:             stat.Mode.String(),
			RawSize:          stat.RawSize,
			EncodedSize:      stat.EncodedSize,
			ValidationFailed: stat.ValidationFailed,
		})
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create statistics file `%v`: %w", path, err)
	}
	defer file.Close()

	if err := gocsv.Marshal(&rows, file); err != nil {
		return fmt.Errorf("failed to write statistics: %w", err)
	}
	return nil
}
