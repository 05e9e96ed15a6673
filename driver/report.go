package driver

import (
	"github.com/dargueta/skew/container"
)

// BlockStat describes how one block was stored.
type BlockStat struct {
	Index int
	Mode  container.Mode
	// RawSize is the length of the block itself.
	RawSize int
	// EncodedSize is the length of the frame in the container, header included.
	EncodedSize int
	// ValidationFailed is set when a transformed block failed its round-trip
	// check and was stored RAW instead.
	ValidationFailed bool
}

// Report totals the blocks of one run.
type Report struct {
	Blocks              int
	Passthrough         int
	ValidationFallbacks int
	BytesIn             int64
	BytesOut            int64
}

// PassthroughPercent returns the share of blocks stored RAW, 0 to 100.
func (report Report) PassthroughPercent() float64 {
	if report.Blocks == 0 {
		return 0
	}
	return float64(report.Passthrough) / float64(report.Blocks) * 100
}

func (report *Report) add(stat BlockStat, bytesIn, bytesOut int) {
	report.Blocks++
	if stat.Mode == container.ModeRaw {
		report.Passthrough++
	}
	if stat.ValidationFailed {
		report.ValidationFallbacks++
	}
	report.BytesIn += int64(bytesIn)
	report.BytesOut += int64(bytesOut)
}
