package container

import (
	"github.com/dargueta/skew/utilities/compression"
)

// Stage is one reversible coder applied to the BWT last column. Stages run in
// order when encoding and in reverse order when decoding.
//
// Implementations must not keep state between calls; every block starts from
// scratch.
type Stage interface {
	Name() string
	Encode(src []byte) ([]byte, error)
	Decode(src []byte) ([]byte, error)
}

// MTFStage is the move-to-front coder.
type MTFStage struct{}

func (MTFStage) Name() string {
	return "mtf"
}

func (MTFStage) Encode(src []byte) ([]byte, error) {
	return compression.EncodeMTF(src), nil
}

func (MTFStage) Decode(src []byte) ([]byte, error) {
	return compression.DecodeMTF(src), nil
}

// RLEStage is the run-length coder. MaxRun only affects encoding.
type RLEStage struct {
	MaxRun int
}

func (RLEStage) Name() string {
	return "rle"
}

func (stage RLEStage) Encode(src []byte) ([]byte, error) {
	return compression.EncodeRLE(src, stage.MaxRun)
}

func (RLEStage) Decode(src []byte) ([]byte, error) {
	return compression.DecodeRLE(src)
}

// DefaultStages returns the coder chain every container uses: MTF, then RLE
// with runs capped at maxRun.
func DefaultStages(maxRun int) []Stage {
	return []Stage{MTFStage{}, RLEStage{MaxRun: maxRun}}
}
