package bwt

import (
	"fmt"

	"github.com/dargueta/skew"
)

// Transform returns the last column of the sorted rotation matrix of data and
// the primary index, the rank of data itself among its rotations.
//
// An empty block gives an empty last column and a primary index of 0.
func Transform(data []byte, strategy Strategy) ([]byte, int) {
	n := len(data)
	if n == 0 {
		return []byte{}, 0
	}

	order := strategy.SortRotations(data)
	lastColumn := make([]byte, n)
	primary := 0
	for rank, start := range order {
		if start == 0 {
			primary = rank
			lastColumn[rank] = data[n-1]
		} else {
			lastColumn[rank] = data[start-1]
		}
	}
	return lastColumn, primary
}

// Inverse rebuilds the original block from a last column and primary index by
// walking the LF mapping backwards from the primary row.
//
// A primary index outside [0, len(lastColumn)) for a nonempty column returns
// [skew.ErrCorruptPrimaryIndex].
func Inverse(lastColumn []byte, primary int) ([]byte, error) {
	n := len(lastColumn)
	if n == 0 {
		return []byte{}, nil
	}
	if primary < 0 || primary >= n {
		return nil, skew.ErrCorruptPrimaryIndex.WithMessage(
			fmt.Sprintf("%d not in range [0, %d)", primary, n))
	}

	// rank[i] is the 1-based count of lastColumn[i] within lastColumn[:i+1].
	var counts [256]int
	rank := make([]uint32, n)
	for i, b := range lastColumn {
		counts[b]++
		rank[i] = uint32(counts[b])
	}

	// firstRow[b] is the number of bytes in the column strictly less than b,
	// i.e. the first row of the sorted matrix that starts with b.
	var firstRow [256]int
	total := 0
	for b, count := range counts {
		firstRow[b] = total
		total += count
	}

	result := make([]byte, n)
	row := primary
	for i := n - 1; i >= 0; i-- {
		b := lastColumn[row]
		result[i] = b
		row = firstRow[b] + int(rank[row]) - 1
	}
	return result, nil
}
