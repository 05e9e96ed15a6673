package bwt

import (
	"bytes"
	"cmp"
	"fmt"
	"slices"

	"github.com/dargueta/skew"
)

// Strategy sorts the cyclic rotations of a block.
type Strategy interface {
	// Name is the identifier accepted by [SelectStrategy].
	Name() string
	// SortRotations returns the starting offsets of every rotation of data in
	// lexicographic order. Equal rotations are ordered by starting offset.
	SortRotations(data []byte) []int32
}

// StrategyAuto selects the fastest strategy available in this build.
const StrategyAuto = "auto"

var strategies = map[string]Strategy{
	SuffixArray.Name(): SuffixArray,
	Naive.Name():       Naive,
}

// SelectStrategy returns the strategy registered under name. Callers are
// expected to do this once at startup and reuse the result for every block.
func SelectStrategy(name string) (Strategy, error) {
	if name == "" || name == StrategyAuto {
		return SuffixArray, nil
	}
	strategy, ok := strategies[name]
	if !ok {
		return nil, skew.ErrUnknownStrategy.WithMessage(
			fmt.Sprintf("%q; expected one of %v", name, StrategyNames()))
	}
	return strategy, nil
}

// StrategyNames lists every name [SelectStrategy] accepts, sorted.
func StrategyNames() []string {
	names := []string{StrategyAuto}
	for name := range strategies {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

////////////////////////////////////////////////////////////////////////////////
// Naive rotation sort

type naiveStrategy struct{}

// Naive compares full rotations against each other. It needs O(n^2 log n) time
// in the worst case and is only suitable for small blocks and for checking the
// other strategies.
var Naive Strategy = naiveStrategy{}

func (naiveStrategy) Name() string {
	return "naive"
}

func (naiveStrategy) SortRotations(data []byte) []int32 {
	n := len(data)
	order := make([]int32, n)
	for i := range order {
		order[i] = int32(i)
	}

	// Every rotation is a window into the block concatenated with itself.
	doubled := make([]byte, 2*n)
	copy(doubled, data)
	copy(doubled[n:], data)

	slices.SortFunc(order, func(a, b int32) int {
		result := bytes.Compare(doubled[a:int(a)+n], doubled[b:int(b)+n])
		if result != 0 {
			return result
		}
		return cmp.Compare(a, b)
	})
	return order
}

////////////////////////////////////////////////////////////////////////////////
// Prefix doubling

type suffixArrayStrategy struct{}

// SuffixArray builds the sorted rotation array by prefix doubling with counting
// sorts, in O(n log n) time and O(n) extra memory.
var SuffixArray Strategy = suffixArrayStrategy{}

func (suffixArrayStrategy) Name() string {
	return "suffix-array"
}

func (suffixArrayStrategy) SortRotations(data []byte) []int32 {
	n := len(data)
	if n == 0 {
		return []int32{}
	}

	order := make([]int32, n)
	class := make([]int32, n)
	counts := make([]int32, max(256, n))

	// Round zero: sort by first byte. Iterating backwards keeps equal bytes in
	// offset order.
	for _, b := range data {
		counts[b]++
	}
	for i := 1; i < 256; i++ {
		counts[i] += counts[i-1]
	}
	for i := n - 1; i >= 0; i-- {
		counts[data[i]]--
		order[counts[data[i]]] = int32(i)
	}

	numClasses := int32(1)
	class[order[0]] = 0
	for i := 1; i < n; i++ {
		if data[order[i]] != data[order[i-1]] {
			numClasses++
		}
		class[order[i]] = numClasses - 1
	}

	shifted := make([]int32, n)
	nextClass := make([]int32, n)

	// After the round with step k, classes rank rotations by their first 2k
	// bytes. Once 2k >= n the whole rotation has been compared.
	for step := 1; step < n && int(numClasses) < n; step <<= 1 {
		// Sorting by the second half is free: shifting the current order left
		// by step already orders rotations by bytes [step, 2*step).
		for i := 0; i < n; i++ {
			start := int(order[i]) - step
			if start < 0 {
				start += n
			}
			shifted[i] = int32(start)
		}

		// Stable counting sort by the first half.
		clear(counts[:numClasses])
		for _, start := range shifted {
			counts[class[start]]++
		}
		for i := int32(1); i < numClasses; i++ {
			counts[i] += counts[i-1]
		}
		for i := n - 1; i >= 0; i-- {
			c := class[shifted[i]]
			counts[c]--
			order[counts[c]] = shifted[i]
		}

		numClasses = 1
		nextClass[order[0]] = 0
		for i := 1; i < n; i++ {
			current, previous := int(order[i]), int(order[i-1])
			if class[current] != class[previous] ||
				class[(current+step)%n] != class[(previous+step)%n] {
				numClasses++
			}
			nextClass[current] = numClasses - 1
		}
		class, nextClass = nextClass, class
	}

	if int(numClasses) < n {
		breakTiesByOffset(order, class)
	}
	return order
}

// breakTiesByOffset sorts every run of identical rotations by starting offset.
// Identical rotations share a class and are always adjacent in order.
func breakTiesByOffset(order, class []int32) {
	runStart := 0
	for i := 1; i <= len(order); i++ {
		if i < len(order) && class[order[i]] == class[order[runStart]] {
			continue
		}
		if i-runStart > 1 {
			slices.Sort(order[runStart:i])
		}
		runStart = i
	}
}
