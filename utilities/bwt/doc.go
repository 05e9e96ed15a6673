// Package bwt implements the Burrows-Wheeler transform over cyclic rotations.
//
// The forward transform sorts every cyclic rotation of a block and keeps the
// last column of the sorted matrix along with the rank of the unrotated block
// (the primary index). For "banana":
//
//	abanan
//	anaban
//	ananab
//	banana   <- primary index 3
//	nabana
//	nanaba
//
// gives the last column "nnbaaa". Rotations that compare equal, which only
// happens for periodic blocks such as "abab", are ordered by their starting
// offset.
//
// Sorting is pluggable through [Strategy]. [SuffixArray] does prefix doubling
// in O(n log n); [Naive] compares whole rotations and exists as a reference.
// Both produce byte-identical output for every input.
package bwt
