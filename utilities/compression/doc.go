// Package compression provides the two symbol coders applied to the output of
// the Burrows-Wheeler transform.
//
// Move-to-front (MTF) replaces each byte with its position in a recency list
// of all 256 byte values and then moves it to the front of that list. After a
// BWT, equal bytes tend to cluster, so MTF output is dominated by small values
// and long stretches of zeros.
//
// Run-length encoding (RLE) then collapses each run of identical values into a
// two-byte pair: the value followed by the run length. Run lengths are capped
// at a configurable maximum between 1 and 255; longer runs are split. For
// example, with the default cap of 255, 600 zero bytes become
//
//	00 FF  00 FF  00 5A
//
// Unlike RLE8, a byte that isn't repeated still costs two bytes, so this only
// pays off on the highly repetitive output of MTF. Deciding whether it paid off
// is left to the caller.
package compression
