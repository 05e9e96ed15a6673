// Package skew holds the error taxonomy shared by the reversible block
// transform packages.
//
// The transform itself lives in subpackages:
//
//   - utilities/bwt: Burrows-Wheeler transform and its LF-mapping inverse.
//   - utilities/compression: move-to-front and run-length coders.
//   - container: per-block framing and the RAW/XFORM decision.
//   - driver: splits a stream into blocks and drives the container over them.
//
// A container is a plain concatenation of framed blocks. Each frame starts with
// two big-endian uint32s: either the BWT primary index or 0xFFFFFFFF for a
// verbatim block, followed by the payload length.
package skew
