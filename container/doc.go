// Package container frames transformed blocks.
//
// A container is a sequence of framed blocks with nothing in between and no
// global header:
//
//	Container := Block*
//	Block     := header(8 bytes) payload(payload_length bytes)
//	header    := mode_or_primary(u32 BE) payload_length(u32 BE)
//
// When mode_or_primary is 0xFFFFFFFF the block is RAW and the payload is the
// block verbatim. Otherwise the block is XFORM: mode_or_primary is the BWT
// primary index and the payload is a sequence of (value, run length) byte
// pairs holding the run-length encoded MTF indices of the BWT last column.
//
// The encoder only keeps an XFORM frame if its payload is strictly smaller than
// the raw block and, when self-validation is on, decoding it in memory gives
// back the raw block exactly. Anything else is stored RAW, so a frame is never
// more than 8 bytes larger than its block.
package container
