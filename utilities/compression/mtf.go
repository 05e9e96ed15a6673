package compression

import "bytes"

// MoveToFront is the recency list shared by the MTF encoder and decoder. It
// always holds each of the 256 byte values exactly once; only the order
// changes.
//
// The list is a plain array, so copying a MoveToFront gives an independent
// coder. The zero value is not ready to use; call [NewMoveToFront].
type MoveToFront struct {
	symbols [256]byte
}

// NewMoveToFront returns a coder whose list is in ascending order.
func NewMoveToFront() MoveToFront {
	coder := MoveToFront{}
	coder.Reset()
	return coder
}

// Reset puts the list back in ascending order.
func (coder *MoveToFront) Reset() {
	for i := range coder.symbols {
		coder.symbols[i] = byte(i)
	}
}

// moveToFront moves the value at position index to the head of the list.
func (coder *MoveToFront) moveToFront(index int) {
	value := coder.symbols[index]
	copy(coder.symbols[1:index+1], coder.symbols[:index])
	coder.symbols[0] = value
}

// EncodeByte returns the current position of value and moves it to the front.
func (coder *MoveToFront) EncodeByte(value byte) byte {
	index := bytes.IndexByte(coder.symbols[:], value)
	coder.moveToFront(index)
	return byte(index)
}

// DecodeByte returns the value at position index and moves it to the front.
func (coder *MoveToFront) DecodeByte(index byte) byte {
	value := coder.symbols[index]
	coder.moveToFront(int(index))
	return value
}

// Encode MTF-encodes src, continuing from the coder's current state.
func (coder *MoveToFront) Encode(src []byte) []byte {
	output := make([]byte, len(src))
	for i, value := range src {
		output[i] = coder.EncodeByte(value)
	}
	return output
}

// Decode reverses [MoveToFront.Encode], continuing from the coder's current
// state.
func (coder *MoveToFront) Decode(src []byte) []byte {
	output := make([]byte, len(src))
	for i, index := range src {
		output[i] = coder.DecodeByte(index)
	}
	return output
}

// EncodeMTF encodes src with a fresh coder.
func EncodeMTF(src []byte) []byte {
	coder := NewMoveToFront()
	return coder.Encode(src)
}

// DecodeMTF decodes src with a fresh coder.
func DecodeMTF(src []byte) []byte {
	coder := NewMoveToFront()
	return coder.Decode(src)
}
