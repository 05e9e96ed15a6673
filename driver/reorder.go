package driver

import (
	"fmt"

	"github.com/boljen/go-bitmap"
	"github.com/dargueta/skew/container"
)

// reorderWindow holds frames that finished out of order until every frame
// before them has been written. It can hold at most `size` frames, so callers
// must never have more than that many blocks in flight.
type reorderWindow struct {
	frames []container.Framed
	filled bitmap.Bitmap
	next   int
}

func newReorderWindow(size int) *reorderWindow {
	return &reorderWindow{
		frames: make([]container.Framed, size),
		filled: bitmap.New(size),
	}
}

// put stores the frame for block index.
func (window *reorderWindow) put(index int, framed container.Framed) error {
	size := len(window.frames)
	if index < window.next || index >= window.next+size {
		return fmt.Errorf(
			"block %d outside reorder window [%d, %d)", index, window.next, window.next+size)
	}

	slot := index % size
	if window.filled.Get(slot) {
		return fmt.Errorf("block %d delivered twice", index)
	}
	window.frames[slot] = framed
	window.filled.Set(slot, true)
	return nil
}

// pop removes and returns the next frame in block order, if it has arrived.
func (window *reorderWindow) pop() (int, container.Framed, bool) {
	slot := window.next % len(window.frames)
	if !window.filled.Get(slot) {
		return 0, container.Framed{}, false
	}

	framed := window.frames[slot]
	window.frames[slot] = container.Framed{}
	window.filled.Set(slot, false)

	index := window.next
	window.next++
	return index, framed, true
}
