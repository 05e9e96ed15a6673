package main

import (
	"fmt"
	"math"
	"strings"

	"github.com/dargueta/skew"
	"github.com/dustin/go-humanize"
)

// parseSize parses a human-readable byte count. Plain digits are bytes, and a
// bare K, M or G suffix is a power of 1024, so "4M" is 4 MiB. Anything else
// humanize understands ("4MB", "1.5 GiB") is accepted with its usual meaning.
func parseSize(text string) (int64, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, skew.ErrUnsupportedBlockSize.WithMessage("empty size")
	}

	switch text[len(text)-1] {
	case 'K', 'k', 'M', 'm', 'G', 'g':
		text += "iB"
	}

	size, err := humanize.ParseBytes(text)
	if err != nil {
		return 0, skew.ErrUnsupportedBlockSize.Wrap(err)
	}
	if size > math.MaxInt64 {
		return 0, skew.ErrUnsupportedBlockSize.WithMessage(fmt.Sprintf("%q is too large", text))
	}
	return int64(size), nil
}
