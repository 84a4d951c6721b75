// SPDX-License-Identifier: MIT
//
// Package tagged implements the domain-separated TAGGED_HASH primitive used
// by every protocol in this repository: H(label || seg_1 || ... || seg_n),
// where the label is "<PROTOCOL>-<TAG>" in ASCII and H is selected by the
// requested output width. It is a direct port of the vhash/TAGGED_HASH macro
// pair in the original C sources (utils.h, utils.cpp): segments are
// concatenated with no internal length framing, so callers must use
// fixed-width encodings for every segment.
package tagged

import (
	"crypto/sha256"
	"crypto/sha512"
	"fmt"

	"github.com/shapaz/pake/internal/herr"
)

// Hash computes H(label || segs...) into a buffer of len(out) bytes, where
// label is "protocol-tag" and H is SHA-256 for a 32-byte output or SHA-512
// for a 64-byte output. Any other output width is rejected.
func Hash(out []byte, protocol string, tag int, segs ...[]byte) error {
	label := fmt.Sprintf("%s-%d", protocol, tag)

	switch len(out) {
	case sha256.Size:
		h := sha256.New()
		h.Write([]byte(label))
		for _, s := range segs {
			h.Write(s)
		}
		copy(out, h.Sum(nil))
		return nil
	case sha512.Size:
		h := sha512.New()
		h.Write([]byte(label))
		for _, s := range segs {
			h.Write(s)
		}
		copy(out, h.Sum(nil))
		return nil
	default:
		return herr.New(herr.InvalidEncoding, fmt.Sprintf("tagged.Hash: unsupported output width %d", len(out)))
	}
}

// Sum256 returns SHA-256(label || segs...).
func Sum256(protocol string, tag int, segs ...[]byte) [32]byte {
	var out [32]byte
	// Only fails on bad output width, which is impossible for a fixed array.
	_ = Hash(out[:], protocol, tag, segs...)
	return out
}

// Sum512 returns SHA-512(label || segs...).
func Sum512(protocol string, tag int, segs ...[]byte) [64]byte {
	var out [64]byte
	_ = Hash(out[:], protocol, tag, segs...)
	return out
}
