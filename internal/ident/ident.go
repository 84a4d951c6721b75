// SPDX-License-Identifier: MIT
//
// Package ident implements the fixed-width identity padding shared by CHIP,
// CRISP, and OPAQUE: an identity is a byte string of length at most MaxID,
// right-padded with NUL to exactly MaxID bytes, and always compared and
// hashed at that full width.
package ident

import "github.com/shapaz/pake/internal/herr"

// MaxID is the maximum accepted identity length, in bytes.
const MaxID = 16

// Pad right-pads id with NUL bytes to exactly MaxID bytes. It fails if id is
// already longer than MaxID.
func Pad(id string) ([MaxID]byte, error) {
	var out [MaxID]byte

	if len(id) > MaxID {
		return out, herr.New(herr.InvalidArgument, "identity longer than MaxID")
	}

	copy(out[:], id)
	return out, nil
}

// String trims the trailing NUL padding and returns the identity as a string.
func String(padded [MaxID]byte) string {
	i := 0
	for i < MaxID && padded[i] != 0 {
		i++
	}
	return string(padded[:i])
}
