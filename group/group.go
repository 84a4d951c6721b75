// SPDX-License-Identifier: MIT
//
// Package group exposes the prime-order group operations CHIP, CRISP's
// CPace finisher, and OPAQUE all build on: scalar and point arithmetic over
// Ristretto255, a uniform hash-to-group map, and point validity checking.
// It is adapted from bytemare-crypto's group abstraction (an interface over
// Scalar/Element, with one concrete backend per curve), narrowed down to the
// single Ristretto255 backend this repository ships.
package group

import "encoding"

// ScalarLen is the byte size of an encoded Ristretto255 scalar.
const ScalarLen = 32

// PointLen is the byte size of an encoded Ristretto255 point.
const PointLen = 32

// UniformLen is the byte size of the non-reduced, uniform hash image
// consumed by FromUniformBytes (scalar reduction and point-from-hash both
// start from this width).
const UniformLen = 64

// Scalar abstracts a Ristretto255 scalar in Z_q.
type Scalar interface {
	encoding.BinaryMarshaler
	encoding.BinaryUnmarshaler

	// Random sets the receiver to a uniformly random non-zero scalar.
	Random() Scalar

	// FromUniformBytes reduces a 64-byte uniform buffer into the receiver.
	FromUniformBytes(b [UniformLen]byte) Scalar

	// Add sets the receiver to the sum of the receiver and s.
	Add(s Scalar) Scalar

	// Multiply sets the receiver to the product of the receiver and s.
	Multiply(s Scalar) Scalar

	// Invert sets the receiver to its modular inverse.
	Invert() Scalar

	// Copy returns an independent copy of the receiver.
	Copy() Scalar

	// Bytes returns the canonical 32-byte encoding of the receiver.
	Bytes() []byte

	// Zeroize overwrites the receiver's backing bytes with zeros.
	Zeroize()
}

// Point abstracts a Ristretto255 group element.
type Point interface {
	encoding.BinaryMarshaler
	encoding.BinaryUnmarshaler

	// Add sets the receiver to the sum of the receiver and p.
	Add(p Point) Point

	// ScalarMult sets the receiver to s * p.
	ScalarMult(s Scalar, p Point) Point

	// Equal reports whether the receiver and p encode the same point, in
	// constant time.
	Equal(p Point) bool

	// Bytes returns the canonical 32-byte encoding of the receiver.
	Bytes() []byte

	// Copy returns an independent copy of the receiver.
	Copy() Point
}

// Group constructs fresh Scalar and Point values and exposes the base point
// and the uniform hash-to-group map.
type Group interface {
	// NewScalar returns a new scalar set to zero.
	NewScalar() Scalar

	// NewPoint returns a new point set to the identity.
	NewPoint() Point

	// Base returns the group's canonical generator.
	Base() Point

	// BaseMult returns s * Base().
	BaseMult(s Scalar) Point

	// PointFromHash maps a 64-byte uniform buffer onto the group, uniformly.
	PointFromHash(b [UniformLen]byte) Point

	// DecodePoint decodes and validates a 32-byte point encoding.
	DecodePoint(b []byte) (Point, error)

	// DecodeScalar decodes a 32-byte scalar encoding.
	DecodeScalar(b []byte) (Scalar, error)
}
