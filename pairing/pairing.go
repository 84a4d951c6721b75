// SPDX-License-Identifier: MIT
//
// Package pairing exposes the asymmetric bilinear pairing CRISP's identity
// verification and enrollment build on: opaque Zr/G1/G2/GT types with
// exponentiation, hash-to-G1, a fixed G2 generator, and the pairing map
// itself. Curve selection (BN254 vs. BLS12-381) is a backend choice; this
// repository ships a single concrete backend, pairing/bls12381.
//
// The interface is modeled structurally on group.Group (constructors,
// Encode/Decode with post-deserialization validity, opaque element types)
// since CHIP/CPace and CRISP share the same transcript shape across two
// distinct algebraic settings (see the design notes in SPEC_FULL.md §9).
package pairing

import "encoding"

// Zr is a scalar in the pairing's scalar field.
type Zr interface {
	// Zeroize overwrites the receiver's backing bytes with zeros.
	Zeroize()
}

// G1 is an element of the first source group.
type G1 interface {
	encoding.BinaryMarshaler
	encoding.BinaryUnmarshaler

	// Pow sets the receiver to base^x and returns it.
	Pow(base G1, x Zr) G1

	// Bytes returns the canonical encoding of the receiver.
	Bytes() []byte
}

// G2 is an element of the second source group.
type G2 interface {
	encoding.BinaryMarshaler
	encoding.BinaryUnmarshaler

	// Pow sets the receiver to base^x and returns it.
	Pow(base G2, x Zr) G2

	// IsIdentity reports whether the receiver is the identity of G2.
	IsIdentity() bool

	// Bytes returns the canonical encoding of the receiver.
	Bytes() []byte
}

// GT is an element of the target group, the result of a pairing evaluation.
type GT interface {
	// Equal reports whether the receiver and other encode the same element.
	Equal(other GT) bool

	// Bytes returns the canonical encoding of the receiver, used to bind a
	// pairing value into a transcript hash.
	Bytes() []byte
}

// Group constructs fresh Zr/G1/G2/GT values, supplies the fixed G2
// generator and a hash-to-G1 map, and evaluates the pairing.
type Group interface {
	// RandomZr returns a new uniformly random scalar.
	RandomZr() Zr

	// G2Generator returns the group's fixed G2 generator constant.
	G2Generator() G2

	// HashToG1 maps arbitrary input onto G1 via a field-element mapping
	// from little-endian hash bytes.
	HashToG1(input []byte) G1

	// DecodeG1 decodes and validates a G1 element encoding.
	DecodeG1(b []byte) (G1, error)

	// DecodeG2 decodes and validates a G2 element encoding.
	DecodeG2(b []byte) (G2, error)

	// NewG1 returns a new G1 element set to the identity.
	NewG1() G1

	// NewG2 returns a new G2 element set to the identity.
	NewG2() G2

	// Pair evaluates the bilinear map e: G1 x G2 -> GT.
	Pair(a G1, b G2) GT

	// G1Len, G2Len, GTLen return the canonical encoded byte widths.
	G1Len() int
	G2Len() int
	GTLen() int
}
