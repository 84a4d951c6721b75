// SPDX-License-Identifier: MIT
//
// Package bls12381 implements pairing.Group over the BLS12-381 curve using
// github.com/kilic/bls12-381. No repository in the retrieval pack this
// module was built from implements pairing arithmetic directly in Go;
// kilic/bls12-381 is named here as a real, fetchable BLS12-381 pairing
// library (it appears as a transitive dependency of two repositories in the
// pack's reference manifests). See DESIGN.md for the full grounding note.
package bls12381

import (
	"crypto/rand"
	"math/big"

	bls "github.com/kilic/bls12-381"

	"github.com/shapaz/pake/internal/herr"
	"github.com/shapaz/pake/pairing"
)

const (
	zrLen = 32
	g1Len = 48 // compressed G1 encoding
	g2Len = 96 // compressed G2 encoding
	gtLen = 576
)

// Backend is the BLS12-381 instantiation of pairing.Group.
type Backend struct {
	g1 *bls.G1
	g2 *bls.G2
}

// New returns the BLS12-381 pairing backend. The underlying curve context is
// process-wide singleton state inside kilic/bls12-381; New merely captures
// handles to it and is cheap to call repeatedly.
func New() pairing.Group {
	return &Backend{g1: bls.NewG1(), g2: bls.NewG2()}
}

// RandomZr returns a new uniformly random scalar in [1, r).
func (b *Backend) RandomZr() pairing.Zr {
	order := bls.NewG1().Q()
	x, err := rand.Int(rand.Reader, order)
	if err != nil {
		panic("bls12381: could not read randomness: " + err.Error())
	}
	if x.Sign() == 0 {
		x.SetInt64(1)
	}
	return &Scalar{x: x}
}

// G2Generator returns G2's fixed canonical generator.
func (b *Backend) G2Generator() pairing.G2 {
	return &G2Point{g: b.g2, p: b.g2.One()}
}

// HashToG1 maps arbitrary input onto G1 via kilic/bls12-381's built-in
// SSWU-based curve mapping, itself fed from a field-element mapping of the
// (little-endian) input bytes.
func (b *Backend) HashToG1(input []byte) pairing.G1 {
	p, err := b.g1.MapToCurve(input)
	if err != nil {
		panic("bls12381: map to curve failed: " + err.Error())
	}
	return &G1Point{g: b.g1, p: p}
}

// NewG1 returns a new G1 element set to the identity.
func (b *Backend) NewG1() pairing.G1 {
	return &G1Point{g: b.g1, p: b.g1.Zero()}
}

// NewG2 returns a new G2 element set to the identity.
func (b *Backend) NewG2() pairing.G2 {
	return &G2Point{g: b.g2, p: b.g2.Zero()}
}

// DecodeG1 decodes and validates a compressed G1 encoding.
func (b *Backend) DecodeG1(data []byte) (pairing.G1, error) {
	if len(data) != g1Len {
		return nil, herr.New(herr.InvalidEncoding, "bls12381: invalid G1 length")
	}
	p, err := b.g1.FromCompressed(data)
	if err != nil {
		return nil, herr.Wrap(herr.InvalidEncoding, err)
	}
	return &G1Point{g: b.g1, p: p}, nil
}

// DecodeG2 decodes and validates a compressed G2 encoding.
func (b *Backend) DecodeG2(data []byte) (pairing.G2, error) {
	if len(data) != g2Len {
		return nil, herr.New(herr.InvalidEncoding, "bls12381: invalid G2 length")
	}
	p, err := b.g2.FromCompressed(data)
	if err != nil {
		return nil, herr.Wrap(herr.InvalidEncoding, err)
	}
	return &G2Point{g: b.g2, p: p}, nil
}

// Pair evaluates e(a, b).
func (b *Backend) Pair(a pairing.G1, bb pairing.G2) pairing.GT {
	g1p := a.(*G1Point)
	g2p := bb.(*G2Point)

	engine := bls.NewEngine()
	engine.AddPair(g1p.p, g2p.p)
	return &GTElement{e: engine.Result()}
}

// G1Len returns the byte size of a compressed G1 encoding.
func (b *Backend) G1Len() int { return g1Len }

// G2Len returns the byte size of a compressed G2 encoding.
func (b *Backend) G2Len() int { return g2Len }

// GTLen returns the byte size of a GT encoding.
func (b *Backend) GTLen() int { return gtLen }

// Scalar implements pairing.Zr.
type Scalar struct {
	x *big.Int
}

// Zeroize overwrites the receiver's backing big.Int words with zero.
func (s *Scalar) Zeroize() {
	if s.x != nil {
		words := s.x.Bits()
		for i := range words {
			words[i] = 0
		}
		s.x.SetInt64(0)
	}
}

// G1Point implements pairing.G1.
type G1Point struct {
	g *bls.G1
	p *bls.PointG1
}

// Pow sets the receiver to base^x.
func (p *G1Point) Pow(base pairing.G1, x pairing.Zr) pairing.G1 {
	b := base.(*G1Point)
	s := x.(*Scalar)
	p.p = p.g.New()
	p.g.MulScalarBig(p.p, b.p, s.x)
	return p
}

// Bytes returns the compressed encoding of the receiver.
func (p *G1Point) Bytes() []byte {
	return p.g.ToCompressed(p.p)
}

// MarshalBinary returns the compressed encoding of the receiver.
func (p *G1Point) MarshalBinary() ([]byte, error) {
	return p.Bytes(), nil
}

// UnmarshalBinary decodes and validates a compressed G1 encoding.
func (p *G1Point) UnmarshalBinary(data []byte) error {
	if len(data) != g1Len {
		return herr.New(herr.InvalidEncoding, "bls12381: invalid G1 length")
	}
	q, err := p.g.FromCompressed(data)
	if err != nil {
		return herr.Wrap(herr.InvalidEncoding, err)
	}
	p.p = q
	return nil
}

// G2Point implements pairing.G2.
type G2Point struct {
	g *bls.G2
	p *bls.PointG2
}

// Pow sets the receiver to base^x.
func (p *G2Point) Pow(base pairing.G2, x pairing.Zr) pairing.G2 {
	b := base.(*G2Point)
	s := x.(*Scalar)
	p.p = p.g.New()
	p.g.MulScalarBig(p.p, b.p, s.x)
	return p
}

// IsIdentity reports whether the receiver is the identity of G2. This is
// necessary but, per the design notes, not sufficient on its own: callers
// must also rely on deserialization-time subgroup validation.
func (p *G2Point) IsIdentity() bool {
	return p.g.IsZero(p.p)
}

// Bytes returns the compressed encoding of the receiver.
func (p *G2Point) Bytes() []byte {
	return p.g.ToCompressed(p.p)
}

// MarshalBinary returns the compressed encoding of the receiver.
func (p *G2Point) MarshalBinary() ([]byte, error) {
	return p.Bytes(), nil
}

// UnmarshalBinary decodes and validates a compressed G2 encoding.
func (p *G2Point) UnmarshalBinary(data []byte) error {
	if len(data) != g2Len {
		return herr.New(herr.InvalidEncoding, "bls12381: invalid G2 length")
	}
	q, err := p.g.FromCompressed(data)
	if err != nil {
		return herr.Wrap(herr.InvalidEncoding, err)
	}
	p.p = q
	return nil
}

// GTElement implements pairing.GT.
type GTElement struct {
	e *bls.E
}

// Equal reports whether the receiver and other encode the same GT element.
func (g *GTElement) Equal(other pairing.GT) bool {
	o := other.(*GTElement)
	return g.e.Equal(o.e)
}

// Bytes returns the canonical encoding of the receiver. ToBytes lives on
// the GT group handle rather than on the field element itself, so a fresh
// handle is obtained to serialize e.
func (g *GTElement) Bytes() []byte {
	return bls.NewGT().ToBytes(g.e)
}
