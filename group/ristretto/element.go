// SPDX-License-Identifier: MIT

package ristretto

import (
	ristretto255 "github.com/gtank/ristretto255"

	"github.com/shapaz/pake/group"
	"github.com/shapaz/pake/internal/herr"
)

// Point implements group.Point over Ristretto255.
type Point struct {
	p ristretto255.Element
}

// Add sets the receiver to the sum of the receiver and q.
func (p *Point) Add(q group.Point) group.Point {
	o := q.(*Point)
	p.p.Add(&p.p, &o.p)
	return p
}

// ScalarMult sets the receiver to s * q.
func (p *Point) ScalarMult(s group.Scalar, q group.Point) group.Point {
	sc := s.(*Scalar)
	o := q.(*Point)
	p.p.ScalarMult(&sc.s, &o.p)
	return p
}

// Equal reports whether the receiver and q encode the same point.
func (p *Point) Equal(q group.Point) bool {
	o := q.(*Point)
	return p.p.Equal(&o.p) == 1
}

// Bytes returns the canonical 32-byte encoding of the receiver.
func (p *Point) Bytes() []byte {
	return p.p.Encode(nil)
}

// Copy returns an independent copy of the receiver.
func (p *Point) Copy() group.Point {
	cp := ristretto255.NewElement()
	cp.Add(cp, &p.p)
	return &Point{p: *cp}
}

// MarshalBinary returns the canonical 32-byte encoding of the receiver.
func (p *Point) MarshalBinary() ([]byte, error) {
	return p.Bytes(), nil
}

// UnmarshalBinary decodes and validates a 32-byte point encoding into the
// receiver. Deserialization implicitly validates the encoding is a
// canonical Ristretto255 point.
func (p *Point) UnmarshalBinary(data []byte) error {
	if len(data) != group.PointLen {
		return herr.New(herr.InvalidEncoding, "ristretto: invalid point length")
	}

	el := ristretto255.NewElement()
	if err := el.Decode(data); err != nil {
		return herr.Wrap(herr.InvalidEncoding, err)
	}

	p.p = *el
	return nil
}
