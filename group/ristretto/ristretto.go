// SPDX-License-Identifier: MIT
//
// Package ristretto implements group.Group over Ristretto255, adapted from
// bytemare-crypto's internal/ristretto backend, itself wrapping
// github.com/gtank/ristretto255.
package ristretto

import (
	ristretto255 "github.com/gtank/ristretto255"

	"github.com/shapaz/pake/group"
)

// Backend is the Ristretto255 instantiation of group.Group.
type Backend struct{}

// New returns the Ristretto255 group backend.
func New() group.Group {
	return Backend{}
}

// NewScalar returns a new scalar set to zero.
func (Backend) NewScalar() group.Scalar {
	return &Scalar{s: *ristretto255.NewScalar()}
}

// NewPoint returns a new point set to the identity.
func (Backend) NewPoint() group.Point {
	return &Point{p: *ristretto255.NewElement()}
}

// Base returns the group's canonical generator.
func (Backend) Base() group.Point {
	return &Point{p: *ristretto255.NewElement().Base()}
}

// BaseMult returns s * Base().
func (b Backend) BaseMult(s group.Scalar) group.Point {
	sc := s.(*Scalar)
	p := ristretto255.NewElement().ScalarBaseMult(&sc.s)
	return &Point{p: *p}
}

// PointFromHash maps a 64-byte uniform buffer onto the group.
func (Backend) PointFromHash(b [group.UniformLen]byte) group.Point {
	p := ristretto255.NewElement().FromUniformBytes(b[:])
	return &Point{p: *p}
}

// DecodePoint decodes and validates a 32-byte point encoding.
func (Backend) DecodePoint(b []byte) (group.Point, error) {
	p := &Point{}
	if err := p.UnmarshalBinary(b); err != nil {
		return nil, err
	}
	return p, nil
}

// DecodeScalar decodes a 32-byte scalar encoding.
func (Backend) DecodeScalar(b []byte) (group.Scalar, error) {
	s := &Scalar{}
	if err := s.UnmarshalBinary(b); err != nil {
		return nil, err
	}
	return s, nil
}
