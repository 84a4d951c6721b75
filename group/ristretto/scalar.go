// SPDX-License-Identifier: MIT

package ristretto

import (
	cryptorand "crypto/rand"

	ristretto255 "github.com/gtank/ristretto255"

	"github.com/shapaz/pake/group"
	"github.com/shapaz/pake/internal/herr"
)

// Scalar implements group.Scalar over Ristretto255's scalar field.
type Scalar struct {
	s ristretto255.Scalar
}

// Random sets the receiver to a uniformly random non-zero scalar, read from
// crypto/rand.
func (s *Scalar) Random() group.Scalar {
	var b [group.UniformLen]byte
	for {
		if _, err := cryptorand.Read(b[:]); err != nil {
			panic("ristretto: could not read randomness: " + err.Error())
		}
		s.s.FromUniformBytes(b[:])
		if s.s.Equal(ristretto255.NewScalar().Zero()) != 1 {
			return s
		}
	}
}

// FromUniformBytes reduces a 64-byte uniform buffer into the receiver. This
// is scalar_reduce in spec terms.
func (s *Scalar) FromUniformBytes(b [group.UniformLen]byte) group.Scalar {
	s.s.FromUniformBytes(b[:])
	return s
}

// Add sets the receiver to the sum of the receiver and sc.
func (s *Scalar) Add(sc group.Scalar) group.Scalar {
	o := sc.(*Scalar)
	s.s.Add(&s.s, &o.s)
	return s
}

// Multiply sets the receiver to the product of the receiver and sc.
func (s *Scalar) Multiply(sc group.Scalar) group.Scalar {
	o := sc.(*Scalar)
	s.s.Multiply(&s.s, &o.s)
	return s
}

// Invert sets the receiver to its modular inverse.
func (s *Scalar) Invert() group.Scalar {
	s.s.Invert(&s.s)
	return s
}

// Copy returns an independent copy of the receiver.
func (s *Scalar) Copy() group.Scalar {
	cp := ristretto255.NewScalar()
	cp.Add(cp, &s.s)
	return &Scalar{s: *cp}
}

// Bytes returns the canonical 32-byte encoding of the receiver.
func (s *Scalar) Bytes() []byte {
	return s.s.Encode(nil)
}

// Zeroize overwrites the receiver's backing bytes with zeros.
func (s *Scalar) Zeroize() {
	s.s.Zero()
}

// MarshalBinary returns the canonical 32-byte encoding of the receiver.
func (s *Scalar) MarshalBinary() ([]byte, error) {
	return s.Bytes(), nil
}

// UnmarshalBinary decodes a 32-byte scalar encoding into the receiver.
func (s *Scalar) UnmarshalBinary(data []byte) error {
	if len(data) != group.ScalarLen {
		return herr.New(herr.InvalidEncoding, "ristretto: invalid scalar length")
	}

	sc := ristretto255.NewScalar()
	if err := sc.Decode(data); err != nil {
		return herr.Wrap(herr.InvalidEncoding, err)
	}

	s.s = *sc
	return nil
}
