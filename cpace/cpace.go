// SPDX-License-Identifier: MIT
//
// Package cpace implements CPace-Ristretto255, the password-authenticated
// Diffie-Hellman finisher shared by CHIP and CRISP. It takes a pre-existing
// high-entropy secret (the transcript-derived S of each protocol) and the
// two identities, derives a password-bound group generator, and performs a
// single blinded DH over it to produce the final session key.
//
// This is a direct, bit-exact port of pake.cpp/pake.h from the original C
// implementation (jedisct1/cpace-style CPace over libsodium's Ristretto255),
// adapted to this repository's group.Group abstraction and the small
// single-purpose-package style of avahowell-occlude.
package cpace

import (
	"crypto/sha256"
	"crypto/sha512"

	"github.com/shapaz/pake/group"
	"github.com/shapaz/pake/internal/herr"
	"github.com/shapaz/pake/internal/ident"
	"github.com/shapaz/pake/internal/zeroize"
)

const (
	dsi1 = "CRISP-CPace-Ristretto255-1"
	dsi2 = "CRISP-CPace-Ristretto255-2"

	// sha512BlockSize is the SHA-512 block size in bytes; zpad is sized so
	// that |dsi1| + |pwd| + |zpad| is a multiple of it, keeping the
	// password boundary inside the hash's first compression block.
	sha512BlockSize = 128

	// KeyLen is the byte width of the derived session key.
	KeyLen = 32

	// MsgLen is the byte width of the outgoing/incoming CPace message.
	MsgLen = group.PointLen
)

// Session holds one CPace exchange's ephemeral state. The session owns its
// scalar x and generator g exclusively and releases them (zeroizes x) once
// the key has been derived.
type Session struct {
	g       group.Group
	isFirst bool
	sid     []byte
	x       group.Scalar
	gen     group.Point
	xMsg    []byte // the outgoing message, X = gen^x
}

// NewSession computes the password-bound generator and the session's
// outgoing message X. is_first selects which identity is hashed first; both
// peers must compute the same value (see the protocol callers in chip/crisp
// for how is_first is derived from the exchanged ephemerals).
func NewSession(g group.Group, isFirst bool, sid, pwdCPace []byte, idI, idJ [ident.MaxID]byte, extra []byte) (*Session, error) {
	firstID, secondID := idI, idJ
	if !isFirst {
		firstID, secondID = idJ, idI
	}

	h := sha512.New()
	h.Write([]byte(dsi1))
	h.Write(pwdCPace)

	zpadSize := uint(sha512BlockSize-(len(dsi1)+len(pwdCPace))) & (sha512BlockSize - 1)
	h.Write(make([]byte, zpadSize))

	h.Write(sid)
	h.Write([]byte{byte(len(firstID))})
	h.Write(firstID[:])
	h.Write([]byte{byte(len(secondID))})
	h.Write(secondID[:])
	h.Write(extra)

	var sum [64]byte
	copy(sum[:], h.Sum(nil))

	gen := g.PointFromHash(sum)

	x := g.NewScalar().Random()
	X := g.NewPoint().ScalarMult(x, gen)

	return &Session{
		g:       g,
		isFirst: isFirst,
		sid:     sid,
		x:       x,
		gen:     gen,
		xMsg:    X.Bytes(),
	}, nil
}

// OutMessage returns the 32-byte outgoing message X.
func (s *Session) OutMessage() []byte {
	return s.xMsg
}

// NewKey consumes the peer's message Y and derives the final session key.
// The session's ephemeral scalar is zeroized before returning, whether or
// not an error occurred; a Session must not be reused after this call.
func (s *Session) NewKey(peerMsg []byte) ([]byte, error) {
	defer zeroize.Scalars(s.x)

	Y, err := s.g.DecodePoint(peerMsg)
	if err != nil {
		return nil, herr.Wrap(herr.InvalidEncoding, err)
	}

	K := s.g.NewPoint().ScalarMult(s.x, Y)

	firstX, secondX := s.xMsg, peerMsg
	if !s.isFirst {
		firstX, secondX = peerMsg, s.xMsg
	}

	h := sha256.New()
	h.Write([]byte(dsi2))
	h.Write(s.sid)
	h.Write(K.Bytes())
	h.Write(firstX)
	h.Write(secondX)

	return h.Sum(nil), nil
}
