// SPDX-License-Identifier: MIT

package chip

import (
	"bytes"

	"github.com/shapaz/pake/cpace"
	"github.com/shapaz/pake/group"
	"github.com/shapaz/pake/internal/ident"
	"github.com/shapaz/pake/internal/tagged"
	"github.com/shapaz/pake/internal/zeroize"
)

// Exchange is one party's in-progress CHIP key exchange, grounded bit-exact
// on original_source/CHIP/key_exchange.cpp. A party loads its own enrollment
// Record, builds the ephemeral message with NewExchange, sends OutMessage,
// and on receiving the peer's identity/public-key/ephemeral triple calls
// Finish to obtain the CPace session that completes the handshake.
type Exchange struct {
	g       group.Group
	rec     *Record
	r       group.Scalar
	riBytes []byte
}

// NewExchange samples the ephemeral blinding scalar r and computes Ri = r*G.
func NewExchange(g group.Group, rec *Record) *Exchange {
	r := g.NewScalar().Random()
	Ri := g.BaseMult(r)
	return &Exchange{g: g, rec: rec, r: r, riBytes: Ri.Bytes()}
}

// OutMessage returns the 32-byte ephemeral Ri to send alongside this
// party's identity and public key (rec.ID, rec.X).
func (e *Exchange) OutMessage() []byte {
	return e.riBytes
}

// Finish consumes the peer's identity, public key and ephemeral, derives the
// transcript secret S, and hands it to cpace.NewSession to produce the
// finishing CPace session. The exchange's ephemeral scalar is zeroized
// before returning, whether or not an error occurred.
func (e *Exchange) Finish(peerID [ident.MaxID]byte, peerX group.Point, peerRiBytes []byte) (*cpace.Session, error) {
	defer zeroize.Scalars(e.r)

	Rj, err := e.g.DecodePoint(peerRiBytes)
	if err != nil {
		return nil, err
	}

	isFirst := bytes.Compare(e.riBytes, peerRiBytes) >= 0

	A := e.g.NewPoint().ScalarMult(e.r, Rj)

	idHash := tagged.Sum512(protocol, 2, []byte(e.rec.Net), peerID[:], peerX.Bytes())
	hj := e.g.NewScalar().FromUniformBytes(idHash)

	inner := e.g.NewPoint().ScalarMult(hj, e.rec.Y)
	inner.Add(peerX)
	inner.Add(Rj)

	rz := e.r.Add(e.rec.Z)
	B := e.g.NewPoint().ScalarMult(rz, inner)

	firstID, secondID := e.rec.ID, peerID
	firstX, secondX := e.rec.X.Bytes(), peerX.Bytes()
	firstR, secondR := e.riBytes, peerRiBytes
	if !isFirst {
		firstID, secondID = secondID, firstID
		firstX, secondX = secondX, firstX
		firstR, secondR = secondR, firstR
	}

	S := tagged.Sum256(protocol, 4, A.Bytes(), B.Bytes(),
		firstID[:], firstX, firstR,
		secondID[:], secondX, secondR)

	return cpace.NewSession(e.g, isFirst, nil, S[:], e.rec.ID, peerID, []byte(e.rec.Net))
}
