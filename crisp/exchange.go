// SPDX-License-Identifier: MIT

package crisp

import (
	"bytes"

	"github.com/shapaz/pake/cpace"
	"github.com/shapaz/pake/group"
	"github.com/shapaz/pake/internal/herr"
	"github.com/shapaz/pake/internal/ident"
	"github.com/shapaz/pake/internal/tagged"
	"github.com/shapaz/pake/internal/zeroize"
	"github.com/shapaz/pake/pairing"
)

// Exchange is one party's in-progress CRISP key exchange, grounded
// bit-exact on original_source/CRISP/key_exchange.cpp. CRISP's identity
// verification (the e(Cj,g2) == e(H(IDj),Aj) check) runs concurrently with
// the rest of the transcript computation, per the original's comment that it
// runs "while waiting for [the] PAKE response".
type Exchange struct {
	pg  pairing.Group
	g   group.Group
	rec *Record

	aiBytes []byte
	ciBytes []byte
	bi      pairing.G1
}

// NewExchange blinds the enrollment record's A, B, C by a fresh random
// exponent r, then discards r.
func NewExchange(pg pairing.Group, g group.Group, rec *Record) *Exchange {
	r := pg.RandomZr()
	defer zeroize.Scalars(r)

	Ai := pg.NewG2().Pow(rec.A, r)
	Bi := pg.NewG1().Pow(rec.B, r)
	Ci := pg.NewG1().Pow(rec.C, r)

	return &Exchange{pg: pg, g: g, rec: rec, aiBytes: Ai.Bytes(), ciBytes: Ci.Bytes(), bi: Bi}
}

// OutMessage returns the blinded Ai || Ci pair to send alongside this
// party's identity (rec.ID).
func (e *Exchange) OutMessage() []byte {
	out := make([]byte, 0, len(e.aiBytes)+len(e.ciBytes))
	out = append(out, e.aiBytes...)
	out = append(out, e.ciBytes...)
	return out
}

// Finish consumes the peer's identity and blinded (Aj, Cj) pair, verifies
// the peer's identity binding concurrently with deriving the transcript
// secret S, and hands S to cpace.NewSession.
func (e *Exchange) Finish(peerID [ident.MaxID]byte, peerMsg []byte) (*cpace.Session, error) {
	if len(peerMsg) != e.pg.G2Len()+e.pg.G1Len() {
		return nil, herr.New(herr.InvalidEncoding, "crisp: malformed peer message")
	}
	peerAiBytes := peerMsg[:e.pg.G2Len()]
	peerCiBytes := peerMsg[e.pg.G2Len():]

	Aj, err := e.pg.DecodeG2(peerAiBytes)
	if err != nil {
		return nil, err
	}
	Cj, err := e.pg.DecodeG1(peerCiBytes)
	if err != nil {
		return nil, err
	}

	t := e.pg.Pair(e.bi, Aj)

	isFirst := bytes.Compare(e.aiBytes, peerAiBytes) >= 0

	verifyDone := make(chan error, 1)
	go func() {
		verifyDone <- e.verifyPeerIdentity(peerID, Aj, Cj)
	}()

	firstID, secondID := e.rec.ID, peerID
	firstA, secondA := e.aiBytes, peerAiBytes
	firstC, secondC := e.ciBytes, peerCiBytes
	if !isFirst {
		firstID, secondID = secondID, firstID
		firstA, secondA = secondA, firstA
		firstC, secondC = secondC, firstC
	}

	S := tagged.Sum256(protocol, 4, t.Bytes(),
		firstID[:], firstA, firstC,
		secondID[:], secondA, secondC)

	if err := <-verifyDone; err != nil {
		return nil, err
	}

	return cpace.NewSession(e.g, isFirst, nil, S[:], e.rec.ID, peerID, []byte(e.rec.Net))
}

// verifyPeerIdentity checks Aj != identity and e(Cj,g2) == e(H(IDj),Aj),
// binding the peer's blinded ephemeral to the identity it claims.
func (e *Exchange) verifyPeerIdentity(peerID [ident.MaxID]byte, Aj pairing.G2, Cj pairing.G1) error {
	if Aj.IsIdentity() {
		return herr.New(herr.AuthenticationFailure, "crisp: peer ephemeral is the identity of G2")
	}

	idHash := tagged.Sum256(protocol, 2, []byte(e.rec.Net), peerID[:])
	Hj := e.pg.HashToG1(idHash[:])

	lhs := e.pg.Pair(Cj, e.rec.G2)
	rhs := e.pg.Pair(Hj, Aj)
	if !lhs.Equal(rhs) {
		return herr.New(herr.AuthenticationFailure, "crisp: identity verification failed")
	}
	return nil
}
