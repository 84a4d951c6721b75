// SPDX-License-Identifier: MIT
//
// Package opaque implements the augmented OPAQUE protocol: an OPRF-blinded
// password hardening step, an encrypted envelope carrying the client's long
// term key pair, and a 3-flight HMQV-style key exchange binding both
// parties' static and ephemeral keys into the final session key. It is a
// direct, bit-exact port of original_source/OPAQUE/{gen_pwd_file,client,
// server}.cpp onto this repository's group.Group abstraction, envelope
// sealing via golang.org/x/crypto/nacl/secretbox and key-stream expansion
// via golang.org/x/crypto/salsa20, matching libsodium's crypto_secretbox
// and crypto_stream respectively.
package opaque

import (
	"io"

	"golang.org/x/crypto/nacl/secretbox"

	"github.com/shapaz/pake/group"
	"github.com/shapaz/pake/internal/herr"
	"github.com/shapaz/pake/internal/tagged"
)

const protocol = "OPAQUE"

// envelopeNonce is the fixed all-zero nonce used for every envelope seal.
// Each envelope is sealed under a key rw derived fresh per password, so
// nonce reuse does not repeat a (key, nonce) pair across records; see the
// design notes for the accepted trade-off.
var envelopeNonce [24]byte

// Record is a server-side OPAQUE enrollment record, as produced once
// offline and stored under the client's identity.
type Record struct {
	KS    group.Scalar // the server's OPRF key
	PS    group.Scalar // the server's static private key
	PSPub group.Point  // P_s = g^p_s
	PUPub group.Point  // P_u = g^p_u
	C     []byte       // envelope ciphertext: secretbox(p_u || P_u || P_s)
}

// Enroll derives an OPAQUE enrollment record bound to password. The
// client's static private key p_u exists only transiently, sealed inside
// the returned record's envelope; it is not returned separately.
func Enroll(g group.Group, password string) (*Record, error) {
	ks := g.NewScalar().Random()
	ps := g.NewScalar().Random()
	pu := g.NewScalar().Random()
	defer pu.Zeroize()

	Ps := g.BaseMult(ps)
	Pu := g.BaseMult(pu)

	pwdHash := tagged.Sum512(protocol, 1, []byte(password))
	T := g.PointFromHash(pwdHash)
	T = g.NewPoint().ScalarMult(ks, T)

	rw := tagged.Sum256(protocol, 2, []byte(password), T.Bytes())

	m := make([]byte, 0, group.ScalarLen+2*group.PointLen)
	m = append(m, pu.Bytes()...)
	m = append(m, Pu.Bytes()...)
	m = append(m, Ps.Bytes()...)

	c := secretbox.Seal(nil, m, &envelopeNonce, &rw)

	return &Record{KS: ks, PS: ps, PSPub: Ps, PUPub: Pu, C: c}, nil
}

// envelopeLen is the fixed ciphertext length: the secretbox MAC overhead
// plus the plaintext (p_u || P_u || P_s).
const envelopeLen = secretbox.Overhead + group.ScalarLen + 2*group.PointLen

// Write serializes the record as k_s || p_s || P_s || P_u || c.
func (r *Record) Write(w io.Writer) error {
	if _, err := w.Write(r.KS.Bytes()); err != nil {
		return herr.Wrap(herr.Internal, err)
	}
	if _, err := w.Write(r.PS.Bytes()); err != nil {
		return herr.Wrap(herr.Internal, err)
	}
	if _, err := w.Write(r.PSPub.Bytes()); err != nil {
		return herr.Wrap(herr.Internal, err)
	}
	if _, err := w.Write(r.PUPub.Bytes()); err != nil {
		return herr.Wrap(herr.Internal, err)
	}
	if _, err := w.Write(r.C); err != nil {
		return herr.Wrap(herr.Internal, err)
	}
	return nil
}

// ReadRecord parses a record from the k_s || p_s || P_s || P_u || c layout.
func ReadRecord(g group.Group, r io.Reader) (*Record, error) {
	ksBuf := make([]byte, group.ScalarLen)
	if _, err := io.ReadFull(r, ksBuf); err != nil {
		return nil, herr.Wrap(herr.Internal, err)
	}
	ks, err := g.DecodeScalar(ksBuf)
	if err != nil {
		return nil, err
	}

	psBuf := make([]byte, group.ScalarLen)
	if _, err := io.ReadFull(r, psBuf); err != nil {
		return nil, herr.Wrap(herr.Internal, err)
	}
	ps, err := g.DecodeScalar(psBuf)
	if err != nil {
		return nil, err
	}

	PsPub, err := readPoint(g, r)
	if err != nil {
		return nil, err
	}
	PuPub, err := readPoint(g, r)
	if err != nil {
		return nil, err
	}

	c := make([]byte, envelopeLen)
	if _, err := io.ReadFull(r, c); err != nil {
		return nil, herr.Wrap(herr.Internal, err)
	}

	return &Record{KS: ks, PS: ps, PSPub: PsPub, PUPub: PuPub, C: c}, nil
}

func readPoint(g group.Group, r io.Reader) (group.Point, error) {
	buf := make([]byte, group.PointLen)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, herr.Wrap(herr.Internal, err)
	}
	return g.DecodePoint(buf)
}
